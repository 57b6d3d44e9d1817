package domain

import (
	"fmt"
	"strings"
)

// Registry owns every hotel of a ledger. Hotel names are unique ignoring case.
type Registry struct {
	hotels []*Hotel
}

func NewRegistry() *Registry { return &Registry{} }

func (g *Registry) CreateHotel(name string) (*Hotel, error) {
	if g.HotelExists(name) != nil {
		return nil, fmt.Errorf("hotel %q: %w", name, ErrDuplicateName)
	}
	h := NewHotel(name)
	g.hotels = append(g.hotels, h)
	return h, nil
}

func (g *Registry) HotelExists(name string) *Hotel {
	for _, h := range g.hotels {
		if strings.EqualFold(h.Name(), name) {
			return h
		}
	}
	return nil
}

func (g *Registry) ListHotels() []*Hotel {
	return append([]*Hotel(nil), g.hotels...)
}

// RemoveHotel drops h whether or not it still holds reservations.
// It reports false when h is not registered.
func (g *Registry) RemoveHotel(h *Hotel) bool {
	for i, cur := range g.hotels {
		if cur == h {
			g.hotels = append(g.hotels[:i], g.hotels[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveIdleHotel refuses to drop a hotel that still holds reservations.
func (g *Registry) RemoveIdleHotel(h *Hotel) error {
	if n := len(h.reservations); n > 0 {
		return fmt.Errorf("hotel %q has %d reservations: %w", h.Name(), n, ErrActiveReservation)
	}
	if !g.RemoveHotel(h) {
		return fmt.Errorf("hotel %q: %w", h.Name(), ErrNotFound)
	}
	return nil
}

// RenameHotel changes h's name, keeping names unique. Renaming to a different
// letter case of the current name is allowed.
func (g *Registry) RenameHotel(h *Hotel, newName string) error {
	if err := g.CheckRename(h, newName); err != nil {
		return err
	}
	h.setName(newName)
	return nil
}

// CheckRename reports whether h could take newName without renaming it.
func (g *Registry) CheckRename(h *Hotel, newName string) error {
	if other := g.HotelExists(newName); other != nil && other != h {
		return fmt.Errorf("hotel %q: %w", newName, ErrDuplicateName)
	}
	return nil
}
