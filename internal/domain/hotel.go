package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxRooms         = 50
	DefaultBasePrice = 1299.0
	MinBasePrice     = 100.0
)

// seasonalBands are checked in order; the first band touching check-in or
// check-out wins.
var seasonalBands = []struct {
	from, to int
	factor   float64
}{
	{5, 6, 1.20},
	{8, 9, 0.70},
	{18, 19, 1.50},
}

type Hotel struct {
	name         string
	basePrice    float64
	rooms        []*Room
	reservations []*Reservation
}

func NewHotel(name string) *Hotel {
	return &Hotel{name: name, basePrice: DefaultBasePrice}
}

func (h *Hotel) Name() string       { return h.name }
func (h *Hotel) BasePrice() float64 { return h.basePrice }
func (h *Hotel) TotalRooms() int    { return len(h.rooms) }

func (h *Hotel) setName(name string) { h.name = name }

// EstimatedEarnings sums the totals of all stored reservations.
func (h *Hotel) EstimatedEarnings() float64 {
	var sum float64
	for _, r := range h.reservations {
		sum += r.TotalPrice()
	}
	return sum
}

func (h *Hotel) Rooms() []*Room {
	return append([]*Room(nil), h.rooms...)
}

func (h *Hotel) Reservations() []*Reservation {
	return append([]*Reservation(nil), h.reservations...)
}

// RoomExists returns the room with the given name (any case), or nil.
func (h *Hotel) RoomExists(name string) *Room {
	for _, r := range h.rooms {
		if strings.EqualFold(r.Name(), name) {
			return r
		}
	}
	return nil
}

// FindReservationByGuestName returns the first reservation for guest (any case), or nil.
func (h *Hotel) FindReservationByGuestName(guest string) *Reservation {
	for _, r := range h.reservations {
		if strings.EqualFold(r.GuestName(), guest) {
			return r
		}
	}
	return nil
}

func (h *Hotel) AddRoom(name string, t RoomType) (*Room, error) {
	if h.RoomExists(name) != nil {
		return nil, fmt.Errorf("room %q: %w", name, ErrDuplicateName)
	}
	if len(h.rooms) >= MaxRooms {
		return nil, fmt.Errorf("hotel %q holds %d rooms: %w", h.name, MaxRooms, ErrCapacity)
	}
	r := newRoom(name, h.basePrice, t)
	h.rooms = append(h.rooms, r)
	return r, nil
}

func (h *Hotel) RemoveRoom(name string) error {
	room := h.RoomExists(name)
	if room == nil {
		return fmt.Errorf("room %q: %w", name, ErrNotFound)
	}
	if h.hasReservationsFor(room) {
		return fmt.Errorf("room %q: %w", room.Name(), ErrActiveReservation)
	}
	for i, r := range h.rooms {
		if r == room {
			h.rooms = append(h.rooms[:i], h.rooms[i+1:]...)
			break
		}
	}
	return nil
}

func (h *Hotel) hasReservationsFor(room *Room) bool {
	for _, res := range h.reservations {
		if strings.EqualFold(res.RoomName(), room.Name()) {
			return true
		}
	}
	return false
}

// UpdateBasePrice resets every room's nightly price from newPrice. Prices
// below MinBasePrice are rejected and leave the hotel untouched.
func (h *Hotel) UpdateBasePrice(newPrice float64) error {
	if newPrice < MinBasePrice {
		return fmt.Errorf("base price %.2f below %.2f: %w", newPrice, MinBasePrice, ErrInvalidPrice)
	}
	h.basePrice = newPrice
	for _, r := range h.rooms {
		r.SetPricePerNight(newPrice)
	}
	return nil
}

func validStay(checkIn, checkOut int) bool {
	return checkIn >= 1 && checkIn <= CalendarDays &&
		checkOut >= 1 && checkOut <= CalendarDays &&
		checkIn < checkOut
}

// SimulateBooking prices and commits a stay. Nothing is stored unless every
// step succeeds, including the caller's discount code.
func (h *Hotel) SimulateBooking(roomName, guest string, checkIn, checkOut int, discountCode string) (*Reservation, error) {
	if !validStay(checkIn, checkOut) {
		return nil, fmt.Errorf("check-in %d, check-out %d: %w", checkIn, checkOut, ErrInvalidDate)
	}
	room := h.RoomExists(roomName)
	if room == nil {
		return nil, fmt.Errorf("room %q: %w", roomName, ErrNotFound)
	}
	if !room.IsAvailable(checkIn, checkOut) {
		return nil, fmt.Errorf("room %q days %d-%d: %w", room.Name(), checkIn, checkOut, ErrUnavailable)
	}

	total := SeasonalTotal(room.PricePerNight(), checkIn, checkOut)
	res := newReservation(uuid.NewString(), guest, checkIn, checkOut, room.Name(), h, total)

	if isPayday(checkIn) || isPayday(checkOut) {
		res.ApplyDiscountCode(string(Payday))
	}
	if res.Nights() >= stay4Get1MinNights {
		res.ApplyDiscountCode(string(Stay4Get1))
	}
	if discountCode != "" && !res.ApplyDiscountCode(discountCode) {
		return nil, fmt.Errorf("code %q: %w", discountCode, ErrInvalidDiscount)
	}

	h.reservations = append(h.reservations, res)
	room.Book(checkIn, checkOut)
	return res, nil
}

// SeasonalTotal is nightly × nights adjusted by the first matching seasonal band.
func SeasonalTotal(nightly float64, checkIn, checkOut int) float64 {
	total := nightly * float64(checkOut-checkIn)
	for _, b := range seasonalBands {
		inBand := func(d int) bool { return d >= b.from && d <= b.to }
		if inBand(checkIn) || inBand(checkOut) {
			return total * b.factor
		}
	}
	return total
}

// RemoveReservation drops the first reservation for guest and frees its days.
func (h *Hotel) RemoveReservation(guest string) (*Reservation, error) {
	res := h.FindReservationByGuestName(guest)
	if res == nil {
		return nil, fmt.Errorf("reservation for %q: %w", guest, ErrNotFound)
	}
	for i, r := range h.reservations {
		if r == res {
			h.reservations = append(h.reservations[:i], h.reservations[i+1:]...)
			break
		}
	}
	if room := h.RoomExists(res.RoomName()); room != nil {
		room.Cancel(res.CheckIn(), res.CheckOut())
	}
	return res, nil
}

// Occupancy counts rooms free and taken on a single day.
func (h *Hotel) Occupancy(day int) (available, booked int, err error) {
	if day < 1 || day > CalendarDays {
		return 0, 0, fmt.Errorf("day %d: %w", day, ErrInvalidDate)
	}
	for _, r := range h.rooms {
		if r.IsAvailable(day, day+1) {
			available++
		} else {
			booked++
		}
	}
	return available, booked, nil
}
