package ledgerapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_ledger/internal/shared"
)

// SeedHotel creates h with its rooms and bookings. Entities that already
// exist are left as they are, so a plan can be replayed.
func (c *Client) SeedHotel(ctx context.Context, h shared.SeedHotel) error {
	if _, err := c.CreateHotel(ctx, h.Name); err != nil && !errors.Is(err, ErrConflict) {
		return fmt.Errorf("create hotel %q: %w", h.Name, err)
	}
	if h.BasePrice > 0 {
		if _, err := c.SetBasePrice(ctx, h.Name, h.BasePrice); err != nil {
			return fmt.Errorf("base price %q: %w", h.Name, err)
		}
	}
	for _, r := range h.Rooms {
		if _, err := c.AddRoom(ctx, h.Name, r.Name, r.Type); err != nil {
			if errors.Is(err, ErrConflict) {
				log.Debug().Str("hotel", h.Name).Str("room", r.Name).Err(err).Msg("room skipped")
				continue
			}
			return fmt.Errorf("add room %q/%q: %w", h.Name, r.Name, err)
		}
	}
	for _, b := range h.Bookings {
		_, err := c.Book(ctx, h.Name, Booking{
			Room:         b.Room,
			Guest:        b.Guest,
			CheckIn:      b.CheckIn,
			CheckOut:     b.CheckOut,
			DiscountCode: b.DiscountCode,
		})
		switch {
		case err == nil:
		case errors.Is(err, ErrConflict):
			// a replayed plan finds the stay already booked
			log.Warn().Str("hotel", h.Name).Str("guest", b.Guest).Err(err).Msg("booking skipped")
		default:
			return fmt.Errorf("book %q in %q: %w", b.Guest, h.Name, err)
		}
	}
	return nil
}
