package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"hotel_ledger/internal/domain"
)

func TestHotel_Defaults(t *testing.T) {
	h := domain.NewHotel("Grand")
	if h.Name() != "Grand" || h.BasePrice() != domain.DefaultBasePrice || h.TotalRooms() != 0 {
		t.Fatalf("unexpected hotel: %s %v %d", h.Name(), h.BasePrice(), h.TotalRooms())
	}
	if h.EstimatedEarnings() != 0 {
		t.Fatalf("earnings %v", h.EstimatedEarnings())
	}
}

func TestHotel_AddRoom(t *testing.T) {
	h := domain.NewHotel("Grand")
	r := mustRoom(t, h, "Sea View", domain.Deluxe)
	if !approx(r.PricePerNight(), 1299*1.20) || r.Type() != domain.Deluxe {
		t.Fatalf("room %v %v", r.PricePerNight(), r.Type())
	}
	if h.RoomExists("SEA VIEW") != r {
		t.Fatalf("lookup should ignore case")
	}

	_, err := h.AddRoom("sea view", domain.Standard)
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("want ErrDuplicateName, got %v", err)
	}
	if h.TotalRooms() != 1 {
		t.Fatalf("rooms %d", h.TotalRooms())
	}
}

func TestHotel_AddRoomCapacity(t *testing.T) {
	h := domain.NewHotel("Grand")
	for i := 0; i < domain.MaxRooms; i++ {
		mustRoom(t, h, fmt.Sprintf("R%02d", i), domain.Standard)
	}
	_, err := h.AddRoom("R50", domain.Standard)
	if !errors.Is(err, domain.ErrCapacity) {
		t.Fatalf("want ErrCapacity, got %v", err)
	}
	if h.TotalRooms() != domain.MaxRooms || h.RoomExists("R50") != nil {
		t.Fatalf("capacity breach: %d rooms", h.TotalRooms())
	}
	if h.RoomExists("R00") == nil || h.RoomExists("R49") == nil {
		t.Fatalf("existing rooms disturbed")
	}
}

func TestHotel_RemoveRoom(t *testing.T) {
	h := domain.NewHotel("Grand")
	mustRoom(t, h, "101", domain.Standard)
	mustRoom(t, h, "102", domain.Standard)
	res := book(t, h, "101", "ana", 1, 3, "")

	if err := h.RemoveRoom("nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := h.RemoveRoom("101"); !errors.Is(err, domain.ErrActiveReservation) {
		t.Fatalf("want ErrActiveReservation, got %v", err)
	}
	if h.RoomExists("101") == nil || h.FindReservationByGuestName("ana") != res {
		t.Fatalf("failed removal touched state")
	}
	if err := h.RemoveRoom("102"); err != nil {
		t.Fatalf("RemoveRoom: %v", err)
	}
	if h.TotalRooms() != 1 {
		t.Fatalf("rooms %d", h.TotalRooms())
	}

	if _, err := h.RemoveReservation("ana"); err != nil {
		t.Fatalf("RemoveReservation: %v", err)
	}
	if err := h.RemoveRoom("101"); err != nil {
		t.Fatalf("RemoveRoom after cancel: %v", err)
	}
}

func TestHotel_UpdateBasePrice(t *testing.T) {
	h := domain.NewHotel("Grand")
	std := mustRoom(t, h, "S", domain.Standard)
	dlx := mustRoom(t, h, "D", domain.Deluxe)

	err := h.UpdateBasePrice(50.0)
	if !errors.Is(err, domain.ErrInvalidPrice) {
		t.Fatalf("want ErrInvalidPrice, got %v", err)
	}
	if h.BasePrice() != 1299 || !approx(std.PricePerNight(), 1299) || !approx(dlx.PricePerNight(), 1299*1.2) {
		t.Fatalf("rejected update changed prices")
	}

	if err := h.UpdateBasePrice(100.0); err != nil {
		t.Fatalf("boundary price rejected: %v", err)
	}
	if err := h.UpdateBasePrice(2000); err != nil {
		t.Fatalf("UpdateBasePrice: %v", err)
	}
	if h.BasePrice() != 2000 || !approx(std.PricePerNight(), 2000) || !approx(dlx.PricePerNight(), 2400) {
		t.Fatalf("prices %v %v %v", h.BasePrice(), std.PricePerNight(), dlx.PricePerNight())
	}
}

func TestHotel_BookingPrices(t *testing.T) {
	cases := []struct {
		name     string
		in, out  int
		code     string
		want     float64
		discount []domain.DiscountCode
	}{
		{"plain", 1, 3, "", 1299 * 2, nil},
		{"high season 5-6", 5, 6, "", 1299 * 1.20, nil},
		{"checkout in high season", 3, 5, "", 1299 * 2 * 1.20, nil},
		{"low season 8-9", 8, 9, "", 1299 * 0.70, nil},
		{"peak 18-19", 18, 19, "", 1299 * 1.50, nil},
		{"first band wins", 6, 8, "", 1299 * 2 * 1.20, nil},
		{"stay4get1", 10, 16, "", 1299*6 - 1299, []domain.DiscountCode{domain.Stay4Get1}},
		{"payday checkout", 14, 15, "", 1299 * 0.93, []domain.DiscountCode{domain.Payday}},
		{"payday checkin 30", 30, 31, "", 1299 * 0.93, []domain.DiscountCode{domain.Payday}},
		{"caller code", 1, 3, "I_WORK_HERE", 1299 * 2 * 0.90, []domain.DiscountCode{domain.IWorkHere}},
		{"explicit payday outside window", 1, 3, "PAYDAY", 1299 * 2, []domain.DiscountCode{domain.Payday}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := domain.NewHotel("Grand")
			mustRoom(t, h, "101", domain.Standard)
			res := book(t, h, "101", "ana", c.in, c.out, c.code)

			if !approx(res.TotalPrice(), c.want) {
				t.Fatalf("total %v, want %v", res.TotalPrice(), c.want)
			}
			got := res.Discounts()
			if len(got) != len(c.discount) {
				t.Fatalf("discounts %v, want %v", got, c.discount)
			}
			for i := range got {
				if got[i] != c.discount[i] {
					t.Fatalf("discounts %v, want %v", got, c.discount)
				}
			}
			if res.ID() == "" || res.RoomName() != "101" || res.Nights() != c.out-c.in {
				t.Fatalf("reservation fields: %s %s %d", res.ID(), res.RoomName(), res.Nights())
			}
		})
	}
}

func TestHotel_BookingCommitsState(t *testing.T) {
	h := domain.NewHotel("Grand")
	r := mustRoom(t, h, "101", domain.Standard)
	res := book(t, h, "101", "Ana", 1, 3, "")

	if r.IsAvailable(1, 3) {
		t.Fatalf("room not booked")
	}
	if h.FindReservationByGuestName("ANA") != res {
		t.Fatalf("reservation lookup should ignore case")
	}
	if !approx(h.EstimatedEarnings(), 2598) {
		t.Fatalf("earnings %v", h.EstimatedEarnings())
	}
	if len(h.Reservations()) != 1 {
		t.Fatalf("reservations %d", len(h.Reservations()))
	}
}

func TestHotel_BookingFailures(t *testing.T) {
	h := domain.NewHotel("Grand")
	mustRoom(t, h, "101", domain.Standard)
	book(t, h, "101", "ana", 10, 12, "")

	cases := []struct {
		name    string
		room    string
		in, out int
		code    string
		want    error
	}{
		{"zero check-in", "101", 0, 3, "", domain.ErrInvalidDate},
		{"check-out past month", "101", 30, 32, "", domain.ErrInvalidDate},
		{"same day", "101", 5, 5, "", domain.ErrInvalidDate},
		{"reversed", "101", 7, 4, "", domain.ErrInvalidDate},
		{"unknown room", "999", 1, 3, "", domain.ErrNotFound},
		{"overlap", "101", 11, 14, "", domain.ErrUnavailable},
		{"bad code", "101", 1, 3, "BOGUS", domain.ErrInvalidDiscount},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := h.SimulateBooking(c.room, "bob", c.in, c.out, c.code)
			if !errors.Is(err, c.want) {
				t.Fatalf("want %v, got %v", c.want, err)
			}
			if h.FindReservationByGuestName("bob") != nil {
				t.Fatalf("failed booking stored a reservation")
			}
		})
	}
}

func TestHotel_InvalidDiscountCommitsNothing(t *testing.T) {
	h := domain.NewHotel("Grand")
	r := mustRoom(t, h, "101", domain.Standard)

	// Long payday stay: auto-discounts run first and must be discarded too.
	_, err := h.SimulateBooking("101", "ana", 15, 21, "NOPE")
	if !errors.Is(err, domain.ErrInvalidDiscount) {
		t.Fatalf("want ErrInvalidDiscount, got %v", err)
	}
	if !r.IsAvailable(15, 21) {
		t.Fatalf("room booked despite failure")
	}
	if len(h.Reservations()) != 0 || h.EstimatedEarnings() != 0 {
		t.Fatalf("reservation recorded despite failure")
	}
}

func TestHotel_RemoveReservation(t *testing.T) {
	h := domain.NewHotel("Grand")
	r := mustRoom(t, h, "101", domain.Standard)
	book(t, h, "101", "ana", 3, 5, "")
	book(t, h, "101", "bob", 5, 7, "")

	if _, err := h.RemoveReservation("nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	res, err := h.RemoveReservation("ANA")
	if err != nil {
		t.Fatalf("RemoveReservation: %v", err)
	}
	if res.GuestName() != "ana" || h.FindReservationByGuestName("ana") != nil {
		t.Fatalf("reservation not removed")
	}
	if !r.IsAvailable(3, 6) {
		t.Fatalf("cancel should free 3..5 inclusive")
	}
	if r.IsAvailable(6, 7) {
		t.Fatalf("bob's day 6 freed")
	}
	if h.FindReservationByGuestName("bob") == nil {
		t.Fatalf("other reservation removed")
	}
}

func TestHotel_Occupancy(t *testing.T) {
	h := domain.NewHotel("Grand")
	mustRoom(t, h, "101", domain.Standard)
	mustRoom(t, h, "102", domain.Standard)
	mustRoom(t, h, "103", domain.Standard)
	book(t, h, "101", "ana", 10, 12, "")
	book(t, h, "102", "bob", 11, 13, "")

	avail, booked, err := h.Occupancy(11)
	if err != nil || avail != 1 || booked != 2 {
		t.Fatalf("day 11: %d/%d %v", avail, booked, err)
	}
	avail, booked, err = h.Occupancy(12)
	if err != nil || avail != 2 || booked != 1 {
		t.Fatalf("day 12: %d/%d %v", avail, booked, err)
	}
	if avail, _, err = h.Occupancy(31); err != nil || avail != 3 {
		t.Fatalf("day 31: %d %v", avail, err)
	}
	if _, _, err = h.Occupancy(32); !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
}

func TestSeasonalTotal(t *testing.T) {
	if got := domain.SeasonalTotal(100, 19, 25); !approx(got, 900) {
		t.Fatalf("check-in 19: %v", got)
	}
	if got := domain.SeasonalTotal(100, 20, 25); !approx(got, 500) {
		t.Fatalf("no band: %v", got)
	}
}
