package app_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"hotel_ledger/internal/app"
	"hotel_ledger/internal/domain"
)

func TestGetHotel_CacheMissThenHit(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "Grand", "101")
	ctx := context.Background()

	// Miss (first time, populates cache)
	h, err := f.q.GetHotel(ctx, "Grand")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.Name != "Grand" || h.TotalRooms != 1 || h.BasePrice != 1299 {
		t.Fatalf("unexpected hotel: %+v", h)
	}

	// Overwrite the cached entry to prove the second read comes from cache.
	_ = f.cache.Set(ctx, "hotel:grand", domain.HotelView{Name: "FROM CACHE"}, 60)

	h2, err := f.q.GetHotel(ctx, "GRAND")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h2.Name != "FROM CACHE" {
		t.Fatalf("expected cached view, got %+v", h2)
	}
}

func TestQueries_InvalidatedByBooking(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "Grand", "101")
	ctx := context.Background()

	if _, err := f.q.ListHotels(ctx); err != nil {
		t.Fatalf("ListHotels: %v", err)
	}
	if _, err := f.q.GetRoom(ctx, "Grand", "101"); err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if _, err := f.q.ListReservations(ctx, "Grand"); err != nil {
		t.Fatalf("ListReservations: %v", err)
	}

	if _, err := f.cmd.Book(ctx, app.BookingRequest{Hotel: "Grand", Room: "101", Guest: "Ana", CheckIn: 1, CheckOut: 3}); err != nil {
		t.Fatalf("Book: %v", err)
	}

	hotels, err := f.q.ListHotels(ctx)
	if err != nil || len(hotels) != 1 || hotels[0].EstimatedEarnings != 2598 || hotels[0].Reservations != 1 {
		t.Fatalf("stale hotels: %+v %v", hotels, err)
	}
	room, err := f.q.GetRoom(ctx, "grand", "101")
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if len(room.Calendar) != domain.CalendarDays || room.Calendar[0].Available || room.Calendar[1].Available || !room.Calendar[2].Available {
		t.Fatalf("stale calendar: %+v", room.Calendar[:3])
	}
	list, err := f.q.ListReservations(ctx, "Grand")
	if err != nil || len(list) != 1 || list[0].Guest != "Ana" {
		t.Fatalf("stale reservations: %+v %v", list, err)
	}
}

func TestQueries_RemovedRoomEvicted(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "Grand", "101")
	ctx := context.Background()

	if _, err := f.q.GetRoom(ctx, "Grand", "101"); err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if err := f.cmd.RemoveRoom(ctx, "Grand", "101"); err != nil {
		t.Fatalf("RemoveRoom: %v", err)
	}
	if _, err := f.q.GetRoom(ctx, "Grand", "101"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestQueries_FindReservationAndOccupancy(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "Grand", "101", "102")
	ctx := context.Background()
	if _, err := f.cmd.Book(ctx, app.BookingRequest{Hotel: "Grand", Room: "102", Guest: "Ana", CheckIn: 10, CheckOut: 16}); err != nil {
		t.Fatalf("Book: %v", err)
	}

	rv, err := f.q.FindReservation(ctx, "Grand", "ANA")
	if err != nil || rv.Room != "102" || rv.Nights != 6 || rv.TotalPrice != 1299*5 {
		t.Fatalf("FindReservation: %+v %v", rv, err)
	}
	if _, err := f.q.FindReservation(ctx, "Grand", "bob"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	ov, err := f.q.Occupancy(ctx, "Grand", 12)
	if err != nil || ov.Available != 1 || ov.Booked != 1 || ov.Day != 12 {
		t.Fatalf("Occupancy: %+v %v", ov, err)
	}
	if _, err := f.q.Occupancy(ctx, "Grand", 0); !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
}

func TestQueries_Events(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "Grand", "101")
	ctx := context.Background()
	_, _ = f.cmd.Book(ctx, app.BookingRequest{Hotel: "Grand", Room: "101", Guest: "Ana", CheckIn: 1, CheckOut: 2})
	_, _ = f.cmd.Book(ctx, app.BookingRequest{Hotel: "Grand", Room: "101", Guest: "Bob", CheckIn: 1, CheckOut: 2})

	evs, err := f.q.Events(ctx, "grand", 10)
	if err != nil || len(evs) != 2 || evs[0].Kind != domain.EventRejected || evs[0].Detail != "unavailable" {
		t.Fatalf("Events: %+v %v", evs, err)
	}

	noAudit := app.NewQueryService(app.NewLedger(domain.NewRegistry()), nil, nil, time.Minute)
	if _, err := noAudit.Events(ctx, "grand", 10); !errors.Is(err, app.ErrAuditDisabled) {
		t.Fatalf("want ErrAuditDisabled, got %v", err)
	}
}

func TestQueries_WithoutCache(t *testing.T) {
	l := app.NewLedger(domain.NewRegistry())
	cmd := app.NewBookingService(l, nil, nil)
	q := app.NewQueryService(l, nil, nil, time.Minute)
	ctx := context.Background()

	if _, err := cmd.CreateHotel(ctx, "Solo"); err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	if _, err := cmd.AddRoom(ctx, "Solo", "1", "Executive"); err != nil {
		t.Fatalf("AddRoom: %v", err)
	}
	rooms, err := q.ListRooms(ctx, "solo")
	if err != nil || len(rooms) != 1 || rooms[0].Type != "Executive" || math.Abs(rooms[0].PricePerNight-1299*1.35) > 1e-6 {
		t.Fatalf("ListRooms: %+v %v", rooms, err)
	}
	hotels, err := q.ListHotels(ctx)
	if err != nil || len(hotels) != 1 {
		t.Fatalf("ListHotels: %+v %v", hotels, err)
	}
}

func TestNewLedger_ExistingRegistry(t *testing.T) {
	reg := domain.NewRegistry()
	h, _ := reg.CreateHotel("Preloaded")
	if _, err := h.AddRoom("1", domain.Standard); err != nil {
		t.Fatalf("AddRoom: %v", err)
	}
	l := app.NewLedger(reg)
	cmd := app.NewBookingService(l, nil, nil)
	if _, err := cmd.Book(context.Background(), app.BookingRequest{Hotel: "preloaded", Room: "1", Guest: "x", CheckIn: 1, CheckOut: 2}); err != nil {
		t.Fatalf("Book on preloaded hotel: %v", err)
	}
}
