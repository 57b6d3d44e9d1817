package app

import (
	"fmt"
	"strings"

	"hotel_ledger/internal/domain"
)

/********** cache keys **********/

const hotelsKey = "hotels"

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func hotelKey(hotel string) string        { return fmt.Sprintf("hotel:%s", norm(hotel)) }
func roomsKey(hotel string) string        { return fmt.Sprintf("rooms:%s", norm(hotel)) }
func roomKey(hotel, room string) string   { return fmt.Sprintf("room:%s:%s", norm(hotel), norm(room)) }
func reservationsKey(hotel string) string { return fmt.Sprintf("reservations:%s", norm(hotel)) }

/********** domain -> read model **********/

func hotelView(h *domain.Hotel) domain.HotelView {
	return domain.HotelView{
		Name:              h.Name(),
		TotalRooms:        h.TotalRooms(),
		BasePrice:         h.BasePrice(),
		EstimatedEarnings: h.EstimatedEarnings(),
		Reservations:      len(h.Reservations()),
	}
}

func roomView(r *domain.Room, withCalendar bool) domain.RoomView {
	rv := domain.RoomView{
		Name:          r.Name(),
		Type:          r.Type().Name(),
		PricePerNight: r.PricePerNight(),
	}
	if withCalendar {
		snap := r.AvailabilitySnapshot()
		rv.Calendar = make([]domain.DayView, len(snap))
		for i, d := range snap {
			rv.Calendar[i] = domain.DayView{Day: d.Day, Available: d.Available}
		}
	}
	return rv
}

func reservationView(r *domain.Reservation) domain.ReservationView {
	codes := r.Discounts()
	out := domain.ReservationView{
		ID:         r.ID(),
		Guest:      r.GuestName(),
		Room:       r.RoomName(),
		CheckIn:    r.CheckIn(),
		CheckOut:   r.CheckOut(),
		Nights:     r.Nights(),
		TotalPrice: r.TotalPrice(),
		Discounts:  make([]string, len(codes)),
	}
	for i, c := range codes {
		out.Discounts[i] = string(c)
	}
	return out
}
