package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_ledger/internal/adapters/observability"
	"hotel_ledger/internal/domain"
)

type BookingRequest struct {
	Hotel        string
	Room         string
	Guest        string
	CheckIn      int
	CheckOut     int
	DiscountCode string
}

// BookingService applies every ledger mutation. Cache and audit are optional.
type BookingService struct {
	ledger *Ledger
	cache  domain.Cache
	audit  domain.AuditLog
	now    func() time.Time
}

func NewBookingService(l *Ledger, cache domain.Cache, audit domain.AuditLog) *BookingService {
	return &BookingService{
		ledger: l,
		cache:  cache,
		audit:  audit,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *BookingService) CreateHotel(ctx context.Context, name string) (domain.HotelView, error) {
	var hv domain.HotelView
	err := s.ledger.update(func(reg *domain.Registry) error {
		h, err := reg.CreateHotel(name)
		if err != nil {
			return err
		}
		hv = hotelView(h)
		s.invalidateHotel(ctx, h)
		return nil
	})
	observability.ObserveMutation("create_hotel", err)
	if err != nil {
		return domain.HotelView{}, err
	}
	log.Info().Str("hotel", hv.Name).Msg("hotel created")
	return hv, nil
}

func (s *BookingService) RenameHotel(ctx context.Context, name, newName string) (domain.HotelView, error) {
	var hv domain.HotelView
	err := s.ledger.update(func(reg *domain.Registry) error {
		h := reg.HotelExists(name)
		if h == nil {
			return notFound("hotel", name)
		}
		old := h.Name()
		if err := reg.RenameHotel(h, newName); err != nil {
			return err
		}
		s.invalidateHotel(ctx, h)
		s.invalidateName(ctx, old, h)
		hv = hotelView(h)
		return nil
	})
	observability.ObserveMutation("rename_hotel", err)
	if err != nil {
		return domain.HotelView{}, err
	}
	log.Info().Str("from", name).Str("to", hv.Name).Msg("hotel renamed")
	return hv, nil
}

// RemoveHotel drops a hotel. With strict set it refuses while reservations exist.
func (s *BookingService) RemoveHotel(ctx context.Context, name string, strict bool) error {
	err := s.ledger.update(func(reg *domain.Registry) error {
		h := reg.HotelExists(name)
		if h == nil {
			return notFound("hotel", name)
		}
		if strict {
			if err := reg.RemoveIdleHotel(h); err != nil {
				return err
			}
		} else {
			reg.RemoveHotel(h)
		}
		s.invalidateHotel(ctx, h)
		return nil
	})
	observability.ObserveMutation("remove_hotel", err)
	if err != nil {
		return err
	}
	log.Info().Str("hotel", name).Bool("strict", strict).Msg("hotel removed")
	return nil
}

func (s *BookingService) UpdateBasePrice(ctx context.Context, hotel string, price float64) (domain.HotelView, error) {
	var hv domain.HotelView
	err := s.ledger.writeHotel(hotel, func(h *domain.Hotel) error {
		if err := h.UpdateBasePrice(price); err != nil {
			return err
		}
		s.invalidateHotel(ctx, h)
		hv = hotelView(h)
		return nil
	})
	observability.ObserveMutation("update_base_price", err)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPrice) {
			log.Warn().Str("hotel", hotel).Float64("price", price).Msg("base price rejected")
		}
		return domain.HotelView{}, err
	}
	log.Info().Str("hotel", hv.Name).Float64("price", price).Msg("base price updated")
	return hv, nil
}

// HotelPatch carries the optional fields of a hotel update.
type HotelPatch struct {
	Name      *string
	BasePrice *float64
}

// UpdateHotel applies a rename and a base price change as one step: either
// both land or neither does.
func (s *BookingService) UpdateHotel(ctx context.Context, name string, p HotelPatch) (domain.HotelView, error) {
	var hv domain.HotelView
	err := s.ledger.update(func(reg *domain.Registry) error {
		h := reg.HotelExists(name)
		if h == nil {
			return notFound("hotel", name)
		}
		if p.Name != nil {
			if err := reg.CheckRename(h, *p.Name); err != nil {
				return err
			}
		}
		if p.BasePrice != nil {
			if err := h.UpdateBasePrice(*p.BasePrice); err != nil {
				return err
			}
		}
		old := h.Name()
		if p.Name != nil {
			if err := reg.RenameHotel(h, *p.Name); err != nil {
				return err
			}
			s.invalidateName(ctx, old, h)
		}
		s.invalidateHotel(ctx, h)
		hv = hotelView(h)
		return nil
	})
	observability.ObserveMutation("update_hotel", err)
	if err != nil {
		return domain.HotelView{}, err
	}
	log.Info().Str("hotel", name).Str("name", hv.Name).Float64("base_price", hv.BasePrice).Msg("hotel updated")
	return hv, nil
}

func (s *BookingService) AddRoom(ctx context.Context, hotel, room, roomType string) (domain.RoomView, error) {
	rt, err := domain.ParseRoomType(roomType)
	if err != nil {
		return domain.RoomView{}, err
	}
	var rv domain.RoomView
	err = s.ledger.writeHotel(hotel, func(h *domain.Hotel) error {
		r, err := h.AddRoom(room, rt)
		if err != nil {
			return err
		}
		s.invalidateHotel(ctx, h)
		rv = roomView(r, false)
		return nil
	})
	observability.ObserveMutation("add_room", err)
	if err != nil {
		return domain.RoomView{}, err
	}
	log.Info().Str("hotel", hotel).Str("room", rv.Name).Str("type", rv.Type).Msg("room added")
	return rv, nil
}

func (s *BookingService) RemoveRoom(ctx context.Context, hotel, room string) error {
	err := s.ledger.writeHotel(hotel, func(h *domain.Hotel) error {
		if err := h.RemoveRoom(room); err != nil {
			return err
		}
		s.invalidateHotel(ctx, h, room)
		return nil
	})
	observability.ObserveMutation("remove_room", err)
	if err != nil {
		return err
	}
	log.Info().Str("hotel", hotel).Str("room", room).Msg("room removed")
	return nil
}

// Book runs the whole booking transaction under the hotel's write lock.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (domain.ReservationView, error) {
	var rv domain.ReservationView
	hotel := req.Hotel
	err := s.ledger.writeHotel(req.Hotel, func(h *domain.Hotel) error {
		hotel = h.Name()
		res, err := h.SimulateBooking(req.Room, req.Guest, req.CheckIn, req.CheckOut, req.DiscountCode)
		if err != nil {
			return err
		}
		s.invalidateHotel(ctx, h)
		rv = reservationView(res)
		return nil
	})

	outcome := bookingOutcome(err)
	observability.ObserveBooking(outcome)
	if err != nil {
		log.Warn().Err(err).
			Str("hotel", hotel).Str("room", req.Room).Str("guest", req.Guest).
			Int("check_in", req.CheckIn).Int("check_out", req.CheckOut).
			Str("outcome", outcome).
			Msg("booking rejected")
		s.record(ctx, domain.BookingEvent{
			Kind: domain.EventRejected, Hotel: hotel, Room: req.Room, Guest: req.Guest,
			CheckIn: req.CheckIn, CheckOut: req.CheckOut, Detail: outcome,
		})
		return domain.ReservationView{}, err
	}

	for _, code := range rv.Discounts {
		observability.ObserveDiscount(code)
	}
	log.Info().
		Str("hotel", hotel).Str("room", rv.Room).Str("guest", rv.Guest).
		Int("check_in", rv.CheckIn).Int("check_out", rv.CheckOut).
		Float64("total", rv.TotalPrice).Strs("discounts", rv.Discounts).
		Msg("booking committed")
	s.record(ctx, domain.BookingEvent{
		Kind: domain.EventBooked, Hotel: hotel, Room: rv.Room, Guest: rv.Guest,
		CheckIn: rv.CheckIn, CheckOut: rv.CheckOut, TotalPrice: rv.TotalPrice, Detail: rv.ID,
	})
	return rv, nil
}

func (s *BookingService) CancelReservation(ctx context.Context, hotel, guest string) (domain.ReservationView, error) {
	var rv domain.ReservationView
	err := s.ledger.writeHotel(hotel, func(h *domain.Hotel) error {
		hotel = h.Name()
		res, err := h.RemoveReservation(guest)
		if err != nil {
			return err
		}
		s.invalidateHotel(ctx, h)
		rv = reservationView(res)
		return nil
	})
	observability.ObserveMutation("cancel_reservation", err)
	if err != nil {
		return domain.ReservationView{}, err
	}
	log.Info().Str("hotel", hotel).Str("room", rv.Room).Str("guest", rv.Guest).Msg("reservation cancelled")
	s.record(ctx, domain.BookingEvent{
		Kind: domain.EventCancelled, Hotel: hotel, Room: rv.Room, Guest: rv.Guest,
		CheckIn: rv.CheckIn, CheckOut: rv.CheckOut, TotalPrice: rv.TotalPrice, Detail: rv.ID,
	})
	return rv, nil
}

func bookingOutcome(err error) string {
	switch {
	case err == nil:
		return "booked"
	case errors.Is(err, domain.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrInvalidDiscount):
		return "invalid_discount"
	default:
		return "error"
	}
}

// record journals e. Audit failures never fail the mutation.
func (s *BookingService) record(ctx context.Context, e domain.BookingEvent) {
	if s.audit == nil {
		return
	}
	e.ID = uuid.NewString()
	e.At = s.now()
	if err := s.audit.Record(ctx, e); err != nil {
		log.Error().Err(err).Str("err_type", observability.LabelErr(err)).
			Str("kind", string(e.Kind)).Str("hotel", e.Hotel).
			Msg("audit record failed")
	}
}

// invalidateHotel evicts every cached view derived from h. Callers hold the
// hotel's write lock so readers cannot repopulate a stale entry.
func (s *BookingService) invalidateHotel(ctx context.Context, h *domain.Hotel, removedRooms ...string) {
	s.invalidateName(ctx, h.Name(), h, removedRooms...)
}

func (s *BookingService) invalidateName(ctx context.Context, name string, h *domain.Hotel, removedRooms ...string) {
	if s.cache == nil {
		return
	}
	keys := []string{hotelsKey, hotelKey(name), roomsKey(name), reservationsKey(name)}
	for _, r := range h.Rooms() {
		keys = append(keys, roomKey(name, r.Name()))
	}
	for _, r := range removedRooms {
		keys = append(keys, roomKey(name, r))
	}
	for _, k := range keys {
		_ = s.cache.Del(ctx, k)
	}
}
