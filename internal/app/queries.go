package app

import (
	"context"
	"errors"
	"time"

	"hotel_ledger/internal/domain"
)

var ErrAuditDisabled = errors.New("audit log disabled")

type QueryService struct {
	ledger   *Ledger
	cache    domain.Cache
	audit    domain.AuditLog
	cacheTTL time.Duration
}

func NewQueryService(l *Ledger, c domain.Cache, audit domain.AuditLog, ttl time.Duration) *QueryService {
	return &QueryService{ledger: l, cache: c, audit: audit, cacheTTL: ttl}
}

// cached serves key from the cache or builds it under the ledger's read locks.
// The entry is stored before the locks are released, so a writer's
// invalidation always lands after it.
func (s *QueryService) cached(ctx context.Context, key string, dst any, build func(store func(v any)) error) error {
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, dst); ok {
			return nil
		}
	}
	return build(func(v any) {
		if s.cache != nil {
			_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
		}
	})
}

func (s *QueryService) ListHotels(ctx context.Context) ([]domain.HotelView, error) {
	var out []domain.HotelView
	err := s.cached(ctx, hotelsKey, &out, func(store func(any)) error {
		return s.ledger.view(func(hotels []*domain.Hotel) error {
			out = make([]domain.HotelView, 0, len(hotels))
			for _, h := range hotels {
				out = append(out, hotelView(h))
			}
			store(out)
			return nil
		})
	})
	return out, err
}

func (s *QueryService) GetHotel(ctx context.Context, name string) (domain.HotelView, error) {
	var hv domain.HotelView
	err := s.cached(ctx, hotelKey(name), &hv, func(store func(any)) error {
		return s.ledger.readHotel(name, func(h *domain.Hotel) error {
			hv = hotelView(h)
			store(hv)
			return nil
		})
	})
	if err != nil {
		return domain.HotelView{}, err
	}
	return hv, nil
}

func (s *QueryService) ListRooms(ctx context.Context, hotel string) ([]domain.RoomView, error) {
	var out []domain.RoomView
	err := s.cached(ctx, roomsKey(hotel), &out, func(store func(any)) error {
		return s.ledger.readHotel(hotel, func(h *domain.Hotel) error {
			rooms := h.Rooms()
			out = make([]domain.RoomView, 0, len(rooms))
			for _, r := range rooms {
				out = append(out, roomView(r, false))
			}
			store(out)
			return nil
		})
	})
	return out, err
}

// GetRoom includes the room's 31-day calendar.
func (s *QueryService) GetRoom(ctx context.Context, hotel, room string) (domain.RoomView, error) {
	var rv domain.RoomView
	err := s.cached(ctx, roomKey(hotel, room), &rv, func(store func(any)) error {
		return s.ledger.readHotel(hotel, func(h *domain.Hotel) error {
			r := h.RoomExists(room)
			if r == nil {
				return notFound("room", room)
			}
			rv = roomView(r, true)
			store(rv)
			return nil
		})
	})
	if err != nil {
		return domain.RoomView{}, err
	}
	return rv, nil
}

func (s *QueryService) ListReservations(ctx context.Context, hotel string) ([]domain.ReservationView, error) {
	var out []domain.ReservationView
	err := s.cached(ctx, reservationsKey(hotel), &out, func(store func(any)) error {
		return s.ledger.readHotel(hotel, func(h *domain.Hotel) error {
			list := h.Reservations()
			out = make([]domain.ReservationView, 0, len(list))
			for _, r := range list {
				out = append(out, reservationView(r))
			}
			store(out)
			return nil
		})
	})
	return out, err
}

func (s *QueryService) FindReservation(ctx context.Context, hotel, guest string) (domain.ReservationView, error) {
	var rv domain.ReservationView
	err := s.ledger.readHotel(hotel, func(h *domain.Hotel) error {
		r := h.FindReservationByGuestName(guest)
		if r == nil {
			return notFound("reservation for", guest)
		}
		rv = reservationView(r)
		return nil
	})
	return rv, err
}

func (s *QueryService) Occupancy(ctx context.Context, hotel string, day int) (domain.OccupancyView, error) {
	ov := domain.OccupancyView{Day: day}
	err := s.ledger.readHotel(hotel, func(h *domain.Hotel) error {
		var err error
		ov.Available, ov.Booked, err = h.Occupancy(day)
		return err
	})
	if err != nil {
		return domain.OccupancyView{}, err
	}
	return ov, nil
}

func (s *QueryService) Events(ctx context.Context, hotel string, limit int) ([]domain.BookingEvent, error) {
	if s.audit == nil {
		return nil, ErrAuditDisabled
	}
	return s.audit.ListEvents(ctx, hotel, limit)
}
