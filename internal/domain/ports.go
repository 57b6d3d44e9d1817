package domain

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// AuditLog is an append-only journal of ledger mutations. It is never read
// back to rebuild ledger state.
type AuditLog interface {
	Record(ctx context.Context, e BookingEvent) error
	ListEvents(ctx context.Context, hotel string, limit int) ([]BookingEvent, error)
}

type EventKind string

const (
	EventBooked    EventKind = "booked"
	EventCancelled EventKind = "cancelled"
	EventRejected  EventKind = "rejected"
)

type BookingEvent struct {
	ID         string    `json:"id"`
	Kind       EventKind `json:"kind"`
	Hotel      string    `json:"hotel"`
	Room       string    `json:"room,omitempty"`
	Guest      string    `json:"guest,omitempty"`
	CheckIn    int       `json:"check_in,omitempty"`
	CheckOut   int       `json:"check_out,omitempty"`
	TotalPrice float64   `json:"total_price,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	At         time.Time `json:"at"`
}

// Read models

type HotelView struct {
	Name              string  `json:"name"`
	TotalRooms        int     `json:"total_rooms"`
	BasePrice         float64 `json:"base_price"`
	EstimatedEarnings float64 `json:"estimated_earnings"`
	Reservations      int     `json:"reservations"`
}

type RoomView struct {
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	PricePerNight float64   `json:"price_per_night"`
	Calendar      []DayView `json:"calendar,omitempty"`
}

type DayView struct {
	Day       int  `json:"day"`
	Available bool `json:"available"`
}

type ReservationView struct {
	ID         string   `json:"id"`
	Guest      string   `json:"guest"`
	Room       string   `json:"room"`
	CheckIn    int      `json:"check_in"`
	CheckOut   int      `json:"check_out"`
	Nights     int      `json:"nights"`
	TotalPrice float64  `json:"total_price"`
	Discounts  []string `json:"discounts"`
}

type OccupancyView struct {
	Day       int `json:"day"`
	Available int `json:"available"`
	Booked    int `json:"booked"`
}
