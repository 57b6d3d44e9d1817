package domain

import "errors"

var (
	ErrDuplicateName     = errors.New("name already exists")
	ErrCapacity          = errors.New("capacity reached")
	ErrNotFound          = errors.New("not found")
	ErrActiveReservation = errors.New("active reservations")
	ErrInvalidDate       = errors.New("invalid check-in or check-out date")
	ErrUnavailable       = errors.New("room is not available for the selected dates")
	ErrInvalidDiscount   = errors.New("invalid discount code")
	ErrInvalidPrice      = errors.New("invalid price")
)
