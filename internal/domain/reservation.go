package domain

type DiscountCode string

const (
	IWorkHere DiscountCode = "I_WORK_HERE"
	Stay4Get1 DiscountCode = "STAY4_GET1"
	Payday    DiscountCode = "PAYDAY"
)

const (
	iWorkHereRate      = 0.10
	paydayRate         = 0.07
	stay4Get1MinNights = 5
)

func isPayday(day int) bool { return day == 15 || day == 30 }

// roomResolver gives a reservation read access to its room without owning it.
type roomResolver interface {
	RoomExists(name string) *Room
}

type Reservation struct {
	id         string
	guestName  string
	checkIn    int
	checkOut   int
	roomName   string
	rooms      roomResolver
	totalPrice float64
	discounts  []DiscountCode
}

func newReservation(id, guest string, checkIn, checkOut int, roomName string, rooms roomResolver, total float64) *Reservation {
	return &Reservation{
		id:         id,
		guestName:  guest,
		checkIn:    checkIn,
		checkOut:   checkOut,
		roomName:   roomName,
		rooms:      rooms,
		totalPrice: total,
	}
}

func (r *Reservation) ID() string          { return r.id }
func (r *Reservation) GuestName() string   { return r.guestName }
func (r *Reservation) CheckIn() int        { return r.checkIn }
func (r *Reservation) CheckOut() int       { return r.checkOut }
func (r *Reservation) RoomName() string    { return r.roomName }
func (r *Reservation) TotalPrice() float64 { return r.totalPrice }
func (r *Reservation) Nights() int         { return r.checkOut - r.checkIn }

// Discounts lists accepted codes in the order they were applied.
func (r *Reservation) Discounts() []DiscountCode {
	return append([]DiscountCode(nil), r.discounts...)
}

// DiscountCode is the most recently accepted code, or "" when none.
func (r *Reservation) DiscountCode() DiscountCode {
	if len(r.discounts) == 0 {
		return ""
	}
	return r.discounts[len(r.discounts)-1]
}

// ApplyDiscountCode adjusts the current total for a known code and records it.
// STAY4_GET1 and PAYDAY are accepted even when the stay does not qualify; they
// just leave the price alone. Unknown codes return false and change nothing.
func (r *Reservation) ApplyDiscountCode(code string) bool {
	c := DiscountCode(code)
	switch c {
	case IWorkHere:
		r.totalPrice *= 1 - iWorkHereRate
	case Stay4Get1:
		if r.Nights() >= stay4Get1MinNights {
			r.totalPrice -= r.nightlyRate()
		}
	case Payday:
		if isPayday(r.checkIn) || isPayday(r.checkOut) {
			r.totalPrice *= 1 - paydayRate
		}
	default:
		return false
	}
	r.discounts = append(r.discounts, c)
	return true
}

func (r *Reservation) nightlyRate() float64 {
	if r.rooms == nil {
		return 0
	}
	if room := r.rooms.RoomExists(r.roomName); room != nil {
		return room.PricePerNight()
	}
	return 0
}
