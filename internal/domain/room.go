package domain

// CalendarDays is the fixed length of every room calendar (day-of-month 1..31).
const CalendarDays = 31

type Room struct {
	name          string
	pricePerNight float64
	typ           RoomType
	availability  [CalendarDays]bool
}

type DayAvailability struct {
	Day       int
	Available bool
}

func newRoom(name string, basePrice float64, t RoomType) *Room {
	r := &Room{name: name, typ: t}
	r.SetPricePerNight(basePrice)
	for i := range r.availability {
		r.availability[i] = true
	}
	return r
}

func (r *Room) Name() string           { return r.name }
func (r *Room) PricePerNight() float64 { return r.pricePerNight }
func (r *Room) Type() RoomType         { return r.typ }

// IsAvailable reports whether every day in [checkIn, checkOut) is free.
// Callers validate the range.
func (r *Room) IsAvailable(checkIn, checkOut int) bool {
	for d := checkIn; d < checkOut; d++ {
		if !r.availability[d-1] {
			return false
		}
	}
	return true
}

// Book marks [checkIn, checkOut) as taken without re-checking availability.
func (r *Room) Book(checkIn, checkOut int) {
	for d := checkIn; d < checkOut; d++ {
		r.availability[d-1] = false
	}
}

// Cancel frees [checkIn, checkOut], checkOut included. This is one day wider
// than Book; see DESIGN.md before changing it.
func (r *Room) Cancel(checkIn, checkOut int) {
	for d := checkIn; d <= checkOut; d++ {
		r.availability[d-1] = true
	}
}

// SetPricePerNight reprices the room from a hotel base price.
func (r *Room) SetPricePerNight(base float64) {
	r.pricePerNight = base * r.typ.Multiplier()
}

func (r *Room) AvailabilitySnapshot() []DayAvailability {
	out := make([]DayAvailability, CalendarDays)
	for i, free := range r.availability {
		out[i] = DayAvailability{Day: i + 1, Available: free}
	}
	return out
}
