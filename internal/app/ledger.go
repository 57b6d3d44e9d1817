package app

import (
	"fmt"
	"sync"

	"hotel_ledger/internal/domain"
)

// Ledger serialises access to a Registry. Registry-level changes take mu
// exclusively; hotel operations hold mu shared plus that hotel's own lock.
// Locks are always taken registry first, then hotel.
type Ledger struct {
	mu    sync.RWMutex
	reg   *domain.Registry
	locks map[*domain.Hotel]*sync.RWMutex
}

func NewLedger(reg *domain.Registry) *Ledger {
	l := &Ledger{reg: reg, locks: map[*domain.Hotel]*sync.RWMutex{}}
	for _, h := range reg.ListHotels() {
		l.locks[h] = &sync.RWMutex{}
	}
	return l
}

// update runs fn with exclusive access to the whole registry.
func (l *Ledger) update(fn func(reg *domain.Registry) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := fn(l.reg)
	l.syncLocks()
	return err
}

// syncLocks keeps one lock per registered hotel. Callers hold mu exclusively.
func (l *Ledger) syncLocks() {
	live := map[*domain.Hotel]bool{}
	for _, h := range l.reg.ListHotels() {
		live[h] = true
		if _, ok := l.locks[h]; !ok {
			l.locks[h] = &sync.RWMutex{}
		}
	}
	for h := range l.locks {
		if !live[h] {
			delete(l.locks, h)
		}
	}
}

// view runs fn over every hotel, each under its read lock.
func (l *Ledger) view(fn func(hotels []*domain.Hotel) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	hotels := l.reg.ListHotels()
	for _, h := range hotels {
		l.locks[h].RLock()
		defer l.locks[h].RUnlock()
	}
	return fn(hotels)
}

func (l *Ledger) withHotel(name string, write bool, fn func(h *domain.Hotel) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	h := l.reg.HotelExists(name)
	if h == nil {
		return notFound("hotel", name)
	}
	lk := l.locks[h]
	if write {
		lk.Lock()
		defer lk.Unlock()
	} else {
		lk.RLock()
		defer lk.RUnlock()
	}
	return fn(h)
}

func (l *Ledger) readHotel(name string, fn func(h *domain.Hotel) error) error {
	return l.withHotel(name, false, fn)
}

func (l *Ledger) writeHotel(name string, fn func(h *domain.Hotel) error) error {
	return l.withHotel(name, true, fn)
}

func notFound(kind, name string) error {
	return fmt.Errorf("%s %q: %w", kind, name, domain.ErrNotFound)
}
