package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"hotel_ledger/internal/domain"
)

// ---- fakes ----

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok
}

type fakeAudit struct {
	mu     sync.Mutex
	events []domain.BookingEvent
	fail   bool
}

func (a *fakeAudit) Record(ctx context.Context, e domain.BookingEvent) error {
	if a.fail {
		return errors.New("audit down")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
	return nil
}

func (a *fakeAudit) ListEvents(ctx context.Context, hotel string, limit int) ([]domain.BookingEvent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []domain.BookingEvent
	for i := len(a.events) - 1; i >= 0 && len(out) < limit; i-- {
		if strings.EqualFold(a.events[i].Hotel, hotel) {
			out = append(out, a.events[i])
		}
	}
	return out, nil
}

func (a *fakeAudit) kinds() []domain.EventKind {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.EventKind, len(a.events))
	for i, e := range a.events {
		out[i] = e.Kind
	}
	return out
}
