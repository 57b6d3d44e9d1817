package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "hotel_ledger/internal/adapters/redis"
	"hotel_ledger/internal/domain"
)

func TestCache_SetGetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	var hv domain.HotelView
	ok, err := c.Get(ctx, "hotel:grand", &hv)
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	in := domain.HotelView{Name: "Grand", TotalRooms: 2, BasePrice: 1299}
	if err := c.Set(ctx, "hotel:grand", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err = c.Get(ctx, "hotel:grand", &hv)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if hv != in {
		t.Fatalf("round trip: %+v", hv)
	}

	if err := c.Del(ctx, "hotel:grand"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if mr.Exists("hotel:grand") {
		t.Fatalf("key still present")
	}
}

func TestCache_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	if err := c.Set(ctx, "hotels", []domain.HotelView{{Name: "A"}}, 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("hotels"); ttl != 30*time.Second {
		t.Fatalf("ttl %v", ttl)
	}
	mr.FastForward(31 * time.Second)

	var out []domain.HotelView
	if ok, _ := c.Get(ctx, "hotels", &out); ok {
		t.Fatalf("expected expiry")
	}
}
