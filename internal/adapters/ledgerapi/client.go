// Package ledgerapi is an HTTP client for the ledger API used by the seeder.
package ledgerapi

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_ledger/internal/adapters/observability"
	"hotel_ledger/internal/domain"
)

var (
	ErrNotFound = errors.New("ledgerapi: not found")
	ErrConflict = errors.New("ledgerapi: conflict")
	ErrRejected = errors.New("ledgerapi: rejected")
)

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

type Booking struct {
	Room         string `json:"room"`
	Guest        string `json:"guest"`
	CheckIn      int    `json:"check_in"`
	CheckOut     int    `json:"check_out"`
	DiscountCode string `json:"discount_code,omitempty"`
}

func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

func (c *Client) ListHotels(ctx context.Context) ([]domain.HotelView, error) {
	var out []domain.HotelView
	return out, c.do(ctx, http.MethodGet, "hotels", "/v1/hotels", nil, &out)
}

func (c *Client) CreateHotel(ctx context.Context, name string) (domain.HotelView, error) {
	var out domain.HotelView
	return out, c.do(ctx, http.MethodPost, "hotels", "/v1/hotels", map[string]string{"name": name}, &out)
}

func (c *Client) SetBasePrice(ctx context.Context, hotel string, price float64) (domain.HotelView, error) {
	var out domain.HotelView
	return out, c.do(ctx, http.MethodPatch, "hotel", "/v1/hotels/"+url.PathEscape(hotel),
		map[string]float64{"base_price": price}, &out)
}

func (c *Client) AddRoom(ctx context.Context, hotel, name, roomType string) (domain.RoomView, error) {
	var out domain.RoomView
	return out, c.do(ctx, http.MethodPost, "rooms", "/v1/hotels/"+url.PathEscape(hotel)+"/rooms",
		map[string]string{"name": name, "type": roomType}, &out)
}

func (c *Client) Book(ctx context.Context, hotel string, b Booking) (domain.ReservationView, error) {
	var out domain.ReservationView
	return out, c.do(ctx, http.MethodPost, "reservations", "/v1/hotels/"+url.PathEscape(hotel)+"/reservations", b, &out)
}

// ---- Internals ----

// do sends one request with client-side rate limiting, retries and JSON
// decode into out. Only 429 and gateway errors are retried, so a booking
// that reached the ledger is never replayed.
func (c *Client) do(ctx context.Context, method, endpoint, path string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		payload = b
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		// build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("User-Agent", "hotel-ledger-seeder/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("ledger_api", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("ledger_api", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			return statusErr(resp, ErrNotFound)

		case http.StatusConflict:
			return statusErr(resp, ErrConflict)

		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return statusErr(resp, ErrRejected)

		case http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			return statusErr(resp, errors.New("bad status"))
		}
	}

	return lastErr
}

// statusErr reads the problem detail for diagnostics and closes the body.
func statusErr(resp *http.Response, kind error) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
	var p struct {
		Detail string `json:"detail"`
	}
	detail := strings.TrimSpace(string(b))
	if json.Unmarshal(b, &p) == nil && p.Detail != "" {
		detail = p.Detail
	}
	return fmt.Errorf("%w (%d): %s", kind, resp.StatusCode, detail)
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
