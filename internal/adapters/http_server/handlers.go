package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_ledger/internal/app"
	"hotel_ledger/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	C *app.BookingService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1/hotels", func(r chi.Router) {
		r.Get("/", h.listHotels)
		r.Post("/", h.createHotel)

		r.Route("/{hotel}", func(r chi.Router) {
			r.Get("/", h.getHotel)
			r.Patch("/", h.patchHotel)
			r.Delete("/", h.deleteHotel)

			r.Get("/occupancy", h.occupancy)
			r.Get("/events", h.events)

			r.Get("/rooms", h.listRooms)
			r.Post("/rooms", h.addRoom)
			r.Get("/rooms/{room}", h.getRoom)
			r.Delete("/rooms/{room}", h.removeRoom)

			r.Get("/reservations", h.listReservations)
			r.Post("/reservations", h.book)
			r.Get("/reservations/{guest}", h.getReservation)
			r.Delete("/reservations/{guest}", h.cancelReservation)
		})
	})
}

/********** request bodies **********/

type createHotelReq struct {
	Name string `json:"name"`
}

type patchHotelReq struct {
	Name      *string  `json:"name"`
	BasePrice *float64 `json:"base_price"`
}

type addRoomReq struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type bookReq struct {
	Room         string `json:"room"`
	Guest        string `json:"guest"`
	CheckIn      int    `json:"check_in"`
	CheckOut     int    `json:"check_out"`
	DiscountCode string `json:"discount_code"`
}

/********** helpers **********/

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps ledger errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrDuplicateName),
		errors.Is(err, domain.ErrActiveReservation),
		errors.Is(err, domain.ErrUnavailable),
		errors.Is(err, domain.ErrCapacity):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidDiscount),
		errors.Is(err, domain.ErrInvalidPrice):
		writeProblem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", err.Error())
	case errors.Is(err, app.ErrAuditDisabled):
		writeProblem(w, http.StatusNotImplemented, "Not Implemented", err.Error())
	default:
		log.Error().Err(err).Msg("unexpected ledger error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeView sends v with a weak ETag, short-circuiting on If-None-Match.
func writeView(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func writeCreated(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeJSON(w, http.StatusCreated, body)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return false
	}
	return true
}

// param returns the decoded URL parameter. chi routes on RawPath when the
// request carries one, and only then is the parameter still escaped.
func param(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func required(w http.ResponseWriter, fields map[string]string) bool {
	for k, v := range fields {
		if strings.TrimSpace(v) == "" {
			writeProblem(w, http.StatusBadRequest, "Invalid body", k+" is required")
			return false
		}
	}
	return true
}

/********** hotels **********/

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListHotels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, r, out)
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var req createHotelReq
	if !decode(w, r, &req) || !required(w, map[string]string{"name": req.Name}) {
		return
	}
	hv, err := h.C.CreateHotel(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, hv)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hv, err := h.Q.GetHotel(r.Context(), param(r, "hotel"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, r, hv)
}

func (h *Handlers) patchHotel(w http.ResponseWriter, r *http.Request) {
	var req patchHotelReq
	if !decode(w, r, &req) {
		return
	}
	if req.Name == nil && req.BasePrice == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "name or base_price is required")
		return
	}
	patch := app.HotelPatch{BasePrice: req.BasePrice}
	if req.Name != nil {
		if !required(w, map[string]string{"name": *req.Name}) {
			return
		}
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}
	hv, err := h.C.UpdateHotel(r.Context(), param(r, "hotel"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, r, hv)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	strict, _ := strconv.ParseBool(r.URL.Query().Get("strict"))
	if err := h.C.RemoveHotel(r.Context(), param(r, "hotel"), strict); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) occupancy(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(r.URL.Query().Get("day"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid day", "day must be an integer between 1 and 31")
		return
	}
	ov, err := h.Q.Occupancy(r.Context(), param(r, "hotel"), day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, r, ov)
}

func (h *Handlers) events(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}
	out, err := h.Q.Events(r.Context(), param(r, "hotel"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []domain.BookingEvent{}
	}
	writeView(w, r, out)
}

/********** rooms **********/

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListRooms(r.Context(), param(r, "hotel"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, r, out)
}

func (h *Handlers) addRoom(w http.ResponseWriter, r *http.Request) {
	var req addRoomReq
	if !decode(w, r, &req) || !required(w, map[string]string{"name": req.Name}) {
		return
	}
	if req.Type == "" {
		req.Type = domain.Standard.Name()
	}
	if _, err := domain.ParseRoomType(req.Type); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid room type", err.Error())
		return
	}
	rv, err := h.C.AddRoom(r.Context(), param(r, "hotel"), strings.TrimSpace(req.Name), req.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, rv)
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	rv, err := h.Q.GetRoom(r.Context(), param(r, "hotel"), param(r, "room"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, r, rv)
}

func (h *Handlers) removeRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.C.RemoveRoom(r.Context(), param(r, "hotel"), param(r, "room")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/********** reservations **********/

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListReservations(r.Context(), param(r, "hotel"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, r, out)
}

func (h *Handlers) book(w http.ResponseWriter, r *http.Request) {
	var req bookReq
	if !decode(w, r, &req) || !required(w, map[string]string{"room": req.Room, "guest": req.Guest}) {
		return
	}
	rv, err := h.C.Book(r.Context(), app.BookingRequest{
		Hotel:        param(r, "hotel"),
		Room:         req.Room,
		Guest:        strings.TrimSpace(req.Guest),
		CheckIn:      req.CheckIn,
		CheckOut:     req.CheckOut,
		DiscountCode: strings.TrimSpace(req.DiscountCode),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, rv)
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	rv, err := h.Q.FindReservation(r.Context(), param(r, "hotel"), param(r, "guest"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, r, rv)
}

func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	rv, err := h.C.CancelReservation(r.Context(), param(r, "hotel"), param(r, "guest"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, r, rv)
}
