package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_merge/internal/app"
	"hotel_merge/internal/domain"
	"hotel_merge/internal/storage"
)

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
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
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

// writeJSON serves v with a weak ETag, or 304 when the client already has it.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must not be empty")
		return
	}
	hotel, err := h.Q.GetHotel(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	case err != nil:
		log.Error().Err(err).Str("hotel_id", id).Msg("get hotel failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeJSON(w, r, hotel)
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := domain.HotelsQuery{Limit: storage.DefaultLimit}

	if ls := qs.Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > storage.MaxLimit {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		q.Limit = l
	}
	if d := qs.Get("destination"); d != "" {
		q.DestinationID = &d
	}
	if c := qs.Get("cursor"); c != "" {
		q.Cursor = &c
	}

	page, err := h.Q.ListHotels(r.Context(), q)
	switch {
	case errors.Is(err, domain.ErrBadCursor):
		writeProblem(w, http.StatusBadRequest, "Invalid cursor", "cursor must come from a previous page")
		return
	case err != nil:
		log.Error().Err(err).Msg("list hotels failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeJSON(w, r, page)
}
