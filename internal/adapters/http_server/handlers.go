package httpserver

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
)

// maxFormBytes caps the POST body.
const maxFormBytes = 1 << 20

type Handlers struct{ Svc *app.ReviewService }

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.listReviews)
	s.mux.With(WriteLimit(s.opts.WriteRPS)).Post("/", h.createReview)
}

// marshalIndent renders v the way every response body is rendered: two-space
// indented JSON with a trailing newline.
func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := marshalIndent(v)
	if err != nil {
		log.Error().Err(err).Msg("marshal JSON response failed")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "internal error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeServiceError maps the domain error taxonomy onto status codes. Internal
// errors expose their raw message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrMissingField):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("method", r.Method).Msg("request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := marshalIndent(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body, nil
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	out, err := h.Svc.Query(r.Context(), domain.ReviewQuery{
		Location:  qs.Get("location"),
		StartDate: qs.Get("start_date"),
		EndDate:   qs.Get("end_date"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	etag, body, err := calcETagAndBody(out)
	if err != nil {
		writeServiceError(w, r, domain.Internal(err))
		return
	}
	// identical reads hash identically; let clients short-circuit
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listReviews body")
	}
}

// createReview reads a url-encoded body whatever the Content-Type says.
func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeServiceError(w, r, domain.Internal(err))
		return
	}
	form := parseForm(string(raw))

	created, err := h.Svc.Append(r.Context(), domain.NewReview{
		Body:     form["ReviewBody"],
		Location: form["Location"],
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
