package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"avail_quote/internal/adapters/observability"
	"avail_quote/internal/app"
	"avail_quote/internal/domain"
)

const maxRequestBody = 1 << 20 // availability documents are small

type Handlers struct{ P *app.Processor }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/availability", h.quoteAvailability)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// quoteAvailability runs the full pipeline on the XML request body and writes
// the one-element quote array. Validation failures surface unchanged as
// problem+json; nothing is retried.
func (h *Handlers) quoteAvailability(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "failed to read request body")
		return
	}
	if len(body) == 0 {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "empty request body")
		return
	}

	out, err := h.P.Process(r.Context(), body)
	if err != nil {
		kind := domain.KindOf(err)
		observability.ObserveRejection(string(kind))
		writeProblem(w, statusFor(kind), titleFor(kind), err.Error())
		return
	}
	observability.ObserveQuote(out[0].Price.Currency)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Error().Err(err).Msg("failed to write quote response")
	}
}

// statusFor maps the error taxonomy onto 4xx codes: malformed/missing input
// is a plain 400, well-formed input that breaks a business rule is a 422.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindStructural, domain.KindMissingField:
		return http.StatusBadRequest
	case domain.KindInvalidValue, domain.KindOccupancy, domain.KindDateWindow:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func titleFor(kind domain.ErrorKind) string {
	switch kind {
	case domain.KindStructural:
		return "Malformed Request"
	case domain.KindMissingField:
		return "Missing Field"
	case domain.KindInvalidValue:
		return "Invalid Value"
	case domain.KindOccupancy:
		return "Occupancy Rule Violation"
	case domain.KindDateWindow:
		return "Date Window Violation"
	default:
		return "Internal Error"
	}
}
