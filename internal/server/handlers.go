package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/biblio/pkg/errors"
)

// faultBody is the JSON body for requests that could not be resolved.
type faultBody struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	isbn := chi.URLParam(r, "isbn")
	if err := errors.ValidateIdentifier(isbn); err != nil {
		s.writeFault(w, r, err)
		return
	}

	res, err := s.resolver.ResolveByIdentifier(r.Context(), isbn)
	if err != nil {
		s.writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeFault(w http.ResponseWriter, r *http.Request, err error) {
	status := faultStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	var rl *errors.RateLimitedError
	if stderrors.As(err, &rl) && rl.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("lookup failed", "path", r.URL.Path, "request_id", requestIDFromContext(r.Context()), "err", err)
	}
	writeJSON(w, status, faultBody{Code: code, Error: errors.UserMessage(err)})
}

// faultStatus maps a fault to its HTTP status.
func faultStatus(err error) int {
	switch {
	case errors.IsTransport(err):
		return http.StatusBadGateway
	case errors.Is(err, errors.ErrCodeInvalidIdentifier), errors.Is(err, errors.ErrCodeInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
