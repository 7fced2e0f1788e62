package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hperssn/spinwheel/internal/domain"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, logger *zap.Logger, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Int("status", status), zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, logger *zap.Logger, message string, status int) {
	respondJSON(w, logger, errorResponse{Error: message}, status)
}

func respondMessage(w http.ResponseWriter, logger *zap.Logger, message string) {
	respondJSON(w, logger, messageResponse{Message: message}, http.StatusOK)
}

// mapError translates service errors into status codes. Anything it does not
// recognize is logged and reported as a 500 with a generic message.
func mapError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error, fallback string) {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		respondJSON(w, logger, errorResponse{Error: "invalid request", Fields: verr.Fields}, http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidSegmentID):
		respondError(w, logger, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrSessionNotFound):
		respondError(w, logger, "no session found", http.StatusNotFound)
	case errors.Is(err, domain.ErrTooManySegments), errors.Is(err, domain.ErrTooFewSegments):
		respondError(w, logger, err.Error(), http.StatusConflict)
	default:
		logger.Error(fallback,
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondError(w, logger, fallback, http.StatusInternalServerError)
	}
}

// decodeError turns a JSON decoding failure into a ValidationError naming the
// offending field when the decoder reports one.
func decodeError(err error) error {
	verr := &domain.ValidationError{}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return verr.Add(typeErr.Field, "has the wrong type")
	}
	return verr.Add("body", "malformed JSON")
}
