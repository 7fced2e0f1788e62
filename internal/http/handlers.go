package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hperssn/spinwheel/internal/domain"
	"github.com/hperssn/spinwheel/internal/wheel"
)

const maxBodyBytes = 1 << 20

type createSegmentRequest struct {
	Label *string `json:"label"`
	Color *string `json:"color"`
	Order *int    `json:"order"`
}

type spinRequest struct {
	FromRotation float64 `json:"fromRotation"`
}

// decodeJSON reads the request body into dst. An empty body is accepted when
// allowEmpty is set and leaves dst untouched. The body must hold exactly one
// JSON value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	if err != nil {
		return decodeError(err)
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return (&domain.ValidationError{}).Add("body", "unexpected data after JSON value")
	}
	return nil
}

func listSegments(svc *wheel.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		segments, err := svc.ListSegments(r.Context())
		if err != nil {
			mapError(w, r, logger, err, "failed to fetch segments")
			return
		}
		respondJSON(w, logger, segments, http.StatusOK)
	}
}

func createSegment(svc *wheel.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSegmentRequest
		if err := decodeJSON(w, r, &req, false); err != nil {
			mapError(w, r, logger, err, "failed to create segment")
			return
		}

		in := wheel.AddSegmentRequest{Color: req.Color, Order: req.Order}
		if req.Label != nil {
			in.Label = *req.Label
		}

		segment, err := svc.AddSegment(r.Context(), in)
		if err != nil {
			mapError(w, r, logger, err, "failed to create segment")
			return
		}
		respondJSON(w, logger, segment, http.StatusCreated)
	}
}

func deleteSegment(svc *wheel.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseSegmentID(r)
		if err != nil {
			mapError(w, r, logger, err, "failed to delete segment")
			return
		}

		if err := svc.RemoveSegment(r.Context(), id); err != nil {
			mapError(w, r, logger, err, "failed to delete segment")
			return
		}
		respondMessage(w, logger, "segment deleted")
	}
}

func deleteAllSegments(svc *wheel.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ResetSegments(r.Context()); err != nil {
			mapError(w, r, logger, err, "failed to reset segments")
			return
		}
		respondMessage(w, logger, "all segments deleted")
	}
}

func getSession(svc *wheel.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := svc.Session(r.Context())
		if err != nil {
			mapError(w, r, logger, err, "failed to fetch session")
			return
		}
		respondJSON(w, logger, session, http.StatusOK)
	}
}

func updateSession(svc *wheel.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch domain.SessionPatch
		if err := decodeJSON(w, r, &patch, false); err != nil {
			mapError(w, r, logger, err, "failed to update session")
			return
		}

		session, err := svc.UpdateSession(r.Context(), patch)
		if err != nil {
			mapError(w, r, logger, err, "failed to update session")
			return
		}
		respondJSON(w, logger, session, http.StatusOK)
	}
}

func incrementSpinCount(svc *wheel.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := svc.RecordSpin(r.Context())
		if err != nil {
			mapError(w, r, logger, err, "failed to increment spin count")
			return
		}
		respondJSON(w, logger, session, http.StatusOK)
	}
}

func spin(svc *wheel.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req spinRequest
		if err := decodeJSON(w, r, &req, true); err != nil {
			mapError(w, r, logger, err, "failed to spin")
			return
		}

		res, err := svc.Spin(r.Context(), req.FromRotation)
		if err != nil {
			mapError(w, r, logger, err, "failed to spin")
			return
		}
		respondJSON(w, logger, res, http.StatusOK)
	}
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func parseSegmentID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidSegmentID
	}
	return id, nil
}
