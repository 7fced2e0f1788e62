package wheel

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hperssn/spinwheel/internal/domain"
	"github.com/hperssn/spinwheel/internal/metrics"
	"github.com/hperssn/spinwheel/internal/storage"
)

// Limits bounds the segment count. The repository accepts any count; the
// service enforces these at the API edge.
type Limits struct {
	MinSegments int
	MaxSegments int
}

func DefaultLimits() Limits {
	return Limits{MinSegments: 2, MaxSegments: 12}
}

// AddSegmentRequest is the application-level input for a new segment. Nil
// Color or Order fall back to a random palette color and the end of the wheel.
type AddSegmentRequest struct {
	Label string
	Color *string
	Order *int
}

// SpinResult is one server-side spin.
type SpinResult struct {
	Rotation float64        `json:"rotation"`
	Winner   domain.Segment `json:"winner"`
	Session  domain.Session `json:"session"`
}

// Service applies wheel policy on top of a Repository.
type Service struct {
	// addMu makes the max-segment check and the create one step.
	addMu sync.Mutex

	repo    storage.Repository
	rng     domain.RNG
	hub     *Hub
	metrics *metrics.Metrics
	limits  Limits
}

// NewService wires a service. hub and m may be nil.
func NewService(repo storage.Repository, rng domain.RNG, hub *Hub, m *metrics.Metrics, limits Limits) *Service {
	return &Service{
		repo:    repo,
		rng:     rng,
		hub:     hub,
		metrics: m,
		limits:  limits,
	}
}

func (s *Service) Limits() Limits {
	return s.limits
}

func (s *Service) ListSegments(ctx context.Context) ([]domain.Segment, error) {
	segments, err := s.repo.ListSegments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}
	s.observeSegments(len(segments))
	return segments, nil
}

func (s *Service) AddSegment(ctx context.Context, req AddSegmentRequest) (domain.Segment, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return domain.Segment{}, (&domain.ValidationError{}).Add("label", "must not be empty")
	}

	s.addMu.Lock()
	defer s.addMu.Unlock()

	segments, err := s.repo.ListSegments(ctx)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("list segments: %w", err)
	}
	if len(segments) >= s.limits.MaxSegments {
		return domain.Segment{}, fmt.Errorf("add %q: %w", label, domain.ErrTooManySegments)
	}

	in := domain.NewSegment{Label: label, Order: len(segments)}
	if req.Order != nil {
		in.Order = *req.Order
	}
	if req.Color != nil && strings.TrimSpace(*req.Color) != "" {
		in.Color = strings.TrimSpace(*req.Color)
	} else {
		in.Color = domain.RandomColor(s.rng)
	}

	seg, err := s.repo.CreateSegment(ctx, in)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("create segment: %w", err)
	}
	s.observeSegments(len(segments) + 1)

	return seg, nil
}

func (s *Service) RemoveSegment(ctx context.Context, id int64) error {
	if err := s.repo.DeleteSegment(ctx, id); err != nil {
		return fmt.Errorf("delete segment %d: %w", id, err)
	}
	_, err := s.ListSegments(ctx)
	return err
}

func (s *Service) ResetSegments(ctx context.Context) error {
	if err := s.repo.DeleteAllSegments(ctx); err != nil {
		return fmt.Errorf("delete all segments: %w", err)
	}
	s.observeSegments(0)
	return nil
}

func (s *Service) Session(ctx context.Context) (domain.Session, error) {
	return s.repo.GetSession(ctx)
}

// UpdateSession merges patch into the session. The repository rejects a
// totalSpins below the stored value in the same step that writes it.
func (s *Service) UpdateSession(ctx context.Context, patch domain.SessionPatch) (domain.Session, error) {
	updated, err := s.repo.UpsertSession(ctx, patch)
	if err != nil {
		return domain.Session{}, fmt.Errorf("upsert session: %w", err)
	}
	return updated, nil
}

// RecordSpin counts a spin that was resolved by the caller.
func (s *Service) RecordSpin(ctx context.Context) (domain.Session, error) {
	sess, err := s.repo.IncrementSpinCount(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("increment spin count: %w", err)
	}
	if s.metrics != nil {
		s.metrics.Spins.Inc()
	}
	return sess, nil
}

// Spin turns the wheel from fromRotation by a random amount, resolves the
// winner against the current segments and records the spin.
func (s *Service) Spin(ctx context.Context, fromRotation float64) (SpinResult, error) {
	segments, err := s.ListSegments(ctx)
	if err != nil {
		return SpinResult{}, err
	}
	if len(segments) < s.limits.MinSegments {
		return SpinResult{}, fmt.Errorf("spin with %d segments: %w", len(segments), domain.ErrTooFewSegments)
	}

	rotation := fromRotation + domain.GenerateSpinRotation(s.rng)
	idx, err := domain.WinningIndex(rotation, len(segments))
	if err != nil {
		return SpinResult{}, fmt.Errorf("resolve winner: %w", err)
	}
	winner := segments[idx]

	sess, err := s.RecordSpin(ctx)
	if err != nil {
		return SpinResult{}, err
	}

	res := SpinResult{Rotation: rotation, Winner: winner, Session: sess}
	if s.metrics != nil {
		s.metrics.ObserveWin(idx)
	}
	if s.hub != nil {
		s.hub.Publish(res)
	}

	return res, nil
}

func (s *Service) observeSegments(n int) {
	if s.metrics != nil {
		s.metrics.Segments.Set(float64(n))
	}
}
