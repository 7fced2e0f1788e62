package storage

import (
	"context"

	"github.com/hperssn/spinwheel/internal/domain"
)

// Repository owns the wheel's segments and its single session. Every method
// is atomic with respect to the others.
type Repository interface {
	// ListSegments returns all segments ordered by Order, then by ID.
	ListSegments(ctx context.Context) ([]domain.Segment, error)

	CreateSegment(ctx context.Context, s domain.NewSegment) (domain.Segment, error)

	// DeleteSegment removes the segment with id. Absent ids are not an error.
	DeleteSegment(ctx context.Context, id int64) error

	// DeleteAllSegments clears every segment and restarts ID assignment at 1.
	DeleteAllSegments(ctx context.Context) error

	// GetSession returns domain.ErrSessionNotFound until a session exists.
	GetSession(ctx context.Context) (domain.Session, error)

	// UpsertSession merges patch onto the session, or onto the defaults when
	// none exists. A patch that would lower TotalSpins fails with a
	// *domain.ValidationError; the check and the write happen in one step.
	UpsertSession(ctx context.Context, patch domain.SessionPatch) (domain.Session, error)

	IncrementSpinCount(ctx context.Context) (domain.Session, error)

	Close() error
}
