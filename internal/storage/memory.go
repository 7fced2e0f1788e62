package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/hperssn/spinwheel/internal/domain"
)

const firstSegmentID int64 = 1

// MemoryRepository keeps segments and the session in process memory. One
// mutex guards both collections and the ID counter.
type MemoryRepository struct {
	mu       sync.Mutex
	segments map[int64]domain.Segment
	nextID   int64
	session  *domain.Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		segments: make(map[int64]domain.Segment),
		nextID:   firstSegmentID,
	}
}

func (m *MemoryRepository) ListSegments(_ context.Context) ([]domain.Segment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Segment, 0, len(m.segments))
	for _, s := range m.segments {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (m *MemoryRepository) CreateSegment(_ context.Context, in domain.NewSegment) (domain.Segment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := domain.Segment{
		ID:    m.nextID,
		Label: in.Label,
		Color: in.Color,
		Order: in.Order,
	}
	m.nextID++
	m.segments[s.ID] = s

	return s, nil
}

func (m *MemoryRepository) DeleteSegment(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.segments, id)
	return nil
}

func (m *MemoryRepository) DeleteAllSegments(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.segments)
	m.nextID = firstSegmentID
	return nil
}

func (m *MemoryRepository) GetSession(_ context.Context) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return *m.session, nil
}

func (m *MemoryRepository) UpsertSession(_ context.Context, patch domain.SessionPatch) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := patch.Validate(m.session); err != nil {
		return domain.Session{}, err
	}

	base := domain.NewSession()
	if m.session != nil {
		base = *m.session
	}

	updated := base.Apply(patch)
	m.session = &updated
	return updated, nil
}

func (m *MemoryRepository) IncrementSpinCount(_ context.Context) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		s := domain.NewSession()
		m.session = &s
	}
	m.session.TotalSpins++

	return *m.session, nil
}

func (m *MemoryRepository) Close() error {
	return nil
}
