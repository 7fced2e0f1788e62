package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/hperssn/spinwheel/internal/domain"
)

// Seed installs the default segments when the repository holds none, and
// the default session when none exists yet.
func Seed(ctx context.Context, repo Repository) error {
	segments, err := repo.ListSegments(ctx)
	if err != nil {
		return fmt.Errorf("list segments: %w", err)
	}
	if len(segments) == 0 {
		for _, s := range domain.DefaultSegments() {
			if _, err := repo.CreateSegment(ctx, s); err != nil {
				return fmt.Errorf("create segment %q: %w", s.Label, err)
			}
		}
	}

	_, err = repo.GetSession(ctx)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		if _, err := repo.UpsertSession(ctx, domain.SessionPatch{}); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
	case err != nil:
		return fmt.Errorf("get session: %w", err)
	}

	return nil
}
