package storage

import (
	"database/sql"
	"errors"

	"github.com/hperssn/spinwheel/internal/domain"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSegment(row rowScanner) (domain.Segment, error) {
	var s domain.Segment
	err := row.Scan(&s.ID, &s.Label, &s.Color, &s.Order)
	return s, err
}

func scanSegments(rows *sql.Rows) ([]domain.Segment, error) {
	segments := make([]domain.Segment, 0)

	for rows.Next() {
		s, err := scanSegment(rows)
		if err != nil {
			return nil, err
		}
		segments = append(segments, s)
	}

	return segments, rows.Err()
}

func scanSession(row rowScanner) (domain.Session, error) {
	var s domain.Session
	err := row.Scan(&s.ID, &s.TotalSpins, &s.SoundEnabled)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s, err
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}
