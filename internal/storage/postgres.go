package storage

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq"

	"github.com/hperssn/spinwheel/internal/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(connStr string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	repo := &PostgresRepository{db: db}
	if err := repo.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *PostgresRepository) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS wheel_segments (
		id BIGSERIAL PRIMARY KEY,
		label TEXT NOT NULL,
		color TEXT NOT NULL,
		sort_order INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_wheel_segments_sort_order ON wheel_segments(sort_order);

	CREATE TABLE IF NOT EXISTS wheel_sessions (
		id BIGINT PRIMARY KEY,
		total_spins INTEGER NOT NULL DEFAULT 0,
		sound_enabled BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	_, err := r.db.Exec(schema)
	return err
}

func (r *PostgresRepository) ListSegments(ctx context.Context) ([]domain.Segment, error) {
	query := `
		SELECT id, label, color, sort_order
		FROM wheel_segments
		ORDER BY sort_order ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSegments(rows)
}

func (r *PostgresRepository) CreateSegment(ctx context.Context, in domain.NewSegment) (domain.Segment, error) {
	query := `
		INSERT INTO wheel_segments (label, color, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id, label, color, sort_order
	`

	return scanSegment(r.db.QueryRowContext(ctx, query, in.Label, in.Color, in.Order))
}

func (r *PostgresRepository) DeleteSegment(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM wheel_segments WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) DeleteAllSegments(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `TRUNCATE wheel_segments RESTART IDENTITY`)
	return err
}

func (r *PostgresRepository) GetSession(ctx context.Context) (domain.Session, error) {
	query := `
		SELECT id, total_spins, sound_enabled
		FROM wheel_sessions
		WHERE id = $1
	`

	return scanSession(r.db.QueryRowContext(ctx, query, domain.SessionID))
}

func (r *PostgresRepository) UpsertSession(ctx context.Context, patch domain.SessionPatch) (domain.Session, error) {
	if err := patch.Validate(nil); err != nil {
		return domain.Session{}, err
	}

	// The WHERE on the conflict branch keeps a stale totalSpins from landing
	// after a concurrent increment. A skipped update returns no row.
	defaults := domain.NewSession()
	query := `
		INSERT INTO wheel_sessions (id, total_spins, sound_enabled)
		VALUES ($1, COALESCE($2::integer, $4::integer), COALESCE($3::boolean, $5::boolean))
		ON CONFLICT (id) DO UPDATE SET
			total_spins = COALESCE($2::integer, wheel_sessions.total_spins),
			sound_enabled = COALESCE($3::boolean, wheel_sessions.sound_enabled)
		WHERE $2::integer IS NULL OR $2::integer >= wheel_sessions.total_spins
		RETURNING id, total_spins, sound_enabled
	`

	s, err := scanSession(r.db.QueryRowContext(ctx, query,
		domain.SessionID,
		nullInt(patch.TotalSpins),
		nullBool(patch.SoundEnabled),
		defaults.TotalSpins,
		defaults.SoundEnabled,
	))
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.Session{}, (&domain.ValidationError{}).Add("totalSpins", "must not decrease")
	}
	return s, err
}

func (r *PostgresRepository) IncrementSpinCount(ctx context.Context) (domain.Session, error) {
	query := `
		INSERT INTO wheel_sessions (id, total_spins, sound_enabled)
		VALUES ($1, 1, $2)
		ON CONFLICT (id) DO UPDATE SET total_spins = wheel_sessions.total_spins + 1
		RETURNING id, total_spins, sound_enabled
	`

	return scanSession(r.db.QueryRowContext(ctx, query, domain.SessionID, domain.NewSession().SoundEnabled))
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}
