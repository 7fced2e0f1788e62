package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hperssn/spinwheel/internal/domain"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers anyway, and ":memory:" databases are per
	// connection.
	db.SetMaxOpenConns(1)

	repo := &SQLiteRepository{db: db}
	if err := repo.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *SQLiteRepository) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS wheel_segments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		label TEXT NOT NULL,
		color TEXT NOT NULL,
		sort_order INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_wheel_segments_sort_order ON wheel_segments(sort_order);

	CREATE TABLE IF NOT EXISTS wheel_sessions (
		id INTEGER PRIMARY KEY,
		total_spins INTEGER NOT NULL DEFAULT 0,
		sound_enabled BOOLEAN NOT NULL DEFAULT 1
	);
	`

	_, err := r.db.Exec(schema)
	return err
}

func (r *SQLiteRepository) ListSegments(ctx context.Context) ([]domain.Segment, error) {
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

func (r *SQLiteRepository) CreateSegment(ctx context.Context, in domain.NewSegment) (domain.Segment, error) {
	query := `
		INSERT INTO wheel_segments (label, color, sort_order)
		VALUES (?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query, in.Label, in.Color, in.Order)
	if err != nil {
		return domain.Segment{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Segment{}, err
	}

	return domain.Segment{ID: id, Label: in.Label, Color: in.Color, Order: in.Order}, nil
}

func (r *SQLiteRepository) DeleteSegment(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM wheel_segments WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepository) DeleteAllSegments(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM wheel_segments`); err != nil {
		return fmt.Errorf("delete segments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'wheel_segments'`); err != nil {
		return fmt.Errorf("reset segment ids: %w", err)
	}

	return tx.Commit()
}

func (r *SQLiteRepository) GetSession(ctx context.Context) (domain.Session, error) {
	query := `
		SELECT id, total_spins, sound_enabled
		FROM wheel_sessions
		WHERE id = ?
	`

	return scanSession(r.db.QueryRowContext(ctx, query, domain.SessionID))
}

func (r *SQLiteRepository) UpsertSession(ctx context.Context, patch domain.SessionPatch) (domain.Session, error) {
	// The pool holds one connection, so the transaction excludes every other
	// statement between the read and the write.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Session{}, err
	}
	defer tx.Rollback()

	var current *domain.Session
	existing, err := scanSession(tx.QueryRowContext(ctx,
		`SELECT id, total_spins, sound_enabled FROM wheel_sessions WHERE id = ?`, domain.SessionID))
	switch {
	case err == nil:
		current = &existing
	case !errors.Is(err, domain.ErrSessionNotFound):
		return domain.Session{}, fmt.Errorf("read session: %w", err)
	}

	if err := patch.Validate(current); err != nil {
		return domain.Session{}, err
	}

	defaults := domain.NewSession()
	query := `
		INSERT INTO wheel_sessions (id, total_spins, sound_enabled)
		VALUES (?1, COALESCE(?2, ?4), COALESCE(?3, ?5))
		ON CONFLICT (id) DO UPDATE SET
			total_spins = COALESCE(?2, wheel_sessions.total_spins),
			sound_enabled = COALESCE(?3, wheel_sessions.sound_enabled)
		RETURNING id, total_spins, sound_enabled
	`

	updated, err := scanSession(tx.QueryRowContext(ctx, query,
		domain.SessionID,
		nullInt(patch.TotalSpins),
		nullBool(patch.SoundEnabled),
		defaults.TotalSpins,
		defaults.SoundEnabled,
	))
	if err != nil {
		return domain.Session{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Session{}, err
	}
	return updated, nil
}

func (r *SQLiteRepository) IncrementSpinCount(ctx context.Context) (domain.Session, error) {
	query := `
		INSERT INTO wheel_sessions (id, total_spins, sound_enabled)
		VALUES (?1, 1, ?2)
		ON CONFLICT (id) DO UPDATE SET total_spins = wheel_sessions.total_spins + 1
		RETURNING id, total_spins, sound_enabled
	`

	return scanSession(r.db.QueryRowContext(ctx, query, domain.SessionID, domain.NewSession().SoundEnabled))
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
