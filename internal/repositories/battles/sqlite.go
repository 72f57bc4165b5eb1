package battles

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
)

const schema = `CREATE TABLE IF NOT EXISTS battles (
	id         TEXT PRIMARY KEY,
	turn       INTEGER NOT NULL,
	outcome    TEXT NOT NULL,
	snapshot   BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteRepository persists battles in a SQLite file
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

var _ Repository = (*SQLiteRepository)(nil)

// SQLiteConfig contains configuration for the SQLite battle repository
type SQLiteConfig struct {
	// Path is a file path, or ":memory:" for a private in-process database
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return errors.InvalidArgument("path is required")
	}
	return nil
}

// OpenSQLite opens the database and creates the table if needed
func OpenSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := ":memory:"
	if cfg.Path != ":memory:" {
		dsn = filepath.Clean(cfg.Path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite db")
	}
	// one connection keeps a :memory: database alive and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite db")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create battles table")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &SQLiteRepository{db: db, clock: c}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Save upserts a snapshot
func (r *SQLiteRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateRecord(input); err != nil {
		return nil, err
	}

	rec := copyRecord(input.Record)
	rec.UpdatedAt = r.clock.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO battles (id, turn, outcome, snapshot, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   turn = excluded.turn,
		   outcome = excluded.outcome,
		   snapshot = excluded.snapshot,
		   updated_at = excluded.updated_at`,
		rec.ID, rec.Turn, rec.Outcome, rec.Snapshot, rec.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save battle %s", rec.ID)
	}
	return &SaveOutput{Record: rec}, nil
}

// Get loads a snapshot
func (r *SQLiteRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateID(input.BattleID); err != nil {
		return nil, err
	}

	var (
		rec     Record
		updated int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, turn, outcome, snapshot, updated_at FROM battles WHERE id = ?`,
		input.BattleID,
	).Scan(&rec.ID, &rec.Turn, &rec.Outcome, &rec.Snapshot, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("battle %s not found", input.BattleID)
		}
		return nil, errors.Wrapf(err, "failed to get battle %s", input.BattleID)
	}
	rec.UpdatedAt = time.UnixMilli(updated).UTC()
	return &GetOutput{Record: &rec}, nil
}

// Delete removes a snapshot
func (r *SQLiteRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateID(input.BattleID); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM battles WHERE id = ?`, input.BattleID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete battle %s", input.BattleID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return nil, errors.NotFoundf("battle %s not found", input.BattleID)
	}
	return &DeleteOutput{}, nil
}
