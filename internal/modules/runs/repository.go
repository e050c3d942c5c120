package runs

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const schema = `
CREATE TABLE IF NOT EXISTS optimization_runs (
	uuid            TEXT PRIMARY KEY,
	strategy        TEXT NOT NULL,
	num_assets      INTEGER NOT NULL,
	expected_return REAL NOT NULL,
	volatility      REAL NOT NULL,
	sharpe_ratio    REAL NOT NULL,
	payload         BLOB,
	created_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON optimization_runs(created_at);
`

// Repository handles CRUD operations for optimization runs.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a run repository and ensures the schema exists.
func NewRepository(db *sql.DB, log zerolog.Logger) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create runs schema: %w", err)
	}
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "runs").Logger(),
	}, nil
}

// Save stores a run, assigning a UUID when the record has none.
// Returns the run ID.
func (r *Repository) Save(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO optimization_runs
			(uuid, strategy, num_assets, expected_return, volatility, sharpe_ratio, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Strategy,
		run.NumAssets,
		run.ExpectedReturn,
		run.Volatility,
		run.SharpeRatio,
		run.Payload,
		run.CreatedAt.Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	return run.ID, nil
}

// Get returns a single run by ID, or sql.ErrNoRows wrapped when absent.
func (r *Repository) Get(id string) (*Run, error) {
	row := r.db.QueryRow(`
		SELECT uuid, strategy, num_assets, expected_return, volatility, sharpe_ratio, payload, created_at
		FROM optimization_runs
		WHERE uuid = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return run, nil
}

// List returns the most recent runs, newest first.
func (r *Repository) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(`
		SELECT uuid, strategy, num_assets, expected_return, volatility, sharpe_ratio, payload, created_at
		FROM optimization_runs
		ORDER BY created_at DESC, uuid
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return out, nil
}

// Prune deletes runs older than the retention window and returns the
// number of rows removed.
func (r *Repository) Prune(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).Unix()

	res, err := r.db.Exec(`DELETE FROM optimization_runs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned runs: %w", err)
	}
	if deleted > 0 {
		r.log.Info().Int64("deleted", deleted).Msg("Pruned old optimization runs")
	}
	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var createdAt int64
	if err := row.Scan(
		&run.ID,
		&run.Strategy,
		&run.NumAssets,
		&run.ExpectedReturn,
		&run.Volatility,
		&run.SharpeRatio,
		&run.Payload,
		&createdAt,
	); err != nil {
		return nil, err
	}
	run.CreatedAt = time.Unix(createdAt, 0)
	return &run, nil
}
