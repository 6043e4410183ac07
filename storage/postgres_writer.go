package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"tmdb-analyzer/models"
	"tmdb-analyzer/utils"
)

const (
	insertBatchSize = 50
	movieColumns    = 9
)

// PostgresWriter persists cleaned movies to PostgreSQL. Every writer owns a
// fresh run id so repeated runs never overwrite each other.
type PostgresWriter struct {
	db    *sql.DB
	ctx   context.Context
	runID uuid.UUID
}

// NewPostgresWriter opens a connection to PostgreSQL, waits for it to accept
// pings, runs schema migrations and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error {
		return db.PingContext(ctx)
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db, ctx: ctx, runID: uuid.New()}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

// RunID identifies the rows written by this writer.
func (pw *PostgresWriter) RunID() uuid.UUID { return pw.runID }

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.ExecContext(pw.ctx, `
		CREATE TABLE IF NOT EXISTS movies (
			id           SERIAL PRIMARY KEY,
			run_id       UUID             NOT NULL,
			title        TEXT             NOT NULL,
			vote_average DOUBLE PRECISION NOT NULL,
			vote_count   DOUBLE PRECISION,
			budget       DOUBLE PRECISION NOT NULL,
			revenue      DOUBLE PRECISION NOT NULL,
			popularity   DOUBLE PRECISION,
			release_date DATE,
			created_at   TIMESTAMPTZ      NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_movies_run_id       ON movies(run_id);
		CREATE INDEX IF NOT EXISTS idx_movies_vote_average ON movies(vote_average);
		CREATE INDEX IF NOT EXISTS idx_movies_release_date ON movies(release_date);
	`)
	return err
}

// Write batch-inserts all cleaned movies under the writer's run id.
func (pw *PostgresWriter) Write(movies []*models.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	tx, err := pw.db.BeginTx(pw.ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}

	for i := 0; i < len(movies); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(movies) {
			end = len(movies)
		}
		query, args := buildInsert(pw.runID, movies[i:end])
		if _, err := tx.ExecContext(pw.ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// Count returns how many movies are stored for this run.
func (pw *PostgresWriter) Count() (int, error) {
	var n int
	err := pw.db.QueryRowContext(pw.ctx,
		"SELECT COUNT(*) FROM movies WHERE run_id = $1", pw.runID.String()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// buildInsert renders one multi-row INSERT for the batch. Absent optional
// values are bound as NULL.
func buildInsert(runID uuid.UUID, batch []*models.Movie) (string, []any) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*movieColumns)

	for idx, m := range batch {
		base := idx * movieColumns
		ph := make([]string, movieColumns)
		for k := range ph {
			ph[k] = fmt.Sprintf("$%d", base+k+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")

		valueArgs = append(valueArgs,
			runID.String(),
			m.Title,
			m.VoteAverage,
			nullFloat(m.VoteCount),
			m.Budget,
			m.Revenue,
			nullFloat(m.Popularity),
			nullDate(m.ReleaseDate),
			time.Now().UTC(),
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO movies (run_id, title, vote_average, vote_count, budget, revenue, popularity, release_date, created_at)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	return query, valueArgs
}

func nullFloat(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func nullDate(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
