package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const createRunsTable = `
CREATE TABLE IF NOT EXISTS index_runs (
	id             BIGSERIAL PRIMARY KEY,
	generated_at   TEXT        NOT NULL,
	total_videos   INTEGER     NOT NULL,
	total_words    BIGINT      NOT NULL,
	unique_words   INTEGER     NOT NULL,
	total_size     BIGINT      NOT NULL,
	artifact_path  TEXT        NOT NULL,
	artifact_bytes BIGINT      NOT NULL,
	recorded_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertRun = `
INSERT INTO index_runs
	(generated_at, total_videos, total_words, unique_words, total_size, artifact_path, artifact_bytes)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

// Run is one row of index_runs.
type Run struct {
	GeneratedAt   string
	TotalVideos   int
	TotalWords    int64
	UniqueWords   int
	TotalSize     int64
	ArtifactPath  string
	ArtifactBytes int64
}

// RecordRun creates index_runs if needed and inserts run, returning its id.
func (c *Client) RecordRun(ctx context.Context, run Run) (int64, error) {
	var id int64
	err := c.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, createRunsTable); err != nil {
			return fmt.Errorf("creating index_runs: %w", err)
		}
		row := tx.QueryRowContext(ctx, insertRun,
			run.GeneratedAt, run.TotalVideos, run.TotalWords, run.UniqueWords,
			run.TotalSize, run.ArtifactPath, run.ArtifactBytes,
		)
		if err := row.Scan(&id); err != nil {
			return fmt.Errorf("inserting index run: %w", err)
		}
		return nil
	})
	return id, err
}
