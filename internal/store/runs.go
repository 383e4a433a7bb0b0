package store

import (
	"context"
	"database/sql"
	"time"
)

// Run is one research run's history row.
type Run struct {
	ID         string `json:"id"`
	Query      string `json:"query"`
	DialogID   string `json:"dialog_id"`
	Status     string `json:"status"` // running | done | not_found | failed
	Error      string `json:"error,omitempty"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
}

func InsertRun(ctx context.Context, db *sql.DB, id, query, dialogID string) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO runs(id, query, dialog_id, status, started_at)
VALUES(?,?,?,'running',?);`,
		id, query, dialogID, time.Now().UTC().Format(time.RFC3339))
	return err
}

func FinishRun(ctx context.Context, db *sql.DB, id, status, errMsg string) error {
	_, err := db.ExecContext(ctx, `
UPDATE runs
SET status = ?, error = ?, finished_at = ?
WHERE id = ?;`,
		status, errMsg, time.Now().UTC().Format(time.RFC3339), id)
	return err
}

func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, query, dialog_id, status, error, started_at, finished_at
FROM runs
ORDER BY started_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Query, &r.DialogID, &r.Status, &r.Error, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
