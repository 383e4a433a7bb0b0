package store

import (
	"context"
	"database/sql"
	"time"

	"salesscout-engine/internal/domain"
)

// AppendFeedback records one dossier rating. The table is append-only;
// nothing updates or deletes rows.
func AppendFeedback(ctx context.Context, db *sql.DB, e domain.FeedbackEntry) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO feedback(at, company, kind, dialog_id)
VALUES(?,?,?,?);`,
		e.At.Format(time.RFC3339), e.CompanyID, string(e.Kind), e.DialogID)
	return err
}

func ListFeedback(ctx context.Context, db *sql.DB, limit int) ([]domain.FeedbackEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx, `
SELECT at, company, kind, dialog_id
FROM feedback
ORDER BY at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FeedbackEntry
	for rows.Next() {
		var e domain.FeedbackEntry
		var at, kind string
		if err := rows.Scan(&at, &e.CompanyID, &kind, &e.DialogID); err != nil {
			return nil, err
		}
		e.At, _ = time.Parse(time.RFC3339, at)
		e.Kind = domain.FeedbackKind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}
