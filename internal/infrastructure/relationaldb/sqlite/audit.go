package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ersonp/rolodex/internal/domain/entities"
)

// LogAction logs an action to the audit log.
func (q *queries) LogAction(ctx context.Context, action string, subjectID string, details map[string]any) error {
	detailsJSON, err := encodeJSON(details)
	if err != nil {
		return err
	}

	query := `INSERT INTO audit_log (action, subject_id, details, created_at) VALUES (?, ?, ?, ?)`
	_, err = q.db.ExecContext(ctx, query, action, nullString(subjectID), detailsJSON, timeNow().UTC())
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a subject, most recent first.
func (r *Repository) FindAuditLog(ctx context.Context, subjectID string) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, subject_id, details, created_at
		FROM audit_log
		WHERE subject_id = ?
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.AuditEntry, 0, 8)
	for rows.Next() {
		var (
			entry   entities.AuditEntry
			subject sql.NullString
			details sql.NullString
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&subject,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.SubjectID = subject.String
		if err := decodeJSON(details, &entry.Details); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
