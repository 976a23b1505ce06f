package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ersonp/rolodex/internal/domain/entities"
)

const interactionColumns = `id, user_id, contact_id, entity_id, relationship_id, type, title, description, notes, duration_seconds, timestamp, metadata, created_at`

const interactionColumnsI = `i.id, i.user_id, i.contact_id, i.entity_id, i.relationship_id, i.type, i.title, i.description, i.notes, i.duration_seconds, i.timestamp, i.metadata, i.created_at`

// SaveInteraction saves or updates an interaction.
func (q *queries) SaveInteraction(ctx context.Context, interaction *entities.Interaction) error {
	metadata, err := encodeJSON(interaction.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO interactions (` + interactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			relationship_id = excluded.relationship_id,
			type = excluded.type,
			title = excluded.title,
			description = excluded.description,
			notes = excluded.notes,
			duration_seconds = excluded.duration_seconds,
			timestamp = excluded.timestamp,
			metadata = excluded.metadata
	`
	_, err = q.db.ExecContext(ctx, query,
		interaction.ID,
		interaction.UserID,
		nullString(interaction.Target.ContactID()),
		nullString(interaction.Target.EntityID()),
		nullString(interaction.RelationshipID),
		string(interaction.Type),
		interaction.Title,
		interaction.Description,
		interaction.Notes,
		nullInt(interaction.DurationSeconds),
		interaction.Timestamp.UTC(),
		metadata,
		interaction.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving interaction: %w", err)
	}
	return nil
}

// FindInteractionByID finds an interaction by ID.
func (q *queries) FindInteractionByID(ctx context.Context, id string) (*entities.Interaction, error) {
	query := `SELECT ` + interactionColumns + ` FROM interactions WHERE id = ?`
	interaction, err := scanInteraction(q.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return interaction, err
}

// ListInteractionsByUser lists a user's interactions, most recent first.
func (q *queries) ListInteractionsByUser(ctx context.Context, userID string) ([]entities.Interaction, error) {
	query := `
		SELECT ` + interactionColumns + `
		FROM interactions
		WHERE user_id = ?
		ORDER BY timestamp DESC, id ASC
	`
	rows, err := q.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Interaction, 0, 16)
	for rows.Next() {
		interaction, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *interaction)
	}
	return result, rows.Err()
}

// DeleteInteraction deletes an interaction by ID.
func (q *queries) DeleteInteraction(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM interactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting interaction: %w", err)
	}
	return checkAffected(result, "interaction", id)
}

// DeleteInteractionsByTarget deletes all interactions with target.
func (q *queries) DeleteInteractionsByTarget(ctx context.Context, target entities.Target) (int, error) {
	query := `DELETE FROM interactions WHERE contact_id = ?`
	if target.IsEntity() {
		query = `DELETE FROM interactions WHERE entity_id = ?`
	}
	result, err := q.db.ExecContext(ctx, query, target.ID())
	if err != nil {
		return 0, fmt.Errorf("deleting interactions by target: %w", err)
	}
	return countAffected(result)
}

// scanInteraction scans the interaction columns followed by any extra
// destinations. sql.ErrNoRows is returned unwrapped.
func scanInteraction(s scanner, extra ...any) (*entities.Interaction, error) {
	var (
		interaction         entities.Interaction
		contactID, entityID sql.NullString
		relationshipID      sql.NullString
		duration            sql.NullInt64
		metadata            sql.NullString
	)
	dest := []any{
		&interaction.ID,
		&interaction.UserID,
		&contactID,
		&entityID,
		&relationshipID,
		&interaction.Type,
		&interaction.Title,
		&interaction.Description,
		&interaction.Notes,
		&duration,
		&interaction.Timestamp,
		&metadata,
		&interaction.CreatedAt,
	}
	err := s.Scan(append(dest, extra...)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning interaction: %w", err)
	}

	target, err := entities.TargetFromIDs(contactID.String, entityID.String)
	if err != nil {
		return nil, fmt.Errorf("interaction %s has invalid target: %w", interaction.ID, err)
	}
	interaction.Target = target
	interaction.RelationshipID = relationshipID.String
	interaction.DurationSeconds = intPtr(duration)

	if err := decodeJSON(metadata, &interaction.Metadata); err != nil {
		return nil, err
	}
	return &interaction, nil
}
