package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
)

const relationshipColumns = `id, user_id, contact_id, entity_id, relation, strength, visibility, is_reciprocal, context, notes, metadata, created_at, updated_at`

// relationshipColumnsR is relationshipColumns qualified with the "r" alias.
const relationshipColumnsR = `r.id, r.user_id, r.contact_id, r.entity_id, r.relation, r.strength, r.visibility, r.is_reciprocal, r.context, r.notes, r.metadata, r.created_at, r.updated_at`

// InsertRelationship stores a new relationship. A duplicate
// (user, target, relation) is reported as a Conflict.
func (q *queries) InsertRelationship(ctx context.Context, rel *entities.Relationship) error {
	metadata, err := encodeJSON(rel.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO relationships (` + relationshipColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = q.db.ExecContext(ctx, query,
		rel.ID,
		rel.UserID,
		nullString(rel.Target.ContactID()),
		nullString(rel.Target.EntityID()),
		string(rel.Relation),
		string(rel.Strength),
		string(rel.Visibility),
		rel.IsReciprocal,
		rel.Context,
		rel.Notes,
		metadata,
		rel.CreatedAt.UTC(),
		rel.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("relationship %s from %s to %s already exists", rel.Relation, rel.UserID, rel.Target)
		}
		return fmt.Errorf("inserting relationship: %w", err)
	}
	return nil
}

// UpdateRelationship overwrites the mutable fields of a relationship.
func (q *queries) UpdateRelationship(ctx context.Context, rel *entities.Relationship) error {
	metadata, err := encodeJSON(rel.Metadata)
	if err != nil {
		return err
	}

	query := `
		UPDATE relationships SET
			relation = ?,
			strength = ?,
			visibility = ?,
			is_reciprocal = ?,
			context = ?,
			notes = ?,
			metadata = ?,
			updated_at = ?
		WHERE id = ?
	`
	result, err := q.db.ExecContext(ctx, query,
		string(rel.Relation),
		string(rel.Strength),
		string(rel.Visibility),
		rel.IsReciprocal,
		rel.Context,
		rel.Notes,
		metadata,
		rel.UpdatedAt.UTC(),
		rel.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("relationship %s from %s to %s already exists", rel.Relation, rel.UserID, rel.Target)
		}
		return fmt.Errorf("updating relationship: %w", err)
	}
	return checkAffected(result, "relationship", rel.ID)
}

// FindRelationshipByID finds a relationship by ID.
func (q *queries) FindRelationshipByID(ctx context.Context, id string) (*entities.Relationship, error) {
	query := `SELECT ` + relationshipColumns + ` FROM relationships WHERE id = ?`
	return findRelationship(q.db.QueryRowContext(ctx, query, id))
}

// FindRelationship finds the relationship for (user, target, relation).
func (q *queries) FindRelationship(ctx context.Context, userID string, target entities.Target, relation entities.RelationKind) (*entities.Relationship, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM relationships
		WHERE user_id = ?
		  AND COALESCE(contact_id, '') = ?
		  AND COALESCE(entity_id, '') = ?
		  AND relation = ?
	`
	row := q.db.QueryRowContext(ctx, query, userID, target.ContactID(), target.EntityID(), string(relation))
	return findRelationship(row)
}

// ListRelationshipsByUser lists relationships sourced by a user.
func (q *queries) ListRelationshipsByUser(ctx context.Context, userID string) ([]entities.Relationship, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM relationships
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`
	return q.queryRelationships(ctx, query, userID)
}

// DeleteRelationship deletes a relationship by ID.
func (q *queries) DeleteRelationship(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting relationship: %w", err)
	}
	return checkAffected(result, "relationship", id)
}

// DeleteRelationshipsByTarget deletes all relationships pointing at target.
func (q *queries) DeleteRelationshipsByTarget(ctx context.Context, target entities.Target) (int, error) {
	query := `DELETE FROM relationships WHERE contact_id = ?`
	if target.IsEntity() {
		query = `DELETE FROM relationships WHERE entity_id = ?`
	}
	result, err := q.db.ExecContext(ctx, query, target.ID())
	if err != nil {
		return 0, fmt.Errorf("deleting relationships by target: %w", err)
	}
	return countAffected(result)
}

// DeleteRelationshipsByUser deletes all relationships sourced by userID.
func (q *queries) DeleteRelationshipsByUser(ctx context.Context, userID string) (int, error) {
	result, err := q.db.ExecContext(ctx, `DELETE FROM relationships WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting relationships by user: %w", err)
	}
	return countAffected(result)
}

// queryRelationships is a helper to execute relationship queries.
func (q *queries) queryRelationships(ctx context.Context, query string, args ...any) ([]entities.Relationship, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying relationships: %w", err)
	}
	defer rows.Close()

	relationships := make([]entities.Relationship, 0, 16)
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, err
		}
		relationships = append(relationships, *rel)
	}
	return relationships, rows.Err()
}

func findRelationship(row *sql.Row) (*entities.Relationship, error) {
	rel, err := scanRelationship(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rel, err
}

// scanRelationship scans the relationship columns followed by any extra
// destinations. sql.ErrNoRows is returned unwrapped.
func scanRelationship(s scanner, extra ...any) (*entities.Relationship, error) {
	var (
		rel                 entities.Relationship
		contactID, entityID sql.NullString
		metadata            sql.NullString
	)
	dest := []any{
		&rel.ID,
		&rel.UserID,
		&contactID,
		&entityID,
		&rel.Relation,
		&rel.Strength,
		&rel.Visibility,
		&rel.IsReciprocal,
		&rel.Context,
		&rel.Notes,
		&metadata,
		&rel.CreatedAt,
		&rel.UpdatedAt,
	}
	err := s.Scan(append(dest, extra...)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning relationship: %w", err)
	}

	target, err := entities.TargetFromIDs(contactID.String, entityID.String)
	if err != nil {
		return nil, fmt.Errorf("relationship %s has invalid target: %w", rel.ID, err)
	}
	rel.Target = target

	if err := decodeJSON(metadata, &rel.Metadata); err != nil {
		return nil, err
	}
	return &rel, nil
}
