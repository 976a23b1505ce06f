package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ersonp/rolodex/internal/domain/entities"
)

const globalEntityColumns = `id, name, type, categories, description, phone, email, website, address, metadata, created_at, updated_at`

// SaveGlobalEntity saves or updates a global entity.
func (q *queries) SaveGlobalEntity(ctx context.Context, entity *entities.GlobalEntity) error {
	categories, err := encodeList(entity.Categories)
	if err != nil {
		return err
	}
	metadata, err := encodeJSON(entity.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO global_entities (` + globalEntityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			categories = excluded.categories,
			description = excluded.description,
			phone = excluded.phone,
			email = excluded.email,
			website = excluded.website,
			address = excluded.address,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
	`
	_, err = q.db.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Type,
		categories,
		entity.Description,
		entity.Phone,
		entity.Email,
		entity.Website,
		entity.Address,
		metadata,
		entity.CreatedAt.UTC(),
		entity.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving global entity: %w", err)
	}
	return nil
}

// FindGlobalEntityByID finds a global entity by ID.
func (q *queries) FindGlobalEntityByID(ctx context.Context, id string) (*entities.GlobalEntity, error) {
	query := `SELECT ` + globalEntityColumns + ` FROM global_entities WHERE id = ?`
	entity, err := scanGlobalEntity(q.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// ListGlobalEntities lists all global entities.
func (q *queries) ListGlobalEntities(ctx context.Context) ([]entities.GlobalEntity, error) {
	query := `
		SELECT ` + globalEntityColumns + `
		FROM global_entities
		ORDER BY created_at ASC, id ASC
	`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying global entities: %w", err)
	}
	defer rows.Close()

	result := make([]entities.GlobalEntity, 0, 16)
	for rows.Next() {
		entity, err := scanGlobalEntity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *entity)
	}
	return result, rows.Err()
}

// DeleteGlobalEntity deletes a global entity by ID.
func (q *queries) DeleteGlobalEntity(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM global_entities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting global entity: %w", err)
	}
	return checkAffected(result, "global entity", id)
}

func scanGlobalEntity(s scanner) (*entities.GlobalEntity, error) {
	var (
		entity     entities.GlobalEntity
		categories string
		metadata   sql.NullString
	)
	err := s.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Type,
		&categories,
		&entity.Description,
		&entity.Phone,
		&entity.Email,
		&entity.Website,
		&entity.Address,
		&metadata,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning global entity: %w", err)
	}
	if entity.Categories, err = decodeList(categories); err != nil {
		return nil, err
	}
	if err := decodeJSON(metadata, &entity.Metadata); err != nil {
		return nil, err
	}
	return &entity, nil
}
