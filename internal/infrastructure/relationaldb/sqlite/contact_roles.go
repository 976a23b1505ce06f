package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
)

const contactRoleColumns = `id, contact_id, entity_id, role, location, start_date, end_date, metadata, created_at`

// InsertContactRole stores a new contact role. A duplicate
// (contact, entity, role, end date) is reported as a Conflict.
func (q *queries) InsertContactRole(ctx context.Context, role *entities.ContactRole) error {
	metadata, err := encodeJSON(role.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO contact_roles (` + contactRoleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = q.db.ExecContext(ctx, query,
		role.ID,
		role.ContactID,
		role.EntityID,
		role.Role,
		role.Location,
		role.StartDate.UTC(),
		nullTime(role.EndDate),
		metadata,
		role.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("contact %s already holds role %q at %s", role.ContactID, role.Role, role.EntityID)
		}
		return fmt.Errorf("inserting contact role: %w", err)
	}
	return nil
}

// UpdateContactRole overwrites the mutable fields of a contact role.
func (q *queries) UpdateContactRole(ctx context.Context, role *entities.ContactRole) error {
	metadata, err := encodeJSON(role.Metadata)
	if err != nil {
		return err
	}

	query := `
		UPDATE contact_roles SET
			role = ?,
			location = ?,
			start_date = ?,
			end_date = ?,
			metadata = ?
		WHERE id = ?
	`
	result, err := q.db.ExecContext(ctx, query,
		role.Role,
		role.Location,
		role.StartDate.UTC(),
		nullTime(role.EndDate),
		metadata,
		role.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("contact %s already holds role %q at %s", role.ContactID, role.Role, role.EntityID)
		}
		return fmt.Errorf("updating contact role: %w", err)
	}
	return checkAffected(result, "contact role", role.ID)
}

// FindContactRoleByID finds a contact role by ID.
func (q *queries) FindContactRoleByID(ctx context.Context, id string) (*entities.ContactRole, error) {
	query := `SELECT ` + contactRoleColumns + ` FROM contact_roles WHERE id = ?`
	return findContactRole(q.db.QueryRowContext(ctx, query, id))
}

// FindContactRole finds the role for (contact, entity, role, endDate). A nil
// endDate only matches open-ended roles.
func (q *queries) FindContactRole(ctx context.Context, contactID, entityID, role string, endDate *time.Time) (*entities.ContactRole, error) {
	query := `
		SELECT ` + contactRoleColumns + `
		FROM contact_roles
		WHERE contact_id = ? AND entity_id = ? AND role = ? AND end_date IS ?
	`
	row := q.db.QueryRowContext(ctx, query, contactID, entityID, role, nullTime(endDate))
	return findContactRole(row)
}

// ListContactRolesByContact lists the roles held by a contact.
func (q *queries) ListContactRolesByContact(ctx context.Context, contactID string) ([]entities.ContactRole, error) {
	query := `
		SELECT ` + contactRoleColumns + `
		FROM contact_roles
		WHERE contact_id = ?
		ORDER BY start_date ASC, id ASC
	`
	return q.queryContactRoles(ctx, query, contactID)
}

// ListContactRolesByEntity lists the roles held at a global entity.
func (q *queries) ListContactRolesByEntity(ctx context.Context, entityID string) ([]entities.ContactRole, error) {
	query := `
		SELECT ` + contactRoleColumns + `
		FROM contact_roles
		WHERE entity_id = ?
		ORDER BY start_date ASC, id ASC
	`
	return q.queryContactRoles(ctx, query, entityID)
}

// DeleteContactRole deletes a contact role by ID.
func (q *queries) DeleteContactRole(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM contact_roles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contact role: %w", err)
	}
	return checkAffected(result, "contact role", id)
}

// DeleteContactRolesByContact deletes all roles of a contact.
func (q *queries) DeleteContactRolesByContact(ctx context.Context, contactID string) (int, error) {
	result, err := q.db.ExecContext(ctx, `DELETE FROM contact_roles WHERE contact_id = ?`, contactID)
	if err != nil {
		return 0, fmt.Errorf("deleting contact roles by contact: %w", err)
	}
	return countAffected(result)
}

// DeleteContactRolesByEntity deletes all roles at a global entity.
func (q *queries) DeleteContactRolesByEntity(ctx context.Context, entityID string) (int, error) {
	result, err := q.db.ExecContext(ctx, `DELETE FROM contact_roles WHERE entity_id = ?`, entityID)
	if err != nil {
		return 0, fmt.Errorf("deleting contact roles by entity: %w", err)
	}
	return countAffected(result)
}

func (q *queries) queryContactRoles(ctx context.Context, query string, args ...any) ([]entities.ContactRole, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying contact roles: %w", err)
	}
	defer rows.Close()

	roles := make([]entities.ContactRole, 0, 8)
	for rows.Next() {
		role, err := scanContactRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, rows.Err()
}

func findContactRole(row *sql.Row) (*entities.ContactRole, error) {
	role, err := scanContactRole(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return role, err
}

func scanContactRole(s scanner) (*entities.ContactRole, error) {
	var (
		role     entities.ContactRole
		endDate  sql.NullTime
		metadata sql.NullString
	)
	err := s.Scan(
		&role.ID,
		&role.ContactID,
		&role.EntityID,
		&role.Role,
		&role.Location,
		&role.StartDate,
		&endDate,
		&metadata,
		&role.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning contact role: %w", err)
	}
	role.EndDate = timePtr(endDate)
	if err := decodeJSON(metadata, &role.Metadata); err != nil {
		return nil, err
	}
	return &role, nil
}
