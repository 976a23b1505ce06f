package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ersonp/rolodex/internal/domain/entities"
)

const contactColumns = `id, name, type, phone, email, location, tags, added_by_id, created_at, updated_at`

// SaveContact saves or updates a contact.
func (q *queries) SaveContact(ctx context.Context, contact *entities.Contact) error {
	tags, err := encodeList(contact.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO contacts (id, name, normalized_name, type, phone, email, location, tags, added_by_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			normalized_name = excluded.normalized_name,
			type = excluded.type,
			phone = excluded.phone,
			email = excluded.email,
			location = excluded.location,
			tags = excluded.tags,
			updated_at = excluded.updated_at
	`
	_, err = q.db.ExecContext(ctx, query,
		contact.ID,
		contact.Name,
		entities.NormalizeName(contact.Name),
		string(contact.Type),
		contact.Phone,
		contact.Email,
		contact.Location,
		tags,
		contact.AddedByID,
		contact.CreatedAt.UTC(),
		contact.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving contact: %w", err)
	}
	return nil
}

// FindContactByID finds a contact by ID.
func (q *queries) FindContactByID(ctx context.Context, id string) (*entities.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`
	contact, err := scanContact(q.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// ListContactsByCreator lists contacts added by a user.
func (q *queries) ListContactsByCreator(ctx context.Context, userID string) ([]entities.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE added_by_id = ?
		ORDER BY created_at ASC, id ASC
	`
	return q.queryContacts(ctx, query, userID)
}

// SearchContacts searches a user's contacts by name.
func (q *queries) SearchContacts(ctx context.Context, userID, search string, limit int) ([]entities.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE added_by_id = ? AND normalized_name LIKE ? ESCAPE '\'
		ORDER BY name ASC, id ASC
		LIMIT ?
	`
	return q.queryContacts(ctx, query, userID, likePattern(search), limit)
}

// DeleteContact deletes a contact by ID.
func (q *queries) DeleteContact(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	return checkAffected(result, "contact", id)
}

func (q *queries) queryContacts(ctx context.Context, query string, args ...any) ([]entities.Contact, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]entities.Contact, 0, 16)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}
	return contacts, rows.Err()
}

// scanContact returns sql.ErrNoRows unwrapped so callers can detect absence.
func scanContact(s scanner) (*entities.Contact, error) {
	var (
		contact entities.Contact
		tags    string
	)
	err := s.Scan(
		&contact.ID,
		&contact.Name,
		&contact.Type,
		&contact.Phone,
		&contact.Email,
		&contact.Location,
		&tags,
		&contact.AddedByID,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning contact: %w", err)
	}
	if contact.Tags, err = decodeList(tags); err != nil {
		return nil, err
	}
	return &contact, nil
}
