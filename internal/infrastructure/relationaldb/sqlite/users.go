package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
)

const userColumns = `id, email, name, phone, password_hash, created_at, updated_at`

// SaveUser saves or updates a user.
func (q *queries) SaveUser(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			phone = excluded.phone,
			password_hash = excluded.password_hash,
			updated_at = excluded.updated_at
	`
	_, err := q.db.ExecContext(ctx, query,
		user.ID,
		entities.NormalizeEmail(user.Email),
		user.Name,
		user.Phone,
		user.PasswordHash,
		user.CreatedAt.UTC(),
		user.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("user with email %s already exists", user.Email)
		}
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// FindUserByID finds a user by ID.
func (q *queries) FindUserByID(ctx context.Context, id string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(q.db.QueryRowContext(ctx, query, id))
}

// FindUserByEmail finds a user by email (case-insensitive).
func (q *queries) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(q.db.QueryRowContext(ctx, query, entities.NormalizeEmail(email)))
}

func scanUser(row *sql.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Phone,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &user, nil
}
