package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
	"github.com/ersonp/rolodex/internal/domain/ports"
)

// CreateUserInput holds the fields for a new user. PasswordHash is produced
// by the caller; this package never sees a plaintext password.
type CreateUserInput struct {
	Email        string
	Name         string
	Phone        string
	PasswordHash string
}

// UserService manages graph owners.
type UserService struct {
	store  ports.GraphStore
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(store ports.GraphStore, logger *zap.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: loggerOrNop(logger),
	}
}

// Create registers a user. The email is normalized and must be unique.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entities.User, error) {
	email := entities.NormalizeEmail(in.Email)
	if email == "" {
		return nil, errs.InvalidArgument("email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, errs.InvalidArgument("invalid email: %q", in.Email)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errs.InvalidArgument("name is required")
	}

	now := timeNow()
	user := &entities.User{
		ID:           newID(),
		Email:        email,
		Name:         name,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: in.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		existing, err := tx.FindUserByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("checking existing user: %w", err)
		}
		if existing != nil {
			return errs.Conflict("user with email %s already exists", email)
		}
		return tx.SaveUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("id", user.ID))
	return user, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	if user == nil {
		return nil, errs.NotFound("user", id)
	}
	return user, nil
}

// GetByEmail returns a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	if user == nil {
		return nil, errs.NotFound("user", entities.NormalizeEmail(email))
	}
	return user, nil
}

// Update merges the supplied fields into an existing user.
func (s *UserService) Update(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, errs.InvalidArgument("name cannot be empty")
	}

	var updated *entities.User
	err := s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		user, err := tx.FindUserByID(ctx, id)
		if err != nil {
			return fmt.Errorf("finding user: %w", err)
		}
		if user == nil {
			return errs.NotFound("user", id)
		}
		patch.Apply(user)
		user.UpdatedAt = timeNow()
		if err := tx.SaveUser(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
