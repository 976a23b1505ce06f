package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
	"github.com/ersonp/rolodex/internal/domain/ports"
)

// CreateContactRoleInput holds the fields for a new contact role. A nil
// StartDate defaults to now; a nil EndDate means the role is still held.
type CreateContactRoleInput struct {
	ContactID string
	EntityID  string
	Role      string
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
	Metadata  entities.Metadata
}

// ContactRoleService manages the roles contacts hold at global entities.
type ContactRoleService struct {
	store  ports.GraphStore
	logger *zap.Logger
}

// NewContactRoleService creates a new ContactRoleService.
func NewContactRoleService(store ports.GraphStore, logger *zap.Logger) *ContactRoleService {
	return &ContactRoleService{
		store:  store,
		logger: loggerOrNop(logger),
	}
}

// Create stores a new role after checking that the contact and entity exist
// and that no identical (contact, entity, role, end date) role is on file.
func (s *ContactRoleService) Create(ctx context.Context, in CreateContactRoleInput) (*entities.ContactRole, error) {
	switch {
	case strings.TrimSpace(in.ContactID) == "":
		return nil, errs.InvalidArgument("contact id is required")
	case strings.TrimSpace(in.EntityID) == "":
		return nil, errs.InvalidArgument("entity id is required")
	case strings.TrimSpace(in.Role) == "":
		return nil, errs.InvalidArgument("role is required")
	}
	if err := in.Metadata.Validate(); err != nil {
		return nil, err
	}

	role := entities.NewContactRole(newID(), in.ContactID, in.EntityID, strings.TrimSpace(in.Role), timeNow())
	role.Location = in.Location
	if in.StartDate != nil {
		role.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		end := *in.EndDate
		role.EndDate = &end
	}
	role.Metadata = in.Metadata.Clone()

	err := s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		if err := requireContact(ctx, tx, role.ContactID); err != nil {
			return err
		}
		if err := requireGlobalEntity(ctx, tx, role.EntityID); err != nil {
			return err
		}

		existing, err := tx.FindContactRole(ctx, role.ContactID, role.EntityID, role.Role, role.EndDate)
		if err != nil {
			return fmt.Errorf("checking existing contact role: %w", err)
		}
		if existing != nil {
			return errs.Conflict("contact %s already holds role %q at %s (id: %s)", role.ContactID, role.Role, role.EntityID, existing.ID)
		}

		if err := tx.InsertContactRole(ctx, &role); err != nil {
			return err
		}
		return tx.LogAction(ctx, entities.ActionContactRoleCreate, role.ID, map[string]any{
			"contact_id": role.ContactID,
			"entity_id":  role.EntityID,
			"role":       role.Role,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("contact role created",
		zap.String("id", role.ID),
		zap.String("contact_id", role.ContactID),
		zap.String("entity_id", role.EntityID),
		zap.String("role", role.Role),
	)
	return &role, nil
}

// Update merges the supplied fields into an existing role.
func (s *ContactRoleService) Update(ctx context.Context, id string, patch entities.ContactRolePatch) (*entities.ContactRole, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.InvalidArgument("contact role id is required")
	}
	if patch.Role != nil && strings.TrimSpace(*patch.Role) == "" {
		return nil, errs.InvalidArgument("role cannot be empty")
	}
	if patch.Metadata != nil {
		if err := patch.Metadata.Validate(); err != nil {
			return nil, err
		}
	}

	var updated *entities.ContactRole
	err := s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		role, err := tx.FindContactRoleByID(ctx, id)
		if err != nil {
			return fmt.Errorf("finding contact role: %w", err)
		}
		if role == nil {
			return errs.NotFound("contact role", id)
		}
		patch.Apply(role)
		if err := tx.UpdateContactRole(ctx, role); err != nil {
			return err
		}
		updated = role
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a role.
func (s *ContactRoleService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.InvalidArgument("contact role id is required")
	}
	if err := s.store.DeleteContactRole(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("contact role deleted", zap.String("id", id))
	return nil
}

// ListByContact returns the roles a contact has held.
func (s *ContactRoleService) ListByContact(ctx context.Context, contactID string) ([]entities.ContactRole, error) {
	roles, err := s.store.ListContactRolesByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("listing contact roles: %w", err)
	}
	return roles, nil
}

// ListByEntity returns the roles held at a global entity.
func (s *ContactRoleService) ListByEntity(ctx context.Context, entityID string) ([]entities.ContactRole, error) {
	roles, err := s.store.ListContactRolesByEntity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("listing contact roles: %w", err)
	}
	return roles, nil
}
