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

// CreateGlobalEntityInput holds the fields for a new global entity.
type CreateGlobalEntityInput struct {
	Name        string
	Type        string
	Categories  []string
	Description string
	Phone       string
	Email       string
	Website     string
	Address     string
	Metadata    entities.Metadata
}

// EntityDeleteResult reports what a global entity deletion removed.
type EntityDeleteResult struct {
	Relationships int `json:"relationships"`
	Interactions  int `json:"interactions"`
	Roles         int `json:"roles"`
}

// GlobalEntityService manages shared organizations and professionals.
type GlobalEntityService struct {
	store  ports.GraphStore
	logger *zap.Logger
}

// NewGlobalEntityService creates a new GlobalEntityService.
func NewGlobalEntityService(store ports.GraphStore, logger *zap.Logger) *GlobalEntityService {
	return &GlobalEntityService{
		store:  store,
		logger: loggerOrNop(logger),
	}
}

// Create adds a global entity.
func (s *GlobalEntityService) Create(ctx context.Context, in CreateGlobalEntityInput) (*entities.GlobalEntity, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errs.InvalidArgument("name is required")
	}
	entityType := strings.ToLower(strings.TrimSpace(in.Type))
	if entityType == "" {
		return nil, errs.InvalidArgument("type is required")
	}
	if err := in.Metadata.Validate(); err != nil {
		return nil, err
	}

	now := timeNow()
	entity := &entities.GlobalEntity{
		ID:          newID(),
		Name:        name,
		Type:        entityType,
		Categories:  entities.NormalizeTags(in.Categories),
		Description: in.Description,
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		Website:     strings.TrimSpace(in.Website),
		Address:     in.Address,
		Metadata:    in.Metadata.Clone(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.SaveGlobalEntity(ctx, entity); err != nil {
		return nil, fmt.Errorf("saving global entity: %w", err)
	}

	s.logger.Debug("global entity created", zap.String("id", entity.ID), zap.String("type", entity.Type))
	return entity, nil
}

// Get returns a global entity by id.
func (s *GlobalEntityService) Get(ctx context.Context, id string) (*entities.GlobalEntity, error) {
	entity, err := s.store.FindGlobalEntityByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding global entity: %w", err)
	}
	if entity == nil {
		return nil, errs.NotFound("global entity", id)
	}
	return entity, nil
}

// List returns every global entity.
func (s *GlobalEntityService) List(ctx context.Context) ([]entities.GlobalEntity, error) {
	all, err := s.store.ListGlobalEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing global entities: %w", err)
	}
	return all, nil
}

// ListByCategory returns the global entities carrying category.
func (s *GlobalEntityService) ListByCategory(ctx context.Context, category string) ([]entities.GlobalEntity, error) {
	if strings.TrimSpace(category) == "" {
		return nil, errs.InvalidArgument("category is required")
	}
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]entities.GlobalEntity, 0, len(all))
	for i := range all {
		if all[i].HasCategory(category) {
			matched = append(matched, all[i])
		}
	}
	return matched, nil
}

// Update merges the supplied fields into an existing global entity.
func (s *GlobalEntityService) Update(ctx context.Context, id string, patch entities.GlobalEntityPatch) (*entities.GlobalEntity, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, errs.InvalidArgument("name cannot be empty")
	}
	if patch.Metadata != nil {
		if err := patch.Metadata.Validate(); err != nil {
			return nil, err
		}
	}

	var updated *entities.GlobalEntity
	err := s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		entity, err := tx.FindGlobalEntityByID(ctx, id)
		if err != nil {
			return fmt.Errorf("finding global entity: %w", err)
		}
		if entity == nil {
			return errs.NotFound("global entity", id)
		}
		patch.Apply(entity)
		entity.UpdatedAt = timeNow()
		if err := tx.SaveGlobalEntity(ctx, entity); err != nil {
			return err
		}
		updated = entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a global entity with its relationships, interactions and
// contact roles.
func (s *GlobalEntityService) Delete(ctx context.Context, id string) (*EntityDeleteResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.InvalidArgument("entity id is required")
	}

	result := &EntityDeleteResult{}
	err := s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		if err := requireGlobalEntity(ctx, tx, id); err != nil {
			return err
		}

		var err error
		target := entities.EntityTarget(id)
		if result.Relationships, err = tx.DeleteRelationshipsByTarget(ctx, target); err != nil {
			return err
		}
		if result.Interactions, err = tx.DeleteInteractionsByTarget(ctx, target); err != nil {
			return err
		}
		if result.Roles, err = tx.DeleteContactRolesByEntity(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteGlobalEntity(ctx, id); err != nil {
			return err
		}
		return tx.LogAction(ctx, entities.ActionEntityDelete, id, map[string]any{
			"relationships": result.Relationships,
			"interactions":  result.Interactions,
			"roles":         result.Roles,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("global entity deleted",
		zap.String("id", id),
		zap.Int("relationships", result.Relationships),
		zap.Int("interactions", result.Interactions),
		zap.Int("roles", result.Roles),
	)
	return result, nil
}
