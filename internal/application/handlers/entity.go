package handlers

import (
	"context"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/services"
)

// EntityHandler handles global entity operations at the application layer.
type EntityHandler struct {
	entityService *services.GlobalEntityService
	roleService   *services.ContactRoleService
}

// NewEntityHandler creates a new EntityHandler.
func NewEntityHandler(entityService *services.GlobalEntityService, roleService *services.ContactRoleService) *EntityHandler {
	return &EntityHandler{
		entityService: entityService,
		roleService:   roleService,
	}
}

// EntityListResult contains the result of listing entities.
type EntityListResult struct {
	Entities []entities.GlobalEntity `json:"entities"`
	Total    int                     `json:"total"`
}

// EntityView is a global entity with the contacts holding roles there.
type EntityView struct {
	Entity *entities.GlobalEntity `json:"entity"`
	Roles  []entities.ContactRole `json:"roles"`
}

// HandleCreate adds a global entity.
func (h *EntityHandler) HandleCreate(ctx context.Context, in services.CreateGlobalEntityInput) (*entities.GlobalEntity, error) {
	return h.entityService.Create(ctx, in)
}

// HandleList returns all global entities, or those in category when set.
func (h *EntityHandler) HandleList(ctx context.Context, category string) (*EntityListResult, error) {
	var (
		list []entities.GlobalEntity
		err  error
	)
	if category != "" {
		list, err = h.entityService.ListByCategory(ctx, category)
	} else {
		list, err = h.entityService.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	return &EntityListResult{
		Entities: list,
		Total:    len(list),
	}, nil
}

// HandleShow returns an entity and its contact roles.
func (h *EntityHandler) HandleShow(ctx context.Context, id string) (*EntityView, error) {
	entity, err := h.entityService.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	roles, err := h.roleService.ListByEntity(ctx, id)
	if err != nil {
		return nil, err
	}

	return &EntityView{Entity: entity, Roles: roles}, nil
}

// HandleUpdate merges the supplied fields into an entity.
func (h *EntityHandler) HandleUpdate(ctx context.Context, id string, patch entities.GlobalEntityPatch) (*entities.GlobalEntity, error) {
	return h.entityService.Update(ctx, id, patch)
}

// HandleDelete removes an entity with its relationships, interactions and
// roles.
func (h *EntityHandler) HandleDelete(ctx context.Context, id string) (*services.EntityDeleteResult, error) {
	return h.entityService.Delete(ctx, id)
}
