package handlers

import (
	"context"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/services"
)

// RoleHandler handles contact role operations.
type RoleHandler struct {
	service *services.ContactRoleService
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(service *services.ContactRoleService) *RoleHandler {
	return &RoleHandler{
		service: service,
	}
}

// CreateRoleRequest is the request shape for a new contact role. Dates are
// DateLayout or RFC 3339 strings; empty means unset.
type CreateRoleRequest struct {
	ContactID string `json:"contact_id"`
	EntityID  string `json:"entity_id"`
	Role      string `json:"role"`
	Location  string `json:"location,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// HandleCreate records that a contact holds a role at an entity.
func (h *RoleHandler) HandleCreate(ctx context.Context, req CreateRoleRequest) (*entities.ContactRole, error) {
	start, err := ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	return h.service.Create(ctx, services.CreateContactRoleInput{
		ContactID: req.ContactID,
		EntityID:  req.EntityID,
		Role:      req.Role,
		Location:  req.Location,
		StartDate: start,
		EndDate:   end,
	})
}

// HandleEnd sets a role's end date.
func (h *RoleHandler) HandleEnd(ctx context.Context, id, endDate string) (*entities.ContactRole, error) {
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if end == nil {
		return h.service.Update(ctx, id, entities.ContactRolePatch{ClearEndDate: true})
	}
	return h.service.Update(ctx, id, entities.ContactRolePatch{EndDate: end})
}

// HandleList returns the roles of a contact, or of an entity when
// entityID is set instead.
func (h *RoleHandler) HandleList(ctx context.Context, contactID, entityID string) ([]entities.ContactRole, error) {
	target, err := entities.TargetFromIDs(contactID, entityID)
	if err != nil {
		return nil, err
	}
	if target.IsContact() {
		return h.service.ListByContact(ctx, target.ID())
	}
	return h.service.ListByEntity(ctx, target.ID())
}

// HandleDelete removes a role.
func (h *RoleHandler) HandleDelete(ctx context.Context, id string) error {
	return h.service.Delete(ctx, id)
}
