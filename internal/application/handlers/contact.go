package handlers

import (
	"context"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/services"
)

// ContactHandler handles contact operations.
type ContactHandler struct {
	service *services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service: service,
	}
}

// CreateContactRequest is the request shape for a new contact.
type CreateContactRequest struct {
	UserID   string   `json:"user_id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Phone    string   `json:"phone,omitempty"`
	Email    string   `json:"email,omitempty"`
	Location string   `json:"location,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// UpdateContactRequest carries the fields to change; nil means keep.
type UpdateContactRequest struct {
	Name     *string   `json:"name,omitempty"`
	Type     *string   `json:"type,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Location *string   `json:"location,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

// HandleCreate adds a contact to a user's book.
func (h *ContactHandler) HandleCreate(ctx context.Context, req CreateContactRequest) (*entities.Contact, error) {
	return h.service.Create(ctx, services.CreateContactInput{
		AddedByID: req.UserID,
		Name:      req.Name,
		Type:      entities.ContactType(req.Type),
		Phone:     req.Phone,
		Email:     req.Email,
		Location:  req.Location,
		Tags:      req.Tags,
	})
}

// HandleList returns a user's contacts, or those matching query when set.
func (h *ContactHandler) HandleList(ctx context.Context, userID, query string, limit int) ([]entities.Contact, error) {
	if query != "" {
		return h.service.Search(ctx, userID, query, limit)
	}
	return h.service.List(ctx, userID)
}

// HandleUpdate merges the supplied fields into a contact.
func (h *ContactHandler) HandleUpdate(ctx context.Context, id string, req UpdateContactRequest) (*entities.Contact, error) {
	patch := entities.ContactPatch{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Location: req.Location,
		Tags:     req.Tags,
	}
	if req.Type != nil {
		contactType := entities.ContactType(*req.Type)
		patch.Type = &contactType
	}
	return h.service.Update(ctx, id, patch)
}

// HandleDelete removes a contact and everything that points at it.
func (h *ContactHandler) HandleDelete(ctx context.Context, id string) (*services.ContactDeleteResult, error) {
	return h.service.Delete(ctx, id)
}
