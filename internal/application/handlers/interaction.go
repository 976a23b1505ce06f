package handlers

import (
	"context"
	"strings"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/services"
)

// InteractionHandler handles interaction logging.
type InteractionHandler struct {
	service *services.InteractionService
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(service *services.InteractionService) *InteractionHandler {
	return &InteractionHandler{
		service: service,
	}
}

// LogInteractionRequest is the request shape for a new interaction. Exactly
// one of ContactID and EntityID must be set.
type LogInteractionRequest struct {
	UserID          string `json:"user_id"`
	ContactID       string `json:"contact_id,omitempty"`
	EntityID        string `json:"entity_id,omitempty"`
	RelationshipID  string `json:"relationship_id,omitempty"`
	Type            string `json:"type"`
	Title           string `json:"title,omitempty"`
	Notes           string `json:"notes,omitempty"`
	DurationSeconds *int   `json:"duration_seconds,omitempty"`
	At              string `json:"at,omitempty"`
}

// HandleLog records an interaction.
func (h *InteractionHandler) HandleLog(ctx context.Context, req LogInteractionRequest) (*entities.Interaction, error) {
	target, err := entities.TargetFromIDs(strings.TrimSpace(req.ContactID), strings.TrimSpace(req.EntityID))
	if err != nil {
		return nil, err
	}
	at, err := ParseDate(req.At)
	if err != nil {
		return nil, err
	}

	in := services.CreateInteractionInput{
		UserID:          req.UserID,
		Target:          target,
		RelationshipID:  req.RelationshipID,
		Type:            entities.InteractionType(req.Type),
		Title:           req.Title,
		Notes:           req.Notes,
		DurationSeconds: req.DurationSeconds,
	}
	if at != nil {
		in.Timestamp = *at
	}
	return h.service.Create(ctx, in)
}

// HandleList returns a user's interactions, newest first.
func (h *InteractionHandler) HandleList(ctx context.Context, userID string) ([]entities.Interaction, error) {
	return h.service.ListByUser(ctx, userID)
}

// HandleDelete removes an interaction.
func (h *InteractionHandler) HandleDelete(ctx context.Context, id string) error {
	return h.service.Delete(ctx, id)
}
