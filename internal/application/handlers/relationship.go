package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/services"
)

// RelationshipHandler handles relationship operations.
type RelationshipHandler struct {
	service *services.RelationshipService
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(service *services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{
		service: service,
	}
}

// CreateRelationshipRequest is the request shape for a new edge. Exactly one
// of ContactID and EntityID must be set.
type CreateRelationshipRequest struct {
	UserID       string            `json:"user_id"`
	ContactID    string            `json:"contact_id,omitempty"`
	EntityID     string            `json:"entity_id,omitempty"`
	Relation     string            `json:"relation"`
	Strength     string            `json:"strength,omitempty"`
	Visibility   string            `json:"visibility,omitempty"`
	IsReciprocal bool              `json:"is_reciprocal,omitempty"`
	Context      string            `json:"context,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	Metadata     entities.Metadata `json:"metadata,omitempty"`
}

// UpdateRelationshipRequest carries the fields to change; nil means keep.
type UpdateRelationshipRequest struct {
	Relation     *string `json:"relation,omitempty"`
	Strength     *string `json:"strength,omitempty"`
	Visibility   *string `json:"visibility,omitempty"`
	IsReciprocal *bool   `json:"is_reciprocal,omitempty"`
	Context      *string `json:"context,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// ListOptions configures relationship listing behavior.
type ListOptions struct {
	Relation string // Filter by relation kind (empty = all)
	Kind     string // Filter by target kind: "contact", "entity" or empty
}

// ListResult contains the result of listing relationships.
type ListResult struct {
	Relationships []entities.Relationship `json:"relationships"`
}

// HandleCreate creates a new edge, plus its mirror when reciprocal.
func (h *RelationshipHandler) HandleCreate(ctx context.Context, req CreateRelationshipRequest) (*services.RelationshipResult, error) {
	target, err := entities.TargetFromIDs(strings.TrimSpace(req.ContactID), strings.TrimSpace(req.EntityID))
	if err != nil {
		return nil, err
	}

	return h.service.Create(ctx, services.CreateRelationshipInput{
		UserID:       strings.TrimSpace(req.UserID),
		Target:       target,
		Relation:     entities.RelationKind(req.Relation),
		Strength:     entities.Strength(req.Strength),
		Visibility:   entities.Visibility(req.Visibility),
		IsReciprocal: req.IsReciprocal,
		Context:      req.Context,
		Notes:        req.Notes,
		Metadata:     req.Metadata,
	})
}

// HandleUpdate merges the supplied fields into an existing edge.
func (h *RelationshipHandler) HandleUpdate(ctx context.Context, id string, req UpdateRelationshipRequest) (*entities.Relationship, error) {
	var patch entities.RelationshipPatch
	if req.Relation != nil {
		relation := entities.RelationKind(*req.Relation)
		patch.Relation = &relation
	}
	if req.Strength != nil {
		strength := entities.Strength(*req.Strength)
		patch.Strength = &strength
	}
	if req.Visibility != nil {
		visibility := entities.Visibility(*req.Visibility)
		patch.Visibility = &visibility
	}
	patch.IsReciprocal = req.IsReciprocal
	patch.Context = req.Context
	patch.Notes = req.Notes

	return h.service.Update(ctx, id, patch)
}

// HandleDelete removes a relationship by ID.
func (h *RelationshipHandler) HandleDelete(ctx context.Context, id string) error {
	return h.service.Delete(ctx, id)
}

// HandleList returns a user's relationships with optional filtering.
func (h *RelationshipHandler) HandleList(ctx context.Context, userID string, opts ListOptions) (*ListResult, error) {
	var relation entities.RelationKind
	if opts.Relation != "" {
		parsed, err := entities.ParseRelationKind(opts.Relation)
		if err != nil {
			return nil, err
		}
		relation = parsed
	}
	kind, err := parseTargetKind(opts.Kind)
	if err != nil {
		return nil, err
	}

	relationships, err := h.service.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}

	filtered := make([]entities.Relationship, 0, len(relationships))
	for i := range relationships {
		if relation != "" && relationships[i].Relation != relation {
			continue
		}
		if kind != "" && relationships[i].Target.Kind() != kind {
			continue
		}
		filtered = append(filtered, relationships[i])
	}

	return &ListResult{Relationships: filtered}, nil
}
