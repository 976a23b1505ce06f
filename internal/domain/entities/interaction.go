package entities

import (
	"strings"
	"time"

	"github.com/ersonp/rolodex/internal/domain/errs"
)

// InteractionType categorizes a logged event.
type InteractionType string

const (
	InteractionCall    InteractionType = "CALL"
	InteractionEmail   InteractionType = "EMAIL"
	InteractionMessage InteractionType = "MESSAGE"
	InteractionHire    InteractionType = "HIRE"
)

// ParseInteractionType validates and converts a string to InteractionType.
func ParseInteractionType(s string) (InteractionType, error) {
	switch InteractionType(strings.ToUpper(strings.TrimSpace(s))) {
	case InteractionCall:
		return InteractionCall, nil
	case InteractionEmail:
		return InteractionEmail, nil
	case InteractionMessage:
		return InteractionMessage, nil
	case InteractionHire:
		return InteractionHire, nil
	default:
		return "", errs.InvalidArgument("invalid interaction type: %q (valid: CALL, EMAIL, MESSAGE, HIRE)", s)
	}
}

// Interaction is a timestamped event between a user and a target.
type Interaction struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Target          Target          `json:"target"`
	RelationshipID  string          `json:"relationship_id,omitempty"`
	Type            InteractionType `json:"type"`
	Title           string          `json:"title,omitempty"`
	Description     string          `json:"description,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	DurationSeconds *int            `json:"duration_seconds,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
	Metadata        Metadata        `json:"metadata,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewInteraction builds an interaction of userID with target.
func NewInteraction(id, userID string, target Target, interactionType InteractionType, at, now time.Time) Interaction {
	return Interaction{
		ID:        id,
		UserID:    userID,
		Target:    target,
		Type:      interactionType,
		Timestamp: at,
		CreatedAt: now,
	}
}

// InteractionPatch holds the interaction fields that may be changed.
type InteractionPatch struct {
	Type            *InteractionType
	Title           *string
	Description     *string
	Notes           *string
	DurationSeconds *int
	Timestamp       *time.Time
	Metadata        *Metadata
}

// Apply merges the supplied fields into i.
func (p InteractionPatch) Apply(i *Interaction) {
	if p.Type != nil {
		i.Type = *p.Type
	}
	if p.Title != nil {
		i.Title = *p.Title
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Notes != nil {
		i.Notes = *p.Notes
	}
	if p.DurationSeconds != nil {
		d := *p.DurationSeconds
		i.DurationSeconds = &d
	}
	if p.Timestamp != nil {
		i.Timestamp = *p.Timestamp
	}
	if p.Metadata != nil {
		i.Metadata = p.Metadata.Clone()
	}
}
