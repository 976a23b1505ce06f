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

// CreateInteractionInput holds the fields for a new interaction. A zero
// Timestamp defaults to now.
type CreateInteractionInput struct {
	UserID          string
	Target          entities.Target
	RelationshipID  string
	Type            entities.InteractionType
	Title           string
	Description     string
	Notes           string
	DurationSeconds *int
	Timestamp       time.Time
	Metadata        entities.Metadata
}

// InteractionService records events between users and their targets.
type InteractionService struct {
	store  ports.GraphStore
	logger *zap.Logger
}

// NewInteractionService creates a new InteractionService.
func NewInteractionService(store ports.GraphStore, logger *zap.Logger) *InteractionService {
	return &InteractionService{
		store:  store,
		logger: loggerOrNop(logger),
	}
}

// Create logs an interaction. The user and target must exist; a referenced
// relationship must exist and belong to the user.
func (s *InteractionService) Create(ctx context.Context, in CreateInteractionInput) (*entities.Interaction, error) {
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return nil, errs.InvalidArgument("user id is required")
	case in.Target.IsZero():
		return nil, errs.InvalidArgument("exactly one of contact or entity must be given, got neither")
	case in.Type == "":
		return nil, errs.InvalidArgument("interaction type is required")
	}
	interactionType, err := entities.ParseInteractionType(string(in.Type))
	if err != nil {
		return nil, err
	}
	if in.DurationSeconds != nil && *in.DurationSeconds < 0 {
		return nil, errs.InvalidArgument("duration cannot be negative")
	}
	if err := in.Metadata.Validate(); err != nil {
		return nil, err
	}

	now := timeNow()
	at := in.Timestamp
	if at.IsZero() {
		at = now
	}
	interaction := entities.NewInteraction(newID(), in.UserID, in.Target, interactionType, at, now)
	interaction.RelationshipID = in.RelationshipID
	interaction.Title = in.Title
	interaction.Description = in.Description
	interaction.Notes = in.Notes
	if in.DurationSeconds != nil {
		d := *in.DurationSeconds
		interaction.DurationSeconds = &d
	}
	interaction.Metadata = in.Metadata.Clone()

	err = s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		if err := requireUser(ctx, tx, interaction.UserID); err != nil {
			return err
		}
		if err := requireTarget(ctx, tx, interaction.Target); err != nil {
			return err
		}
		if interaction.RelationshipID != "" {
			rel, err := tx.FindRelationshipByID(ctx, interaction.RelationshipID)
			if err != nil {
				return fmt.Errorf("finding relationship: %w", err)
			}
			if rel == nil {
				return errs.NotFound("relationship", interaction.RelationshipID)
			}
			if rel.UserID != interaction.UserID {
				return errs.InvalidArgument("relationship %s does not belong to user %s", rel.ID, interaction.UserID)
			}
		}
		return tx.SaveInteraction(ctx, &interaction)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("interaction logged",
		zap.String("id", interaction.ID),
		zap.String("type", string(interaction.Type)),
		zap.Stringer("target", interaction.Target),
	)
	return &interaction, nil
}

// Get returns an interaction by id.
func (s *InteractionService) Get(ctx context.Context, id string) (*entities.Interaction, error) {
	interaction, err := s.store.FindInteractionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding interaction: %w", err)
	}
	if interaction == nil {
		return nil, errs.NotFound("interaction", id)
	}
	return interaction, nil
}

// ListByUser returns a user's interactions, most recent first.
func (s *InteractionService) ListByUser(ctx context.Context, userID string) ([]entities.Interaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.InvalidArgument("user id is required")
	}
	interactions, err := s.store.ListInteractionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing interactions: %w", err)
	}
	return interactions, nil
}

// Update merges the supplied fields into an existing interaction.
func (s *InteractionService) Update(ctx context.Context, id string, patch entities.InteractionPatch) (*entities.Interaction, error) {
	if patch.Type != nil {
		t, err := entities.ParseInteractionType(string(*patch.Type))
		if err != nil {
			return nil, err
		}
		patch.Type = &t
	}
	if patch.DurationSeconds != nil && *patch.DurationSeconds < 0 {
		return nil, errs.InvalidArgument("duration cannot be negative")
	}
	if patch.Metadata != nil {
		if err := patch.Metadata.Validate(); err != nil {
			return nil, err
		}
	}

	var updated *entities.Interaction
	err := s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		interaction, err := tx.FindInteractionByID(ctx, id)
		if err != nil {
			return fmt.Errorf("finding interaction: %w", err)
		}
		if interaction == nil {
			return errs.NotFound("interaction", id)
		}
		patch.Apply(interaction)
		if err := tx.SaveInteraction(ctx, interaction); err != nil {
			return err
		}
		updated = interaction
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an interaction.
func (s *InteractionService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.InvalidArgument("interaction id is required")
	}
	return s.store.DeleteInteraction(ctx, id)
}
