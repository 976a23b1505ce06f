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

// CreateRelationshipInput holds the fields for a new edge. Empty Strength
// and Visibility take their defaults.
type CreateRelationshipInput struct {
	UserID       string
	Target       entities.Target
	Relation     entities.RelationKind
	Strength     entities.Strength
	Visibility   entities.Visibility
	IsReciprocal bool
	Context      string
	Notes        string
	Metadata     entities.Metadata
}

// RelationshipResult is the outcome of Create. Mirror is set when a
// reciprocal edge was written; MirrorSkipped reports that one already existed.
type RelationshipResult struct {
	Relationship  *entities.Relationship `json:"relationship"`
	Mirror        *entities.Relationship `json:"mirror,omitempty"`
	MirrorSkipped bool                   `json:"mirror_skipped,omitempty"`
}

// RelationshipService manages edges between users and contacts or global
// entities.
type RelationshipService struct {
	store  ports.GraphStore
	logger *zap.Logger
}

// NewRelationshipService creates a new RelationshipService.
func NewRelationshipService(store ports.GraphStore, logger *zap.Logger) *RelationshipService {
	return &RelationshipService{
		store:  store,
		logger: loggerOrNop(logger),
	}
}

// Create validates and stores a new edge, plus its mirror when the edge is
// reciprocal and points at a contact. Existence checks, the duplicate check
// and both inserts run in one transaction: either every write lands or none.
func (s *RelationshipService) Create(ctx context.Context, in CreateRelationshipInput) (*RelationshipResult, error) {
	rel, err := s.validateCreate(in)
	if err != nil {
		return nil, err
	}

	result := &RelationshipResult{Relationship: rel}
	err = s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		if err := requireUser(ctx, tx, rel.UserID); err != nil {
			return err
		}
		if err := requireTarget(ctx, tx, rel.Target); err != nil {
			return err
		}

		existing, err := tx.FindRelationship(ctx, rel.UserID, rel.Target, rel.Relation)
		if err != nil {
			return fmt.Errorf("checking existing relationship: %w", err)
		}
		if existing != nil {
			return errs.Conflict("relationship %s from %s to %s already exists (id: %s)", rel.Relation, rel.UserID, rel.Target, existing.ID)
		}

		if err := tx.InsertRelationship(ctx, rel); err != nil {
			return err
		}

		if rel.IsReciprocal && rel.Target.IsContact() {
			if err := s.insertMirror(ctx, tx, result); err != nil {
				return err
			}
		}

		details := map[string]any{
			"relation": string(rel.Relation),
			"target":   rel.Target.String(),
		}
		if result.Mirror != nil {
			details["mirror_id"] = result.Mirror.ID
		}
		return tx.LogAction(ctx, entities.ActionRelationshipCreate, rel.ID, details)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("relationship created",
		zap.String("id", rel.ID),
		zap.String("user_id", rel.UserID),
		zap.Stringer("target", rel.Target),
		zap.String("relation", string(rel.Relation)),
		zap.Bool("mirrored", result.Mirror != nil),
		zap.Bool("mirror_skipped", result.MirrorSkipped),
	)
	return result, nil
}

// insertMirror writes the inverse edge unless it already exists.
func (s *RelationshipService) insertMirror(ctx context.Context, tx ports.GraphTx, result *RelationshipResult) error {
	primary := result.Relationship
	mirror := entities.NewMirror(*primary, newID(), primary.CreatedAt)

	existing, err := tx.FindRelationship(ctx, mirror.UserID, mirror.Target, mirror.Relation)
	if err != nil {
		return fmt.Errorf("checking existing mirror: %w", err)
	}
	if existing != nil {
		result.MirrorSkipped = true
		return nil
	}

	if err := tx.InsertRelationship(ctx, &mirror); err != nil {
		return fmt.Errorf("inserting mirror relationship: %w", err)
	}
	result.Mirror = &mirror
	return nil
}

func (s *RelationshipService) validateCreate(in CreateRelationshipInput) (*entities.Relationship, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, errs.InvalidArgument("user id is required")
	}
	if in.Relation == "" {
		return nil, errs.InvalidArgument("relation is required")
	}
	if in.Target.IsZero() {
		return nil, errs.InvalidArgument("exactly one of contact or entity must be given, got neither")
	}

	relation, err := entities.ParseRelationKind(string(in.Relation))
	if err != nil {
		return nil, err
	}
	if err := in.Metadata.Validate(); err != nil {
		return nil, err
	}

	rel := entities.NewRelationship(newID(), in.UserID, in.Target, relation, timeNow())
	if in.Strength != "" {
		if rel.Strength, err = entities.ParseStrength(string(in.Strength)); err != nil {
			return nil, err
		}
	}
	if in.Visibility != "" {
		if rel.Visibility, err = entities.ParseVisibility(string(in.Visibility)); err != nil {
			return nil, err
		}
	}
	rel.IsReciprocal = in.IsReciprocal
	rel.Context = in.Context
	rel.Notes = in.Notes
	rel.Metadata = in.Metadata.Clone()
	return &rel, nil
}

// Update merges the supplied fields into an existing edge. Mirrors are not
// touched.
func (s *RelationshipService) Update(ctx context.Context, id string, patch entities.RelationshipPatch) (*entities.Relationship, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.InvalidArgument("relationship id is required")
	}
	patch, err := normalizeRelationshipPatch(patch)
	if err != nil {
		return nil, err
	}

	var updated *entities.Relationship
	err = s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		rel, err := tx.FindRelationshipByID(ctx, id)
		if err != nil {
			return fmt.Errorf("finding relationship: %w", err)
		}
		if rel == nil {
			return errs.NotFound("relationship", id)
		}

		patch.Apply(rel)
		rel.UpdatedAt = timeNow()
		if err := tx.UpdateRelationship(ctx, rel); err != nil {
			return err
		}
		updated = rel
		return tx.LogAction(ctx, entities.ActionRelationshipUpdate, rel.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("relationship updated", zap.String("id", id))
	return updated, nil
}

// normalizeRelationshipPatch validates the supplied enum and metadata fields
// and returns the patch with canonical enum values.
func normalizeRelationshipPatch(patch entities.RelationshipPatch) (entities.RelationshipPatch, error) {
	if patch.Relation != nil {
		relation, err := entities.ParseRelationKind(string(*patch.Relation))
		if err != nil {
			return patch, err
		}
		patch.Relation = &relation
	}
	if patch.Strength != nil {
		strength, err := entities.ParseStrength(string(*patch.Strength))
		if err != nil {
			return patch, err
		}
		patch.Strength = &strength
	}
	if patch.Visibility != nil {
		visibility, err := entities.ParseVisibility(string(*patch.Visibility))
		if err != nil {
			return patch, err
		}
		patch.Visibility = &visibility
	}
	if patch.Metadata != nil {
		if err := patch.Metadata.Validate(); err != nil {
			return patch, err
		}
	}
	return patch, nil
}

// Delete removes a single edge. Interactions that referenced it keep their
// target and lose the link.
func (s *RelationshipService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.InvalidArgument("relationship id is required")
	}
	err := s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		if err := tx.DeleteRelationship(ctx, id); err != nil {
			return err
		}
		return tx.LogAction(ctx, entities.ActionRelationshipDelete, id, nil)
	})
	if err != nil {
		return err
	}
	s.logger.Info("relationship deleted", zap.String("id", id))
	return nil
}

// Get returns an edge by id.
func (s *RelationshipService) Get(ctx context.Context, id string) (*entities.Relationship, error) {
	rel, err := s.store.FindRelationshipByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding relationship: %w", err)
	}
	if rel == nil {
		return nil, errs.NotFound("relationship", id)
	}
	return rel, nil
}

// ListByUser returns the edges sourced by a user.
func (s *RelationshipService) ListByUser(ctx context.Context, userID string) ([]entities.Relationship, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.InvalidArgument("user id is required")
	}
	rels, err := s.store.ListRelationshipsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}
	return rels, nil
}

// requireUser returns NotFound unless the user exists.
func requireUser(ctx context.Context, tx ports.GraphTx, userID string) error {
	user, err := tx.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("finding user: %w", err)
	}
	if user == nil {
		return errs.NotFound("user", userID)
	}
	return nil
}

// requireTarget returns NotFound unless the contact or global entity exists.
func requireTarget(ctx context.Context, tx ports.GraphTx, target entities.Target) error {
	if target.IsContact() {
		return requireContact(ctx, tx, target.ID())
	}
	return requireGlobalEntity(ctx, tx, target.ID())
}

func requireContact(ctx context.Context, tx ports.GraphTx, contactID string) error {
	contact, err := tx.FindContactByID(ctx, contactID)
	if err != nil {
		return fmt.Errorf("finding contact: %w", err)
	}
	if contact == nil {
		return errs.NotFound("contact", contactID)
	}
	return nil
}

func requireGlobalEntity(ctx context.Context, tx ports.GraphTx, entityID string) error {
	entity, err := tx.FindGlobalEntityByID(ctx, entityID)
	if err != nil {
		return fmt.Errorf("finding global entity: %w", err)
	}
	if entity == nil {
		return errs.NotFound("global entity", entityID)
	}
	return nil
}
