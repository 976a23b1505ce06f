package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
	"github.com/ersonp/rolodex/internal/domain/ports"
)

// ContextAggregator pulls the slice of a user's graph used to answer a query.
type ContextAggregator struct {
	reader ports.SnapshotReader
	logger *zap.Logger
}

// NewContextAggregator creates a new ContextAggregator.
func NewContextAggregator(reader ports.SnapshotReader, logger *zap.Logger) *ContextAggregator {
	return &ContextAggregator{
		reader: reader,
		logger: loggerOrNop(logger),
	}
}

// Fetch reads the four snapshot collections concurrently. The first failing
// read cancels the others and the whole fetch fails with a RetrievalFailure;
// a partial snapshot is never returned.
func (a *ContextAggregator) Fetch(ctx context.Context, userID string) (*entities.ContextSnapshot, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.InvalidArgument("user id is required")
	}

	var (
		contacts      []entities.ContactDetail
		relationships []entities.RelationshipDetail
		globals       []entities.EntityDetail
		interactions  []entities.InteractionDetail
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if contacts, err = a.reader.ListContactDetails(gctx, userID); err != nil {
			return fmt.Errorf("listing contacts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if relationships, err = a.reader.ListRelationshipDetails(gctx, userID); err != nil {
			return fmt.Errorf("listing relationships: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if globals, err = a.reader.ListEntityDetails(gctx, userID); err != nil {
			return fmt.Errorf("listing global entities: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if interactions, err = a.reader.ListInteractionDetails(gctx, userID); err != nil {
			return fmt.Errorf("listing interactions: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		a.logger.Warn("context fetch failed", zap.String("user_id", userID), zap.Error(err))
		return nil, errs.Retrieval("fetching context", err)
	}

	snapshot := entities.NewContextSnapshot(userID)
	if contacts != nil {
		snapshot.Contacts = contacts
	}
	if relationships != nil {
		snapshot.Relationships = relationships
	}
	if globals != nil {
		snapshot.Entities = globals
	}
	if interactions != nil {
		snapshot.Interactions = interactions
	}

	a.logger.Debug("context fetched",
		zap.String("user_id", userID),
		zap.Int("contacts", len(snapshot.Contacts)),
		zap.Int("relationships", len(snapshot.Relationships)),
		zap.Int("entities", len(snapshot.Entities)),
		zap.Int("interactions", len(snapshot.Interactions)),
	)
	return snapshot, nil
}
