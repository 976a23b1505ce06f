package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
	"github.com/ersonp/rolodex/internal/domain/mocks"
)

func TestContextAggregator_Fetch_EmptyUser(t *testing.T) {
	store := mocks.NewGraphStore()
	aggregator := NewContextAggregator(store, nil)

	snapshot, err := aggregator.Fetch(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Equal(t, "nobody", snapshot.UserID)
	assert.NotNil(t, snapshot.Contacts)
	assert.NotNil(t, snapshot.Relationships)
	assert.NotNil(t, snapshot.Entities)
	assert.NotNil(t, snapshot.Interactions)
	assert.True(t, snapshot.IsEmpty())
}

func TestContextAggregator_Fetch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	relationships := NewRelationshipService(f.store, nil)
	interactions := NewInteractionService(f.store, nil)

	_, err := relationships.Create(ctx, CreateRelationshipInput{UserID: f.user.ID, Target: entities.ContactTarget(f.contact.ID), Relation: entities.RelationHired, Context: "plumbing"})
	require.NoError(t, err)
	_, err = interactions.Create(ctx, CreateInteractionInput{UserID: f.user.ID, Target: entities.EntityTarget(f.entity.ID), Type: entities.InteractionCall})
	require.NoError(t, err)

	aggregator := NewContextAggregator(f.store, nil)
	snapshot, err := aggregator.Fetch(ctx, f.user.ID)

	require.NoError(t, err)
	require.Len(t, snapshot.Contacts, 1)
	assert.Len(t, snapshot.Contacts[0].Relationships, 1)
	require.Len(t, snapshot.Relationships, 1)
	assert.Equal(t, "Bob Plumber", snapshot.Relationships[0].Summary.Name)
	require.Len(t, snapshot.Entities, 1)
	assert.Equal(t, "Acme Dental", snapshot.Entities[0].Name)
	require.Len(t, snapshot.Interactions, 1)
	assert.Equal(t, entities.TargetEntity, snapshot.Interactions[0].Summary.Kind)
}

func TestContextAggregator_Fetch_InvalidUser(t *testing.T) {
	aggregator := NewContextAggregator(mocks.NewGraphStore(), nil)

	_, err := aggregator.Fetch(context.Background(), " ")

	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestContextAggregator_Fetch_StoreFailure(t *testing.T) {
	store := mocks.NewGraphStore()
	store.FailOn("ListEntityDetails", errors.New("disk I/O error"))
	aggregator := NewContextAggregator(store, nil)

	snapshot, err := aggregator.Fetch(context.Background(), "user-1")

	require.Error(t, err)
	assert.Nil(t, snapshot)
	assert.True(t, errors.Is(err, errs.ErrRetrieval))
	assert.Contains(t, err.Error(), "listing global entities")
}

// blockingReader fails one read immediately and holds the others open until
// their context is cancelled.
type blockingReader struct {
	cancelled atomic.Int32
}

func (r *blockingReader) block(ctx context.Context) error {
	select {
	case <-ctx.Done():
		r.cancelled.Add(1)
		return ctx.Err()
	case <-time.After(5 * time.Second):
		return errors.New("never cancelled")
	}
}

func (r *blockingReader) ListContactDetails(ctx context.Context, _ string) ([]entities.ContactDetail, error) {
	return nil, r.block(ctx)
}

func (r *blockingReader) ListRelationshipDetails(context.Context, string) ([]entities.RelationshipDetail, error) {
	return nil, errors.New("connection reset")
}

func (r *blockingReader) ListEntityDetails(ctx context.Context, _ string) ([]entities.EntityDetail, error) {
	return nil, r.block(ctx)
}

func (r *blockingReader) ListInteractionDetails(ctx context.Context, _ string) ([]entities.InteractionDetail, error) {
	return nil, r.block(ctx)
}

func TestContextAggregator_Fetch_FirstFailureCancelsOthers(t *testing.T) {
	reader := &blockingReader{}
	aggregator := NewContextAggregator(reader, nil)

	start := time.Now()
	_, err := aggregator.Fetch(context.Background(), "user-1")

	require.Error(t, err)
	assert.Equal(t, errs.KindRetrieval, errs.KindOf(err))
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, int32(3), reader.cancelled.Load())
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestContextAggregator_Fetch_CallerCancellation(t *testing.T) {
	store := mocks.NewGraphStore()
	store.ReadDelay = time.Second
	aggregator := NewContextAggregator(store, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := aggregator.Fetch(ctx, "user-1")

	require.Error(t, err)
	assert.Equal(t, errs.KindRetrieval, errs.KindOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
