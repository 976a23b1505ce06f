package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
	"github.com/ersonp/rolodex/internal/domain/mocks"
	"github.com/ersonp/rolodex/internal/domain/services"
)

var handlerNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// seedGraph stores one user, one contact and one global entity.
func seedGraph(t *testing.T) *mocks.GraphStore {
	t.Helper()
	ctx := context.Background()
	store := mocks.NewGraphStore()

	require.NoError(t, store.SaveUser(ctx, &entities.User{ID: "user-1", Email: "ana@example.com", Name: "Ana", CreatedAt: handlerNow}))
	contact := entities.NewContact("contact-1", "user-1", "Bob Plumber", entities.ContactPerson, handlerNow)
	contact.Phone = "555-0101"
	require.NoError(t, store.SaveContact(ctx, &contact))
	require.NoError(t, store.SaveGlobalEntity(ctx, &entities.GlobalEntity{
		ID: "entity-1", Name: "Acme Dental", Type: "business", Categories: []string{"dentist"}, CreatedAt: handlerNow,
	}))
	return store
}

func TestRelationshipHandler_HandleCreate(t *testing.T) {
	store := seedGraph(t)
	handler := NewRelationshipHandler(services.NewRelationshipService(store, nil))

	result, err := handler.HandleCreate(context.Background(), CreateRelationshipRequest{
		UserID:     "user-1",
		ContactID:  "contact-1",
		Relation:   "hired",
		Strength:   "strong",
		Visibility: "public",
		Context:    "fixed the sink",
	})

	require.NoError(t, err)
	rel := result.Relationship
	assert.Equal(t, entities.RelationHired, rel.Relation)
	assert.Equal(t, entities.StrengthStrong, rel.Strength)
	assert.Equal(t, entities.VisibilityPublic, rel.Visibility)
	assert.Equal(t, entities.ContactTarget("contact-1"), rel.Target)
	assert.Nil(t, result.Mirror)
}

func TestRelationshipHandler_HandleCreate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRelationshipRequest
		kind errs.Kind
	}{
		{
			name: "both targets",
			req:  CreateRelationshipRequest{UserID: "user-1", ContactID: "contact-1", EntityID: "entity-1", Relation: "FRIEND"},
			kind: errs.KindInvalidArgument,
		},
		{
			name: "no target",
			req:  CreateRelationshipRequest{UserID: "user-1", ContactID: "  ", Relation: "FRIEND"},
			kind: errs.KindInvalidArgument,
		},
		{
			name: "unknown relation",
			req:  CreateRelationshipRequest{UserID: "user-1", EntityID: "entity-1", Relation: "NEMESIS"},
			kind: errs.KindInvalidArgument,
		},
		{
			name: "unknown strength",
			req:  CreateRelationshipRequest{UserID: "user-1", EntityID: "entity-1", Relation: "FRIEND", Strength: "HUGE"},
			kind: errs.KindInvalidArgument,
		},
		{
			name: "missing entity",
			req:  CreateRelationshipRequest{UserID: "user-1", EntityID: "entity-9", Relation: "FRIEND"},
			kind: errs.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seedGraph(t)
			handler := NewRelationshipHandler(services.NewRelationshipService(store, nil))

			_, err := handler.HandleCreate(context.Background(), tt.req)

			assert.Equal(t, tt.kind, errs.KindOf(err))
			assert.Zero(t, store.RelationshipCount())
		})
	}
}

func TestRelationshipHandler_HandleUpdate(t *testing.T) {
	ctx := context.Background()
	store := seedGraph(t)
	handler := NewRelationshipHandler(services.NewRelationshipService(store, nil))

	created, err := handler.HandleCreate(ctx, CreateRelationshipRequest{UserID: "user-1", EntityID: "entity-1", Relation: "BUSINESS"})
	require.NoError(t, err)

	strength := "weak"
	notes := "cleaning every six months"
	updated, err := handler.HandleUpdate(ctx, created.Relationship.ID, UpdateRelationshipRequest{Strength: &strength, Notes: &notes})

	require.NoError(t, err)
	assert.Equal(t, entities.StrengthWeak, updated.Strength)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, entities.RelationBusiness, updated.Relation)

	bad := "LOUD"
	_, err = handler.HandleUpdate(ctx, created.Relationship.ID, UpdateRelationshipRequest{Visibility: &bad})
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestRelationshipHandler_HandleList(t *testing.T) {
	ctx := context.Background()
	store := seedGraph(t)
	handler := NewRelationshipHandler(services.NewRelationshipService(store, nil))

	for _, req := range []CreateRelationshipRequest{
		{UserID: "user-1", ContactID: "contact-1", Relation: "FRIEND"},
		{UserID: "user-1", ContactID: "contact-1", Relation: "HIRED"},
		{UserID: "user-1", EntityID: "entity-1", Relation: "HIRED"},
	} {
		_, err := handler.HandleCreate(ctx, req)
		require.NoError(t, err)
	}

	all, err := handler.HandleList(ctx, "user-1", ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all.Relationships, 3)

	hired, err := handler.HandleList(ctx, "user-1", ListOptions{Relation: "hired"})
	require.NoError(t, err)
	assert.Len(t, hired.Relationships, 2)

	entityHired, err := handler.HandleList(ctx, "user-1", ListOptions{Relation: "HIRED", Kind: "entity"})
	require.NoError(t, err)
	require.Len(t, entityHired.Relationships, 1)
	assert.Equal(t, "entity-1", entityHired.Relationships[0].Target.ID())

	_, err = handler.HandleList(ctx, "user-1", ListOptions{Kind: "planet"})
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
	_, err = handler.HandleList(ctx, "user-1", ListOptions{Relation: "RIVAL"})
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestRelationshipHandler_HandleDelete(t *testing.T) {
	ctx := context.Background()
	store := seedGraph(t)
	handler := NewRelationshipHandler(services.NewRelationshipService(store, nil))

	created, err := handler.HandleCreate(ctx, CreateRelationshipRequest{UserID: "user-1", ContactID: "contact-1", Relation: "FRIEND"})
	require.NoError(t, err)

	require.NoError(t, handler.HandleDelete(ctx, created.Relationship.ID))
	assert.Zero(t, store.RelationshipCount())
	assert.Equal(t, errs.KindNotFound, errs.KindOf(handler.HandleDelete(ctx, created.Relationship.ID)))
}
