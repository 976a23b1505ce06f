package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
	"github.com/ersonp/rolodex/internal/domain/services"
)

func TestContactHandler(t *testing.T) {
	ctx := context.Background()
	store := seedGraph(t)
	handler := NewContactHandler(services.NewContactService(store, nil))

	created, err := handler.HandleCreate(ctx, CreateContactRequest{
		UserID: "user-1",
		Name:   "  Carla Carpenter ",
		Type:   "person",
		Tags:   []string{"carpenter", " carpenter", "oak"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Carla Carpenter", created.Name)
	assert.Equal(t, entities.ContactPerson, created.Type)
	assert.Equal(t, []string{"carpenter", "oak"}, created.Tags)

	all, err := handler.HandleList(ctx, "user-1", "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := handler.HandleList(ctx, "user-1", "CARLA", 5)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	business := "business"
	phone := "555-0199"
	updated, err := handler.HandleUpdate(ctx, created.ID, UpdateContactRequest{Type: &business, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, entities.ContactBusiness, updated.Type)
	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, "Carla Carpenter", updated.Name)

	_, err = handler.HandleCreate(ctx, CreateContactRequest{UserID: "user-1", Name: "X", Type: "robot"})
	assert.True(t, errs.IsKind(err, errs.KindInvalidArgument))

	result, err := handler.HandleDelete(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, result.Relationships)

	_, err = handler.HandleDelete(ctx, created.ID)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestEntityHandler(t *testing.T) {
	ctx := context.Background()
	store := seedGraph(t)
	roles := services.NewContactRoleService(store, nil)
	handler := NewEntityHandler(services.NewGlobalEntityService(store, nil), roles)

	created, err := handler.HandleCreate(ctx, services.CreateGlobalEntityInput{
		Name:       "Pipe Pros",
		Type:       "Business",
		Categories: []string{"plumber"},
	})
	require.NoError(t, err)
	assert.Equal(t, "business", created.Type)

	all, err := handler.HandleList(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	dentists, err := handler.HandleList(ctx, "Dentist")
	require.NoError(t, err)
	require.Equal(t, 1, dentists.Total)
	assert.Equal(t, "entity-1", dentists.Entities[0].ID)

	_, err = roles.Create(ctx, services.CreateContactRoleInput{ContactID: "contact-1", EntityID: "entity-1", Role: "hygienist"})
	require.NoError(t, err)

	view, err := handler.HandleShow(ctx, "entity-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Dental", view.Entity.Name)
	require.Len(t, view.Roles, 1)
	assert.Equal(t, "hygienist", view.Roles[0].Role)

	site := "https://pipepros.example"
	updated, err := handler.HandleUpdate(ctx, created.ID, entities.GlobalEntityPatch{Website: &site})
	require.NoError(t, err)
	assert.Equal(t, site, updated.Website)

	result, err := handler.HandleDelete(ctx, "entity-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Roles)

	_, err = handler.HandleShow(ctx, "entity-1")
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestInteractionHandler(t *testing.T) {
	ctx := context.Background()
	store := seedGraph(t)
	handler := NewInteractionHandler(services.NewInteractionService(store, nil))

	duration := 300
	first, err := handler.HandleLog(ctx, LogInteractionRequest{
		UserID:          "user-1",
		ContactID:       "contact-1",
		Type:            "hire",
		Title:           "Kitchen sink",
		DurationSeconds: &duration,
		At:              "2025-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.InteractionHire, first.Type)
	assert.Equal(t, entities.ContactTarget("contact-1"), first.Target)
	assert.Equal(t, "2025-06-01", first.Timestamp.Format(DateLayout))
	require.NotNil(t, first.DurationSeconds)
	assert.Equal(t, 300, *first.DurationSeconds)

	second, err := handler.HandleLog(ctx, LogInteractionRequest{
		UserID:   "user-1",
		EntityID: "entity-1",
		Type:     "CALL",
		At:       "2025-07-01T10:00:00Z",
	})
	require.NoError(t, err)

	list, err := handler.HandleList(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	tests := []struct {
		name string
		req  LogInteractionRequest
		kind errs.Kind
	}{
		{"both targets", LogInteractionRequest{UserID: "user-1", ContactID: "contact-1", EntityID: "entity-1", Type: "CALL"}, errs.KindInvalidArgument},
		{"bad date", LogInteractionRequest{UserID: "user-1", ContactID: "contact-1", Type: "CALL", At: "June 1st"}, errs.KindInvalidArgument},
		{"bad type", LogInteractionRequest{UserID: "user-1", ContactID: "contact-1", Type: "FAX"}, errs.KindInvalidArgument},
		{"unknown contact", LogInteractionRequest{UserID: "user-1", ContactID: "nobody", Type: "CALL"}, errs.KindNotFound},
		{"unknown relationship", LogInteractionRequest{UserID: "user-1", ContactID: "contact-1", RelationshipID: "rel-x", Type: "CALL"}, errs.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.HandleLog(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errs.KindOf(err))
		})
	}

	require.NoError(t, handler.HandleDelete(ctx, first.ID))
	list, err = handler.HandleList(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserHandler(t *testing.T) {
	ctx := context.Background()
	store := seedGraph(t)
	handler := NewUserHandler(services.NewUserService(store, nil), store)

	user, err := handler.HandleCreate(ctx, " Dee@Example.com ", "Dee", "")
	require.NoError(t, err)
	assert.Equal(t, "dee@example.com", user.Email)

	byEmail, err := handler.HandleShow(ctx, "DEE@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := handler.HandleShow(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dee", byID.Name)

	_, err = handler.HandleShow(ctx, "missing")
	assert.True(t, errs.IsKind(err, errs.KindNotFound))

	_, err = handler.HandleCreate(ctx, "dee@example.com", "Other Dee", "")
	assert.True(t, errs.IsKind(err, errs.KindConflict))

	rels := NewRelationshipHandler(services.NewRelationshipService(store, nil))
	created, err := rels.HandleCreate(ctx, CreateRelationshipRequest{UserID: "user-1", EntityID: "entity-1", Relation: "BUSINESS"})
	require.NoError(t, err)

	entries, err := handler.HandleAudit(ctx, created.Relationship.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entities.ActionRelationshipCreate, entries[0].Action)
}
