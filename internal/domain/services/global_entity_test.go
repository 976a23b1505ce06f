package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
)

func TestGlobalEntityService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	service := NewGlobalEntityService(f.store, nil)

	entity, err := service.Create(ctx, CreateGlobalEntityInput{
		Name:       " Oak & Pine ",
		Type:       "Business",
		Categories: []string{"carpentry", "furniture", "carpentry"},
		Metadata:   entities.Metadata{"rating": 4.8},
	})

	require.NoError(t, err)
	assert.Equal(t, "Oak & Pine", entity.Name)
	assert.Equal(t, "business", entity.Type)
	assert.Equal(t, []string{"carpentry", "furniture"}, entity.Categories)

	_, err = service.Create(ctx, CreateGlobalEntityInput{Type: "business"})
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
	_, err = service.Create(ctx, CreateGlobalEntityInput{Name: "Nameless Type"})
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestGlobalEntityService_ListByCategory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	service := NewGlobalEntityService(f.store, nil)

	_, err := service.Create(ctx, CreateGlobalEntityInput{Name: "Smile Clinic", Type: "business", Categories: []string{"Dentist"}})
	require.NoError(t, err)
	_, err = service.Create(ctx, CreateGlobalEntityInput{Name: "Oak & Pine", Type: "business", Categories: []string{"carpentry"}})
	require.NoError(t, err)

	all, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	dentists, err := service.ListByCategory(ctx, "dentist")
	require.NoError(t, err)
	require.Len(t, dentists, 2)
	names := []string{dentists[0].Name, dentists[1].Name}
	assert.ElementsMatch(t, []string{"Acme Dental", "Smile Clinic"}, names)

	_, err = service.ListByCategory(ctx, "")
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestGlobalEntityService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	service := NewGlobalEntityService(f.store, nil)

	website := "https://acme.test"
	updated, err := service.Update(ctx, f.entity.ID, entities.GlobalEntityPatch{Website: &website})
	require.NoError(t, err)
	assert.Equal(t, "https://acme.test", updated.Website)
	assert.Equal(t, "Acme Dental", updated.Name)
	assert.Equal(t, []string{"dentist", "health"}, updated.Categories)

	_, err = service.Update(ctx, "missing", entities.GlobalEntityPatch{Website: &website})
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestGlobalEntityService_Delete_Cascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	relationships := NewRelationshipService(f.store, nil)
	interactions := NewInteractionService(f.store, nil)
	roles := NewContactRoleService(f.store, nil)
	service := NewGlobalEntityService(f.store, nil)

	hired, err := relationships.Create(ctx, CreateRelationshipInput{UserID: f.user.ID, Target: entities.EntityTarget(f.entity.ID), Relation: entities.RelationHired})
	require.NoError(t, err)
	_, err = relationships.Create(ctx, CreateRelationshipInput{UserID: f.user.ID, Target: entities.ContactTarget(f.contact.ID), Relation: entities.RelationFriend})
	require.NoError(t, err)
	_, err = interactions.Create(ctx, CreateInteractionInput{
		UserID: f.user.ID, Target: entities.EntityTarget(f.entity.ID), RelationshipID: hired.Relationship.ID, Type: entities.InteractionHire,
	})
	require.NoError(t, err)
	_, err = roles.Create(ctx, CreateContactRoleInput{ContactID: f.contact.ID, EntityID: f.entity.ID, Role: "Dentist"})
	require.NoError(t, err)

	result, err := service.Delete(ctx, f.entity.ID)

	require.NoError(t, err)
	assert.Equal(t, &EntityDeleteResult{Relationships: 1, Interactions: 1, Roles: 1}, result)
	assert.Equal(t, 1, f.store.RelationshipCount())

	remaining, err := interactions.ListByUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	contactRoles, err := roles.ListByContact(ctx, f.contact.ID)
	require.NoError(t, err)
	assert.Empty(t, contactRoles)

	assert.Contains(t, f.store.AuditActions(), entities.ActionEntityDelete)
}

func TestGlobalEntityService_Delete_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	relationships := NewRelationshipService(f.store, nil)
	service := NewGlobalEntityService(f.store, nil)

	_, err := relationships.Create(ctx, CreateRelationshipInput{UserID: f.user.ID, Target: entities.EntityTarget(f.entity.ID), Relation: entities.RelationHired})
	require.NoError(t, err)

	f.store.FailOn("DeleteGlobalEntity", errors.New("locked"))
	_, err = service.Delete(ctx, f.entity.ID)
	require.Error(t, err)

	f.store.FailFunc = nil
	assert.Equal(t, 1, f.store.RelationshipCount())
	_, err = service.Get(ctx, f.entity.ID)
	require.NoError(t, err)
}
