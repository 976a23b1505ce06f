package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
	"github.com/ersonp/rolodex/internal/domain/ports"
	"github.com/ersonp/rolodex/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// seedGraph creates a user, one contact and one global entity.
func seedGraph(t *testing.T, repo *Repository) (entities.User, entities.Contact, entities.GlobalEntity) {
	t.Helper()
	ctx := context.Background()

	user := entities.User{ID: "user-1", Email: "Ana@Example.com", Name: "Ana", CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, repo.SaveUser(ctx, &user))

	contact := entities.NewContact("contact-1", user.ID, "Bob Plumber", entities.ContactPerson, testNow)
	contact.Phone = "555-0100"
	contact.Tags = []string{"plumber", "emergency"}
	require.NoError(t, repo.SaveContact(ctx, &contact))

	entity := entities.GlobalEntity{
		ID:         "entity-1",
		Name:       "Acme Dental",
		Type:       "business",
		Categories: []string{"dentist"},
		Metadata:   entities.Metadata{"rating": 4.5},
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}
	require.NoError(t, repo.SaveGlobalEntity(ctx, &entity))

	return user, contact, entity
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.Equal(t, ":memory:", repo.Path())
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.SQLiteConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	tables := []string{"users", "contacts", "global_entities", "relationships", "interactions", "contact_roles", "audit_log"}
	for _, table := range tables {
		var count int
		err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}

	// Idempotent
	require.NoError(t, repo.EnsureSchema(context.Background()))
}

func TestRepository_Users(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	user, _, _ := seedGraph(t, repo)

	found, err := repo.FindUserByEmail(ctx, "  ANA@example.COM ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "ana@example.com", found.Email)

	missing, err := repo.FindUserByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	dup := entities.User{ID: "user-2", Email: "ana@example.com", Name: "Other", CreatedAt: testNow, UpdatedAt: testNow}
	err = repo.SaveUser(ctx, &dup)
	assert.True(t, errs.IsKind(err, errs.KindConflict))
}

func TestRepository_Contacts(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	user, contact, _ := seedGraph(t, repo)

	t.Run("find round trips tags", func(t *testing.T) {
		found, err := repo.FindContactByID(ctx, contact.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, []string{"plumber", "emergency"}, found.Tags)
		assert.Equal(t, entities.ContactPerson, found.Type)
		assert.True(t, testNow.Equal(found.CreatedAt))
	})

	t.Run("search is case-insensitive and escapes wildcards", func(t *testing.T) {
		found, err := repo.SearchContacts(ctx, user.ID, "PLUMB", 10)
		require.NoError(t, err)
		require.Len(t, found, 1)

		found, err = repo.SearchContacts(ctx, user.ID, "%", 10)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("delete missing is not found", func(t *testing.T) {
		err := repo.DeleteContact(ctx, "nope")
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})
}

func TestRepository_Relationships(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	user, contact, entity := seedGraph(t, repo)

	rel := entities.NewRelationship("rel-1", user.ID, entities.ContactTarget(contact.ID), entities.RelationFriend, testNow)
	rel.Metadata = entities.Metadata{"since": float64(2012)}
	require.NoError(t, repo.InsertRelationship(ctx, &rel))

	t.Run("find by key", func(t *testing.T) {
		found, err := repo.FindRelationship(ctx, user.ID, entities.ContactTarget(contact.ID), entities.RelationFriend)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, rel.ID, found.ID)
		assert.Equal(t, entities.ContactTarget(contact.ID), found.Target)
		assert.Equal(t, float64(2012), found.Metadata["since"])

		other, err := repo.FindRelationship(ctx, user.ID, entities.EntityTarget(contact.ID), entities.RelationFriend)
		require.NoError(t, err)
		assert.Nil(t, other, "target kind is part of the key")
	})

	t.Run("duplicate insert is a conflict", func(t *testing.T) {
		dup := entities.NewRelationship("rel-2", user.ID, entities.ContactTarget(contact.ID), entities.RelationFriend, testNow)
		err := repo.InsertRelationship(ctx, &dup)
		assert.True(t, errs.IsKind(err, errs.KindConflict))
	})

	t.Run("same target different relation is allowed", func(t *testing.T) {
		family := entities.NewRelationship("rel-3", user.ID, entities.ContactTarget(contact.ID), entities.RelationFamily, testNow)
		require.NoError(t, repo.InsertRelationship(ctx, &family))
	})

	t.Run("update into an existing key is a conflict", func(t *testing.T) {
		found, err := repo.FindRelationshipByID(ctx, "rel-3")
		require.NoError(t, err)
		found.Relation = entities.RelationFriend
		err = repo.UpdateRelationship(ctx, found)
		assert.True(t, errs.IsKind(err, errs.KindConflict))
	})

	t.Run("entity target and delete by target", func(t *testing.T) {
		hired := entities.NewRelationship("rel-4", user.ID, entities.EntityTarget(entity.ID), entities.RelationHired, testNow)
		require.NoError(t, repo.InsertRelationship(ctx, &hired))

		n, err := repo.DeleteRelationshipsByTarget(ctx, entities.EntityTarget(entity.ID))
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		rels, err := repo.ListRelationshipsByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, rels, 2)
	})

	t.Run("delete missing is not found", func(t *testing.T) {
		err := repo.DeleteRelationship(ctx, "nope")
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})
}

func TestRepository_DeleteRelationshipClearsInteractionLink(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	user, contact, _ := seedGraph(t, repo)

	rel := entities.NewRelationship("rel-1", user.ID, entities.ContactTarget(contact.ID), entities.RelationFriend, testNow)
	require.NoError(t, repo.InsertRelationship(ctx, &rel))

	call := entities.NewInteraction("int-1", user.ID, entities.ContactTarget(contact.ID), entities.InteractionCall, testNow, testNow)
	call.RelationshipID = rel.ID
	seconds := 300
	call.DurationSeconds = &seconds
	require.NoError(t, repo.SaveInteraction(ctx, &call))

	require.NoError(t, repo.DeleteRelationship(ctx, rel.ID))

	found, err := repo.FindInteractionByID(ctx, call.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Empty(t, found.RelationshipID)
	require.NotNil(t, found.DurationSeconds)
	assert.Equal(t, 300, *found.DurationSeconds)
}

func TestRepository_ContactRoles(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	_, contact, entity := seedGraph(t, repo)

	open := entities.NewContactRole("role-1", contact.ID, entity.ID, "Hygienist", testNow)
	require.NoError(t, repo.InsertContactRole(ctx, &open))

	t.Run("second open-ended role is a conflict", func(t *testing.T) {
		dup := entities.NewContactRole("role-2", contact.ID, entity.ID, "Hygienist", testNow)
		err := repo.InsertContactRole(ctx, &dup)
		assert.True(t, errs.IsKind(err, errs.KindConflict))
	})

	t.Run("distinct end dates coexist", func(t *testing.T) {
		end := testNow.AddDate(-1, 0, 0)
		past := entities.NewContactRole("role-3", contact.ID, entity.ID, "Hygienist", testNow)
		past.EndDate = &end
		require.NoError(t, repo.InsertContactRole(ctx, &past))

		found, err := repo.FindContactRole(ctx, contact.ID, entity.ID, "Hygienist", &end)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "role-3", found.ID)

		found, err = repo.FindContactRole(ctx, contact.ID, entity.ID, "Hygienist", nil)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "role-1", found.ID)
	})

	t.Run("list and delete by entity", func(t *testing.T) {
		roles, err := repo.ListContactRolesByContact(ctx, contact.ID)
		require.NoError(t, err)
		assert.Len(t, roles, 2)

		n, err := repo.DeleteContactRolesByEntity(ctx, entity.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestRepository_WithTx_RollsBack(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	user, contact, _ := seedGraph(t, repo)

	boom := errors.New("boom")
	err := repo.WithTx(ctx, func(tx ports.GraphTx) error {
		rel := entities.NewRelationship("rel-1", user.ID, entities.ContactTarget(contact.ID), entities.RelationFriend, testNow)
		if err := tx.InsertRelationship(ctx, &rel); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	rels, err := repo.ListRelationshipsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, rels)
}

func TestRepository_WithTx_ConcurrentDuplicate(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	user, contact, _ := seedGraph(t, repo)
	target := entities.ContactTarget(contact.ID)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.WithTx(ctx, func(tx ports.GraphTx) error {
				existing, err := tx.FindRelationship(ctx, user.ID, target, entities.RelationFriend)
				if err != nil {
					return err
				}
				if existing != nil {
					return errs.Conflict("exists")
				}
				rel := entities.NewRelationship([]string{"rel-a", "rel-b"}[i], user.ID, target, entities.RelationFriend, testNow)
				return tx.InsertRelationship(ctx, &rel)
			})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errs.IsKind(err, errs.KindConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)

	rels, err := repo.ListRelationshipsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, rels, 1)
}

func TestRepository_Details(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	user, contact, entity := seedGraph(t, repo)

	friend := entities.NewRelationship("rel-1", user.ID, entities.ContactTarget(contact.ID), entities.RelationFriend, testNow)
	hired := entities.NewRelationship("rel-2", user.ID, entities.EntityTarget(entity.ID), entities.RelationHired, testNow.Add(time.Minute))
	require.NoError(t, repo.InsertRelationship(ctx, &friend))
	require.NoError(t, repo.InsertRelationship(ctx, &hired))

	// A private edge from another user must not leak into user-1's view.
	other := entities.User{ID: "user-2", Email: "zoe@example.com", Name: "Zoe", CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, repo.SaveUser(ctx, &other))
	foreign := entities.NewRelationship("rel-3", other.ID, entities.EntityTarget(entity.ID), entities.RelationBusiness, testNow)
	require.NoError(t, repo.InsertRelationship(ctx, &foreign))

	older := entities.NewInteraction("int-1", user.ID, entities.EntityTarget(entity.ID), entities.InteractionHire, testNow, testNow)
	newer := entities.NewInteraction("int-2", user.ID, entities.ContactTarget(contact.ID), entities.InteractionCall, testNow.Add(time.Hour), testNow)
	require.NoError(t, repo.SaveInteraction(ctx, &older))
	require.NoError(t, repo.SaveInteraction(ctx, &newer))

	contacts, err := repo.ListContactDetails(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Len(t, contacts[0].Relationships, 1)

	rels, err := repo.ListRelationshipDetails(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, rels, 2)
	assert.Equal(t, "Bob Plumber", rels[0].Summary.Name)
	assert.Equal(t, "PERSON", rels[0].Summary.Type)
	assert.Equal(t, "Acme Dental", rels[1].Summary.Name)
	assert.Equal(t, entities.TargetEntity, rels[1].Summary.Kind)

	ents, err := repo.ListEntityDetails(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, ents, 1)
	require.Len(t, ents[0].Relationships, 1)
	assert.Equal(t, "rel-2", ents[0].Relationships[0].ID)
	assert.Equal(t, 4.5, ents[0].Metadata["rating"])

	interactions, err := repo.ListInteractionDetails(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, interactions, 2)
	assert.Equal(t, "int-2", interactions[0].ID, "most recent first")
	assert.Equal(t, "Bob Plumber", interactions[0].Summary.Name)

	empty, err := repo.ListRelationshipDetails(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRepository_AuditLog(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.LogAction(ctx, entities.ActionRelationshipCreate, "rel-1", map[string]any{"relation": "FRIEND"}))
	require.NoError(t, repo.LogAction(ctx, entities.ActionRelationshipDelete, "rel-1", nil))

	entries, err := repo.FindAuditLog(ctx, "rel-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entities.ActionRelationshipDelete, entries[0].Action)
	assert.Equal(t, "FRIEND", entries[1].Details["relation"])
}
