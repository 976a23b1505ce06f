package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/mocks"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// fixture is a small graph: one user with one contact, plus one global
// entity.
type fixture struct {
	store   *mocks.GraphStore
	user    entities.User
	contact entities.Contact
	entity  entities.GlobalEntity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := mocks.NewGraphStore()

	f := &fixture{
		store: store,
		user: entities.User{
			ID:        "user-1",
			Email:     "ana@example.com",
			Name:      "Ana",
			CreatedAt: testNow,
			UpdatedAt: testNow,
		},
		contact: entities.NewContact("contact-1", "user-1", "Bob Plumber", entities.ContactPerson, testNow),
		entity: entities.GlobalEntity{
			ID:         "entity-1",
			Name:       "Acme Dental",
			Type:       "business",
			Categories: []string{"dentist", "health"},
			CreatedAt:  testNow,
			UpdatedAt:  testNow,
		},
	}
	f.contact.Phone = "555-0101"

	require.NoError(t, store.SaveUser(ctx, &f.user))
	require.NoError(t, store.SaveContact(ctx, &f.contact))
	require.NoError(t, store.SaveGlobalEntity(ctx, &f.entity))
	return f
}

// addContact stores another contact owned by userID.
func (f *fixture) addContact(t *testing.T, id, userID, name string) entities.Contact {
	t.Helper()
	c := entities.NewContact(id, userID, name, entities.ContactPerson, testNow)
	require.NoError(t, f.store.SaveContact(context.Background(), &c))
	return c
}

// pinClock fixes timeNow for the duration of the test.
func pinClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = orig })
}
