package mocks

import (
	"context"
	"time"

	"github.com/ersonp/rolodex/internal/domain/entities"
)

// Direct (non-transactional) GraphTx methods run under the store lock.

func (s *GraphStore) SaveUser(ctx context.Context, user *entities.User) error {
	return s.locked(func(tx *memTx) error { return tx.SaveUser(ctx, user) })
}

func (s *GraphStore) FindUserByID(ctx context.Context, id string) (*entities.User, error) {
	var out *entities.User
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.FindUserByID(ctx, id)
		return err
	})
	return out, err
}

func (s *GraphStore) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var out *entities.User
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.FindUserByEmail(ctx, email)
		return err
	})
	return out, err
}

func (s *GraphStore) SaveContact(ctx context.Context, contact *entities.Contact) error {
	return s.locked(func(tx *memTx) error { return tx.SaveContact(ctx, contact) })
}

func (s *GraphStore) FindContactByID(ctx context.Context, id string) (*entities.Contact, error) {
	var out *entities.Contact
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.FindContactByID(ctx, id)
		return err
	})
	return out, err
}

func (s *GraphStore) ListContactsByCreator(ctx context.Context, userID string) ([]entities.Contact, error) {
	var out []entities.Contact
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.ListContactsByCreator(ctx, userID)
		return err
	})
	return out, err
}

func (s *GraphStore) SearchContacts(ctx context.Context, userID, query string, limit int) ([]entities.Contact, error) {
	var out []entities.Contact
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.SearchContacts(ctx, userID, query, limit)
		return err
	})
	return out, err
}

func (s *GraphStore) DeleteContact(ctx context.Context, id string) error {
	return s.locked(func(tx *memTx) error { return tx.DeleteContact(ctx, id) })
}

func (s *GraphStore) SaveGlobalEntity(ctx context.Context, entity *entities.GlobalEntity) error {
	return s.locked(func(tx *memTx) error { return tx.SaveGlobalEntity(ctx, entity) })
}

func (s *GraphStore) FindGlobalEntityByID(ctx context.Context, id string) (*entities.GlobalEntity, error) {
	var out *entities.GlobalEntity
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.FindGlobalEntityByID(ctx, id)
		return err
	})
	return out, err
}

func (s *GraphStore) ListGlobalEntities(ctx context.Context) ([]entities.GlobalEntity, error) {
	var out []entities.GlobalEntity
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.ListGlobalEntities(ctx)
		return err
	})
	return out, err
}

func (s *GraphStore) DeleteGlobalEntity(ctx context.Context, id string) error {
	return s.locked(func(tx *memTx) error { return tx.DeleteGlobalEntity(ctx, id) })
}

func (s *GraphStore) InsertRelationship(ctx context.Context, rel *entities.Relationship) error {
	return s.locked(func(tx *memTx) error { return tx.InsertRelationship(ctx, rel) })
}

func (s *GraphStore) UpdateRelationship(ctx context.Context, rel *entities.Relationship) error {
	return s.locked(func(tx *memTx) error { return tx.UpdateRelationship(ctx, rel) })
}

func (s *GraphStore) FindRelationshipByID(ctx context.Context, id string) (*entities.Relationship, error) {
	var out *entities.Relationship
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.FindRelationshipByID(ctx, id)
		return err
	})
	return out, err
}

func (s *GraphStore) FindRelationship(ctx context.Context, userID string, target entities.Target, relation entities.RelationKind) (*entities.Relationship, error) {
	var out *entities.Relationship
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.FindRelationship(ctx, userID, target, relation)
		return err
	})
	return out, err
}

func (s *GraphStore) ListRelationshipsByUser(ctx context.Context, userID string) ([]entities.Relationship, error) {
	var out []entities.Relationship
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.ListRelationshipsByUser(ctx, userID)
		return err
	})
	return out, err
}

func (s *GraphStore) DeleteRelationship(ctx context.Context, id string) error {
	return s.locked(func(tx *memTx) error { return tx.DeleteRelationship(ctx, id) })
}

func (s *GraphStore) DeleteRelationshipsByTarget(ctx context.Context, target entities.Target) (int, error) {
	var out int
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.DeleteRelationshipsByTarget(ctx, target)
		return err
	})
	return out, err
}

func (s *GraphStore) DeleteRelationshipsByUser(ctx context.Context, userID string) (int, error) {
	var out int
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.DeleteRelationshipsByUser(ctx, userID)
		return err
	})
	return out, err
}

func (s *GraphStore) SaveInteraction(ctx context.Context, interaction *entities.Interaction) error {
	return s.locked(func(tx *memTx) error { return tx.SaveInteraction(ctx, interaction) })
}

func (s *GraphStore) FindInteractionByID(ctx context.Context, id string) (*entities.Interaction, error) {
	var out *entities.Interaction
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.FindInteractionByID(ctx, id)
		return err
	})
	return out, err
}

func (s *GraphStore) ListInteractionsByUser(ctx context.Context, userID string) ([]entities.Interaction, error) {
	var out []entities.Interaction
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.ListInteractionsByUser(ctx, userID)
		return err
	})
	return out, err
}

func (s *GraphStore) DeleteInteraction(ctx context.Context, id string) error {
	return s.locked(func(tx *memTx) error { return tx.DeleteInteraction(ctx, id) })
}

func (s *GraphStore) DeleteInteractionsByTarget(ctx context.Context, target entities.Target) (int, error) {
	var out int
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.DeleteInteractionsByTarget(ctx, target)
		return err
	})
	return out, err
}

func (s *GraphStore) InsertContactRole(ctx context.Context, role *entities.ContactRole) error {
	return s.locked(func(tx *memTx) error { return tx.InsertContactRole(ctx, role) })
}

func (s *GraphStore) UpdateContactRole(ctx context.Context, role *entities.ContactRole) error {
	return s.locked(func(tx *memTx) error { return tx.UpdateContactRole(ctx, role) })
}

func (s *GraphStore) FindContactRoleByID(ctx context.Context, id string) (*entities.ContactRole, error) {
	var out *entities.ContactRole
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.FindContactRoleByID(ctx, id)
		return err
	})
	return out, err
}

func (s *GraphStore) FindContactRole(ctx context.Context, contactID, entityID, role string, endDate *time.Time) (*entities.ContactRole, error) {
	var out *entities.ContactRole
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.FindContactRole(ctx, contactID, entityID, role, endDate)
		return err
	})
	return out, err
}

func (s *GraphStore) ListContactRolesByContact(ctx context.Context, contactID string) ([]entities.ContactRole, error) {
	var out []entities.ContactRole
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.ListContactRolesByContact(ctx, contactID)
		return err
	})
	return out, err
}

func (s *GraphStore) ListContactRolesByEntity(ctx context.Context, entityID string) ([]entities.ContactRole, error) {
	var out []entities.ContactRole
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.ListContactRolesByEntity(ctx, entityID)
		return err
	})
	return out, err
}

func (s *GraphStore) DeleteContactRole(ctx context.Context, id string) error {
	return s.locked(func(tx *memTx) error { return tx.DeleteContactRole(ctx, id) })
}

func (s *GraphStore) DeleteContactRolesByContact(ctx context.Context, contactID string) (int, error) {
	var out int
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.DeleteContactRolesByContact(ctx, contactID)
		return err
	})
	return out, err
}

func (s *GraphStore) DeleteContactRolesByEntity(ctx context.Context, entityID string) (int, error) {
	var out int
	err := s.locked(func(tx *memTx) (err error) {
		out, err = tx.DeleteContactRolesByEntity(ctx, entityID)
		return err
	})
	return out, err
}

func (s *GraphStore) LogAction(ctx context.Context, action string, subjectID string, details map[string]any) error {
	return s.locked(func(tx *memTx) error { return tx.LogAction(ctx, action, subjectID, details) })
}
