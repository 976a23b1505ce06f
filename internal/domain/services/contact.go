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

// DefaultSearchLimit is the default number of results to return.
const DefaultSearchLimit = 10

// CreateContactInput holds the fields for a new contact.
type CreateContactInput struct {
	AddedByID string
	Name      string
	Type      entities.ContactType
	Phone     string
	Email     string
	Location  string
	Tags      []string
}

// ContactDeleteResult reports what a contact deletion removed.
type ContactDeleteResult struct {
	Relationships int `json:"relationships"`
	Interactions  int `json:"interactions"`
	Roles         int `json:"roles"`
}

// ContactService manages a user's contacts.
type ContactService struct {
	store  ports.GraphStore
	logger *zap.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(store ports.GraphStore, logger *zap.Logger) *ContactService {
	return &ContactService{
		store:  store,
		logger: loggerOrNop(logger),
	}
}

// Create adds a contact owned by in.AddedByID, which must be an existing user.
func (s *ContactService) Create(ctx context.Context, in CreateContactInput) (*entities.Contact, error) {
	contact, err := buildContact(in)
	if err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		if err := requireUser(ctx, tx, contact.AddedByID); err != nil {
			return err
		}
		return tx.SaveContact(ctx, contact)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("contact created", zap.String("id", contact.ID), zap.String("added_by_id", contact.AddedByID))
	return contact, nil
}

func buildContact(in CreateContactInput) (*entities.Contact, error) {
	switch {
	case strings.TrimSpace(in.AddedByID) == "":
		return nil, errs.InvalidArgument("added-by user id is required")
	case strings.TrimSpace(in.Name) == "":
		return nil, errs.InvalidArgument("name is required")
	case in.Type == "":
		return nil, errs.InvalidArgument("type is required")
	}
	contactType, err := entities.ParseContactType(string(in.Type))
	if err != nil {
		return nil, err
	}

	contact := entities.NewContact(newID(), in.AddedByID, in.Name, contactType, timeNow())
	contact.Phone = strings.TrimSpace(in.Phone)
	contact.Email = strings.TrimSpace(in.Email)
	contact.Location = strings.TrimSpace(in.Location)
	contact.Tags = entities.NormalizeTags(in.Tags)
	return &contact, nil
}

// Get returns a contact by id.
func (s *ContactService) Get(ctx context.Context, id string) (*entities.Contact, error) {
	contact, err := s.store.FindContactByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding contact: %w", err)
	}
	if contact == nil {
		return nil, errs.NotFound("contact", id)
	}
	return contact, nil
}

// List returns the contacts a user has added.
func (s *ContactService) List(ctx context.Context, userID string) ([]entities.Contact, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.InvalidArgument("user id is required")
	}
	contacts, err := s.store.ListContactsByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	return contacts, nil
}

// Search returns a user's contacts whose name contains query, ignoring case.
func (s *ContactService) Search(ctx context.Context, userID, query string, limit int) ([]entities.Contact, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.InvalidArgument("user id is required")
	}
	if strings.TrimSpace(query) == "" {
		return nil, errs.InvalidArgument("search query is required")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	contacts, err := s.store.SearchContacts(ctx, userID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching contacts: %w", err)
	}
	return contacts, nil
}

// Update merges the supplied fields into an existing contact.
func (s *ContactService) Update(ctx context.Context, id string, patch entities.ContactPatch) (*entities.Contact, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, errs.InvalidArgument("name cannot be empty")
	}
	if patch.Type != nil {
		t, err := entities.ParseContactType(string(*patch.Type))
		if err != nil {
			return nil, err
		}
		patch.Type = &t
	}

	var updated *entities.Contact
	err := s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		contact, err := tx.FindContactByID(ctx, id)
		if err != nil {
			return fmt.Errorf("finding contact: %w", err)
		}
		if contact == nil {
			return errs.NotFound("contact", id)
		}
		patch.Apply(contact)
		contact.UpdatedAt = timeNow()
		if err := tx.SaveContact(ctx, contact); err != nil {
			return err
		}
		updated = contact
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a contact together with the edges that point at it, the
// mirror edges sourced from it, its interactions and its roles.
func (s *ContactService) Delete(ctx context.Context, id string) (*ContactDeleteResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.InvalidArgument("contact id is required")
	}

	result := &ContactDeleteResult{}
	err := s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		if err := requireContact(ctx, tx, id); err != nil {
			return err
		}

		target := entities.ContactTarget(id)
		inbound, err := tx.DeleteRelationshipsByTarget(ctx, target)
		if err != nil {
			return err
		}
		mirrors, err := tx.DeleteRelationshipsByUser(ctx, id)
		if err != nil {
			return err
		}
		result.Relationships = inbound + mirrors

		if result.Interactions, err = tx.DeleteInteractionsByTarget(ctx, target); err != nil {
			return err
		}
		if result.Roles, err = tx.DeleteContactRolesByContact(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteContact(ctx, id); err != nil {
			return err
		}
		return tx.LogAction(ctx, entities.ActionContactDelete, id, map[string]any{
			"relationships": result.Relationships,
			"interactions":  result.Interactions,
			"roles":         result.Roles,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("contact deleted",
		zap.String("id", id),
		zap.Int("relationships", result.Relationships),
		zap.Int("interactions", result.Interactions),
		zap.Int("roles", result.Roles),
	)
	return result, nil
}
