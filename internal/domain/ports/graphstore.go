// Package ports defines interfaces for external service communication.
package ports

import (
	"context"
	"time"

	"github.com/ersonp/rolodex/internal/domain/entities"
)

// GraphTx is the set of graph operations available inside and outside a
// transaction. Find* methods return (nil, nil) when the record is absent.
// Delete* methods for a single id return an errs.NotFound error when nothing
// was deleted. Insert methods for unique records return an errs.Conflict
// error when the uniqueness invariant would be violated.
type GraphTx interface {
	// User operations

	// SaveUser inserts or updates a user. A duplicate email is a Conflict.
	SaveUser(ctx context.Context, user *entities.User) error

	// FindUserByID finds a user by id.
	FindUserByID(ctx context.Context, id string) (*entities.User, error)

	// FindUserByEmail finds a user by normalized email.
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)

	// Contact operations

	// SaveContact inserts or updates a contact.
	SaveContact(ctx context.Context, contact *entities.Contact) error

	// FindContactByID finds a contact by id.
	FindContactByID(ctx context.Context, id string) (*entities.Contact, error)

	// ListContactsByCreator lists contacts added by a user, oldest first.
	ListContactsByCreator(ctx context.Context, userID string) ([]entities.Contact, error)

	// SearchContacts finds a user's contacts whose name contains query.
	SearchContacts(ctx context.Context, userID, query string, limit int) ([]entities.Contact, error)

	// DeleteContact deletes a contact by id.
	DeleteContact(ctx context.Context, id string) error

	// Global entity operations

	// SaveGlobalEntity inserts or updates a global entity.
	SaveGlobalEntity(ctx context.Context, entity *entities.GlobalEntity) error

	// FindGlobalEntityByID finds a global entity by id.
	FindGlobalEntityByID(ctx context.Context, id string) (*entities.GlobalEntity, error)

	// ListGlobalEntities lists all global entities, oldest first.
	ListGlobalEntities(ctx context.Context) ([]entities.GlobalEntity, error)

	// DeleteGlobalEntity deletes a global entity by id.
	DeleteGlobalEntity(ctx context.Context, id string) error

	// Relationship operations

	// InsertRelationship stores a new edge.
	InsertRelationship(ctx context.Context, rel *entities.Relationship) error

	// UpdateRelationship overwrites an existing edge.
	UpdateRelationship(ctx context.Context, rel *entities.Relationship) error

	// FindRelationshipByID finds an edge by id.
	FindRelationshipByID(ctx context.Context, id string) (*entities.Relationship, error)

	// FindRelationship finds the edge for (user, target, relation).
	FindRelationship(ctx context.Context, userID string, target entities.Target, relation entities.RelationKind) (*entities.Relationship, error)

	// ListRelationshipsByUser lists edges whose user side is userID.
	ListRelationshipsByUser(ctx context.Context, userID string) ([]entities.Relationship, error)

	// DeleteRelationship deletes an edge by id.
	DeleteRelationship(ctx context.Context, id string) error

	// DeleteRelationshipsByTarget deletes all edges pointing at target.
	DeleteRelationshipsByTarget(ctx context.Context, target entities.Target) (int, error)

	// DeleteRelationshipsByUser deletes all edges whose user side is userID.
	DeleteRelationshipsByUser(ctx context.Context, userID string) (int, error)

	// Interaction operations

	// SaveInteraction inserts or updates an interaction.
	SaveInteraction(ctx context.Context, interaction *entities.Interaction) error

	// FindInteractionByID finds an interaction by id.
	FindInteractionByID(ctx context.Context, id string) (*entities.Interaction, error)

	// ListInteractionsByUser lists a user's interactions, most recent first.
	ListInteractionsByUser(ctx context.Context, userID string) ([]entities.Interaction, error)

	// DeleteInteraction deletes an interaction by id.
	DeleteInteraction(ctx context.Context, id string) error

	// DeleteInteractionsByTarget deletes all interactions with target.
	DeleteInteractionsByTarget(ctx context.Context, target entities.Target) (int, error)

	// Contact role operations

	// InsertContactRole stores a new role.
	InsertContactRole(ctx context.Context, role *entities.ContactRole) error

	// UpdateContactRole overwrites an existing role.
	UpdateContactRole(ctx context.Context, role *entities.ContactRole) error

	// FindContactRoleByID finds a role by id.
	FindContactRoleByID(ctx context.Context, id string) (*entities.ContactRole, error)

	// FindContactRole finds the role for (contact, entity, role, endDate).
	FindContactRole(ctx context.Context, contactID, entityID, role string, endDate *time.Time) (*entities.ContactRole, error)

	// ListContactRolesByContact lists the roles held by a contact.
	ListContactRolesByContact(ctx context.Context, contactID string) ([]entities.ContactRole, error)

	// ListContactRolesByEntity lists the roles held at an entity.
	ListContactRolesByEntity(ctx context.Context, entityID string) ([]entities.ContactRole, error)

	// DeleteContactRole deletes a role by id.
	DeleteContactRole(ctx context.Context, id string) error

	// DeleteContactRolesByContact deletes all roles of a contact.
	DeleteContactRolesByContact(ctx context.Context, contactID string) (int, error)

	// DeleteContactRolesByEntity deletes all roles at an entity.
	DeleteContactRolesByEntity(ctx context.Context, entityID string) (int, error)

	// Audit operations

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, subjectID string, details map[string]any) error
}

// SnapshotReader provides the joined reads used to build a context snapshot.
// Every method returns a non-nil slice.
type SnapshotReader interface {
	// ListContactDetails lists a user's contacts with their inbound edges.
	ListContactDetails(ctx context.Context, userID string) ([]entities.ContactDetail, error)

	// ListRelationshipDetails lists a user's edges with target summaries.
	ListRelationshipDetails(ctx context.Context, userID string) ([]entities.RelationshipDetail, error)

	// ListEntityDetails lists all global entities with the inbound edges
	// visible to viewerID: the viewer's own edges plus PUBLIC ones.
	ListEntityDetails(ctx context.Context, viewerID string) ([]entities.EntityDetail, error)

	// ListInteractionDetails lists a user's interactions with target summaries.
	ListInteractionDetails(ctx context.Context, userID string) ([]entities.InteractionDetail, error)
}

// GraphStore is the persistent relationship graph.
type GraphStore interface {
	GraphTx
	SnapshotReader

	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// WithTx runs fn inside a single transaction. The transaction commits
	// when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx GraphTx) error) error

	// FindAuditLog finds audit entries for a subject, most recent first.
	FindAuditLog(ctx context.Context, subjectID string) ([]entities.AuditEntry, error)

	// Close closes the underlying connection.
	Close() error
}
