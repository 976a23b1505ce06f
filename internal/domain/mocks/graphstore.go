// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
	"github.com/ersonp/rolodex/internal/domain/ports"
)

var _ ports.GraphStore = (*GraphStore)(nil)

// GraphStore is an in-memory implementation of ports.GraphStore. It enforces
// the same uniqueness and not-found rules as the SQLite adapter. WithTx holds
// an exclusive lock for the whole callback and restores a snapshot of the
// data when the callback fails.
type GraphStore struct {
	mu   sync.Mutex
	data *graphData

	// FailFunc, when set, is consulted at the start of every operation with
	// the operation name (e.g. "InsertRelationship"). A non-nil result is
	// returned as the operation's error.
	FailFunc func(op string) error

	// ReadDelay delays each snapshot read, honouring ctx cancellation.
	ReadDelay time.Duration

	// Call tracking
	Calls map[string]int
}

// NewGraphStore creates an empty in-memory graph store.
func NewGraphStore() *GraphStore {
	return &GraphStore{data: newGraphData(), Calls: make(map[string]int)}
}

// FailOn makes op return err on every call.
func (s *GraphStore) FailOn(op string, err error) {
	s.FailFunc = func(name string) error {
		if name == op {
			return err
		}
		return nil
	}
}

// FailOnCall makes op return err on its n-th call (1-based) only.
func (s *GraphStore) FailOnCall(op string, n int, err error) {
	seen := 0
	s.FailFunc = func(name string) error {
		if name != op {
			return nil
		}
		seen++
		if seen == n {
			return err
		}
		return nil
	}
}

type graphData struct {
	users         map[string]entities.User
	contacts      map[string]entities.Contact
	globals       map[string]entities.GlobalEntity
	relationships map[string]entities.Relationship
	interactions  map[string]entities.Interaction
	roles         map[string]entities.ContactRole
	audit         []entities.AuditEntry
}

func newGraphData() *graphData {
	return &graphData{
		users:         make(map[string]entities.User),
		contacts:      make(map[string]entities.Contact),
		globals:       make(map[string]entities.GlobalEntity),
		relationships: make(map[string]entities.Relationship),
		interactions:  make(map[string]entities.Interaction),
		roles:         make(map[string]entities.ContactRole),
	}
}

func (d *graphData) clone() *graphData {
	return &graphData{
		users:         maps.Clone(d.users),
		contacts:      maps.Clone(d.contacts),
		globals:       maps.Clone(d.globals),
		relationships: maps.Clone(d.relationships),
		interactions:  maps.Clone(d.interactions),
		roles:         maps.Clone(d.roles),
		audit:         slices.Clone(d.audit),
	}
}

// memTx implements ports.GraphTx over graphData. Callers hold the store lock.
type memTx struct {
	store *GraphStore
	d     *graphData
}

func (s *GraphStore) fail(op string) error {
	s.Calls[op]++
	if s.FailFunc == nil {
		return nil
	}
	return s.FailFunc(op)
}

// locked runs fn against the live data under the store lock.
func (s *GraphStore) locked(fn func(tx *memTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memTx{store: s, d: s.data})
}

// WithTx runs fn with exclusive access and rolls back on error.
func (s *GraphStore) WithTx(ctx context.Context, fn func(tx ports.GraphTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("WithTx"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	backup := s.data.clone()
	if err := fn(&memTx{store: s, d: s.data}); err != nil {
		s.data = backup
		return err
	}
	return nil
}

// EnsureSchema is a no-op.
func (s *GraphStore) EnsureSchema(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fail("EnsureSchema")
}

// Close is a no-op.
func (s *GraphStore) Close() error {
	return nil
}

// User operations

func (tx *memTx) SaveUser(_ context.Context, user *entities.User) error {
	if err := tx.store.fail("SaveUser"); err != nil {
		return err
	}
	email := entities.NormalizeEmail(user.Email)
	for id, u := range tx.d.users {
		if id != user.ID && u.Email == email {
			return errs.Conflict("user with email %s already exists", user.Email)
		}
	}
	stored := *user
	stored.Email = email
	tx.d.users[user.ID] = stored
	return nil
}

func (tx *memTx) FindUserByID(_ context.Context, id string) (*entities.User, error) {
	if err := tx.store.fail("FindUserByID"); err != nil {
		return nil, err
	}
	if u, ok := tx.d.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (tx *memTx) FindUserByEmail(_ context.Context, email string) (*entities.User, error) {
	if err := tx.store.fail("FindUserByEmail"); err != nil {
		return nil, err
	}
	email = entities.NormalizeEmail(email)
	for _, u := range tx.d.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// Contact operations

func (tx *memTx) SaveContact(_ context.Context, contact *entities.Contact) error {
	if err := tx.store.fail("SaveContact"); err != nil {
		return err
	}
	stored := *contact
	stored.Tags = slices.Clone(contact.Tags)
	if stored.Tags == nil {
		stored.Tags = []string{}
	}
	tx.d.contacts[contact.ID] = stored
	return nil
}

func (tx *memTx) FindContactByID(_ context.Context, id string) (*entities.Contact, error) {
	if err := tx.store.fail("FindContactByID"); err != nil {
		return nil, err
	}
	if c, ok := tx.d.contacts[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (tx *memTx) ListContactsByCreator(_ context.Context, userID string) ([]entities.Contact, error) {
	if err := tx.store.fail("ListContactsByCreator"); err != nil {
		return nil, err
	}
	return tx.contactsBy(userID), nil
}

func (tx *memTx) contactsBy(userID string) []entities.Contact {
	out := make([]entities.Contact, 0)
	for _, c := range tx.d.contacts {
		if c.AddedByID == userID {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b entities.Contact) int {
		return byCreated(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out
}

func (tx *memTx) SearchContacts(_ context.Context, userID, query string, limit int) ([]entities.Contact, error) {
	if err := tx.store.fail("SearchContacts"); err != nil {
		return nil, err
	}
	needle := entities.NormalizeName(query)
	out := make([]entities.Contact, 0)
	for _, c := range tx.contactsBy(userID) {
		if strings.Contains(entities.NormalizeName(c.Name), needle) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b entities.Contact) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (tx *memTx) DeleteContact(_ context.Context, id string) error {
	if err := tx.store.fail("DeleteContact"); err != nil {
		return err
	}
	if _, ok := tx.d.contacts[id]; !ok {
		return errs.NotFound("contact", id)
	}
	delete(tx.d.contacts, id)
	return nil
}

// Global entity operations

func (tx *memTx) SaveGlobalEntity(_ context.Context, entity *entities.GlobalEntity) error {
	if err := tx.store.fail("SaveGlobalEntity"); err != nil {
		return err
	}
	stored := *entity
	stored.Categories = slices.Clone(entity.Categories)
	if stored.Categories == nil {
		stored.Categories = []string{}
	}
	stored.Metadata = entity.Metadata.Clone()
	tx.d.globals[entity.ID] = stored
	return nil
}

func (tx *memTx) FindGlobalEntityByID(_ context.Context, id string) (*entities.GlobalEntity, error) {
	if err := tx.store.fail("FindGlobalEntityByID"); err != nil {
		return nil, err
	}
	if e, ok := tx.d.globals[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (tx *memTx) ListGlobalEntities(_ context.Context) ([]entities.GlobalEntity, error) {
	if err := tx.store.fail("ListGlobalEntities"); err != nil {
		return nil, err
	}
	return tx.allGlobals(), nil
}

func (tx *memTx) allGlobals() []entities.GlobalEntity {
	out := slices.Collect(maps.Values(tx.d.globals))
	slices.SortFunc(out, func(a, b entities.GlobalEntity) int {
		return byCreated(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	if out == nil {
		out = []entities.GlobalEntity{}
	}
	return out
}

func (tx *memTx) DeleteGlobalEntity(_ context.Context, id string) error {
	if err := tx.store.fail("DeleteGlobalEntity"); err != nil {
		return err
	}
	if _, ok := tx.d.globals[id]; !ok {
		return errs.NotFound("global entity", id)
	}
	delete(tx.d.globals, id)
	return nil
}

// Relationship operations

func sameEdge(a, b entities.Relationship) bool {
	return a.UserID == b.UserID && a.Target == b.Target && a.Relation == b.Relation
}

func (tx *memTx) InsertRelationship(_ context.Context, rel *entities.Relationship) error {
	if err := tx.store.fail("InsertRelationship"); err != nil {
		return err
	}
	if _, ok := tx.d.relationships[rel.ID]; ok {
		return errs.Conflict("relationship %s already exists", rel.ID)
	}
	for _, existing := range tx.d.relationships {
		if sameEdge(existing, *rel) {
			return errs.Conflict("relationship %s from %s to %s already exists", rel.Relation, rel.UserID, rel.Target)
		}
	}
	stored := *rel
	stored.Metadata = rel.Metadata.Clone()
	tx.d.relationships[rel.ID] = stored
	return nil
}

func (tx *memTx) UpdateRelationship(_ context.Context, rel *entities.Relationship) error {
	if err := tx.store.fail("UpdateRelationship"); err != nil {
		return err
	}
	current, ok := tx.d.relationships[rel.ID]
	if !ok {
		return errs.NotFound("relationship", rel.ID)
	}
	updated := *rel
	updated.UserID, updated.Target, updated.CreatedAt = current.UserID, current.Target, current.CreatedAt
	for id, existing := range tx.d.relationships {
		if id != rel.ID && sameEdge(existing, updated) {
			return errs.Conflict("relationship %s from %s to %s already exists", rel.Relation, rel.UserID, rel.Target)
		}
	}
	updated.Metadata = rel.Metadata.Clone()
	tx.d.relationships[rel.ID] = updated
	return nil
}

func (tx *memTx) FindRelationshipByID(_ context.Context, id string) (*entities.Relationship, error) {
	if err := tx.store.fail("FindRelationshipByID"); err != nil {
		return nil, err
	}
	if r, ok := tx.d.relationships[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (tx *memTx) FindRelationship(_ context.Context, userID string, target entities.Target, relation entities.RelationKind) (*entities.Relationship, error) {
	if err := tx.store.fail("FindRelationship"); err != nil {
		return nil, err
	}
	key := entities.Relationship{UserID: userID, Target: target, Relation: relation}
	for _, r := range tx.d.relationships {
		if sameEdge(r, key) {
			return &r, nil
		}
	}
	return nil, nil
}

func (tx *memTx) ListRelationshipsByUser(_ context.Context, userID string) ([]entities.Relationship, error) {
	if err := tx.store.fail("ListRelationshipsByUser"); err != nil {
		return nil, err
	}
	return tx.relationshipsWhere(func(r entities.Relationship) bool { return r.UserID == userID }), nil
}

func (tx *memTx) relationshipsWhere(keep func(entities.Relationship) bool) []entities.Relationship {
	out := make([]entities.Relationship, 0)
	for _, r := range tx.d.relationships {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b entities.Relationship) int {
		return byCreated(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out
}

func (tx *memTx) DeleteRelationship(_ context.Context, id string) error {
	if err := tx.store.fail("DeleteRelationship"); err != nil {
		return err
	}
	if _, ok := tx.d.relationships[id]; !ok {
		return errs.NotFound("relationship", id)
	}
	tx.dropRelationship(id)
	return nil
}

// dropRelationship deletes an edge and clears interaction links to it.
func (tx *memTx) dropRelationship(id string) {
	delete(tx.d.relationships, id)
	for iid, in := range tx.d.interactions {
		if in.RelationshipID == id {
			in.RelationshipID = ""
			tx.d.interactions[iid] = in
		}
	}
}

func (tx *memTx) DeleteRelationshipsByTarget(_ context.Context, target entities.Target) (int, error) {
	if err := tx.store.fail("DeleteRelationshipsByTarget"); err != nil {
		return 0, err
	}
	n := 0
	for id, r := range tx.d.relationships {
		if r.Target == target {
			tx.dropRelationship(id)
			n++
		}
	}
	return n, nil
}

func (tx *memTx) DeleteRelationshipsByUser(_ context.Context, userID string) (int, error) {
	if err := tx.store.fail("DeleteRelationshipsByUser"); err != nil {
		return 0, err
	}
	n := 0
	for id, r := range tx.d.relationships {
		if r.UserID == userID {
			tx.dropRelationship(id)
			n++
		}
	}
	return n, nil
}

// Interaction operations

func (tx *memTx) SaveInteraction(_ context.Context, interaction *entities.Interaction) error {
	if err := tx.store.fail("SaveInteraction"); err != nil {
		return err
	}
	stored := *interaction
	stored.Metadata = interaction.Metadata.Clone()
	tx.d.interactions[interaction.ID] = stored
	return nil
}

func (tx *memTx) FindInteractionByID(_ context.Context, id string) (*entities.Interaction, error) {
	if err := tx.store.fail("FindInteractionByID"); err != nil {
		return nil, err
	}
	if in, ok := tx.d.interactions[id]; ok {
		return &in, nil
	}
	return nil, nil
}

func (tx *memTx) ListInteractionsByUser(_ context.Context, userID string) ([]entities.Interaction, error) {
	if err := tx.store.fail("ListInteractionsByUser"); err != nil {
		return nil, err
	}
	return tx.interactionsOf(userID), nil
}

func (tx *memTx) interactionsOf(userID string) []entities.Interaction {
	out := make([]entities.Interaction, 0)
	for _, in := range tx.d.interactions {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	slices.SortFunc(out, func(a, b entities.Interaction) int {
		// Most recent first.
		return byCreated(b.Timestamp, a.Timestamp, a.ID, b.ID)
	})
	return out
}

func (tx *memTx) DeleteInteraction(_ context.Context, id string) error {
	if err := tx.store.fail("DeleteInteraction"); err != nil {
		return err
	}
	if _, ok := tx.d.interactions[id]; !ok {
		return errs.NotFound("interaction", id)
	}
	delete(tx.d.interactions, id)
	return nil
}

func (tx *memTx) DeleteInteractionsByTarget(_ context.Context, target entities.Target) (int, error) {
	if err := tx.store.fail("DeleteInteractionsByTarget"); err != nil {
		return 0, err
	}
	n := 0
	for id, in := range tx.d.interactions {
		if in.Target == target {
			delete(tx.d.interactions, id)
			n++
		}
	}
	return n, nil
}

// Contact role operations

func sameTenure(a, b entities.ContactRole) bool {
	return a.ContactID == b.ContactID && a.EntityID == b.EntityID &&
		a.Role == b.Role && entities.SameEndDate(a.EndDate, b.EndDate)
}

func (tx *memTx) InsertContactRole(_ context.Context, role *entities.ContactRole) error {
	if err := tx.store.fail("InsertContactRole"); err != nil {
		return err
	}
	for _, existing := range tx.d.roles {
		if existing.ID == role.ID || sameTenure(existing, *role) {
			return errs.Conflict("contact %s already holds role %q at %s", role.ContactID, role.Role, role.EntityID)
		}
	}
	stored := *role
	stored.Metadata = role.Metadata.Clone()
	tx.d.roles[role.ID] = stored
	return nil
}

func (tx *memTx) UpdateContactRole(_ context.Context, role *entities.ContactRole) error {
	if err := tx.store.fail("UpdateContactRole"); err != nil {
		return err
	}
	if _, ok := tx.d.roles[role.ID]; !ok {
		return errs.NotFound("contact role", role.ID)
	}
	for id, existing := range tx.d.roles {
		if id != role.ID && sameTenure(existing, *role) {
			return errs.Conflict("contact %s already holds role %q at %s", role.ContactID, role.Role, role.EntityID)
		}
	}
	stored := *role
	stored.Metadata = role.Metadata.Clone()
	tx.d.roles[role.ID] = stored
	return nil
}

func (tx *memTx) FindContactRoleByID(_ context.Context, id string) (*entities.ContactRole, error) {
	if err := tx.store.fail("FindContactRoleByID"); err != nil {
		return nil, err
	}
	if r, ok := tx.d.roles[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (tx *memTx) FindContactRole(_ context.Context, contactID, entityID, role string, endDate *time.Time) (*entities.ContactRole, error) {
	if err := tx.store.fail("FindContactRole"); err != nil {
		return nil, err
	}
	key := entities.ContactRole{ContactID: contactID, EntityID: entityID, Role: role, EndDate: endDate}
	for _, r := range tx.d.roles {
		if sameTenure(r, key) {
			return &r, nil
		}
	}
	return nil, nil
}

func (tx *memTx) rolesWhere(keep func(entities.ContactRole) bool) []entities.ContactRole {
	out := make([]entities.ContactRole, 0)
	for _, r := range tx.d.roles {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b entities.ContactRole) int {
		return byCreated(a.StartDate, b.StartDate, a.ID, b.ID)
	})
	return out
}

func (tx *memTx) ListContactRolesByContact(_ context.Context, contactID string) ([]entities.ContactRole, error) {
	if err := tx.store.fail("ListContactRolesByContact"); err != nil {
		return nil, err
	}
	return tx.rolesWhere(func(r entities.ContactRole) bool { return r.ContactID == contactID }), nil
}

func (tx *memTx) ListContactRolesByEntity(_ context.Context, entityID string) ([]entities.ContactRole, error) {
	if err := tx.store.fail("ListContactRolesByEntity"); err != nil {
		return nil, err
	}
	return tx.rolesWhere(func(r entities.ContactRole) bool { return r.EntityID == entityID }), nil
}

func (tx *memTx) DeleteContactRole(_ context.Context, id string) error {
	if err := tx.store.fail("DeleteContactRole"); err != nil {
		return err
	}
	if _, ok := tx.d.roles[id]; !ok {
		return errs.NotFound("contact role", id)
	}
	delete(tx.d.roles, id)
	return nil
}

func (tx *memTx) deleteRolesWhere(keep func(entities.ContactRole) bool) int {
	n := 0
	for id, r := range tx.d.roles {
		if keep(r) {
			delete(tx.d.roles, id)
			n++
		}
	}
	return n
}

func (tx *memTx) DeleteContactRolesByContact(_ context.Context, contactID string) (int, error) {
	if err := tx.store.fail("DeleteContactRolesByContact"); err != nil {
		return 0, err
	}
	return tx.deleteRolesWhere(func(r entities.ContactRole) bool { return r.ContactID == contactID }), nil
}

func (tx *memTx) DeleteContactRolesByEntity(_ context.Context, entityID string) (int, error) {
	if err := tx.store.fail("DeleteContactRolesByEntity"); err != nil {
		return 0, err
	}
	return tx.deleteRolesWhere(func(r entities.ContactRole) bool { return r.EntityID == entityID }), nil
}

// Audit operations

func (tx *memTx) LogAction(_ context.Context, action string, subjectID string, details map[string]any) error {
	if err := tx.store.fail("LogAction"); err != nil {
		return err
	}
	tx.d.audit = append(tx.d.audit, entities.AuditEntry{
		ID:        int64(len(tx.d.audit) + 1),
		Action:    action,
		SubjectID: subjectID,
		Details:   maps.Clone(details),
		CreatedAt: time.Now(),
	})
	return nil
}

// FindAuditLog finds audit entries for a subject, most recent first.
func (s *GraphStore) FindAuditLog(_ context.Context, subjectID string) ([]entities.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindAuditLog"); err != nil {
		return nil, err
	}
	out := make([]entities.AuditEntry, 0)
	for i := len(s.data.audit) - 1; i >= 0; i-- {
		if s.data.audit[i].SubjectID == subjectID {
			out = append(out, s.data.audit[i])
		}
	}
	return out, nil
}

// AuditActions returns every logged action in order.
func (s *GraphStore) AuditActions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.data.audit))
	for _, e := range s.data.audit {
		out = append(out, e.Action)
	}
	return out
}

// RelationshipCount returns the number of stored edges.
func (s *GraphStore) RelationshipCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.relationships)
}

func byCreated(a, b time.Time, aID, bID string) int {
	if c := a.Compare(b); c != 0 {
		return c
	}
	return strings.Compare(aID, bID)
}
