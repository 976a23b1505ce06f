package entities

import "time"

// Trimmed projections used in a ContextBrief. Field order is the render
// order, and every field outside these structs is dropped by construction.

// ContactRecord projects id, name, phone, email and type of a contact.
type ContactRecord struct {
	ID    string      `json:"id,omitempty"`
	Name  string      `json:"name,omitempty"`
	Phone string      `json:"phone,omitempty"`
	Email string      `json:"email,omitempty"`
	Type  ContactType `json:"type,omitempty"`
}

// EntityRecord projects id, name, type, categories, phone and email of a
// global entity.
type EntityRecord struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name,omitempty"`
	Type       string   `json:"type,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Email      string   `json:"email,omitempty"`
}

// RelationshipRecord projects type, relation and context of an edge. Type
// is the target kind.
type RelationshipRecord struct {
	Type     TargetKind   `json:"type,omitempty"`
	Relation RelationKind `json:"relation,omitempty"`
	Context  string       `json:"context,omitempty"`
}

// InteractionRecord projects type, timestamp and notes of an interaction.
type InteractionRecord struct {
	Type      InteractionType `json:"type,omitempty"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// Totals holds the untrimmed size of each snapshot collection.
type Totals struct {
	Contacts      int `json:"contacts"`
	Entities      int `json:"entities"`
	Relationships int `json:"relationships"`
	Interactions  int `json:"interactions"`
}

// ContextBrief is the rendered, size-bounded view of a snapshot plus the
// query, handed to the answering collaborator as Text.
type ContextBrief struct {
	Query         string               `json:"query"`
	Contacts      []ContactRecord      `json:"contacts"`
	Entities      []EntityRecord       `json:"entities"`
	Relationships []RelationshipRecord `json:"relationships"`
	Interactions  []InteractionRecord  `json:"interactions"`
	Categories    []string             `json:"categories"`
	Totals        Totals               `json:"totals"`
	Text          string               `json:"text"`
}
