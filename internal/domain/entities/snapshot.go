package entities

// TargetSummary is the short form of a relationship or interaction target,
// joined in when the snapshot is read.
type TargetSummary struct {
	Kind  TargetKind `json:"kind"`
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Type  string     `json:"type,omitempty"`
	Phone string     `json:"phone,omitempty"`
	Email string     `json:"email,omitempty"`
}

// ContactDetail is a contact with the edges that point at it.
type ContactDetail struct {
	Contact
	Relationships []Relationship `json:"relationships"`
}

// RelationshipDetail is an edge with its target summary.
type RelationshipDetail struct {
	Relationship
	Summary TargetSummary `json:"summary"`
}

// EntityDetail is a global entity with the edges that point at it.
type EntityDetail struct {
	GlobalEntity
	Relationships []Relationship `json:"relationships"`
}

// InteractionDetail is an interaction with its target summary.
type InteractionDetail struct {
	Interaction
	Summary TargetSummary `json:"summary"`
}

// ContextSnapshot is the slice of a user's graph fetched for one query.
// Collections are never nil.
type ContextSnapshot struct {
	UserID        string               `json:"user_id"`
	Contacts      []ContactDetail      `json:"contacts"`
	Relationships []RelationshipDetail `json:"relationships"`
	Entities      []EntityDetail       `json:"entities"`
	Interactions  []InteractionDetail  `json:"interactions"`
}

// NewContextSnapshot returns a snapshot with empty collections.
func NewContextSnapshot(userID string) *ContextSnapshot {
	return &ContextSnapshot{
		UserID:        userID,
		Contacts:      []ContactDetail{},
		Relationships: []RelationshipDetail{},
		Entities:      []EntityDetail{},
		Interactions:  []InteractionDetail{},
	}
}

// IsEmpty reports whether all four collections are empty.
func (s *ContextSnapshot) IsEmpty() bool {
	return len(s.Contacts) == 0 && len(s.Relationships) == 0 &&
		len(s.Entities) == 0 && len(s.Interactions) == 0
}
