package entities

import (
	"strings"
	"time"

	"github.com/ersonp/rolodex/internal/domain/errs"
)

// RelationKind defines the kind of relationship between a user and a target.
type RelationKind string

const (
	RelationFamily   RelationKind = "FAMILY"
	RelationFriend   RelationKind = "FRIEND"
	RelationBusiness RelationKind = "BUSINESS"
	RelationHired    RelationKind = "HIRED"
)

// Strength grades how close a relationship is.
type Strength string

const (
	StrengthWeak   Strength = "WEAK"
	StrengthMedium Strength = "MEDIUM"
	StrengthStrong Strength = "STRONG"
)

// Visibility controls who may see an edge.
type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityPublic  Visibility = "PUBLIC"
)

// ReciprocalContextPrefix is prepended to the context of a mirror edge.
const ReciprocalContextPrefix = "Reciprocal: "

// ParseRelationKind validates and converts a string to RelationKind.
func ParseRelationKind(s string) (RelationKind, error) {
	switch RelationKind(strings.ToUpper(strings.TrimSpace(s))) {
	case RelationFamily:
		return RelationFamily, nil
	case RelationFriend:
		return RelationFriend, nil
	case RelationBusiness:
		return RelationBusiness, nil
	case RelationHired:
		return RelationHired, nil
	default:
		return "", errs.InvalidArgument("invalid relation: %q (valid: FAMILY, FRIEND, BUSINESS, HIRED)", s)
	}
}

// ParseStrength validates and converts a string to Strength.
func ParseStrength(s string) (Strength, error) {
	switch Strength(strings.ToUpper(strings.TrimSpace(s))) {
	case StrengthWeak:
		return StrengthWeak, nil
	case StrengthMedium:
		return StrengthMedium, nil
	case StrengthStrong:
		return StrengthStrong, nil
	default:
		return "", errs.InvalidArgument("invalid strength: %q (valid: WEAK, MEDIUM, STRONG)", s)
	}
}

// ParseVisibility validates and converts a string to Visibility.
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(strings.ToUpper(strings.TrimSpace(s))) {
	case VisibilityPrivate:
		return VisibilityPrivate, nil
	case VisibilityPublic:
		return VisibilityPublic, nil
	default:
		return "", errs.InvalidArgument("invalid visibility: %q (valid: PRIVATE, PUBLIC)", s)
	}
}

// Relationship is a directed edge from a user to one contact or one global
// entity. (UserID, Target, Relation) is unique.
type Relationship struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	Target       Target       `json:"target"`
	Relation     RelationKind `json:"relation"`
	Strength     Strength     `json:"strength"`
	Visibility   Visibility   `json:"visibility"`
	IsReciprocal bool         `json:"is_reciprocal"`
	Context      string       `json:"context,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Metadata     Metadata     `json:"metadata,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewRelationship builds an edge with the default strength and visibility.
func NewRelationship(id, userID string, target Target, relation RelationKind, now time.Time) Relationship {
	return Relationship{
		ID:         id,
		UserID:     userID,
		Target:     target,
		Relation:   relation,
		Strength:   StrengthWeak,
		Visibility: VisibilityPrivate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewMirror builds the inverse of a contact-targeted edge: the contact
// becomes the user side and the original user becomes the contact target.
// The mirror is never itself reciprocal, so mirroring stops after one hop.
func NewMirror(primary Relationship, id string, now time.Time) Relationship {
	mirror := NewRelationship(id, primary.Target.ContactID(), ContactTarget(primary.UserID), primary.Relation, now)
	mirror.Strength = primary.Strength
	mirror.Visibility = primary.Visibility
	mirror.IsReciprocal = false
	mirror.Context = ReciprocalContextPrefix + primary.Context
	mirror.Notes = primary.Notes
	mirror.Metadata = primary.Metadata.With(MetaReciprocalOf, primary.ID)
	return mirror
}

// RelationshipPatch holds the edge fields that may be changed.
type RelationshipPatch struct {
	Relation     *RelationKind
	Strength     *Strength
	Visibility   *Visibility
	IsReciprocal *bool
	Context      *string
	Notes        *string
	Metadata     *Metadata
}

// IsEmpty reports whether no field was supplied.
func (p RelationshipPatch) IsEmpty() bool {
	return p.Relation == nil && p.Strength == nil && p.Visibility == nil &&
		p.IsReciprocal == nil && p.Context == nil && p.Notes == nil && p.Metadata == nil
}

// Apply merges the supplied fields into r.
func (p RelationshipPatch) Apply(r *Relationship) {
	if p.Relation != nil {
		r.Relation = *p.Relation
	}
	if p.Strength != nil {
		r.Strength = *p.Strength
	}
	if p.Visibility != nil {
		r.Visibility = *p.Visibility
	}
	if p.IsReciprocal != nil {
		r.IsReciprocal = *p.IsReciprocal
	}
	if p.Context != nil {
		r.Context = *p.Context
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.Metadata != nil {
		r.Metadata = p.Metadata.Clone()
	}
}
