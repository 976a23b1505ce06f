package entities

import (
	"encoding/json"
	"fmt"

	"github.com/ersonp/rolodex/internal/domain/errs"
)

// TargetKind names the side of the graph an edge points at.
type TargetKind string

const (
	TargetContact TargetKind = "CONTACT"
	TargetEntity  TargetKind = "ENTITY"
)

// Target is the endpoint of a relationship or interaction: exactly one
// Contact or exactly one GlobalEntity. The fields are unexported so a value
// can only be built through ContactTarget, EntityTarget or TargetFromIDs.
type Target struct {
	kind TargetKind
	id   string
}

// ContactTarget points at a contact.
func ContactTarget(contactID string) Target {
	return Target{kind: TargetContact, id: contactID}
}

// EntityTarget points at a global entity.
func EntityTarget(entityID string) Target {
	return Target{kind: TargetEntity, id: entityID}
}

// TargetFromIDs converts the either-or id pair used at the edges of the
// system into a Target. Both or neither set is an InvalidArgument.
func TargetFromIDs(contactID, entityID string) (Target, error) {
	switch {
	case contactID != "" && entityID != "":
		return Target{}, errs.InvalidArgument("exactly one of contact or entity must be given, got both")
	case contactID != "":
		return ContactTarget(contactID), nil
	case entityID != "":
		return EntityTarget(entityID), nil
	default:
		return Target{}, errs.InvalidArgument("exactly one of contact or entity must be given, got neither")
	}
}

// Kind returns the target kind.
func (t Target) Kind() TargetKind { return t.kind }

// ID returns the referenced id.
func (t Target) ID() string { return t.id }

// IsContact reports whether the target is a contact.
func (t Target) IsContact() bool { return t.kind == TargetContact }

// IsEntity reports whether the target is a global entity.
func (t Target) IsEntity() bool { return t.kind == TargetEntity }

// IsZero reports whether the target was never set.
func (t Target) IsZero() bool { return t.kind == "" || t.id == "" }

// ContactID returns the id when the target is a contact, "" otherwise.
func (t Target) ContactID() string {
	if t.IsContact() {
		return t.id
	}
	return ""
}

// EntityID returns the id when the target is a global entity, "" otherwise.
func (t Target) EntityID() string {
	if t.IsEntity() {
		return t.id
	}
	return ""
}

// String renders the target as kind:id.
func (t Target) String() string {
	if t.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s:%s", t.kind, t.id)
}

type targetJSON struct {
	ContactID string `json:"contact_id,omitempty"`
	EntityID  string `json:"entity_id,omitempty"`
}

// MarshalJSON encodes the target as the either-or id pair.
func (t Target) MarshalJSON() ([]byte, error) {
	return json.Marshal(targetJSON{ContactID: t.ContactID(), EntityID: t.EntityID()})
}

// UnmarshalJSON decodes the either-or id pair, rejecting both and neither.
func (t *Target) UnmarshalJSON(data []byte) error {
	var raw targetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := TargetFromIDs(raw.ContactID, raw.EntityID)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
