package entities

import (
	"strings"
	"time"

	"github.com/ersonp/rolodex/internal/domain/errs"
)

// ContactType distinguishes people from businesses in a user's contact list.
type ContactType string

const (
	ContactPerson   ContactType = "PERSON"
	ContactBusiness ContactType = "BUSINESS"
)

// ParseContactType validates and converts a string to ContactType.
func ParseContactType(s string) (ContactType, error) {
	switch ContactType(strings.ToUpper(strings.TrimSpace(s))) {
	case ContactPerson:
		return ContactPerson, nil
	case ContactBusiness:
		return ContactBusiness, nil
	default:
		return "", errs.InvalidArgument("invalid contact type: %q (valid: PERSON, BUSINESS)", s)
	}
}

// Contact is a person or business known to a user.
type Contact struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Type      ContactType `json:"type"`
	Phone     string      `json:"phone,omitempty"`
	Email     string      `json:"email,omitempty"`
	Location  string      `json:"location,omitempty"`
	Tags      []string    `json:"tags"`
	AddedByID string      `json:"added_by_id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewContact builds a contact owned by addedByID.
func NewContact(id, addedByID, name string, contactType ContactType, now time.Time) Contact {
	return Contact{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Type:      contactType,
		Tags:      []string{},
		AddedByID: addedByID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ContactPatch holds the contact fields that may be changed.
type ContactPatch struct {
	Name     *string
	Type     *ContactType
	Phone    *string
	Email    *string
	Location *string
	Tags     *[]string
}

// Apply merges the supplied fields into c.
func (p ContactPatch) Apply(c *Contact) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.Tags != nil {
		c.Tags = NormalizeTags(*p.Tags)
	}
}
