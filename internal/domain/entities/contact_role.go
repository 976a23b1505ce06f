package entities

import "time"

// ContactRole asserts that a contact held a role at a global entity between
// StartDate and EndDate. A nil EndDate means the role is still held.
// (ContactID, EntityID, Role, EndDate) is unique.
type ContactRole struct {
	ID        string     `json:"id"`
	ContactID string     `json:"contact_id"`
	EntityID  string     `json:"entity_id"`
	Role      string     `json:"role"`
	Location  string     `json:"location,omitempty"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Metadata  Metadata   `json:"metadata,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewContactRole builds an open-ended role starting at now.
func NewContactRole(id, contactID, entityID, role string, now time.Time) ContactRole {
	return ContactRole{
		ID:        id,
		ContactID: contactID,
		EntityID:  entityID,
		Role:      role,
		StartDate: now,
		CreatedAt: now,
	}
}

// IsCurrent reports whether the role has no end date or ends after at.
func (r *ContactRole) IsCurrent(at time.Time) bool {
	return r.EndDate == nil || r.EndDate.After(at)
}

// SameEndDate compares two optional end dates; nil only equals nil.
func SameEndDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// ContactRolePatch holds the role fields that may be changed.
type ContactRolePatch struct {
	Role      *string
	Location  *string
	StartDate *time.Time
	// EndDate sets the end date; ClearEndDate reopens the role.
	EndDate      *time.Time
	ClearEndDate bool
	Metadata     *Metadata
}

// Apply merges the supplied fields into r.
func (p ContactRolePatch) Apply(r *ContactRole) {
	if p.Role != nil {
		r.Role = *p.Role
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.StartDate != nil {
		r.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		end := *p.EndDate
		r.EndDate = &end
	}
	if p.ClearEndDate {
		r.EndDate = nil
	}
	if p.Metadata != nil {
		r.Metadata = p.Metadata.Clone()
	}
}
