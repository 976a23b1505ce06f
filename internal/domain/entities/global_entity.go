package entities

import (
	"slices"
	"strings"
	"time"
)

// GlobalEntity is a shared organization or professional profile. It is not
// owned by any single user; users link to it through relationships.
type GlobalEntity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Categories  []string  `json:"categories"`
	Description string    `json:"description,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Website     string    `json:"website,omitempty"`
	Address     string    `json:"address,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasCategory reports whether the entity carries the category, ignoring case.
func (e *GlobalEntity) HasCategory(category string) bool {
	want := NormalizeName(category)
	return slices.ContainsFunc(e.Categories, func(c string) bool {
		return strings.EqualFold(c, want)
	})
}

// GlobalEntityPatch holds the entity fields that may be changed.
type GlobalEntityPatch struct {
	Name        *string
	Type        *string
	Categories  *[]string
	Description *string
	Phone       *string
	Email       *string
	Website     *string
	Address     *string
	Metadata    *Metadata
}

// Apply merges the supplied fields into e.
func (p GlobalEntityPatch) Apply(e *GlobalEntity) {
	if p.Name != nil {
		e.Name = strings.TrimSpace(*p.Name)
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Categories != nil {
		e.Categories = NormalizeTags(*p.Categories)
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Phone != nil {
		e.Phone = *p.Phone
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Website != nil {
		e.Website = *p.Website
	}
	if p.Address != nil {
		e.Address = *p.Address
	}
	if p.Metadata != nil {
		e.Metadata = p.Metadata.Clone()
	}
}
