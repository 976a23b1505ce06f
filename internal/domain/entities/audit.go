package entities

import "time"

// Audit actions recorded by the graph services.
const (
	ActionRelationshipCreate = "relationship.create"
	ActionRelationshipUpdate = "relationship.update"
	ActionRelationshipDelete = "relationship.delete"
	ActionContactDelete      = "contact.delete"
	ActionEntityDelete       = "entity.delete"
	ActionContactRoleCreate  = "contact_role.create"
)

// AuditEntry represents a logged mutation of the graph.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	SubjectID string         `json:"subject_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
