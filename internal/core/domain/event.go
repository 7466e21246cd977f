package domain

import "time"

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventUserRoleChanged    = "UserRoleChanged"
	EventUserDeleted        = "UserDeleted"
)

// Event is a domain fact emitted after a successful write. SubjectID is the
// order or user the event is about and decides publish ordering.
type Event struct {
	ID         string         `json:"event_id"`
	Type       string         `json:"event_type"`
	SubjectID  string         `json:"subject_id"`
	ActorID    string         `json:"actor_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// AuditEntry is a row in the audit trail kept for admin writes.
type AuditEntry struct {
	Kind      string
	SubjectID string
	ActorID   string
	Value     string
	At        time.Time
}
