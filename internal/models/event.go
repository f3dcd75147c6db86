package models

// UserEventType names a change to a user.
type UserEventType string

const (
	UserCreated UserEventType = "user.created"
	UserUpdated UserEventType = "user.updated"
	UserDeleted UserEventType = "user.deleted"
)

// UserEvent is published after a user has been created, updated or deleted.
type UserEvent struct {
	Type       UserEventType `json:"type"`
	User       User          `json:"user"`
	OccurredAt string        `json:"occurred_at"`
}
