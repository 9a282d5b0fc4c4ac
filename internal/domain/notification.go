package domain

import "time"

const (
	EventTaskShared  = "task_shared"
	EventTaskUpdated = "task_updated"
)

// Notification is one entry of a user's append-only notification log.
type Notification struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	Type      string    `db:"type" json:"type"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"date"`
}
