package domain

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ValidStatus reports whether s is one of the allowed task states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          int64        `db:"id" json:"id"`
	Title       string       `db:"title" json:"title"`
	Description string       `db:"description" json:"description,omitempty"`
	Status      Status       `db:"status" json:"status"`
	DueDate     *time.Time   `db:"due_date" json:"dueDate,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
	// LegacyUserID is the old single-assignee column. Rows created before
	// sharing existed have it set and OwnerID empty; the first share
	// mutation backfills OwnerID from it.
	LegacyUserID int64        `db:"user_id" json:"user,omitempty"`
	OwnerID      int64        `db:"owner_id" json:"owner,omitempty"`
	SharedWith   []int64      `db:"shared_with" json:"sharedWith"`
	Attachments  []Attachment `db:"-" json:"attachments,omitempty"`
}

// Owner resolves the effective owner id, falling back to the legacy
// single-assignee field for records that predate the owner column.
func (t *Task) Owner() int64 {
	if t.OwnerID != 0 {
		return t.OwnerID
	}
	return t.LegacyUserID
}

type Attachment struct {
	ID           int64     `db:"id" json:"id"`
	TaskID       int64     `db:"task_id" json:"-"`
	Filename     string    `db:"filename" json:"filename"`
	OriginalName string    `db:"original_name" json:"originalName"`
	StoragePath  string    `db:"storage_path" json:"path"`
	Size         int64     `db:"size" json:"size"`
	MimeType     string    `db:"mime_type" json:"mimetype"`
	UploadedAt   time.Time `db:"uploaded_at" json:"uploadedAt"`
}
