package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
)

// TaskStore is the persistence boundary for tasks. Every call is atomic on
// its own; no multi-row transactions are used or required.
type TaskStore interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.Task, error)
	ListSharedWith(ctx context.Context, userID int64) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	SetSharing(ctx context.Context, taskID, ownerID int64, sharedWith []int64) error
	Delete(ctx context.Context, id int64) error
	AddAttachment(ctx context.Context, a *domain.Attachment) error
	GetAttachment(ctx context.Context, taskID, attachmentID int64) (*domain.Attachment, error)
	DeleteAttachment(ctx context.Context, taskID, attachmentID int64) error
}

// FileRemover deletes a stored attachment file. Removal failures are
// tolerated: the metadata row is the authoritative record.
type FileRemover interface {
	Remove(storagePath string) error
}

type TaskService struct {
	tasks    TaskStore
	files    FileRemover
	notifier *Notifier
}

func NewTaskService(tasks TaskStore, files FileRemover, notifier *Notifier) *TaskService {
	return &TaskService{tasks: tasks, files: files, notifier: notifier}
}

// TaskInput carries the mutable task fields of a create or update request.
type TaskInput struct {
	Title       string
	Description string
	Status      domain.Status
	DueDate     *time.Time
}

func (in *TaskInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if in.Status == "" {
		in.Status = domain.StatusPending
	}
	if !domain.ValidStatus(in.Status) {
		return fmt.Errorf("%w: status must be one of pending, in-progress, completed", domain.ErrValidation)
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, ownerID int64, in TaskInput) (*domain.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	t := &domain.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
		OwnerID:     ownerID,
		SharedWith:  []int64{},
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	t.LegacyUserID = ownerID
	return t, nil
}

func (s *TaskService) List(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.tasks.ListForUser(ctx, userID)
}

func (s *TaskService) ListShared(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.tasks.ListSharedWith(ctx, userID)
}

func (s *TaskService) Get(ctx context.Context, requesterID, taskID int64) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !CanView(t, requesterID) {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

// Update applies in to the task. On a status change the current sharedWith
// members are notified; the fan-out is detached from the caller so its
// outcome never affects the update result.
func (s *TaskService) Update(ctx context.Context, requesterID, taskID int64, in TaskInput) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !CanEdit(t, requesterID) {
		return nil, domain.ErrForbidden
	}
	if in.Status == "" {
		in.Status = t.Status
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	statusChanged := t.Status != in.Status
	t.Title = strings.TrimSpace(in.Title)
	t.Description = in.Description
	t.Status = in.Status
	t.DueDate = in.DueDate

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}

	if statusChanged {
		go s.notifier.TaskUpdated(context.WithoutCancel(ctx), t)
	}
	return t, nil
}

// Share merges targets into the task's shared set and notifies each
// explicit target. Owner-only. The merge is a set union, so re-sharing with
// an already-shared user is a membership no-op — but the target is still
// notified. An empty target list is a successful no-op.
func (s *TaskService) Share(ctx context.Context, requesterID, taskID int64, targets []int64) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !CanDelete(t, requesterID) { // share right == destructive right
		return nil, domain.ErrForbidden
	}

	targets = normalizeTargets(targets)
	if len(targets) == 0 {
		return t, nil
	}

	owner := t.Owner() // backfills legacy rows on persist below
	merged := setUnion(t.SharedWith, targets)

	if err := s.tasks.SetSharing(ctx, t.ID, owner, merged); err != nil {
		return nil, err
	}
	t.OwnerID = owner
	t.SharedWith = merged

	s.notifier.TaskShared(ctx, t, targets)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, requesterID, taskID int64) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !CanDelete(t, requesterID) {
		return nil, domain.ErrForbidden
	}
	if err := s.tasks.Delete(ctx, t.ID); err != nil {
		return nil, err
	}
	// attachment rows cascade; stored files go best-effort
	for _, a := range t.Attachments {
		s.removeFile(a.StoragePath)
	}
	return t, nil
}

// AddAttachments appends metadata entries for already-stored files.
// Owner-only: attachment management is an exclusive ownership right.
func (s *TaskService) AddAttachments(ctx context.Context, requesterID, taskID int64, files []domain.Attachment) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !CanDelete(t, requesterID) {
		return nil, domain.ErrForbidden
	}
	for i := range files {
		files[i].TaskID = t.ID
		if err := s.tasks.AddAttachment(ctx, &files[i]); err != nil {
			return nil, err
		}
		t.Attachments = append(t.Attachments, files[i])
	}
	return t, nil
}

// DeleteAttachment removes the metadata entry and then the stored file.
// NotFound depends only on the metadata entry; a failed file removal is
// logged, never surfaced.
func (s *TaskService) DeleteAttachment(ctx context.Context, requesterID, taskID, attachmentID int64) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !CanDelete(t, requesterID) {
		return nil, domain.ErrForbidden
	}

	a, err := s.tasks.GetAttachment(ctx, t.ID, attachmentID)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.DeleteAttachment(ctx, t.ID, attachmentID); err != nil {
		return nil, err
	}
	s.removeFile(a.StoragePath)

	kept := t.Attachments[:0]
	for _, att := range t.Attachments {
		if att.ID != attachmentID {
			kept = append(kept, att)
		}
	}
	t.Attachments = kept
	return t, nil
}

func (s *TaskService) removeFile(path string) {
	if s.files == nil || path == "" {
		return
	}
	if err := s.files.Remove(path); err != nil {
		logger.Warn("attachment file removal failed", "path", path, "error", err)
	}
}

// normalizeTargets drops empty ids and collapses duplicates, keeping first
// occurrence order.
func normalizeTargets(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func setUnion(current, added []int64) []int64 {
	seen := make(map[int64]struct{}, len(current)+len(added))
	out := make([]int64, 0, len(current)+len(added))
	for _, id := range current {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range added {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
