package repository

import (
	"context"
	"errors"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskCols = `id, title, COALESCE(description, ''), status, due_date, created_at,
	COALESCE(user_id, 0), COALESCE(owner_id, 0), shared_with`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	if t.SharedWith == nil {
		t.SharedWith = []int64{}
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (title, description, status, due_date, user_id, owner_id, shared_with)
		 VALUES ($1, $2, $3, $4, $5, $5, $6)
		 RETURNING id, created_at`,
		t.Title, t.Description, t.Status, t.DueDate, t.OwnerID, t.SharedWith,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskCols+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, err
	}
	t.Attachments, err = r.ListAttachments(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListForUser returns tasks the user owns (including legacy single-assignee
// rows) or is shared on, newest first.
func (r *TaskRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskCols+` FROM tasks
		 WHERE owner_id = $1 OR user_id = $1 OR $1 = ANY(shared_with)
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// ListSharedWith returns only the tasks shared to the user by someone else.
func (r *TaskRepository) ListSharedWith(ctx context.Context, userID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskCols+` FROM tasks
		 WHERE $1 = ANY(shared_with)
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2, status = $3, due_date = $4 WHERE id = $5`,
		t.Title, t.Description, t.Status, t.DueDate, t.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetSharing persists the merged shared set and the resolved owner in one
// atomic single-row update. Concurrent shares race last-write-wins.
func (r *TaskRepository) SetSharing(ctx context.Context, taskID, ownerID int64, sharedWith []int64) error {
	if sharedWith == nil {
		sharedWith = []int64{}
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks SET owner_id = $1, shared_with = $2 WHERE id = $3`,
		ownerID, sharedWith, taskID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) AddAttachment(ctx context.Context, a *domain.Attachment) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO attachments (task_id, filename, original_name, storage_path, size, mime_type)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, uploaded_at`,
		a.TaskID, a.Filename, a.OriginalName, a.StoragePath, a.Size, a.MimeType,
	).Scan(&a.ID, &a.UploadedAt)
}

func (r *TaskRepository) GetAttachment(ctx context.Context, taskID, attachmentID int64) (*domain.Attachment, error) {
	var a domain.Attachment
	err := r.db.QueryRow(ctx,
		`SELECT id, task_id, filename, original_name, storage_path, size, mime_type, uploaded_at
		 FROM attachments WHERE id = $1 AND task_id = $2`,
		attachmentID, taskID,
	).Scan(&a.ID, &a.TaskID, &a.Filename, &a.OriginalName, &a.StoragePath, &a.Size, &a.MimeType, &a.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *TaskRepository) DeleteAttachment(ctx context.Context, taskID, attachmentID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM attachments WHERE id = $1 AND task_id = $2`, attachmentID, taskID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) ListAttachments(ctx context.Context, taskID int64) ([]domain.Attachment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, task_id, filename, original_name, storage_path, size, mime_type, uploaded_at
		 FROM attachments WHERE task_id = $1 ORDER BY uploaded_at`,
		taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Attachment
	for rows.Next() {
		var a domain.Attachment
		if err := rows.Scan(&a.ID, &a.TaskID, &a.Filename, &a.OriginalName, &a.StoragePath, &a.Size, &a.MimeType, &a.UploadedAt); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.DueDate,
		&t.CreatedAt, &t.LegacyUserID, &t.OwnerID, &t.SharedWith); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if t.SharedWith == nil {
		t.SharedWith = []int64{}
	}
	return &t, nil
}

func collectTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}
