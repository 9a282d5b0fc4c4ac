package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// visibleTasks filters to tasks the user owns or is shared on.
const visibleTasks = `(owner_id = $1 OR user_id = $1 OR $1 = ANY(shared_with))`

type AnalyticsRepository struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

type Overview struct {
	TotalTasks      int64 `json:"totalTasks"`
	CompletedTasks  int64 `json:"completedTasks"`
	PendingTasks    int64 `json:"pendingTasks"`
	InProgressTasks int64 `json:"inProgressTasks"`
	OverdueTasks    int64 `json:"overdueTasks"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

func (r *AnalyticsRepository) Overview(ctx context.Context, userID int64) (*Overview, error) {
	var o Overview
	err := r.db.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'in-progress'),
			COUNT(*) FILTER (WHERE status <> 'completed' AND due_date < now())
		 FROM tasks WHERE `+visibleTasks,
		userID,
	).Scan(&o.TotalTasks, &o.CompletedTasks, &o.PendingTasks, &o.InProgressTasks, &o.OverdueTasks)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CompletedTrend buckets completed tasks by creation date since start.
// Weekly trends bucket by day, monthly by month.
func (r *AnalyticsRepository) CompletedTrend(ctx context.Context, userID int64, start time.Time, byDay bool) ([]TrendPoint, error) {
	rows, err := r.db.Query(ctx,
		`SELECT to_char(created_at, `+bucketFormat(byDay)+`), COUNT(*)
		 FROM tasks
		 WHERE `+visibleTasks+` AND status = 'completed' AND created_at >= $2
		 GROUP BY 1 ORDER BY 1`,
		userID, start)
	if err != nil {
		return nil, err
	}
	return collectTrend(rows)
}

// OverdueTrend buckets still-open overdue tasks by due date within
// [start, now).
func (r *AnalyticsRepository) OverdueTrend(ctx context.Context, userID int64, start time.Time, byDay bool) ([]TrendPoint, error) {
	rows, err := r.db.Query(ctx,
		`SELECT to_char(due_date, `+bucketFormat(byDay)+`), COUNT(*)
		 FROM tasks
		 WHERE `+visibleTasks+` AND status <> 'completed'
		   AND due_date >= $2 AND due_date < now()
		 GROUP BY 1 ORDER BY 1`,
		userID, start)
	if err != nil {
		return nil, err
	}
	return collectTrend(rows)
}

func bucketFormat(byDay bool) string {
	if byDay {
		return `'YYYY-MM-DD'`
	}
	return `'YYYY-MM'`
}

func collectTrend(rows pgx.Rows) ([]TrendPoint, error) {
	defer rows.Close()

	var res []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Date, &p.Count); err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}
