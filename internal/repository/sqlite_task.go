package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/rebound/internal/db"
	"github.com/alexanderramin/rebound/internal/domain"
)

type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, student_id, subject_id, title, description, type, weight, due_date,
	status, estimated_min, priority_score, completed_at, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.StudentID,
		t.SubjectID,
		t.Title,
		t.Description,
		string(t.Type),
		t.Weight,
		formatTime(t.DueDate),
		string(t.Status),
		t.EffectiveEstimatedMin(),
		t.PriorityScore,
		nullableTime(t.CompletedAt),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (r *SQLiteTaskRepo) ListByStudent(ctx context.Context, studentID string, f TaskListFilter) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE student_id = ?`
	if !f.IncludeCompleted {
		query += ` AND status != 'Completed'`
	}
	query += ` ORDER BY due_date, created_at`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET subject_id = ?, title = ?, description = ?, type = ?, weight = ?,
		due_date = ?, status = ?, estimated_min = ?, priority_score = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.SubjectID,
		t.Title,
		t.Description,
		string(t.Type),
		t.Weight,
		formatTime(t.DueDate),
		string(t.Status),
		t.EffectiveEstimatedMin(),
		t.PriorityScore,
		nullableTime(t.CompletedAt),
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return mustAffect(res, "task")
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return mustAffect(res, "task")
}

// UpdatePriorityScores writes each score in turn. Unknown IDs are ignored.
func (r *SQLiteTaskRepo) UpdatePriorityScores(ctx context.Context, scores map[string]int, at time.Time) error {
	ts := formatTime(at)
	for id, score := range scores {
		if _, err := r.db.ExecContext(ctx,
			`UPDATE tasks SET priority_score = ?, updated_at = ? WHERE id = ?`, score, ts, id); err != nil {
			return fmt.Errorf("updating priority score for %s: %w", id, err)
		}
	}
	return nil
}

func (r *SQLiteTaskRepo) MarkOverdueMissed(ctx context.Context, cutoff, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status = 'Missed', updated_at = ? WHERE status = 'Pending' AND due_date < ?`,
		formatTime(at), formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("marking overdue tasks missed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("marking overdue tasks missed: %w", err)
	}
	return n, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var typ, status, dueDate, createdAt, updatedAt string
	var completedAt sql.NullString
	err := row.Scan(
		&t.ID,
		&t.StudentID,
		&t.SubjectID,
		&t.Title,
		&t.Description,
		&typ,
		&t.Weight,
		&dueDate,
		&status,
		&t.EstimatedMin,
		&t.PriorityScore,
		&completedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.Type = domain.TaskType(typ)
	t.Status = domain.TaskStatus(status)
	t.CompletedAt = parseNullableTime(completedAt)
	if t.DueDate, err = parseTime(dueDate); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
