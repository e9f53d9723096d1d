package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/rebound/internal/db"
	"github.com/alexanderramin/rebound/internal/domain"
)

type SQLiteCompletionRepo struct {
	db db.DBTX
}

func NewSQLiteCompletionRepo(conn db.DBTX) *SQLiteCompletionRepo {
	return &SQLiteCompletionRepo{db: conn}
}

const completionColumns = `id, student_id, task_id, completed_at, title, subject_name, weight, type`

func (r *SQLiteCompletionRepo) Create(ctx context.Context, c *domain.Completion) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO completions (`+completionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.StudentID, nullableString(c.TaskID), formatTime(c.CompletedAt),
		c.Title, c.SubjectName, c.Weight, string(c.Type),
	)
	if err != nil {
		return fmt.Errorf("inserting completion: %w", err)
	}
	return nil
}

func (r *SQLiteCompletionRepo) ListByStudent(ctx context.Context, studentID string, limit int) ([]*domain.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM completions WHERE student_id = ?
		ORDER BY completed_at DESC, id`
	args := []any{studentID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing completions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Completion
	for rows.Next() {
		var c domain.Completion
		var taskID sql.NullString
		var completedAt, typ string
		if err := rows.Scan(&c.ID, &c.StudentID, &taskID, &completedAt, &c.Title, &c.SubjectName, &c.Weight, &typ); err != nil {
			return nil, fmt.Errorf("scanning completion: %w", err)
		}
		c.TaskID = taskID.String
		c.Type = domain.TaskType(typ)
		if c.CompletedAt, err = parseTime(completedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating completions: %w", err)
	}
	return out, nil
}

func (r *SQLiteCompletionRepo) Count(ctx context.Context, studentID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM completions WHERE student_id = ?`, studentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting completions: %w", err)
	}
	return n, nil
}

func (r *SQLiteCompletionRepo) CountSince(ctx context.Context, studentID string, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM completions WHERE student_id = ? AND completed_at >= ?`,
		studentID, formatTime(since)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting completions: %w", err)
	}
	return n, nil
}
