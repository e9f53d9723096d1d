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

type SQLiteDailyLogRepo struct {
	db db.DBTX
}

func NewSQLiteDailyLogRepo(conn db.DBTX) *SQLiteDailyLogRepo {
	return &SQLiteDailyLogRepo{db: conn}
}

const dailyLogColumns = `id, student_id, log_date, stress_level, available_hours, notes, created_at, updated_at`

// Create inserts a log keyed by the calendar day of l.Date. A second log for
// the same student and day fails with ErrDuplicate.
func (r *SQLiteDailyLogRepo) Create(ctx context.Context, l *domain.DailyLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_logs (`+dailyLogColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.StudentID, formatDate(l.Date), l.StressLevel, l.AvailableHours, l.Notes,
		formatTime(l.CreatedAt), formatTime(l.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("daily log for %s: %w", formatDate(l.Date), ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("inserting daily log: %w", err)
	}
	return nil
}

func (r *SQLiteDailyLogRepo) Update(ctx context.Context, l *domain.DailyLog) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE daily_logs SET stress_level = ?, available_hours = ?, notes = ?, updated_at = ? WHERE id = ?`,
		l.StressLevel, l.AvailableHours, l.Notes, formatTime(l.UpdatedAt), l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating daily log: %w", err)
	}
	return mustAffect(res, "daily log")
}

func (r *SQLiteDailyLogRepo) GetByStudentAndDate(ctx context.Context, studentID string, date time.Time) (*domain.DailyLog, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+dailyLogColumns+` FROM daily_logs WHERE student_id = ? AND log_date = ?`,
		studentID, formatDate(date))
	return scanDailyLog(row)
}

func (r *SQLiteDailyLogRepo) ListRecentByStudent(ctx context.Context, studentID string, limit int) ([]*domain.DailyLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+dailyLogColumns+` FROM daily_logs WHERE student_id = ? ORDER BY log_date DESC LIMIT ?`,
		studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing daily logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily logs: %w", err)
	}

	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}

// scanDailyLog returns Date as midnight UTC of the stored calendar day.
func scanDailyLog(row rowScanner) (*domain.DailyLog, error) {
	var l domain.DailyLog
	var logDate, createdAt, updatedAt string
	err := row.Scan(&l.ID, &l.StudentID, &logDate, &l.StressLevel, &l.AvailableHours, &l.Notes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("daily log: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning daily log: %w", err)
	}
	if l.Date, err = time.Parse(dateLayout, logDate); err != nil {
		return nil, fmt.Errorf("parsing log date %q: %w", logDate, err)
	}
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
