package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/rebound/internal/db"
	"github.com/alexanderramin/rebound/internal/domain"
)

type SQLiteSubjectRepo struct {
	db db.DBTX
}

func NewSQLiteSubjectRepo(conn db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: conn}
}

const subjectColumns = `id, student_id, name, current_grade, created_at, updated_at`

func (r *SQLiteSubjectRepo) Create(ctx context.Context, s *domain.Subject) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subjects (`+subjectColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.StudentID, s.Name, s.CurrentGrade, formatTime(s.CreatedAt), formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE id = ?`, id)
	return scanSubject(row)
}

func (r *SQLiteSubjectRepo) ListByStudent(ctx context.Context, studentID string) ([]*domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE student_id = ? ORDER BY name`, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*domain.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subjects: %w", err)
	}
	return subjects, nil
}

func (r *SQLiteSubjectRepo) Update(ctx context.Context, s *domain.Subject) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subjects SET name = ?, current_grade = ?, updated_at = ? WHERE id = ?`,
		s.Name, s.CurrentGrade, formatTime(s.UpdatedAt), s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating subject: %w", err)
	}
	return mustAffect(res, "subject")
}

func (r *SQLiteSubjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subject: %w", err)
	}
	return mustAffect(res, "subject")
}

func scanSubject(row rowScanner) (*domain.Subject, error) {
	var s domain.Subject
	var createdAt, updatedAt string
	err := row.Scan(&s.ID, &s.StudentID, &s.Name, &s.CurrentGrade, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subject: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
