package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement in order. Statements are idempotent,
// so it is safe to run on every start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                  TEXT PRIMARY KEY,
		name                TEXT NOT NULL,
		email               TEXT NOT NULL UNIQUE,
		password_hash       BLOB NOT NULL,
		role                TEXT NOT NULL DEFAULT 'student'
		                    CHECK(role IN ('student','teacher','admin')),
		assigned_teacher_id TEXT REFERENCES users(id) ON DELETE SET NULL,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)`,

	`CREATE TABLE IF NOT EXISTS subjects (
		id            TEXT PRIMARY KEY,
		student_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name          TEXT NOT NULL,
		current_grade REAL NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_subjects_student ON subjects(student_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id             TEXT PRIMARY KEY,
		student_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subject_id     TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		title          TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		type           TEXT NOT NULL DEFAULT 'Assignment'
		               CHECK(type IN ('Assignment','Quiz','Exam','Project','Lab','Reading','Practice','Other')),
		weight         REAL NOT NULL DEFAULT 0 CHECK(weight >= 0 AND weight <= 100),
		due_date       TEXT NOT NULL,
		status         TEXT NOT NULL DEFAULT 'Pending'
		               CHECK(status IN ('Pending','Completed','Missed')),
		estimated_min  INTEGER NOT NULL DEFAULT 60,
		priority_score INTEGER NOT NULL DEFAULT 0,
		completed_at   TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_student_status ON tasks(student_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_subject ON tasks(subject_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(status, due_date)`,

	`CREATE TABLE IF NOT EXISTS daily_logs (
		id              TEXT PRIMARY KEY,
		student_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		log_date        TEXT NOT NULL,
		stress_level    INTEGER NOT NULL CHECK(stress_level BETWEEN 1 AND 10),
		available_hours REAL NOT NULL CHECK(available_hours >= 0 AND available_hours <= 24),
		notes           TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		UNIQUE(student_id, log_date)
	)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id         TEXT PRIMARY KEY,
		from_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		to_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subject    TEXT NOT NULL DEFAULT 'Check-in',
		body       TEXT NOT NULL,
		kind       TEXT NOT NULL DEFAULT 'message'
		           CHECK(kind IN ('message','check-in','intervention')),
		read       INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_messages_to ON messages(to_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_from ON messages(from_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS completions (
		id           TEXT PRIMARY KEY,
		student_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		task_id      TEXT,
		completed_at TEXT NOT NULL,
		title        TEXT NOT NULL,
		subject_name TEXT NOT NULL DEFAULT '',
		weight       REAL NOT NULL DEFAULT 0,
		type         TEXT NOT NULL DEFAULT 'Other'
	)`,

	`CREATE INDEX IF NOT EXISTS idx_completions_student ON completions(student_id, completed_at)`,
}
