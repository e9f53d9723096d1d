package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/rebound/internal/db"
	"github.com/alexanderramin/rebound/internal/domain"
)

type SQLiteMessageRepo struct {
	db db.DBTX
}

func NewSQLiteMessageRepo(conn db.DBTX) *SQLiteMessageRepo {
	return &SQLiteMessageRepo{db: conn}
}

const messageColumns = `id, from_id, to_id, subject, body, kind, read, created_at`

func (r *SQLiteMessageRepo) Create(ctx context.Context, m *domain.Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (`+messageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.FromID, m.ToID, m.Subject, m.Body, string(m.Kind), boolToInt(m.Read), formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

func (r *SQLiteMessageRepo) ListForRecipient(ctx context.Context, userID string) ([]*domain.Message, error) {
	return r.list(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE to_id = ? ORDER BY created_at DESC, id`, userID)
}

func (r *SQLiteMessageRepo) ListConversation(ctx context.Context, a, b string) ([]*domain.Message, error) {
	return r.list(ctx,
		`SELECT `+messageColumns+` FROM messages
		WHERE (from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)
		ORDER BY created_at DESC, id`, a, b, b, a)
}

// MarkRead only touches messages addressed to recipientID.
func (r *SQLiteMessageRepo) MarkRead(ctx context.Context, id, recipientID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET read = 1 WHERE id = ? AND to_id = ?`, id, recipientID)
	if err != nil {
		return fmt.Errorf("marking message read: %w", err)
	}
	return mustAffect(res, "message")
}

func (r *SQLiteMessageRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var msgs []*domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}
	return msgs, nil
}

func scanMessage(row rowScanner) (*domain.Message, error) {
	var m domain.Message
	var kind, createdAt string
	var read int
	err := row.Scan(&m.ID, &m.FromID, &m.ToID, &m.Subject, &m.Body, &kind, &read, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("message: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning message: %w", err)
	}
	m.Kind = domain.MessageKind(kind)
	m.Read = intToBool(read)
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &m, nil
}
