package mail

import (
	"context"
	"net/mail"
	"sync"
)

type Message struct {
	To      mail.Address
	Subject string
	Text    string
	HTML    string
}

// Mailer sends a single message. Implementations prefix subjects with the
// application name.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// MemoryMailer records messages instead of sending them.
type MemoryMailer struct {
	mu   sync.Mutex
	sent []Message
}

func (m *MemoryMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *MemoryMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}

func subjectPrefix(appName string) string {
	return "[" + appName + "] "
}
