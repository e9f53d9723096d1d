package domain

import "time"

// DefaultMessageSubject is used when a teacher sends a message without one.
const DefaultMessageSubject = "Check-in"

type Message struct {
	ID        string
	FromID    string
	ToID      string
	Subject   string
	Body      string
	Kind      MessageKind
	Read      bool
	CreatedAt time.Time
}
