package mail

import (
	"context"
	"net/mail"

	"github.com/rs/zerolog"
)

// ConsoleMailer logs outgoing mail instead of delivering it.
type ConsoleMailer struct {
	from       mail.Address
	subjPrefix string
	logger     zerolog.Logger
}

func NewConsoleMailer(appName string, from mail.Address, logger zerolog.Logger) *ConsoleMailer {
	return &ConsoleMailer{from: from, subjPrefix: subjectPrefix(appName), logger: logger}
}

func (c *ConsoleMailer) Send(_ context.Context, msg Message) error {
	c.logger.Info().
		Str("from", c.from.String()).
		Str("to", msg.To.String()).
		Str("subject", c.subjPrefix+msg.Subject).
		Str("body", msg.Text).
		Msg("mail")
	return nil
}
