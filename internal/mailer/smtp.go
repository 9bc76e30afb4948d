// Package mailer delivers transactional email over SMTP. It is an injected
// collaborator with an explicit lifetime, not process-global state; callers
// treat sends as fire-and-forget for their own consistency.
package mailer

import (
	"context"
	"fmt"
	"io"
	"log"

	"gopkg.in/gomail.v2"
)

type SMTP struct {
	dialer *gomail.Dialer
	from   string
	logger *log.Logger
}

func NewSMTP(host string, port int, username, password, from string, logger *log.Logger) *SMTP {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &SMTP{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: logger,
	}
}

// Send delivers one HTML message. The dialer has no context support, so the
// context is only checked before dialing.
func (m *SMTP) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Printf("mailer: send to=%s subject=%q error=%v", to, subject, err)
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	m.logger.Printf("mailer: sent to=%s subject=%q", to, subject)
	return nil
}
