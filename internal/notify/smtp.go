// Package notify delivers recovery codes to users.
package notify

import (
	"context"
	"fmt"
	"math"

	"gopkg.in/gomail.v2"

	"github.com/dtroode/expense-auth/internal/model"
)

// Sender sends composed messages. *gomail.Dialer implements it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

var _ model.Notifier = (*SMTP)(nil)

// SMTP delivers messages by mail.
type SMTP struct {
	sender   Sender
	from     string
	branding Branding
	clock    model.Clock
}

// NewSMTPDialer returns a gomail dialer for the given server.
func NewSMTPDialer(host string, port int, user, password string) *gomail.Dialer {
	return gomail.NewDialer(host, port, user, password)
}

func NewSMTP(sender Sender, from string, branding Branding, clock model.Clock) *SMTP {
	if clock == nil {
		clock = model.SystemClock
	}
	return &SMTP{
		sender:   sender,
		from:     from,
		branding: branding,
		clock:    clock,
	}
}

func (s *SMTP) SendRecoveryCode(ctx context.Context, msg model.RecoveryMessage) error {
	now := s.clock.Now()
	body, err := render(recoveryTmpl, recoveryView{
		AppName:   s.branding.AppName,
		Year:      s.branding.year(now),
		FirstName: msg.FirstName,
		Code:      msg.Code,
		Minutes:   int(math.Ceil(msg.ExpiresAt.Sub(now).Minutes())),
	})
	if err != nil {
		return err
	}

	return s.send(ctx, msg.Email, s.branding.AppName+": password reset", body)
}

func (s *SMTP) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
