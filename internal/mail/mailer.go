// Package mail sends the monthly summary email. The variable set is fixed:
// recipient, the computed status line and the formatted totals.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/foresightmx/foresight/internal/report"
	"github.com/foresightmx/foresight/internal/summary"
)

// Sender delivers a monthly summary to one recipient.
type Sender interface {
	SendMonthlySummary(ctx context.Context, recipient string, s summary.Summary) error
}

// SMTPConfig carries the transactional mail credentials.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends summaries over plain SMTP.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates a sender for the given SMTP account.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// SendMonthlySummary composes and delivers the summary email.
func (s *SMTPSender) SendMonthlySummary(ctx context.Context, recipient string, sum summary.Summary) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(fmt.Sprintf("Tu resumen de %s: %s",
		report.MonthLabel(sum.Year, sum.Month), report.StatusLine(sum)))
	msg.SetBodyString(gomail.TypeTextPlain, report.TextSummary(sum))

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send summary email: %w", err)
	}
	return nil
}
