// Package mail delivers one-time codes by email.
package mail

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"sync"

	"homeserve/config"
	"homeserve/internal/domain/service"
	"homeserve/internal/errors"

	"gopkg.in/gomail.v2"
)

const otpSubject = "Your verification code"

var otpTemplate = template.Must(template.New("otp").Parse(
	`<p>Your verification code is <strong>{{.Code}}</strong>.</p>` +
		`<p>It expires in {{.TTLMinutes}} minutes. If you did not request it, ignore this email.</p>`,
))

// dialAndSender is satisfied by *gomail.Dialer.
type dialAndSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpMailer struct {
	cfg    *config.SMTPConfig
	logger *slog.Logger

	once   sync.Once
	dialer dialAndSender
	newFn  func(cfg *config.SMTPConfig) dialAndSender
}

// NewSMTPMailer creates an OTPMailer that sends through the configured SMTP server.
// The dialer is built on first use and reused afterwards.
func NewSMTPMailer(cfg *config.SMTPConfig, logger *slog.Logger) service.OTPMailer {
	return &smtpMailer{
		cfg:    cfg,
		logger: logger,
		newFn: func(cfg *config.SMTPConfig) dialAndSender {
			return gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		},
	}
}

func (m *smtpMailer) SendOTPEmail(ctx context.Context, address, code string, ttlMinutes int) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "otp email cancelled")
	}

	m.once.Do(func() {
		m.dialer = m.newFn(m.cfg)
	})

	var body bytes.Buffer
	if err := otpTemplate.Execute(&body, struct {
		Code       string
		TTLMinutes int
	}{code, ttlMinutes}); err != nil {
		return errors.Wrap(err, "failed to render otp email")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", address)
	msg.SetHeader("Subject", otpSubject)
	msg.SetBody("text/html", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errors.Wrapf(err, "failed to send otp email to %s", address)
	}

	m.logger.InfoContext(ctx, "OTP email sent", slog.String("email", address))

	return nil
}
