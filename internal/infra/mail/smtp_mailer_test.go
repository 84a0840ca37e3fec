package mail

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"homeserve/config"
	"homeserve/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)

	return d.err
}

func newTestMailer(d *recordingDialer) (*smtpMailer, *int) {
	builds := 0
	mailer := NewSMTPMailer(&config.SMTPConfig{Enabled: true, Host: "smtp.test", Port: 587, From: "no-reply@test"},
		slog.New(slog.NewTextHandler(io.Discard, nil))).(*smtpMailer)
	mailer.newFn = func(*config.SMTPConfig) dialAndSender {
		builds++

		return d
	}

	return mailer, &builds
}

func TestSMTPMailer_SendOTPEmail(t *testing.T) {
	dialer := &recordingDialer{}
	mailer, builds := newTestMailer(dialer)

	require.NoError(t, mailer.SendOTPEmail(context.Background(), "jane@example.com", "482913", 10))
	require.NoError(t, mailer.SendOTPEmail(context.Background(), "john@example.com", "000123", 10))

	assert.Equal(t, 1, *builds, "dialer must be built once and reused")
	require.Len(t, dialer.sent, 2)
	assert.Equal(t, []string{"jane@example.com"}, dialer.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"no-reply@test"}, dialer.sent[0].GetHeader("From"))

	var body bytes.Buffer
	_, err := dialer.sent[0].WriteTo(&body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "482913")
}

func TestSMTPMailer_SendFailure(t *testing.T) {
	dialer := &recordingDialer{err: errors.New("connection refused")}
	mailer, _ := newTestMailer(dialer)

	err := mailer.SendOTPEmail(context.Background(), "jane@example.com", "482913", 10)
	assert.ErrorContains(t, err, "connection refused")
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	dialer := &recordingDialer{}
	mailer, builds := newTestMailer(dialer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, mailer.SendOTPEmail(ctx, "jane@example.com", "482913", 10))
	assert.Zero(t, *builds)
}

func TestNewOTPMailer_DisabledFallsBackToLog(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mailer := NewOTPMailer(&config.Config{}, logger)
	_, ok := mailer.(*logMailer)
	assert.True(t, ok)
	assert.NoError(t, mailer.SendOTPEmail(context.Background(), "jane@example.com", "482913", 10))
}
