package mail

import (
	"context"
	"log/slog"

	"homeserve/internal/domain/service"
)

// logMailer stands in for SMTP in development. The code itself is not logged.
type logMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) service.OTPMailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) SendOTPEmail(ctx context.Context, address, _ string, ttlMinutes int) error {
	m.logger.WarnContext(ctx, "SMTP disabled, OTP email not delivered",
		slog.String("email", address),
		slog.Int("ttlMinutes", ttlMinutes),
	)

	return nil
}
