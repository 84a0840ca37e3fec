package mail

import (
	"log/slog"

	"homeserve/config"
	"homeserve/internal/domain/service"
)

// NewOTPMailer returns the SMTP mailer when enabled and the logging mailer otherwise.
func NewOTPMailer(cfg *config.Config, logger *slog.Logger) service.OTPMailer {
	if cfg.SMTP == nil || !cfg.SMTP.Enabled {
		logger.Info("SMTP disabled, OTP emails will only be logged")

		return NewLogMailer(logger)
	}

	return NewSMTPMailer(cfg.SMTP, logger)
}
