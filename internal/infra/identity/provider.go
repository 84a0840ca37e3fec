package identity

import (
	"context"
	"log/slog"

	"homeserve/config"
	"homeserve/internal/domain/service"
)

// NewIdentityProvider picks Firebase when a project is configured, the local provider otherwise.
func NewIdentityProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.IdentityProvider, error) {
	if cfg.Firebase == nil || cfg.Firebase.ProjectID == "" {
		logger.Info("Firebase not configured, using local identity provider")

		return NewLocalProvider(logger), nil
	}

	logger.Info("Using Firebase identity provider", slog.String("projectId", cfg.Firebase.ProjectID))

	return NewFirebaseProvider(ctx, cfg.Firebase, logger)
}
