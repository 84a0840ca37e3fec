package identity

import (
	"context"
	"log/slog"

	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/service"

	"github.com/google/uuid"
)

// LocalUIDPrefix marks identities issued without an external provider.
const LocalUIDPrefix = "local:"

type localProvider struct {
	logger *slog.Logger
}

// NewLocalProvider issues local UIDs. Every account it creates has a local
// password hash, so it never verifies passwords itself.
func NewLocalProvider(logger *slog.Logger) service.IdentityProvider {
	return &localProvider{logger: logger}
}

func (p *localProvider) CreateIdentity(_ context.Context, _, _, _ string) (string, error) {
	return LocalUIDPrefix + uuid.NewString(), nil
}

func (p *localProvider) VerifyPassword(ctx context.Context, email, _ string) (string, error) {
	p.logger.DebugContext(ctx, "Local identity provider cannot verify passwords", slog.String("email", email))

	return "", domainerrors.ErrInvalidCredentials.WrapMessage("no external identity provider configured")
}
