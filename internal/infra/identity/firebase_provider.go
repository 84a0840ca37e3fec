// Package identity adapts external identity services to the domain IdentityProvider.
package identity

import (
	"context"
	"log/slog"

	"homeserve/config"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/service"
	"homeserve/internal/errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// userCreator is the subset of the Firebase Auth client used here.
type userCreator interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
}

// passwordVerifier checks email and password pairs and returns the matching UID.
type passwordVerifier func(ctx context.Context, email, password string) (string, error)

type firebaseProvider struct {
	users  userCreator
	verify passwordVerifier
	logger *slog.Logger
}

// NewFirebaseProvider creates an IdentityProvider backed by Firebase Auth.
// Password checks for legacy accounts go through the Identity Toolkit API and need an API key.
func NewFirebaseProvider(ctx context.Context, cfg *config.FirebaseConfig, logger *slog.Logger) (service.IdentityProvider, error) {
	opts := []option.ClientOption{}
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	provider := &firebaseProvider{users: client, logger: logger}

	if cfg.APIKey != "" {
		toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(cfg.APIKey))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create identity toolkit client")
		}
		provider.verify = toolkitVerifier(toolkit)
	}

	return provider, nil
}

// CreateIdentity registers the user at Firebase Auth.
func (p *firebaseProvider) CreateIdentity(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName).
		EmailVerified(false)

	record, err := p.users.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", domainerrors.ErrUserAlreadyExists.WrapMessage("identity already exists")
		}
		p.logger.ErrorContext(ctx, "Failed to create Firebase identity", slog.String("email", email), slog.Any("error", err))

		return "", domainerrors.ErrIdentityProviderFailed.WrapMessage(err.Error())
	}

	return record.UID, nil
}

// VerifyPassword checks the credentials through the Identity Toolkit API.
func (p *firebaseProvider) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	if p.verify == nil {
		return "", domainerrors.ErrInvalidCredentials.WrapMessage("password verification is not configured")
	}

	uid, err := p.verify(ctx, email, password)
	if err != nil {
		p.logger.WarnContext(ctx, "Identity provider rejected credentials", slog.String("email", email), slog.Any("error", err))

		return "", domainerrors.ErrInvalidCredentials.WrapMessage("identity provider rejected credentials")
	}

	return uid, nil
}

func toolkitVerifier(toolkit *identitytoolkit.Service) passwordVerifier {
	return func(ctx context.Context, email, password string) (string, error) {
		resp, err := toolkit.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
			Email:             email,
			Password:          password,
			ReturnSecureToken: true,
		}).Context(ctx).Do()
		if err != nil {
			return "", errors.Wrap(err, "verifyPassword request failed")
		}

		return resp.LocalId, nil
	}
}
