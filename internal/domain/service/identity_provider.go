package service

import "context"

// IdentityProvider wraps the external authentication service that owns user identities.
type IdentityProvider interface {
	// CreateIdentity registers the credentials and returns the provider-issued UID.
	CreateIdentity(ctx context.Context, email, password, displayName string) (uid string, err error)

	// VerifyPassword checks credentials of accounts without a local password hash
	// and returns the UID they belong to.
	VerifyPassword(ctx context.Context, email, password string) (uid string, err error)
}
