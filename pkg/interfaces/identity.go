package interfaces

import "context"

// Identity carries the profile an external identity provider reports for a
// signed-in user. ExternalID is the stable key accounts are matched on.
type Identity struct {
	ExternalID string
	Name       string
	Email      string
	AvatarURL  string
}

// IdentityProvider resolves the identity attached to the current request.
// Implementations wrap whatever auth callback/session mechanism the host
// application uses. A nil identity with a nil error means nobody is signed
// in; that is not an error condition.
type IdentityProvider interface {
	CurrentIdentity(ctx context.Context) (*Identity, error)
}
