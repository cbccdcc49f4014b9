// Package usecase defines the application-layer interfaces.
package usecase

import (
	"context"
	"errors"

	"github.com/norrisng/FcomServer/internal/domain/entity"
)

// ErrAlreadyRegistered is returned by Register when the external identity
// already holds a binding. The existing binding is left untouched and no
// token is issued.
var ErrAlreadyRegistered = errors.New("identity is already registered")

// RegistrationUsecase owns the token issuance / confirmation / expiry state
// machine for identity bindings.
type RegistrationUsecase interface {
	// Register creates an unverified binding for the identity and returns
	// the freshly generated token. The channel handle, when non-empty, is
	// cached for later delivery. Returns ErrAlreadyRegistered if the
	// identity already has a binding.
	Register(ctx context.Context, externalID int64, displayName, channelID string) (string, error)

	// Confirm marks the binding verified, records the uppercased callsign,
	// refreshes its last-updated time and returns the updated binding.
	// Re-confirming overwrites the callsign. Returns
	// repository.ErrBindingNotFound for an unknown token.
	Confirm(ctx context.Context, token, callsign string) (*entity.Binding, error)

	// LookupByToken retrieves a binding by token.
	LookupByToken(ctx context.Context, token string) (*entity.Binding, error)

	// LookupByExternalID retrieves a binding by external identity.
	LookupByExternalID(ctx context.Context, externalID int64) (*entity.Binding, error)

	// RemoveByToken deletes the binding and evicts its cached channel
	// handle; reports whether a binding existed.
	RemoveByToken(ctx context.Context, token string) (bool, error)

	// RemoveByExternalID deletes the binding and evicts its cached channel
	// handle; reports whether a binding existed.
	RemoveByExternalID(ctx context.Context, externalID int64) (bool, error)

	// PruneExpired deletes unverified bindings older than the unconfirmed
	// TTL and verified bindings older than the confirmed TTL. Returns the
	// number of bindings removed.
	PruneExpired(ctx context.Context) (int64, error)
}
