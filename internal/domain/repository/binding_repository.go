// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/norrisng/FcomServer/internal/domain/entity"
)

// ErrBindingNotFound is a domain-specific error returned when no binding
// matches the given token or external ID.
var ErrBindingNotFound = errors.New("binding not found")

// ErrBindingExists is returned when a binding already exists for the
// external identity being registered.
var ErrBindingExists = errors.New("binding already exists for this identity")

// BindingRepository defines the standard operations for registration persistence.
// The application layer depends on this interface, not the concrete implementation.
//
// Lookups come in explicit by-token and by-external-ID variants; there is no
// single lookup that branches on the kind of key.
type BindingRepository interface {
	// Create persists a new, unverified binding. Returns ErrBindingExists
	// if the external identity already has one.
	Create(ctx context.Context, binding *entity.Binding) error

	// FindByToken retrieves a binding by its registration token.
	FindByToken(ctx context.Context, token string) (*entity.Binding, error)

	// FindByExternalID retrieves a binding by its Discord identity.
	FindByExternalID(ctx context.Context, externalID int64) (*entity.Binding, error)

	// UpdateConfirmation sets the callsign, marks the binding verified and
	// refreshes last_updated. Returns ErrBindingNotFound if the token is unknown.
	UpdateConfirmation(ctx context.Context, token, callsign string, lastUpdated time.Time) error

	// DeleteByToken removes a binding; reports whether a row existed.
	DeleteByToken(ctx context.Context, token string) (bool, error)

	// DeleteByExternalID removes a binding; reports whether a row existed.
	DeleteByExternalID(ctx context.Context, externalID int64) (bool, error)

	// DeleteExpired removes unverified bindings last updated before
	// unverifiedBefore and verified bindings last updated before
	// verifiedBefore. Returns the number of rows removed.
	DeleteExpired(ctx context.Context, unverifiedBefore, verifiedBefore time.Time) (int64, error)
}
