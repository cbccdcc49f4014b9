// Package impl contains the concrete use case services.
package impl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/norrisng/FcomServer/config"
	"github.com/norrisng/FcomServer/internal/domain/entity"
	"github.com/norrisng/FcomServer/internal/domain/repository"
	"github.com/norrisng/FcomServer/internal/domain/service"
	"github.com/norrisng/FcomServer/internal/usecase"
	"github.com/norrisng/FcomServer/internal/util"

	"github.com/pkg/errors"
)

type registrationService struct {
	bindingRepo    repository.BindingRepository
	channelCache   service.ChannelCache
	unconfirmedTTL time.Duration
	confirmedTTL   time.Duration
}

// NewRegistrationService creates the registration manager.
func NewRegistrationService(
	cfg *config.Config,
	bindingRepo repository.BindingRepository,
	channelCache service.ChannelCache,
) usecase.RegistrationUsecase {
	return &registrationService{
		bindingRepo:    bindingRepo,
		channelCache:   channelCache,
		unconfirmedTTL: cfg.Relay.UnconfirmedTTL,
		confirmedTTL:   cfg.Relay.ConfirmedTTL,
	}
}

// Register creates an unverified binding and issues its token.
func (s *registrationService) Register(ctx context.Context, externalID int64, displayName, channelID string) (string, error) {
	token, err := util.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	binding := &entity.Binding{
		Token:       token,
		ExternalID:  externalID,
		DisplayName: displayName,
		IsVerified:  false,
		LastUpdated: time.Now(),
	}

	if err := s.bindingRepo.Create(ctx, binding); err != nil {
		if errors.Is(err, repository.ErrBindingExists) {
			// The existing binding stays untouched; no new token is issued.
			return "", usecase.ErrAlreadyRegistered
		}

		return "", fmt.Errorf("failed to create binding: %w", err)
	}

	if channelID != "" {
		s.channelCache.Put(externalID, channelID)
	}

	return token, nil
}

// Confirm verifies the binding and records the callsign.
func (s *registrationService) Confirm(ctx context.Context, token, callsign string) (*entity.Binding, error) {
	callsign = strings.ToUpper(strings.TrimSpace(callsign))

	if err := s.bindingRepo.UpdateConfirmation(ctx, token, callsign, time.Now()); err != nil {
		if errors.Is(err, repository.ErrBindingNotFound) {
			return nil, repository.ErrBindingNotFound
		}

		return nil, fmt.Errorf("failed to confirm binding: %w", err)
	}

	binding, err := s.bindingRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to reload confirmed binding: %w", err)
	}

	return binding, nil
}

// LookupByToken retrieves a binding by token.
func (s *registrationService) LookupByToken(ctx context.Context, token string) (*entity.Binding, error) {
	binding, err := s.bindingRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrBindingNotFound) {
			return nil, repository.ErrBindingNotFound
		}

		return nil, fmt.Errorf("failed to look up binding by token: %w", err)
	}

	return binding, nil
}

// LookupByExternalID retrieves a binding by external identity.
func (s *registrationService) LookupByExternalID(ctx context.Context, externalID int64) (*entity.Binding, error) {
	binding, err := s.bindingRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrBindingNotFound) {
			return nil, repository.ErrBindingNotFound
		}

		return nil, fmt.Errorf("failed to look up binding by external ID: %w", err)
	}

	return binding, nil
}

// RemoveByToken deletes the binding and evicts its cached channel handle.
func (s *registrationService) RemoveByToken(ctx context.Context, token string) (bool, error) {
	binding, err := s.bindingRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrBindingNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("failed to look up binding for removal: %w", err)
	}

	// Evict before deleting: a concurrent delivery lookup either sees the
	// handle and uses a stale channel harmlessly, or misses and re-resolves.
	s.channelCache.Evict(binding.ExternalID)

	existed, err := s.bindingRepo.DeleteByToken(ctx, token)
	if err != nil {
		return false, fmt.Errorf("failed to delete binding by token: %w", err)
	}

	return existed, nil
}

// RemoveByExternalID deletes the binding and evicts its cached channel handle.
func (s *registrationService) RemoveByExternalID(ctx context.Context, externalID int64) (bool, error) {
	s.channelCache.Evict(externalID)

	existed, err := s.bindingRepo.DeleteByExternalID(ctx, externalID)
	if err != nil {
		return false, fmt.Errorf("failed to delete binding by external ID: %w", err)
	}

	return existed, nil
}

// PruneExpired sweeps stale bindings by verification state.
func (s *registrationService) PruneExpired(ctx context.Context) (int64, error) {
	now := time.Now()

	pruned, err := s.bindingRepo.DeleteExpired(ctx, now.Add(-s.unconfirmedTTL), now.Add(-s.confirmedTTL))
	if err != nil {
		return 0, fmt.Errorf("failed to prune expired bindings: %w", err)
	}

	return pruned, nil
}
