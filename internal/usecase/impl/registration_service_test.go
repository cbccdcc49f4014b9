package impl

import (
	"context"
	"testing"
	"time"

	"github.com/norrisng/FcomServer/config"
	"github.com/norrisng/FcomServer/internal/domain/entity"
	"github.com/norrisng/FcomServer/internal/domain/repository"
	"github.com/norrisng/FcomServer/internal/infra/chat"
	mockRepo "github.com/norrisng/FcomServer/internal/mocks/repository"
	"github.com/norrisng/FcomServer/internal/usecase"
	"github.com/norrisng/FcomServer/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Relay.UnconfirmedTTL = 5 * time.Minute
	cfg.Relay.ConfirmedTTL = 24 * time.Hour

	return cfg
}

func TestRegister_IssuesToken(t *testing.T) {
	t.Parallel()

	bindingRepo := mockRepo.NewMockBindingRepository(t)
	cache := chat.NewChannelCache()
	svc := NewRegistrationService(newTestConfig(), bindingRepo, cache)

	var created *entity.Binding
	bindingRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *entity.Binding) bool {
		created = b

		return true
	})).Return(nil)

	token, err := svc.Register(context.Background(), 42, "pilot#0001", "chan-42")
	require.NoError(t, err)

	assert.Len(t, token, util.TokenLength)
	require.NotNil(t, created)
	assert.Equal(t, token, created.Token)
	assert.Equal(t, int64(42), created.ExternalID)
	assert.Equal(t, "pilot#0001", created.DisplayName)
	assert.False(t, created.IsVerified)
	assert.Empty(t, created.Callsign)

	channelID, ok := cache.Get(42)
	assert.True(t, ok)
	assert.Equal(t, "chan-42", channelID)
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	t.Parallel()

	bindingRepo := mockRepo.NewMockBindingRepository(t)
	cache := chat.NewChannelCache()
	svc := NewRegistrationService(newTestConfig(), bindingRepo, cache)

	bindingRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrBindingExists)

	token, err := svc.Register(context.Background(), 42, "pilot#0001", "chan-42")
	assert.ErrorIs(t, err, usecase.ErrAlreadyRegistered)
	assert.Empty(t, token)

	// A rejected registration must not touch the channel cache either.
	_, ok := cache.Get(42)
	assert.False(t, ok)
}

func TestConfirm_NormalizesCallsign(t *testing.T) {
	t.Parallel()

	bindingRepo := mockRepo.NewMockBindingRepository(t)
	svc := NewRegistrationService(newTestConfig(), bindingRepo, chat.NewChannelCache())

	confirmed := &entity.Binding{
		Token:      "tok",
		ExternalID: 42,
		IsVerified: true,
		Callsign:   "BAW123",
	}

	bindingRepo.On("UpdateConfirmation", mock.Anything, "tok", "BAW123", mock.Anything).Return(nil)
	bindingRepo.On("FindByToken", mock.Anything, "tok").Return(confirmed, nil)

	binding, err := svc.Confirm(context.Background(), "tok", "  baw123 ")
	require.NoError(t, err)
	assert.Equal(t, confirmed, binding)
}

func TestConfirm_UnknownToken(t *testing.T) {
	t.Parallel()

	bindingRepo := mockRepo.NewMockBindingRepository(t)
	svc := NewRegistrationService(newTestConfig(), bindingRepo, chat.NewChannelCache())

	bindingRepo.On("UpdateConfirmation", mock.Anything, "missing", "BAW123", mock.Anything).
		Return(repository.ErrBindingNotFound)

	binding, err := svc.Confirm(context.Background(), "missing", "BAW123")
	assert.ErrorIs(t, err, repository.ErrBindingNotFound)
	assert.Nil(t, binding)

	// An unknown token must not create a binding.
	bindingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRemoveByToken_EvictsBeforeDelete(t *testing.T) {
	t.Parallel()

	bindingRepo := mockRepo.NewMockBindingRepository(t)
	cache := chat.NewChannelCache()
	cache.Put(42, "chan-42")
	svc := NewRegistrationService(newTestConfig(), bindingRepo, cache)

	binding := &entity.Binding{Token: "tok", ExternalID: 42}
	bindingRepo.On("FindByToken", mock.Anything, "tok").Return(binding, nil)
	bindingRepo.On("DeleteByToken", mock.Anything, "tok").Return(true, nil)

	existed, err := svc.RemoveByToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, existed)

	_, ok := cache.Get(42)
	assert.False(t, ok)
}

func TestRemoveByToken_UnknownTokenIsNotAnError(t *testing.T) {
	t.Parallel()

	bindingRepo := mockRepo.NewMockBindingRepository(t)
	svc := NewRegistrationService(newTestConfig(), bindingRepo, chat.NewChannelCache())

	bindingRepo.On("FindByToken", mock.Anything, "missing").Return(nil, repository.ErrBindingNotFound)

	existed, err := svc.RemoveByToken(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestPruneExpired_CutoffsFollowTTLs(t *testing.T) {
	t.Parallel()

	bindingRepo := mockRepo.NewMockBindingRepository(t)
	svc := NewRegistrationService(newTestConfig(), bindingRepo, chat.NewChannelCache())

	before := time.Now()
	bindingRepo.On("DeleteExpired", mock.Anything,
		mock.MatchedBy(func(cutoff time.Time) bool {
			expected := before.Add(-5 * time.Minute)

			return !cutoff.Before(expected) && cutoff.Before(expected.Add(time.Minute))
		}),
		mock.MatchedBy(func(cutoff time.Time) bool {
			expected := before.Add(-24 * time.Hour)

			return !cutoff.Before(expected) && cutoff.Before(expected.Add(time.Minute))
		}),
	).Return(int64(3), nil)

	pruned, err := svc.PruneExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), pruned)
}
