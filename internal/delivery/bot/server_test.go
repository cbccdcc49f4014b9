package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/norrisng/FcomServer/config"
	"github.com/norrisng/FcomServer/internal/delivery/bot/handler"
	"github.com/norrisng/FcomServer/internal/domain/entity"
	"github.com/norrisng/FcomServer/internal/domain/service"
	"github.com/norrisng/FcomServer/internal/errors"
	mockService "github.com/norrisng/FcomServer/internal/mocks/service"
	mockUC "github.com/norrisng/FcomServer/internal/mocks/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBotConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Relay.DrainInterval = 5 * time.Millisecond
	cfg.Relay.PruneInterval = time.Hour
	cfg.Relay.ReconnectIncrement = time.Millisecond
	cfg.Relay.ReconnectMax = 5 * time.Millisecond

	return cfg
}

func TestServe_AuthFailureIsFatal(t *testing.T) {
	t.Parallel()

	session := mockService.NewMockChatSession(t)
	session.On("OnDirectMessage", mock.Anything).Return()
	session.On("Open", mock.Anything).Return(service.ErrAuthFailed)

	srv := &botServer{
		cfg:     newBotConfig(),
		logger:  newTestLogger(),
		session: session,
	}

	err := srv.Serve(context.Background())
	assert.ErrorIs(t, err, service.ErrAuthFailed)

	// No reconnect attempt follows a credential rejection.
	session.AssertNumberOfCalls(t, "Open", 1)
}

func TestServe_PruneRunsWhileDisconnected(t *testing.T) {
	t.Parallel()

	pruned := make(chan struct{}, 1)

	session := mockService.NewMockChatSession(t)
	session.On("OnDirectMessage", mock.Anything).Return()
	session.On("Open", mock.Anything).Return(errors.New("gateway unreachable"))

	registrationUC := mockUC.NewMockRegistrationUsecase(t)
	registrationUC.On("PruneExpired", mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case pruned <- struct{}{}:
			default:
			}
		}).
		Return(int64(0), nil)

	// A long reconnect wait keeps the session down for the whole test.
	cfg := newBotConfig()
	cfg.Relay.PruneInterval = 5 * time.Millisecond
	cfg.Relay.ReconnectIncrement = time.Hour
	cfg.Relay.ReconnectMax = time.Hour

	srv := &botServer{
		cfg:            cfg,
		logger:         newTestLogger(),
		session:        session,
		registrationUC: registrationUC,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx)
	}()

	select {
	case <-pruned:
	case <-time.After(time.Second):
		t.Fatal("prune never fired while the connection was down")
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not stop on context cancellation")
	}
}

func TestServe_DrainTickDelivers(t *testing.T) {
	t.Parallel()

	disconnected := make(chan error)
	delivered := make(chan struct{}, 1)

	session := mockService.NewMockChatSession(t)
	session.On("OnDirectMessage", mock.Anything).Return()
	session.On("Open", mock.Anything).Return(nil)
	session.On("Disconnected").Return((<-chan error)(disconnected))
	session.On("SendMessage", mock.Anything, "chan-42", "**N123AB (124.50 MHz):**\nhi").
		Run(func(mock.Arguments) {
			select {
			case delivered <- struct{}{}:
			default:
			}
		}).
		Return(nil)

	registrationUC := mockUC.NewMockRegistrationUsecase(t)
	registrationUC.On("LookupByToken", mock.Anything, "T1").
		Return(&entity.Binding{Token: "T1", ExternalID: 42}, nil)

	resolver := mockService.NewMockChannelResolver(t)
	resolver.On("Resolve", mock.Anything, int64(42)).Return("chan-42", nil)

	relayUC := mockUC.NewMockRelayUsecase(t)
	relayUC.On("Drain", mock.Anything).Return([]*entity.AggregatedMessage{
		{Token: "T1", Sender: "N123AB", Receiver: "@12450", Message: "hi"},
	}, nil)

	forwardHandler := handler.NewForwardHandler(handler.ForwardHandlerParams{
		RegistrationUC: registrationUC,
		Resolver:       resolver,
		Session:        session,
		Logger:         newTestLogger(),
	})

	srv := &botServer{
		cfg:            newBotConfig(),
		logger:         newTestLogger(),
		session:        session,
		relayUC:        relayUC,
		registrationUC: registrationUC,
		forwardHandler: forwardHandler,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx)
	}()

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("delivery tick never fired")
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not stop on context cancellation")
	}
}
