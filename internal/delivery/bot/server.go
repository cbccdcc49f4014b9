// Package bot hosts the chat-platform-facing delivery surface: the
// connection supervisor, the delivery loop and the registration prune loop.
package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/norrisng/FcomServer/config"
	"github.com/norrisng/FcomServer/internal/delivery"
	"github.com/norrisng/FcomServer/internal/delivery/bot/handler"
	"github.com/norrisng/FcomServer/internal/domain/lifecycle"
	"github.com/norrisng/FcomServer/internal/domain/service"
	"github.com/norrisng/FcomServer/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type botServer struct {
	cfg            *config.Config
	logger         *slog.Logger
	session        service.ChatSession
	relayUC        usecase.RelayUsecase
	registrationUC usecase.RegistrationUsecase
	forwardHandler *handler.ForwardHandler
	commandHandler *handler.CommandHandler
}

// ServerParams holds dependencies for the bot server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc             fx.Lifecycle
	Cfg            *config.Config
	Logger         *slog.Logger
	Session        service.ChatSession
	RelayUC        usecase.RelayUsecase
	RegistrationUC usecase.RegistrationUsecase
	ForwardHandler *handler.ForwardHandler
	CommandHandler *handler.CommandHandler
}

// NewServer creates the bot delivery surface.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &botServer{
		cfg:            params.Cfg,
		logger:         params.Logger,
		session:        params.Session,
		relayUC:        params.RelayUC,
		registrationUC: params.RegistrationUC,
		forwardHandler: params.ForwardHandler,
		commandHandler: params.CommandHandler,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve supervises the chat connection for the process lifetime. Connection
// loss triggers a reconnect with linearly growing delay; credential
// rejection is fatal and propagates out so the process terminates.
func (s *botServer) Serve(ctx context.Context) error {
	s.session.OnDirectMessage(s.commandHandler.Handle)

	// Registrations keep expiring while the connection is down, so the
	// prune sweep runs outside the session loop.
	pruneCtx, cancelPrune := context.WithCancel(ctx)
	defer cancelPrune()
	go s.pruneLoop(pruneCtx)

	backoff := newReconnectBackoff(s.cfg.Relay.ReconnectIncrement, s.cfg.Relay.ReconnectMax)

	for {
		if err := s.waitFor(ctx, backoff.Next()); err != nil {
			return nil
		}

		if err := s.session.Open(ctx); err != nil {
			if errors.Is(err, service.ErrAuthFailed) {
				s.logger.Error("Chat credentials rejected, giving up", slog.Any("error", err))

				return err
			}

			s.logger.Warn("Chat connection failed, will retry", slog.Any("error", err))

			continue
		}

		backoff.Reset()
		s.logger.Info("Chat session established")

		if err := s.run(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}

			s.logger.Warn("Chat session lost, reconnecting", slog.Any("error", err))
		}
	}
}

// run drives the delivery ticker until the session drops or the context
// ends. Delivery only makes sense while a session is up, unlike pruning.
func (s *botServer) run(ctx context.Context) error {
	drainTicker := time.NewTicker(s.cfg.Relay.DrainInterval)
	defer drainTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-s.session.Disconnected():
			return err
		case <-drainTicker.C:
			s.deliverPending(ctx)
		}
	}
}

// pruneLoop sweeps expired registrations for the process lifetime,
// independent of the session state. Each tick's store transaction is its
// only synchronization with the delivery ticker.
func (s *botServer) pruneLoop(ctx context.Context) {
	pruneTicker := time.NewTicker(s.cfg.Relay.PruneInterval)
	defer pruneTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-pruneTicker.C:
			s.pruneRegistrations(ctx)
		}
	}
}

func (s *botServer) deliverPending(ctx context.Context) {
	units, err := s.relayUC.Drain(ctx)
	if err != nil {
		s.logger.Error("Queue drain failed", slog.Any("error", err))

		return
	}

	if len(units) == 0 {
		return
	}

	s.forwardHandler.Forward(ctx, units)
}

func (s *botServer) pruneRegistrations(ctx context.Context) {
	pruned, err := s.registrationUC.PruneExpired(ctx)
	if err != nil {
		s.logger.Error("Registration prune failed", slog.Any("error", err))

		return
	}

	if pruned > 0 {
		s.logger.Info("Pruned stale registrations", slog.Int64("count", pruned))
	}
}

func (s *botServer) waitFor(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *botServer) stop(ctx context.Context) error {
	_, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Closing chat session")

	return errors.WithStack(s.session.Close())
}
