// Package handler contains the bot-side message and command handlers.
package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/norrisng/FcomServer/internal/domain/entity"
	"github.com/norrisng/FcomServer/internal/domain/service"
	"github.com/norrisng/FcomServer/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ForwardHandlerParams holds dependencies for ForwardHandler, injected by Fx.
type ForwardHandlerParams struct {
	fx.In

	RegistrationUC usecase.RegistrationUsecase
	Resolver       service.ChannelResolver
	Session        service.ChatSession
	Logger         *slog.Logger
}

// ForwardHandler delivers aggregated relay units as direct messages.
type ForwardHandler struct {
	registrationUC usecase.RegistrationUsecase
	resolver       service.ChannelResolver
	session        service.ChatSession
	logger         *slog.Logger
}

// NewForwardHandler is the constructor for ForwardHandler
func NewForwardHandler(params ForwardHandlerParams) *ForwardHandler {
	return &ForwardHandler{
		registrationUC: params.RegistrationUC,
		resolver:       params.Resolver,
		session:        params.Session,
		logger:         params.Logger,
	}
}

// Forward delivers each unit in turn. Failures are isolated per unit: the
// unit is logged and dropped, and the rest of the batch still goes out.
// Delivery is at-most-once; nothing is re-queued.
func (h *ForwardHandler) Forward(ctx context.Context, units []*entity.AggregatedMessage) {
	for _, unit := range units {
		if err := h.forwardOne(ctx, unit); err != nil {
			h.logger.Warn("Dropping undeliverable message",
				slog.String("token", unit.Token),
				slog.String("sender", unit.Sender),
				slog.Any("error", err),
			)
		}
	}
}

func (h *ForwardHandler) forwardOne(ctx context.Context, unit *entity.AggregatedMessage) error {
	// The binding may have been removed after admission; there is no
	// identity to deliver to anymore, so the unit is dropped.
	binding, err := h.registrationUC.LookupByToken(ctx, unit.Token)
	if err != nil {
		return errors.Wrap(err, "no binding for queued token")
	}

	channelID, err := h.resolver.Resolve(ctx, binding.ExternalID)
	if err != nil {
		return errors.Wrap(err, "failed to resolve delivery channel")
	}

	if err := h.session.SendMessage(ctx, channelID, formatContent(unit)); err != nil {
		return errors.Wrap(err, "failed to send direct message")
	}

	return nil
}

// formatContent renders one delivery unit. A frequency receiver "@12450"
// is shown as "124.50 MHz"; anything else is treated as a plain callsign.
func formatContent(unit *entity.AggregatedMessage) string {
	if unit.IsFrequency() {
		raw := unit.Receiver

		return fmt.Sprintf("**%s (%s.%s MHz):**\n%s", unit.Sender, raw[1:4], raw[4:], unit.Message)
	}

	return fmt.Sprintf("**%s**:\n%s", unit.Sender, unit.Message)
}
