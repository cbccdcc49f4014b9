package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/norrisng/FcomServer/internal/domain/repository"
	"github.com/norrisng/FcomServer/internal/domain/service"
	"github.com/norrisng/FcomServer/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CommandHandlerParams holds dependencies for CommandHandler, injected by Fx.
type CommandHandlerParams struct {
	fx.In

	RegistrationUC usecase.RegistrationUsecase
	Session        service.ChatSession
	Logger         *slog.Logger
}

// CommandHandler services user commands issued over direct message.
// Commands are case-insensitive; anything unrecognized is ignored.
type CommandHandler struct {
	registrationUC usecase.RegistrationUsecase
	session        service.ChatSession
	logger         *slog.Logger
}

// NewCommandHandler is the constructor for CommandHandler
func NewCommandHandler(params CommandHandlerParams) *CommandHandler {
	return &CommandHandler{
		registrationUC: params.RegistrationUC,
		session:        params.Session,
		logger:         params.Logger,
	}
}

// Handle dispatches one inbound direct message.
func (h *CommandHandler) Handle(ctx context.Context, dm service.DirectMessage) {
	var reply string

	switch strings.ToLower(strings.TrimSpace(dm.Content)) {
	case "register":
		reply = h.register(ctx, dm)
	case "status":
		reply = h.status(ctx, dm)
	case "remove":
		reply = h.remove(ctx, dm)
	default:
		return
	}

	if err := h.session.SendMessage(ctx, dm.ChannelID, reply); err != nil {
		h.logger.Warn("Failed to reply to command",
			slog.Int64("external_id", dm.ExternalID),
			slog.Any("error", err),
		)
	}
}

func (h *CommandHandler) register(ctx context.Context, dm service.DirectMessage) string {
	token, err := h.registrationUC.Register(ctx, dm.ExternalID, dm.DisplayName, dm.ChannelID)
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyRegistered) {
			return "You're already registered! To reset your registration, type `remove` before typing `register` again."
		}

		h.logger.Error("Registration failed",
			slog.Int64("external_id", dm.ExternalID),
			slog.Any("error", err),
		)

		return "Something went wrong, please try again later."
	}

	h.logger.Info("Generated token for user",
		slog.Int64("external_id", dm.ExternalID),
		slog.String("display_name", dm.DisplayName),
	)

	return fmt.Sprintf("Here's your verification code: ```%s```"+
		"Please enter it into the client within the next 5 minutes.\n", token)
}

func (h *CommandHandler) status(ctx context.Context, dm service.DirectMessage) string {
	binding, err := h.registrationUC.LookupByExternalID(ctx, dm.ExternalID)
	if err != nil {
		if errors.Is(err, repository.ErrBindingNotFound) {
			return "You're currently not registered."
		}

		h.logger.Error("Status lookup failed",
			slog.Int64("external_id", dm.ExternalID),
			slog.Any("error", err),
		)

		return "Something went wrong, please try again later."
	}

	if !binding.IsVerified {
		return fmt.Sprintf("You're registered, but you haven't logged in via the client yet.\n(token:`%s`)", binding.Token)
	}

	return fmt.Sprintf("You're registered! The callsign you're using is **%s**.\n(**token:** `%s`)", binding.Callsign, binding.Token)
}

func (h *CommandHandler) remove(ctx context.Context, dm service.DirectMessage) string {
	existed, err := h.registrationUC.RemoveByExternalID(ctx, dm.ExternalID)
	if err != nil {
		h.logger.Error("Deregistration failed",
			slog.Int64("external_id", dm.ExternalID),
			slog.Any("error", err),
		)

		return "Something went wrong, please try again later."
	}

	if !existed {
		return "Could not unregister. Are you sure you're registered?"
	}

	h.logger.Info("Deregistered user", slog.Int64("external_id", dm.ExternalID))

	return "Successfully deregistered! You'll no longer receive forwarded messages."
}
