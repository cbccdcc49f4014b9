package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/norrisng/FcomServer/internal/delivery/api/response"
	domainerrors "github.com/norrisng/FcomServer/internal/domain/errors"
	"github.com/norrisng/FcomServer/internal/domain/repository"
	"github.com/norrisng/FcomServer/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const missingFieldsDetail = "Missing parameter(s). Requests should include a token, and an array of message objects. " +
	"Each message object should include a timestamp, sender, receiver, and message (contents)."

// MessagingHandlerParams holds dependencies for MessagingHandler, injected by Fx.
type MessagingHandlerParams struct {
	fx.In

	RelayUC usecase.RelayUsecase
	Logger  *slog.Logger
}

// MessagingHandler admits inbound flight-sim messages into the relay queue.
type MessagingHandler struct {
	relayUC usecase.RelayUsecase
	logger  *slog.Logger
}

// NewMessagingHandler is the constructor for MessagingHandler
func NewMessagingHandler(params MessagingHandlerParams) *MessagingHandler {
	return &MessagingHandler{
		relayUC: params.RelayUC,
		logger:  params.Logger,
	}
}

// Fields are pointers so a missing key is distinguishable from a zero value;
// required therefore rejects absent keys only. The timestamp is kept as raw
// JSON so a malformed value is reported as a validation failure rather than
// a decode error.
type inboundMessage struct {
	Timestamp *json.RawMessage `json:"timestamp" validate:"required"`
	Sender    *string          `json:"sender" validate:"required"`
	Receiver  *string          `json:"receiver" validate:"required"`
	Message   *string          `json:"message" validate:"required"`
}

type messagingRequest struct {
	Token    *string          `json:"token" validate:"required"`
	Messages []inboundMessage `json:"messages" validate:"required,min=1,dive"`
}

// Submit handles one message submission. Only the first element of the
// messages array is processed.
func (h *MessagingHandler) Submit(c echo.Context) error {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return response.BadRequest(c, "Only JSON is supported at this time.")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "Unable to read request body")
	}

	var req messagingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return response.BadRequest(c, missingFieldsDetail)
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, missingFieldsDetail)
	}

	msg := req.Messages[0]

	h.logger.Info("Inbound message",
		slog.String("remote_ip", c.RealIP()),
		slog.String("token", *req.Token),
		slog.String("sender", *msg.Sender),
		slog.String("receiver", *msg.Receiver),
	)

	input := usecase.SubmitInput{
		Token:     *req.Token,
		Timestamp: strings.Trim(string(*msg.Timestamp), `"`),
		Sender:    *msg.Sender,
		Receiver:  *msg.Receiver,
		Message:   *msg.Message,
	}

	if err := h.relayUC.Submit(c.Request().Context(), input); err != nil {
		var validationErr *usecase.ValidationError
		if errors.As(err, &validationErr) {
			return response.BadRequest(c, validationErr.Reason)
		}

		if errors.Is(err, repository.ErrBindingNotFound) {
			h.logger.Info("Unknown token on submission",
				slog.String("remote_ip", c.RealIP()),
				slog.String("token", *req.Token),
			)

			return response.HandleAppError(c, domainerrors.ErrTokenNotRegistered)
		}

		// Anything else is an uncaught fault: surface it with the original
		// payload echoed back for diagnosis.
		h.logger.Error("Message submission failed",
			slog.Any("error", err),
			slog.String("token", *req.Token),
		)

		return response.Fault(c, "Unexpected error while processing the message", string(body))
	}

	return response.OK(c)
}
