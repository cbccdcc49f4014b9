package handler

import (
	"log/slog"
	"net/http"

	"github.com/norrisng/FcomServer/internal/delivery/api/response"
	domainerrors "github.com/norrisng/FcomServer/internal/domain/errors"
	"github.com/norrisng/FcomServer/internal/domain/repository"
	"github.com/norrisng/FcomServer/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// RegistrationHandlerParams holds dependencies for RegistrationHandler, injected by Fx.
type RegistrationHandlerParams struct {
	fx.In

	RegistrationUC usecase.RegistrationUsecase
	Logger         *slog.Logger
}

// RegistrationHandler handles registration confirmation and removal.
type RegistrationHandler struct {
	registrationUC usecase.RegistrationUsecase
	logger         *slog.Logger
}

// NewRegistrationHandler is the constructor for RegistrationHandler
func NewRegistrationHandler(params RegistrationHandlerParams) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUC: params.RegistrationUC,
		logger:         params.Logger,
	}
}

// Confirm binds a callsign to the registration identified by the token,
// marking it verified.
func (h *RegistrationHandler) Confirm(c echo.Context) error {
	token := c.QueryParam("token")
	callsign := c.QueryParam("callsign")

	if token == "" {
		return response.BadRequest(c, "Missing token")
	}
	if callsign == "" {
		return response.BadRequest(c, "Missing callsign")
	}

	binding, err := h.registrationUC.Confirm(c.Request().Context(), token, callsign)
	if err != nil {
		if errors.Is(err, repository.ErrBindingNotFound) {
			return response.HandleAppError(c, domainerrors.ErrTokenNotRegistered)
		}

		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, response.RegistrationResponse{
		Token:       binding.Token,
		ExternalID:  binding.ExternalID,
		DisplayName: binding.DisplayName,
		Callsign:    binding.Callsign,
	})
}

// Deregister removes the registration identified by the token.
func (h *RegistrationHandler) Deregister(c echo.Context) error {
	token := c.Param("token")

	existed, err := h.registrationUC.RemoveByToken(c.Request().Context(), token)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if !existed {
		return response.HandleAppError(c, domainerrors.ErrRegistrationNotFound)
	}

	return response.OK(c)
}
