// Package response defines the wire shapes returned by the HTTP API.
package response

import (
	"net/http"

	domainerrors "github.com/norrisng/FcomServer/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DetailResponse is the error body: an HTTP status echo plus a
// human-readable reason.
type DetailResponse struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// FaultResponse is the 500 body for uncaught faults during message
// submission. The original request body is echoed back for diagnosis.
type FaultResponse struct {
	Status      int    `json:"status"`
	Detail      string `json:"detail"`
	RequestBody string `json:"request_body"`
}

// RegistrationResponse is the body returned on successful confirmation.
type RegistrationResponse struct {
	Token       string `json:"token"`
	ExternalID  int64  `json:"external_id"`
	DisplayName string `json:"display_name"`
	Callsign    string `json:"callsign"`
}

// OK returns the plain-text acknowledgement body.
func OK(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Detail returns an error response with the given status and reason.
func Detail(c echo.Context, statusCode int, detail string) error {
	return c.JSON(statusCode, DetailResponse{
		Status: statusCode,
		Detail: detail,
	})
}

// BadRequest returns a 400 error with the given reason.
func BadRequest(c echo.Context, detail string) error {
	return Detail(c, http.StatusBadRequest, detail)
}

// Fault returns a 500 error echoing the offending request body.
func Fault(c echo.Context, detail, requestBody string) error {
	return c.JSON(http.StatusInternalServerError, FaultResponse{
		Status:      http.StatusInternalServerError,
		Detail:      detail,
		RequestBody: requestBody,
	})
}

// HandleAppError converts domain errors to their HTTP representation.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return Detail(c, appErr.HTTPCode(), appErr.Message())
	}

	return errors.WithStack(err)
}
