// Package handler contains the HTTP API request handlers.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// TestHandler handles the connectivity check used by flight-sim clients.
type TestHandler struct{}

// NewTestHandler creates a new TestHandler instance
func NewTestHandler() *TestHandler {
	return &TestHandler{}
}

// Test confirms the API is reachable.
func (h *TestHandler) Test(c echo.Context) error {
	return c.String(http.StatusOK, "Success")
}
