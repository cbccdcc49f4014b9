// Package router contains routing setup for the HTTP API delivery.
package router

import (
	"github.com/norrisng/FcomServer/config"
	"github.com/norrisng/FcomServer/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	TestHandler         *handler.TestHandler
	RegistrationHandler *handler.RegistrationHandler
	MessagingHandler    *handler.MessagingHandler
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	testHandler         *handler.TestHandler
	registrationHandler *handler.RegistrationHandler
	messagingHandler    *handler.MessagingHandler
	config              *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		testHandler:         params.TestHandler,
		registrationHandler: params.RegistrationHandler,
		messagingHandler:    params.MessagingHandler,
		config:              params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	apiV1 := e.Group("/api/v1")
	{
		apiV1.GET("/test", r.testHandler.Test)
		apiV1.GET("/register", r.registrationHandler.Confirm)
		apiV1.POST("/messaging", r.messagingHandler.Submit)
		apiV1.DELETE("/deregister/:token", r.registrationHandler.Deregister)
	}
}
