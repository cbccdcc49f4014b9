package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/norrisng/FcomServer/config"
	"github.com/norrisng/FcomServer/internal/delivery"
	"github.com/norrisng/FcomServer/internal/delivery/api"
	"github.com/norrisng/FcomServer/internal/delivery/api/router/handler"
	"github.com/norrisng/FcomServer/internal/infra/chat"
	logs "github.com/norrisng/FcomServer/internal/infra/log"
	"github.com/norrisng/FcomServer/internal/infra/persistence/postgres"
	"github.com/norrisng/FcomServer/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		chat.NewChannelCache,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewBindingRepository,
			postgres.NewMessageRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewRegistrationService,
			impl.NewRelayService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewTestHandler,
			handler.NewRegistrationHandler,
			handler.NewMessagingHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
