package main

import (
	"context"
	"log/slog"
	"os"

	"homeserve/config"
	"homeserve/internal/delivery"
	"homeserve/internal/delivery/api"
	"homeserve/internal/delivery/api/middleware"
	"homeserve/internal/delivery/api/router/handler"
	"homeserve/internal/infra/auth"
	"homeserve/internal/infra/cache"
	"homeserve/internal/infra/identity"
	logs "homeserve/internal/infra/log"
	"homeserve/internal/infra/mail"
	"homeserve/internal/infra/persistence/postgres"
	"homeserve/internal/infra/pubsub"
	"homeserve/internal/usecase/impl"

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
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
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
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
			postgres.NewUserRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewVerificationTokenRepository,
			postgres.NewCatalogRepository,
			postgres.NewServiceRepository,
			postgres.NewBookingRepository,
			postgres.NewReviewRepository,
			postgres.NewProviderProfileRepository,
			postgres.NewAddressRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewOTPGenerator,
			identity.NewIdentityProvider,
			mail.NewOTPMailer,
			cache.NewRatingCache,
			pubsub.NewEventPublisher,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewVerificationService,
			impl.NewAuthService,
			impl.NewBookingService,
			impl.NewReviewService,
			impl.NewCatalogService,
			impl.NewProfileService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewBookingHandler,
			handler.NewReviewHandler,
			handler.NewCatalogHandler,
			handler.NewProfileHandler,
			handler.NewAdminHandler,
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
