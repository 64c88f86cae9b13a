package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/oficinago/oficinago/internal/api"
	v1 "github.com/oficinago/oficinago/internal/api/v1"
	"github.com/oficinago/oficinago/internal/blob"
	"github.com/oficinago/oficinago/internal/config"
	"github.com/oficinago/oficinago/internal/delivery"
	"github.com/oficinago/oficinago/internal/dynamodb"
	"github.com/oficinago/oficinago/internal/httpclient"
	"github.com/oficinago/oficinago/internal/logger"
	"github.com/oficinago/oficinago/internal/media"
	"github.com/oficinago/oficinago/internal/raster"
	"github.com/oficinago/oficinago/internal/render"
	"github.com/oficinago/oficinago/internal/repository"
	"github.com/oficinago/oficinago/internal/service"
	"github.com/oficinago/oficinago/internal/types"
	"github.com/oficinago/oficinago/internal/validator"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			provideLogger,

			// Optional DBs
			dynamodb.NewClient,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Repositories
			repository.NewServiceRepository,

			// Blob storage
			blob.NewStore,

			// Receipt pipeline
			media.NewNormalizer,
			render.NewSurface,
			raster.NewCapturer,

			// Delivery
			delivery.NewShareGateway,
			delivery.NewOutbox,
			delivery.NewCascade,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewInformService,
		),
	)

	// API layer
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
	)

	opts = append(opts, fx.Invoke(startServer))

	app := fx.New(opts...)
	app.Run()
}

func provideLogger(cfg *config.Configuration) (*logger.Logger, error) {
	return logger.NewLoggerWithLevel(cfg.Logging.Level)
}

func provideHandlers(
	informService service.InformService,
	log *logger.Logger,
) api.Handlers {
	return api.Handlers{
		Service: v1.NewServiceHandler(informService, log),
	}
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	switch cfg.Deployment.Mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
	case types.ModeProd:
		gin.SetMode(gin.ReleaseMode)
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", cfg.Deployment.Mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
