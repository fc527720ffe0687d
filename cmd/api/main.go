package main

import (
	"context"

	"github.com/Behyna/sms-services/smscampaign/internal/api"
	v1 "github.com/Behyna/sms-services/smscampaign/internal/api/v1"
	"github.com/Behyna/sms-services/smscampaign/internal/api/v1/middleware"
	"github.com/Behyna/sms-services/smscampaign/internal/api/validator"
	"github.com/Behyna/sms-services/smscampaign/internal/config"
	"github.com/Behyna/sms-services/smscampaign/internal/database"
	"github.com/Behyna/sms-services/smscampaign/internal/metrics"
	"github.com/Behyna/sms-services/smscampaign/internal/repository"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewConnectionDB,
			metrics.NewMetrics,
			NewDatabaseMetrics,
			NewSystemMetrics,

			NewPhoneValidator,
			NewHandlerFactory,
			segmentation.NewRegexTester,

			NewPhoneNumberRepository,
			repository.NewTechnicalSegmentRepository,
			repository.NewCustomSegmentRepository,
			repository.NewSMSQueueRepository,
			repository.NewTransactionManager,

			service.NewPhoneSegmentationService,
			NewBatchSegmentationService,
			service.NewCustomSegmentMatcher,
			service.NewCustomSegmentService,
			service.NewSMSQueueService,

			NewXValidator,
			NewPinger,
			v1.NewHandler,
			NewFiber,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, logger *zap.Logger,
	dbMetrics *metrics.DatabaseMetricsCollector, systemMetrics *metrics.SystemCollector, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Metrics.Enabled {
				dbMetrics.Start(cfg.Metrics.CollectInterval)
				systemMetrics.Start(cfg.Metrics.CollectInterval)
			}

			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("api server stopped", zap.Error(err))
				}
			}()

			logger.Info("api server started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			dbMetrics.Stop()
			systemMetrics.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewConnection(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Schema.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		logger.Info("schema migrated")
	}

	return db, nil
}

func NewDatabaseMetrics(m *metrics.Metrics, logger *zap.Logger, db *gorm.DB) *metrics.DatabaseMetricsCollector {
	return metrics.NewDatabaseMetricsCollector(m, logger, db)
}

func NewSystemMetrics(m *metrics.Metrics, logger *zap.Logger, cfg *config.Config) *metrics.SystemCollector {
	return metrics.NewSystemCollector(m, logger, cfg.Metrics.ServiceVersion)
}

func NewPhoneValidator(cfg *config.Config) segmentation.Validator {
	return segmentation.NewValidator(cfg.Segmentation)
}

func NewHandlerFactory(cfg *config.Config) segmentation.HandlerFactory {
	return segmentation.NewHandlerFactory(cfg.Segmentation)
}

func NewPhoneNumberRepository(db *gorm.DB, phoneValidator segmentation.Validator) repository.PhoneNumberRepository {
	return repository.NewPhoneNumberRepository(db, phoneValidator)
}

func NewBatchSegmentationService(phoneValidator segmentation.Validator, segmenter service.PhoneSegmentationService,
	matcher service.CustomSegmentMatcher, phoneRepo repository.PhoneNumberRepository, txManager repository.TxManager,
	m *metrics.Metrics, logger *zap.Logger) service.BatchSegmentationService {
	return service.NewBatchSegmentationService(phoneValidator, segmenter, matcher, phoneRepo, txManager,
		service.SummaryFormatter{}, m, logger)
}

func NewXValidator(phoneValidator segmentation.Validator, m *metrics.Metrics) validator.IXValidator {
	return validator.NewXValidator(playground.New(), phoneValidator, m)
}

func NewPinger(dbMetrics *metrics.DatabaseMetricsCollector) v1.Pinger {
	return dbMetrics
}

func NewFiber(m *metrics.Metrics, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
	})
	app.Use(middleware.HTTPMetrics(m, logger))
	return app
}
