package main

import (
	"context"

	"github.com/Behyna/sms-services/smscampaign/internal/config"
	"github.com/Behyna/sms-services/smscampaign/internal/database"
	"github.com/Behyna/sms-services/smscampaign/internal/jobs"
	"github.com/Behyna/sms-services/smscampaign/internal/metrics"
	"github.com/Behyna/sms-services/smscampaign/internal/repository"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			metrics.NewMetrics,
			NewConnectionDB,
			NewPhoneValidator,

			repository.NewSMSQueueRepository,
			repository.NewCustomSegmentRepository,
			repository.NewTransactionManager,

			service.NewSMSQueueService,
			jobs.NewMaintenance,
		),
		fx.Invoke(runMaintenance),
	).Run()
}

func runMaintenance(maintenance jobs.Maintenance, logger *zap.Logger, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer close(done)
				maintenance.Run(appCtx)
			}()

			logger.Info("queue maintenance started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping queue maintenance")
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return database.NewConnection(cfg, logger)
}

func NewPhoneValidator(cfg *config.Config) segmentation.Validator {
	return segmentation.NewValidator(cfg.Segmentation)
}
