package main

import (
	"context"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/config"
	"github.com/Behyna/sms-services/smscampaign/internal/database"
	"github.com/Behyna/sms-services/smscampaign/internal/metrics"
	"github.com/Behyna/sms-services/smscampaign/internal/publishers"
	"github.com/Behyna/sms-services/smscampaign/internal/repository"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"github.com/Behyna/sms-services/smscampaign/pkg/mq"
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
			NewMQConnection,
			NewMQPublisher,
			NewPhoneValidator,

			repository.NewSMSQueueRepository,
			repository.NewCustomSegmentRepository,
			repository.NewTransactionManager,

			service.NewSMSQueueService,

			publishers.NewDispatchPublisher,
		),
		fx.Invoke(runDispatchPublisher),
	).Run()
}

func runDispatchPublisher(cfg *config.Config, publisher publishers.DispatchPublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{cfg.Queue.SendQueueName}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", cfg.Queue.SendQueueName))

			go func() {
				ticker := time.NewTicker(cfg.Queue.DispatchInterval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if _, err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to dispatch queued sms", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("dispatch publisher started", zap.Duration("interval", cfg.Queue.DispatchInterval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping dispatch publisher")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return database.NewConnection(cfg, logger)
}

func NewPhoneValidator(cfg *config.Config) segmentation.Validator {
	return segmentation.NewValidator(cfg.Segmentation)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
