package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Behyna/sms-services/smscampaign/internal/cache"
	"github.com/Behyna/sms-services/smscampaign/internal/config"
	"github.com/Behyna/sms-services/smscampaign/internal/consumers"
	"github.com/Behyna/sms-services/smscampaign/internal/database"
	"github.com/Behyna/sms-services/smscampaign/internal/metrics"
	"github.com/Behyna/sms-services/smscampaign/internal/repository"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"github.com/Behyna/sms-services/smscampaign/pkg/httpclient"
	"github.com/Behyna/sms-services/smscampaign/pkg/mq"
	"github.com/Behyna/sms-services/smscampaign/pkg/smsprovider"
	"github.com/redis/go-redis/v9"
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
			NewMQConsumer,
			cache.NewRedisClient,
			cache.NewSentCache,
			NewPhoneValidator,

			repository.NewSMSQueueRepository,
			repository.NewCustomSegmentRepository,
			repository.NewTransactionManager,
			NewSMSProvider,
			service.NewSMSQueueService,
			service.NewProviderService,
			service.NewSendService,

			consumers.NewSendConsumer,
		),
		fx.Invoke(runSendConsumer),
	).Run()
}

func runSendConsumer(cfg *config.Config, sendConsumer consumers.SendConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, rdb *redis.Client, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{cfg.Queue.SendQueueName}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", cfg.Queue.SendQueueName))

			if err := rdb.Ping(ctx).Err(); err != nil {
				logger.Warn("redis unavailable, sent cache disabled until it recovers", zap.Error(err))
			}

			go func() {
				if err := sendConsumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("send consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping send consumer")
			cancel()
			if err := rdb.Close(); err != nil {
				logger.Warn("failed to close redis client", zap.Error(err))
			}
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

func NewSMSProvider(cfg *config.Config) smsprovider.Provider {
	client := httpclient.NewHTTPClient(cfg.Provider.Timeout)
	return smsprovider.NewSMSProvider(cfg.Provider, client)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	host, _ := os.Hostname()
	return rabbitMQ.CreateConsumer(fmt.Sprintf("sms-send-%s-%d", host, os.Getpid()))
}
