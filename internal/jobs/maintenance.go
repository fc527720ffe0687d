package jobs

import (
	"context"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/config"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"go.uber.org/zap"
)

// Maintenance keeps the SMS queue healthy: rows stuck in processing are handed
// back to the dispatcher and old terminal rows are purged.
type Maintenance interface {
	RequeueExpired(ctx context.Context) error
	Cleanup(ctx context.Context) error
	Run(ctx context.Context)
}

type maintenance struct {
	service         service.SMSQueueService
	interval        time.Duration
	cleanupInterval time.Duration
	logger          *zap.Logger
}

func NewMaintenance(service service.SMSQueueService, cfg *config.Config, logger *zap.Logger) Maintenance {
	return &maintenance{
		service:         service,
		interval:        cfg.Queue.MaintenanceInterval,
		cleanupInterval: cfg.Queue.CleanupInterval,
		logger:          logger,
	}
}

func (m *maintenance) RequeueExpired(ctx context.Context) error {
	released, err := m.service.RequeueExpired(ctx)
	if err != nil {
		return err
	}

	if _, err := m.service.Stats(ctx); err != nil {
		m.logger.Warn("Failed to refresh queue depth", zap.Error(err))
	}

	if released > 0 {
		m.logger.Info("Stuck SMS released", zap.Int64("released", released))
	}
	return nil
}

func (m *maintenance) Cleanup(ctx context.Context) error {
	deleted, err := m.service.Cleanup(ctx)
	if err != nil {
		return err
	}

	m.logger.Info("Queue cleanup finished", zap.Int64("deleted", deleted))
	return nil
}

// Run blocks until ctx is done.
func (m *maintenance) Run(ctx context.Context) {
	requeue := time.NewTicker(positive(m.interval, time.Minute))
	defer requeue.Stop()

	cleanup := time.NewTicker(positive(m.cleanupInterval, time.Hour))
	defer cleanup.Stop()

	for {
		select {
		case <-requeue.C:
			if err := m.RequeueExpired(ctx); err != nil {
				m.logger.Error("failed to requeue stuck SMS", zap.Error(err))
			}
		case <-cleanup.C:
			if err := m.Cleanup(ctx); err != nil {
				m.logger.Error("failed to clean up SMS queue", zap.Error(err))
			}
		case <-ctx.Done():
			m.logger.Info("maintenance context cancelled")
			return
		}
	}
}

func positive(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
