package publishers

import (
	"context"
	"encoding/json"

	"github.com/Behyna/sms-services/smscampaign/internal/config"
	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"github.com/Behyna/sms-services/smscampaign/pkg/mq"
	"go.uber.org/zap"
)

type DispatchPublisher interface {
	Publish(ctx context.Context) (int, error)
}

type dispatchPublisher struct {
	service   service.SMSQueueService
	publisher mq.Publisher
	queue     string
	batchSize int
	logger    *zap.Logger
}

func NewDispatchPublisher(service service.SMSQueueService, publisher mq.Publisher, cfg *config.Config,
	logger *zap.Logger) DispatchPublisher {
	return &dispatchPublisher{
		service:   service,
		publisher: publisher,
		queue:     cfg.Queue.SendQueueName,
		batchSize: cfg.Queue.DispatchBatchSize,
		logger:    logger,
	}
}

// Publish claims the next due rows and publishes one send command per row. A row
// whose publish fails is released back to pending. It returns how many commands
// reached the broker.
func (d *dispatchPublisher) Publish(ctx context.Context) (int, error) {
	entries, err := d.service.ClaimNextBatch(ctx, d.batchSize)
	if err != nil && len(entries) == 0 {
		return 0, err
	}

	if len(entries) == 0 {
		return 0, nil
	}

	d.logger.Info("Publishing SMS", zap.Int("count", len(entries)))

	successCount := 0
	for _, entry := range entries {
		body, marshalErr := json.Marshal(sendCommand(entry))
		if marshalErr == nil {
			marshalErr = d.publisher.Publish(ctx, "", d.queue, body)
		}

		if marshalErr != nil {
			d.logger.Error("Failed to publish SMS",
				zap.Error(marshalErr),
				zap.Int64("queueID", entry.ID))

			if releaseErr := d.service.Release(ctx, entry.ID, marshalErr.Error()); releaseErr != nil {
				d.logger.Error("Failed to release queue entry",
					zap.Error(releaseErr),
					zap.Int64("queueID", entry.ID))
			}
			continue
		}

		successCount++
	}

	if successCount > 0 {
		d.logger.Info("Successfully published SMS to send",
			zap.Int("published", successCount),
			zap.Int("total", len(entries)))
	}

	return successCount, err
}

func sendCommand(entry model.SMSQueue) service.SendSMSCommand {
	cmd := service.SendSMSCommand{
		QueueID:     entry.ID,
		PhoneNumber: entry.PhoneNumber,
		Message:     entry.Message,
		Attempts:    entry.Attempts,
	}
	if entry.SenderName != nil {
		cmd.SenderName = *entry.SenderName
	}

	return cmd
}
