package consumers

import (
	"context"
	"encoding/json"

	"github.com/Behyna/sms-services/smscampaign/internal/config"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"github.com/Behyna/sms-services/smscampaign/pkg/mq"
	"go.uber.org/zap"
)

type SendConsumer interface {
	Consume(ctx context.Context) error
}

type sendConsumer struct {
	service  service.SendService
	consumer mq.Consumer
	queue    string
	prefetch int
	logger   *zap.Logger
}

func NewSendConsumer(service service.SendService, consumer mq.Consumer, cfg *config.Config,
	logger *zap.Logger) SendConsumer {
	return &sendConsumer{
		service:  service,
		consumer: consumer,
		queue:    cfg.Queue.SendQueueName,
		prefetch: cfg.Queue.ConsumerPrefetch,
		logger:   logger,
	}
}

func (s *sendConsumer) Consume(ctx context.Context) error {
	return s.consumer.Consume(ctx, s.prefetch, s.queue, s.handleMessage)
}

func (s *sendConsumer) handleMessage(ctx context.Context, body []byte) error {
	var cmd service.SendSMSCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		s.logger.Warn("invalid send command", zap.Error(err), zap.ByteString("body", body))
		return err
	}

	if cmd.QueueID <= 0 {
		s.logger.Warn("send command without queue id", zap.ByteString("body", body))
		return nil
	}

	s.logger.Debug("received send command", zap.Int64("queueID", cmd.QueueID), zap.Int("attempts", cmd.Attempts))

	return s.service.Send(ctx, cmd)
}
