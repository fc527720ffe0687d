package service

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/cache"
	"github.com/Behyna/sms-services/smscampaign/internal/metrics"
	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/pkg/mq"
	"github.com/Behyna/sms-services/smscampaign/pkg/smsprovider"
	"go.uber.org/zap"
)

type SendService interface {
	Send(ctx context.Context, cmd SendSMSCommand) error
}

type send struct {
	queue    SMSQueueService
	provider ProviderService
	sent     cache.SentCache
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewSendService(queue SMSQueueService, provider ProviderService, sent cache.SentCache, metrics *metrics.Metrics,
	logger *zap.Logger) SendService {
	return &send{queue: queue, provider: provider, sent: sent, metrics: metrics, logger: logger}
}

// Send delivers one claimed queue row. A nil return acks the command; database
// failures come back as mq.Temporary so the command is redelivered. Provider
// retries beyond the in-call ones are scheduled on the queue row, not on the broker.
func (s *send) Send(ctx context.Context, cmd SendSMSCommand) error {
	entry, err := s.queue.Get(ctx, cmd.QueueID)
	if err != nil {
		if errors.Is(err, ErrQueueEntryNotFound) {
			s.logger.Warn("Queue entry vanished before send", zap.Int64("queueID", cmd.QueueID))
			return nil
		}
		return mq.Temporary(err)
	}

	if entry.Status != model.SMSQueueStatusProcessing {
		s.logger.Info("Queue entry not claimed, skipping",
			zap.Int64("queueID", cmd.QueueID),
			zap.String("status", string(entry.Status)))
		return nil
	}

	messageID, found, err := s.sent.Get(ctx, entry.ID)
	if err != nil {
		s.logger.Warn("Sent cache lookup failed", zap.Int64("queueID", entry.ID), zap.Error(err))
	}
	if found {
		s.logger.Info("SMS already delivered, recording outcome only",
			zap.Int64("queueID", entry.ID),
			zap.String("providerMessageID", messageID))
		return s.reportSuccess(ctx, entry.ID, messageID)
	}

	from := cmd.SenderName
	if from == "" && entry.SenderName != nil {
		from = *entry.SenderName
	}

	start := time.Now()
	response, sendErr := s.provider.SendWithRetry(ctx, from, entry.PhoneNumber, entry.Message)
	if sendErr == nil {
		s.metrics.RecordSMSSend("sent", time.Since(start))

		if err := s.sent.Store(ctx, entry.ID, response.MessageID, time.Now()); err != nil {
			s.logger.Warn("Failed to cache sent SMS", zap.Int64("queueID", entry.ID), zap.Error(err))
		}

		s.logger.Info("SMS sent",
			zap.Int64("queueID", entry.ID),
			zap.String("providerMessageID", response.MessageID),
			zap.String("provider", response.Provider))

		return s.reportSuccess(ctx, entry.ID, response.MessageID)
	}

	if errors.Is(sendErr, context.Canceled) {
		return mq.Temporary(sendErr)
	}

	permanent := smsprovider.IsPermanent(sendErr)
	s.metrics.RecordSMSSend("failed", time.Since(start))

	status, err := s.queue.ReportFailure(ctx, entry.ID, sendErr.Error(), permanent)
	if err != nil {
		if errors.Is(err, ErrDatabase) {
			return mq.Temporary(err)
		}

		s.logger.Warn("Failure not recorded", zap.Int64("queueID", entry.ID), zap.Error(err))
		return nil
	}

	s.logger.Info("SMS send failed",
		zap.Int64("queueID", entry.ID),
		zap.String("status", string(status)),
		zap.Bool("permanent", permanent),
		zap.Error(sendErr))

	return nil
}

func (s *send) reportSuccess(ctx context.Context, queueID int64, messageID string) error {
	err := s.queue.ReportSuccess(ctx, queueID, messageID)
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrDatabase) {
		return mq.Temporary(err)
	}

	s.logger.Warn("Success not recorded", zap.Int64("queueID", queueID), zap.Error(err))
	return nil
}
