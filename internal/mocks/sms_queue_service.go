package mocks

import (
	"context"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"github.com/Behyna/sms-services/smscampaign/pkg/mq"
	"github.com/stretchr/testify/mock"
)

type SMSQueueService struct {
	mock.Mock
}

func (s *SMSQueueService) Enqueue(ctx context.Context, cmd service.EnqueueSMSCommand) (*model.SMSQueue, error) {
	args := s.Called(ctx, cmd)
	entry, _ := args.Get(0).(*model.SMSQueue)
	return entry, args.Error(1)
}

func (s *SMSQueueService) EnqueueBatch(ctx context.Context, cmd service.EnqueueBatchCommand) (service.EnqueueBatchResponse, error) {
	args := s.Called(ctx, cmd)
	return args.Get(0).(service.EnqueueBatchResponse), args.Error(1)
}

func (s *SMSQueueService) EnqueueForCustomSegment(ctx context.Context, cmd service.EnqueueSegmentCommand) (service.EnqueueBatchResponse, error) {
	args := s.Called(ctx, cmd)
	return args.Get(0).(service.EnqueueBatchResponse), args.Error(1)
}

func (s *SMSQueueService) Get(ctx context.Context, id int64) (*model.SMSQueue, error) {
	args := s.Called(ctx, id)
	entry, _ := args.Get(0).(*model.SMSQueue)
	return entry, args.Error(1)
}

func (s *SMSQueueService) ClaimNextBatch(ctx context.Context, limit int) ([]model.SMSQueue, error) {
	args := s.Called(ctx, limit)
	entries, _ := args.Get(0).([]model.SMSQueue)
	return entries, args.Error(1)
}

func (s *SMSQueueService) Release(ctx context.Context, id int64, reason string) error {
	args := s.Called(ctx, id, reason)
	return args.Error(0)
}

func (s *SMSQueueService) ReportSuccess(ctx context.Context, id int64, messageID string) error {
	args := s.Called(ctx, id, messageID)
	return args.Error(0)
}

func (s *SMSQueueService) ReportFailure(ctx context.Context, id int64, cause string, permanent bool) (model.SMSQueueStatus, error) {
	args := s.Called(ctx, id, cause, permanent)
	return args.Get(0).(model.SMSQueueStatus), args.Error(1)
}

func (s *SMSQueueService) RequeueExpired(ctx context.Context) (int64, error) {
	args := s.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (s *SMSQueueService) CancelByBatch(ctx context.Context, batchID string, reason string) (int64, error) {
	args := s.Called(ctx, batchID, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (s *SMSQueueService) CancelByUser(ctx context.Context, userID int64, reason string) (int64, error) {
	args := s.Called(ctx, userID, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (s *SMSQueueService) CancelBySegment(ctx context.Context, segmentID int64, reason string) (int64, error) {
	args := s.Called(ctx, segmentID, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (s *SMSQueueService) Cleanup(ctx context.Context) (int64, error) {
	args := s.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (s *SMSQueueService) Stats(ctx context.Context) (map[model.SMSQueueStatus]int64, error) {
	args := s.Called(ctx)
	counts, _ := args.Get(0).(map[model.SMSQueueStatus]int64)
	return counts, args.Error(1)
}

type SendService struct {
	mock.Mock
}

func (s *SendService) Send(ctx context.Context, cmd service.SendSMSCommand) error {
	args := s.Called(ctx, cmd)
	return args.Error(0)
}

type SentCache struct {
	mock.Mock
}

func (s *SentCache) Get(ctx context.Context, queueID int64) (string, bool, error) {
	args := s.Called(ctx, queueID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (s *SentCache) Store(ctx context.Context, queueID int64, messageID string, sentAt time.Time) error {
	args := s.Called(ctx, queueID, messageID, sentAt)
	return args.Error(0)
}

type Publisher struct {
	mock.Mock
}

func (p *Publisher) Publish(ctx context.Context, exchange string, routingKey string, body []byte) error {
	args := p.Called(ctx, exchange, routingKey, body)
	return args.Error(0)
}

type Consumer struct {
	mock.Mock
}

func (c *Consumer) Consume(ctx context.Context, prefetch int, queue string, handler mq.Handle) error {
	args := c.Called(ctx, prefetch, queue, handler)
	return args.Error(0)
}
