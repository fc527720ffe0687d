package mocks

import (
	"context"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/stretchr/testify/mock"
)

type SMSQueueRepository struct {
	mock.Mock
}

func (s *SMSQueueRepository) Create(ctx context.Context, entry *model.SMSQueue) error {
	args := s.Called(ctx, entry)
	return args.Error(0)
}

func (s *SMSQueueRepository) Update(ctx context.Context, entry *model.SMSQueue) error {
	args := s.Called(ctx, entry)
	return args.Error(0)
}

func (s *SMSQueueRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := s.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (s *SMSQueueRepository) GetByID(ctx context.Context, id int64) (*model.SMSQueue, error) {
	args := s.Called(ctx, id)
	entry, _ := args.Get(0).(*model.SMSQueue)
	return entry, args.Error(1)
}

func (s *SMSQueueRepository) FindByBatchID(ctx context.Context, batchID string) ([]model.SMSQueue, error) {
	args := s.Called(ctx, batchID)
	entries, _ := args.Get(0).([]model.SMSQueue)
	return entries, args.Error(1)
}

func (s *SMSQueueRepository) CountByStatus(ctx context.Context) (map[model.SMSQueueStatus]int64, error) {
	args := s.Called(ctx)
	counts, _ := args.Get(0).(map[model.SMSQueueStatus]int64)
	return counts, args.Error(1)
}

func (s *SMSQueueRepository) FindNextBatch(ctx context.Context, limit int, statuses ...model.SMSQueueStatus) ([]model.SMSQueue, error) {
	args := s.Called(ctx, limit, statuses)
	entries, _ := args.Get(0).([]model.SMSQueue)
	return entries, args.Error(1)
}

func (s *SMSQueueRepository) Claim(ctx context.Context, id int64) (bool, error) {
	args := s.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (s *SMSQueueRepository) ClaimNextBatch(ctx context.Context, limit int) ([]model.SMSQueue, error) {
	args := s.Called(ctx, limit)
	entries, _ := args.Get(0).([]model.SMSQueue)
	return entries, args.Error(1)
}

func (s *SMSQueueRepository) FindExpiredProcessing(ctx context.Context, threshold time.Time) ([]model.SMSQueue, error) {
	args := s.Called(ctx, threshold)
	entries, _ := args.Get(0).([]model.SMSQueue)
	return entries, args.Error(1)
}

func (s *SMSQueueRepository) ReleaseExpired(ctx context.Context, threshold time.Time) (int64, error) {
	args := s.Called(ctx, threshold)
	return args.Get(0).(int64), args.Error(1)
}

func (s *SMSQueueRepository) FailExpired(ctx context.Context, threshold time.Time, maxAttempts int, errorMessage string) (int64, error) {
	args := s.Called(ctx, threshold, maxAttempts, errorMessage)
	return args.Get(0).(int64), args.Error(1)
}

func (s *SMSQueueRepository) IncreaseAttemptCount(ctx context.Context, id int64, nextAttemptAt *time.Time) (bool, error) {
	args := s.Called(ctx, id, nextAttemptAt)
	return args.Bool(0), args.Error(1)
}

func (s *SMSQueueRepository) UpdateStatus(ctx context.Context, id int64, status model.SMSQueueStatus, errorMessage *string) (bool, error) {
	args := s.Called(ctx, id, status, errorMessage)
	return args.Bool(0), args.Error(1)
}

func (s *SMSQueueRepository) MarkSent(ctx context.Context, id int64, messageID string) (bool, error) {
	args := s.Called(ctx, id, messageID)
	return args.Bool(0), args.Error(1)
}

func (s *SMSQueueRepository) CancelPendingByUserID(ctx context.Context, userID int64, reason *string) (int64, error) {
	args := s.Called(ctx, userID, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (s *SMSQueueRepository) CancelPendingBySegmentID(ctx context.Context, segmentID int64, reason *string) (int64, error) {
	args := s.Called(ctx, segmentID, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (s *SMSQueueRepository) CancelPendingByBatchID(ctx context.Context, batchID string, reason *string) (int64, error) {
	args := s.Called(ctx, batchID, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (s *SMSQueueRepository) DeleteOldEntries(ctx context.Context, olderThan time.Time, statuses ...model.SMSQueueStatus) (int64, error) {
	args := s.Called(ctx, olderThan, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func (s *SMSQueueRepository) SaveBatch(ctx context.Context, entries []*model.SMSQueue) error {
	args := s.Called(ctx, entries)
	return args.Error(0)
}
