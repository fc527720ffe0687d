package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/config"
	"github.com/Behyna/sms-services/smscampaign/internal/constants"
	"github.com/Behyna/sms-services/smscampaign/internal/mocks"
	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/internal/repository"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type queueFixture struct {
	queueRepo   *mocks.SMSQueueRepository
	segmentRepo *mocks.CustomSegmentRepository
	txManager   *mocks.TxManager
	svc         service.SMSQueueService
}

func newQueueFixture() queueFixture {
	return newQueueFixtureWith(nil)
}

func newQueueFixtureWith(tune func(*config.Queue)) queueFixture {
	cfg := &config.Config{
		Queue: config.Queue{
			DispatchBatchSize: 50,
			ProcessingTimeout: 5 * time.Minute,
			MaxAttempts:       3,
			BackoffBase:       time.Minute,
			BackoffMax:        10 * time.Minute,
			RetentionAge:      30 * 24 * time.Hour,
			DefaultSenderName: "CAMPAIGN",
		},
	}
	if tune != nil {
		tune(&cfg.Queue)
	}

	f := queueFixture{
		queueRepo:   &mocks.SMSQueueRepository{},
		segmentRepo: &mocks.CustomSegmentRepository{},
		txManager:   &mocks.TxManager{},
	}
	f.svc = service.NewSMSQueueService(f.queueRepo, f.segmentRepo, segmentation.NewValidator(segmentation.Config{}),
		f.txManager, cfg, nil, zap.NewNop())
	return f
}

func assertServiceCode(t *testing.T, err error, code string) {
	t.Helper()

	var svcErr service.Error
	require.True(t, errors.As(err, &svcErr), "expected service.Error, got %v", err)
	assert.Equal(t, code, svcErr.Code)
}

func TestSMSQueue_Enqueue(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the number and applies sender defaults", func(t *testing.T) {
		f := newQueueFixture()
		scheduled := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("GMT+1", 3600))

		f.queueRepo.On("Create", ctx, mock.MatchedBy(func(entry *model.SMSQueue) bool {
			return entry.PhoneNumber == "+2250701020304" &&
				entry.Status == model.SMSQueueStatusPending &&
				entry.Attempts == 0 &&
				entry.SenderName != nil && *entry.SenderName == "CAMPAIGN" &&
				entry.SenderAddress == nil &&
				entry.NextAttemptAt != nil && entry.NextAttemptAt.Location() == time.UTC
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.SMSQueue).ID = 21
		}).Return(nil)

		entry, err := f.svc.Enqueue(ctx, service.EnqueueSMSCommand{
			PhoneNumber: "07 01 02 03 04",
			Message:     "Promo",
			ScheduledAt: &scheduled,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(21), entry.ID)
		assert.True(t, scheduled.Equal(*entry.NextAttemptAt))
		assert.WithinDuration(t, time.Now(), entry.CreatedAt, time.Minute)
		f.queueRepo.AssertExpectations(t)
	})

	t.Run("explicit sender wins over the default", func(t *testing.T) {
		f := newQueueFixture()
		sender := "SHOP"

		f.queueRepo.On("Create", ctx, mock.MatchedBy(func(entry *model.SMSQueue) bool {
			return *entry.SenderName == "SHOP"
		})).Return(nil)

		_, err := f.svc.Enqueue(ctx, service.EnqueueSMSCommand{PhoneNumber: "0701020304", Message: "x", SenderName: &sender})

		require.NoError(t, err)
		f.queueRepo.AssertExpectations(t)
	})

	t.Run("invalid number", func(t *testing.T) {
		f := newQueueFixture()

		entry, err := f.svc.Enqueue(ctx, service.EnqueueSMSCommand{PhoneNumber: "12", Message: "x"})

		assert.Nil(t, entry)
		assertServiceCode(t, err, constants.ErrCodeInvalidPhoneNumber)
		f.queueRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("Create", ctx, mock.AnythingOfType("*model.SMSQueue")).Return(errors.New("db down"))

		_, err := f.svc.Enqueue(ctx, service.EnqueueSMSCommand{PhoneNumber: "0701020304", Message: "x"})

		assert.ErrorIs(t, err, service.ErrDatabase)
		assertServiceCode(t, err, constants.ErrCodeDatabase)
	})
}

func TestSMSQueue_EnqueueBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("valid numbers share one batch id", func(t *testing.T) {
		f := newQueueFixture()
		var saved []*model.SMSQueue
		f.queueRepo.On("SaveBatch", ctx, mock.AnythingOfType("[]*model.SMSQueue")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).([]*model.SMSQueue)
			}).Return(nil)

		result, err := f.svc.EnqueueBatch(ctx, service.EnqueueBatchCommand{
			PhoneNumbers: []string{"0701020304", "nope", "+2250101020304"},
			Message:      "Promo",
		})

		require.NoError(t, err)
		_, parseErr := uuid.Parse(result.BatchID)
		assert.NoError(t, parseErr)
		assert.Equal(t, 2, result.Enqueued)
		assert.Equal(t, []service.BatchItemError{
			{Index: 1, Number: "nope", Error: constants.BatchMsgInvalidFormat},
		}, result.Rejected)

		require.Len(t, saved, 2)
		for _, entry := range saved {
			require.NotNil(t, entry.BatchID)
			assert.Equal(t, result.BatchID, *entry.BatchID)
			assert.Equal(t, model.SMSQueueStatusPending, entry.Status)
		}
		assert.Equal(t, "+2250701020304", saved[0].PhoneNumber)
		assert.Equal(t, "+2250101020304", saved[1].PhoneNumber)
	})

	t.Run("no valid number is an empty batch", func(t *testing.T) {
		f := newQueueFixture()

		result, err := f.svc.EnqueueBatch(ctx, service.EnqueueBatchCommand{PhoneNumbers: []string{"a", "b"}})

		assert.ErrorIs(t, err, service.ErrEmptyBatch)
		assertServiceCode(t, err, constants.ErrCodeEmptyBatch)
		assert.Len(t, result.Rejected, 2)
		f.queueRepo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("SaveBatch", ctx, mock.Anything).Return(errors.New("db down"))

		_, err := f.svc.EnqueueBatch(ctx, service.EnqueueBatchCommand{PhoneNumbers: []string{"0701020304"}})

		assert.ErrorIs(t, err, service.ErrDatabase)
	})
}

func TestSMSQueue_EnqueueForCustomSegment(t *testing.T) {
	ctx := context.Background()

	t.Run("one row per member tagged with the segment", func(t *testing.T) {
		f := newQueueFixture()
		f.segmentRepo.On("FindByID", ctx, int64(4)).Return(&model.CustomSegment{ID: 4}, nil)
		f.segmentRepo.On("FindPhoneNumbers", ctx, int64(4)).Return([]model.PhoneNumber{
			{ID: 1, Number: "+2250701020304"},
			{ID: 2, Number: "+2250501020304"},
		}, nil)
		f.queueRepo.On("SaveBatch", ctx, mock.MatchedBy(func(entries []*model.SMSQueue) bool {
			if len(entries) != 2 {
				return false
			}
			for _, entry := range entries {
				if entry.SegmentID == nil || *entry.SegmentID != 4 || entry.BatchID == nil {
					return false
				}
			}
			return true
		})).Return(nil)

		result, err := f.svc.EnqueueForCustomSegment(ctx, service.EnqueueSegmentCommand{CustomSegmentID: 4, Message: "Hi"})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Enqueued)
		assert.Empty(t, result.Rejected)
		f.queueRepo.AssertExpectations(t)
	})

	t.Run("unknown segment", func(t *testing.T) {
		f := newQueueFixture()
		f.segmentRepo.On("FindByID", ctx, int64(4)).Return(nil, repository.ErrCustomSegmentNotFound)

		_, err := f.svc.EnqueueForCustomSegment(ctx, service.EnqueueSegmentCommand{CustomSegmentID: 4})

		assertServiceCode(t, err, constants.ErrCodeCustomSegmentNotFound)
	})

	t.Run("segment without members", func(t *testing.T) {
		f := newQueueFixture()
		f.segmentRepo.On("FindByID", ctx, int64(4)).Return(&model.CustomSegment{ID: 4}, nil)
		f.segmentRepo.On("FindPhoneNumbers", ctx, int64(4)).Return([]model.PhoneNumber{}, nil)

		_, err := f.svc.EnqueueForCustomSegment(ctx, service.EnqueueSegmentCommand{CustomSegmentID: 4})

		assert.ErrorIs(t, err, service.ErrEmptyBatch)
	})
}

func TestSMSQueue_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("GetByID", ctx, int64(1)).Return(nil, repository.ErrQueueEntryNotFound)

		_, err := f.svc.Get(ctx, 1)

		assert.ErrorIs(t, err, service.ErrQueueEntryNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("GetByID", ctx, int64(1)).Return(nil, errors.New("db down"))

		_, err := f.svc.Get(ctx, 1)

		assert.ErrorIs(t, err, service.ErrDatabase)
	})
}

func TestSMSQueue_ClaimNextBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("non positive limit uses the configured size", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("ClaimNextBatch", ctx, 50).Return([]model.SMSQueue{{ID: 1}}, nil)

		claimed, err := f.svc.ClaimNextBatch(ctx, 0)

		require.NoError(t, err)
		assert.Len(t, claimed, 1)
	})

	t.Run("partial claim is returned with the error", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("ClaimNextBatch", ctx, 10).Return([]model.SMSQueue{{ID: 1}}, errors.New("deadlock"))

		claimed, err := f.svc.ClaimNextBatch(ctx, 10)

		assert.ErrorIs(t, err, service.ErrDatabase)
		assert.Len(t, claimed, 1)
	})
}

func TestSMSQueue_Release(t *testing.T) {
	ctx := context.Background()

	t.Run("puts the row back to pending", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("UpdateStatus", ctx, int64(3), model.SMSQueueStatusPending,
			mock.MatchedBy(func(reason *string) bool { return *reason == "publish failed" })).Return(true, nil)

		err := f.svc.Release(ctx, 3, "publish failed")

		assert.NoError(t, err)
		f.queueRepo.AssertExpectations(t)
	})

	t.Run("missing row", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("UpdateStatus", ctx, int64(3), model.SMSQueueStatusPending, mock.Anything).Return(false, nil)

		assert.ErrorIs(t, f.svc.Release(ctx, 3, "x"), service.ErrQueueEntryNotFound)
	})
}

func TestSMSQueue_ReportSuccess(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the row sent", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("MarkSent", ctx, int64(3), "msg-1").Return(true, nil)

		assert.NoError(t, f.svc.ReportSuccess(ctx, 3, "msg-1"))
	})

	t.Run("row not processing", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("MarkSent", ctx, int64(3), "msg-1").Return(false, nil)

		assert.ErrorIs(t, f.svc.ReportSuccess(ctx, 3, "msg-1"), service.ErrQueueEntryNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("MarkSent", ctx, int64(3), "msg-1").Return(false, errors.New("db down"))

		assert.ErrorIs(t, f.svc.ReportSuccess(ctx, 3, "msg-1"), service.ErrDatabase)
	})
}

func TestSMSQueue_ReportFailure(t *testing.T) {
	ctx := context.Background()
	cause := "provider timeout"
	causeMatcher := mock.MatchedBy(func(reason *string) bool { return reason != nil && *reason == cause })

	t.Run("transient failure schedules a retry with backoff", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("GetByID", ctx, int64(5)).
			Return(&model.SMSQueue{ID: 5, Status: model.SMSQueueStatusProcessing, Attempts: 1}, nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)

		var nextAttemptAt *time.Time
		f.queueRepo.On("IncreaseAttemptCount", mock.AnythingOfType("*context.valueCtx"), int64(5), mock.Anything).
			Run(func(args mock.Arguments) {
				nextAttemptAt, _ = args.Get(2).(*time.Time)
			}).Return(true, nil)
		f.queueRepo.On("UpdateStatus", mock.AnythingOfType("*context.valueCtx"), int64(5),
			model.SMSQueueStatusPending, causeMatcher).Return(true, nil)

		status, err := f.svc.ReportFailure(ctx, 5, cause, false)

		require.NoError(t, err)
		assert.Equal(t, model.SMSQueueStatusPending, status)
		require.NotNil(t, nextAttemptAt)
		assert.WithinDuration(t, time.Now().Add(2*time.Minute), *nextAttemptAt, 5*time.Second)
		f.queueRepo.AssertExpectations(t)
	})

	t.Run("first retry waits the base delay", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("GetByID", ctx, int64(5)).
			Return(&model.SMSQueue{ID: 5, Status: model.SMSQueueStatusProcessing, Attempts: 0}, nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)

		var nextAttemptAt *time.Time
		f.queueRepo.On("IncreaseAttemptCount", mock.Anything, int64(5), mock.Anything).
			Run(func(args mock.Arguments) {
				nextAttemptAt, _ = args.Get(2).(*time.Time)
			}).Return(true, nil)
		f.queueRepo.On("UpdateStatus", mock.Anything, int64(5), model.SMSQueueStatusPending, mock.Anything).
			Return(true, nil)

		_, err := f.svc.ReportFailure(ctx, 5, cause, false)

		require.NoError(t, err)
		require.NotNil(t, nextAttemptAt)
		assert.WithinDuration(t, time.Now().Add(time.Minute), *nextAttemptAt, 5*time.Second)
	})

	t.Run("backoff is capped", func(t *testing.T) {
		f := newQueueFixtureWith(func(q *config.Queue) { q.MaxAttempts = 20 })
		f.queueRepo.On("GetByID", ctx, int64(6)).
			Return(&model.SMSQueue{ID: 6, Status: model.SMSQueueStatusProcessing, Attempts: 8}, nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)

		var nextAttemptAt *time.Time
		f.queueRepo.On("IncreaseAttemptCount", mock.Anything, int64(6), mock.Anything).
			Run(func(args mock.Arguments) {
				nextAttemptAt, _ = args.Get(2).(*time.Time)
			}).Return(true, nil)
		f.queueRepo.On("UpdateStatus", mock.Anything, int64(6), model.SMSQueueStatusPending, mock.Anything).
			Return(true, nil)

		status, err := f.svc.ReportFailure(ctx, 6, cause, false)

		require.NoError(t, err)
		assert.Equal(t, model.SMSQueueStatusPending, status)
		require.NotNil(t, nextAttemptAt)
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), *nextAttemptAt, 5*time.Second)
	})

	t.Run("attempt ceiling marks the row failed", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("GetByID", ctx, int64(5)).
			Return(&model.SMSQueue{ID: 5, Status: model.SMSQueueStatusProcessing, Attempts: 2}, nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.queueRepo.On("IncreaseAttemptCount", mock.AnythingOfType("*context.valueCtx"), int64(5), (*time.Time)(nil)).
			Return(true, nil)
		f.queueRepo.On("UpdateStatus", mock.AnythingOfType("*context.valueCtx"), int64(5),
			model.SMSQueueStatusFailed, causeMatcher).Return(true, nil)

		status, err := f.svc.ReportFailure(ctx, 5, cause, false)

		require.NoError(t, err)
		assert.Equal(t, model.SMSQueueStatusFailed, status)
		f.queueRepo.AssertExpectations(t)
	})

	t.Run("permanent failure skips the retry", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("GetByID", ctx, int64(5)).
			Return(&model.SMSQueue{ID: 5, Status: model.SMSQueueStatusProcessing}, nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.queueRepo.On("IncreaseAttemptCount", mock.Anything, int64(5), (*time.Time)(nil)).Return(true, nil)
		f.queueRepo.On("UpdateStatus", mock.Anything, int64(5), model.SMSQueueStatusFailed, mock.Anything).
			Return(true, nil)

		status, err := f.svc.ReportFailure(ctx, 5, "INVALID_NUMBER", true)

		require.NoError(t, err)
		assert.Equal(t, model.SMSQueueStatusFailed, status)
	})

	t.Run("terminal row is left alone", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("GetByID", ctx, int64(5)).
			Return(&model.SMSQueue{ID: 5, Status: model.SMSQueueStatusSent}, nil)

		status, err := f.svc.ReportFailure(ctx, 5, cause, false)

		assert.ErrorIs(t, err, service.ErrQueueEntryAlreadyDone)
		assert.Equal(t, model.SMSQueueStatusSent, status)
		f.txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("transaction failure", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("GetByID", ctx, int64(5)).
			Return(&model.SMSQueue{ID: 5, Status: model.SMSQueueStatusProcessing}, nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.queueRepo.On("IncreaseAttemptCount", mock.Anything, int64(5), mock.Anything).
			Return(false, errors.New("lock timeout"))

		_, err := f.svc.ReportFailure(ctx, 5, cause, false)

		assert.ErrorIs(t, err, service.ErrDatabase)
		f.queueRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSMSQueue_Maintenance(t *testing.T) {
	ctx := context.Background()

	t.Run("requeue uses the processing timeout", func(t *testing.T) {
		f := newQueueFixture()
		inWindow := mock.MatchedBy(func(threshold time.Time) bool {
			return threshold.Before(time.Now().Add(-4*time.Minute)) && threshold.After(time.Now().Add(-6*time.Minute))
		})
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.queueRepo.On("FailExpired", mock.AnythingOfType("*context.valueCtx"), inWindow, 3, "processing timed out").
			Return(int64(1), nil).Once()
		f.queueRepo.On("ReleaseExpired", mock.AnythingOfType("*context.valueCtx"), inWindow).
			Return(int64(3), nil).Once()

		released, err := f.svc.RequeueExpired(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(3), released)
		f.queueRepo.AssertExpectations(t)
	})

	t.Run("requeue stops when failing exhausted rows errors", func(t *testing.T) {
		f := newQueueFixture()
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.queueRepo.On("FailExpired", mock.Anything, mock.Anything, 3, mock.Anything).
			Return(int64(0), errors.New("lock timeout"))

		_, err := f.svc.RequeueExpired(ctx)

		assert.ErrorIs(t, err, service.ErrDatabase)
		f.queueRepo.AssertNotCalled(t, "ReleaseExpired", mock.Anything, mock.Anything)
	})

	t.Run("cleanup uses the retention age", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("DeleteOldEntries", ctx, mock.MatchedBy(func(olderThan time.Time) bool {
			return olderThan.Before(time.Now().Add(-29 * 24 * time.Hour))
		}), mock.Anything).Return(int64(12), nil)

		deleted, err := f.svc.Cleanup(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(12), deleted)
	})

	t.Run("cleanup failure", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("DeleteOldEntries", ctx, mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

		_, err := f.svc.Cleanup(ctx)

		assert.ErrorIs(t, err, service.ErrDatabase)
	})
}

func TestSMSQueue_Cancel(t *testing.T) {
	ctx := context.Background()
	reasonMatcher := mock.MatchedBy(func(reason *string) bool { return *reason == "campaign stopped" })

	t.Run("by batch", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("CancelPendingByBatchID", ctx, "batch-1", reasonMatcher).Return(int64(4), nil)

		cancelled, err := f.svc.CancelByBatch(ctx, "batch-1", "campaign stopped")

		require.NoError(t, err)
		assert.Equal(t, int64(4), cancelled)
	})

	t.Run("by user", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("CancelPendingByUserID", ctx, int64(8), reasonMatcher).Return(int64(2), nil)

		cancelled, err := f.svc.CancelByUser(ctx, 8, "campaign stopped")

		require.NoError(t, err)
		assert.Equal(t, int64(2), cancelled)
	})

	t.Run("by segment", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("CancelPendingBySegmentID", ctx, int64(9), reasonMatcher).Return(int64(0), nil)

		cancelled, err := f.svc.CancelBySegment(ctx, 9, "campaign stopped")

		require.NoError(t, err)
		assert.Zero(t, cancelled)
	})

	t.Run("database error", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("CancelPendingByBatchID", ctx, "batch-1", mock.Anything).Return(int64(0), errors.New("db down"))

		_, err := f.svc.CancelByBatch(ctx, "batch-1", "x")

		assertServiceCode(t, err, constants.ErrCodeDatabase)
	})
}

func TestSMSQueue_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("missing statuses are reported as zero", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("CountByStatus", ctx).Return(map[model.SMSQueueStatus]int64{
			model.SMSQueueStatusPending: 7,
			model.SMSQueueStatusSent:    3,
		}, nil)

		counts, err := f.svc.Stats(ctx)

		require.NoError(t, err)
		assert.Equal(t, map[model.SMSQueueStatus]int64{
			model.SMSQueueStatusPending:    7,
			model.SMSQueueStatusProcessing: 0,
			model.SMSQueueStatusSent:       3,
			model.SMSQueueStatusFailed:     0,
			model.SMSQueueStatusCancelled:  0,
		}, counts)
	})

	t.Run("empty store", func(t *testing.T) {
		f := newQueueFixture()
		f.queueRepo.On("CountByStatus", ctx).Return(nil, nil)

		counts, err := f.svc.Stats(ctx)

		require.NoError(t, err)
		assert.Len(t, counts, 5)
	})
}
