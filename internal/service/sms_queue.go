package service

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/config"
	"github.com/Behyna/sms-services/smscampaign/internal/constants"
	"github.com/Behyna/sms-services/smscampaign/internal/metrics"
	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/internal/repository"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const processingTimeoutReason = "processing timed out"

type SMSQueueService interface {
	Enqueue(ctx context.Context, cmd EnqueueSMSCommand) (*model.SMSQueue, error)
	EnqueueBatch(ctx context.Context, cmd EnqueueBatchCommand) (EnqueueBatchResponse, error)
	EnqueueForCustomSegment(ctx context.Context, cmd EnqueueSegmentCommand) (EnqueueBatchResponse, error)
	Get(ctx context.Context, id int64) (*model.SMSQueue, error)

	ClaimNextBatch(ctx context.Context, limit int) ([]model.SMSQueue, error)
	Release(ctx context.Context, id int64, reason string) error
	ReportSuccess(ctx context.Context, id int64, messageID string) error
	ReportFailure(ctx context.Context, id int64, cause string, permanent bool) (model.SMSQueueStatus, error)

	RequeueExpired(ctx context.Context) (int64, error)
	CancelByBatch(ctx context.Context, batchID string, reason string) (int64, error)
	CancelByUser(ctx context.Context, userID int64, reason string) (int64, error)
	CancelBySegment(ctx context.Context, segmentID int64, reason string) (int64, error)
	Cleanup(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (map[model.SMSQueueStatus]int64, error)
}

type smsQueue struct {
	queueRepo   repository.SMSQueueRepository
	segmentRepo repository.CustomSegmentRepository
	validator   segmentation.Validator
	txManager   repository.TxManager
	cfg         config.Queue
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

func NewSMSQueueService(queueRepo repository.SMSQueueRepository, segmentRepo repository.CustomSegmentRepository,
	validator segmentation.Validator, txManager repository.TxManager, cfg *config.Config, metrics *metrics.Metrics,
	logger *zap.Logger) SMSQueueService {
	return &smsQueue{
		queueRepo:   queueRepo,
		segmentRepo: segmentRepo,
		validator:   validator,
		txManager:   txManager,
		cfg:         cfg.Queue,
		metrics:     metrics,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *smsQueue) Enqueue(ctx context.Context, cmd EnqueueSMSCommand) (*model.SMSQueue, error) {
	number, err := s.validator.Normalize(cmd.PhoneNumber)
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeInvalidPhoneNumber, segmentation.ErrInvalidPhoneNumber)
	}

	entry := &model.SMSQueue{
		PhoneNumber:   number,
		Message:       cmd.Message,
		UserID:        cmd.UserID,
		SegmentID:     cmd.SegmentID,
		BatchID:       cmd.BatchID,
		Status:        model.SMSQueueStatusPending,
		Priority:      cmd.Priority,
		CreatedAt:     s.now(),
		NextAttemptAt: utc(cmd.ScheduledAt),
		SenderName:    s.senderName(cmd.SenderName),
		SenderAddress: s.senderAddress(cmd.SenderAddress),
	}

	if err := s.queueRepo.Create(ctx, entry); err != nil {
		s.logger.Error("Failed to enqueue SMS",
			zap.String("phoneNumber", number),
			zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeDatabase, ErrDatabase)
	}

	s.metrics.RecordQueueTransition(string(model.SMSQueueStatusPending), 1)
	s.logger.Debug("SMS enqueued", zap.Int64("queueID", entry.ID), zap.String("phoneNumber", number))

	return entry, nil
}

// EnqueueBatch stores every valid number under one new batch id in a single
// transaction. Invalid numbers are reported back and skipped.
func (s *smsQueue) EnqueueBatch(ctx context.Context, cmd EnqueueBatchCommand) (EnqueueBatchResponse, error) {
	batchID := uuid.NewString()
	now := s.now()

	entries := make([]*model.SMSQueue, 0, len(cmd.PhoneNumbers))
	rejected := make([]BatchItemError, 0)

	for index, raw := range cmd.PhoneNumbers {
		number, err := s.validator.Normalize(raw)
		if err != nil {
			rejected = append(rejected, BatchItemError{Index: index, Number: raw, Error: constants.BatchMsgInvalidFormat})
			continue
		}

		entries = append(entries, &model.SMSQueue{
			PhoneNumber:   number,
			Message:       cmd.Message,
			UserID:        cmd.UserID,
			BatchID:       &batchID,
			Status:        model.SMSQueueStatusPending,
			Priority:      cmd.Priority,
			CreatedAt:     now,
			NextAttemptAt: utc(cmd.ScheduledAt),
			SenderName:    s.senderName(cmd.SenderName),
			SenderAddress: s.senderAddress(cmd.SenderAddress),
		})
	}

	return s.saveBatch(ctx, batchID, entries, rejected)
}

func (s *smsQueue) EnqueueForCustomSegment(ctx context.Context, cmd EnqueueSegmentCommand) (EnqueueBatchResponse, error) {
	if _, err := s.segmentRepo.FindByID(ctx, cmd.CustomSegmentID); err != nil {
		if errors.Is(err, repository.ErrCustomSegmentNotFound) {
			return EnqueueBatchResponse{}, NewServiceError(constants.ErrCodeCustomSegmentNotFound, err)
		}
		s.logger.Error("Failed to load custom segment", zap.Int64("customSegmentID", cmd.CustomSegmentID), zap.Error(err))
		return EnqueueBatchResponse{}, NewServiceError(constants.ErrCodeDatabase, ErrDatabase)
	}

	phones, err := s.segmentRepo.FindPhoneNumbers(ctx, cmd.CustomSegmentID)
	if err != nil {
		s.logger.Error("Failed to load custom segment members",
			zap.Int64("customSegmentID", cmd.CustomSegmentID),
			zap.Error(err))
		return EnqueueBatchResponse{}, NewServiceError(constants.ErrCodeDatabase, ErrDatabase)
	}

	batchID := uuid.NewString()
	now := s.now()
	segmentID := cmd.CustomSegmentID

	entries := make([]*model.SMSQueue, 0, len(phones))
	for _, phone := range phones {
		entries = append(entries, &model.SMSQueue{
			PhoneNumber:   phone.Number,
			Message:       cmd.Message,
			UserID:        cmd.UserID,
			SegmentID:     &segmentID,
			BatchID:       &batchID,
			Status:        model.SMSQueueStatusPending,
			Priority:      cmd.Priority,
			CreatedAt:     now,
			NextAttemptAt: utc(cmd.ScheduledAt),
			SenderName:    s.senderName(cmd.SenderName),
			SenderAddress: s.senderAddress(cmd.SenderAddress),
		})
	}

	return s.saveBatch(ctx, batchID, entries, make([]BatchItemError, 0))
}

func (s *smsQueue) saveBatch(ctx context.Context, batchID string, entries []*model.SMSQueue,
	rejected []BatchItemError) (EnqueueBatchResponse, error) {
	if len(entries) == 0 {
		return EnqueueBatchResponse{Rejected: rejected}, NewServiceError(constants.ErrCodeEmptyBatch, ErrEmptyBatch)
	}

	if err := s.queueRepo.SaveBatch(ctx, entries); err != nil {
		s.logger.Error("Failed to enqueue SMS batch",
			zap.String("batchID", batchID),
			zap.Int("size", len(entries)),
			zap.Error(err))
		return EnqueueBatchResponse{}, NewServiceError(constants.ErrCodeDatabase, ErrDatabase)
	}

	s.metrics.RecordQueueTransition(string(model.SMSQueueStatusPending), len(entries))
	s.logger.Info("SMS batch enqueued",
		zap.String("batchID", batchID),
		zap.Int("enqueued", len(entries)),
		zap.Int("rejected", len(rejected)))

	return EnqueueBatchResponse{BatchID: batchID, Enqueued: len(entries), Rejected: rejected}, nil
}

func (s *smsQueue) Get(ctx context.Context, id int64) (*model.SMSQueue, error) {
	entry, err := s.queueRepo.GetByID(ctx, id)
	if err == nil {
		return entry, nil
	}

	if errors.Is(err, repository.ErrQueueEntryNotFound) {
		return nil, ErrQueueEntryNotFound
	}

	s.logger.Error("Failed to load queue entry", zap.Int64("queueID", id), zap.Error(err))
	return nil, ErrDatabase
}

func (s *smsQueue) ClaimNextBatch(ctx context.Context, limit int) ([]model.SMSQueue, error) {
	if limit <= 0 {
		limit = s.cfg.DispatchBatchSize
	}

	// Rows claimed before a failure stay claimed and are returned with the error.
	claimed, err := s.queueRepo.ClaimNextBatch(ctx, limit)
	s.metrics.RecordQueueTransition(string(model.SMSQueueStatusProcessing), len(claimed))
	if err != nil {
		s.logger.Error("Failed to claim queue entries", zap.Int("limit", limit), zap.Error(err))
		return claimed, ErrDatabase
	}

	return claimed, nil
}

// Release hands a claimed row back to the dispatcher without counting an attempt.
func (s *smsQueue) Release(ctx context.Context, id int64, reason string) error {
	ok, err := s.queueRepo.UpdateStatus(ctx, id, model.SMSQueueStatusPending, &reason)
	if err != nil {
		s.logger.Error("Failed to release queue entry", zap.Int64("queueID", id), zap.Error(err))
		return ErrDatabase
	}
	if !ok {
		return ErrQueueEntryNotFound
	}

	s.metrics.RecordQueueTransition(string(model.SMSQueueStatusPending), 1)
	return nil
}

func (s *smsQueue) ReportSuccess(ctx context.Context, id int64, messageID string) error {
	ok, err := s.queueRepo.MarkSent(ctx, id, messageID)
	if err != nil {
		s.logger.Error("Failed to mark queue entry as sent",
			zap.Int64("queueID", id),
			zap.String("providerMessageID", messageID),
			zap.Error(err))
		return ErrDatabase
	}
	if !ok {
		return ErrQueueEntryNotFound
	}

	s.metrics.RecordQueueTransition(string(model.SMSQueueStatusSent), 1)
	return nil
}

// ReportFailure counts the attempt. The row goes back to pending after an
// exponential backoff, or to failed when the failure is permanent or the attempt
// ceiling is reached. It returns the status the row ended in.
func (s *smsQueue) ReportFailure(ctx context.Context, id int64, cause string, permanent bool) (model.SMSQueueStatus, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if entry.Status.IsTerminal() {
		return entry.Status, ErrQueueEntryAlreadyDone
	}

	attempts := entry.Attempts + 1
	status := model.SMSQueueStatusPending
	var nextAttemptAt *time.Time
	if permanent || attempts >= s.cfg.MaxAttempts {
		status = model.SMSQueueStatusFailed
	} else {
		next := s.now().Add(s.backoff(entry.Attempts))
		nextAttemptAt = &next
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.queueRepo.IncreaseAttemptCount(ctx, id, nextAttemptAt); err != nil {
			return err
		}

		_, err := s.queueRepo.UpdateStatus(ctx, id, status, &cause)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to record send failure",
			zap.Int64("queueID", id),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return "", ErrDatabase
	}

	s.metrics.RecordQueueTransition(string(status), 1)

	if status == model.SMSQueueStatusFailed {
		s.logger.Warn("SMS permanently failed",
			zap.Int64("queueID", id),
			zap.Int("attempts", attempts),
			zap.Bool("permanent", permanent),
			zap.String("reason", cause))
	} else {
		s.logger.Debug("SMS scheduled for retry",
			zap.Int64("queueID", id),
			zap.Int("attempts", attempts),
			zap.Time("nextAttemptAt", *nextAttemptAt))
	}

	return status, nil
}

// backoff is BackoffBase * 2^attempts, capped at BackoffMax.
func (s *smsQueue) backoff(attempts int) time.Duration {
	delay := s.cfg.BackoffBase
	for i := 0; i < attempts; i++ {
		delay *= 2
		if s.cfg.BackoffMax > 0 && delay >= s.cfg.BackoffMax {
			return s.cfg.BackoffMax
		}
	}

	if s.cfg.BackoffMax > 0 && delay > s.cfg.BackoffMax {
		return s.cfg.BackoffMax
	}
	return delay
}

// RequeueExpired recovers rows whose worker never reported back. Each lost claim
// counts as an attempt, so a row that keeps stalling its worker ends up failed.
func (s *smsQueue) RequeueExpired(ctx context.Context) (int64, error) {
	threshold := s.now().Add(-s.cfg.ProcessingTimeout)

	var failed, released int64
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		failed, err = s.queueRepo.FailExpired(ctx, threshold, s.cfg.MaxAttempts, processingTimeoutReason)
		if err != nil {
			return err
		}

		released, err = s.queueRepo.ReleaseExpired(ctx, threshold)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to requeue stuck entries", zap.Time("threshold", threshold), zap.Error(err))
		return 0, ErrDatabase
	}

	if failed > 0 {
		s.metrics.RecordQueueTransition(string(model.SMSQueueStatusFailed), int(failed))
		s.logger.Warn("Stuck queue entries out of attempts",
			zap.Int64("count", failed),
			zap.Int("maxAttempts", s.cfg.MaxAttempts))
	}

	if released > 0 {
		s.metrics.RecordQueueTransition(string(model.SMSQueueStatusPending), int(released))
		s.logger.Warn("Requeued stuck queue entries",
			zap.Int64("count", released),
			zap.Duration("processingTimeout", s.cfg.ProcessingTimeout))
	}

	return released, nil
}

func (s *smsQueue) CancelByBatch(ctx context.Context, batchID string, reason string) (int64, error) {
	cancelled, err := s.queueRepo.CancelPendingByBatchID(ctx, batchID, &reason)
	return s.cancelled(cancelled, err, zap.String("batchID", batchID))
}

func (s *smsQueue) CancelByUser(ctx context.Context, userID int64, reason string) (int64, error) {
	cancelled, err := s.queueRepo.CancelPendingByUserID(ctx, userID, &reason)
	return s.cancelled(cancelled, err, zap.Int64("userID", userID))
}

func (s *smsQueue) CancelBySegment(ctx context.Context, segmentID int64, reason string) (int64, error) {
	cancelled, err := s.queueRepo.CancelPendingBySegmentID(ctx, segmentID, &reason)
	return s.cancelled(cancelled, err, zap.Int64("segmentID", segmentID))
}

func (s *smsQueue) cancelled(count int64, err error, key zap.Field) (int64, error) {
	if err != nil {
		s.logger.Error("Failed to cancel pending SMS", key, zap.Error(err))
		return 0, NewServiceError(constants.ErrCodeDatabase, ErrDatabase)
	}

	s.metrics.RecordQueueTransition(string(model.SMSQueueStatusCancelled), int(count))
	s.logger.Info("Pending SMS cancelled", key, zap.Int64("count", count))

	return count, nil
}

func (s *smsQueue) Cleanup(ctx context.Context) (int64, error) {
	olderThan := s.now().Add(-s.cfg.RetentionAge)

	deleted, err := s.queueRepo.DeleteOldEntries(ctx, olderThan)
	if err != nil {
		s.logger.Error("Failed to delete old queue entries", zap.Time("olderThan", olderThan), zap.Error(err))
		return 0, ErrDatabase
	}

	if deleted > 0 {
		s.logger.Info("Old queue entries deleted", zap.Int64("count", deleted), zap.Time("olderThan", olderThan))
	}

	return deleted, nil
}

func (s *smsQueue) Stats(ctx context.Context) (map[model.SMSQueueStatus]int64, error) {
	counts, err := s.queueRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("Failed to count queue entries", zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeDatabase, ErrDatabase)
	}
	if counts == nil {
		counts = make(map[model.SMSQueueStatus]int64)
	}

	for _, status := range []model.SMSQueueStatus{
		model.SMSQueueStatusPending,
		model.SMSQueueStatusProcessing,
		model.SMSQueueStatusSent,
		model.SMSQueueStatusFailed,
		model.SMSQueueStatusCancelled,
	} {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
		s.metrics.SetQueueDepth(string(status), counts[status])
	}

	return counts, nil
}

func (s *smsQueue) senderName(name *string) *string {
	if name != nil && *name != "" {
		return name
	}
	if s.cfg.DefaultSenderName == "" {
		return nil
	}
	value := s.cfg.DefaultSenderName
	return &value
}

func (s *smsQueue) senderAddress(address *string) *string {
	if address != nil && *address != "" {
		return address
	}
	if s.cfg.DefaultSenderAddress == "" {
		return nil
	}
	value := s.cfg.DefaultSenderAddress
	return &value
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := t.UTC()
	return &value
}
