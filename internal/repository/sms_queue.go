package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"gorm.io/gorm"
)

type SMSQueueRepository interface {
	Create(ctx context.Context, entry *model.SMSQueue) error
	Update(ctx context.Context, entry *model.SMSQueue) error
	Delete(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*model.SMSQueue, error)
	FindByBatchID(ctx context.Context, batchID string) ([]model.SMSQueue, error)
	CountByStatus(ctx context.Context) (map[model.SMSQueueStatus]int64, error)

	FindNextBatch(ctx context.Context, limit int, statuses ...model.SMSQueueStatus) ([]model.SMSQueue, error)
	Claim(ctx context.Context, id int64) (bool, error)
	ClaimNextBatch(ctx context.Context, limit int) ([]model.SMSQueue, error)
	FindExpiredProcessing(ctx context.Context, threshold time.Time) ([]model.SMSQueue, error)
	ReleaseExpired(ctx context.Context, threshold time.Time) (int64, error)
	FailExpired(ctx context.Context, threshold time.Time, maxAttempts int, errorMessage string) (int64, error)

	IncreaseAttemptCount(ctx context.Context, id int64, nextAttemptAt *time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status model.SMSQueueStatus, errorMessage *string) (bool, error)
	MarkSent(ctx context.Context, id int64, messageID string) (bool, error)

	CancelPendingByUserID(ctx context.Context, userID int64, reason *string) (int64, error)
	CancelPendingBySegmentID(ctx context.Context, segmentID int64, reason *string) (int64, error)
	CancelPendingByBatchID(ctx context.Context, batchID string, reason *string) (int64, error)

	DeleteOldEntries(ctx context.Context, olderThan time.Time, statuses ...model.SMSQueueStatus) (int64, error)
	SaveBatch(ctx context.Context, entries []*model.SMSQueue) error
}

type SMSQueue struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSMSQueueRepository(db *gorm.DB) SMSQueueRepository {
	return &SMSQueue{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *SMSQueue) Create(ctx context.Context, entry *model.SMSQueue) error {
	if entry.Status == "" {
		entry.Status = model.SMSQueueStatusPending
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}

	return GetTx(ctx, s.db).Create(entry).Error
}

func (s *SMSQueue) Update(ctx context.Context, entry *model.SMSQueue) error {
	db := GetTx(ctx, s.db)
	return db.Model(entry).Where("id = ?", entry.ID).Updates(entry).Error
}

func (s *SMSQueue) Delete(ctx context.Context, id int64) (bool, error) {
	result := GetTx(ctx, s.db).Where("id = ?", id).Delete(&model.SMSQueue{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (s *SMSQueue) GetByID(ctx context.Context, id int64) (*model.SMSQueue, error) {
	var entry model.SMSQueue

	err := GetTx(ctx, s.db).Where("id = ?", id).First(&entry).Error
	if err == nil {
		return &entry, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQueueEntryNotFound
	}

	return nil, err
}

func (s *SMSQueue) FindByBatchID(ctx context.Context, batchID string) ([]model.SMSQueue, error) {
	var entries []model.SMSQueue

	err := GetTx(ctx, s.db).Where("batch_id = ?", batchID).Order("id ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *SMSQueue) CountByStatus(ctx context.Context) (map[model.SMSQueueStatus]int64, error) {
	var rows []struct {
		Status model.SMSQueueStatus
		Count  int64
	}

	err := GetTx(ctx, s.db).Model(&model.SMSQueue{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.SMSQueueStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}

// FindNextBatch lists due rows in serving order. It does not claim them; pair it
// with Claim or use ClaimNextBatch.
func (s *SMSQueue) FindNextBatch(ctx context.Context, limit int, statuses ...model.SMSQueueStatus) ([]model.SMSQueue, error) {
	if limit <= 0 {
		return nil, nil
	}
	if len(statuses) == 0 {
		statuses = []model.SMSQueueStatus{model.SMSQueueStatusPending}
	}

	var entries []model.SMSQueue

	err := GetTx(ctx, s.db).
		Where("status IN ?", statuses).
		Where("next_attempt_at IS NULL OR next_attempt_at <= ?", s.now()).
		Order("priority DESC").
		Order("next_attempt_at ASC").
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Claim moves a due pending row to processing. It reports false when another
// worker won the row or the row is no longer claimable.
func (s *SMSQueue) Claim(ctx context.Context, id int64) (bool, error) {
	now := s.now()

	result := GetTx(ctx, s.db).Model(&model.SMSQueue{}).
		Where("id = ? AND status = ?", id, model.SMSQueueStatusPending).
		Where("next_attempt_at IS NULL OR next_attempt_at <= ?", now).
		Updates(map[string]any{
			"status":          model.SMSQueueStatusProcessing,
			"last_attempt_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (s *SMSQueue) ClaimNextBatch(ctx context.Context, limit int) ([]model.SMSQueue, error) {
	candidates, err := s.FindNextBatch(ctx, limit, model.SMSQueueStatusPending)
	if err != nil {
		return nil, err
	}

	claimed := make([]model.SMSQueue, 0, len(candidates))
	for _, candidate := range candidates {
		ok, err := s.Claim(ctx, candidate.ID)
		if err != nil {
			return claimed, err
		}
		if !ok {
			continue
		}

		now := s.now()
		candidate.Status = model.SMSQueueStatusProcessing
		candidate.LastAttemptAt = &now
		claimed = append(claimed, candidate)
	}

	return claimed, nil
}

func (s *SMSQueue) FindExpiredProcessing(ctx context.Context, threshold time.Time) ([]model.SMSQueue, error) {
	var entries []model.SMSQueue

	err := GetTx(ctx, s.db).
		Where("status = ? AND last_attempt_at < ?", model.SMSQueueStatusProcessing, threshold.UTC()).
		Order("last_attempt_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// ReleaseExpired hands processing rows claimed before threshold back to pending.
// The lost claim counts as an attempt.
func (s *SMSQueue) ReleaseExpired(ctx context.Context, threshold time.Time) (int64, error) {
	result := GetTx(ctx, s.db).Model(&model.SMSQueue{}).
		Where("status = ? AND last_attempt_at < ?", model.SMSQueueStatusProcessing, threshold.UTC()).
		Updates(map[string]any{
			"status":   model.SMSQueueStatusPending,
			"attempts": gorm.Expr("attempts + 1"),
		})

	return result.RowsAffected, result.Error
}

// FailExpired moves processing rows claimed before threshold to failed when the
// lost claim uses up their last attempt.
func (s *SMSQueue) FailExpired(ctx context.Context, threshold time.Time, maxAttempts int, errorMessage string) (int64, error) {
	result := GetTx(ctx, s.db).Model(&model.SMSQueue{}).
		Where("status = ? AND last_attempt_at < ? AND attempts + 1 >= ?",
			model.SMSQueueStatusProcessing, threshold.UTC(), maxAttempts).
		Updates(map[string]any{
			"status":        model.SMSQueueStatusFailed,
			"attempts":      gorm.Expr("attempts + 1"),
			"error_message": errorMessage,
		})

	return result.RowsAffected, result.Error
}

func (s *SMSQueue) IncreaseAttemptCount(ctx context.Context, id int64, nextAttemptAt *time.Time) (bool, error) {
	updates := map[string]any{
		"attempts":        gorm.Expr("attempts + 1"),
		"last_attempt_at": s.now(),
	}
	if nextAttemptAt != nil {
		updates["next_attempt_at"] = nextAttemptAt.UTC()
	}

	result := GetTx(ctx, s.db).Model(&model.SMSQueue{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (s *SMSQueue) UpdateStatus(ctx context.Context, id int64, status model.SMSQueueStatus, errorMessage *string) (bool, error) {
	updates := map[string]any{"status": status}
	if errorMessage != nil {
		updates["error_message"] = *errorMessage
	}

	result := GetTx(ctx, s.db).Model(&model.SMSQueue{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (s *SMSQueue) MarkSent(ctx context.Context, id int64, messageID string) (bool, error) {
	result := GetTx(ctx, s.db).Model(&model.SMSQueue{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        model.SMSQueueStatusSent,
			"message_id":    messageID,
			"error_message": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (s *SMSQueue) CancelPendingByUserID(ctx context.Context, userID int64, reason *string) (int64, error) {
	return s.cancelPending(ctx, "user_id", userID, reason)
}

func (s *SMSQueue) CancelPendingBySegmentID(ctx context.Context, segmentID int64, reason *string) (int64, error) {
	return s.cancelPending(ctx, "segment_id", segmentID, reason)
}

func (s *SMSQueue) CancelPendingByBatchID(ctx context.Context, batchID string, reason *string) (int64, error) {
	return s.cancelPending(ctx, "batch_id", batchID, reason)
}

// cancelPending only touches pending rows; claimed rows may still be sent.
func (s *SMSQueue) cancelPending(ctx context.Context, column string, key any, reason *string) (int64, error) {
	updates := map[string]any{"status": model.SMSQueueStatusCancelled}
	if reason != nil {
		updates["error_message"] = *reason
	}

	result := GetTx(ctx, s.db).Model(&model.SMSQueue{}).
		Where(column+" = ? AND status = ?", key, model.SMSQueueStatusPending).
		Updates(updates)

	return result.RowsAffected, result.Error
}

// DeleteOldEntries removes terminal rows created before olderThan. Non-terminal
// statuses in the filter are ignored.
func (s *SMSQueue) DeleteOldEntries(ctx context.Context, olderThan time.Time, statuses ...model.SMSQueueStatus) (int64, error) {
	if len(statuses) == 0 {
		statuses = model.TerminalSMSQueueStatuses
	}

	terminal := make([]model.SMSQueueStatus, 0, len(statuses))
	for _, status := range statuses {
		if status.IsTerminal() {
			terminal = append(terminal, status)
		}
	}
	if len(terminal) == 0 {
		return 0, nil
	}

	result := GetTx(ctx, s.db).
		Where("status IN ? AND created_at < ?", terminal, olderThan.UTC()).
		Delete(&model.SMSQueue{})

	return result.RowsAffected, result.Error
}

// SaveBatch persists every entry or none of them.
func (s *SMSQueue) SaveBatch(ctx context.Context, entries []*model.SMSQueue) error {
	if len(entries) == 0 {
		return nil
	}

	now := s.now()
	return GetTx(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			if entry.ID != 0 {
				if err := tx.Save(entry).Error; err != nil {
					return err
				}
				continue
			}

			if entry.Status == "" {
				entry.Status = model.SMSQueueStatusPending
			}
			if entry.CreatedAt.IsZero() {
				entry.CreatedAt = now
			}
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
