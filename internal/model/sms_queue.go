package model

import "time"

type SMSQueueStatus string

const (
	SMSQueueStatusPending    SMSQueueStatus = "pending"
	SMSQueueStatusProcessing SMSQueueStatus = "processing"
	SMSQueueStatusSent       SMSQueueStatus = "sent"
	SMSQueueStatusFailed     SMSQueueStatus = "failed"
	SMSQueueStatusCancelled  SMSQueueStatus = "cancelled"
)

// TerminalSMSQueueStatuses are the statuses a queue row never leaves.
var TerminalSMSQueueStatuses = []SMSQueueStatus{
	SMSQueueStatusSent,
	SMSQueueStatusFailed,
	SMSQueueStatusCancelled,
}

func (s SMSQueueStatus) IsTerminal() bool {
	for _, status := range TerminalSMSQueueStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type SMSQueue struct {
	ID            int64          `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	PhoneNumber   string         `gorm:"column:phone_number;size:20"`
	Message       string         `gorm:"column:message;type:text"`
	UserID        *int64         `gorm:"column:user_id;index:idx_sms_queue_user"`
	SegmentID     *int64         `gorm:"column:segment_id;index:idx_sms_queue_segment"`
	BatchID       *string        `gorm:"column:batch_id;size:64;index:idx_sms_queue_batch"`
	Status        SMSQueueStatus `gorm:"column:status;size:16;index:idx_sms_queue_status_next,priority:1"`
	Priority      int            `gorm:"column:priority;default:0"`
	Attempts      int            `gorm:"column:attempts;default:0"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	LastAttemptAt *time.Time     `gorm:"column:last_attempt_at"`
	NextAttemptAt *time.Time     `gorm:"column:next_attempt_at;index:idx_sms_queue_status_next,priority:2"`
	ErrorMessage  *string        `gorm:"column:error_message;type:text"`
	MessageID     *string        `gorm:"column:message_id;size:100"`
	SenderName    *string        `gorm:"column:sender_name;size:50"`
	SenderAddress *string        `gorm:"column:sender_address;size:50"`
}

func (SMSQueue) TableName() string {
	return "sms_queue"
}
