package service

import "time"

type CreateCustomSegmentCommand struct {
	Name        string
	Description *string
	Pattern     *string
}

type UpdateCustomSegmentCommand struct {
	ID          int64
	Name        string
	Description *string
	Pattern     *string
}

type EnqueueSMSCommand struct {
	PhoneNumber   string
	Message       string
	UserID        *int64
	SegmentID     *int64
	BatchID       *string
	Priority      int
	ScheduledAt   *time.Time
	SenderName    *string
	SenderAddress *string
}

type EnqueueBatchCommand struct {
	PhoneNumbers  []string
	Message       string
	UserID        *int64
	Priority      int
	ScheduledAt   *time.Time
	SenderName    *string
	SenderAddress *string
}

type EnqueueSegmentCommand struct {
	CustomSegmentID int64
	Message         string
	UserID          *int64
	Priority        int
	ScheduledAt     *time.Time
	SenderName      *string
	SenderAddress   *string
}

// SendSMSCommand is the body published on the send queue for one claimed row.
type SendSMSCommand struct {
	QueueID     int64  `json:"queue_id"`
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
	SenderName  string `json:"sender_name"`
	Attempts    int    `json:"attempts"`
}
