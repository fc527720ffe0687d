package v1

import "time"

type PhoneNumbersRequest struct {
	PhoneNumbers []string `json:"phone_numbers" validate:"required,min=1,max=1000"`
}

type CustomSegmentRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Pattern     *string `json:"pattern" validate:"omitempty,max=255,regex_pattern"`
}

type EnqueueSMSRequest struct {
	PhoneNumber   string     `json:"phone_number" validate:"required,msisdn"`
	Message       string     `json:"message" validate:"required,max=1600"`
	UserID        *int64     `json:"user_id" validate:"omitempty,min=1"`
	Priority      int        `json:"priority" validate:"min=0,max=10"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
	SenderName    *string    `json:"sender_name" validate:"omitempty,max=50"`
	SenderAddress *string    `json:"sender_address" validate:"omitempty,max=50"`
}

type EnqueueBatchRequest struct {
	PhoneNumbers  []string   `json:"phone_numbers" validate:"required,min=1,max=10000"`
	Message       string     `json:"message" validate:"required,max=1600"`
	UserID        *int64     `json:"user_id" validate:"omitempty,min=1"`
	Priority      int        `json:"priority" validate:"min=0,max=10"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
	SenderName    *string    `json:"sender_name" validate:"omitempty,max=50"`
	SenderAddress *string    `json:"sender_address" validate:"omitempty,max=50"`
}

type EnqueueSegmentRequest struct {
	Message       string     `json:"message" validate:"required,max=1600"`
	UserID        *int64     `json:"user_id" validate:"omitempty,min=1"`
	Priority      int        `json:"priority" validate:"min=0,max=10"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
	SenderName    *string    `json:"sender_name" validate:"omitempty,max=50"`
	SenderAddress *string    `json:"sender_address" validate:"omitempty,max=50"`
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"max=255"`
}
