package v1

import (
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
)

type SegmentResponse struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type PhoneNumberResponse struct {
	ID       int64             `json:"id"`
	Number   string            `json:"number"`
	Segments []SegmentResponse `json:"segments"`
}

type BatchItemResponse struct {
	Index                  int `json:"index"`
	CustomSegmentsAssigned int `json:"custom_segments_assigned"`
	PhoneNumberResponse
}

type ProcessBatchResponse struct {
	Processed []BatchItemResponse      `json:"processed"`
	Errors    []service.BatchItemError `json:"errors"`
}

type AutoAssignResponse struct {
	PhoneNumberID int64 `json:"phone_number_id"`
	Assigned      int   `json:"assigned"`
}

type CustomSegmentResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Pattern     *string   `json:"pattern,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type SMSResponse struct {
	ID            int64      `json:"id"`
	PhoneNumber   string     `json:"phone_number"`
	Status        string     `json:"status"`
	Priority      int        `json:"priority"`
	BatchID       *string    `json:"batch_id,omitempty"`
	NextAttemptAt *time.Time `json:"next_attempt_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type CancelResponse struct {
	Cancelled int64 `json:"cancelled"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func newPhoneNumberResponse(phone *model.PhoneNumber) PhoneNumberResponse {
	segments := make([]SegmentResponse, 0, len(phone.Segments))
	for _, segment := range phone.Segments {
		segments = append(segments, SegmentResponse{Type: string(segment.SegmentType), Value: segment.Value})
	}

	return PhoneNumberResponse{ID: phone.ID, Number: phone.Number, Segments: segments}
}

func newCustomSegmentResponse(segment *model.CustomSegment) CustomSegmentResponse {
	return CustomSegmentResponse{
		ID:          segment.ID,
		Name:        segment.Name,
		Description: segment.Description,
		Pattern:     segment.Pattern,
		CreatedAt:   segment.CreatedAt,
	}
}

func newSMSResponse(entry *model.SMSQueue) SMSResponse {
	return SMSResponse{
		ID:            entry.ID,
		PhoneNumber:   entry.PhoneNumber,
		Status:        string(entry.Status),
		Priority:      entry.Priority,
		BatchID:       entry.BatchID,
		NextAttemptAt: entry.NextAttemptAt,
		CreatedAt:     entry.CreatedAt,
	}
}
