package service

import "github.com/Behyna/sms-services/smscampaign/internal/model"

// BatchResult holds the per-index outcome of a persisted segmentation batch.
// CustomSegments counts the custom segments newly assigned per phone number id.
type BatchResult struct {
	Results        map[int]*model.PhoneNumber
	Errors         []BatchItemError
	CustomSegments map[int64]int
}

type EnqueueBatchResponse struct {
	BatchID  string           `json:"batch_id"`
	Enqueued int              `json:"enqueued"`
	Rejected []BatchItemError `json:"rejected"`
}

type AnalyzedNumber struct {
	Index            int    `json:"index"`
	Number           string `json:"number"`
	CountryCode      string `json:"country_code"`
	OperatorCode     string `json:"operator_code"`
	SubscriberNumber string `json:"subscriber_number"`
	Operator         string `json:"operator"`
}

type SegmentationSummary struct {
	Total      int              `json:"total"`
	Valid      int              `json:"valid"`
	Invalid    int              `json:"invalid"`
	Numbers    []AnalyzedNumber `json:"numbers"`
	Errors     []BatchItemError `json:"errors"`
	ByOperator map[string]int   `json:"by_operator"`
}
