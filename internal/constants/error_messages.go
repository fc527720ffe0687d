package constants

const (
	ErrCodePhoneNumberNotFound   = "PHONE_NUMBER_NOT_FOUND"
	ErrCodeInvalidPhoneNumber    = "INVALID_PHONE_NUMBER"
	ErrCodeDuplicatePhoneNumber  = "DUPLICATE_PHONE_NUMBER"
	ErrCodeCustomSegmentNotFound = "CUSTOM_SEGMENT_NOT_FOUND"
	ErrCodeCustomSegmentExists   = "CUSTOM_SEGMENT_EXISTS"
	ErrCodeInvalidPattern        = "INVALID_PATTERN"
	ErrCodeQueueEntryNotFound    = "QUEUE_ENTRY_NOT_FOUND"
	ErrCodeBatchProcessingFailed = "BATCH_PROCESSING_FAILED"
	ErrCodeEmptyBatch            = "EMPTY_BATCH"
	ErrCodeDatabase              = "DATABASE_ERROR"
	ErrCodeInternalError         = "INTERNAL_ERROR"
	ErrCodeInvalidRequestBody    = "INVALID_REQUEST_BODY"
	ErrCodeValidationFailed      = "VALIDATION_FAILED"
)

const (
	ErrMsgPhoneNumberNotFound   = "phone number not found"
	ErrMsgInvalidPhoneNumber    = "invalid phone number"
	ErrMsgDuplicatePhoneNumber  = "phone number already exists"
	ErrMsgCustomSegmentNotFound = "custom segment not found"
	ErrMsgCustomSegmentExists   = "custom segment already exists"
	ErrMsgInvalidPattern        = "pattern is not a valid regular expression"
	ErrMsgQueueEntryNotFound    = "queue entry not found"
	ErrMsgBatchProcessingFailed = "no phone number in the batch could be processed"
	ErrMsgEmptyBatch            = "batch is empty"
	ErrMsgDatabase              = "database error"
	ErrMsgInternalError         = "Internal server error"
	ErrMsgInvalidRequestBody    = "failed to parse request body"
	ErrMsgValidationFailed      = "The '%s' format is invalid"
)

// Success messages.
const (
	MsgPhoneNumbersProcessed  = "phone numbers processed"
	MsgPhoneNumbersAnalyzed   = "phone numbers analyzed"
	MsgCustomSegmentsAssigned = "custom segments assigned"
	MsgCustomSegmentCreated   = "custom segment created"
	MsgCustomSegmentUpdated   = "custom segment updated"
	MsgCustomSegmentDeleted   = "custom segment deleted"
	MsgCustomSegmentsListed   = "custom segments retrieved"
	MsgSMSEnqueued            = "SMS enqueued"
	MsgSMSCancelled           = "pending SMS cancelled"
	MsgQueueStats             = "queue statistics retrieved"
)

// Per-item messages reported by batch segmentation.
const (
	BatchMsgInvalidFormat   = "Format de numéro invalide ou vide."
	BatchMsgDuplicateFormat = "Numéro déjà existant: %s"
)

var errorMessages = map[string]string{
	ErrCodePhoneNumberNotFound:   ErrMsgPhoneNumberNotFound,
	ErrCodeInvalidPhoneNumber:    ErrMsgInvalidPhoneNumber,
	ErrCodeDuplicatePhoneNumber:  ErrMsgDuplicatePhoneNumber,
	ErrCodeCustomSegmentNotFound: ErrMsgCustomSegmentNotFound,
	ErrCodeCustomSegmentExists:   ErrMsgCustomSegmentExists,
	ErrCodeInvalidPattern:        ErrMsgInvalidPattern,
	ErrCodeQueueEntryNotFound:    ErrMsgQueueEntryNotFound,
	ErrCodeBatchProcessingFailed: ErrMsgBatchProcessingFailed,
	ErrCodeEmptyBatch:            ErrMsgEmptyBatch,
	ErrCodeDatabase:              ErrMsgDatabase,
	ErrCodeInternalError:         ErrMsgInternalError,
	ErrCodeInvalidRequestBody:    ErrMsgInvalidRequestBody,
	ErrCodeValidationFailed:      "request validation failed",
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody, ErrCodeInvalidPattern, ErrCodeEmptyBatch:
		return 400
	case ErrCodePhoneNumberNotFound, ErrCodeCustomSegmentNotFound, ErrCodeQueueEntryNotFound:
		return 404
	case ErrCodeDuplicatePhoneNumber, ErrCodeCustomSegmentExists:
		return 409
	case ErrCodeInvalidPhoneNumber, ErrCodeBatchProcessingFailed, ErrCodeValidationFailed:
		return 422
	default:
		return 500
	}
}
