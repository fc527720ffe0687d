package service

import (
	"errors"
	"fmt"
)

var (
	ErrDatabase              = errors.New("DATABASE_ERROR")
	ErrQueueEntryNotFound    = errors.New("QUEUE_ENTRY_NOT_FOUND")
	ErrQueueEntryAlreadyDone = errors.New("QUEUE_ENTRY_ALREADY_DONE")
	ErrEmptyBatch            = errors.New("EMPTY_BATCH")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

// BatchItemError describes why one input of a batch was not processed.
type BatchItemError struct {
	Index  int    `json:"index"`
	Number string `json:"number"`
	Error  string `json:"error"`
}

// BatchProcessingError is returned when no item of a batch succeeded.
type BatchProcessingError struct {
	Errors []BatchItemError
}

func (e *BatchProcessingError) Error() string {
	return fmt.Sprintf("batch processing failed: no number processed, %d rejected", len(e.Errors))
}
