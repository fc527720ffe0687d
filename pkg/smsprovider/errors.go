package smsprovider

import "errors"

const (
	ErrorCodeServerError   = "SERVER_ERROR"
	ErrorCodeTimeout       = "TIMEOUT"
	ErrorCodeInvalidNumber = "INVALID_NUMBER"
	ErrorCodeNetworkError  = "NETWORK_ERROR"
)

var (
	ErrServerError   = errors.New(ErrorCodeServerError)
	ErrTimeout       = errors.New(ErrorCodeTimeout)
	ErrInvalidNumber = errors.New(ErrorCodeInvalidNumber)
	ErrNetworkError  = errors.New(ErrorCodeNetworkError)
)

// IsPermanent reports whether retrying the same request can never succeed.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrInvalidNumber)
}
