package error

import "errors"

// Monthly summary domain errors.
var (
	// ErrInvalidMonth is returned when the month parameter is not YYYY-MM.
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")
)

// SummaryErrorCode defines error codes for summary errors.
type SummaryErrorCode string

const (
	ErrCodeInvalidMonth SummaryErrorCode = "SUM-010001"
)

// SummaryError represents a summary error with code and message.
type SummaryError struct {
	Code    SummaryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SummaryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SummaryError) Unwrap() error {
	return e.Err
}

// NewSummaryError creates a new SummaryError with the given code and message.
func NewSummaryError(code SummaryErrorCode, message string, err error) *SummaryError {
	return &SummaryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
