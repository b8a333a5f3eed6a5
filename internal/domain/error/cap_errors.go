package error

import "errors"

// Commission cap domain errors.
var (
	// ErrCapPeriodLocked is returned when a concurrent modification holds the
	// replay lock for the same agent and cap period. The operation is safe to
	// retry; a retried replay is idempotent over the then-current record set.
	ErrCapPeriodLocked = errors.New("cap period is being recomputed by a concurrent operation")

	// ErrInvalidTotalCap is returned when the configured cap target is not positive.
	ErrInvalidTotalCap = errors.New("total cap must be greater than zero")

	// ErrInvalidCapYear is returned when the cap period year is malformed.
	ErrInvalidCapYear = errors.New("invalid cap period year")

	// ErrCapConfigNotFound is returned when no cap configuration exists for the period.
	ErrCapConfigNotFound = errors.New("cap configuration not found")
)

// CapErrorCode defines error codes for commission cap errors.
// Format: CAP-XXYYYY where XX is category and YYYY is specific error.
type CapErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTotalCap CapErrorCode = "CAP-010001"
	ErrCodeInvalidCapYear  CapErrorCode = "CAP-010002"

	// Recomputation errors (02XXXX)
	ErrCodeCapPeriodLocked CapErrorCode = "CAP-020001"

	// Lookup errors (03XXXX)
	ErrCodeCapConfigNotFound CapErrorCode = "CAP-030001"
)

// CapError represents a commission cap error with code and message.
// Retryable marks conflicts the caller should retry as-is.
type CapError struct {
	Code      CapErrorCode
	Message   string
	Retryable bool
	Err       error
}

// Error implements the error interface.
func (e *CapError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CapError) Unwrap() error {
	return e.Err
}

// NewCapError creates a new CapError with the given code and message.
func NewCapError(code CapErrorCode, message string, retryable bool, err error) *CapError {
	return &CapError{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Err:       err,
	}
}
