// Package error defines domain-specific errors for the P&L Tracker application.
package error

import "errors"

// Deal domain errors.
var (
	// ErrDealNotFound is returned when a deal is not found in the system.
	ErrDealNotFound = errors.New("deal not found")

	// ErrNotAuthorizedToModifyDeal is returned when the caller does not own the deal.
	ErrNotAuthorizedToModifyDeal = errors.New("not authorized to modify deal")

	// ErrMissingHouseAddress is returned when the house address is empty.
	ErrMissingHouseAddress = errors.New("house address is required")

	// ErrInvalidDealAmount is returned when the sale amount is negative.
	ErrInvalidDealAmount = errors.New("sale amount must not be negative")

	// ErrInvalidCommissionPercent is returned when the commission percent is outside [0,100].
	ErrInvalidCommissionPercent = errors.New("commission percent must be between 0 and 100")

	// ErrInvalidSplitPercent is returned when the split percent is outside [0,100].
	ErrInvalidSplitPercent = errors.New("split percent must be between 0 and 100")

	// ErrInvalidTeamSplitPercent is returned when the team/brokerage split percent is outside [0,100].
	ErrInvalidTeamSplitPercent = errors.New("team/brokerage split percent must be between 0 and 100")

	// ErrInvalidLeadSource is returned when the lead source is not a configured value.
	ErrInvalidLeadSource = errors.New("lead source is not a configured value")

	// ErrInvalidClosingDate is returned when the closing date is missing or malformed.
	ErrInvalidClosingDate = errors.New("invalid closing date")
)

// DealErrorCode defines error codes for deal errors.
// Format: DEAL-XXYYYY where XX is category and YYYY is specific error.
type DealErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingHouseAddress      DealErrorCode = "DEAL-010001"
	ErrCodeInvalidDealAmount        DealErrorCode = "DEAL-010002"
	ErrCodeInvalidCommissionPercent DealErrorCode = "DEAL-010003"
	ErrCodeInvalidSplitPercent      DealErrorCode = "DEAL-010004"
	ErrCodeInvalidTeamSplitPercent  DealErrorCode = "DEAL-010005"
	ErrCodeInvalidLeadSource        DealErrorCode = "DEAL-010006"
	ErrCodeInvalidClosingDate       DealErrorCode = "DEAL-010007"
	ErrCodeMissingDealFields        DealErrorCode = "DEAL-010008"

	// Lookup errors (02XXXX)
	ErrCodeDealNotFound      DealErrorCode = "DEAL-020001"
	ErrCodeNotAuthorizedDeal DealErrorCode = "DEAL-020002"
)

// DealError represents a deal error with code and message.
type DealError struct {
	Code    DealErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DealError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DealError) Unwrap() error {
	return e.Err
}

// NewDealError creates a new DealError with the given code and message.
func NewDealError(code DealErrorCode, message string, err error) *DealError {
	return &DealError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
