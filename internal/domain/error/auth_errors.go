package error

import "errors"

// Authentication and entitlement domain errors. Token issuance lives in an
// external identity service; this application only validates tokens and the
// plan entitlement they carry.
var (
	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrInsufficientPlan is returned when the caller's plan does not include
	// the P&L Tracker feature. Distinct from an auth failure so clients can
	// render an upgrade prompt instead of a login prompt.
	ErrInsufficientPlan = errors.New("plan does not include this feature")
)

// AuthErrorCode defines error codes for authentication and entitlement errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Token errors (01XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-010001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-010002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-010003"

	// Entitlement errors (02XXXX)
	ErrCodeInsufficientPlan AuthErrorCode = "AUTH-020001"

	// Throttling (03XXXX)
	ErrCodeRateLimited AuthErrorCode = "AUTH-030001"
)

// AuthError represents an authentication or entitlement error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
