// Package dto defines request and response data transfer objects for the API.
package dto

// ErrorResponse represents an error response returned by the API. Retryable
// is set on conflicts the client should retry as-is.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}
