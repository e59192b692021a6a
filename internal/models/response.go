package models

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Message string `json:"message"`
}
