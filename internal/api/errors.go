package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// ErrorResponse is the error envelope returned by every operation
type ErrorResponse struct {
	status  int
	Success bool     `json:"success" doc:"Always false"`
	Message string   `json:"error" doc:"Human-readable error message"`
	Details []string `json:"details,omitempty" doc:"Validation failures or underlying causes"`
}

// Error satisfies the error interface
func (e *ErrorResponse) Error() string {
	return e.Message
}

// GetStatus returns the HTTP status code of the error
func (e *ErrorResponse) GetStatus() int {
	return e.status
}

// ContentType keeps the envelope as plain JSON instead of problem+json
func (e *ErrorResponse) ContentType(ct string) string {
	if ct == "application/problem+json" {
		return "application/json"
	}
	return ct
}

// NewError builds an ErrorResponse. Causes of 5xx errors are logged by the
// handlers and never sent to the client.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	resp := &ErrorResponse{status: status, Message: msg}
	if status < http.StatusInternalServerError {
		for _, err := range errs {
			if err == nil {
				continue
			}
			var detail *huma.ErrorDetail
			if errors.As(err, &detail) {
				resp.Details = append(resp.Details, detail.Error())
				continue
			}
			resp.Details = append(resp.Details, err.Error())
		}
	}
	return resp
}

// UseEnvelopeErrors makes huma produce ErrorResponse for every error,
// including request validation failures.
func UseEnvelopeErrors() {
	huma.NewError = NewError
}
