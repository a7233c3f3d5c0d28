package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// DeleteResult reports the outcome of a delete operation
type DeleteResult struct {
	ID      string `json:"id" doc:"Identifier of the deleted resource"`
	Deleted bool   `json:"deleted" doc:"Whether a resource was removed"`
}

// DeleteResponse wraps a DeleteResult in the success envelope
type DeleteResponse struct {
	Body struct {
		Success bool         `json:"success"`
		Data    DeleteResult `json:"data"`
	}
}

// NewDeleteResponse builds a successful DeleteResponse
func NewDeleteResponse(id string) *DeleteResponse {
	resp := &DeleteResponse{}
	resp.Body.Success = true
	resp.Body.Data = DeleteResult{ID: id, Deleted: true}
	return resp
}
