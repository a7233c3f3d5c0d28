package models

import (
	"time"

	"github.com/RMahshie/rfdesk/pkg/touchstone"
)

// Dataset processing statuses
const (
	DatasetPending    = "pending"
	DatasetProcessing = "processing"
	DatasetCompleted  = "completed"
	DatasetFailed     = "failed"
)

// Dataset is an uploaded touchstone file tracked through processing
type Dataset struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	FileName     string     `json:"file_name"`
	FileSize     int64      `json:"file_size"`
	S3Key        string     `json:"s3_key"`
	Status       string     `json:"status" enum:"pending,processing,completed,failed"`
	Progress     int        `json:"progress"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// DatasetResults is the stored outcome of processing a dataset
type DatasetResults struct {
	Document  *touchstone.Document `json:"document"`
	Summary   touchstone.Summary   `json:"summary"`
	CreatedAt time.Time            `json:"created_at"`
}

// CreateDatasetRequest registers a new dataset and returns an upload URL
type CreateDatasetRequest struct {
	Body struct {
		Name     string `json:"name" minLength:"1" maxLength:"255" required:"true" doc:"Display name of the measurement"`
		FileName string `json:"file_name" minLength:"1" maxLength:"255" required:"true" doc:"Touchstone file name, must end in .s1p or .s2p"`
		FileSize int64  `json:"file_size" minimum:"1" required:"true" doc:"File size in bytes"`
	}
}

// CreateDatasetResponse carries the new dataset and its presigned upload URL
type CreateDatasetResponse struct {
	Body struct {
		Success bool          `json:"success"`
		Data    *Dataset      `json:"data"`
		Upload  *UploadTicket `json:"upload"`
	}
}

// DatasetIDRequest addresses a dataset by ID
type DatasetIDRequest struct {
	ID string `path:"id" doc:"Dataset ID"`
}

// ProcessDatasetResponse acknowledges that processing has started
type ProcessDatasetResponse struct {
	Body struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
		Status  string `json:"status"`
		Message string `json:"message"`
	}
}

// DatasetStatusResponse reports processing progress
type DatasetStatusResponse struct {
	Body struct {
		Success  bool    `json:"success"`
		ID       string  `json:"id"`
		Status   string  `json:"status"`
		Progress int     `json:"progress"`
		Message  string  `json:"message"`
		Error    *string `json:"error,omitempty"`
	}
}

// DatasetResultsResponse wraps processed results
type DatasetResultsResponse struct {
	Body struct {
		Success bool            `json:"success"`
		Data    *DatasetResults `json:"data"`
	}
}
