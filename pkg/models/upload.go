package models

import "time"

// CreateUploadRequest asks for a presigned upload URL
type CreateUploadRequest struct {
	Body struct {
		FileName    string `json:"file_name" minLength:"1" maxLength:"255" required:"true" doc:"Original file name"`
		ContentType string `json:"content_type" required:"true" doc:"MIME type of the file"`
		Folder      string `json:"folder,omitempty" default:"uploads" pattern:"^[a-z0-9-]+$" doc:"Destination folder"`
	}
}

// UploadTicket is a presigned upload target
type UploadTicket struct {
	Key       string    `json:"key" doc:"Object key the file will be stored under"`
	UploadURL string    `json:"upload_url" doc:"Presigned PUT URL"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UploadTicketResponse wraps an upload ticket
type UploadTicketResponse struct {
	Body struct {
		Success bool          `json:"success"`
		Data    *UploadTicket `json:"data"`
	}
}

// FileInfo describes a stored object
type FileInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	URL          string    `json:"url,omitempty" doc:"Presigned download URL"`
}

// ListUploadsRequest lists stored objects under a prefix
type ListUploadsRequest struct {
	Prefix string `query:"prefix" doc:"Key prefix, e.g. 'uploads/'"`
}

// UploadListResponse wraps a list of stored objects
type UploadListResponse struct {
	Body struct {
		Success bool       `json:"success"`
		Data    []FileInfo `json:"data"`
	}
}

// DeleteUploadRequest deletes a stored object by key
type DeleteUploadRequest struct {
	Key string `query:"key" minLength:"1" required:"true" doc:"Object key"`
}
