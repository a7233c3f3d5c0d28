package models

import "time"

// Consultation statuses
const (
	ConsultationPending   = "pending"
	ConsultationConfirmed = "confirmed"
	ConsultationCompleted = "completed"
	ConsultationCancelled = "cancelled"
)

// User is a site visitor identified by email
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Consultation represents a booked consultation
type Consultation struct {
	ID            string    `json:"id" doc:"Consultation unique identifier"`
	UserID        string    `json:"user_id" doc:"Requesting user"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Topic         string    `json:"topic"`
	Description   string    `json:"description"`
	PreferredTime *string   `json:"preferred_time,omitempty"`
	Status        string    `json:"status" enum:"pending,confirmed,completed,cancelled"`
	CreatedAt     time.Time `json:"created_at"`
}

// ConsultationInput is the booking form
type ConsultationInput struct {
	Name          string  `json:"name" minLength:"1" maxLength:"128" required:"true" doc:"Contact name"`
	Email         string  `json:"email" format:"email" maxLength:"255" required:"true" doc:"Contact email"`
	Phone         string  `json:"phone" minLength:"1" maxLength:"20" required:"true" doc:"Contact phone"`
	Topic         string  `json:"topic" minLength:"1" maxLength:"50" required:"true" doc:"Consultation topic, e.g. 'matching-network'"`
	Description   string  `json:"description" minLength:"1" maxLength:"5000" required:"true" doc:"Problem description"`
	PreferredTime *string `json:"preferred_time,omitempty" maxLength:"100" doc:"Preferred time slot"`
}

// CreateConsultationRequest represents a consultation booking
type CreateConsultationRequest struct {
	Body ConsultationInput
}

// ListConsultationsRequest represents a consultation listing request
type ListConsultationsRequest struct {
	Status string `query:"status" doc:"Only return consultations with this status"`
	Skip   int    `query:"skip" minimum:"0" default:"0"`
	Limit  int    `query:"limit" minimum:"1" maximum:"100" default:"100"`
}

// GetConsultationRequest looks a consultation up by ID
type GetConsultationRequest struct {
	ID string `path:"id" doc:"Consultation ID"`
}

// UpdateConsultationStatusRequest moves a consultation to a new status
type UpdateConsultationStatusRequest struct {
	ID   string `path:"id" doc:"Consultation ID"`
	Body struct {
		Status string `json:"status" enum:"pending,confirmed,completed,cancelled" required:"true"`
	}
}

// ConsultationResponse wraps a single consultation
type ConsultationResponse struct {
	Body struct {
		Success bool          `json:"success"`
		Data    *Consultation `json:"data"`
	}
}

// NewConsultationResponse builds a successful ConsultationResponse
func NewConsultationResponse(c *Consultation) *ConsultationResponse {
	resp := &ConsultationResponse{}
	resp.Body.Success = true
	resp.Body.Data = c
	return resp
}

// ConsultationListResponse wraps a list of consultations
type ConsultationListResponse struct {
	Body struct {
		Success bool           `json:"success"`
		Data    []Consultation `json:"data"`
	}
}
