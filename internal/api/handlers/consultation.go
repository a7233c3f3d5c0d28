package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/RMahshie/rfdesk/internal/repository"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var consultationStatuses = map[string]bool{
	models.ConsultationPending:   true,
	models.ConsultationConfirmed: true,
	models.ConsultationCompleted: true,
	models.ConsultationCancelled: true,
}

// ConsultationHandler handles consultation bookings
type ConsultationHandler struct {
	repo repository.ConsultationRepository
}

// NewConsultationHandler creates a new consultation handler
func NewConsultationHandler(repo repository.ConsultationRepository) *ConsultationHandler {
	return &ConsultationHandler{repo: repo}
}

// CreateConsultation books a consultation, creating the user on first contact
func (h *ConsultationHandler) CreateConsultation(ctx context.Context, req *models.CreateConsultationRequest) (*models.ConsultationResponse, error) {
	in := req.Body
	consultation := &models.Consultation{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:         strings.TrimSpace(in.Phone),
		Topic:         in.Topic,
		Description:   in.Description,
		PreferredTime: in.PreferredTime,
		Status:        models.ConsultationPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.repo.Create(ctx, consultation); err != nil {
		return nil, storeError(err, "Consultation")
	}
	log.Info().
		Str("consultationID", consultation.ID).
		Str("userID", consultation.UserID).
		Str("topic", consultation.Topic).
		Msg("Consultation booked")

	return models.NewConsultationResponse(consultation), nil
}

// ListConsultations returns consultations newest first
func (h *ConsultationHandler) ListConsultations(ctx context.Context, req *models.ListConsultationsRequest) (*models.ConsultationListResponse, error) {
	if req.Status != "" && !consultationStatuses[req.Status] {
		return nil, huma.Error400BadRequest("Unknown consultation status: " + req.Status)
	}

	consultations, err := h.repo.List(ctx, req.Status, req.Skip, req.Limit)
	if err != nil {
		return nil, storeError(err, "consultations")
	}

	resp := &models.ConsultationListResponse{}
	resp.Body.Success = true
	resp.Body.Data = consultations
	return resp, nil
}

// GetConsultation returns a consultation by ID
func (h *ConsultationHandler) GetConsultation(ctx context.Context, req *models.GetConsultationRequest) (*models.ConsultationResponse, error) {
	id, err := parseID(req.ID, "consultation")
	if err != nil {
		return nil, err
	}

	consultation, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Consultation")
	}
	return models.NewConsultationResponse(consultation), nil
}

// UpdateConsultationStatus moves a consultation to a new status
func (h *ConsultationHandler) UpdateConsultationStatus(ctx context.Context, req *models.UpdateConsultationStatusRequest) (*models.ConsultationResponse, error) {
	id, err := parseID(req.ID, "consultation")
	if err != nil {
		return nil, err
	}
	if !consultationStatuses[req.Body.Status] {
		return nil, huma.Error400BadRequest("Unknown consultation status: " + req.Body.Status)
	}

	consultation, err := h.repo.UpdateStatus(ctx, id, req.Body.Status)
	if err != nil {
		return nil, storeError(err, "Consultation")
	}
	log.Info().Str("consultationID", consultation.ID).Str("status", consultation.Status).Msg("Consultation status updated")

	return models.NewConsultationResponse(consultation), nil
}
