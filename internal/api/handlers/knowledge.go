package handlers

import (
	"context"
	"errors"

	"github.com/RMahshie/rfdesk/internal/content"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/danielgtaylor/huma/v2"
)

// KnowledgeHandler serves the markdown knowledge base
type KnowledgeHandler struct {
	library *content.Library
}

// NewKnowledgeHandler creates a new knowledge handler
func NewKnowledgeHandler(library *content.Library) *KnowledgeHandler {
	return &KnowledgeHandler{library: library}
}

// ListKnowledge returns page summaries and the navigation sections
func (h *KnowledgeHandler) ListKnowledge(ctx context.Context, req *models.ListKnowledgeRequest) (*models.KnowledgeListResponse, error) {
	resp := &models.KnowledgeListResponse{}
	resp.Body.Success = true
	resp.Body.Data = h.library.List(req.Category)
	resp.Body.Sections = h.library.Sections()
	return resp, nil
}

// GetKnowledge returns a rendered page
func (h *KnowledgeHandler) GetKnowledge(ctx context.Context, req *models.GetKnowledgeRequest) (*models.KnowledgeResponse, error) {
	page, err := h.library.Get(req.Slug)
	if errors.Is(err, content.ErrNotFound) {
		return nil, huma.Error404NotFound("Knowledge page not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load knowledge page")
	}

	resp := &models.KnowledgeResponse{}
	resp.Body.Success = true
	resp.Body.Data = page
	return resp, nil
}

// Search finds knowledge pages mentioning the query
func (h *KnowledgeHandler) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	resp := &models.SearchResponse{}
	resp.Body.Success = true
	resp.Body.Query = req.Q
	resp.Body.Data = h.library.Search(req.Q)
	return resp, nil
}
