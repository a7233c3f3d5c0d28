package handlers

import (
	"context"
	"time"

	"github.com/RMahshie/rfdesk/internal/repository"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ArticleHandler handles article-related HTTP requests
type ArticleHandler struct {
	repo repository.ArticleRepository
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(repo repository.ArticleRepository) *ArticleHandler {
	return &ArticleHandler{repo: repo}
}

// ListArticles returns articles newest first
func (h *ArticleHandler) ListArticles(ctx context.Context, req *models.ListArticlesRequest) (*models.ArticleListResponse, error) {
	articles, err := h.repo.List(ctx, models.ArticleFilter{
		Category: req.Category,
		Search:   req.Search,
		Skip:     req.Skip,
		Limit:    req.Limit,
	})
	if err != nil {
		return nil, storeError(err, "articles")
	}

	resp := &models.ArticleListResponse{}
	resp.Body.Success = true
	resp.Body.Data = articles
	return resp, nil
}

// GetArticle returns an article by slug
func (h *ArticleHandler) GetArticle(ctx context.Context, req *models.GetArticleRequest) (*models.ArticleResponse, error) {
	article, err := h.repo.GetBySlug(ctx, req.Slug)
	if err != nil {
		return nil, storeError(err, "Article")
	}
	return models.NewArticleResponse(article), nil
}

// CreateArticle stores a new article; slugs are unique
func (h *ArticleHandler) CreateArticle(ctx context.Context, req *models.CreateArticleRequest) (*models.ArticleResponse, error) {
	in := req.Body
	if !in.IsPaid && in.Price != 0 {
		return nil, huma.Error400BadRequest("Free articles cannot have a price")
	}

	now := time.Now().UTC()
	article := &models.Article{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Slug:      in.Slug,
		Excerpt:   in.Excerpt,
		Content:   in.Content,
		Category:  in.Category,
		IsPaid:    in.IsPaid,
		Price:     in.Price,
		ReadTime:  in.ReadTime,
		Author:    in.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repo.Create(ctx, article); err != nil {
		return nil, storeError(err, "Article")
	}
	log.Info().Str("articleID", article.ID).Str("slug", article.Slug).Msg("Article created")

	return models.NewArticleResponse(article), nil
}

// UpdateArticle applies a partial update
func (h *ArticleHandler) UpdateArticle(ctx context.Context, req *models.UpdateArticleRequest) (*models.ArticleResponse, error) {
	id, err := parseID(req.ID, "article")
	if err != nil {
		return nil, err
	}

	article, err := h.repo.Update(ctx, id, req.Body)
	if err != nil {
		return nil, storeError(err, "Article")
	}
	log.Info().Str("articleID", article.ID).Msg("Article updated")

	return models.NewArticleResponse(article), nil
}

// DeleteArticle removes an article
func (h *ArticleHandler) DeleteArticle(ctx context.Context, req *models.DeleteArticleRequest) (*models.DeleteResponse, error) {
	id, err := parseID(req.ID, "article")
	if err != nil {
		return nil, err
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		return nil, storeError(err, "Article")
	}
	log.Info().Str("articleID", req.ID).Msg("Article deleted")

	return models.NewDeleteResponse(req.ID), nil
}
