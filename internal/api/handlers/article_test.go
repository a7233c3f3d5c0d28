package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/RMahshie/rfdesk/internal/repository"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleArticleInput() models.ArticleInput {
	return models.ArticleInput{
		Title:    "Designing Pi Attenuators",
		Slug:     "designing-pi-attenuators",
		Excerpt:  "Resistor values for matched pads",
		Content:  "# Pads\n\nBody",
		Category: "fundamentals",
		ReadTime: "6 min",
		Author:   "RF Engineer",
	}
}

func TestListArticles(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	h := NewArticleHandler(mockRepo)

	filter := models.ArticleFilter{Category: "fundamentals", Search: "pad", Skip: 0, Limit: 10}
	mockRepo.On("List", mock.Anything, filter).Return([]models.Article{{ID: "a1", Slug: "pads"}}, nil)

	resp, err := h.ListArticles(context.Background(), &models.ListArticlesRequest{
		Category: "fundamentals", Search: "pad", Skip: 0, Limit: 10,
	})
	require.NoError(t, err)
	assert.True(t, resp.Body.Success)
	require.Len(t, resp.Body.Data, 1)
	assert.Equal(t, "pads", resp.Body.Data[0].Slug)
	mockRepo.AssertExpectations(t)
}

func TestListArticlesStoreFailure(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	h := NewArticleHandler(mockRepo)

	mockRepo.On("List", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("connection refused"))

	_, err := h.ListArticles(context.Background(), &models.ListArticlesRequest{Limit: 100})
	requireStatus(t, err, http.StatusInternalServerError)
}

func TestGetArticle(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	h := NewArticleHandler(mockRepo)

	mockRepo.On("GetBySlug", mock.Anything, "smith-chart").Return(&models.Article{Slug: "smith-chart"}, nil)
	mockRepo.On("GetBySlug", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	resp, err := h.GetArticle(context.Background(), &models.GetArticleRequest{Slug: "smith-chart"})
	require.NoError(t, err)
	assert.Equal(t, "smith-chart", resp.Body.Data.Slug)

	_, err = h.GetArticle(context.Background(), &models.GetArticleRequest{Slug: "missing"})
	requireStatus(t, err, http.StatusNotFound)
}

func TestCreateArticle(t *testing.T) {
	tests := []struct {
		name       string
		input      func() models.ArticleInput
		repoErr    error
		callsRepo  bool
		wantStatus int
	}{
		{
			name:      "free article",
			input:     sampleArticleInput,
			callsRepo: true,
		},
		{
			name: "paid article",
			input: func() models.ArticleInput {
				in := sampleArticleInput()
				in.IsPaid = true
				in.Price = 1500
				return in
			},
			callsRepo: true,
		},
		{
			name: "free article with price",
			input: func() models.ArticleInput {
				in := sampleArticleInput()
				in.Price = 500
				return in
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate slug",
			input:      sampleArticleInput,
			repoErr:    repository.ErrConflict,
			callsRepo:  true,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockArticleRepository)
			h := NewArticleHandler(mockRepo)
			if tt.callsRepo {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Article")).Return(tt.repoErr)
			}

			resp, err := h.CreateArticle(context.Background(), &models.CreateArticleRequest{Body: tt.input()})
			if tt.wantStatus != 0 {
				requireStatus(t, err, tt.wantStatus)
			} else {
				require.NoError(t, err)
				article := resp.Body.Data
				_, parseErr := uuid.Parse(article.ID)
				assert.NoError(t, parseErr)
				assert.Equal(t, "designing-pi-attenuators", article.Slug)
				assert.False(t, article.CreatedAt.IsZero())
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUpdateArticle(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	h := NewArticleHandler(mockRepo)

	id := uuid.New()
	title := "Renamed"
	update := models.ArticleUpdate{Title: &title}
	mockRepo.On("Update", mock.Anything, id, update).Return(&models.Article{ID: id.String(), Title: title}, nil)

	resp, err := h.UpdateArticle(context.Background(), &models.UpdateArticleRequest{ID: id.String(), Body: update})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Body.Data.Title)
	mockRepo.AssertExpectations(t)

	_, err = h.UpdateArticle(context.Background(), &models.UpdateArticleRequest{ID: "not-a-uuid", Body: update})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestDeleteArticle(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	h := NewArticleHandler(mockRepo)

	found, missing := uuid.New(), uuid.New()
	mockRepo.On("Delete", mock.Anything, found).Return(nil)
	mockRepo.On("Delete", mock.Anything, missing).Return(repository.ErrNotFound)

	resp, err := h.DeleteArticle(context.Background(), &models.DeleteArticleRequest{ID: found.String()})
	require.NoError(t, err)
	assert.True(t, resp.Body.Data.Deleted)
	assert.Equal(t, found.String(), resp.Body.Data.ID)

	_, err = h.DeleteArticle(context.Background(), &models.DeleteArticleRequest{ID: missing.String()})
	requireStatus(t, err, http.StatusNotFound)

	_, err = h.DeleteArticle(context.Background(), &models.DeleteArticleRequest{ID: "42"})
	requireStatus(t, err, http.StatusBadRequest)
}
