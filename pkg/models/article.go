package models

import "time"

// Article represents a published technical article
type Article struct {
	ID        string    `json:"id" doc:"Article unique identifier"`
	Title     string    `json:"title" doc:"Article title"`
	Slug      string    `json:"slug" doc:"URL slug, unique across articles"`
	Excerpt   string    `json:"excerpt" doc:"Short summary shown in listings"`
	Content   string    `json:"content" doc:"Article body in markdown"`
	Category  string    `json:"category" doc:"Article category"`
	IsPaid    bool      `json:"is_paid" doc:"Whether the article is behind a paywall"`
	Price     int       `json:"price" doc:"Price in cents for paid articles"`
	ReadTime  string    `json:"read_time" doc:"Estimated reading time, e.g. '8 min'"`
	Author    string    `json:"author" doc:"Author display name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArticleInput holds the writable fields of a new article
type ArticleInput struct {
	Title    string `json:"title" minLength:"1" maxLength:"255" required:"true" doc:"Article title"`
	Slug     string `json:"slug" minLength:"1" maxLength:"255" pattern:"^[a-z0-9]+(?:-[a-z0-9]+)*$" required:"true" doc:"URL slug"`
	Excerpt  string `json:"excerpt" required:"true" doc:"Short summary"`
	Content  string `json:"content" required:"true" doc:"Markdown body"`
	Category string `json:"category" minLength:"1" maxLength:"50" required:"true" doc:"Article category"`
	IsPaid   bool   `json:"is_paid,omitempty" doc:"Whether the article is paid"`
	Price    int    `json:"price,omitempty" minimum:"0" doc:"Price in cents"`
	ReadTime string `json:"read_time" maxLength:"20" required:"true" doc:"Estimated reading time"`
	Author   string `json:"author" maxLength:"128" required:"true" doc:"Author display name"`
}

// ArticleUpdate holds the fields of a partial article update; nil fields are left unchanged
type ArticleUpdate struct {
	Title    *string `json:"title,omitempty" minLength:"1" maxLength:"255"`
	Slug     *string `json:"slug,omitempty" minLength:"1" maxLength:"255" pattern:"^[a-z0-9]+(?:-[a-z0-9]+)*$"`
	Excerpt  *string `json:"excerpt,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty" minLength:"1" maxLength:"50"`
	IsPaid   *bool   `json:"is_paid,omitempty"`
	Price    *int    `json:"price,omitempty" minimum:"0"`
	ReadTime *string `json:"read_time,omitempty" maxLength:"20"`
	Author   *string `json:"author,omitempty" maxLength:"128"`
}

// ArticleFilter narrows an article listing
type ArticleFilter struct {
	Category string
	Search   string
	Skip     int
	Limit    int
}

// ListArticlesRequest represents an article listing request
type ListArticlesRequest struct {
	Category string `query:"category" doc:"Only return articles in this category"`
	Search   string `query:"search" doc:"Case-insensitive title match"`
	Skip     int    `query:"skip" minimum:"0" default:"0" doc:"Number of articles to skip"`
	Limit    int    `query:"limit" minimum:"1" maximum:"100" default:"100" doc:"Maximum number of articles"`
}

// ArticleListResponse wraps a list of articles
type ArticleListResponse struct {
	Body struct {
		Success bool      `json:"success"`
		Data    []Article `json:"data"`
	}
}

// CreateArticleRequest represents a request to create an article
type CreateArticleRequest struct {
	Body ArticleInput
}

// GetArticleRequest looks an article up by slug
type GetArticleRequest struct {
	Slug string `path:"slug" doc:"Article slug"`
}

// UpdateArticleRequest represents a partial update of an article
type UpdateArticleRequest struct {
	ID   string `path:"id" doc:"Article ID"`
	Body ArticleUpdate
}

// DeleteArticleRequest represents a request to delete an article
type DeleteArticleRequest struct {
	ID string `path:"id" doc:"Article ID"`
}

// ArticleResponse wraps a single article
type ArticleResponse struct {
	Body struct {
		Success bool     `json:"success"`
		Data    *Article `json:"data"`
	}
}

// NewArticleResponse builds a successful ArticleResponse
func NewArticleResponse(a *Article) *ArticleResponse {
	resp := &ArticleResponse{}
	resp.Body.Success = true
	resp.Body.Data = a
	return resp
}
