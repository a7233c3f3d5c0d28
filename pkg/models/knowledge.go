package models

import "time"

// Heading is one entry of a knowledge page's table of contents
type Heading struct {
	Level int    `json:"level" doc:"Heading level, 2 or 3"`
	Text  string `json:"text"`
	ID    string `json:"id" doc:"Anchor id of the rendered heading"`
}

// KnowledgeSummary describes a knowledge page without its body
type KnowledgeSummary struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Date        time.Time `json:"date"`
	ReadTime    string    `json:"read_time"`
	Author      string    `json:"author"`
}

// KnowledgeDetail is a rendered knowledge page
type KnowledgeDetail struct {
	KnowledgeSummary
	HTML     string    `json:"html" doc:"Sanitized HTML body"`
	Headings []Heading `json:"headings"`
}

// KnowledgeSection groups pages by category for navigation
type KnowledgeSection struct {
	Category string             `json:"category"`
	Pages    []KnowledgeSummary `json:"pages"`
}

// ListKnowledgeRequest lists knowledge pages, optionally by category
type ListKnowledgeRequest struct {
	Category string `query:"category" doc:"Only return pages in this category"`
}

// KnowledgeListResponse wraps the knowledge index
type KnowledgeListResponse struct {
	Body struct {
		Success  bool               `json:"success"`
		Data     []KnowledgeSummary `json:"data"`
		Sections []KnowledgeSection `json:"sections"`
	}
}

// GetKnowledgeRequest looks a page up by slug
type GetKnowledgeRequest struct {
	Slug string `path:"slug" doc:"Page slug"`
}

// KnowledgeResponse wraps a rendered page
type KnowledgeResponse struct {
	Body struct {
		Success bool             `json:"success"`
		Data    *KnowledgeDetail `json:"data"`
	}
}

// SearchRequest represents a full-text knowledge search
type SearchRequest struct {
	Q string `query:"q" maxLength:"200" doc:"Search term; empty returns no results"`
}

// SearchResponse wraps search hits
type SearchResponse struct {
	Body struct {
		Success bool               `json:"success"`
		Query   string             `json:"query"`
		Data    []KnowledgeSummary `json:"data"`
	}
}
