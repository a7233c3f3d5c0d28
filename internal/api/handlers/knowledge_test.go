package handlers

import (
	"context"
	"net/http"
	"testing"
	"testing/fstest"

	"github.com/RMahshie/rfdesk/internal/content"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary(t *testing.T) *content.Library {
	t.Helper()
	lib, err := content.Load(fstest.MapFS{
		"matching/l-networks.md": {Data: []byte("---\ntitle: L Networks\ndate: 2024-03-01\n---\n## Two Elements\n\nMatch with one inductor and one capacitor.\n")},
		"passives/baluns.md":     {Data: []byte("---\ntitle: Baluns\ndate: 2024-04-01\n---\nBalanced to unbalanced transformers.\n")},
	})
	require.NoError(t, err)
	return lib
}

func TestListKnowledge(t *testing.T) {
	h := NewKnowledgeHandler(newTestLibrary(t))

	resp, err := h.ListKnowledge(context.Background(), &models.ListKnowledgeRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Body.Data, 2)
	assert.Equal(t, "baluns", resp.Body.Data[0].Slug)
	assert.Len(t, resp.Body.Sections, 2)

	resp, err = h.ListKnowledge(context.Background(), &models.ListKnowledgeRequest{Category: "Matching"})
	require.NoError(t, err)
	require.Len(t, resp.Body.Data, 1)
	assert.Equal(t, "l-networks", resp.Body.Data[0].Slug)
}

func TestGetKnowledge(t *testing.T) {
	h := NewKnowledgeHandler(newTestLibrary(t))

	resp, err := h.GetKnowledge(context.Background(), &models.GetKnowledgeRequest{Slug: "l-networks"})
	require.NoError(t, err)
	assert.Equal(t, "L Networks", resp.Body.Data.Title)
	assert.Contains(t, resp.Body.Data.HTML, "<h2")
	require.Len(t, resp.Body.Data.Headings, 1)
	assert.Equal(t, "Two Elements", resp.Body.Data.Headings[0].Text)

	_, err = h.GetKnowledge(context.Background(), &models.GetKnowledgeRequest{Slug: "nope"})
	requireStatus(t, err, http.StatusNotFound)
}

func TestSearchKnowledge(t *testing.T) {
	h := NewKnowledgeHandler(newTestLibrary(t))

	tests := []struct {
		query string
		slugs []string
	}{
		{query: "INDUCTOR", slugs: []string{"l-networks"}},
		{query: "passives", slugs: []string{"baluns"}},
		{query: "waveguide", slugs: []string{}},
		{query: "", slugs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := h.Search(context.Background(), &models.SearchRequest{Q: tt.query})
			require.NoError(t, err)
			assert.Equal(t, tt.query, resp.Body.Query)
			slugs := []string{}
			for _, hit := range resp.Body.Data {
				slugs = append(slugs, hit.Slug)
			}
			assert.Equal(t, tt.slugs, slugs)
		})
	}
}
