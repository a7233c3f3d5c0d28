package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/RMahshie/rfdesk/pkg/touchstone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parsedDocs struct {
	sources []string
}

func (p *parsedDocs) TouchstoneParsed(source string, doc *touchstone.Document) {
	p.sources = append(p.sources, source)
}

func TestParseTouchstone(t *testing.T) {
	metrics := &parsedDocs{}
	h := NewTouchstoneHandler(1024, metrics)

	req := &models.ParseTouchstoneRequest{}
	req.Body.FileName = "filter.s1p"
	req.Body.Content = "! test\n# MHz S MA R 50\n100 0.5 -45\n200 0.1 10\nbad row here\n"

	resp, err := h.Parse(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Body.Success)

	doc := resp.Body.Data.Document
	require.Len(t, doc.Samples, 2)
	assert.Equal(t, 1, doc.Ports)
	assert.Equal(t, 1, doc.Skipped)
	assert.Equal(t, 100.0, doc.Samples[0].FrequencyMHz)
	assert.Equal(t, 2, resp.Body.Data.Summary.Points)
	assert.Equal(t, []string{"api"}, metrics.sources)
}

func TestParseTouchstoneTooLarge(t *testing.T) {
	h := NewTouchstoneHandler(16, nil)

	req := &models.ParseTouchstoneRequest{}
	req.Body.Content = strings.Repeat("1 0.5 0\n", 10)

	_, err := h.Parse(context.Background(), req)
	requireStatus(t, err, http.StatusRequestEntityTooLarge)
}

func TestTouchstoneExample(t *testing.T) {
	tests := []struct {
		ports    int
		fileName string
	}{
		{ports: 1, fileName: "example.s1p"},
		{ports: 2, fileName: "example.s2p"},
		{ports: 7, fileName: "example.s1p"},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			metrics := &parsedDocs{}
			h := NewTouchstoneHandler(1<<20, metrics)

			resp, err := h.Example(context.Background(), &models.TouchstoneExampleRequest{Ports: tt.ports})
			require.NoError(t, err)

			data := resp.Body.Data
			assert.Equal(t, tt.fileName, data.FileName)
			assert.NotEmpty(t, data.Content)
			assert.NotEmpty(t, data.Result.Document.Samples)
			assert.Zero(t, data.Result.Document.Skipped)
			assert.Equal(t, []string{"example"}, metrics.sources)
		})
	}
}
