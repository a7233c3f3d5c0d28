package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/RMahshie/rfdesk/pkg/touchstone"
	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

// TouchstoneHandler parses uploaded S-parameter text
type TouchstoneHandler struct {
	maxBytes int
	metrics  TouchstoneMetrics
}

// NewTouchstoneHandler creates a new touchstone handler. metrics may be nil.
func NewTouchstoneHandler(maxBytes int64, metrics TouchstoneMetrics) *TouchstoneHandler {
	return &TouchstoneHandler{maxBytes: int(maxBytes), metrics: metrics}
}

func (h *TouchstoneHandler) parse(source, content string) models.TouchstoneResult {
	doc := touchstone.Parse(content)
	if h.metrics != nil {
		h.metrics.TouchstoneParsed(source, doc)
	}
	return models.TouchstoneResult{Document: doc, Summary: touchstone.Summarize(doc)}
}

// Parse parses the content of a .s1p or .s2p file. Malformed rows are skipped,
// so any text up to the size limit yields a document.
func (h *TouchstoneHandler) Parse(ctx context.Context, req *models.ParseTouchstoneRequest) (*models.ParseTouchstoneResponse, error) {
	if len(req.Body.Content) > h.maxBytes {
		return nil, huma.NewError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Touchstone content exceeds %d bytes", h.maxBytes))
	}

	result := h.parse("api", req.Body.Content)
	log.Info().
		Str("fileName", req.Body.FileName).
		Int("ports", result.Document.Ports).
		Int("samples", len(result.Document.Samples)).
		Int("skipped", result.Document.Skipped).
		Msg("Touchstone content parsed")

	resp := &models.ParseTouchstoneResponse{}
	resp.Body.Success = true
	resp.Body.Data = result
	return resp, nil
}

// Example returns a demo file together with its parsed form
func (h *TouchstoneHandler) Example(ctx context.Context, req *models.TouchstoneExampleRequest) (*models.TouchstoneExampleResponse, error) {
	ports := req.Ports
	if ports != 2 {
		ports = 1
	}
	content := touchstone.Example(ports)

	resp := &models.TouchstoneExampleResponse{}
	resp.Body.Success = true
	resp.Body.Data = models.TouchstoneExample{
		FileName: "example" + touchstone.FileExtension(ports),
		Content:  content,
		Result:   h.parse("example", content),
	}
	return resp, nil
}
