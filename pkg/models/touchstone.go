package models

import "github.com/RMahshie/rfdesk/pkg/touchstone"

// ParseTouchstoneRequest carries raw Touchstone text
type ParseTouchstoneRequest struct {
	Body struct {
		FileName string `json:"file_name,omitempty" maxLength:"255" doc:"Original file name, used for logging only"`
		Content  string `json:"content" required:"true" doc:"Contents of a .s1p or .s2p file"`
	}
}

// TouchstoneResult is a parsed document with its summary
type TouchstoneResult struct {
	Document *touchstone.Document `json:"document"`
	Summary  touchstone.Summary   `json:"summary"`
}

// ParseTouchstoneResponse wraps a TouchstoneResult
type ParseTouchstoneResponse struct {
	Body struct {
		Success bool             `json:"success"`
		Data    TouchstoneResult `json:"data"`
	}
}

// TouchstoneExampleRequest selects the demo file to return
type TouchstoneExampleRequest struct {
	Ports int `query:"ports" enum:"1,2" default:"1" doc:"Port count of the example file"`
}

// TouchstoneExample is a demo file and its parsed form
type TouchstoneExample struct {
	FileName string           `json:"file_name"`
	Content  string           `json:"content"`
	Result   TouchstoneResult `json:"result"`
}

// TouchstoneExampleResponse wraps a TouchstoneExample
type TouchstoneExampleResponse struct {
	Body struct {
		Success bool              `json:"success"`
		Data    TouchstoneExample `json:"data"`
	}
}
