package api

import (
	"context"
	"net/http"
	"time"

	"github.com/RMahshie/rfdesk/internal/api/handlers"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/danielgtaylor/huma/v2"
)

// Version is reported by the health endpoint and the OpenAPI document
const Version = "1.0.0"

// Handlers groups the handlers served by the API. Nil handlers have their routes skipped.
type Handlers struct {
	Calculator   *handlers.CalculatorHandler
	Touchstone   *handlers.TouchstoneHandler
	Article      *handlers.ArticleHandler
	Consultation *handlers.ConsultationHandler
	Knowledge    *handlers.KnowledgeHandler
	Upload       *handlers.UploadHandler
	Dataset      *handlers.DatasetHandler
}

// RegisterHealth registers the health endpoint
func RegisterHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
		Tags:        []string{"System"},
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		resp := &models.HealthResponse{}
		resp.Body.Status = "healthy"
		resp.Body.Version = Version
		resp.Body.Time = time.Now()
		return resp, nil
	})
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, h Handlers) {
	if h.Calculator != nil {
		registerCalculators(api, h.Calculator)
	}
	if h.Touchstone != nil {
		registerTouchstone(api, h.Touchstone)
	}
	if h.Article != nil {
		registerArticles(api, h.Article)
	}
	if h.Consultation != nil {
		registerConsultations(api, h.Consultation)
	}
	if h.Knowledge != nil {
		registerKnowledge(api, h.Knowledge)
	}
	if h.Upload != nil {
		registerUploads(api, h.Upload)
	}
	if h.Dataset != nil {
		registerDatasets(api, h.Dataset)
	}
}

func registerCalculators(api huma.API, h *handlers.CalculatorHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "calculateVSWR",
		Method:      http.MethodPost,
		Path:        "/api/calculators/vswr",
		Summary:     "VSWR and return loss",
		Description: "Derives VSWR, reflection coefficient, return loss, mismatch loss and power split from any one of them",
		Tags:        []string{"Calculators"},
	}, h.VSWR)

	huma.Register(api, huma.Operation{
		OperationID: "designAttenuator",
		Method:      http.MethodPost,
		Path:        "/api/calculators/attenuator",
		Summary:     "Attenuator design",
		Description: "Returns the resistor values of a matched Pi or Tee pad",
		Tags:        []string{"Calculators"},
	}, h.Attenuator)

	huma.Register(api, huma.Operation{
		OperationID: "convertImpedance",
		Method:      http.MethodPost,
		Path:        "/api/calculators/impedance",
		Summary:     "Series/parallel impedance",
		Description: "Converts between series and parallel R/X forms and sizes the reactive component at a frequency",
		Tags:        []string{"Calculators"},
	}, h.Impedance)

	huma.Register(api, huma.Operation{
		OperationID: "convertPower",
		Method:      http.MethodPost,
		Path:        "/api/calculators/power",
		Summary:     "Power conversion",
		Description: "Converts between dBm, watts and RMS volts across a system impedance",
		Tags:        []string{"Calculators"},
	}, h.Power)
}

func registerTouchstone(api huma.API, h *handlers.TouchstoneHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "parseTouchstone",
		Method:      http.MethodPost,
		Path:        "/api/touchstone/parse",
		Summary:     "Parse Touchstone",
		Description: "Parses the content of a .s1p or .s2p file and summarizes it",
		Tags:        []string{"Touchstone"},
	}, h.Parse)

	huma.Register(api, huma.Operation{
		OperationID: "getTouchstoneSample",
		Method:      http.MethodGet,
		Path:        "/api/touchstone/sample",
		Summary:     "Example Touchstone file",
		Description: "Returns a demo 1-port or 2-port file with its parsed form",
		Tags:        []string{"Touchstone"},
	}, h.Example)
}

func registerArticles(api huma.API, h *handlers.ArticleHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listArticles",
		Method:      http.MethodGet,
		Path:        "/api/articles",
		Summary:     "List articles",
		Description: "Returns articles newest first, optionally filtered by category or title",
		Tags:        []string{"Articles"},
	}, h.ListArticles)

	huma.Register(api, huma.Operation{
		OperationID:   "createArticle",
		Method:        http.MethodPost,
		Path:          "/api/articles",
		Summary:       "Create article",
		Description:   "Stores a new article; slugs must be unique",
		Tags:          []string{"Articles"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateArticle)

	huma.Register(api, huma.Operation{
		OperationID: "getArticle",
		Method:      http.MethodGet,
		Path:        "/api/articles/{slug}",
		Summary:     "Get article",
		Description: "Returns an article by slug",
		Tags:        []string{"Articles"},
	}, h.GetArticle)

	huma.Register(api, huma.Operation{
		OperationID: "updateArticle",
		Method:      http.MethodPut,
		Path:        "/api/articles/{id}",
		Summary:     "Update article",
		Description: "Applies a partial update; omitted fields are left unchanged",
		Tags:        []string{"Articles"},
	}, h.UpdateArticle)

	huma.Register(api, huma.Operation{
		OperationID: "deleteArticle",
		Method:      http.MethodDelete,
		Path:        "/api/articles/{id}",
		Summary:     "Delete article",
		Tags:        []string{"Articles"},
	}, h.DeleteArticle)
}

func registerConsultations(api huma.API, h *handlers.ConsultationHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "createConsultation",
		Method:        http.MethodPost,
		Path:          "/api/consultations",
		Summary:       "Book consultation",
		Description:   "Books a consultation and records the contact as a user",
		Tags:          []string{"Consultations"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateConsultation)

	huma.Register(api, huma.Operation{
		OperationID: "listConsultations",
		Method:      http.MethodGet,
		Path:        "/api/consultations",
		Summary:     "List consultations",
		Description: "Returns consultations newest first, optionally filtered by status",
		Tags:        []string{"Consultations"},
	}, h.ListConsultations)

	huma.Register(api, huma.Operation{
		OperationID: "getConsultation",
		Method:      http.MethodGet,
		Path:        "/api/consultations/{id}",
		Summary:     "Get consultation",
		Tags:        []string{"Consultations"},
	}, h.GetConsultation)

	huma.Register(api, huma.Operation{
		OperationID: "updateConsultationStatus",
		Method:      http.MethodPatch,
		Path:        "/api/consultations/{id}/status",
		Summary:     "Update consultation status",
		Tags:        []string{"Consultations"},
	}, h.UpdateConsultationStatus)
}

func registerKnowledge(api huma.API, h *handlers.KnowledgeHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listKnowledge",
		Method:      http.MethodGet,
		Path:        "/api/knowledge",
		Summary:     "List knowledge pages",
		Description: "Returns page summaries newest first together with the navigation sections",
		Tags:        []string{"Knowledge"},
	}, h.ListKnowledge)

	huma.Register(api, huma.Operation{
		OperationID: "getKnowledge",
		Method:      http.MethodGet,
		Path:        "/api/knowledge/{slug}",
		Summary:     "Get knowledge page",
		Description: "Returns a rendered page and its table of contents",
		Tags:        []string{"Knowledge"},
	}, h.GetKnowledge)

	huma.Register(api, huma.Operation{
		OperationID: "searchKnowledge",
		Method:      http.MethodGet,
		Path:        "/api/search",
		Summary:     "Search knowledge base",
		Tags:        []string{"Knowledge"},
	}, h.Search)
}

func registerUploads(api huma.API, h *handlers.UploadHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "createUpload",
		Method:      http.MethodPost,
		Path:        "/api/uploads",
		Summary:     "Create upload URL",
		Description: "Returns a presigned PUT URL and the key the file will be stored under",
		Tags:        []string{"Uploads"},
	}, h.CreateUpload)

	huma.Register(api, huma.Operation{
		OperationID: "listUploads",
		Method:      http.MethodGet,
		Path:        "/api/uploads",
		Summary:     "List uploads",
		Description: "Lists stored files newest first with presigned download URLs",
		Tags:        []string{"Uploads"},
	}, h.ListUploads)

	huma.Register(api, huma.Operation{
		OperationID: "deleteUpload",
		Method:      http.MethodDelete,
		Path:        "/api/uploads",
		Summary:     "Delete upload",
		Tags:        []string{"Uploads"},
	}, h.DeleteUpload)
}

func registerDatasets(api huma.API, h *handlers.DatasetHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "createDataset",
		Method:        http.MethodPost,
		Path:          "/api/datasets",
		Summary:       "Create a new dataset",
		Description:   "Creates a dataset record and returns an upload URL for its Touchstone file",
		Tags:          []string{"Datasets"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateDataset)

	huma.Register(api, huma.Operation{
		OperationID: "processDataset",
		Method:      http.MethodPost,
		Path:        "/api/datasets/{id}/process",
		Summary:     "Start processing dataset",
		Description: "Starts parsing an uploaded Touchstone file in the background",
		Tags:        []string{"Datasets"},
	}, h.StartProcessing)

	huma.Register(api, huma.Operation{
		OperationID: "getDatasetStatus",
		Method:      http.MethodGet,
		Path:        "/api/datasets/{id}/status",
		Summary:     "Get dataset status",
		Description: "Returns the current status and progress of a dataset",
		Tags:        []string{"Datasets"},
	}, h.GetDatasetStatus)

	huma.Register(api, huma.Operation{
		OperationID: "getDatasetResults",
		Method:      http.MethodGet,
		Path:        "/api/datasets/{id}/results",
		Summary:     "Get dataset results",
		Description: "Returns the parsed document and summary of a processed dataset",
		Tags:        []string{"Datasets"},
	}, h.GetDatasetResults)
}
