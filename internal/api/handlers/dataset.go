package handlers

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/RMahshie/rfdesk/internal/processing"
	"github.com/RMahshie/rfdesk/internal/repository"
	"github.com/RMahshie/rfdesk/internal/storage"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/RMahshie/rfdesk/pkg/touchstone"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// touchstoneContentType is the type presigned dataset uploads must be sent with
const touchstoneContentType = "text/plain"

// DatasetHandler handles touchstone dataset uploads and their processing
type DatasetHandler struct {
	repo          repository.DatasetRepository
	s3Service     storage.S3Service
	processingSvc processing.ProcessingService
	maxBytes      int64

	wg sync.WaitGroup
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(repo repository.DatasetRepository, s3Service storage.S3Service, processingSvc processing.ProcessingService, maxBytes int64) *DatasetHandler {
	return &DatasetHandler{
		repo:          repo,
		s3Service:     s3Service,
		processingSvc: processingSvc,
		maxBytes:      maxBytes,
	}
}

// Wait blocks until every background processing job has finished
func (h *DatasetHandler) Wait() {
	h.wg.Wait()
}

// CreateDataset registers a dataset and returns an upload URL for its file
func (h *DatasetHandler) CreateDataset(ctx context.Context, req *models.CreateDatasetRequest) (*models.CreateDatasetResponse, error) {
	in := req.Body
	log.Info().Str("fileName", in.FileName).Int64("fileSize", in.FileSize).Msg("Creating new dataset")

	if !touchstone.IsTouchstoneName(in.FileName) {
		return nil, huma.Error400BadRequest("Only .s1p and .s2p files are supported")
	}
	if in.FileSize > h.maxBytes {
		return nil, huma.Error400BadRequest(fmt.Sprintf("File too large, the limit is %d bytes", h.maxBytes))
	}

	datasetID := uuid.New()
	key := fmt.Sprintf("datasets/%s%s", datasetID, strings.ToLower(path.Ext(in.FileName)))

	url, err := h.s3Service.GenerateUploadURL(ctx, key, touchstoneContentType)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to generate upload URL")
		return nil, huma.Error500InternalServerError("Failed to prepare upload")
	}

	dataset := &models.Dataset{
		ID:        datasetID.String(),
		Name:      in.Name,
		FileName:  in.FileName,
		FileSize:  in.FileSize,
		S3Key:     key,
		Status:    models.DatasetPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.repo.Create(ctx, dataset); err != nil {
		return nil, storeError(err, "Dataset")
	}
	log.Info().Str("datasetID", dataset.ID).Str("s3Key", key).Msg("Dataset created, returning upload URL")

	resp := &models.CreateDatasetResponse{}
	resp.Body.Success = true
	resp.Body.Data = dataset
	resp.Body.Upload = &models.UploadTicket{
		Key:       key,
		UploadURL: url,
		ExpiresAt: time.Now().UTC().Add(storage.UploadURLExpiry),
	}
	return resp, nil
}

// StartProcessing starts processing an uploaded dataset in the background
func (h *DatasetHandler) StartProcessing(ctx context.Context, req *models.DatasetIDRequest) (*models.ProcessDatasetResponse, error) {
	datasetID, err := parseID(req.ID, "dataset")
	if err != nil {
		return nil, err
	}

	if err := h.repo.StartProcessing(ctx, datasetID); err != nil {
		if errors.Is(err, repository.ErrAlreadyProcessing) {
			return nil, huma.Error409Conflict("Dataset is already being processed")
		}
		return nil, storeError(err, "Dataset")
	}

	log.Info().Str("datasetID", datasetID.String()).Msg("Starting background processing")
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if err := h.processingSvc.ProcessDataset(context.Background(), datasetID); err != nil {
			log.Error().Err(err).Str("datasetID", datasetID.String()).Msg("Dataset processing failed")
			_ = h.repo.UpdateError(context.Background(), datasetID, fmt.Sprintf("Processing failed: %v", err))
		}
	}()

	resp := &models.ProcessDatasetResponse{}
	resp.Body.Success = true
	resp.Body.ID = datasetID.String()
	resp.Body.Status = models.DatasetProcessing
	resp.Body.Message = "Processing started successfully"
	return resp, nil
}

// GetDatasetStatus returns the current status of a dataset
func (h *DatasetHandler) GetDatasetStatus(ctx context.Context, req *models.DatasetIDRequest) (*models.DatasetStatusResponse, error) {
	datasetID, err := parseID(req.ID, "dataset")
	if err != nil {
		return nil, err
	}

	dataset, err := h.repo.GetByID(ctx, datasetID)
	if err != nil {
		return nil, storeError(err, "Dataset")
	}

	resp := &models.DatasetStatusResponse{}
	resp.Body.Success = true
	resp.Body.ID = dataset.ID
	resp.Body.Status = dataset.Status
	resp.Body.Progress = dataset.Progress
	resp.Body.Message = statusMessage(dataset.Status, dataset.Progress)
	resp.Body.Error = dataset.ErrorMessage
	return resp, nil
}

// GetDatasetResults returns the parsed document and summary of a processed dataset
func (h *DatasetHandler) GetDatasetResults(ctx context.Context, req *models.DatasetIDRequest) (*models.DatasetResultsResponse, error) {
	datasetID, err := parseID(req.ID, "dataset")
	if err != nil {
		return nil, err
	}

	dataset, err := h.repo.GetByID(ctx, datasetID)
	if err != nil {
		return nil, storeError(err, "Dataset")
	}
	if dataset.Status != models.DatasetCompleted {
		return nil, huma.Error409Conflict("Dataset not yet processed",
			fmt.Errorf("dataset status is %s", dataset.Status))
	}

	results, err := h.repo.GetResults(ctx, datasetID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, huma.Error404NotFound("Dataset results not found")
	}
	if err != nil {
		return nil, storeError(err, "Dataset results")
	}

	resp := &models.DatasetResultsResponse{}
	resp.Body.Success = true
	resp.Body.Data = results
	return resp, nil
}

// statusMessage creates a human-readable status message
func statusMessage(status string, progress int) string {
	switch status {
	case models.DatasetPending:
		return "Waiting for upload and processing..."
	case models.DatasetProcessing:
		if progress < 30 {
			return "Starting processing..."
		} else if progress < 60 {
			return "Downloading touchstone file..."
		} else if progress < 80 {
			return "Parsing S-parameters..."
		}
		return "Summarizing results..."
	case models.DatasetCompleted:
		return "Processing complete!"
	case models.DatasetFailed:
		return "Processing failed. Please check the file and try again."
	}
	return "Unknown status"
}
