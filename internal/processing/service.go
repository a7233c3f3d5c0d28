package processing

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RMahshie/rfdesk/internal/repository"
	"github.com/RMahshie/rfdesk/internal/storage"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/RMahshie/rfdesk/pkg/touchstone"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultMaxBytes bounds the size of a dataset file accepted for processing
const DefaultMaxBytes = 10 << 20

// Metrics receives processing outcomes. *observability.Collector implements it.
type Metrics interface {
	TouchstoneParsed(source string, doc *touchstone.Document)
	DatasetProcessed(status string)
}

type noMetrics struct{}

func (noMetrics) TouchstoneParsed(string, *touchstone.Document) {}
func (noMetrics) DatasetProcessed(string)                       {}

type ProcessingService interface {
	ProcessDataset(ctx context.Context, datasetID uuid.UUID) error
}

type processingService struct {
	s3         storage.S3Service
	repository repository.DatasetRepository
	metrics    Metrics
	maxBytes   int64
}

// NewProcessingService creates a processing service. metrics may be nil.
func NewProcessingService(s3Service storage.S3Service, repo repository.DatasetRepository, metrics Metrics, maxBytes int64) ProcessingService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if metrics == nil {
		metrics = noMetrics{}
	}
	return &processingService{
		s3:         s3Service,
		repository: repo,
		metrics:    metrics,
		maxBytes:   maxBytes,
	}
}

// ProcessDataset downloads a dataset's touchstone file, parses and summarizes it
// and stores the results. Problems with the file itself mark the dataset failed
// and return nil; only storage errors are returned.
func (s *processingService) ProcessDataset(ctx context.Context, datasetID uuid.UUID) error {
	logger := log.With().Str("datasetID", datasetID.String()).Logger()

	// Step 1: Update to processing status
	if err := s.repository.UpdateStatus(ctx, datasetID, models.DatasetProcessing, 10); err != nil {
		return err
	}

	// Step 2: Get dataset details
	dataset, err := s.repository.GetByID(ctx, datasetID)
	if err != nil {
		return err
	}

	// Step 3: Download from S3
	if err := s.repository.UpdateStatus(ctx, datasetID, models.DatasetProcessing, 30); err != nil {
		return err
	}
	data, err := s.s3.DownloadFile(ctx, dataset.S3Key)
	if err != nil {
		logger.Error().Err(err).Str("s3Key", dataset.S3Key).Msg("Failed to download dataset")
		return s.fail(ctx, datasetID, "Failed to download touchstone file")
	}
	if int64(len(data)) > s.maxBytes {
		return s.fail(ctx, datasetID, fmt.Sprintf("File exceeds the %d byte limit", s.maxBytes))
	}

	// Step 4: Parse
	if err := s.repository.UpdateStatus(ctx, datasetID, models.DatasetProcessing, 60); err != nil {
		return err
	}
	doc, err := touchstone.Read(bytes.NewReader(data))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read touchstone data")
		return s.fail(ctx, datasetID, "Touchstone file could not be read")
	}
	s.metrics.TouchstoneParsed("dataset", doc)
	if len(doc.Samples) == 0 {
		return s.fail(ctx, datasetID, "No valid data rows found in touchstone file")
	}
	if want := fmt.Sprintf(".s%dp", doc.Ports); touchstone.IsTouchstoneName(dataset.FileName) && !strings.HasSuffix(strings.ToLower(dataset.FileName), want) {
		logger.Warn().Str("fileName", dataset.FileName).Int("ports", doc.Ports).Msg("File extension does not match parsed port count")
	}

	// Step 5: Summarize and store
	if err := s.repository.UpdateStatus(ctx, datasetID, models.DatasetProcessing, 80); err != nil {
		return err
	}
	results := &models.DatasetResults{
		Document:  doc,
		Summary:   touchstone.Summarize(doc),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repository.StoreResults(ctx, datasetID, results); err != nil {
		_ = s.repository.UpdateError(ctx, datasetID, "Failed to store results")
		s.metrics.DatasetProcessed(models.DatasetFailed)
		return fmt.Errorf("failed to store results: %w", err)
	}

	// Step 6: Mark complete
	if err := s.repository.UpdateStatus(ctx, datasetID, models.DatasetCompleted, 100); err != nil {
		return err
	}
	s.metrics.DatasetProcessed(models.DatasetCompleted)

	logger.Info().
		Int("samples", len(doc.Samples)).
		Int("skipped", doc.Skipped).
		Int("ports", doc.Ports).
		Msg("Dataset processed")
	return nil
}

// fail records msg on the dataset; the status carries the failure, not the return value
func (s *processingService) fail(ctx context.Context, id uuid.UUID, msg string) error {
	s.metrics.DatasetProcessed(models.DatasetFailed)
	if err := s.repository.UpdateError(ctx, id, msg); err != nil {
		return fmt.Errorf("failed to record dataset error: %w", err)
	}
	return nil
}
