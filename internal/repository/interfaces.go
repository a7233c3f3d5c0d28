package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness constraint
	ErrConflict = errors.New("record already exists")
	// ErrAlreadyProcessing is returned when a dataset is claimed for
	// processing while another run holds it
	ErrAlreadyProcessing = errors.New("dataset is already processing")
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, id uuid.UUID, update models.ArticleUpdate) (*models.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConsultationRepository defines the interface for consultation bookings
type ConsultationRepository interface {
	// Create upserts the requesting user by email and stores the consultation
	Create(ctx context.Context, consultation *models.Consultation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Consultation, error)
	List(ctx context.Context, status string, skip, limit int) ([]models.Consultation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Consultation, error)
}

// DatasetRepository defines the interface for touchstone dataset operations
type DatasetRepository interface {
	Create(ctx context.Context, dataset *models.Dataset) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dataset, error)
	// StartProcessing atomically moves a dataset that is not already
	// processing into the processing state
	StartProcessing(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error
	UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error
	StoreResults(ctx context.Context, id uuid.UUID, results *models.DatasetResults) error
	GetResults(ctx context.Context, id uuid.UUID) (*models.DatasetResults, error)
}
