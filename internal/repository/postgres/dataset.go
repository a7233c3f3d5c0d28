package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/RMahshie/rfdesk/internal/repository"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/google/uuid"
)

// PostgresDatasetRepository implements DatasetRepository for PostgreSQL
type PostgresDatasetRepository struct {
	db *sql.DB
}

// NewPostgresDatasetRepository creates a new PostgreSQL dataset repository
func NewPostgresDatasetRepository(db *sql.DB) repository.DatasetRepository {
	return &PostgresDatasetRepository{db: db}
}

// Create inserts a new dataset record
func (r *PostgresDatasetRepository) Create(ctx context.Context, d *models.Dataset) error {
	query := `
		INSERT INTO datasets (id, name, file_name, file_size, s3_key, status, progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`

	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.Name,
		d.FileName,
		d.FileSize,
		d.S3Key,
		d.Status,
		d.Progress,
		d.CreatedAt)

	return translate(err)
}

// GetByID retrieves a dataset by ID
func (r *PostgresDatasetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Dataset, error) {
	query := `
		SELECT id, name, file_name, file_size, s3_key, status, progress, error_message, created_at, completed_at
		FROM datasets
		WHERE id = $1`

	var d models.Dataset
	var errorMsg sql.NullString
	var completedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.Name,
		&d.FileName,
		&d.FileSize,
		&d.S3Key,
		&d.Status,
		&d.Progress,
		&errorMsg,
		&d.CreatedAt,
		&completedAt)

	if err != nil {
		return nil, translate(err)
	}

	if errorMsg.Valid {
		d.ErrorMessage = &errorMsg.String
	}
	if completedAt.Valid {
		d.CompletedAt = &completedAt.Time
	}

	return &d, nil
}

// StartProcessing claims a dataset for processing. The status check and the
// update are one statement, so concurrent callers cannot both succeed.
func (r *PostgresDatasetRepository) StartProcessing(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE datasets
		SET status = 'processing', progress = 0, error_message = NULL, updated_at = NOW()
		WHERE id = $1 AND status <> 'processing'`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM datasets WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrAlreadyProcessing
}

// UpdateStatus updates the status and progress of a dataset
func (r *PostgresDatasetRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	query := `
		UPDATE datasets
		SET status = $1, progress = $2, updated_at = NOW(),
		    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END
		WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, status, progress, id)
	return err
}

// UpdateError marks a dataset as failed with the given message
func (r *PostgresDatasetRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	query := `
		UPDATE datasets
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, errorMsg, id)
	return err
}

// StoreResults stores the parsed document and summary of a dataset
func (r *PostgresDatasetRepository) StoreResults(ctx context.Context, id uuid.UUID, results *models.DatasetResults) error {
	document, err := json.Marshal(results.Document)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	summary, err := json.Marshal(results.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	query := `
		INSERT INTO dataset_results (dataset_id, document, summary, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (dataset_id) DO UPDATE
		SET document = EXCLUDED.document, summary = EXCLUDED.summary, created_at = EXCLUDED.created_at`

	_, err = r.db.ExecContext(ctx, query,
		id,
		string(document),
		string(summary),
		results.CreatedAt)

	return err
}

// GetResults retrieves the stored results of a dataset
func (r *PostgresDatasetRepository) GetResults(ctx context.Context, id uuid.UUID) (*models.DatasetResults, error) {
	query := `
		SELECT document, summary, created_at
		FROM dataset_results
		WHERE dataset_id = $1`

	var results models.DatasetResults
	var document, summary []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(&document, &summary, &results.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}

	if err := json.Unmarshal(document, &results.Document); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	if err := json.Unmarshal(summary, &results.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}

	return &results, nil
}
