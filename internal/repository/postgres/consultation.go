package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/RMahshie/rfdesk/internal/repository"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/google/uuid"
)

const consultationColumns = `id, user_id, name, email, phone, topic, description, preferred_time, status, created_at`

// PostgresConsultationRepository implements ConsultationRepository for PostgreSQL
type PostgresConsultationRepository struct {
	db *sql.DB
}

// NewPostgresConsultationRepository creates a new PostgreSQL consultation repository
func NewPostgresConsultationRepository(db *sql.DB) repository.ConsultationRepository {
	return &PostgresConsultationRepository{db: db}
}

func scanConsultation(row scanner) (*models.Consultation, error) {
	var c models.Consultation
	var preferred sql.NullString

	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Topic,
		&c.Description,
		&preferred,
		&c.Status,
		&c.CreatedAt)
	if err != nil {
		return nil, err
	}

	if preferred.Valid {
		c.PreferredTime = &preferred.String
	}
	return &c, nil
}

// Create upserts the user keyed by email and inserts the consultation in one transaction.
// c.UserID is set to the stored user's ID.
func (r *PostgresConsultationRepository) Create(ctx context.Context, c *models.Consultation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	userQuery := `
		INSERT INTO users (email, name, phone)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone
		RETURNING id`

	if err := tx.QueryRowContext(ctx, userQuery, c.Email, c.Name, c.Phone).Scan(&c.UserID); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	query := `
		INSERT INTO consultations (` + consultationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = tx.ExecContext(ctx, query,
		c.ID,
		c.UserID,
		c.Name,
		c.Email,
		c.Phone,
		c.Topic,
		c.Description,
		c.PreferredTime,
		c.Status,
		c.CreatedAt)
	if err != nil {
		return translate(err)
	}

	return tx.Commit()
}

// GetByID retrieves a consultation by ID
func (r *PostgresConsultationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Consultation, error) {
	query := `SELECT ` + consultationColumns + ` FROM consultations WHERE id = $1`
	c, err := scanConsultation(r.db.QueryRowContext(ctx, query, id))
	return c, translate(err)
}

// List returns consultations newest first, optionally filtered by status
func (r *PostgresConsultationRepository) List(ctx context.Context, status string, skip, limit int) ([]models.Consultation, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := `
		SELECT ` + consultationColumns + `
		FROM consultations
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, status, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	consultations := []models.Consultation{}
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		consultations = append(consultations, *c)
	}
	return consultations, rows.Err()
}

// UpdateStatus sets the status of a consultation and returns it
func (r *PostgresConsultationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Consultation, error) {
	query := `
		UPDATE consultations SET status = $1
		WHERE id = $2
		RETURNING ` + consultationColumns

	c, err := scanConsultation(r.db.QueryRowContext(ctx, query, status, id))
	return c, translate(err)
}
