package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/RMahshie/rfdesk/internal/repository"
	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/google/uuid"
)

const articleColumns = `id, title, slug, excerpt, content, category, is_paid, price, read_time, author, created_at, updated_at`

// PostgresArticleRepository implements ArticleRepository for PostgreSQL
type PostgresArticleRepository struct {
	db *sql.DB
}

// NewPostgresArticleRepository creates a new PostgreSQL article repository
func NewPostgresArticleRepository(db *sql.DB) repository.ArticleRepository {
	return &PostgresArticleRepository{db: db}
}

func scanArticle(row scanner) (*models.Article, error) {
	var a models.Article
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Excerpt,
		&a.Content,
		&a.Category,
		&a.IsPaid,
		&a.Price,
		&a.ReadTime,
		&a.Author,
		&a.CreatedAt,
		&a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns articles newest first, filtered by category and title search
func (r *PostgresArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}

	query := `SELECT ` + articleColumns + ` FROM articles`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	args = append(args, filter.Skip, limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC OFFSET $%d LIMIT $%d`, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// GetBySlug retrieves an article by its slug
func (r *PostgresArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE slug = $1`
	a, err := scanArticle(r.db.QueryRowContext(ctx, query, slug))
	return a, translate(err)
}

// Create inserts a new article
func (r *PostgresArticleRepository) Create(ctx context.Context, a *models.Article) error {
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Title,
		a.Slug,
		a.Excerpt,
		a.Content,
		a.Category,
		a.IsPaid,
		a.Price,
		a.ReadTime,
		a.Author,
		a.CreatedAt,
		a.UpdatedAt)

	return translate(err)
}

// Update applies the non-nil fields of update and returns the stored article
func (r *PostgresArticleRepository) Update(ctx context.Context, id uuid.UUID, u models.ArticleUpdate) (*models.Article, error) {
	query := `
		UPDATE articles SET
			title = COALESCE($1, title),
			slug = COALESCE($2, slug),
			excerpt = COALESCE($3, excerpt),
			content = COALESCE($4, content),
			category = COALESCE($5, category),
			is_paid = COALESCE($6, is_paid),
			price = COALESCE($7, price),
			read_time = COALESCE($8, read_time),
			author = COALESCE($9, author),
			updated_at = NOW()
		WHERE id = $10
		RETURNING ` + articleColumns

	a, err := scanArticle(r.db.QueryRowContext(ctx, query,
		u.Title,
		u.Slug,
		u.Excerpt,
		u.Content,
		u.Category,
		u.IsPaid,
		u.Price,
		u.ReadTime,
		u.Author,
		id))

	return a, translate(err)
}

// Delete removes an article
func (r *PostgresArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
