package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

// ArticleRepository implements port.ArticleStore using pgxpool.
type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

func (r *ArticleRepository) Get(ctx context.Context, id string) (*domain.Article, error) {
	var a domain.Article
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, url, keywords, category, description, published_at
		 FROM articles WHERE id = $1`, id).
		Scan(&a.ID, &a.Title, &a.URL, &a.Keywords, &a.Category, &a.Description, &a.PublishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, url, keywords, category, description, published_at
		 FROM articles ORDER BY published_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Article, error) {
		var a domain.Article
		err := row.Scan(&a.ID, &a.Title, &a.URL, &a.Keywords, &a.Category, &a.Description, &a.PublishedAt)
		return a, err
	})
}

// Put inserts the article or replaces an existing row with the same id.
func (r *ArticleRepository) Put(ctx context.Context, a domain.Article) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO articles (id, title, url, keywords, category, description, published_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (id) DO UPDATE SET
		   title = EXCLUDED.title,
		   url = EXCLUDED.url,
		   keywords = EXCLUDED.keywords,
		   category = EXCLUDED.category,
		   description = EXCLUDED.description,
		   published_at = EXCLUDED.published_at`,
		a.ID, a.Title, a.URL, a.Keywords, a.Category, a.Description, a.PublishedAt)
	return err
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrArticleNotFound
	}
	return nil
}
