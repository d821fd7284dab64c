package port

import (
	"context"
	"errors"

	"trendads/internal/core/domain"
)

var ErrArticleNotFound = errors.New("article not found")

// ArticleStore is the keyed storage abstraction over the article catalog.
// Updates are full-article replaces; articles are never deleted implicitly.
// Implementations must be safe for concurrent use.
type ArticleStore interface {
	// Get returns the article with the given id or ErrArticleNotFound.
	Get(ctx context.Context, id string) (*domain.Article, error)
	// List returns the whole catalog.
	List(ctx context.Context) ([]domain.Article, error)
	// Put inserts the article or replaces an existing one with the same id.
	Put(ctx context.Context, article domain.Article) error
	// Delete removes the article. Unknown ids return ErrArticleNotFound.
	Delete(ctx context.Context, id string) error
}
