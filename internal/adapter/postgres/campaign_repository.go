package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

// CampaignRepository implements port.CampaignStore using pgxpool. It is the
// durable alternative to the in-memory registry store.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

func (r *CampaignRepository) Insert(ctx context.Context, c domain.StoredCampaign) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO campaigns
		   (id, article_id, trend_keyword, ad_group_id, resource_name, status, created_at, expires_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, c.ArticleID, c.TrendKeyword, c.Result.AdGroupID, c.Result.ResourceName,
		string(c.Status), c.CreatedAt, c.ExpiresAt)
	return err
}

func (r *CampaignRepository) Get(ctx context.Context, id string) (*domain.StoredCampaign, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, article_id, trend_keyword, ad_group_id, resource_name, status, created_at, expires_at
		 FROM campaigns WHERE id = $1`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) List(ctx context.Context) ([]domain.StoredCampaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, article_id, trend_keyword, ad_group_id, resource_name, status, created_at, expires_at
		 FROM campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StoredCampaign, error) {
		return scanCampaign(row)
	})
}

func (r *CampaignRepository) SetStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignNotFound
	}
	return nil
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignNotFound
	}
	return nil
}

func scanCampaign(row pgx.Row) (domain.StoredCampaign, error) {
	var (
		c      domain.StoredCampaign
		status string
	)
	err := row.Scan(&c.ID, &c.ArticleID, &c.TrendKeyword, &c.Result.AdGroupID,
		&c.Result.ResourceName, &status, &c.CreatedAt, &c.ExpiresAt)
	if err != nil {
		return c, err
	}
	c.Status = domain.CampaignStatus(status)
	c.Result.CampaignID = c.ID
	c.Result.Status = c.Status
	return c, nil
}
