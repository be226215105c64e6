// internal/adapters/db/tiktok_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

// tiktokRepository implements ports.TikTokRepository
type tiktokRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewTikTokRepository creates a new integration repository
func NewTikTokRepository(db *Database, logger *slog.Logger) ports.TikTokRepository {
	return &tiktokRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "tiktok")),
	}
}

// UpsertByStore inserts or replaces the store's integration record.
// One integration per store, enforced by a unique constraint.
func (r *tiktokRepository) UpsertByStore(ctx context.Context, t *domain.TikTokIntegration) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO tiktok_integrations (
			id, store_id, shop_id, shop_name,
			access_token, refresh_token,
			access_token_expires_at, refresh_token_expires_at, scopes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (store_id) DO UPDATE SET
			shop_id = EXCLUDED.shop_id,
			shop_name = EXCLUDED.shop_name,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			access_token_expires_at = EXCLUDED.access_token_expires_at,
			refresh_token_expires_at = EXCLUDED.refresh_token_expires_at,
			scopes = EXCLUDED.scopes,
			updated_at = now()
		RETURNING id, created_at, updated_at`,
		t.ID, t.StoreID, t.ShopID, nullIfEmpty(t.ShopName),
		t.AccessToken, t.RefreshToken,
		t.AccessTokenExpiresAt, t.RefreshTokenExpiresAt, t.Scopes,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert integration: %w", err)
	}

	r.logger.InfoContext(ctx, "integration upserted",
		slog.String("store_id", t.StoreID.String()),
		slog.String("shop_id", t.ShopID),
	)
	return nil
}

// FindByStore fetches the store's integration record
func (r *tiktokRepository) FindByStore(ctx context.Context, storeID uuid.UUID) (*domain.TikTokIntegration, error) {
	t := &domain.TikTokIntegration{}
	var shopName *string
	err := r.db.QueryRow(ctx, `
		SELECT id, store_id, shop_id, shop_name,
		       access_token, refresh_token,
		       access_token_expires_at, refresh_token_expires_at, scopes,
		       created_at, updated_at
		FROM tiktok_integrations
		WHERE store_id = $1`,
		storeID,
	).Scan(
		&t.ID, &t.StoreID, &t.ShopID, &shopName,
		&t.AccessToken, &t.RefreshToken,
		&t.AccessTokenExpiresAt, &t.RefreshTokenExpiresAt, &t.Scopes,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("integration for store %s: %w", storeID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find integration: %w", err)
	}

	if shopName != nil {
		t.ShopName = *shopName
	}
	return t, nil
}

// DeleteByStore disconnects the store's shop
func (r *tiktokRepository) DeleteByStore(ctx context.Context, storeID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM tiktok_integrations WHERE store_id = $1`,
		storeID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete integration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("integration for store %s: %w", storeID, domain.ErrNotFound)
	}
	return nil
}
