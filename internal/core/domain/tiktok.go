// internal/core/domain/tiktok.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TikTokIntegration stores a shop connection's credentials per store.
// Token exchange and refresh happen outside this service; we only persist
// what the connect flow hands us.
type TikTokIntegration struct {
	ID                    uuid.UUID `json:"id"`
	StoreID               uuid.UUID `json:"store_id"`
	ShopID                string    `json:"shop_id"`
	ShopName              string    `json:"shop_name,omitempty"`
	AccessToken           string    `json:"-"`
	RefreshToken          string    `json:"-"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	Scopes                []string  `json:"scopes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Validate performs domain validation on the integration record
func (t *TikTokIntegration) Validate() error {
	if t.StoreID == uuid.Nil {
		return fmt.Errorf("%w: store_id is required", ErrValidation)
	}
	if t.ShopID == "" {
		return fmt.Errorf("%w: shop_id is required", ErrValidation)
	}
	if t.AccessToken == "" {
		return fmt.Errorf("%w: access_token is required", ErrValidation)
	}
	return nil
}
