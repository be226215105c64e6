// internal/core/domain/product.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the lifecycle state of a product
type ProductStatus string

const (
	StatusDraft    ProductStatus = "DRAFT"
	StatusActive   ProductStatus = "ACTIVE"
	StatusArchived ProductStatus = "ARCHIVED"
)

// ValidStatus reports whether s is a known product status
func ValidStatus(s ProductStatus) bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	}
	return false
}

// Product is a sellable catalog entry. Stock lives on variants, never on
// the product itself.
type Product struct {
	ID          uuid.UUID     `json:"id"`
	StoreID     uuid.UUID     `json:"store_id"`
	CategoryID  *uuid.UUID    `json:"category_id,omitempty"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description,omitempty"`
	Status      ProductStatus `json:"status"`
	TikTokID    string        `json:"tiktok_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Variants []ProductVariant `json:"variants,omitempty"`
	Images   []ProductImage   `json:"images,omitempty"`
	Category *Category        `json:"category,omitempty"`
}

// ProductVariant is the unit stock is tracked against. Price and cost are
// stored as decimals; Stock is only ever changed through the movement ledger.
type ProductVariant struct {
	ID        uuid.UUID        `json:"id"`
	ProductID uuid.UUID        `json:"product_id"`
	Name      string           `json:"name"`
	SKU       string           `json:"sku,omitempty"`
	GTIN      string           `json:"gtin,omitempty"`
	Price     decimal.Decimal  `json:"price"`
	CostPrice *decimal.Decimal `json:"cost_price,omitempty"`
	Stock     int              `json:"stock"`
	Weight    *decimal.Decimal `json:"weight,omitempty"`
	TikTokID  string           `json:"tiktok_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ProductImage is an ordered image attached to a product
type ProductImage struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	URL       string    `json:"url"`
	Alt       string    `json:"alt,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductStats aggregates product counts for the dashboard
type ProductStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Draft    int `json:"draft"`
	Archived int `json:"archived"`
	LowStock int `json:"low_stock"`
}

// Validate performs domain validation on the product
func (p *Product) Validate() error {
	if p.StoreID == uuid.Nil {
		return fmt.Errorf("%w: store_id is required", ErrValidation)
	}
	if len(p.Name) < 2 || len(p.Name) > 200 {
		return fmt.Errorf("%w: name must be between 2 and 200 characters", ErrValidation)
	}
	if err := ValidateSlug(p.Slug); err != nil {
		return err
	}
	if len(p.Description) > 2000 {
		return fmt.Errorf("%w: description must be at most 2000 characters", ErrValidation)
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if !ValidStatus(p.Status) {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, p.Status)
	}
	for i := range p.Variants {
		if err := p.Variants[i].Validate(); err != nil {
			return fmt.Errorf("variant %d: %w", i, err)
		}
	}
	return nil
}

// PrepareForStorage sets identity and timestamps before persistence
func (p *Product) PrepareForStorage() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = StatusDraft
	}
	for i := range p.Variants {
		p.Variants[i].ProductID = p.ID
		p.Variants[i].PrepareForStorage()
	}
	for i := range p.Images {
		p.Images[i].ProductID = p.ID
		if p.Images[i].ID == uuid.Nil {
			p.Images[i].ID = uuid.New()
		}
		p.Images[i].Position = i
	}
}

// Validate performs domain validation on the variant
func (v *ProductVariant) Validate() error {
	if len(v.Name) < 1 || len(v.Name) > 100 {
		return fmt.Errorf("%w: name must be between 1 and 100 characters", ErrValidation)
	}
	if v.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if v.CostPrice != nil && v.CostPrice.IsNegative() {
		return fmt.Errorf("%w: cost_price cannot be negative", ErrValidation)
	}
	if v.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	return nil
}

// PrepareForStorage sets identity and timestamps before persistence
func (v *ProductVariant) PrepareForStorage() {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	now := time.Now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now
}
