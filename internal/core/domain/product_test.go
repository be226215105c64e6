package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
)

func TestProduct_Validate(t *testing.T) {
	validProduct := func() *domain.Product {
		return &domain.Product{
			StoreID: uuid.New(),
			Name:    "Classic Cotton Tee",
			Slug:    "classic-cotton-tee",
			Status:  domain.StatusActive,
		}
	}

	tests := []struct {
		name      string
		mutate    func(*domain.Product)
		wantError bool
		errorMsg  string
	}{
		{
			name:      "valid_product",
			mutate:    func(p *domain.Product) {},
			wantError: false,
		},
		{
			name:      "missing_store_id",
			mutate:    func(p *domain.Product) { p.StoreID = uuid.Nil },
			wantError: true,
			errorMsg:  "store_id is required",
		},
		{
			name:      "name_too_short",
			mutate:    func(p *domain.Product) { p.Name = "x" },
			wantError: true,
			errorMsg:  "name must be between 2 and 200 characters",
		},
		{
			name:      "name_too_long",
			mutate:    func(p *domain.Product) { p.Name = strings.Repeat("a", 201) },
			wantError: true,
			errorMsg:  "name must be between 2 and 200 characters",
		},
		{
			name:      "invalid_slug_characters",
			mutate:    func(p *domain.Product) { p.Slug = "Not A Slug!" },
			wantError: true,
		},
		{
			name:      "uppercase_slug_rejected",
			mutate:    func(p *domain.Product) { p.Slug = "Classic-Tee" },
			wantError: true,
		},
		{
			name:      "description_too_long",
			mutate:    func(p *domain.Product) { p.Description = strings.Repeat("d", 2001) },
			wantError: true,
			errorMsg:  "description must be at most 2000 characters",
		},
		{
			name:      "unknown_status",
			mutate:    func(p *domain.Product) { p.Status = "RETIRED" },
			wantError: true,
			errorMsg:  "invalid status",
		},
		{
			name: "invalid_variant_bubbles_up",
			mutate: func(p *domain.Product) {
				p.Variants = []domain.ProductVariant{
					{Name: "Default", Price: decimal.NewFromFloat(-1)},
				}
			},
			wantError: true,
			errorMsg:  "price cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(p)

			err := p.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProduct_Validate_DefaultsStatusToDraft(t *testing.T) {
	p := &domain.Product{
		StoreID: uuid.New(),
		Name:    "Enamel Pin Set",
		Slug:    "enamel-pin-set",
	}

	require.NoError(t, p.Validate())
	assert.Equal(t, domain.StatusDraft, p.Status)
}

func TestProductVariant_Validate(t *testing.T) {
	negative := decimal.NewFromFloat(-2.50)

	tests := []struct {
		name      string
		variant   *domain.ProductVariant
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid_variant",
			variant: &domain.ProductVariant{
				Name:  "Medium / Black",
				SKU:   "TEE-BLK-M",
				Price: decimal.NewFromFloat(19.99),
				Stock: 10,
			},
			wantError: false,
		},
		{
			name: "empty_name",
			variant: &domain.ProductVariant{
				Price: decimal.NewFromFloat(10),
			},
			wantError: true,
			errorMsg:  "name must be between 1 and 100 characters",
		},
		{
			name: "negative_price",
			variant: &domain.ProductVariant{
				Name:  "Default",
				Price: decimal.NewFromFloat(-5),
			},
			wantError: true,
			errorMsg:  "price cannot be negative",
		},
		{
			name: "negative_cost_price",
			variant: &domain.ProductVariant{
				Name:      "Default",
				Price:     decimal.NewFromFloat(5),
				CostPrice: &negative,
			},
			wantError: true,
			errorMsg:  "cost_price cannot be negative",
		},
		{
			name: "negative_stock",
			variant: &domain.ProductVariant{
				Name:  "Default",
				Price: decimal.NewFromFloat(5),
				Stock: -1,
			},
			wantError: true,
			errorMsg:  "stock cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.variant.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProduct_PrepareForStorage(t *testing.T) {
	p := &domain.Product{
		StoreID: uuid.New(),
		Name:    "Ceramic Mug",
		Slug:    "ceramic-mug",
		Variants: []domain.ProductVariant{
			{Name: "White", Price: decimal.NewFromFloat(9.99)},
			{Name: "Matte Black", Price: decimal.NewFromFloat(10.99)},
		},
		Images: []domain.ProductImage{
			{URL: "https://cdn.example.com/mug-1.jpg"},
			{URL: "https://cdn.example.com/mug-2.jpg"},
		},
	}

	p.PrepareForStorage()

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, domain.StatusDraft, p.Status)

	for i, v := range p.Variants {
		assert.NotEqual(t, uuid.Nil, v.ID, "variant %d should get an ID", i)
		assert.Equal(t, p.ID, v.ProductID, "variant %d should link to product", i)
	}

	for i, img := range p.Images {
		assert.NotEqual(t, uuid.Nil, img.ID, "image %d should get an ID", i)
		assert.Equal(t, p.ID, img.ProductID, "image %d should link to product", i)
		assert.Equal(t, i, img.Position, "image %d should keep list order", i)
	}
}

func TestValidateSlug(t *testing.T) {
	valid := []string{"tees", "classic-cotton-tee", "a1-b2-c3", "x2"}
	for _, slug := range valid {
		assert.NoError(t, domain.ValidateSlug(slug), "slug %q should be valid", slug)
	}

	invalid := []string{"", "a", "UPPER", "has space", "slug_underscore", "slug.dot", strings.Repeat("a", 101)}
	for _, slug := range invalid {
		assert.Error(t, domain.ValidateSlug(slug), "slug %q should be rejected", slug)
	}
}
