package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easycatalog/easycatalog-be/internal/adapters/db"
	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
	"github.com/easycatalog/easycatalog-be/test/helpers"
)

func TestProductRepository_Save_Unit(t *testing.T) {
	testDB := helpers.SetupTestDB(t)
	defer testDB.Database.Close()

	repo := db.NewProductRepository(testDB.Database, helpers.TestLogger().Logger)
	ctx := context.Background()

	store := helpers.CreateTestStore(t, testDB.PgxPool)

	product := &domain.Product{
		StoreID:     store.ID,
		Name:        "Classic Cotton Tee",
		Slug:        "classic-cotton-tee",
		Description: "Heavyweight cotton, boxy fit",
		Status:      domain.StatusActive,
		Variants: []domain.ProductVariant{
			{Name: "White / M", SKU: "TEE-WHT-M", Price: decimal.NewFromFloat(24.99)},
			{Name: "Black / M", SKU: "TEE-BLK-M", Price: decimal.NewFromFloat(24.99)},
		},
		Images: []domain.ProductImage{
			{URL: "https://cdn.example.com/tee-front.jpg", Alt: "Front"},
			{URL: "https://cdn.example.com/tee-back.jpg"},
		},
	}
	product.PrepareForStorage()
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByID(ctx, store.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "classic-cotton-tee", found.Slug)
	require.Len(t, found.Variants, 2)
	assert.Equal(t, 0, found.Variants[0].Stock)
	require.Len(t, found.Images, 2)
	assert.Equal(t, 0, found.Images[0].Position)
	assert.Equal(t, 1, found.Images[1].Position)
}

func TestProductRepository_FindByID_StoreScoped_Unit(t *testing.T) {
	testDB := helpers.SetupTestDB(t)
	defer testDB.Database.Close()

	repo := db.NewProductRepository(testDB.Database, helpers.TestLogger().Logger)
	ctx := context.Background()

	store := helpers.CreateTestStore(t, testDB.PgxPool)
	product := helpers.CreateTestProduct(t, testDB.PgxPool, store.ID)

	found, err := repo.FindByID(ctx, store.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	otherStore := helpers.CreateTestStore(t, testDB.PgxPool)
	_, err = repo.FindByID(ctx, otherStore.ID, product.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepository_FindAll_Unit(t *testing.T) {
	testDB := helpers.SetupTestDB(t)
	defer testDB.Database.Close()

	repo := db.NewProductRepository(testDB.Database, helpers.TestLogger().Logger)
	ctx := context.Background()

	store := helpers.CreateTestStore(t, testDB.PgxPool)
	category := helpers.CreateTestCategory(t, testDB.PgxPool, store.ID)

	for i := 0; i < 3; i++ {
		helpers.CreateTestProduct(t, testDB.PgxPool, store.ID, func(p *domain.Product) {
			p.Name = fmt.Sprintf("Tee %d", i+1)
			p.CategoryID = &category.ID
		})
	}
	helpers.CreateTestProduct(t, testDB.PgxPool, store.ID, func(p *domain.Product) {
		p.Name = "Drafted Hoodie"
		p.Status = domain.StatusDraft
	})

	t.Run("lists_all_for_store", func(t *testing.T) {
		products, total, err := repo.FindAll(ctx, ports.ProductListParams{StoreID: store.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, products, 4)
	})

	t.Run("filters_by_status", func(t *testing.T) {
		products, total, err := repo.FindAll(ctx, ports.ProductListParams{
			StoreID: store.ID,
			Status:  domain.StatusDraft,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, products, 1)
		assert.Equal(t, "Drafted Hoodie", products[0].Name)
	})

	t.Run("filters_by_category", func(t *testing.T) {
		_, total, err := repo.FindAll(ctx, ports.ProductListParams{
			StoreID:    store.ID,
			CategoryID: &category.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("searches_name", func(t *testing.T) {
		products, total, err := repo.FindAll(ctx, ports.ProductListParams{
			StoreID: store.ID,
			Search:  "hoodie",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, products, 1)
		assert.Equal(t, "Drafted Hoodie", products[0].Name)
	})

	t.Run("paginates_with_total", func(t *testing.T) {
		products, total, err := repo.FindAll(ctx, ports.ProductListParams{
			StoreID:  store.ID,
			Page:     2,
			PageSize: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, products, 1)
	})

	t.Run("sorts_by_name_ascending", func(t *testing.T) {
		products, _, err := repo.FindAll(ctx, ports.ProductListParams{
			StoreID:   store.ID,
			SortBy:    "name",
			SortOrder: "asc",
		})
		require.NoError(t, err)
		require.NotEmpty(t, products)
		assert.Equal(t, "Drafted Hoodie", products[0].Name)
	})
}

func TestProductRepository_Delete_Cascades_Unit(t *testing.T) {
	testDB := helpers.SetupTestDB(t)
	defer testDB.Database.Close()

	repo := db.NewProductRepository(testDB.Database, helpers.TestLogger().Logger)
	ctx := context.Background()

	store := helpers.CreateTestStore(t, testDB.PgxPool)
	product := helpers.CreateTestProduct(t, testDB.PgxPool, store.ID)
	variant := helpers.CreateTestVariant(t, testDB.PgxPool, product.ID)
	helpers.RecordTestMovement(t, testDB.PgxPool, variant.ID, domain.MovementRestock, 10, 0)

	require.NoError(t, repo.Delete(ctx, store.ID, product.ID))

	var count int
	err := testDB.PgxPool.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock_movements WHERE variant_id = $1`, variant.ID,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	err = repo.Delete(ctx, store.ID, product.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepository_Variants_Unit(t *testing.T) {
	testDB := helpers.SetupTestDB(t)
	defer testDB.Database.Close()

	repo := db.NewProductRepository(testDB.Database, helpers.TestLogger().Logger)
	ctx := context.Background()

	store := helpers.CreateTestStore(t, testDB.PgxPool)
	product := helpers.CreateTestProduct(t, testDB.PgxPool, store.ID)

	variant := &domain.ProductVariant{
		ProductID: product.ID,
		Name:      "Olive / L",
		SKU:       "TEE-OLV-L",
		Price:     decimal.NewFromFloat(26.50),
	}
	variant.PrepareForStorage()
	require.NoError(t, repo.SaveVariant(ctx, variant))

	t.Run("sku_exists", func(t *testing.T) {
		exists, err := repo.SKUExists(ctx, store.ID, "TEE-OLV-L", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.SKUExists(ctx, store.ID, "TEE-OLV-L", variant.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("find_variant_store_scoped", func(t *testing.T) {
		found, err := repo.FindVariantByID(ctx, store.ID, variant.ID)
		require.NoError(t, err)
		assert.Equal(t, "TEE-OLV-L", found.SKU)

		otherStore := helpers.CreateTestStore(t, testDB.PgxPool)
		_, err = repo.FindVariantByID(ctx, otherStore.ID, variant.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("update_variant", func(t *testing.T) {
		variant.Price = decimal.NewFromFloat(27.00)
		require.NoError(t, repo.UpdateVariant(ctx, store.ID, variant))

		found, err := repo.FindVariantByID(ctx, store.ID, variant.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(27.00).Equal(found.Price))
	})

	t.Run("delete_variant", func(t *testing.T) {
		require.NoError(t, repo.DeleteVariant(ctx, store.ID, variant.ID))
		_, err := repo.FindVariantByID(ctx, store.ID, variant.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProductRepository_Images_Unit(t *testing.T) {
	testDB := helpers.SetupTestDB(t)
	defer testDB.Database.Close()

	repo := db.NewProductRepository(testDB.Database, helpers.TestLogger().Logger)
	ctx := context.Background()

	store := helpers.CreateTestStore(t, testDB.PgxPool)
	product := helpers.CreateTestProduct(t, testDB.PgxPool, store.ID)

	first := &domain.ProductImage{
		ID:        uuid.New(),
		ProductID: product.ID,
		URL:       "https://cdn.example.com/one.jpg",
		Position:  0,
	}
	second := &domain.ProductImage{
		ID:        uuid.New(),
		ProductID: product.ID,
		URL:       "https://cdn.example.com/two.jpg",
		Position:  1,
	}
	require.NoError(t, repo.SaveImage(ctx, first))
	require.NoError(t, repo.SaveImage(ctx, second))

	require.NoError(t, repo.ReorderImages(ctx, product.ID, []uuid.UUID{second.ID, first.ID}))

	found, err := repo.FindByID(ctx, store.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, found.Images, 2)
	assert.Equal(t, second.ID, found.Images[0].ID)
	assert.Equal(t, first.ID, found.Images[1].ID)

	require.NoError(t, repo.DeleteImage(ctx, store.ID, first.ID))
	found, err = repo.FindByID(ctx, store.ID, product.ID)
	require.NoError(t, err)
	assert.Len(t, found.Images, 1)
}

func TestProductRepository_Stats_Unit(t *testing.T) {
	testDB := helpers.SetupTestDB(t)
	defer testDB.Database.Close()

	repo := db.NewProductRepository(testDB.Database, helpers.TestLogger().Logger)
	ctx := context.Background()

	store := helpers.CreateTestStore(t, testDB.PgxPool)
	active := helpers.CreateTestProduct(t, testDB.PgxPool, store.ID)
	helpers.CreateTestProduct(t, testDB.PgxPool, store.ID, func(p *domain.Product) {
		p.Status = domain.StatusDraft
	})
	helpers.CreateTestProduct(t, testDB.PgxPool, store.ID, func(p *domain.Product) {
		p.Status = domain.StatusArchived
	})

	variant := helpers.CreateTestVariant(t, testDB.PgxPool, active.ID)
	helpers.RecordTestMovement(t, testDB.PgxPool, variant.ID, domain.MovementRestock, 2, 0)

	stats, err := repo.Stats(ctx, store.ID, domain.DefaultLowStockThreshold)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Draft)
	assert.Equal(t, 1, stats.Archived)
	assert.Equal(t, 1, stats.LowStock)
}
