// internal/adapters/db/product_repository.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

// productRepository implements ports.ProductRepository
type productRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *Database, logger *slog.Logger) ports.ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "product")),
	}
}

// numericPtr converts a nullable numeric column to *decimal.Decimal
func numericPtr(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	v, err := n.Value()
	if err != nil || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// Save creates a product with its variants and images in one transaction
func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (
				id, store_id, category_id, name, slug, description,
				status, tiktok_id, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			product.ID, product.StoreID, product.CategoryID,
			product.Name, product.Slug, nullIfEmpty(product.Description),
			product.Status, nullIfEmpty(product.TikTokID),
			product.CreatedAt, product.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}

		for i := range product.Variants {
			if err := insertVariant(ctx, tx, &product.Variants[i]); err != nil {
				return err
			}
		}
		for i := range product.Images {
			img := &product.Images[i]
			_, err := tx.Exec(ctx, `
				INSERT INTO product_images (id, product_id, url, alt, position)
				VALUES ($1, $2, $3, $4, $5)`,
				img.ID, img.ProductID, img.URL, nullIfEmpty(img.Alt), img.Position,
			)
			if err != nil {
				return fmt.Errorf("failed to insert image: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "product saved",
		slog.String("product_id", product.ID.String()),
		slog.String("slug", product.Slug),
		slog.Int("variants", len(product.Variants)),
	)
	return nil
}

func insertVariant(ctx context.Context, tx pgx.Tx, v *domain.ProductVariant) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO product_variants (
			id, product_id, name, sku, gtin, price, cost_price,
			stock, weight, tiktok_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		v.ID, v.ProductID, v.Name, nullIfEmpty(v.SKU), nullIfEmpty(v.GTIN),
		v.Price, v.CostPrice, v.Stock, v.Weight, nullIfEmpty(v.TikTokID),
		v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert variant: %w", err)
	}
	return nil
}

// Update modifies product fields; variants and images have their own methods
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET category_id = $3, name = $4, slug = $5, description = $6,
		    status = $7, tiktok_id = $8, updated_at = now()
		WHERE id = $1 AND store_id = $2`,
		product.ID, product.StoreID, product.CategoryID,
		product.Name, product.Slug, nullIfEmpty(product.Description),
		product.Status, nullIfEmpty(product.TikTokID),
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", product.ID, domain.ErrNotFound)
	}
	return nil
}

// FindByID fetches a product with variants, images and category
func (r *productRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Product, error) {
	product := &domain.Product{}
	var description, tiktokID sql.NullString
	var categoryName, categorySlug sql.NullString

	err := r.db.QueryRow(ctx, `
		SELECT p.id, p.store_id, p.category_id, p.name, p.slug, p.description,
		       p.status, p.tiktok_id, p.created_at, p.updated_at,
		       c.name, c.slug
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1 AND p.store_id = $2`,
		id, storeID,
	).Scan(
		&product.ID, &product.StoreID, &product.CategoryID,
		&product.Name, &product.Slug, &description,
		&product.Status, &tiktokID, &product.CreatedAt, &product.UpdatedAt,
		&categoryName, &categorySlug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	product.Description = description.String
	product.TikTokID = tiktokID.String
	if product.CategoryID != nil && categoryName.Valid {
		product.Category = &domain.Category{
			ID:      *product.CategoryID,
			StoreID: storeID,
			Name:    categoryName.String,
			Slug:    categorySlug.String,
		}
	}

	variants, err := r.findVariants(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Variants = variants

	images, err := r.findImages(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Images = images

	return product, nil
}

func (r *productRepository) findVariants(ctx context.Context, productID uuid.UUID) ([]domain.ProductVariant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, name, COALESCE(sku, ''), COALESCE(gtin, ''),
		       price, cost_price, stock, weight, COALESCE(tiktok_id, ''),
		       created_at, updated_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY created_at ASC`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	var variants []domain.ProductVariant
	for rows.Next() {
		var v domain.ProductVariant
		var costPrice, weight pgtype.Numeric
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.Name, &v.SKU, &v.GTIN,
			&v.Price, &costPrice, &v.Stock, &weight, &v.TikTokID,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		v.CostPrice = numericPtr(costPrice)
		v.Weight = numericPtr(weight)
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate variants: %w", err)
	}

	return variants, nil
}

func (r *productRepository) findImages(ctx context.Context, productID uuid.UUID) ([]domain.ProductImage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, url, COALESCE(alt, ''), position, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY position ASC`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []domain.ProductImage
	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Alt, &img.Position, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate images: %w", err)
	}

	return images, nil
}

// allowedProductSortColumns whitelists sortable columns
var allowedProductSortColumns = map[string]string{
	"name":       "p.name",
	"slug":       "p.slug",
	"status":     "p.status",
	"created_at": "p.created_at",
	"updated_at": "p.updated_at",
}

// FindAll lists products with filtering, sorting and pagination. Variants
// and images are not loaded on list reads.
func (r *productRepository) FindAll(ctx context.Context, params ports.ProductListParams) ([]*domain.Product, int64, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query := psql.Select(
		"p.id", "p.store_id", "p.category_id", "p.name", "p.slug",
		"COALESCE(p.description, '')", "p.status", "COALESCE(p.tiktok_id, '')",
		"p.created_at", "p.updated_at",
		"COUNT(*) OVER() AS total_count",
	).From("products p").
		Where(squirrel.Eq{"p.store_id": params.StoreID})

	if params.Status != "" {
		query = query.Where(squirrel.Eq{"p.status": params.Status})
	}
	if params.CategoryID != nil {
		query = query.Where(squirrel.Eq{"p.category_id": *params.CategoryID})
	}
	if params.Search != "" {
		search := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"LOWER(p.name)": search},
			squirrel.Like{"LOWER(p.slug)": search},
			squirrel.Like{"LOWER(COALESCE(p.description, ''))": search},
		})
	}

	sortColumn, ok := allowedProductSortColumns[params.SortBy]
	if !ok {
		sortColumn = "p.created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	query = query.
		OrderBy(sortColumn + " " + sortOrder).
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build products query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	var total int64
	for rows.Next() {
		p := &domain.Product{}
		if err := rows.Scan(
			&p.ID, &p.StoreID, &p.CategoryID, &p.Name, &p.Slug,
			&p.Description, &p.Status, &p.TikTokID,
			&p.CreatedAt, &p.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, total, nil
}

// Delete removes a product; variants, their movements and images cascade
func (r *productRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND store_id = $2`,
		id, storeID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}

	r.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id.String()))
	return nil
}

// Stats aggregates product counts for the dashboard
func (r *productRepository) Stats(ctx context.Context, storeID uuid.UUID, lowStockThreshold int) (*domain.ProductStats, error) {
	stats := &domain.ProductStats{}
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'ACTIVE'),
			COUNT(*) FILTER (WHERE status = 'DRAFT'),
			COUNT(*) FILTER (WHERE status = 'ARCHIVED'),
			COUNT(DISTINCT p.id) FILTER (WHERE pv.stock IS NOT NULL AND pv.stock <= $2)
		FROM products p
		LEFT JOIN product_variants pv ON pv.product_id = p.id
		WHERE p.store_id = $1`,
		storeID, lowStockThreshold,
	).Scan(&stats.Total, &stats.Active, &stats.Draft, &stats.Archived, &stats.LowStock)
	if err != nil {
		return nil, fmt.Errorf("failed to compute product stats: %w", err)
	}
	return stats, nil
}

// SlugExists reports whether another product in the store uses the slug
func (r *productRepository) SlugExists(ctx context.Context, storeID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	return r.db.Exists(ctx,
		`SELECT 1 FROM products WHERE store_id = $1 AND slug = $2 AND id != $3`,
		storeID, slug, excludeID,
	)
}

// SaveVariant adds a variant to an existing product
func (r *productRepository) SaveVariant(ctx context.Context, v *domain.ProductVariant) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		return insertVariant(ctx, tx, v)
	})
}

// UpdateVariant modifies variant fields. Stock is deliberately absent:
// the counter only changes through the movement ledger.
func (r *productRepository) UpdateVariant(ctx context.Context, storeID uuid.UUID, v *domain.ProductVariant) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE product_variants pv
		SET name = $3, sku = $4, gtin = $5, price = $6, cost_price = $7,
		    weight = $8, tiktok_id = $9, updated_at = now()
		FROM products p
		WHERE pv.id = $1 AND pv.product_id = p.id AND p.store_id = $2`,
		v.ID, storeID, v.Name, nullIfEmpty(v.SKU), nullIfEmpty(v.GTIN),
		v.Price, v.CostPrice, v.Weight, nullIfEmpty(v.TikTokID),
	)
	if err != nil {
		return fmt.Errorf("failed to update variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("variant %s: %w", v.ID, domain.ErrNotFound)
	}
	return nil
}

// DeleteVariant removes a variant and, via cascade, its movements
func (r *productRepository) DeleteVariant(ctx context.Context, storeID, variantID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM product_variants pv
		USING products p
		WHERE pv.id = $1 AND pv.product_id = p.id AND p.store_id = $2`,
		variantID, storeID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
	}

	r.logger.InfoContext(ctx, "variant deleted", slog.String("variant_id", variantID.String()))
	return nil
}

// FindVariantByID fetches a variant scoped to a store
func (r *productRepository) FindVariantByID(ctx context.Context, storeID, variantID uuid.UUID) (*domain.ProductVariant, error) {
	var v domain.ProductVariant
	var costPrice, weight pgtype.Numeric
	err := r.db.QueryRow(ctx, `
		SELECT pv.id, pv.product_id, pv.name, COALESCE(pv.sku, ''), COALESCE(pv.gtin, ''),
		       pv.price, pv.cost_price, pv.stock, pv.weight, COALESCE(pv.tiktok_id, ''),
		       pv.created_at, pv.updated_at
		FROM product_variants pv
		JOIN products p ON p.id = pv.product_id
		WHERE pv.id = $1 AND p.store_id = $2`,
		variantID, storeID,
	).Scan(
		&v.ID, &v.ProductID, &v.Name, &v.SKU, &v.GTIN,
		&v.Price, &costPrice, &v.Stock, &weight, &v.TikTokID,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find variant: %w", err)
	}

	v.CostPrice = numericPtr(costPrice)
	v.Weight = numericPtr(weight)
	return &v, nil
}

// SKUExists reports whether another variant in the store uses the SKU
func (r *productRepository) SKUExists(ctx context.Context, storeID uuid.UUID, sku string, excludeVariantID uuid.UUID) (bool, error) {
	return r.db.Exists(ctx, `
		SELECT 1 FROM product_variants pv
		JOIN products p ON p.id = pv.product_id
		WHERE p.store_id = $1 AND pv.sku = $2 AND pv.id != $3`,
		storeID, sku, excludeVariantID,
	)
}

// SaveImage appends an image at the end of the product's gallery
func (r *productRepository) SaveImage(ctx context.Context, img *domain.ProductImage) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO product_images (id, product_id, url, alt, position)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM product_images WHERE product_id = $2))
		RETURNING position, created_at`,
		img.ID, img.ProductID, img.URL, nullIfEmpty(img.Alt),
	).Scan(&img.Position, &img.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// DeleteImage removes an image scoped to a store
func (r *productRepository) DeleteImage(ctx context.Context, storeID, imageID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM product_images pi
		USING products p
		WHERE pi.id = $1 AND pi.product_id = p.id AND p.store_id = $2`,
		imageID, storeID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("image %s: %w", imageID, domain.ErrNotFound)
	}
	return nil
}

// ReorderImages rewrites positions to match the given order
func (r *productRepository) ReorderImages(ctx context.Context, productID uuid.UUID, imageIDs []uuid.UUID) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		for position, imageID := range imageIDs {
			tag, err := tx.Exec(ctx,
				`UPDATE product_images SET position = $1 WHERE id = $2 AND product_id = $3`,
				position, imageID, productID,
			)
			if err != nil {
				return fmt.Errorf("failed to reorder image: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("image %s: %w", imageID, domain.ErrNotFound)
			}
		}
		return nil
	})
}
