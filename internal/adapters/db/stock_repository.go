// internal/adapters/db/stock_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

// stockRepository implements ports.StockRepository
type stockRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewStockRepository creates a new stock ledger repository
func NewStockRepository(db *Database, logger *slog.Logger) ports.StockRepository {
	return &stockRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "stock")),
	}
}

// nullIfEmpty maps "" to NULL for optional text columns
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// lockVariantStock reads the variant's counter under FOR UPDATE, so
// concurrent movements against the same variant serialize here.
func lockVariantStock(ctx context.Context, tx pgx.Tx, variantID uuid.UUID) (int, error) {
	var stock int
	err := tx.QueryRow(ctx,
		`SELECT stock FROM product_variants WHERE id = $1 FOR UPDATE`,
		variantID,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to lock variant: %w", err)
	}
	return stock, nil
}

// writeMovement inserts the ledger row and updates the variant counter.
// Both statements run on the caller's transaction; movement snapshot
// fields must already be set.
func writeMovement(ctx context.Context, tx pgx.Tx, m *domain.StockMovement) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO stock_movements (
			id, variant_id, quantity, type,
			previous_stock, new_stock, reference, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq, created_at`,
		m.ID, m.VariantID, m.Quantity, m.Type,
		m.PreviousStock, m.NewStock, nullIfEmpty(m.Reference), nullIfEmpty(m.Notes),
	).Scan(&m.Seq, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE product_variants SET stock = $1, updated_at = now() WHERE id = $2`,
		m.NewStock, m.VariantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update variant stock: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("variant %s vanished during movement", m.VariantID)
	}

	return nil
}

// ApplyMovement records a delta movement atomically with the counter update
func (r *stockRepository) ApplyMovement(ctx context.Context, m *domain.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		previous, err := lockVariantStock(ctx, tx, m.VariantID)
		if err != nil {
			return err
		}

		next := previous + m.Quantity
		if next < 0 {
			return fmt.Errorf("%w: stock %d, movement %d", domain.ErrInsufficientStock, previous, m.Quantity)
		}

		m.PreviousStock = previous
		m.NewStock = next
		return writeMovement(ctx, tx, m)
	})
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "stock movement applied",
		slog.String("variant_id", m.VariantID.String()),
		slog.String("type", string(m.Type)),
		slog.Int("quantity", m.Quantity),
		slog.Int("new_stock", m.NewStock),
	)

	return nil
}

// ApplyAdjustment sets the counter to an absolute level, deriving the
// movement quantity under the same row lock
func (r *stockRepository) ApplyAdjustment(ctx context.Context, variantID uuid.UUID, newStock int, notes string) (*domain.StockMovement, error) {
	if newStock < 0 {
		return nil, fmt.Errorf("%w: new stock cannot be negative", domain.ErrValidation)
	}

	m := &domain.StockMovement{
		ID:        uuid.New(),
		VariantID: variantID,
		Type:      domain.MovementAdjustment,
		Notes:     notes,
	}

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		previous, err := lockVariantStock(ctx, tx, variantID)
		if err != nil {
			return err
		}

		m.PreviousStock = previous
		m.NewStock = newStock
		m.Quantity = newStock - previous
		return writeMovement(ctx, tx, m)
	})
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "stock adjusted",
		slog.String("variant_id", variantID.String()),
		slog.Int("previous_stock", m.PreviousStock),
		slog.Int("new_stock", m.NewStock),
	)

	return m, nil
}

// GetStock reads the variant's current counter
func (r *stockRepository) GetStock(ctx context.Context, variantID uuid.UUID) (int, error) {
	var stock int
	err := r.db.QueryRow(ctx,
		`SELECT stock FROM product_variants WHERE id = $1`,
		variantID,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to read stock: %w", err)
	}
	return stock, nil
}

// FindMovements pages through the ledger newest-first with a stable
// tie-break on seq
func (r *stockRepository) FindMovements(ctx context.Context, params ports.MovementListParams) ([]domain.StockMovement, int64, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query := psql.Select(
		"sm.id", "sm.variant_id", "sm.quantity", "sm.type",
		"sm.previous_stock", "sm.new_stock",
		"COALESCE(sm.reference, '')", "COALESCE(sm.notes, '')",
		"sm.seq", "sm.created_at",
		"COUNT(*) OVER() AS total_count",
	).From("stock_movements sm")

	switch {
	case params.VariantID != nil:
		query = query.Where(squirrel.Eq{"sm.variant_id": *params.VariantID})
	case params.StoreID != nil:
		query = query.
			Join("product_variants pv ON pv.id = sm.variant_id").
			Join("products p ON p.id = pv.product_id").
			Where(squirrel.Eq{"p.store_id": *params.StoreID})
	default:
		return nil, 0, fmt.Errorf("%w: either variant_id or store_id is required", domain.ErrValidation)
	}

	if params.Type != "" {
		query = query.Where(squirrel.Eq{"sm.type": params.Type})
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
		OrderBy("sm.created_at DESC", "sm.seq DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build movements query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	var movements []domain.StockMovement
	var total int64
	for rows.Next() {
		var m domain.StockMovement
		if err := rows.Scan(
			&m.ID, &m.VariantID, &m.Quantity, &m.Type,
			&m.PreviousStock, &m.NewStock,
			&m.Reference, &m.Notes,
			&m.Seq, &m.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan movement: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate movements: %w", err)
	}

	return movements, total, nil
}

// FindChain returns a variant's full ledger oldest-first
func (r *stockRepository) FindChain(ctx context.Context, variantID uuid.UUID) ([]domain.StockMovement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, variant_id, quantity, type,
		       previous_stock, new_stock,
		       COALESCE(reference, ''), COALESCE(notes, ''),
		       seq, created_at
		FROM stock_movements
		WHERE variant_id = $1
		ORDER BY created_at ASC, seq ASC`,
		variantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query movement chain: %w", err)
	}
	defer rows.Close()

	var movements []domain.StockMovement
	for rows.Next() {
		var m domain.StockMovement
		if err := rows.Scan(
			&m.ID, &m.VariantID, &m.Quantity, &m.Type,
			&m.PreviousStock, &m.NewStock,
			&m.Reference, &m.Notes,
			&m.Seq, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movement chain: %w", err)
	}

	return movements, nil
}

// Summarize aggregates stock counts and valuation over a store's variants
func (r *stockRepository) Summarize(ctx context.Context, storeID uuid.UUID, threshold int) (*domain.StockSummary, error) {
	summary := &domain.StockSummary{Threshold: threshold}
	err := r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(pv.stock), 0),
			COALESCE(SUM(pv.price * pv.stock), 0),
			COALESCE(SUM(COALESCE(pv.cost_price, 0) * pv.stock), 0),
			COUNT(*) FILTER (WHERE pv.stock <= $2),
			COUNT(*) FILTER (WHERE pv.stock = 0),
			COUNT(*)
		FROM product_variants pv
		JOIN products p ON p.id = pv.product_id
		WHERE p.store_id = $1`,
		storeID, threshold,
	).Scan(
		&summary.TotalStock,
		&summary.TotalValue,
		&summary.TotalCost,
		&summary.LowStockCount,
		&summary.OutOfStockCount,
		&summary.VariantCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize stock: %w", err)
	}

	return summary, nil
}

// FindLowStock lists restock candidates ordered by stock ascending
func (r *stockRepository) FindLowStock(ctx context.Context, storeID uuid.UUID, threshold, limit int) ([]domain.LowStockVariant, error) {
	if limit < 1 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, `
		SELECT pv.id, pv.name, COALESCE(pv.sku, ''), pv.stock,
		       p.id, p.name, p.slug
		FROM product_variants pv
		JOIN products p ON p.id = pv.product_id
		WHERE p.store_id = $1 AND pv.stock <= $2
		ORDER BY pv.stock ASC, pv.name ASC
		LIMIT $3`,
		storeID, threshold, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock variants: %w", err)
	}
	defer rows.Close()

	var variants []domain.LowStockVariant
	for rows.Next() {
		var v domain.LowStockVariant
		if err := rows.Scan(
			&v.VariantID, &v.VariantName, &v.SKU, &v.Stock,
			&v.ProductID, &v.ProductName, &v.ProductSlug,
		); err != nil {
			return nil, fmt.Errorf("failed to scan low stock variant: %w", err)
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate low stock variants: %w", err)
	}

	return variants, nil
}
