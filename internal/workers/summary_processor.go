// internal/workers/summary_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	redis_a "github.com/easycatalog/easycatalog-be/internal/adapters/redis_adapter"
	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

// SummaryProcessor keeps stock summary caches warm so dashboard reads
// stay off the aggregate queries.
type SummaryProcessor struct {
	stock  ports.StockService
	db     ports.Database
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewSummaryProcessor creates a new summary refresh processor
func NewSummaryProcessor(stock ports.StockService, db ports.Database, cache ports.CacheRepository, logger *slog.Logger) *SummaryProcessor {
	return &SummaryProcessor{
		stock:  stock,
		db:     db,
		cache:  cache,
		logger: logger.With(slog.String("processor", "summary_refresh")),
	}
}

// RefreshSummaries processes a summary:refresh task
func (p *SummaryProcessor) RefreshSummaries(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	storeIDs, err := p.listStores(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stores: %w", err)
	}

	// Drop stale entries first so Summarize repopulates fresh values
	if err := p.cache.DeletePattern(ctx, redis_a.BuildKey(redis_a.PrefixStock, "summary:*")); err != nil {
		p.logger.WarnContext(ctx, "failed to clear summary cache", slog.Any("err", err))
	}
	if err := p.cache.DeletePattern(ctx, redis_a.BuildKey(redis_a.PrefixDashboard, "*")); err != nil {
		p.logger.WarnContext(ctx, "failed to clear dashboard cache", slog.Any("err", err))
	}

	var refreshed int
	for _, storeID := range storeIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := p.stock.Summarize(ctx, storeID, domain.DefaultLowStockThreshold); err != nil {
			p.logger.ErrorContext(ctx, "failed to refresh summary",
				slog.String("store_id", storeID.String()),
				slog.Any("err", err))
			continue
		}
		refreshed++
	}

	p.logger.InfoContext(ctx, "summaries refreshed",
		slog.Int("stores", len(storeIDs)),
		slog.Int("refreshed", refreshed),
		slog.Duration("duration", time.Since(start)))

	return nil
}

func (p *SummaryProcessor) listStores(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := p.db.Query(ctx, `SELECT id FROM stores WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
