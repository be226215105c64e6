// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/easycatalog/easycatalog-be/internal/adapters/db"
	"github.com/easycatalog/easycatalog-be/internal/pkg/config"
)

// CleanupProcessor purges data that soft deletes left behind
type CleanupProcessor struct {
	db     *db.Database
	config *config.Config
	logger *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(db *db.Database, config *config.Config, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		db:     db,
		config: config,
		logger: logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupDeletedStores permanently removes stores soft-deleted more than
// 90 days ago. Categories, products, variants and movements go with them
// through the FK cascades.
func (p *CleanupProcessor) CleanupDeletedStores(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "cleaning up soft-deleted stores")

	query := `DELETE FROM stores WHERE deleted_at IS NOT NULL AND deleted_at < NOW() - INTERVAL '90 days'`

	result, err := p.db.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to cleanup deleted stores: %w", err)
	}

	p.logger.InfoContext(ctx, "soft-deleted stores purged",
		slog.Int64("rows_deleted", result.RowsAffected()))

	return nil
}
