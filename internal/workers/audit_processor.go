// internal/workers/audit_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	redis_a "github.com/easycatalog/easycatalog-be/internal/adapters/redis_adapter"
	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

const (
	TypeLedgerAudit      = "ledger:audit"
	TypeRefreshSummaries = "summary:refresh"
	TypeCleanupStores    = "cleanup:stores"
)

const auditLockTTL = 30 * time.Minute

// AuditJobPayload selects what the audit covers. A nil StoreID means
// every store.
type AuditJobPayload struct {
	StoreID *uuid.UUID `json:"store_id,omitempty"`
}

// AuditJobResult summarizes a ledger audit run
type AuditJobResult struct {
	VariantsChecked int      `json:"variants_checked"`
	ChainViolations []string `json:"chain_violations,omitempty"`
	CounterDrift    []string `json:"counter_drift,omitempty"`
	ProcessingTime  string   `json:"processing_time"`
}

// AuditProcessor walks the movement ledger and verifies that every
// variant's chain is internally consistent and that the stored counter
// matches the last recorded snapshot.
type AuditProcessor struct {
	stock  ports.StockRepository
	db     ports.Database
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewAuditProcessor creates a new ledger audit processor
func NewAuditProcessor(stock ports.StockRepository, db ports.Database, cache ports.CacheRepository, logger *slog.Logger) *AuditProcessor {
	return &AuditProcessor{
		stock:  stock,
		db:     db,
		cache:  cache,
		logger: logger.With(slog.String("processor", "ledger_audit")),
	}
}

// AuditLedger processes a ledger:audit task
func (p *AuditProcessor) AuditLedger(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload AuditJobPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	// One audit at a time; overlapping runs would double-report
	lockKey := redis_a.BuildKey(redis_a.PrefixWorker, "audit:lock")
	locked, err := p.cache.SetNX(ctx, lockKey, time.Now().UTC().Format(time.RFC3339), auditLockTTL)
	if err != nil {
		p.logger.WarnContext(ctx, "audit lock unavailable, proceeding without it",
			slog.Any("err", err))
	} else if !locked {
		p.logger.InfoContext(ctx, "audit already running, skipping")
		return nil
	} else {
		defer func() {
			if err := p.cache.Delete(context.WithoutCancel(ctx), lockKey); err != nil {
				p.logger.WarnContext(ctx, "failed to release audit lock", slog.Any("err", err))
			}
		}()
	}

	variantIDs, err := p.listVariants(ctx, payload.StoreID)
	if err != nil {
		return fmt.Errorf("failed to list variants: %w", err)
	}

	result := AuditJobResult{}
	for _, variantID := range variantIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		chain, err := p.stock.FindChain(ctx, variantID)
		if err != nil {
			return fmt.Errorf("failed to load chain for variant %s: %w", variantID, err)
		}
		result.VariantsChecked++

		if idx := domain.VerifyMovementChain(chain); idx >= 0 {
			violation := fmt.Sprintf("variant %s: broken chain at movement %s", variantID, chain[idx].ID)
			result.ChainViolations = append(result.ChainViolations, violation)
			p.logger.ErrorContext(ctx, "ledger chain violation",
				slog.String("variant_id", variantID.String()),
				slog.String("movement_id", chain[idx].ID.String()),
				slog.Int("index", idx))
		}

		if len(chain) > 0 {
			stock, err := p.stock.GetStock(ctx, variantID)
			if err != nil {
				return fmt.Errorf("failed to read stock for variant %s: %w", variantID, err)
			}
			last := chain[len(chain)-1]
			if stock != last.NewStock {
				drift := fmt.Sprintf("variant %s: counter %d, ledger %d", variantID, stock, last.NewStock)
				result.CounterDrift = append(result.CounterDrift, drift)
				p.logger.ErrorContext(ctx, "stock counter drift",
					slog.String("variant_id", variantID.String()),
					slog.Int("counter", stock),
					slog.Int("ledger", last.NewStock))
			}
		}
	}

	result.ProcessingTime = time.Since(start).String()

	p.logger.InfoContext(ctx, "ledger audit completed",
		slog.Int("variants_checked", result.VariantsChecked),
		slog.Int("chain_violations", len(result.ChainViolations)),
		slog.Int("counter_drift", len(result.CounterDrift)),
		slog.String("duration", result.ProcessingTime))

	if len(result.ChainViolations) > 0 || len(result.CounterDrift) > 0 {
		resultJSON, _ := json.Marshal(result)
		return fmt.Errorf("ledger audit found inconsistencies: %s", resultJSON)
	}

	return nil
}

func (p *AuditProcessor) listVariants(ctx context.Context, storeID *uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT pv.id
		FROM product_variants pv
		JOIN products p ON p.id = pv.product_id`
	args := []interface{}{}
	if storeID != nil {
		query += ` WHERE p.store_id = $1`
		args = append(args, *storeID)
	}
	query += ` ORDER BY pv.id`

	rows, err := p.db.Query(ctx, query, args...)
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
