// internal/workers/audit_processor_test.go
package workers_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/workers"
	"github.com/easycatalog/easycatalog-be/test/helpers"
	"github.com/easycatalog/easycatalog-be/test/mocks"
)

// variantIDRows is a minimal pgx.Rows over a fixed list of variant IDs.
type variantIDRows struct {
	ids []uuid.UUID
	pos int
}

func (r *variantIDRows) Close()                                       {}
func (r *variantIDRows) Err() error                                   { return nil }
func (r *variantIDRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *variantIDRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *variantIDRows) Next() bool {
	r.pos++
	return r.pos <= len(r.ids)
}
func (r *variantIDRows) Scan(dest ...any) error {
	*(dest[0].(*uuid.UUID)) = r.ids[r.pos-1]
	return nil
}
func (r *variantIDRows) Values() ([]any, error) { return nil, nil }
func (r *variantIDRows) RawValues() [][]byte    { return nil }
func (r *variantIDRows) Conn() *pgx.Conn        { return nil }

func newAuditProcessor(t *testing.T) (*workers.AuditProcessor, *mocks.MockStockRepository, *mocks.MockDatabase, *mocks.MockCacheRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	stock := mocks.NewMockStockRepository(ctrl)
	db := mocks.NewMockDatabase(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	return workers.NewAuditProcessor(stock, db, cache, helpers.TestLogger().Logger), stock, db, cache
}

// chainOf builds a ledger where each entry is {quantity, previous, new}.
func chainOf(variantID uuid.UUID, entries ...[3]int) []domain.StockMovement {
	movements := make([]domain.StockMovement, 0, len(entries))
	for _, e := range entries {
		movements = append(movements, domain.StockMovement{
			ID:            uuid.New(),
			VariantID:     variantID,
			Quantity:      e[0],
			PreviousStock: e[1],
			NewStock:      e[2],
		})
	}
	return movements
}

func TestAuditProcessor_AuditLedger(t *testing.T) {
	task := asynq.NewTask(workers.TypeLedgerAudit, nil)

	t.Run("skips_when_another_audit_holds_the_lock", func(t *testing.T) {
		processor, _, _, cache := newAuditProcessor(t)

		cache.EXPECT().
			SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := processor.AuditLedger(context.Background(), task)
		assert.NoError(t, err)
	})

	t.Run("clean_ledger_passes", func(t *testing.T) {
		processor, stock, db, cache := newAuditProcessor(t)
		variantID := uuid.New()

		cache.EXPECT().
			SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil)
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		db.EXPECT().
			Query(gomock.Any(), gomock.Any()).
			Return(&variantIDRows{ids: []uuid.UUID{variantID}}, nil)

		stock.EXPECT().
			FindChain(gomock.Any(), variantID).
			Return(chainOf(variantID, [3]int{10, 0, 10}, [3]int{-3, 10, 7}), nil)
		stock.EXPECT().
			GetStock(gomock.Any(), variantID).
			Return(7, nil)

		err := processor.AuditLedger(context.Background(), task)
		assert.NoError(t, err)
	})

	t.Run("reports_chain_violation", func(t *testing.T) {
		processor, stock, db, cache := newAuditProcessor(t)
		variantID := uuid.New()

		cache.EXPECT().
			SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil)
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		db.EXPECT().
			Query(gomock.Any(), gomock.Any()).
			Return(&variantIDRows{ids: []uuid.UUID{variantID}}, nil)

		// Second movement's arithmetic is off by one
		stock.EXPECT().
			FindChain(gomock.Any(), variantID).
			Return(chainOf(variantID, [3]int{10, 0, 10}, [3]int{-3, 10, 8}), nil)
		stock.EXPECT().
			GetStock(gomock.Any(), variantID).
			Return(8, nil)

		err := processor.AuditLedger(context.Background(), task)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken chain")
	})

	t.Run("reports_counter_drift", func(t *testing.T) {
		processor, stock, db, cache := newAuditProcessor(t)
		variantID := uuid.New()

		cache.EXPECT().
			SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil)
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		db.EXPECT().
			Query(gomock.Any(), gomock.Any()).
			Return(&variantIDRows{ids: []uuid.UUID{variantID}}, nil)

		// Chain is intact but someone touched the counter directly
		stock.EXPECT().
			FindChain(gomock.Any(), variantID).
			Return(chainOf(variantID, [3]int{10, 0, 10}), nil)
		stock.EXPECT().
			GetStock(gomock.Any(), variantID).
			Return(9, nil)

		err := processor.AuditLedger(context.Background(), task)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "counter 9")
	})

	t.Run("empty_chain_skips_counter_check", func(t *testing.T) {
		processor, stock, db, cache := newAuditProcessor(t)
		variantID := uuid.New()

		cache.EXPECT().
			SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil)
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		db.EXPECT().
			Query(gomock.Any(), gomock.Any()).
			Return(&variantIDRows{ids: []uuid.UUID{variantID}}, nil)

		stock.EXPECT().
			FindChain(gomock.Any(), variantID).
			Return(nil, nil)

		err := processor.AuditLedger(context.Background(), task)
		assert.NoError(t, err)
	})
}
