// test/benchmarks/helpers.go
package benchmarks

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
)

// buildMovementChain generates a consistent ledger of the given length,
// alternating restocks and sales without ever going negative.
func buildMovementChain(variantID uuid.UUID, length int) []domain.StockMovement {
	rng := rand.New(rand.NewSource(42))
	movements := make([]domain.StockMovement, 0, length)

	stock := 0
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < length; i++ {
		var quantity int
		movType := domain.MovementSale
		if sale := 1 + rng.Intn(5); stock >= sale && i%3 != 0 {
			quantity = -sale
		} else {
			quantity = 5 + rng.Intn(20)
			movType = domain.MovementRestock
		}

		movements = append(movements, domain.StockMovement{
			ID:            uuid.New(),
			VariantID:     variantID,
			Type:          movType,
			Quantity:      quantity,
			PreviousStock: stock,
			NewStock:      stock + quantity,
			Seq:           int64(i + 1),
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		})
		stock += quantity
	}

	return movements
}

// corruptChain flips one snapshot so verification has a violation to find
func corruptChain(movements []domain.StockMovement, at int) []domain.StockMovement {
	corrupted := make([]domain.StockMovement, len(movements))
	copy(corrupted, movements)
	corrupted[at].NewStock++
	return corrupted
}
