package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
)

// seedCategory describes one category to create, with its product templates.
type seedCategory struct {
	Name        string
	Slug        string
	Description string
	Products    []seedProduct
}

type seedProduct struct {
	Name        string
	Slug        string
	Description string
	Status      domain.ProductStatus
	Variants    []seedVariant
	ImageURLs   []string
}

type seedVariant struct {
	Name         string
	SKU          string
	Price        string
	CostPrice    string
	InitialStock int
}

var catalog = []seedCategory{
	{
		Name: "Apparel", Slug: "apparel",
		Description: "Clothing and wearables",
		Products: []seedProduct{
			{
				Name: "Classic Cotton Tee", Slug: "classic-cotton-tee",
				Description: "Heavyweight cotton t-shirt with a relaxed fit",
				Status:      domain.StatusActive,
				Variants: []seedVariant{
					{Name: "Small / Black", SKU: "TEE-BLK-S", Price: "19.99", CostPrice: "6.50", InitialStock: 40},
					{Name: "Medium / Black", SKU: "TEE-BLK-M", Price: "19.99", CostPrice: "6.50", InitialStock: 55},
					{Name: "Large / Black", SKU: "TEE-BLK-L", Price: "19.99", CostPrice: "6.50", InitialStock: 32},
					{Name: "Medium / White", SKU: "TEE-WHT-M", Price: "19.99", CostPrice: "6.50", InitialStock: 3},
				},
				ImageURLs: []string{
					"https://cdn.example.com/products/classic-tee-front.jpg",
					"https://cdn.example.com/products/classic-tee-back.jpg",
				},
			},
			{
				Name: "Fleece Hoodie", Slug: "fleece-hoodie",
				Description: "Midweight fleece hoodie with kangaroo pocket",
				Status:      domain.StatusActive,
				Variants: []seedVariant{
					{Name: "Medium / Navy", SKU: "HOOD-NVY-M", Price: "49.99", CostPrice: "18.00", InitialStock: 24},
					{Name: "Large / Navy", SKU: "HOOD-NVY-L", Price: "49.99", CostPrice: "18.00", InitialStock: 18},
				},
				ImageURLs: []string{
					"https://cdn.example.com/products/fleece-hoodie.jpg",
				},
			},
		},
	},
	{
		Name: "Accessories", Slug: "accessories",
		Description: "Bags, hats and small goods",
		Products: []seedProduct{
			{
				Name: "Canvas Tote Bag", Slug: "canvas-tote-bag",
				Description: "Durable canvas tote with reinforced handles",
				Status:      domain.StatusActive,
				Variants: []seedVariant{
					{Name: "Natural", SKU: "TOTE-NAT", Price: "14.99", CostPrice: "4.25", InitialStock: 120},
					{Name: "Black", SKU: "TOTE-BLK", Price: "14.99", CostPrice: "4.25", InitialStock: 0},
				},
				ImageURLs: []string{
					"https://cdn.example.com/products/canvas-tote.jpg",
				},
			},
			{
				Name: "Enamel Pin Set", Slug: "enamel-pin-set",
				Description: "Set of four soft enamel pins",
				Status:      domain.StatusDraft,
				Variants: []seedVariant{
					{Name: "Default", SKU: "PIN-SET-4", Price: "12.00", CostPrice: "3.10", InitialStock: 2},
				},
			},
		},
	},
	{
		Name: "Home", Slug: "home",
		Description: "Mugs, prints and homeware",
		Products: []seedProduct{
			{
				Name: "Ceramic Mug", Slug: "ceramic-mug",
				Description: "11oz ceramic mug, dishwasher safe",
				Status:      domain.StatusActive,
				Variants: []seedVariant{
					{Name: "White", SKU: "MUG-WHT-11", Price: "9.99", CostPrice: "2.80", InitialStock: 75},
					{Name: "Matte Black", SKU: "MUG-BLK-11", Price: "10.99", CostPrice: "3.10", InitialStock: 48},
				},
				ImageURLs: []string{
					"https://cdn.example.com/products/ceramic-mug-white.jpg",
				},
			},
		},
	},
}

// seeder creates demo catalog data through direct inserts, maintaining the
// stock movement chain per variant the same way the API does.
type seeder struct {
	db     *pgxpool.Pool
	logger *slog.Logger
	dryRun bool
	rng    *rand.Rand
}

func (s *seeder) run(ctx context.Context, storeName string, extraMovements int) error {
	storeID := uuid.New()

	if s.dryRun {
		s.logger.Info("dry run: would create store",
			slog.String("name", storeName),
			slog.Int("categories", len(catalog)))
		return nil
	}

	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.insertStore(ctx, tx, storeID, storeName); err != nil {
			return err
		}

		var variantIDs []uuid.UUID
		variantStock := make(map[uuid.UUID]int)

		for _, cat := range catalog {
			categoryID := uuid.New()
			if err := s.insertCategory(ctx, tx, categoryID, storeID, cat); err != nil {
				return err
			}

			for _, prod := range cat.Products {
				productID := uuid.New()
				if err := s.insertProduct(ctx, tx, productID, storeID, categoryID, prod); err != nil {
					return err
				}

				for _, v := range prod.Variants {
					variantID := uuid.New()
					if err := s.insertVariant(ctx, tx, variantID, productID, v); err != nil {
						return err
					}
					variantIDs = append(variantIDs, variantID)
					variantStock[variantID] = 0

					// Initial purchase movement brings stock from 0 to the target level
					if v.InitialStock > 0 {
						if err := s.insertMovement(ctx, tx, variantID,
							domain.MovementRestock, v.InitialStock, 0,
							"initial stock intake"); err != nil {
							return err
						}
						variantStock[variantID] = v.InitialStock
					}
				}

				for pos, url := range prod.ImageURLs {
					if err := s.insertImage(ctx, tx, productID, url, prod.Name, pos); err != nil {
						return err
					}
				}
			}
		}

		// Simulate trading history: random sales and restocks on top of intake
		for i := 0; i < extraMovements; i++ {
			variantID := variantIDs[s.rng.Intn(len(variantIDs))]
			current := variantStock[variantID]

			movType := domain.MovementSale
			qty := -(1 + s.rng.Intn(5))
			reason := "order fulfilled"
			if current+qty < 0 || s.rng.Intn(4) == 0 {
				movType = domain.MovementRestock
				qty = 5 + s.rng.Intn(20)
				reason = "supplier delivery"
			}

			if err := s.insertMovement(ctx, tx, variantID, movType, qty, current, reason); err != nil {
				return err
			}
			variantStock[variantID] = current + qty
		}

		s.logger.Info("seed data created",
			slog.String("store_id", storeID.String()),
			slog.Int("variants", len(variantIDs)),
			slog.Int("extra_movements", extraMovements))
		return nil
	})
}

func (s *seeder) insertStore(ctx context.Context, tx pgx.Tx, id uuid.UUID, name string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO stores (id, name, description)
		VALUES ($1, $2, $3)`,
		id, name, "Demo store created by the seeder")
	if err != nil {
		return fmt.Errorf("failed to insert store: %w", err)
	}
	return nil
}

func (s *seeder) insertCategory(ctx context.Context, tx pgx.Tx, id, storeID uuid.UUID, cat seedCategory) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO categories (id, store_id, name, slug, description)
		VALUES ($1, $2, $3, $4, $5)`,
		id, storeID, cat.Name, cat.Slug, cat.Description)
	if err != nil {
		return fmt.Errorf("failed to insert category %s: %w", cat.Slug, err)
	}
	return nil
}

func (s *seeder) insertProduct(ctx context.Context, tx pgx.Tx, id, storeID, categoryID uuid.UUID, prod seedProduct) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO products (id, store_id, category_id, name, slug, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, storeID, categoryID, prod.Name, prod.Slug, prod.Description, prod.Status)
	if err != nil {
		return fmt.Errorf("failed to insert product %s: %w", prod.Slug, err)
	}
	return nil
}

func (s *seeder) insertVariant(ctx context.Context, tx pgx.Tx, id, productID uuid.UUID, v seedVariant) error {
	price, err := decimal.NewFromString(v.Price)
	if err != nil {
		return fmt.Errorf("invalid price for %s: %w", v.SKU, err)
	}
	cost, err := decimal.NewFromString(v.CostPrice)
	if err != nil {
		return fmt.Errorf("invalid cost price for %s: %w", v.SKU, err)
	}

	// Stock starts at zero; the purchase movement establishes the level
	_, err = tx.Exec(ctx, `
		INSERT INTO product_variants (id, product_id, name, sku, price, cost_price, stock)
		VALUES ($1, $2, $3, $4, $5, $6, 0)`,
		id, productID, v.Name, v.SKU, price, cost)
	if err != nil {
		return fmt.Errorf("failed to insert variant %s: %w", v.SKU, err)
	}
	return nil
}

func (s *seeder) insertImage(ctx context.Context, tx pgx.Tx, productID uuid.UUID, url, alt string, position int) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO product_images (id, product_id, url, alt, position)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), productID, url, alt, position)
	if err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}
	return nil
}

func (s *seeder) insertMovement(ctx context.Context, tx pgx.Tx, variantID uuid.UUID, movType domain.MovementType, quantity, previousStock int, notes string) error {
	newStock := previousStock + quantity

	_, err := tx.Exec(ctx, `
		INSERT INTO stock_movements (id, variant_id, type, quantity, previous_stock, new_stock, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New(), variantID, movType, quantity, previousStock, newStock, notes)
	if err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE product_variants SET stock = $1, updated_at = NOW() WHERE id = $2`,
		newStock, variantID)
	if err != nil {
		return fmt.Errorf("failed to update variant stock: %w", err)
	}
	return nil
}

func main() {
	var (
		storeName = flag.String("store", "Demo Store", "Name of the demo store to create")
		movements = flag.Int("movements", 60, "Number of random stock movements to simulate")
		logLevel  = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun    = flag.Bool("dry-run", false, "Preview without modifying the database")
		seed      = flag.Int64("seed", 0, "Random seed (0 uses current time)")
	)
	flag.Parse()

	var slogLevel slog.Level
	switch *logLevel {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
	slog.SetDefault(logger)

	dbURL := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "easycatalog"),
		getEnv("DB_PASSWORD", "easycatalog_dev_2025"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "easycatalog"),
		getEnv("DB_SSL_MODE", "disable"),
	)

	ctx := context.Background()

	var pool *pgxpool.Pool
	var err error
	if !*dryRun {
		pool, err = pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	s := &seeder{
		db:     pool,
		logger: logger,
		dryRun: *dryRun,
		rng:    rand.New(rand.NewSource(rngSeed)),
	}

	start := time.Now()
	if err := s.run(ctx, *storeName, *movements); err != nil {
		logger.Error("seed operation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	totalProducts := 0
	totalVariants := 0
	for _, cat := range catalog {
		totalProducts += len(cat.Products)
		for _, p := range cat.Products {
			totalVariants += len(p.Variants)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SEEDING OPERATION SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Store: %s\n", *storeName)
	fmt.Printf("Categories: %d\n", len(catalog))
	fmt.Printf("Products: %d\n", totalProducts)
	fmt.Printf("Variants: %d\n", totalVariants)
	fmt.Printf("Stock Movements: %d (plus initial intake)\n", *movements)
	fmt.Printf("Duration: %s\n", time.Since(start).Round(time.Millisecond))

	if *dryRun {
		fmt.Println("\n[DRY RUN] No changes were made to the database")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
