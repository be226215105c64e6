// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/easycatalog/easycatalog-be/internal/adapters/db"
	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/pkg/config"
	"github.com/easycatalog/easycatalog-be/internal/pkg/logger"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *logger.Logger {
	level := "error"
	if testing.Verbose() {
		level = "debug"
	}
	return logger.NewLogger(&logger.LogConfig{
		Level:  level,
		Format: "text",
		Output: "stdout",
	})
}

// SetupTestDB creates a PostgreSQL container for integration tests
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_catalog",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_catalog",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger().Logger)
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	ctx := context.Background()
	migrationConfig := &db.MigrationConfig{
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
			dbConfig.Database, dbConfig.SSLMode),
		SourcePath: "../../migrations",
		TableName:  "schema_migrations",
		SchemaName: "public",
	}

	err = db.RunMigrationsWithRetry(ctx, migrationConfig, TestLogger().Logger, 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:               "localhost",
			Port:               "5432",
			User:               "test",
			Password:           "test",
			Name:               "test_catalog",
			SSLMode:            "disable",
			MaxConnections:     10,
			MinConnections:     2,
			EnableQueryLogging: true,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			TTL:      time.Hour,
			PoolSize: 10,
		},
		Catalog: config.CatalogConfig{
			LowStockThreshold: domain.DefaultLowStockThreshold,
			LowStockListLimit: 50,
			DefaultPageSize:   20,
			MaxPageSize:       100,
			SummaryCacheTTL:   5 * time.Minute,
			DashboardCacheTTL: 5 * time.Minute,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			SecureHeaders:     false,
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestStore creates a store directly in the database
func CreateTestStore(t *testing.T, pool *pgxpool.Pool, overrides ...func(*domain.Store)) *domain.Store {
	t.Helper()

	store := &domain.Store{
		ID:          uuid.New(),
		Name:        "Test Store",
		Description: "Store created by test helpers",
	}
	for _, override := range overrides {
		override(store)
	}

	_, err := pool.Exec(context.Background(), `
		INSERT INTO stores (id, name, description, logo_url)
		VALUES ($1, $2, $3, NULLIF($4, ''))`,
		store.ID, store.Name, store.Description, store.LogoURL)
	require.NoError(t, err, "Failed to create test store")

	return store
}

// CreateTestCategory creates a category for the given store
func CreateTestCategory(t *testing.T, pool *pgxpool.Pool, storeID uuid.UUID, overrides ...func(*domain.Category)) *domain.Category {
	t.Helper()

	category := &domain.Category{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    "Test Category",
		Slug:    fmt.Sprintf("test-category-%s", uuid.New().String()[:8]),
	}
	for _, override := range overrides {
		override(category)
	}

	_, err := pool.Exec(context.Background(), `
		INSERT INTO categories (id, store_id, parent_id, name, slug, description)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		category.ID, category.StoreID, category.ParentID, category.Name, category.Slug, category.Description)
	require.NoError(t, err, "Failed to create test category")

	return category
}

// CreateTestProduct creates a product for the given store
func CreateTestProduct(t *testing.T, pool *pgxpool.Pool, storeID uuid.UUID, overrides ...func(*domain.Product)) *domain.Product {
	t.Helper()

	product := &domain.Product{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    "Test Product",
		Slug:    fmt.Sprintf("test-product-%s", uuid.New().String()[:8]),
		Status:  domain.StatusActive,
	}
	for _, override := range overrides {
		override(product)
	}

	_, err := pool.Exec(context.Background(), `
		INSERT INTO products (id, store_id, category_id, name, slug, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		product.ID, product.StoreID, product.CategoryID, product.Name, product.Slug,
		product.Description, product.Status)
	require.NoError(t, err, "Failed to create test product")

	return product
}

// CreateTestVariant creates a variant for the given product
func CreateTestVariant(t *testing.T, pool *pgxpool.Pool, productID uuid.UUID, overrides ...func(*domain.ProductVariant)) *domain.ProductVariant {
	t.Helper()

	variant := &domain.ProductVariant{
		ID:        uuid.New(),
		ProductID: productID,
		Name:      "Default",
		SKU:       fmt.Sprintf("SKU-%s", uuid.New().String()[:8]),
		Price:     decimal.NewFromFloat(19.99),
		Stock:     0,
	}
	for _, override := range overrides {
		override(variant)
	}

	_, err := pool.Exec(context.Background(), `
		INSERT INTO product_variants (id, product_id, name, sku, price, cost_price, stock, weight)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)`,
		variant.ID, variant.ProductID, variant.Name, variant.SKU, variant.Price,
		variant.CostPrice, variant.Stock, variant.Weight)
	require.NoError(t, err, "Failed to create test variant")

	return variant
}

// RecordTestMovement inserts a movement row and syncs the variant counter.
// previousStock must match the variant's current stock for the chain to hold.
func RecordTestMovement(t *testing.T, pool *pgxpool.Pool, variantID uuid.UUID, movType domain.MovementType, quantity, previousStock int) *domain.StockMovement {
	t.Helper()

	movement := &domain.StockMovement{
		ID:            uuid.New(),
		VariantID:     variantID,
		Type:          movType,
		Quantity:      quantity,
		PreviousStock: previousStock,
		NewStock:      previousStock + quantity,
	}

	ctx := context.Background()
	err := pool.QueryRow(ctx, `
		INSERT INTO stock_movements (id, variant_id, type, quantity, previous_stock, new_stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq, created_at`,
		movement.ID, movement.VariantID, movement.Type, movement.Quantity,
		movement.PreviousStock, movement.NewStock,
	).Scan(&movement.Seq, &movement.CreatedAt)
	require.NoError(t, err, "Failed to record test movement")

	_, err = pool.Exec(ctx, `UPDATE product_variants SET stock = $1 WHERE id = $2`,
		movement.NewStock, variantID)
	require.NoError(t, err, "Failed to sync variant stock")

	return movement
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	tables := []string{
		"stock_movements",
		"product_images",
		"product_variants",
		"products",
		"categories",
		"tiktok_integrations",
		"stores",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "Failed to truncate table: %s", table)
	}
}
