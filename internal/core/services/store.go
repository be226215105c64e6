// internal/core/services/store.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

// StoreService handles store and integration business logic
type StoreService struct {
	stores ports.StoreRepository
	tiktok ports.TikTokRepository
	logger *slog.Logger
}

// Statically assert that *StoreService implements the StoreService interface.
var _ ports.StoreService = (*StoreService)(nil)

// NewStoreService creates a new store service
func NewStoreService(stores ports.StoreRepository, tiktok ports.TikTokRepository, logger *slog.Logger) *StoreService {
	return &StoreService{
		stores: stores,
		tiktok: tiktok,
		logger: logger.With(slog.String("service", "store")),
	}
}

// CreateStore validates and persists a new store
func (s *StoreService) CreateStore(ctx context.Context, store *domain.Store) error {
	if err := store.Validate(); err != nil {
		return err
	}
	store.PrepareForStorage()

	if err := s.stores.Save(ctx, store); err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	s.logger.InfoContext(ctx, "store created",
		slog.String("store_id", store.ID.String()),
		slog.String("name", store.Name))
	return nil
}

// GetStore fetches a store by id
func (s *StoreService) GetStore(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	return s.stores.FindByID(ctx, id)
}

// UpdateStore validates and persists store changes
func (s *StoreService) UpdateStore(ctx context.Context, store *domain.Store) error {
	if err := store.Validate(); err != nil {
		return err
	}
	if err := s.stores.Update(ctx, store); err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}
	return nil
}

// DeleteStore soft-deletes a store
func (s *StoreService) DeleteStore(ctx context.Context, id uuid.UUID) error {
	if err := s.stores.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	return nil
}

// UpsertIntegration stores or replaces the store's shop connection
func (s *StoreService) UpsertIntegration(ctx context.Context, integration *domain.TikTokIntegration) error {
	if err := integration.Validate(); err != nil {
		return err
	}

	exists, err := s.stores.Exists(ctx, integration.StoreID)
	if err != nil {
		return fmt.Errorf("failed to check store: %w", err)
	}
	if !exists {
		return fmt.Errorf("store %s: %w", integration.StoreID, domain.ErrNotFound)
	}

	if err := s.tiktok.UpsertByStore(ctx, integration); err != nil {
		return fmt.Errorf("failed to upsert integration: %w", err)
	}
	return nil
}

// GetIntegration fetches the store's shop connection
func (s *StoreService) GetIntegration(ctx context.Context, storeID uuid.UUID) (*domain.TikTokIntegration, error) {
	return s.tiktok.FindByStore(ctx, storeID)
}

// DeleteIntegration disconnects the store's shop
func (s *StoreService) DeleteIntegration(ctx context.Context, storeID uuid.UUID) error {
	if err := s.tiktok.DeleteByStore(ctx, storeID); err != nil {
		return fmt.Errorf("failed to delete integration: %w", err)
	}
	return nil
}
