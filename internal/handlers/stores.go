// internal/handlers/stores.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

// StoreHandler handles store and integration HTTP requests
type StoreHandler struct {
	service ports.StoreService
	logger  *slog.Logger
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(service ports.StoreService, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "store")),
	}
}

// StoreRequest represents the request body for creating or updating a store
type StoreRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// CreateStore handles POST /api/v1/stores
func (h *StoreHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req StoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	store := &domain.Store{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	}
	if err := h.service.CreateStore(ctx, store); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, store)
}

// GetStore handles GET /api/v1/stores/{storeId}
func (h *StoreHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	store, err := h.service.GetStore(ctx, storeID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, store)
}

// UpdateStore handles PUT /api/v1/stores/{storeId}
func (h *StoreHandler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	var req StoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	store := &domain.Store{
		ID:          storeID,
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	}
	if err := h.service.UpdateStore(ctx, store); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, store)
}

// DeleteStore handles DELETE /api/v1/stores/{storeId}
func (h *StoreHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	if err := h.service.DeleteStore(ctx, storeID); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Store deleted successfully",
	})
}

// IntegrationRequest represents the request body for connecting a shop
type IntegrationRequest struct {
	ShopID                string    `json:"shop_id"`
	ShopName              string    `json:"shop_name,omitempty"`
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	Scopes                []string  `json:"scopes,omitempty"`
}

// Validate validates the integration request
func (r *IntegrationRequest) Validate() error {
	if r.ShopID == "" {
		return fmt.Errorf("shop_id is required")
	}
	if r.AccessToken == "" {
		return fmt.Errorf("access_token is required")
	}
	return nil
}

// UpsertIntegration handles PUT /api/v1/stores/{storeId}/tiktok
func (h *StoreHandler) UpsertIntegration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	var req IntegrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	integration := &domain.TikTokIntegration{
		StoreID:               storeID,
		ShopID:                req.ShopID,
		ShopName:              req.ShopName,
		AccessToken:           req.AccessToken,
		RefreshToken:          req.RefreshToken,
		AccessTokenExpiresAt:  req.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: req.RefreshTokenExpiresAt,
		Scopes:                req.Scopes,
	}
	if err := h.service.UpsertIntegration(ctx, integration); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, integration)
}

// GetIntegration handles GET /api/v1/stores/{storeId}/tiktok
func (h *StoreHandler) GetIntegration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	integration, err := h.service.GetIntegration(ctx, storeID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, integration)
}

// DeleteIntegration handles DELETE /api/v1/stores/{storeId}/tiktok
func (h *StoreHandler) DeleteIntegration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	if err := h.service.DeleteIntegration(ctx, storeID); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Integration disconnected",
	})
}
