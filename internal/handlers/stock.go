// internal/handlers/stock.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

// StockHandler handles stock ledger HTTP requests
type StockHandler struct {
	service ports.StockService
	logger  *slog.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(service ports.StockService, logger *slog.Logger) *StockHandler {
	return &StockHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "stock")),
	}
}

// RecordMovementRequest represents the request body for recording a movement
type RecordMovementRequest struct {
	VariantID uuid.UUID `json:"variant_id"`
	Quantity  int       `json:"quantity"`
	Type      string    `json:"type"`
	Reference string    `json:"reference,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// ToDomain converts the request to a domain movement
func (r *RecordMovementRequest) ToDomain() *domain.StockMovement {
	return &domain.StockMovement{
		VariantID: r.VariantID,
		Quantity:  r.Quantity,
		Type:      domain.MovementType(r.Type),
		Reference: r.Reference,
		Notes:     r.Notes,
	}
}

// AdjustStockRequest represents the request body for an absolute adjustment
type AdjustStockRequest struct {
	VariantID uuid.UUID `json:"variant_id"`
	NewStock  *int      `json:"new_stock"`
	Notes     string    `json:"notes,omitempty"`
}

// Validate validates the adjustment request
func (r *AdjustStockRequest) Validate() error {
	if r.VariantID == uuid.Nil {
		return fmt.Errorf("variant_id is required")
	}
	if r.NewStock == nil {
		return fmt.Errorf("new_stock is required")
	}
	if *r.NewStock < 0 {
		return fmt.Errorf("new_stock cannot be negative")
	}
	return nil
}

// RecordMovement handles POST /api/v1/stores/{storeId}/stock/movements
func (h *StockHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RecordMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	movement := req.ToDomain()
	if err := h.service.RecordMovement(ctx, movement); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, movement)
}

// AdjustStock handles POST /api/v1/stores/{storeId}/stock/adjustments
func (h *StockHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	movement, err := h.service.AdjustToLevel(ctx, req.VariantID, *req.NewStock, req.Notes)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, movement)
}

// GetVariantStock handles GET /api/v1/variants/{variantId}/stock
func (h *StockHandler) GetVariantStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	variantID, err := uuid.Parse(r.PathValue("variantId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid variant ID format")
		return
	}

	stock, err := h.service.GetCurrentStock(ctx, variantID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"variant_id": variantID,
		"stock":      stock,
	})
}

// ListVariantMovements handles GET /api/v1/variants/{variantId}/movements
func (h *StockHandler) ListVariantMovements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	variantID, err := uuid.Parse(r.PathValue("variantId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid variant ID format")
		return
	}

	params := h.parseMovementParams(r)
	params.VariantID = &variantID

	result, err := h.service.ListMovements(ctx, params)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// ListStoreMovements handles GET /api/v1/stores/{storeId}/stock/movements
func (h *StockHandler) ListStoreMovements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	params := h.parseMovementParams(r)
	params.StoreID = &storeID

	result, err := h.service.ListMovements(ctx, params)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// GetStockSummary handles GET /api/v1/stores/{storeId}/stock/summary
func (h *StockHandler) GetStockSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	summary, err := h.service.Summarize(ctx, storeID, parseIntQuery(r, "threshold", 0))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, summary)
}

// ListLowStock handles GET /api/v1/stores/{storeId}/stock/low
func (h *StockHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	threshold := parseIntQuery(r, "threshold", 0)
	limit := parseIntQuery(r, "limit", 50)

	variants, err := h.service.ListLowStock(ctx, storeID, threshold, limit)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"variants": variants,
		"count":    len(variants),
	})
}

// parseMovementParams parses shared pagination and type filters
func (h *StockHandler) parseMovementParams(r *http.Request) ports.MovementListParams {
	params := ports.MovementListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
	}
	if t := r.URL.Query().Get("type"); t != "" {
		params.Type = domain.MovementType(t)
	}
	return params
}

// parseIntQuery reads an integer query parameter with a fallback
func parseIntQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
