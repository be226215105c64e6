// internal/handlers/products.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

// ProductHandler handles product, variant and image HTTP requests
type ProductHandler struct {
	service ports.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service ports.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "product")),
	}
}

// VariantRequest represents a variant in product payloads
type VariantRequest struct {
	Name      string           `json:"name"`
	SKU       string           `json:"sku,omitempty"`
	GTIN      string           `json:"gtin,omitempty"`
	Price     decimal.Decimal  `json:"price"`
	CostPrice *decimal.Decimal `json:"cost_price,omitempty"`
	Stock     int              `json:"stock,omitempty"`
	Weight    *decimal.Decimal `json:"weight,omitempty"`
}

// ToDomain converts the request to a domain variant
func (r *VariantRequest) ToDomain() domain.ProductVariant {
	return domain.ProductVariant{
		Name:      r.Name,
		SKU:       r.SKU,
		GTIN:      r.GTIN,
		Price:     r.Price,
		CostPrice: r.CostPrice,
		Stock:     r.Stock,
		Weight:    r.Weight,
	}
}

// ProductRequest represents the request body for creating or updating a product
type ProductRequest struct {
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description,omitempty"`
	Status      string           `json:"status,omitempty"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	Variants    []VariantRequest `json:"variants,omitempty"`
	Images      []ImageRequest   `json:"images,omitempty"`
}

// ImageRequest represents an image in product payloads
type ImageRequest struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// ToDomain converts the request to a domain product
func (r *ProductRequest) ToDomain(storeID uuid.UUID) *domain.Product {
	product := &domain.Product{
		StoreID:     storeID,
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Status:      domain.ProductStatus(r.Status),
	}
	for _, v := range r.Variants {
		product.Variants = append(product.Variants, v.ToDomain())
	}
	for _, img := range r.Images {
		product.Images = append(product.Images, domain.ProductImage{URL: img.URL, Alt: img.Alt})
	}
	return product
}

// CreateProduct handles POST /api/v1/stores/{storeId}/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	product := req.ToDomain(storeID)
	if err := h.service.CreateProduct(ctx, product); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, product)
}

// GetProduct handles GET /api/v1/stores/{storeId}/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.service.GetProduct(ctx, storeID, id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, product)
}

// ListProducts handles GET /api/v1/stores/{storeId}/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	params := ports.ProductListParams{
		StoreID:   storeID,
		Search:    r.URL.Query().Get("search"),
		Status:    domain.ProductStatus(r.URL.Query().Get("status")),
		SortBy:    r.URL.Query().Get("sort"),
		SortOrder: r.URL.Query().Get("order"),
		Page:      parseIntQuery(r, "page", 1),
		PageSize:  parseIntQuery(r, "page_size", 20),
	}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, h.logger, http.StatusBadRequest, "Invalid category ID format")
			return
		}
		params.CategoryID = &categoryID
	}

	result, err := h.service.ListProducts(ctx, params)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// UpdateProduct handles PUT /api/v1/stores/{storeId}/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	product := req.ToDomain(storeID)
	product.ID = id
	if err := h.service.UpdateProduct(ctx, product); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	updated, err := h.service.GetProduct(ctx, storeID, id)
	if err != nil {
		respondJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Product updated successfully"})
		return
	}

	respondJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteProduct handles DELETE /api/v1/stores/{storeId}/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	if err := h.service.DeleteProduct(ctx, storeID, id); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Product deleted successfully",
	})
}

// AddVariant handles POST /api/v1/stores/{storeId}/products/{id}/variants
func (h *ProductHandler) AddVariant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req VariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	variant := req.ToDomain()
	variant.ProductID = productID
	if err := h.service.AddVariant(ctx, storeID, &variant); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, variant)
}

// UpdateVariant handles PUT /api/v1/stores/{storeId}/variants/{variantId}
func (h *ProductHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}
	variantID, err := uuid.Parse(r.PathValue("variantId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid variant ID format")
		return
	}

	var req VariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	variant := req.ToDomain()
	variant.ID = variantID
	if err := h.service.UpdateVariant(ctx, storeID, &variant); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, variant)
}

// DeleteVariant handles DELETE /api/v1/stores/{storeId}/variants/{variantId}
func (h *ProductHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}
	variantID, err := uuid.Parse(r.PathValue("variantId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid variant ID format")
		return
	}

	if err := h.service.DeleteVariant(ctx, storeID, variantID); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Variant deleted successfully",
	})
}

// AddImage handles POST /api/v1/stores/{storeId}/products/{id}/images
func (h *ProductHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req ImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	image := &domain.ProductImage{
		ProductID: productID,
		URL:       req.URL,
		Alt:       req.Alt,
	}
	if err := h.service.AddImage(ctx, storeID, image); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, image)
}

// DeleteImage handles DELETE /api/v1/stores/{storeId}/images/{imageId}
func (h *ProductHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}
	imageID, err := uuid.Parse(r.PathValue("imageId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid image ID format")
		return
	}

	if err := h.service.DeleteImage(ctx, storeID, imageID); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Image deleted successfully",
	})
}

// ReorderImagesRequest represents the request body for reordering images
type ReorderImagesRequest struct {
	ImageIDs []uuid.UUID `json:"image_ids"`
}

// ReorderImages handles PUT /api/v1/stores/{storeId}/products/{id}/images/reorder
func (h *ProductHandler) ReorderImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req ReorderImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ReorderImages(ctx, storeID, productID, req.ImageIDs); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Images reordered successfully",
	})
}
