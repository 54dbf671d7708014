package http

import (
	"net/http"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/domain"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/service"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog *service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog *service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

type ProductRequestDTO struct {
	Name          string   `json:"name" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	Description   string   `json:"description"`
	Category      string   `json:"category" validate:"required"`
	StockQuantity int64    `json:"stockQuantity" validate:"gte=0"`
	Images        []string `json:"images"`
}

type CategoryRequestDTO struct {
	Name           string `json:"name" validate:"required"`
	Description    string `json:"description"`
	ParentCategory string `json:"parentCategory"`
}

func (h *CatalogHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	// Products belong to the vendor that created them.
	vendorID, err := primitive.ObjectIDFromHex(customerIDFromContext(r.Context()))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	product, err := h.catalog.AddProduct(r.Context(), &domain.Product{
		Name:          req.Name,
		Price:         req.Price,
		Description:   req.Description,
		CategoryID:    categoryID,
		StockQuantity: req.StockQuantity,
		Images:        req.Images,
		VendorID:      vendorID,
	})
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// ListProducts serves the whole catalog, or one category's slice of it
// when ?category= is present. ?sortBy=priceLowToHigh orders by price.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category")
	if categoryID == "" {
		products, err := h.catalog.ListProducts(r.Context())
		if err != nil {
			handleServiceError(w, h.log, err)
			return
		}
		respondJSON(w, http.StatusOK, products)
		return
	}

	products, err := h.catalog.FilterByCategory(r.Context(), categoryID, r.URL.Query().Get("sortBy"))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), chi.URLParam(r, "product_id"), &domain.Product{
		Name:          req.Name,
		Price:         req.Price,
		Description:   req.Description,
		CategoryID:    categoryID,
		StockQuantity: req.StockQuantity,
		Images:        req.Images,
	})
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), chi.URLParam(r, "product_id")); err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.ParentCategory != "" {
		parentID, err := primitive.ObjectIDFromHex(req.ParentCategory)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid parent category id")
			return
		}
		category.ParentCategory = &parentID
	}

	created, err := h.catalog.CreateCategory(r.Context(), category)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalog.GetCategory(r.Context(), chi.URLParam(r, "category_id"))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.ParentCategory != "" {
		parentID, err := primitive.ObjectIDFromHex(req.ParentCategory)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid parent category id")
			return
		}
		category.ParentCategory = &parentID
	}

	updated, err := h.catalog.UpdateCategory(r.Context(), chi.URLParam(r, "category_id"), category)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCategory(r.Context(), chi.URLParam(r, "category_id")); err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
