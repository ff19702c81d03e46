package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"oferta-studio/models"
	"oferta-studio/service"
)

// ProductController handles HTTP requests for the offer's product list
type ProductController struct {
	productService *service.ProductService
	session        *service.Session
}

// NewProductController creates a new ProductController
func NewProductController(productService *service.ProductService, session *service.Session) *ProductController {
	return &ProductController{
		productService: productService,
		session:        session,
	}
}

// ListProducts handles GET /admin/oferta/products
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(c.session.Products); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// CreateProduct handles POST /admin/oferta/products
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	created, err := c.productService.Add(r.Context(), c.session, &p)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create product: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// UpdateProduct handles PUT /admin/oferta/products/:id
func (c *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/oferta/products/")
	if id == "" {
		http.Error(w, "product id is required", http.StatusBadRequest)
		return
	}

	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	p.ID = id

	updated, err := c.productService.Update(r.Context(), c.session, &p)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to update product: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// DeleteProduct handles DELETE /admin/oferta/products/:id
func (c *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/oferta/products/")
	if id == "" {
		http.Error(w, "product id is required", http.StatusBadRequest)
		return
	}

	if err := c.productService.Delete(r.Context(), c.session, id); err != nil {
		http.Error(w, fmt.Sprintf("Failed to delete product: %v", err), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderProducts handles POST /admin/oferta/products/reorder
func (c *ProductController) ReorderProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := c.productService.Reorder(r.Context(), c.session, req.IDs); err != nil {
		http.Error(w, fmt.Sprintf("Failed to reorder products: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(c.session.Products); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
