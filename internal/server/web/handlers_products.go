package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/storefront/internal/common"
)

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) listProducts(c *gin.Context) {
	list, err := s.products.List(c.Request.Context())
	if err != nil {
		s.logger.Error(c.Request.Context(), "listing products", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch products", err.Error())
		return
	}
	respondOK(c, http.StatusOK, list, "Products fetched successfully")
}

func (s *Server) getProduct(c *gin.Context) {
	p, err := s.products.Get(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, p, "Product fetched successfully")
	case errors.Is(err, common.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found", "Product not found")
	default:
		s.logger.Error(c.Request.Context(), "fetching product", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch product", err.Error())
	}
}

func (s *Server) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error", "Name and description are required")
		return
	}

	p, err := s.products.Create(c.Request.Context(), req.Name, req.Description)
	switch {
	case err == nil:
		respondOK(c, http.StatusCreated, p, "Product created successfully")
	case errors.Is(err, common.ErrValidation):
		respondError(c, http.StatusBadRequest, "Validation error", "Name and description are required")
	default:
		s.logger.Error(c.Request.Context(), "creating product", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to create product", err.Error())
	}
}

func (s *Server) updateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error", "At least one field (name or description) is required")
		return
	}

	p, err := s.products.Update(c.Request.Context(), c.Param("id"), req.Name, req.Description)
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, p, "Product updated successfully")
	case errors.Is(err, common.ErrValidation):
		respondError(c, http.StatusBadRequest, "Validation error", "At least one field (name or description) is required")
	case errors.Is(err, common.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found", "Product not found")
	case errors.Is(err, common.ErrDeleted):
		respondError(c, http.StatusBadRequest, "Bad request", "Cannot update a deleted product")
	default:
		s.logger.Error(c.Request.Context(), "updating product", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to update product", err.Error())
	}
}

// deleteProduct soft-deletes by default; ?hard=true removes the row
// permanently.
func (s *Server) deleteProduct(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if c.Query("hard") == "true" {
		err := s.products.Purge(ctx, id)
		switch {
		case err == nil:
			respondOK(c, http.StatusOK, nil, "Product permanently deleted")
		case errors.Is(err, common.ErrNotFound):
			respondError(c, http.StatusNotFound, "Not found", "Product not found")
		default:
			s.logger.Error(ctx, "purging product", "error", err)
			respondError(c, http.StatusInternalServerError, "Failed to delete product", err.Error())
		}
		return
	}

	p, err := s.products.Delete(ctx, id)
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, p, "Product deleted successfully")
	case errors.Is(err, common.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found", "Product not found")
	default:
		s.logger.Error(ctx, "deleting product", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete product", err.Error())
	}
}

func (s *Server) restoreProduct(c *gin.Context) {
	p, err := s.products.Restore(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, p, "Product restored successfully")
	case errors.Is(err, common.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found", "Product not found")
	default:
		s.logger.Error(c.Request.Context(), "restoring product", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to restore product", err.Error())
	}
}
