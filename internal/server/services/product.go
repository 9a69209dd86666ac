package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avolkov/storefront/internal/common"
	"github.com/avolkov/storefront/internal/logging"
	"github.com/avolkov/storefront/internal/server/models"
	"github.com/avolkov/storefront/internal/server/repositories/products"
)

// ProductService implements the product CRUD flow: plain data access with
// soft-delete semantics, no concurrency hazards of its own.
type ProductService struct {
	products products.Repository
	logger   logging.Logger
}

func NewProductService(repo products.Repository, logger logging.Logger) *ProductService {
	return &ProductService{products: repo, logger: logger.With("component", "products")}
}

// List returns live products, newest first.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

// Get returns a product by id. Soft-deleted products read as not found.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.products.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.DeletedAt != nil {
		return nil, common.ErrNotFound
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, name, description string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, fmt.Errorf("%w: name and description are required", common.ErrValidation)
	}

	return s.products.Create(ctx, &models.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
	})
}

// Update changes the provided fields; empty fields keep their value. A
// soft-deleted product cannot be updated.
func (s *ProductService) Update(ctx context.Context, id, name, description string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" && description == "" {
		return nil, fmt.Errorf("%w: at least one of name or description is required", common.ErrValidation)
	}

	existing, err := s.products.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.DeletedAt != nil {
		return nil, common.ErrDeleted
	}

	return s.products.Update(ctx, id, name, description)
}

// Delete soft-deletes: the product disappears from listings but stays
// restorable.
func (s *ProductService) Delete(ctx context.Context, id string) (*models.Product, error) {
	return s.products.SoftDelete(ctx, id)
}

// Restore brings a soft-deleted product back.
func (s *ProductService) Restore(ctx context.Context, id string) (*models.Product, error) {
	return s.products.Restore(ctx, id)
}

// Purge removes the row permanently.
func (s *ProductService) Purge(ctx context.Context, id string) error {
	if err := s.products.HardDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "product purged", "product_id", id)
	return nil
}
