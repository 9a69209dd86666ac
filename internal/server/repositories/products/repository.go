package products

import (
	"context"

	"github.com/avolkov/storefront/internal/server/models"
)

type Repository interface {
	// List returns live products only, newest first.
	List(ctx context.Context) ([]models.Product, error)

	// Find returns a product regardless of its deletion state; the caller
	// decides how a soft-deleted row is presented.
	Find(ctx context.Context, id string) (*models.Product, error)

	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, id, name, description string) (*models.Product, error)
	SoftDelete(ctx context.Context, id string) (*models.Product, error)
	Restore(ctx context.Context, id string) (*models.Product, error)
	HardDelete(ctx context.Context, id string) error
}
