// Package repomanager owns the database handle and hands out repositories.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/avolkov/storefront/internal/server/repositories/products"
	"github.com/avolkov/storefront/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Products() products.Repository
	Close() error
}
