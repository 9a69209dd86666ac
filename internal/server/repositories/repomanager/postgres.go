package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/avolkov/storefront/internal/server/migrations"
	"github.com/avolkov/storefront/internal/server/repositories/products"
	"github.com/avolkov/storefront/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
	db       *sql.DB
	users    users.Repository
	products products.Repository
}

func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return &PostgresRepositoryManager{
		db:       db,
		users:    users.NewPostgresRepository(db),
		products: products.NewPostgresRepository(db),
	}, nil
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Products() products.Repository {
	return m.products
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
