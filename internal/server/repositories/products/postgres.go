package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/storefront/internal/common"
	"github.com/avolkov/storefront/internal/dbx"
	"github.com/avolkov/storefront/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = "id, name, description, created_at, updated_at, deleted_at"

func scanProduct(row *sql.Row) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Product, error) {
	query :=
		`SELECT ` + productColumns + ` FROM products
		 WHERE deleted_at IS NULL
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

func (r *PostgresRepository) Find(ctx context.Context, id string) (*models.Product, error) {
	query :=
		`SELECT ` + productColumns + ` FROM products
		 WHERE id = $1
		 `

	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	query :=
		`INSERT INTO products (id, name, description)
		 VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		product.ID, product.Name, product.Description).Scan(&product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return product, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id, name, description string) (*models.Product, error) {
	query :=
		`UPDATE products
		 SET name = COALESCE(NULLIF($2, ''), name),
		     description = COALESCE(NULLIF($3, ''), description),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING ` + productColumns + `
		 `

	return scanProduct(r.db.QueryRowContext(ctx, query, id, name, description))
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) (*models.Product, error) {
	query :=
		`UPDATE products
		 SET deleted_at = now(), updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL
		 RETURNING ` + productColumns + `
		 `

	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Restore(ctx context.Context, id string) (*models.Product, error) {
	query :=
		`UPDATE products
		 SET deleted_at = NULL, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NOT NULL
		 RETURNING ` + productColumns + `
		 `

	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) HardDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}
