package marketplace

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// catalogDB is the subset of pgxpool.Pool the repository needs.
type catalogDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository reads the catalog from the suppliers, products and vendors tables.
type PostgresRepository struct {
	db catalogDB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("marketplace: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(db catalogDB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const supplierColumns = `id, name, phone, location, rating, hygiene_rating, verified`

const productSelect = `
	SELECT p.id, p.name, p.category, p.current_price, p.unit, p.stock_available, p.supplier_id, COALESCE(s.name, '')
	FROM products p
	LEFT JOIN suppliers s ON s.id = p.supplier_id`

func (r *PostgresRepository) Suppliers(ctx context.Context) ([]Supplier, error) {
	return r.querySuppliers(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY id`)
}

func (r *PostgresRepository) VerifiedSuppliers(ctx context.Context, limit int) ([]Supplier, error) {
	return r.querySuppliers(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE verified ORDER BY id LIMIT NULLIF($1::int, 0)`,
		normalizeLimit(limit))
}

func (r *PostgresRepository) TopVerifiedSuppliers(ctx context.Context, limit int) ([]Supplier, error) {
	return r.querySuppliers(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE verified ORDER BY rating DESC, id LIMIT NULLIF($1::int, 0)`,
		normalizeLimit(limit))
}

func (r *PostgresRepository) Products(ctx context.Context, limit int) ([]Product, error) {
	return r.queryProducts(ctx, productSelect+` ORDER BY p.id LIMIT NULLIF($1::int, 0)`, normalizeLimit(limit))
}

func (r *PostgresRepository) ProductsInCategories(ctx context.Context, categories []string, limit int) ([]Product, error) {
	if len(categories) == 0 {
		return nil, nil
	}
	return r.queryProducts(ctx,
		productSelect+` WHERE p.category = ANY($1) ORDER BY p.id LIMIT NULLIF($2::int, 0)`,
		categories, normalizeLimit(limit))
}

func (r *PostgresRepository) ProductsBySupplier(ctx context.Context, supplierID int64, limit int) ([]Product, error) {
	return r.queryProducts(ctx,
		productSelect+` WHERE p.supplier_id = $1 ORDER BY p.id LIMIT NULLIF($2::int, 0)`,
		supplierID, normalizeLimit(limit))
}

func (r *PostgresRepository) ProductCategories(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT category FROM products GROUP BY category ORDER BY MIN(id) LIMIT NULLIF($1::int, 0)`,
		normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("marketplace: query categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("marketplace: scan category: %w", err)
		}
		out = append(out, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("marketplace: iterate categories: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) VendorByID(ctx context.Context, id int64) (*Vendor, error) {
	var (
		v            Vendor
		businessType string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, name, phone, location, business_type FROM vendors WHERE id = $1`, id,
	).Scan(&v.ID, &v.Name, &v.Phone, &v.Location, &businessType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("marketplace: query vendor %d: %w", id, err)
	}
	v.BusinessType = BusinessType(businessType)
	return &v, nil
}

func (r *PostgresRepository) querySuppliers(ctx context.Context, sql string, args ...any) ([]Supplier, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("marketplace: query suppliers: %w", err)
	}
	defer rows.Close()

	var out []Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Location, &s.Rating, &s.HygieneRating, &s.Verified); err != nil {
			return nil, fmt.Errorf("marketplace: scan supplier: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("marketplace: iterate suppliers: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) queryProducts(ctx context.Context, sql string, args ...any) ([]Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("marketplace: query products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.CurrentPrice, &p.Unit, &p.StockAvailable, &p.SupplierID, &p.SupplierName); err != nil {
			return nil, fmt.Errorf("marketplace: scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("marketplace: iterate products: %w", err)
	}
	return out, nil
}

// normalizeLimit maps "no limit" to 0, which NULLIF turns into LIMIT NULL.
func normalizeLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	return limit
}
