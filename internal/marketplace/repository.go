package marketplace

import (
	"context"
	"errors"
)

var (
	// ErrVendorNotFound is returned when no vendor has the requested id.
	ErrVendorNotFound = errors.New("marketplace: vendor not found")
)

// Repository is the read-only catalog the chatbot enriches replies with.
// A limit <= 0 means no limit.
type Repository interface {
	// Suppliers returns every supplier ordered by id.
	Suppliers(ctx context.Context) ([]Supplier, error)
	// VerifiedSuppliers returns verified suppliers ordered by id.
	VerifiedSuppliers(ctx context.Context, limit int) ([]Supplier, error)
	// TopVerifiedSuppliers returns verified suppliers by rating, highest first.
	TopVerifiedSuppliers(ctx context.Context, limit int) ([]Supplier, error)
	// Products returns products ordered by id with SupplierName populated.
	Products(ctx context.Context, limit int) ([]Product, error)
	// ProductsInCategories filters Products to the given categories.
	ProductsInCategories(ctx context.Context, categories []string, limit int) ([]Product, error)
	// ProductsBySupplier returns one supplier's products ordered by id.
	ProductsBySupplier(ctx context.Context, supplierID int64, limit int) ([]Product, error)
	// ProductCategories returns distinct categories in first-listed order.
	ProductCategories(ctx context.Context, limit int) ([]string, error)
	// VendorByID returns ErrVendorNotFound for unknown ids.
	VendorByID(ctx context.Context, id int64) (*Vendor, error)
}

func clamp[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
