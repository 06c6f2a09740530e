package marketplace

import (
	"cmp"
	"context"
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed sampledata/catalog.yaml
var sampleCatalog []byte

// Catalog is a full snapshot of marketplace data.
type Catalog struct {
	Suppliers []Supplier `yaml:"suppliers"`
	Products  []Product  `yaml:"products"`
	Vendors   []Vendor   `yaml:"vendors"`
}

// SampleCatalog decodes the bundled demo catalog.
func SampleCatalog() (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(sampleCatalog, &c); err != nil {
		return Catalog{}, fmt.Errorf("marketplace: decode sample catalog: %w", err)
	}
	return c, nil
}

// MemoryRepository serves a catalog snapshot from memory.
type MemoryRepository struct {
	mu        sync.RWMutex
	suppliers []Supplier
	products  []Product
	vendors   map[int64]Vendor
}

// NewMemoryRepository builds a repository over c. Product supplier names are
// resolved from c.Suppliers.
func NewMemoryRepository(c Catalog) *MemoryRepository {
	r := &MemoryRepository{}
	r.Replace(c)
	return r
}

// NewSampleRepository returns a MemoryRepository over the bundled demo catalog.
func NewSampleRepository() (*MemoryRepository, error) {
	c, err := SampleCatalog()
	if err != nil {
		return nil, err
	}
	return NewMemoryRepository(c), nil
}

// Replace swaps the snapshot atomically.
func (r *MemoryRepository) Replace(c Catalog) {
	suppliers := slices.Clone(c.Suppliers)
	slices.SortStableFunc(suppliers, func(a, b Supplier) int { return cmp.Compare(a.ID, b.ID) })

	names := make(map[int64]string, len(suppliers))
	for _, s := range suppliers {
		names[s.ID] = s.Name
	}
	products := slices.Clone(c.Products)
	slices.SortStableFunc(products, func(a, b Product) int { return cmp.Compare(a.ID, b.ID) })
	for i := range products {
		products[i].SupplierName = names[products[i].SupplierID]
	}

	vendors := make(map[int64]Vendor, len(c.Vendors))
	for _, v := range c.Vendors {
		vendors[v.ID] = v
	}

	r.mu.Lock()
	r.suppliers = suppliers
	r.products = products
	r.vendors = vendors
	r.mu.Unlock()
}

func (r *MemoryRepository) Suppliers(ctx context.Context) ([]Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.suppliers), nil
}

func (r *MemoryRepository) VerifiedSuppliers(ctx context.Context, limit int) ([]Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clamp(r.verified(), limit), nil
}

func (r *MemoryRepository) TopVerifiedSuppliers(ctx context.Context, limit int) ([]Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.verified()
	slices.SortStableFunc(out, func(a, b Supplier) int { return cmp.Compare(b.Rating, a.Rating) })
	return clamp(out, limit), nil
}

func (r *MemoryRepository) verified() []Supplier {
	out := make([]Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		if s.Verified {
			out = append(out, s)
		}
	}
	return out
}

func (r *MemoryRepository) Products(ctx context.Context, limit int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(clamp(r.products, limit)), nil
}

func (r *MemoryRepository) ProductsInCategories(ctx context.Context, categories []string, limit int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Product
	for _, p := range r.products {
		if slices.Contains(categories, p.Category) {
			out = append(out, p)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *MemoryRepository) ProductsBySupplier(ctx context.Context, supplierID int64, limit int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Product
	for _, p := range r.products {
		if p.SupplierID == supplierID {
			out = append(out, p)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *MemoryRepository) ProductCategories(ctx context.Context, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, p := range r.products {
		if slices.Contains(out, p.Category) {
			continue
		}
		out = append(out, p.Category)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryRepository) VendorByID(ctx context.Context, id int64) (*Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vendors[id]
	if !ok {
		return nil, ErrVendorNotFound
	}
	return &v, nil
}
