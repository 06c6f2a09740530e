package marketplace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRepo(t *testing.T) *MemoryRepository {
	t.Helper()
	repo, err := NewSampleRepository()
	require.NoError(t, err)
	return repo
}

func TestSampleCatalogShape(t *testing.T) {
	c, err := SampleCatalog()
	require.NoError(t, err)
	assert.Len(t, c.Suppliers, 5)
	assert.Len(t, c.Vendors, 7)
	assert.NotEmpty(t, c.Products)

	for _, p := range c.Products {
		assert.NotZero(t, p.SupplierID, "product %q has no supplier", p.Name)
		assert.Greater(t, p.CurrentPrice, 0.0, "product %q", p.Name)
	}
}

func TestMemoryRepository_Suppliers(t *testing.T) {
	ctx := context.Background()
	repo := sampleRepo(t)

	all, err := repo.Suppliers(ctx)
	require.NoError(t, err)
	stats := Summarize(all)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 4, stats.Verified)
	assert.Equal(t, 4, stats.Locations)
	assert.InDelta(t, 80.0, stats.VerifiedPercent(), 0.001)
	assert.InDelta(t, 4.48, stats.AverageRating, 0.001)

	verified, err := repo.VerifiedSuppliers(ctx, 3)
	require.NoError(t, err)
	require.Len(t, verified, 3)
	assert.Equal(t, "Krishna Mandi", verified[0].Name)
	assert.Equal(t, "Fresh Farm Supplies", verified[1].Name)
	assert.Equal(t, "Quality Vegetables", verified[2].Name)

	top, err := repo.TopVerifiedSuppliers(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "Fresh Farm Supplies", top[0].Name)
	assert.Equal(t, "Organic Market", top[1].Name)
	assert.Equal(t, "Krishna Mandi", top[2].Name)
	for _, s := range top {
		assert.True(t, s.Verified)
	}
}

func TestMemoryRepository_Products(t *testing.T) {
	ctx := context.Background()
	repo := sampleRepo(t)

	products, err := repo.Products(ctx, 5)
	require.NoError(t, err)
	require.Len(t, products, 5)
	assert.Equal(t, "Tomatoes", products[0].Name)
	assert.Equal(t, "Krishna Mandi", products[0].SupplierName)
	assert.Equal(t, "Fresh Farm Supplies", products[2].SupplierName)

	all, err := repo.Products(ctx, 0)
	require.NoError(t, err)
	assert.Greater(t, len(all), 5)

	inCats, err := repo.ProductsInCategories(ctx, BusinessIceCream.Categories(), 5)
	require.NoError(t, err)
	require.Len(t, inCats, 5)
	for _, p := range inCats {
		assert.Contains(t, BusinessIceCream.Categories(), p.Category)
	}
	assert.Equal(t, "Milk", inCats[0].Name)

	bySupplier, err := repo.ProductsBySupplier(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, bySupplier, 3)
	assert.Equal(t, []string{"Tomatoes", "Onions", "Chocolate Syrup"},
		[]string{bySupplier[0].Name, bySupplier[1].Name, bySupplier[2].Name})
}

func TestMemoryRepository_ProductCategories(t *testing.T) {
	repo := sampleRepo(t)
	cats, err := repo.ProductCategories(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"vegetables", "oils", "grains", "pulses", "dairy", "essentials", "ice_cream", "chaat",
	}, cats)
}

func TestMemoryRepository_VendorByID(t *testing.T) {
	ctx := context.Background()
	repo := sampleRepo(t)

	v, err := repo.VendorByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Chaat Corner", v.Name)
	assert.Equal(t, BusinessChaat, v.BusinessType)

	_, err = repo.VendorByID(ctx, 99)
	assert.True(t, errors.Is(err, ErrVendorNotFound))
}

func TestMemoryRepository_ReplaceIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(Catalog{
		Suppliers: []Supplier{{ID: 2, Name: "B", Verified: true, Rating: 4}, {ID: 1, Name: "A", Verified: true, Rating: 4}},
		Products:  []Product{{ID: 1, Name: "Salt", Category: "essentials", SupplierID: 2}},
	})

	suppliers, err := repo.Suppliers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", suppliers[0].Name)
	suppliers[0].Name = "mutated"

	again, err := repo.Suppliers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", again[0].Name)

	products, err := repo.Products(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "B", products[0].SupplierName)

	top, err := repo.TopVerifiedSuppliers(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "A", top[0].Name, "equal ratings keep id order")

	repo.Replace(Catalog{})
	empty, err := repo.Suppliers(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.VerifiedPercent())
	assert.Zero(t, stats.AverageRating)
}

func TestReliabilityScore(t *testing.T) {
	s := Supplier{Rating: 4.8, HygieneRating: 4.6}
	assert.InDelta(t, 4.7, s.ReliabilityScore(), 0.0001)
}
