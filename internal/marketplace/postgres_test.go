package marketplace

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewPostgresRepositoryWithDB(mock), mock
}

var supplierCols = []string{"id", "name", "phone", "location", "rating", "hygiene_rating", "verified"}

var productCols = []string{"id", "name", "category", "current_price", "unit", "stock_available", "supplier_id", "supplier_name"}

func TestPostgresRepository_TopVerifiedSuppliers(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("FROM suppliers WHERE verified ORDER BY rating DESC").
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows(supplierCols).
			AddRow(int64(2), "Fresh Farm Supplies", "9876543211", "Andheri West", 4.8, 4.6, true).
			AddRow(int64(4), "Organic Market", "9876543213", "Juhu", 4.7, 4.8, true))

	got, err := repo.TopVerifiedSuppliers(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Fresh Farm Supplies", got[0].Name)
	assert.InDelta(t, 4.8, got[1].HygieneRating, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_NegativeLimitMeansUnlimited(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("FROM suppliers WHERE verified ORDER BY id").
		WithArgs(0).
		WillReturnRows(pgxmock.NewRows(supplierCols))

	got, err := repo.VerifiedSuppliers(context.Background(), -1)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ProductsInCategories(t *testing.T) {
	repo, mock := newMockRepo(t)
	cats := []string{"dairy", "ice_cream"}

	mock.ExpectQuery("WHERE p.category = ANY").
		WithArgs(cats, 5).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(int64(7), "Milk", "dairy", 60.0, "liter", 100, int64(2), "Fresh Farm Supplies"))

	got, err := repo.ProductsInCategories(context.Background(), cats, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Milk", got[0].Name)
	assert.Equal(t, "Fresh Farm Supplies", got[0].SupplierName)
	assert.Equal(t, 100, got[0].StockAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ProductsInCategoriesEmptySkipsQuery(t *testing.T) {
	repo, mock := newMockRepo(t)
	got, err := repo.ProductsInCategories(context.Background(), nil, 5)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ProductCategories(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT category FROM products GROUP BY category").
		WithArgs(8).
		WillReturnRows(pgxmock.NewRows([]string{"category"}).AddRow("vegetables").AddRow("oils"))

	got, err := repo.ProductCategories(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"vegetables", "oils"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_QueryErrorIsWrapped(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery("FROM products p").WithArgs(5).WillReturnError(boom)

	_, err := repo.Products(context.Background(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "marketplace: query products")
}

func TestPostgresRepository_VendorByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("FROM vendors WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "phone", "location", "business_type"}).
			AddRow(int64(1), "Ice Cream Paradise", "9876543201", "Bandra West", "ice_cream"))

	v, err := repo.VendorByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, BusinessIceCream, v.BusinessType)
	assert.Equal(t, "Bandra West", v.Location)

	mock.ExpectQuery("FROM vendors WHERE id").
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.VendorByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrVendorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresRepositoryPanicsWithoutPool(t *testing.T) {
	assert.Panics(t, func() { NewPostgresRepository(nil) })
}
