package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/catalog"
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func TestNewGormProductRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "price", "stock_quantity", "status"}).
			AddRow(productID, "MONST-4IN", "Monstera Deliciosa", decimal.NewFromInt(24), 12, "active")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), productID)

		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "MONST-4IN", product.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.Error(t, err)
		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindByCode(t *testing.T) {
	t.Run("uppercases the code before lookup", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "code", "name"}).
			AddRow(productID, "FERN-6IN", "Boston Fern")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("FERN-6IN", 1).
			WillReturnRows(rows)

		product, err := repo.FindByCode(context.Background(), "fern-6in")

		assert.NoError(t, err)
		assert.Equal(t, "FERN-6IN", product.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindFeatured(t *testing.T) {
	t.Run("queries active featured products with limit", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "featured", "status"}).
			AddRow(uuid.New(), "MONST-4IN", "Monstera Deliciosa", true, "active").
			AddRow(uuid.New(), "POTHOS-4IN", "Golden Pothos", true, "active")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE featured = \$1 AND status = \$2 ORDER BY sort_order ASC, name ASC LIMIT .*`).
			WithArgs(true, "active", 4).
			WillReturnRows(rows)

		products, err := repo.FindFeatured(context.Background(), 4)

		assert.NoError(t, err)
		assert.Len(t, products, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies a default limit when none is given", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE featured = \$1 AND status = \$2 ORDER BY sort_order ASC, name ASC LIMIT .*`).
			WithArgs(true, "active", 8).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindFeatured(context.Background(), 0)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindLowStock(t *testing.T) {
	t.Run("finds products at or below threshold", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "stock_quantity", "low_stock_threshold"}).
			AddRow(uuid.New(), "FICUS-1GAL", "Fiddle Leaf Fig", 2, 5)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE \(low_stock_threshold > 0 AND stock_quantity <= low_stock_threshold\) AND status != \$1 ORDER BY stock_quantity ASC, name ASC`).
			WithArgs("discontinued").
			WillReturnRows(rows)

		products, err := repo.FindLowStock(context.Background())

		assert.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, 2, products[0].StockQuantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_CountByStatus(t *testing.T) {
	t.Run("returns counts grouped by status", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"status", "count"}).
			AddRow("active", 42).
			AddRow("inactive", 7)

		mock.ExpectQuery(`SELECT status, COUNT\(\*\) as count FROM "products" GROUP BY .*status.*`).
			WillReturnRows(rows)

		counts, err := repo.CountByStatus(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(42), counts[catalog.ProductStatusActive])
		assert.Equal(t, int64(7), counts[catalog.ProductStatusInactive])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), productID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_ExistsByCode(t *testing.T) {
	t.Run("returns true when a row matches", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE code = \$1`).
			WithArgs("MONST-4IN").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), "monst-4in")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
