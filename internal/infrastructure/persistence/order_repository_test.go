package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockOrderRepository creates a GormOrderRepository with a mocked SQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func TestGormOrderRepository_FindByNumber(t *testing.T) {
	t.Run("returns ErrNotFound for unknown order number", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("VN-20260831-0042", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		o, err := repo.FindByNumber(context.Background(), "VN-20260831-0042")

		assert.Nil(t, o)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_NextSequence(t *testing.T) {
	t.Run("reserves the next value for the day", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		day := time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)

		mock.ExpectQuery(`INSERT INTO order_number_sequences`).
			WithArgs("2026-08-31").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(42))

		seq, err := repo.NextSequence(context.Background(), day)

		assert.NoError(t, err)
		assert.Equal(t, 42, seq)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_CountPickups(t *testing.T) {
	t.Run("maps rows into schedule and date buckets", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		locationID := uuid.New()
		scheduleID := uuid.New()

		rows := sqlmock.NewRows([]string{"pickup_schedule_id", "pickup_date", "count"}).
			AddRow(scheduleID, "2026-09-01", 3).
			AddRow(scheduleID, "2026-09-02", 1)

		mock.ExpectQuery(`SELECT pickup_schedule_id, pickup_date, COUNT\(\*\) as count FROM "orders"`).
			WithArgs("pickup", locationID, "2026-09-01", "2026-09-07", "cancelled").
			WillReturnRows(rows)

		counts, err := repo.CountPickups(context.Background(), locationID, "2026-09-01", "2026-09-07")

		assert.NoError(t, err)
		assert.Equal(t, 3, counts[scheduleID]["2026-09-01"])
		assert.Equal(t, 1, counts[scheduleID]["2026-09-02"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty map when no pickups exist", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		locationID := uuid.New()

		mock.ExpectQuery(`SELECT pickup_schedule_id, pickup_date, COUNT\(\*\) as count FROM "orders"`).
			WithArgs("pickup", locationID, "2026-09-01", "2026-09-07", "cancelled").
			WillReturnRows(sqlmock.NewRows([]string{"pickup_schedule_id", "pickup_date", "count"}))

		counts, err := repo.CountPickups(context.Background(), locationID, "2026-09-01", "2026-09-07")

		assert.NoError(t, err)
		assert.Empty(t, counts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_CountBookings(t *testing.T) {
	t.Run("exposes pickup counts as booked counts", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		locationID := uuid.New()
		scheduleID := uuid.New()

		rows := sqlmock.NewRows([]string{"pickup_schedule_id", "pickup_date", "count"}).
			AddRow(scheduleID, "2026-09-03", 2)

		mock.ExpectQuery(`SELECT pickup_schedule_id, pickup_date, COUNT\(\*\) as count FROM "orders"`).
			WithArgs("pickup", locationID, "2026-09-01", "2026-09-07", "cancelled").
			WillReturnRows(rows)

		booked, err := repo.CountBookings(context.Background(), locationID, "2026-09-01", "2026-09-07")

		assert.NoError(t, err)
		assert.Equal(t, 2, booked.Get(scheduleID, "2026-09-03"))
		assert.Equal(t, 0, booked.Get(scheduleID, "2026-09-04"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
