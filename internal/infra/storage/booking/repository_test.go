package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/pkg/dbmetrics"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock, db
}

func TestRepository_GetOverlapping_ScansActiveBookings(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	start := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	profID := int64(2)

	rows := sqlmock.NewRows(bookingColumns).
		AddRow(
			int64(7), int64(1), int64(3), int64(5), profID,
			"AB12CD", start, end, "confirmed",
			nil, nil, nil,
			"Corte Feminino", "Ana", "Maria", "11999998888",
			time.Now(), time.Now(),
		)

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(int64(1), "pending", "confirmed", end, start, profID).
		WillReturnRows(rows)

	got, err := repo.GetOverlapping(context.Background(), 1, &profID, start, end)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, domain.StatusConfirmed, got[0].Status)
	assert.True(t, got[0].StartAt.Equal(start))
	require.NotNil(t, got[0].ProfessionalID)
	assert.Equal(t, profID, *got[0].ProfessionalID)
	assert.Nil(t, got[0].Notes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockOverlapping_RequiresTransaction(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	start := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)

	_, err := repo.LockOverlapping(context.Background(), 1, nil, start, start.Add(time.Hour))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecQuery)

	// The guard fires before any query is issued.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockOverlapping_InsideTransaction(t *testing.T) {
	repo, mock, db := newMockRepository(t)

	start := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM bookings (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(bookingColumns))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	ctx := dbmetrics.WithTransaction(context.Background(), tx)
	got, err := repo.LockOverlapping(ctx, 1, nil, start, end)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockOverlapping_TransientLockError(t *testing.T) {
	repo, mock, db := newMockRepository(t)

	start := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnError(&pq.Error{Code: pq.ErrorCode(pgLockNotAvailable)})
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	ctx := dbmetrics.WithTransaction(context.Background(), tx)
	_, err = repo.LockOverlapping(ctx, 1, nil, start, start.Add(time.Hour))
	assert.ErrorIs(t, err, ErrLockNotAvailable)
}

func TestRepository_Create_MapsUniqueViolationToDuplicateCode(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: pq.ErrorCode(pgUniqueViolation)})

	_, err := repo.Create(context.Background(), &domain.Booking{
		TenantID: 1, ClientID: 3, ServiceID: 5,
		Code:    "AB12CD",
		StartAt: time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 1, 12, 11, 0, 0, 0, time.UTC),
		Status:  domain.StatusPending,
	})

	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestRepository_Create_ReturnsGeneratedFields(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	createdAt := time.Date(2026, 1, 12, 9, 55, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(42), createdAt, createdAt))

	b := &domain.Booking{
		TenantID: 1, ClientID: 3, ServiceID: 5,
		Code:    "AB12CD",
		StartAt: time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 1, 12, 11, 0, 0, 0, time.UTC),
		Status:  domain.StatusPending,
	}

	created, err := repo.Create(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.True(t, created.CreatedAt.Equal(createdAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_ExistsExact(t *testing.T) {
	start := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)
	profID := int64(2)

	t.Run("existing active booking", func(t *testing.T) {
		repo, mock, _ := newMockRepository(t)

		mock.ExpectQuery("SELECT 1 FROM bookings").
			WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

		exists, err := repo.ExistsExact(context.Background(), 1, 3, &profID, 5, start)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("no matching row", func(t *testing.T) {
		repo, mock, _ := newMockRepository(t)

		mock.ExpectQuery("SELECT 1 FROM bookings").
			WillReturnError(sql.ErrNoRows)

		exists, err := repo.ExistsExact(context.Background(), 1, 3, nil, 5, start)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
