package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain name", input: "corte", want: "%corte%"},
		{name: "percent matches literally", input: "100%", want: `%100\%%`},
		{name: "underscore matches literally", input: "mani_pedi", want: `%mani\_pedi%`},
		{name: "backslash escaped first", input: `a\b`, want: `%a\\b%`},
		{name: "bare wildcard", input: "%", want: `%\%%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPattern(tt.input))
		})
	}
}

func TestRepository_FindServiceByName_EscapesPattern(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows(serviceColumns).
		AddRow(int64(7), int64(1), "Promoção 100% Off", "", nil, 30, true, time.Now(), time.Now())

	// squirrel renders Eq maps in sorted key order: active, tenant_id.
	mock.ExpectQuery("SELECT (.+) FROM services").
		WithArgs(true, int64(1), `%100\%%`).
		WillReturnRows(rows)

	svc, err := repo.FindServiceByName(context.Background(), 1, "100%")
	require.NoError(t, err)
	assert.Equal(t, int64(7), svc.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindProfessionalByName_EscapesPattern(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM professionals").
		WithArgs(true, int64(1), `%ana\_maria%`).
		WillReturnRows(sqlmock.NewRows(professionalColumns))

	_, err = repo.FindProfessionalByName(context.Background(), 1, "ana_maria")
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}
