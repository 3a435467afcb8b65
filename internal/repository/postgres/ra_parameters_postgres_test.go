package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rateanalysis/internal/model"
	"rateanalysis/internal/repository"
)

var raParametersRowColumns = []string{"id", "name", "value", "description", "is_active"}

func strPtr(s string) *string { return &s }

func TestRaParametersPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRaParametersPostgres(db)

	rows := sqlmock.NewRows(raParametersRowColumns).AddRow(int64(1), "X", nil, nil, nil)
	mock.ExpectQuery("INSERT INTO ra_parameters").
		WithArgs("X", nil, nil, nil).
		WillReturnRows(rows)

	result, err := repo.Create(context.Background(), &model.RaParameters{Name: strPtr("X")})

	require.NoError(t, err)
	require.NotNil(t, result.ID)
	assert.Equal(t, int64(1), *result.ID)
	assert.Equal(t, "X", *result.Name)
	assert.Nil(t, result.Value)
	assert.Nil(t, result.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRaParametersPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRaParametersPostgres(db)
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		value := 3.5
		rows := sqlmock.NewRows(raParametersRowColumns).AddRow(int64(7), "Y", 3.5, "d", true)
		mock.ExpectQuery("UPDATE ra_parameters").
			WithArgs(int64(7), "Y", 3.5, "d", true).
			WillReturnRows(rows)

		active := true
		result, err := repo.Update(ctx, 7, &model.RaParameters{Name: strPtr("Y"), Value: &value, Description: strPtr("d"), IsActive: &active})

		require.NoError(t, err)
		assert.Equal(t, 3.5, *result.Value)
		assert.True(t, *result.IsActive)
	})

	t.Run("row vanished", func(t *testing.T) {
		mock.ExpectQuery("UPDATE ra_parameters").
			WithArgs(int64(8), "Y", nil, nil, nil).
			WillReturnError(sql.ErrNoRows)

		result, err := repo.Update(ctx, 8, &model.RaParameters{Name: strPtr("Y")})

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, result)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRaParametersPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRaParametersPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(raParametersRowColumns).AddRow(int64(1), "X", 1.25, "desc", false)
		mock.ExpectQuery("SELECT (.+) FROM ra_parameters WHERE id = ").
			WithArgs(int64(1)).
			WillReturnRows(rows)

		rec, err := repo.FindByID(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), *rec.ID)
		assert.Equal(t, "desc", *rec.Description)
		assert.False(t, *rec.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM ra_parameters WHERE id = ").
			WithArgs(int64(2)).
			WillReturnError(sql.ErrNoRows)

		rec, err := repo.FindByID(ctx, 2)

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, rec)
	})
}

func TestRaParametersPostgres_FindAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRaParametersPostgres(db)

	rows := sqlmock.NewRows(raParametersRowColumns).
		AddRow(int64(1), "A", nil, nil, nil).
		AddRow(int64(2), "B", nil, nil, nil)
	mock.ExpectQuery("SELECT (.+) FROM ra_parameters ORDER BY id ASC").WillReturnRows(rows)

	items, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "B", *items[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRaParametersPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRaParametersPostgres(db)
	ctx := context.Background()

	t.Run("sorted page", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM ra_parameters").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))
		mock.ExpectQuery("SELECT (.+) FROM ra_parameters ORDER BY name DESC, id ASC LIMIT").
			WithArgs(2, 2).
			WillReturnRows(sqlmock.NewRows(raParametersRowColumns).AddRow(int64(3), "A", nil, nil, nil))

		res, err := repo.List(ctx, repository.PageQuery{Page: 1, Size: 2, Sort: []repository.Order{{Property: "name", Direction: repository.Desc}}})

		require.NoError(t, err)
		assert.Equal(t, int64(3), res.Total)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 2, res.Size)
		assert.Len(t, res.Items, 1)
	})

	t.Run("unknown sort property", func(t *testing.T) {
		res, err := repo.List(ctx, repository.PageQuery{Page: 0, Size: 2, Sort: []repository.Order{{Property: "name; DROP TABLE x"}}})

		assert.ErrorIs(t, err, repository.ErrInvalidSort)
		assert.Nil(t, res)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRaParametersPostgres_ExistsByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRaParametersPostgres(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByID(context.Background(), 99)

	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRaParametersPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRaParametersPostgres(db)

	mock.ExpectExec("DELETE FROM ra_parameters WHERE id = ").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
