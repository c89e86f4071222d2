package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"payload"}).
		AddRow([]byte(`{"numero": "CMD-7", "prix_ttc": 12.5, "items": [{"name": "Savon", "qty": 2, "price": 6.25}]}`))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM orders WHERE id = $1")).
		WithArgs("7").
		WillReturnRows(rows)

	order, err := repo.GetByID(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "7", order.ID())
	assert.Equal(t, "CMD-7", order.Numero())
	assert.Equal(t, 12.5, order.Number("prix_ttc"))
	assert.Len(t, order.Items(), 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM orders WHERE id = $1")).
		WithArgs("404").
		WillReturnError(sql.ErrNoRows)

	_, err = NewOrderRepository(db).GetByID(context.Background(), "404")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = NewOrderRepository(db).GetByID(context.Background(), " ")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders")).
		WithArgs("7", `{"remise":1.5}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), "7", map[string]any{"remise": 1.5}))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders")).
		WithArgs("8", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), "8", map[string]any{"remise": 0}), ErrOrderNotFound)

	assert.Error(t, repo.Update(context.Background(), "", map[string]any{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
