package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/joaquinrv/tienda-platform/internal/models"
	repository "github.com/joaquinrv/tienda-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cartSession = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"

func TestCartRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewCartRepo(db)
	ctx := context.Background()

	t.Run("GetLine_Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, quantity FROM cart_lines WHERE session_id = \$1 AND product_id = \$2`).
			WithArgs(cartSession, int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "quantity"}).AddRow(int64(3), int64(2)))

		line, err := repo.GetLine(ctx, cartSession, 7)

		require.NoError(t, err)
		assert.Equal(t, int64(3), line.ID)
		assert.Equal(t, int64(2), line.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetLine_NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, quantity FROM cart_lines WHERE session_id = \$1 AND product_id = \$2`).
			WithArgs(cartSession, int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "quantity"}))

		_, err := repo.GetLine(ctx, cartSession, 7)

		assert.ErrorIs(t, err, repository.ErrCartLineNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsertLine_Success", func(t *testing.T) {
		line := &models.CartLine{SessionID: cartSession, ProductID: 7, Quantity: 2}

		mock.ExpectQuery(`INSERT INTO cart_lines \(session_id, product_id, quantity\)`).
			WithArgs(cartSession, int64(7), int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

		err := repo.InsertLine(ctx, line)

		require.NoError(t, err)
		assert.Equal(t, int64(9), line.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateLineQuantity_NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE cart_lines SET quantity = \$1 WHERE id = \$2`).
			WithArgs(int64(5), int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateLineQuantity(ctx, 99, 5)

		assert.ErrorIs(t, err, repository.ErrCartLineNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListItems_JoinsProducts", func(t *testing.T) {
		mock.ExpectQuery(`SELECT c.product_id, c.quantity, p.name, p.image_url, p.price`).
			WithArgs(cartSession).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "name", "image_url", "price"}).
				AddRow(int64(7), int64(2), "Mate cup", "https://img.example/mate.png", 10.0).
				AddRow(int64(8), int64(1), "Thermos", "https://img.example/thermos.png", 25.5))

		items, err := repo.ListItems(ctx, cartSession)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Mate cup", items[0].Name)
		assert.Equal(t, 25.5, items[1].Price)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RemoveLineRestock_Success", func(t *testing.T) {
		// Delete and restock commit together.
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT quantity FROM cart_lines WHERE session_id = \$1 AND product_id = \$2`).
			WithArgs(cartSession, int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(int64(2)))
		mock.ExpectExec(`DELETE FROM cart_lines WHERE session_id = \$1 AND product_id = \$2`).
			WithArgs(cartSession, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE products SET quantity = quantity \+ \$1`).
			WithArgs(int64(2), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.RemoveLineRestock(ctx, cartSession, 7)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RemoveLineRestock_NotFound", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT quantity FROM cart_lines WHERE session_id = \$1 AND product_id = \$2`).
			WithArgs(cartSession, int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}))
		mock.ExpectRollback()

		err := repo.RemoveLineRestock(ctx, cartSession, 7)

		assert.ErrorIs(t, err, repository.ErrCartLineNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
