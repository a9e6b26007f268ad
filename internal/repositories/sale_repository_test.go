package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/joaquinrv/tienda-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkoutSession = "11111111-2222-3333-4444-555555555555"

func expectLockFunds(mock sqlmock.Sqlmock, userID int64, funds float64) {
	mock.ExpectQuery(`SELECT funds FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"funds"}).AddRow(funds))
}

func expectCartLines(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT c.product_id, c.quantity, p.name, p.price`).
		WithArgs(checkoutSession).
		WillReturnRows(rows)
}

func TestNewSaleRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewSaleRepo(db)
	assert.NotNil(t, repo)
}

func TestCheckout(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewSaleRepo(db)
	ctx := context.Background()

	t.Run("Success_SingleLine", func(t *testing.T) {
		// Stock 5 at 10.00, buying 3 with funds 100 leaves stock 2 and
		// funds 70 behind a single committed transaction.
		mock.ExpectBegin()
		expectLockFunds(mock, 1, 100)
		expectCartLines(mock, sqlmock.NewRows([]string{"product_id", "quantity", "name", "price"}).
			AddRow(int64(7), int64(3), "Mate cup", 10.0))

		mock.ExpectQuery(`INSERT INTO sales \(user_id, total, created_at\)`).
			WithArgs(int64(1), 30.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		mock.ExpectExec(`INSERT INTO sale_lines`).
			WithArgs(int64(42), int64(7), "Mate cup", 10.0, int64(3)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		mock.ExpectExec(`UPDATE products SET quantity = quantity - \$1`).
			WithArgs(int64(3), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectExec(`UPDATE users SET funds = funds - \$1`).
			WithArgs(30.0, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectExec(`DELETE FROM cart_lines WHERE session_id = \$1`).
			WithArgs(checkoutSession).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectCommit()

		saleID, err := repo.Checkout(ctx, checkoutSession, 1, false)

		require.NoError(t, err)
		assert.Equal(t, int64(42), saleID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_MultiLine_OrderPreserved", func(t *testing.T) {
		mock.ExpectBegin()
		expectLockFunds(mock, 1, 500)
		expectCartLines(mock, sqlmock.NewRows([]string{"product_id", "quantity", "name", "price"}).
			AddRow(int64(7), int64(2), "Mate cup", 10.0).
			AddRow(int64(8), int64(1), "Thermos", 25.5))

		mock.ExpectQuery(`INSERT INTO sales \(user_id, total, created_at\)`).
			WithArgs(int64(1), 45.5).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(43)))

		// Lines inserted in cart insertion order.
		mock.ExpectExec(`INSERT INTO sale_lines`).
			WithArgs(int64(43), int64(7), "Mate cup", 10.0, int64(2)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`UPDATE products SET quantity = quantity - \$1`).
			WithArgs(int64(2), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectExec(`INSERT INTO sale_lines`).
			WithArgs(int64(43), int64(8), "Thermos", 25.5, int64(1)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`UPDATE products SET quantity = quantity - \$1`).
			WithArgs(int64(1), int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectExec(`UPDATE users SET funds = funds - \$1`).
			WithArgs(45.5, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM cart_lines WHERE session_id = \$1`).
			WithArgs(checkoutSession).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		saleID, err := repo.Checkout(ctx, checkoutSession, 1, false)

		require.NoError(t, err)
		assert.Equal(t, int64(43), saleID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyCart", func(t *testing.T) {
		mock.ExpectBegin()
		expectLockFunds(mock, 1, 100)
		expectCartLines(mock, sqlmock.NewRows([]string{"product_id", "quantity", "name", "price"}))
		mock.ExpectRollback()

		_, err := repo.Checkout(ctx, checkoutSession, 1, false)

		assert.ErrorIs(t, err, repository.ErrEmptyCart)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT funds FROM users WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"funds"}))
		mock.ExpectRollback()

		_, err := repo.Checkout(ctx, checkoutSession, 99, false)

		assert.ErrorIs(t, err, repository.ErrAccountNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InvalidTotal", func(t *testing.T) {
		mock.ExpectBegin()
		expectLockFunds(mock, 1, 100)
		expectCartLines(mock, sqlmock.NewRows([]string{"product_id", "quantity", "name", "price"}).
			AddRow(int64(7), int64(1), "Broken price", 0.0))
		mock.ExpectRollback()

		_, err := repo.Checkout(ctx, checkoutSession, 1, false)

		assert.ErrorIs(t, err, repository.ErrInvalidTotal)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		mock.ExpectBegin()
		expectLockFunds(mock, 1, 20)
		expectCartLines(mock, sqlmock.NewRows([]string{"product_id", "quantity", "name", "price"}).
			AddRow(int64(7), int64(3), "Mate cup", 10.0))
		mock.ExpectRollback()

		_, err := repo.Checkout(ctx, checkoutSession, 1, false)

		assert.ErrorIs(t, err, repository.ErrInsufficientFunds)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientStock_RollsBack", func(t *testing.T) {
		// The conditional decrement touches zero rows when stock moved
		// between the cart read and the update. No partial sale survives.
		mock.ExpectBegin()
		expectLockFunds(mock, 1, 100)
		expectCartLines(mock, sqlmock.NewRows([]string{"product_id", "quantity", "name", "price"}).
			AddRow(int64(7), int64(3), "Mate cup", 10.0))

		mock.ExpectQuery(`INSERT INTO sales \(user_id, total, created_at\)`).
			WithArgs(int64(1), 30.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(44)))

		mock.ExpectExec(`INSERT INTO sale_lines`).
			WithArgs(int64(44), int64(7), "Mate cup", 10.0, int64(3)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		mock.ExpectExec(`UPDATE products SET quantity = quantity - \$1`).
			WithArgs(int64(3), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectRollback()

		_, err := repo.Checkout(ctx, checkoutSession, 1, false)

		var stockErr *repository.StockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int64(7), stockErr.ProductID)
		assert.Equal(t, "Mate cup", stockErr.ProductName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RemoveSoldOut_DeletesZeroStockProduct", func(t *testing.T) {
		mock.ExpectBegin()
		expectLockFunds(mock, 1, 100)
		expectCartLines(mock, sqlmock.NewRows([]string{"product_id", "quantity", "name", "price"}).
			AddRow(int64(7), int64(5), "Last units", 10.0))

		mock.ExpectQuery(`INSERT INTO sales \(user_id, total, created_at\)`).
			WithArgs(int64(1), 50.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(45)))

		mock.ExpectExec(`INSERT INTO sale_lines`).
			WithArgs(int64(45), int64(7), "Last units", 10.0, int64(5)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`UPDATE products SET quantity = quantity - \$1`).
			WithArgs(int64(5), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM products WHERE id = \$1 AND quantity = 0`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectExec(`UPDATE users SET funds = funds - \$1`).
			WithArgs(50.0, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM cart_lines WHERE session_id = \$1`).
			WithArgs(checkoutSession).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		saleID, err := repo.Checkout(ctx, checkoutSession, 1, true)

		require.NoError(t, err)
		assert.Equal(t, int64(45), saleID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CommitFailure", func(t *testing.T) {
		mock.ExpectBegin()
		expectLockFunds(mock, 1, 100)
		expectCartLines(mock, sqlmock.NewRows([]string{"product_id", "quantity", "name", "price"}).
			AddRow(int64(7), int64(1), "Mate cup", 10.0))

		mock.ExpectQuery(`INSERT INTO sales \(user_id, total, created_at\)`).
			WithArgs(int64(1), 10.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(46)))
		mock.ExpectExec(`INSERT INTO sale_lines`).
			WithArgs(int64(46), int64(7), "Mate cup", 10.0, int64(1)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`UPDATE products SET quantity = quantity - \$1`).
			WithArgs(int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE users SET funds = funds - \$1`).
			WithArgs(10.0, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM cart_lines WHERE session_id = \$1`).
			WithArgs(checkoutSession).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

		_, err := repo.Checkout(ctx, checkoutSession, 1, false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "commit")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetSale(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewSaleRepo(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT user_id, total, created_at FROM sales WHERE id = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "total", "created_at"}).
				AddRow(int64(1), 30.0, now))

		sale, err := repo.GetSale(ctx, 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), sale.ID)
		assert.Equal(t, int64(1), sale.UserID)
		assert.Equal(t, 30.0, sale.Total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT user_id, total, created_at FROM sales WHERE id = \$1`).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "total", "created_at"}))

		_, err := repo.GetSale(ctx, 404)

		assert.ErrorIs(t, err, repository.ErrSaleNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSalesByProduct(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewSaleRepo(db)
	ctx := context.Background()

	t.Run("AggregatesBySnapshotName", func(t *testing.T) {
		mock.ExpectQuery(`SELECT name, SUM\(quantity\) AS total_sold`).
			WillReturnRows(sqlmock.NewRows([]string{"name", "total_sold"}).
				AddRow("Mate cup", int64(12)).
				AddRow("Thermos", int64(4)))

		stats, err := repo.SalesByProduct(ctx)

		require.NoError(t, err)
		require.Len(t, stats, 2)
		assert.Equal(t, "Mate cup", stats[0].Name)
		assert.Equal(t, int64(12), stats[0].TotalSold)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
