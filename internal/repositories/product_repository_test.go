package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/joaquinrv/tienda-platform/internal/models"
	repository "github.com/joaquinrv/tienda-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := context.Background()

	t.Run("CreateProduct_Success", func(t *testing.T) {
		product := &models.Product{
			Name:     "Mate cup",
			ImageURL: "https://img.example/mate.png",
			Price:    10.0,
			Quantity: 5,
			Season:   models.SeasonRegular,
		}
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO products \(name, image_url, price, quantity, season, created_at, updated_at\)`).
			WithArgs(product.Name, product.ImageURL, product.Price, product.Quantity, product.Season).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(7), now, now))

		err := repo.CreateProduct(ctx, product)

		require.NoError(t, err)
		assert.Equal(t, int64(7), product.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetProductByID_NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, image_url, price, quantity, season, created_at, updated_at`).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image_url", "price", "quantity", "season", "created_at", "updated_at"}))

		_, err := repo.GetProductByID(ctx, 404)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateProduct_FullReplace", func(t *testing.T) {
		product := &models.Product{
			ID:       7,
			Name:     "Mate cup deluxe",
			ImageURL: "https://img.example/mate2.png",
			Price:    12.0,
			Quantity: 8,
			Season:   models.SeasonHoliday,
		}

		mock.ExpectQuery(`UPDATE products SET name = \$1, image_url = \$2, price = \$3, quantity = \$4, season = \$5`).
			WithArgs(product.Name, product.ImageURL, product.Price, product.Quantity, product.Season, product.ID).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

		err := repo.UpdateProduct(ctx, product)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteProduct_NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteProduct(ctx, 404)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListProducts_OrderedByID", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT id, name, image_url, price, quantity, season, created_at, updated_at`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image_url", "price", "quantity", "season", "created_at", "updated_at"}).
				AddRow(int64(1), "Mate cup", "https://img.example/mate.png", 10.0, int64(5), "regular", now, now).
				AddRow(int64(2), "Thermos", "https://img.example/thermos.png", 25.5, int64(3), "holiday", now, now))

		products, err := repo.ListProducts(ctx)

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, models.SeasonHoliday, products[1].Season)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
