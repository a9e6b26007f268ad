package cache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/joaquinrv/tienda-platform/internal/cache"
	"github.com/joaquinrv/tienda-platform/internal/models"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_Get(t *testing.T) {

	catalog := []models.Product{{ID: 1, Name: "Mate cup", Price: 10}}
	raw, err := json.Marshal(catalog)
	require.NoError(t, err)

	t.Run("Hit", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		c := cache.NewRedisCache(client)

		mock.ExpectGet(cache.CatalogKey).SetVal(string(raw))

		var got []models.Product
		hit, err := c.Get(context.Background(), cache.CatalogKey, &got)

		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, catalog, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		c := cache.NewRedisCache(client)

		mock.ExpectGet(cache.CatalogKey).RedisNil()

		var got []models.Product
		hit, err := c.Get(context.Background(), cache.CatalogKey, &got)

		require.NoError(t, err)
		assert.False(t, hit)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CorruptPayload", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		c := cache.NewRedisCache(client)

		mock.ExpectGet(cache.CatalogKey).SetVal("{not json")

		var got []models.Product
		_, err := c.Get(context.Background(), cache.CatalogKey, &got)

		assert.Error(t, err)
	})
}

func TestRedisCache_Set(t *testing.T) {

	catalog := []models.Product{{ID: 1, Name: "Mate cup", Price: 10}}
	raw, err := json.Marshal(catalog)
	require.NoError(t, err)

	client, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(client)

	mock.ExpectSet(cache.CatalogKey, raw, time.Minute).SetVal("OK")

	err = c.Set(context.Background(), cache.CatalogKey, catalog, time.Minute)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Delete(t *testing.T) {

	client, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(client)

	mock.ExpectDel(cache.CatalogKey).SetVal(1)

	err := c.Delete(context.Background(), cache.CatalogKey)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
