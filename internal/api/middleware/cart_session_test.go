package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joaquinrv/tienda-platform/internal/api/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSession(t *testing.T) {

	t.Run("IssuesTokenWhenAbsent", func(t *testing.T) {
		var seen string

		handler := middleware.CartSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.CartSessionFromContext(r.Context())
		}))

		req := httptest.NewRequest("GET", "/api/v1/cart", nil)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, req)

		require.NotEmpty(t, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err, "issued token should be a UUID")
		assert.Equal(t, seen, recorder.Header().Get(middleware.CartSessionHeader), "token must be echoed to the client")
	})

	t.Run("KeepsExistingToken", func(t *testing.T) {
		existing := uuid.NewString()

		var seen string

		handler := middleware.CartSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.CartSessionFromContext(r.Context())
		}))

		req := httptest.NewRequest("GET", "/api/v1/cart", nil)
		req.Header.Set(middleware.CartSessionHeader, existing)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, req)

		assert.Equal(t, existing, seen)
		assert.Equal(t, existing, recorder.Header().Get(middleware.CartSessionHeader))
	})
}
