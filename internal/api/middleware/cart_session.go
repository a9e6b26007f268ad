package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CartSessionHeader carries the opaque token that keys a shopper's cart.
// The client is expected to echo it back on every cart request; a request
// without one gets a fresh token in the response.
const CartSessionHeader = "X-Cart-Session"

type cartSessionContextKey struct{}

var CartSessionKey = cartSessionContextKey{}

func CartSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		token := r.Header.Get(CartSessionHeader)
		if token == "" {
			token = uuid.NewString()
		}

		w.Header().Set(CartSessionHeader, token)

		ctx := context.WithValue(r.Context(), CartSessionKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func CartSessionFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(CartSessionKey).(string); ok {
		return token
	}

	return ""
}
