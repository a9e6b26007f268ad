package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/joaquinrv/tienda-platform/internal/api/middleware"
	"github.com/joaquinrv/tienda-platform/internal/models"
)

// CreateTestRequestWithContext builds a request carrying authenticated
// claims, a discard logger and the given path parameters, mirroring what
// the middleware chain provides in production.
func CreateTestRequestWithContext(method, target string, body io.Reader, userID int64, role string, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	claims := &models.Claims{UserID: userID, Username: "tester", Role: role}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	ctx = context.WithValue(ctx, middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}

func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}

// CreateTestRequestWithCartSession adds a cart session token on top of the
// plain request context.
func CreateTestRequestWithCartSession(method, target string, body io.Reader, sessionID string) *http.Request {
	req := CreateTestRequestWithoutContext(method, target, body, nil)
	ctx := context.WithValue(req.Context(), middleware.CartSessionKey, sessionID)
	return req.WithContext(ctx)
}

// CreateCheckoutTestRequest carries both claims and a cart session, the
// shape a checkout request has after the full middleware chain.
func CreateCheckoutTestRequest(method, target string, body io.Reader, userID int64, sessionID string) *http.Request {
	req := CreateTestRequestWithContext(method, target, body, userID, models.RoleUser, nil)
	ctx := context.WithValue(req.Context(), middleware.CartSessionKey, sessionID)
	return req.WithContext(ctx)
}
