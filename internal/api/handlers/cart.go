package handlers

import (
	"log/slog"
	"net/http"

	"github.com/joaquinrv/tienda-platform/internal/api/middleware"
	appErrors "github.com/joaquinrv/tienda-platform/internal/errors"
	"github.com/joaquinrv/tienda-platform/internal/models"
	service "github.com/joaquinrv/tienda-platform/internal/services"
	"github.com/joaquinrv/tienda-platform/internal/utils"
	"github.com/joaquinrv/tienda-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService     service.CartService
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCartHandler(cartService service.CartService, checkoutService service.CheckoutService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
		validator:       validator.New(),
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID := middleware.CartSessionFromContext(r.Context())
		if sessionID == "" {
			response.Error(w, appErrors.BadRequestError("Missing cart session"))
			return
		}

		var req models.AddCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.cartService.AddItem(r.Context(), sessionID, &req); err != nil {
			logger.Warn("Cart add failed", slog.Int64("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID := middleware.CartSessionFromContext(r.Context())
		if sessionID == "" {
			response.Error(w, appErrors.BadRequestError("Missing cart session"))
			return
		}

		items, err := h.cartService.GetCart(r.Context(), sessionID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, items)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID := middleware.CartSessionFromContext(r.Context())
		if sessionID == "" {
			response.Error(w, appErrors.BadRequestError("Missing cart session"))
			return
		}

		var req models.RemoveCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.cartService.RemoveItem(r.Context(), sessionID, req.ProductID); err != nil {
			logger.Warn("Cart remove failed", slog.Int64("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// Checkout converts the session cart into a sale for the authenticated
// user. All failures leave cart, stock and funds untouched.
func (h *CartHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		if sessionID == "" {
			response.Error(w, appErrors.BadRequestError("Missing cart session"))
			return
		}

		resp, err := h.checkoutService.Checkout(r.Context(), sessionID, claims.UserID)
		if err != nil {
			logger.Warn("Checkout failed", slog.Int64("userId", claims.UserID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout completed", slog.Int64("userId", claims.UserID), slog.Int64("saleId", resp.SaleID))
		response.Success(w, http.StatusOK, resp)
	}
}
