package handlers

import (
	"net/http"

	"github.com/joaquinrv/tienda-platform/internal/api/middleware"
	appErrors "github.com/joaquinrv/tienda-platform/internal/errors"
	service "github.com/joaquinrv/tienda-platform/internal/services"
	"github.com/joaquinrv/tienda-platform/internal/utils"
	"github.com/joaquinrv/tienda-platform/internal/utils/response"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) ListSales() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sales, err := h.saleService.ListSales(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, sales)
	}
}

func (h *SaleHandler) GetSale() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		detail, err := h.saleService.GetSaleDetail(r.Context(), id, claims.UserID, claims.Role)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, detail)
	}
}

func (h *SaleHandler) ListMySales() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		sales, err := h.saleService.ListSalesByUser(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, sales)
	}
}

func (h *SaleHandler) SalesByProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		stats, err := h.saleService.SalesByProduct(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}
