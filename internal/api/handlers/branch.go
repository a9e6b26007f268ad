package handlers

import (
	"log/slog"
	"net/http"

	"github.com/joaquinrv/tienda-platform/internal/api/middleware"
	"github.com/joaquinrv/tienda-platform/internal/models"
	service "github.com/joaquinrv/tienda-platform/internal/services"
	"github.com/joaquinrv/tienda-platform/internal/utils"
	"github.com/joaquinrv/tienda-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type BranchHandler struct {
	branchService service.BranchService
	validator     *validator.Validate
}

func NewBranchHandler(branchService service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService, validator: validator.New()}
}

func (h *BranchHandler) CreateBranch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateBranchRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		branch, err := h.branchService.CreateBranch(r.Context(), &req)
		if err != nil {
			logger.Error("Branch creation failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Branch created", slog.Int64("branchId", branch.ID))
		response.Success(w, http.StatusCreated, branch)
	}
}

func (h *BranchHandler) ListBranches() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		branches, err := h.branchService.ListBranches(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, branches)
	}
}
