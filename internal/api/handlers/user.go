package handlers

import (
	"fmt"
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

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

// Register creates a regular-role account. Duplicate username or email is
// rejected with 409.
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger.Warn("Registration failed", slog.String("username", req.Username), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("User registered", slog.Int64("userId", user.ID))
		response.Success(w, http.StatusCreated, user)
	}
}

func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("username", req.Username), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			if resp.RetryAfter > 0 {
				logger.Warn("Login rate limited", slog.String("username", req.Username))
				response.Error(w, appErrors.TooManyLoginsError("Too many login attempts").
					WithDetail(fmt.Sprintf("Retry after %d seconds", resp.RetryAfter)))
				return
			}
			response.WriteJson(w, http.StatusUnauthorized, resp)
			return
		}

		logger.Info("User logged in", slog.String("username", req.Username))
		response.Success(w, http.StatusOK, resp)
	}
}

func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

func (h *UserHandler) TopUpFunds() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.TopUpRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		funds, err := h.userService.TopUpFunds(r.Context(), claims.UserID, req.Amount)
		if err != nil {
			logger.Warn("Top-up failed", slog.Int64("userId", claims.UserID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Funds added", slog.Int64("userId", claims.UserID), slog.Float64("amount", req.Amount))
		response.Success(w, http.StatusOK, models.TopUpResponse{Funds: funds})
	}
}

// --- Admin operations ---

func (h *UserHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		users, err := h.userService.ListUsers(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, users)
	}
}

func (h *UserHandler) GetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

func (h *UserHandler) UpdateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.AdminUpdateUserRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.userService.UpdateUser(r.Context(), id, &req); err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("User updated", slog.Int64("userId", id))
		response.Success(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func (h *UserHandler) DeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.userService.DeleteUser(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("User deleted", slog.Int64("userId", id))
		response.Success(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func (h *UserHandler) SetFunds() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.AdminSetFundsRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.userService.SetFunds(r.Context(), id, *req.Funds); err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Funds set", slog.Int64("userId", id), slog.Float64("funds", *req.Funds))
		response.Success(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
