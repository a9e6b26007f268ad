package service

import (
	"context"
	"errors"
	"log/slog"

	appErrors "github.com/joaquinrv/tienda-platform/internal/errors"
	"github.com/joaquinrv/tienda-platform/internal/metrics"
	"github.com/joaquinrv/tienda-platform/internal/models"
	repository "github.com/joaquinrv/tienda-platform/internal/repositories"
	"github.com/joaquinrv/tienda-platform/pkg/email"
)

type CheckoutService interface {
	Checkout(ctx context.Context, sessionID string, userID int64) (*models.CheckoutResponse, error)
}

type checkoutService struct {
	sales         repository.SaleRepository
	users         repository.UserRepository
	email         email.Service
	removeSoldOut bool
}

func NewCheckoutService(sales repository.SaleRepository, users repository.UserRepository, email email.Service, removeSoldOut bool) CheckoutService {
	return &checkoutService{
		sales:         sales,
		users:         users,
		email:         email,
		removeSoldOut: removeSoldOut,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, sessionID string, userID int64) (*models.CheckoutResponse, error) {

	saleID, err := s.sales.Checkout(ctx, sessionID, userID, s.removeSoldOut)
	if err != nil {
		return nil, s.mapCheckoutError(err)
	}

	metrics.RecordCheckout(metrics.CheckoutOK)

	s.sendReceipt(ctx, userID, saleID)

	return &models.CheckoutResponse{SaleID: saleID}, nil
}

func (s *checkoutService) mapCheckoutError(err error) error {

	var stockErr *repository.StockError

	switch {
	case errors.Is(err, repository.ErrEmptyCart):
		metrics.RecordCheckout(metrics.CheckoutEmptyCart)
		return appErrors.EmptyCartError()
	case errors.Is(err, repository.ErrInvalidTotal):
		metrics.RecordCheckout(metrics.CheckoutInvalidTotal)
		return appErrors.InvalidTotalError()
	case errors.Is(err, repository.ErrInsufficientFunds):
		metrics.RecordCheckout(metrics.CheckoutInsufficientFunds)
		return appErrors.InsufficientFundsError()
	case errors.As(err, &stockErr):
		metrics.RecordCheckout(metrics.CheckoutInsufficientStock)
		return appErrors.InsufficientStockError(stockErr.ProductName)
	case errors.Is(err, repository.ErrAccountNotFound):
		metrics.RecordCheckout(metrics.CheckoutError)
		return appErrors.NotFoundError("Account not found")
	default:
		metrics.RecordCheckout(metrics.CheckoutError)
		return appErrors.CommitFailedError().WithError(err)
	}
}

// sendReceipt is best effort; a mail failure never fails a committed sale.
func (s *checkoutService) sendReceipt(ctx context.Context, userID, saleID int64) {

	if s.email == nil {
		return
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "receipt skipped, user lookup failed", slog.Int64("sale_id", saleID), slog.String("error", err.Error()))
		return
	}

	sale, err := s.sales.GetSale(ctx, saleID)
	if err != nil {
		slog.WarnContext(ctx, "receipt skipped, sale lookup failed", slog.Int64("sale_id", saleID), slog.String("error", err.Error()))
		return
	}

	lines, err := s.sales.GetSaleLines(ctx, saleID)
	if err != nil {
		slog.WarnContext(ctx, "receipt skipped, sale lines lookup failed", slog.Int64("sale_id", saleID), slog.String("error", err.Error()))
		return
	}

	if err := s.email.SendReceipt(ctx, user.Email, sale, lines); err != nil {
		slog.WarnContext(ctx, "receipt email failed", slog.Int64("sale_id", saleID), slog.String("error", err.Error()))
	}
}
