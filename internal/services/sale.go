package service

import (
	"context"
	"errors"

	appErrors "github.com/joaquinrv/tienda-platform/internal/errors"
	"github.com/joaquinrv/tienda-platform/internal/models"
	repository "github.com/joaquinrv/tienda-platform/internal/repositories"
)

type SaleService interface {
	ListSales(ctx context.Context) ([]models.Sale, error)
	GetSaleDetail(ctx context.Context, saleID, requesterID int64, requesterRole string) (*models.SaleDetail, error)
	ListSalesByUser(ctx context.Context, userID int64) ([]models.Sale, error)
	SalesByProduct(ctx context.Context) ([]models.ProductSales, error)
}

type saleService struct {
	repo repository.SaleRepository
}

func NewSaleService(repo repository.SaleRepository) SaleService {
	return &saleService{repo: repo}
}

func (s *saleService) ListSales(ctx context.Context) ([]models.Sale, error) {

	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch sales").WithError(err)
	}

	return sales, nil
}

// GetSaleDetail returns a sale with its lines. Non-admin callers may only
// read their own sales.
func (s *saleService) GetSaleDetail(ctx context.Context, saleID, requesterID int64, requesterRole string) (*models.SaleDetail, error) {

	sale, err := s.repo.GetSale(ctx, saleID)
	if errors.Is(err, repository.ErrSaleNotFound) {
		return nil, appErrors.NotFoundError("Sale not found")
	}
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch sale").WithError(err)
	}

	if requesterRole != models.RoleAdmin && sale.UserID != requesterID {
		return nil, appErrors.ForbiddenError("You do not have access to this sale")
	}

	lines, err := s.repo.GetSaleLines(ctx, saleID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch sale lines").WithError(err)
	}

	return &models.SaleDetail{Sale: *sale, Lines: lines}, nil
}

func (s *saleService) ListSalesByUser(ctx context.Context, userID int64) ([]models.Sale, error) {

	sales, err := s.repo.ListSalesByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch sales").WithError(err)
	}

	return sales, nil
}

func (s *saleService) SalesByProduct(ctx context.Context) ([]models.ProductSales, error) {

	stats, err := s.repo.SalesByProduct(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch sales statistics").WithError(err)
	}

	return stats, nil
}
