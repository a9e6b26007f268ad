package mocks

import (
	"context"

	"github.com/joaquinrv/tienda-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type SaleService struct {
	mock.Mock
}

func (m *SaleService) ListSales(ctx context.Context) ([]models.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sale), args.Error(1)
}

func (m *SaleService) GetSaleDetail(ctx context.Context, saleID, requesterID int64, requesterRole string) (*models.SaleDetail, error) {
	args := m.Called(ctx, saleID, requesterID, requesterRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SaleDetail), args.Error(1)
}

func (m *SaleService) ListSalesByUser(ctx context.Context, userID int64) ([]models.Sale, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sale), args.Error(1)
}

func (m *SaleService) SalesByProduct(ctx context.Context) ([]models.ProductSales, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductSales), args.Error(1)
}
