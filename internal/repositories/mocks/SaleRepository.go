package mocks

import (
	"context"

	"github.com/joaquinrv/tienda-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type SaleRepository struct {
	mock.Mock
}

func (m *SaleRepository) Checkout(ctx context.Context, sessionID string, userID int64, removeSoldOut bool) (int64, error) {
	args := m.Called(ctx, sessionID, userID, removeSoldOut)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SaleRepository) GetSale(ctx context.Context, saleID int64) (*models.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *SaleRepository) GetSaleLines(ctx context.Context, saleID int64) ([]models.SaleLine, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SaleLine), args.Error(1)
}

func (m *SaleRepository) ListSales(ctx context.Context) ([]models.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sale), args.Error(1)
}

func (m *SaleRepository) ListSalesByUser(ctx context.Context, userID int64) ([]models.Sale, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sale), args.Error(1)
}

func (m *SaleRepository) SalesByProduct(ctx context.Context) ([]models.ProductSales, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductSales), args.Error(1)
}
