package mocks

import (
	"context"

	"github.com/joaquinrv/tienda-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) AddItem(ctx context.Context, sessionID string, req *models.AddCartItemRequest) error {
	args := m.Called(ctx, sessionID, req)
	return args.Error(0)
}

func (m *CartService) GetCart(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, sessionID string, productID int64) error {
	args := m.Called(ctx, sessionID, productID)
	return args.Error(0)
}
