package mocks

import (
	"context"

	"github.com/joaquinrv/tienda-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) GetLine(ctx context.Context, sessionID string, productID int64) (*models.CartLine, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartLine), args.Error(1)
}

func (m *CartRepository) InsertLine(ctx context.Context, line *models.CartLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *CartRepository) UpdateLineQuantity(ctx context.Context, lineID, quantity int64) error {
	args := m.Called(ctx, lineID, quantity)
	return args.Error(0)
}

func (m *CartRepository) ListItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *CartRepository) RemoveLineRestock(ctx context.Context, sessionID string, productID int64) error {
	args := m.Called(ctx, sessionID, productID)
	return args.Error(0)
}
