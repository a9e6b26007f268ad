package service

import (
	"context"
	"database/sql"
	"errors"

	appErrors "github.com/joaquinrv/tienda-platform/internal/errors"
	"github.com/joaquinrv/tienda-platform/internal/models"
	repository "github.com/joaquinrv/tienda-platform/internal/repositories"
)

type CartService interface {
	AddItem(ctx context.Context, sessionID string, req *models.AddCartItemRequest) error
	GetCart(ctx context.Context, sessionID string) ([]models.CartItem, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) error
}

type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartService{carts: carts, products: products}
}

// AddItem checks stock before writing, but the check is advisory: stock is
// only reserved at checkout, inside its transaction.
func (s *cartService) AddItem(ctx context.Context, sessionID string, req *models.AddCartItemRequest) error {

	product, err := s.products.GetProductByID(ctx, req.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NotFoundError("Product not found")
	}
	if err != nil {
		return appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if product.Quantity <= 0 {
		return appErrors.InsufficientStockError(product.Name)
	}

	line, err := s.carts.GetLine(ctx, sessionID, req.ProductID)
	if err != nil && !errors.Is(err, repository.ErrCartLineNotFound) {
		return appErrors.DatabaseError("Failed to read cart").WithError(err)
	}

	requested := req.Quantity
	if line != nil {
		requested += line.Quantity
	}

	if requested > product.Quantity {
		return appErrors.InsufficientStockError(product.Name)
	}

	if line != nil {
		if err := s.carts.UpdateLineQuantity(ctx, line.ID, requested); err != nil {
			return appErrors.DatabaseError("Failed to update cart").WithError(err)
		}
		return nil
	}

	newLine := &models.CartLine{
		SessionID: sessionID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}

	if err := s.carts.InsertLine(ctx, newLine); err != nil {
		return appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return nil
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) ([]models.CartItem, error) {

	items, err := s.carts.ListItems(ctx, sessionID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return items, nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, productID int64) error {

	err := s.carts.RemoveLineRestock(ctx, sessionID, productID)
	if errors.Is(err, repository.ErrCartLineNotFound) {
		return appErrors.NotFoundError("Item not in cart")
	}
	if err != nil {
		return appErrors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return nil
}
