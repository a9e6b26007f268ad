package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/joaquinrv/tienda-platform/internal/cache"
	appErrors "github.com/joaquinrv/tienda-platform/internal/errors"
	"github.com/joaquinrv/tienda-platform/internal/models"
	repository "github.com/joaquinrv/tienda-platform/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type productService struct {
	repo       repository.ProductRepository
	cache      cache.Cache
	catalogTTL time.Duration
	sanitizer  *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache, catalogTTL time.Duration) ProductService {
	return &productService{
		repo:       repo,
		cache:      cache,
		catalogTTL: catalogTTL,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		Name:     s.sanitizer.Sanitize(req.Name),
		ImageURL: req.ImageURL,
		Price:    req.Price,
		Quantity: *req.Quantity,
		Season:   req.Season,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	s.invalidateCatalog(ctx)

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NotFoundError("Product not found")
	}
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {

	product := &models.Product{
		ID:       id,
		Name:     s.sanitizer.Sanitize(req.Name),
		ImageURL: req.ImageURL,
		Price:    req.Price,
		Quantity: *req.Quantity,
		Season:   req.Season,
	}

	err := s.repo.UpdateProduct(ctx, product)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NotFoundError("Product not found")
	}
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidateCatalog(ctx)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {

	err := s.repo.DeleteProduct(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NotFoundError("Product not found")
	}
	if err != nil {
		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.invalidateCatalog(ctx)

	return nil
}

func (s *productService) ListProducts(ctx context.Context) ([]models.Product, error) {

	var products []models.Product

	if s.cache != nil {
		hit, err := s.cache.Get(ctx, cache.CatalogKey, &products)
		if err != nil {
			slog.WarnContext(ctx, "catalog cache read failed", slog.String("error", err.Error()))
		}
		if hit {
			return products, nil
		}
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.CatalogKey, products, s.catalogTTL); err != nil {
			slog.WarnContext(ctx, "catalog cache write failed", slog.String("error", err.Error()))
		}
	}

	return products, nil
}

// invalidateCatalog is best effort; a stale catalog expires on its own TTL.
func (s *productService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.CatalogKey); err != nil {
		slog.WarnContext(ctx, "catalog cache invalidation failed", slog.String("error", err.Error()))
	}
}
