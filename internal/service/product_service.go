package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shop-service/internal/entity"
)

type ProductStore interface {
	GetProducts(ctx context.Context, skip, limit int) ([]*entity.Product, error)
	GetProductByID(ctx context.Context, id int) (*entity.Product, error)
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int) (bool, error)
	CountProducts(ctx context.Context) (int, error)
}

// ProductCache is a lookaside cache keyed by product id. A miss is reported
// as (nil, nil); cache errors are logged by the caller and never fail the
// request.
type ProductCache interface {
	GetProduct(ctx context.Context, id int) (*entity.Product, error)
	SetProduct(ctx context.Context, product *entity.Product) error
	DelProduct(ctx context.Context, id int) error
}

type ProductService struct {
	repo  ProductStore
	cache ProductCache
}

// NewProductService creates a new instance of ProductService.
func NewProductService(repo ProductStore, cache ProductCache) *ProductService {
	return &ProductService{
		repo:  repo,
		cache: cache,
	}
}

func (s *ProductService) ListProducts(ctx context.Context, skip, limit int) ([]*entity.Product, error) {
	products, err := s.repo.GetProducts(ctx, skip, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing products")
		return nil, err
	}

	return products, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, in entity.ProductCreate) (*entity.Product, error) {
	now := time.Now()
	product := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	createdProduct, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}

	if err := s.cache.SetProduct(ctx, createdProduct); err != nil {
		logger.Error().Err(err).Msgf("Error setting product %d in cache", createdProduct.ID)
	}

	return createdProduct, nil
}

// GetProduct reads through the cache: cache first, repository on a miss.
func (s *ProductService) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	cached, err := s.cache.GetProduct(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting product %d from cache", id)
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting product by ID %d", id)
		return nil, err
	}

	if err := s.cache.SetProduct(ctx, product); err != nil {
		logger.Error().Err(err).Msgf("Error setting product %d in cache", id)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int, in entity.ProductUpdate) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Apply(product)
	product.UpdatedAt = time.Now()

	updatedProduct, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating product %d", id)
		return nil, err
	}

	if err := s.cache.SetProduct(ctx, updatedProduct); err != nil {
		logger.Error().Err(err).Msgf("Error setting product %d in cache", id)
	}

	return updatedProduct, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	deleted, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d", id)
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	if err := s.cache.DelProduct(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d from cache", id)
	}

	return nil
}

// ReserveStock subtracts quantity from a product's stock. Used by the order
// event consumer.
func (s *ProductService) ReserveStock(ctx context.Context, productID, quantity int) error {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	if product.Stock < quantity {
		logger.Warn().Msgf("Product %d out of stock", productID)
		return fmt.Errorf("product out of stock")
	}

	stock := product.Stock - quantity
	_, err = s.UpdateProduct(ctx, productID, entity.ProductUpdate{Stock: &stock})
	return err
}

// ReleaseStock returns quantity to a product's stock when an order is cancelled.
func (s *ProductService) ReleaseStock(ctx context.Context, productID, quantity int) error {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	stock := product.Stock + quantity
	_, err = s.UpdateProduct(ctx, productID, entity.ProductUpdate{Stock: &stock})
	return err
}

func (s *ProductService) CountProducts(ctx context.Context) (int, error) {
	return s.repo.CountProducts(ctx)
}
