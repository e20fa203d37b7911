package api

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"shop-service/internal/entity"
	"shop-service/internal/service"
)

type productService interface {
	ListProducts(ctx context.Context, skip, limit int) ([]*entity.Product, error)
	CreateProduct(ctx context.Context, in entity.ProductCreate) (*entity.Product, error)
	GetProduct(ctx context.Context, id int) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id int, in entity.ProductUpdate) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type ProductHandler struct {
	productService productService
}

// NewProductHandler creates a new instance of ProductHandler
func NewProductHandler(productService productService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetProducts lists products --> GET /products/?skip=&limit=
func (h *ProductHandler) GetProducts(c echo.Context) error {
	skip, limit := pagination(c)
	products, err := h.productService.ListProducts(c.Request().Context(), skip, limit)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, products)
}

// CreateProduct creates a new product --> POST /products/
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	in := entity.ProductCreate{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	createdProduct, err := h.productService.CreateProduct(c.Request().Context(), in)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, createdProduct)
}

// GetProductByID retrieves a product by ID --> GET /products/:id
func (h *ProductHandler) GetProductByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	product, err := h.productService.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "Product not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, product)
}

// UpdateProduct applies a partial update --> PUT /products/:id
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	in := entity.ProductUpdate{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	updatedProduct, err := h.productService.UpdateProduct(c.Request().Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "Product not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, updatedProduct)
}

// DeleteProduct removes a product --> DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	if err := h.productService.DeleteProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "Product not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": "Product deleted successfully"})
}
