package api

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"shop-service/internal/entity"
	"shop-service/internal/service"
)

type orderService interface {
	ListOrders(ctx context.Context, skip, limit int) ([]*entity.Order, error)
	CreateOrder(ctx context.Context, in entity.OrderCreate) (*entity.Order, error)
	GetOrder(ctx context.Context, id int) (*entity.Order, error)
	UpdateOrder(ctx context.Context, id int, in entity.OrderUpdate) (*entity.Order, error)
	DeleteOrder(ctx context.Context, id int) error
}

type OrderHandler struct {
	orderService orderService
}

// NewOrderHandler creates a new instance of OrderHandler
func NewOrderHandler(orderService orderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetOrders lists orders --> GET /orders/?skip=&limit=
func (h *OrderHandler) GetOrders(c echo.Context) error {
	skip, limit := pagination(c)
	orders, err := h.orderService.ListOrders(c.Request().Context(), skip, limit)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, orders)
}

// CreateOrder creates a new order --> POST /orders/
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	in := entity.OrderCreate{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	createdOrder, err := h.orderService.CreateOrder(c.Request().Context(), in)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, createdOrder)
}

// GetOrderByID retrieves an order by ID --> GET /orders/:id
func (h *OrderHandler) GetOrderByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "Order not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, order)
}

// UpdateOrder applies a partial update --> PUT /orders/:id
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	in := entity.OrderUpdate{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	updatedOrder, err := h.orderService.UpdateOrder(c.Request().Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "Order not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, updatedOrder)
}

// DeleteOrder cancels and removes an order --> DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	if err := h.orderService.DeleteOrder(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "Order not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": "Order deleted successfully"})
}
