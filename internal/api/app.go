package api

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/labstack/echo/v4"
)

const version = "1.0.0"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type counter func(ctx context.Context) (int, error)

// AppHandler serves the root, health and stats endpoints.
type AppHandler struct {
	db            Pinger
	countUsers    counter
	countProducts counter
	countOrders   counter
}

func NewAppHandler(db Pinger, countUsers, countProducts, countOrders counter) *AppHandler {
	return &AppHandler{
		db:            db,
		countUsers:    countUsers,
		countProducts: countProducts,
		countOrders:   countOrders,
	}
}

// Root returns static service metadata --> GET /
func (h *AppHandler) Root(c echo.Context) error {
	return c.JSON(200, map[string]interface{}{
		"message":   "Hello from shop-service!",
		"timestamp": time.Now().Format(time.RFC3339),
		"hostname":  hostname(),
		"version":   version,
		"status":    "running",
	})
}

// Health reports database connectivity --> GET /health
// It always answers 200: a persistence failure goes into the payload, not the
// status code.
func (h *AppHandler) Health(c echo.Context) error {
	dbStatus := "connected"
	if err := h.db.PingContext(c.Request().Context()); err != nil {
		dbStatus = fmt.Sprintf("error: %v", err)
	}

	return c.JSON(200, map[string]interface{}{
		"status":    "healthy",
		"service":   "shop-service",
		"hostname":  hostname(),
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Stats returns row counts for the three entity tables --> GET /stats
func (h *AppHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	totalUsers, err := h.countUsers(ctx)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	totalProducts, err := h.countProducts(ctx)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	totalOrders, err := h.countOrders(ctx)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]interface{}{
		"total_users":     totalUsers,
		"total_products":  totalProducts,
		"total_orders":    totalOrders,
		"server_hostname": hostname(),
		"timestamp":       time.Now().Format(time.RFC3339),
	})
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
