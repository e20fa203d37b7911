package api

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"shop-service/internal/entity"
	"shop-service/internal/service"
)

type userService interface {
	ListUsers(ctx context.Context, skip, limit int) ([]*entity.User, error)
	CreateUser(ctx context.Context, in entity.UserCreate) (*entity.User, error)
	GetUser(ctx context.Context, id int) (*entity.User, error)
	UpdateUser(ctx context.Context, id int, in entity.UserUpdate) (*entity.User, error)
	DeleteUser(ctx context.Context, id int) error
}

type UserHandler struct {
	userService userService
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(userService userService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUsers lists users --> GET /users/?skip=&limit=
func (h *UserHandler) GetUsers(c echo.Context) error {
	skip, limit := pagination(c)
	users, err := h.userService.ListUsers(c.Request().Context(), skip, limit)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, users)
}

// CreateUser creates a new user --> POST /users/
func (h *UserHandler) CreateUser(c echo.Context) error {
	in := entity.UserCreate{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	createdUser, err := h.userService.CreateUser(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.JSON(400, map[string]string{"error": "Email already registered"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, createdUser)
}

// GetUserByID retrieves a user by ID --> GET /users/:id
func (h *UserHandler) GetUserByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	user, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "User not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, user)
}

// UpdateUser applies a partial update --> PUT /users/:id
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	in := entity.UserUpdate{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	updatedUser, err := h.userService.UpdateUser(c.Request().Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "User not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, updatedUser)
}

// DeleteUser removes a user --> DELETE /users/:id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	if err := h.userService.DeleteUser(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "User not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": "User deleted successfully"})
}

// pagination reads skip/limit query params, defaulting to 0/100.
func pagination(c echo.Context) (skip, limit int) {
	skip = 0
	limit = 100
	if v, err := strconv.Atoi(c.QueryParam("skip")); err == nil && v >= 0 {
		skip = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v >= 0 {
		limit = v
	}
	return skip, limit
}
