package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"shop-service/internal/entity"
)

type OrderStore interface {
	GetOrders(ctx context.Context, skip, limit int) ([]*entity.Order, error)
	GetOrderByID(ctx context.Context, id int) (*entity.Order, error)
	CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
	UpdateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
	DeleteOrder(ctx context.Context, id int) (bool, error)
	CountOrders(ctx context.Context) (int, error)
}

// EventWriter is satisfied by *kafka.Writer.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type OrderService struct {
	repo   OrderStore
	events EventWriter
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(repo OrderStore, events EventWriter) *OrderService {
	return &OrderService{
		repo:   repo,
		events: events,
	}
}

func (s *OrderService) ListOrders(ctx context.Context, skip, limit int) ([]*entity.Order, error) {
	orders, err := s.repo.GetOrders(ctx, skip, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing orders")
		return nil, err
	}

	return orders, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, in entity.OrderCreate) (*entity.Order, error) {
	now := time.Now()
	order := &entity.Order{
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Total:     in.Total,
		Status:    "created",
		CreatedAt: now,
		UpdatedAt: now,
	}

	createdOrder, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return nil, err
	}

	s.publishEvent(ctx, "created", createdOrder)

	return createdOrder, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int) (*entity.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting order by ID %d", id)
		return nil, err
	}

	return order, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, id int, in entity.OrderUpdate) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Apply(order)
	order.UpdatedAt = time.Now()

	updatedOrder, err := s.repo.UpdateOrder(ctx, order)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating order %d", id)
		return nil, err
	}

	return updatedOrder, nil
}

// DeleteOrder removes the order row and publishes a cancellation event so the
// reserved stock can be released.
func (s *OrderService) DeleteOrder(ctx context.Context, id int) error {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting order %d", id)
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	order.Status = "cancelled"
	s.publishEvent(ctx, "cancelled", order)

	return nil
}

func (s *OrderService) CountOrders(ctx context.Context) (int, error) {
	return s.repo.CountOrders(ctx)
}

// publishEvent writes an order event keyed "order.<type>.<id>". Publish
// failures are logged, not surfaced: the write already committed.
func (s *OrderService) publishEvent(ctx context.Context, eventType string, order *entity.Order) {
	payload, err := json.Marshal(order)
	if err != nil {
		logger.Error().Err(err).Msgf("Error marshalling order %d event", order.ID)
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order.%s.%d", eventType, order.ID)),
		Value: payload,
	}
	if err := s.events.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Msgf("Error publishing order.%s event for order %d", eventType, order.ID)
	}
}
