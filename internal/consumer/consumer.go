package consumer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"shop-service/internal/entity"
)

// StockAdjuster is the slice of the product service the consumer needs.
type StockAdjuster interface {
	ReserveStock(ctx context.Context, productID, quantity int) error
	ReleaseStock(ctx context.Context, productID, quantity int) error
}

// MessageReader is satisfied by *kafka.Reader.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Consumer applies order lifecycle events to product stock.
type Consumer struct {
	products StockAdjuster
	reader   MessageReader
}

func New(products StockAdjuster, reader MessageReader) *Consumer {
	return &Consumer{products: products, reader: reader}
}

// Run reads order events until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Msgf("Error reading message: %v", err)
			continue
		}

		c.processMessage(ctx, msg)
	}
}

// processMessage handles one order event. The key carries the event type:
// "order.created.<id>" or "order.cancelled.<id>".
func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	var order entity.Order
	if err := json.Unmarshal(msg.Value, &order); err != nil {
		log.Error().Msgf("Error unmarshalling message: %v", err)
		return
	}

	parts := strings.Split(string(msg.Key), ".")
	if len(parts) < 2 {
		log.Error().Msgf("Malformed event key: %s", string(msg.Key))
		return
	}
	eventType := parts[1]

	switch eventType {
	case "created":
		err := c.products.ReserveStock(ctx, order.ProductID, order.Quantity)
		if err != nil {
			log.Error().Msgf("Error reserving stock for product %d: %v", order.ProductID, err)
		}
	case "cancelled":
		err := c.products.ReleaseStock(ctx, order.ProductID, order.Quantity)
		if err != nil {
			log.Error().Msgf("Error releasing stock for product %d: %v", order.ProductID, err)
		}
	default:
		log.Error().Msgf("Unknown order event type: %s", eventType)
	}
}
