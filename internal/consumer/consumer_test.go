package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-service/internal/entity"
)

type stockCall struct {
	op        string
	productID int
	quantity  int
}

type fakeStockAdjuster struct {
	calls []stockCall
}

func (f *fakeStockAdjuster) ReserveStock(ctx context.Context, productID, quantity int) error {
	f.calls = append(f.calls, stockCall{"reserve", productID, quantity})
	return nil
}

func (f *fakeStockAdjuster) ReleaseStock(ctx context.Context, productID, quantity int) error {
	f.calls = append(f.calls, stockCall{"release", productID, quantity})
	return nil
}

func orderMessage(t *testing.T, key string, order entity.Order) kafka.Message {
	t.Helper()
	payload, err := json.Marshal(order)
	require.NoError(t, err)
	return kafka.Message{Key: []byte(key), Value: payload}
}

func TestProcessMessageCreated(t *testing.T) {
	products := &fakeStockAdjuster{}
	c := New(products, nil)

	msg := orderMessage(t, "order.created.7", entity.Order{ID: 7, ProductID: 2, Quantity: 3})
	c.processMessage(context.Background(), msg)

	require.Len(t, products.calls, 1)
	assert.Equal(t, stockCall{"reserve", 2, 3}, products.calls[0])
}

func TestProcessMessageCancelled(t *testing.T) {
	products := &fakeStockAdjuster{}
	c := New(products, nil)

	msg := orderMessage(t, "order.cancelled.7", entity.Order{ID: 7, ProductID: 2, Quantity: 3})
	c.processMessage(context.Background(), msg)

	require.Len(t, products.calls, 1)
	assert.Equal(t, stockCall{"release", 2, 3}, products.calls[0])
}

func TestProcessMessageUnknownEvent(t *testing.T) {
	products := &fakeStockAdjuster{}
	c := New(products, nil)

	msg := orderMessage(t, "order.paid.7", entity.Order{ID: 7, ProductID: 2, Quantity: 3})
	c.processMessage(context.Background(), msg)

	assert.Empty(t, products.calls)
}

func TestProcessMessageMalformed(t *testing.T) {
	products := &fakeStockAdjuster{}
	c := New(products, nil)

	c.processMessage(context.Background(), kafka.Message{Key: []byte("nodots"), Value: []byte(`{}`)})
	c.processMessage(context.Background(), kafka.Message{Key: []byte("order.created.1"), Value: []byte(`not json`)})

	assert.Empty(t, products.calls)
}
