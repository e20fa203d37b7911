package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-service/internal/entity"
)

type fakeProductStore struct {
	products map[int]*entity.Product
	nextID   int
	getCalls int
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[int]*entity.Product{}, nextID: 1}
}

func (f *fakeProductStore) GetProducts(ctx context.Context, skip, limit int) ([]*entity.Product, error) {
	products := []*entity.Product{}
	for id := 1; id < f.nextID && len(products) < limit; id++ {
		if product, ok := f.products[id]; ok {
			if skip > 0 {
				skip--
				continue
			}
			products = append(products, product)
		}
	}
	return products, nil
}

func (f *fakeProductStore) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	f.getCalls++
	product, ok := f.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *product
	return &copy, nil
}

func (f *fakeProductStore) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	product.ID = f.nextID
	f.nextID++
	stored := *product
	f.products[product.ID] = &stored
	return product, nil
}

func (f *fakeProductStore) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	stored := *product
	f.products[product.ID] = &stored
	return product, nil
}

func (f *fakeProductStore) DeleteProduct(ctx context.Context, id int) (bool, error) {
	if _, ok := f.products[id]; !ok {
		return false, nil
	}
	delete(f.products, id)
	return true, nil
}

func (f *fakeProductStore) CountProducts(ctx context.Context) (int, error) {
	return len(f.products), nil
}

type fakeProductCache struct {
	entries map[int]entity.Product
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{entries: map[int]entity.Product{}}
}

func (f *fakeProductCache) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	product, ok := f.entries[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (f *fakeProductCache) SetProduct(ctx context.Context, product *entity.Product) error {
	f.entries[product.ID] = *product
	return nil
}

func (f *fakeProductCache) DelProduct(ctx context.Context, id int) error {
	delete(f.entries, id)
	return nil
}

func newProductFixture(t *testing.T, svc *ProductService, stock int) *entity.Product {
	t.Helper()
	product, err := svc.CreateProduct(context.Background(), entity.ProductCreate{
		Name:        "widget",
		Description: "a widget",
		Price:       9.99,
		Stock:       stock,
	})
	require.NoError(t, err)
	return product
}

func TestGetProductCacheMiss(t *testing.T) {
	store := newFakeProductStore()
	productCache := newFakeProductCache()
	svc := NewProductService(store, productCache)

	created := newProductFixture(t, svc, 10)
	delete(productCache.entries, created.ID)

	product, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "widget", product.Name)
	assert.Equal(t, 1, store.getCalls)

	// Now cached.
	_, ok := productCache.entries[created.ID]
	assert.True(t, ok)
}

func TestGetProductCacheHit(t *testing.T) {
	store := newFakeProductStore()
	productCache := newFakeProductCache()
	svc := NewProductService(store, productCache)

	created := newProductFixture(t, svc, 10)

	product, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, product.ID)
	assert.Equal(t, 0, store.getCalls)
}

func TestGetProductNotFound(t *testing.T) {
	svc := NewProductService(newFakeProductStore(), newFakeProductCache())

	_, err := svc.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProductRefreshesCache(t *testing.T) {
	store := newFakeProductStore()
	productCache := newFakeProductCache()
	svc := NewProductService(store, productCache)

	created := newProductFixture(t, svc, 10)

	price := 19.99
	updated, err := svc.UpdateProduct(context.Background(), created.ID, entity.ProductUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 19.99, updated.Price)
	assert.Equal(t, "widget", updated.Name)
	assert.Equal(t, 19.99, productCache.entries[created.ID].Price)
}

func TestDeleteProductEvictsCache(t *testing.T) {
	store := newFakeProductStore()
	productCache := newFakeProductCache()
	svc := NewProductService(store, productCache)

	created := newProductFixture(t, svc, 10)

	require.NoError(t, svc.DeleteProduct(context.Background(), created.ID))

	_, ok := productCache.entries[created.ID]
	assert.False(t, ok)

	_, err := svc.GetProduct(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReserveStock(t *testing.T) {
	store := newFakeProductStore()
	svc := NewProductService(store, newFakeProductCache())

	created := newProductFixture(t, svc, 10)

	require.NoError(t, svc.ReserveStock(context.Background(), created.ID, 4))
	assert.Equal(t, 6, store.products[created.ID].Stock)
}

func TestReserveStockInsufficient(t *testing.T) {
	store := newFakeProductStore()
	svc := NewProductService(store, newFakeProductCache())

	created := newProductFixture(t, svc, 3)

	err := svc.ReserveStock(context.Background(), created.ID, 4)
	assert.Error(t, err)
	assert.Equal(t, 3, store.products[created.ID].Stock)
}

func TestReleaseStock(t *testing.T) {
	store := newFakeProductStore()
	svc := NewProductService(store, newFakeProductCache())

	created := newProductFixture(t, svc, 3)

	require.NoError(t, svc.ReleaseStock(context.Background(), created.ID, 4))
	assert.Equal(t, 7, store.products[created.ID].Stock)
}
