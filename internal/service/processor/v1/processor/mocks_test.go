package processor

import (
	"context"
	"time"

	"github.com/dkovalev/go-skinstore/internal/models/modelstorage"
	"github.com/dkovalev/go-skinstore/internal/models/modelupstream"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetUser(ctx context.Context, userID string) (*modelstorage.UserStorageEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*modelstorage.UserStorageEntry), args.Error(1)
}

func (m *MockStorage) GetProduct(ctx context.Context, productID string) (*modelstorage.ProductStorageEntry, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*modelstorage.ProductStorageEntry), args.Error(1)
}

func (m *MockStorage) ExecutePurchase(ctx context.Context, userID, productID string, price, newBalance decimal.Decimal, expectedVersion int64) error {
	args := m.Called(ctx, userID, productID, price, newBalance, expectedVersion)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchItems(ctx context.Context) ([]modelupstream.SkinportItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]modelupstream.SkinportItem), args.Error(1)
}
