package handlers

import (
	"context"

	"github.com/dkovalev/go-skinstore/internal/models/modeldto"
	"github.com/stretchr/testify/mock"
)

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) Purchase(ctx context.Context, userID, productID string) (*modeldto.PurchaseReceipt, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*modeldto.PurchaseReceipt), args.Error(1)
}

func (m *MockProcessor) ListItems(ctx context.Context) ([]modeldto.PublicItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]modeldto.PublicItem), args.Error(1)
}
