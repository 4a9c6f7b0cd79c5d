package storage

import (
	"context"

	"github.com/dkovalev/go-skinstore/internal/models/modelstorage"
	"github.com/shopspring/decimal"
)

// Purchaser defines the set of storage operations consumed by the purchase engine.
type Purchaser interface {
	GetUser(ctx context.Context, userID string) (*modelstorage.UserStorageEntry, error)
	GetProduct(ctx context.Context, productID string) (*modelstorage.ProductStorageEntry, error)
	ExecutePurchase(ctx context.Context, userID, productID string, price, newBalance decimal.Decimal, expectedVersion int64) error
}

// Seeder defines the set of storage operations consumed by the seeding utility.
type Seeder interface {
	AddUser(ctx context.Context, userID, email string, balance decimal.Decimal) error
	AddProduct(ctx context.Context, productID, name string, price decimal.Decimal) error
}

type Storage interface {
	Purchaser
	Seeder
}
