package processor

import (
	"context"

	"github.com/dkovalev/go-skinstore/internal/models/modeldto"
)

// Processor defines the operations exposed to the routing layer.
type Processor interface {
	Purchase(ctx context.Context, userID, productID string) (*modeldto.PurchaseReceipt, error)
	ListItems(ctx context.Context) ([]modeldto.PublicItem, error)
}
