package client

import (
	"context"

	"github.com/dkovalev/go-skinstore/internal/models/modelupstream"
)

// ItemsFetcher defines the upstream catalog contract consumed by the listing service.
type ItemsFetcher interface {
	FetchItems(ctx context.Context) ([]modelupstream.SkinportItem, error)
}
