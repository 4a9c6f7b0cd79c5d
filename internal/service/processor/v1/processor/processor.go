// Package processor implements the purchase transaction engine and the catalog
// listing service.
package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkovalev/go-skinstore/internal/api/rest/client"
	"github.com/dkovalev/go-skinstore/internal/models/modeldto"
	"github.com/dkovalev/go-skinstore/internal/service/cache/v1"
	cacheErrors "github.com/dkovalev/go-skinstore/internal/service/cache/v1/errors"
	serviceErrors "github.com/dkovalev/go-skinstore/internal/service/processor/v1/errors"
	"github.com/dkovalev/go-skinstore/internal/storage/v1"
	storageErrors "github.com/dkovalev/go-skinstore/internal/storage/v1/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	// total attempts for one logical purchase, the first one included
	maxPurchaseAttempts = 3
	itemsCacheKey       = "skinport:items:min-prices"
	statusCompleted     = "completed"
)

type Processor struct {
	storage  storage.Purchaser
	cache    cache.Cache
	fetcher  client.ItemsFetcher
	itemsTTL time.Duration
	log      *zerolog.Logger
}

// InitService initializes the processor service.
func InitService(st storage.Purchaser, ch cache.Cache, fetcher client.ItemsFetcher, itemsTTL time.Duration, log *zerolog.Logger) (*Processor, error) {
	if st == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil storage was passed to service initializer"}
	}
	if ch == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil cache was passed to service initializer"}
	}
	if fetcher == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil items fetcher was passed to service initializer"}
	}
	proc := &Processor{
		storage:  st,
		cache:    ch,
		fetcher:  fetcher,
		itemsTTL: itemsTTL,
		log:      log,
	}
	return proc, nil
}

// Purchase debits the user's balance by the product price and records the sale.
// Concurrency control is optimistic: no locks are held across the reads, and the
// balance write asserts the version observed at read time. A conflicting writer
// invalidates the attempt and the whole protocol restarts from a fresh read, up
// to maxPurchaseAttempts attempts total.
func (proc *Processor) Purchase(ctx context.Context, userID, productID string) (*modeldto.PurchaseReceipt, error) {
	for attempt := 1; attempt <= maxPurchaseAttempts; attempt++ {
		user, err := proc.storage.GetUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		product, err := proc.storage.GetProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		balance, err := decimal.NewFromString(user.Balance)
		if err != nil {
			return nil, &serviceErrors.MoneyDecodingError{Err: err}
		}
		price, err := decimal.NewFromString(product.Price)
		if err != nil {
			return nil, &serviceErrors.MoneyDecodingError{Err: err}
		}
		price = price.Round(2)
		if balance.Cmp(price) < 0 {
			return nil, &serviceErrors.InsufficientFundsError{Balance: balance.StringFixed(2), Price: price.StringFixed(2)}
		}
		newBalance := balance.Sub(price).Round(2)
		err = proc.storage.ExecutePurchase(ctx, userID, productID, price, newBalance, user.Version)
		if err != nil {
			var versionConflictError *storageErrors.VersionConflictError
			if errors.As(err, &versionConflictError) {
				proc.log.Warn().Msg(fmt.Sprintf("purchase attempt %v for user %s lost a version race, retrying", attempt, userID))
				continue
			}
			return nil, err
		}
		receipt := modeldto.PurchaseReceipt{
			UserID:    userID,
			ProductID: productID,
			Price:     price.StringFixed(2),
			Balance:   newBalance.StringFixed(2),
			Status:    statusCompleted,
		}
		return &receipt, nil
	}
	return nil, &serviceErrors.ConcurrentModificationError{Attempts: maxPurchaseAttempts}
}

// ListItems serves the public catalog through a read-through cache. Cache failures
// on either side degrade to an upstream fetch and are never surfaced to the caller.
func (proc *Processor) ListItems(ctx context.Context) ([]modeldto.PublicItem, error) {
	var cached []modeldto.PublicItem
	err := proc.cache.Get(ctx, itemsCacheKey, &cached)
	if err == nil {
		proc.log.Info().Msg("returning cached items")
		return cached, nil
	}
	var notFoundError *cacheErrors.NotFoundError
	if !errors.As(err, &notFoundError) {
		proc.log.Warn().Err(err).Msg("items cache read failed, falling back to upstream")
	}
	upstreamItems, err := proc.fetcher.FetchItems(ctx)
	if err != nil {
		return nil, &serviceErrors.UpstreamUnavailableError{Err: err}
	}
	items := make([]modeldto.PublicItem, 0, len(upstreamItems))
	for _, item := range upstreamItems {
		items = append(items, modeldto.PublicItem{
			Name:           item.MarketHashName,
			Currency:       item.Currency,
			MinPrice:       item.MinPrice,
			MaxPrice:       item.MaxPrice,
			SuggestedPrice: item.SuggestedPrice,
		})
	}
	err = proc.cache.Set(ctx, itemsCacheKey, items, proc.itemsTTL)
	if err != nil {
		proc.log.Warn().Err(err).Msg("items cache write failed")
	}
	return items, nil
}
