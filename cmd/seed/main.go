// Command seed populates the database with one test user and the demo catalog.
package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dkovalev/go-skinstore/internal/config"
	"github.com/dkovalev/go-skinstore/internal/logger"
	storageErrors "github.com/dkovalev/go-skinstore/internal/storage/v1/errors"
	"github.com/dkovalev/go-skinstore/internal/storage/v1/inpsql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var seedProducts = []struct {
	name  string
	price string
}{
	{"Basic Skin", "9.99"},
	{"Premium Skin", "15.49"},
	{"Rare Knife", "49.95"},
	{"Legendary Gloves", "124.50"},
	{"Collector Edition", "299.99"},
}

func main() {
	wg := &sync.WaitGroup{}

	log := logger.InitLog()
	ctx, cancel := context.WithCancel(context.Background())

	cfg, err := config.NewConfiguration()
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
	cfg.ParseFlags()

	storage, err := inpsql.InitStorage(ctx, cfg.StorageConfig, log, wg)
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	var alreadyExistsError *storageErrors.AlreadyExistsError

	userID := uuid.NewString()
	err = storage.AddUser(ctx, userID, "test@example.com", decimal.RequireFromString("100.00"))
	if err != nil && !errors.As(err, &alreadyExistsError) {
		log.Fatal().Err(err).Msg("seeding user failed")
	}
	log.Info().Msg(fmt.Sprintf("seeded user %s with balance 100.00", userID))

	for _, product := range seedProducts {
		productID := uuid.NewString()
		err = storage.AddProduct(ctx, productID, product.name, decimal.RequireFromString(product.price))
		if err != nil {
			if errors.As(err, &alreadyExistsError) {
				log.Info().Msg(fmt.Sprintf("product %s already seeded", product.name))
				continue
			}
			log.Fatal().Err(err).Msg("seeding products failed")
		}
		log.Info().Msg(fmt.Sprintf("seeded product %s (%s) priced %s", product.name, productID, product.price))
	}

	cancel()
	wg.Wait()
	log.Info().Msg("seeding completed")
}
