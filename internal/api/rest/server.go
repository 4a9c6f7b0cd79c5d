// Package rest provides functionality for initializing a server.
package rest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/dkovalev/go-skinstore/internal/api/rest/client"
	"github.com/dkovalev/go-skinstore/internal/api/rest/middleware"
	"github.com/dkovalev/go-skinstore/internal/api/rest/v1/handlers"
	"github.com/dkovalev/go-skinstore/internal/config"
	"github.com/dkovalev/go-skinstore/internal/service/cache/v1/rediscache"
	"github.com/dkovalev/go-skinstore/internal/service/processor/v1/processor"
	"github.com/dkovalev/go-skinstore/internal/storage/v1/inpsql"
	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
)

// InitServer returns a http.Server object ready to be listening and serving.
func InitServer(ctx context.Context, cfg *config.Config, log *zerolog.Logger, wg *sync.WaitGroup) (server *http.Server, err error) {
	// initialize storage
	storage, err := inpsql.InitStorage(ctx, cfg.StorageConfig, log, wg)
	if err != nil {
		return nil, err
	}

	// initialize catalog cache
	itemsCache, err := rediscache.InitCache(ctx, cfg.CacheConfig, log)
	if err != nil {
		return nil, err
	}

	// initialize skinport client
	skinportClient := client.InitClient(cfg.UpstreamConfig, log)

	// initialize main service
	mainService, err := processor.InitService(storage, itemsCache, skinportClient, time.Duration(cfg.CacheConfig.ItemsTTLSecs)*time.Second, log)
	if err != nil {
		return nil, err
	}

	// initialize handlers
	apiHandler, err := handlers.InitHandlers(mainService, log)
	if err != nil {
		return nil, err
	}

	// initialize server and set routing
	r := chi.NewRouter()
	r.Use(middleware.CompressHandle)
	r.Use(middleware.DecompressHandle)
	r.Get("/api/items", apiHandler.HandleGetItems())
	r.Post("/api/purchase", apiHandler.HandlePurchase())
	r.Get("/health", apiHandler.HandleHealth())

	srv := &http.Server{
		Addr:         cfg.ServerConfig.ServerAddress,
		Handler:      r,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv, nil
}
