// Package client implements a client for querying data from the Skinport items API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	clientErrors "github.com/dkovalev/go-skinstore/internal/api/rest/client/errors"
	"github.com/dkovalev/go-skinstore/internal/config"
	"github.com/dkovalev/go-skinstore/internal/models/modelupstream"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	fetchTimeout = 10 * time.Second
	// maximum number of retries after a resolvable 429 response
	maxFetchRetries = 3
	// rate-limit waits longer than this are reported as unresolvable
	maxRetryAfterSeconds = 10
	defaultRetryAfter    = 60
)

// Client defines attributes of a struct available to its methods.
type Client struct {
	client         *resty.Client
	upstreamConfig *config.UpstreamConfig
	log            *zerolog.Logger
}

// InitClient initializes a resty client for the Skinport items API.
func InitClient(upstreamConfig *config.UpstreamConfig, log *zerolog.Logger) *Client {
	skinportClient := resty.New().SetTimeout(fetchTimeout)
	log.Info().Msg("skinport client initialized")
	return &Client{client: skinportClient, upstreamConfig: upstreamConfig, log: log}
}

// FetchItems executes an items retrieval query, retrying short rate-limit waits and
// failing fast on unresolvable ones. Entries without a market hash name or currency
// are discarded.
func (c *Client) FetchItems(ctx context.Context) ([]modelupstream.SkinportItem, error) {
	for attempt := 0; attempt <= maxFetchRetries; attempt++ {
		response, err := c.client.R().
			SetContext(ctx).
			SetHeader("Accept", "application/json").
			SetQueryParams(map[string]string{
				"app_id":   "730",
				"currency": "USD",
				"tradable": "0",
			}).
			Get(c.upstreamConfig.SkinportAddress + "/v1/items")
		if err != nil {
			c.log.Error().Err(err).Msg("items retrieval from skinport failed")
			return nil, &clientErrors.FetchError{Err: err}
		}
		if response.StatusCode() == http.StatusTooManyRequests {
			waitSeconds := defaultRetryAfter
			if retryAfter := response.Header().Get("Retry-After"); retryAfter != "" {
				parsed, err := strconv.Atoi(retryAfter)
				if err == nil {
					waitSeconds = parsed
				}
			}
			c.log.Warn().Msg(fmt.Sprintf("skinport rate limited, retry-after %v seconds, attempt %v", waitSeconds, attempt))
			if waitSeconds > maxRetryAfterSeconds || attempt == maxFetchRetries {
				return nil, &clientErrors.RateLimitError{WaitSeconds: waitSeconds}
			}
			select {
			case <-ctx.Done():
				return nil, &clientErrors.FetchError{Err: ctx.Err()}
			case <-time.After(time.Duration(waitSeconds) * time.Second):
			}
			continue
		}
		if response.StatusCode() != http.StatusOK {
			c.log.Error().Msg(fmt.Sprintf("skinport responded with status %v", response.StatusCode()))
			return nil, &clientErrors.FetchError{Err: fmt.Errorf("unexpected status %v", response.StatusCode())}
		}
		var payload []modelupstream.SkinportItem
		err = json.Unmarshal(response.Body(), &payload)
		if err != nil {
			c.log.Error().Err(err).Msg("skinport payload could not be decoded")
			return nil, &clientErrors.FetchError{Err: err}
		}
		items := make([]modelupstream.SkinportItem, 0, len(payload))
		for _, item := range payload {
			if item.MarketHashName == "" || item.Currency == "" {
				continue
			}
			items = append(items, item)
		}
		c.log.Info().Msg(fmt.Sprintf("items retrieval from skinport done, %v items", len(items)))
		return items, nil
	}
	return nil, &clientErrors.RateLimitError{WaitSeconds: defaultRetryAfter}
}
