// Package modelupstream defines the Skinport items API payload shape.
package modelupstream

type SkinportItem struct {
	MarketHashName string   `json:"market_hash_name"`
	Currency       string   `json:"currency"`
	SuggestedPrice *float64 `json:"suggested_price"`
	MinPrice       *float64 `json:"min_price"`
	MaxPrice       *float64 `json:"max_price"`
	MeanPrice      *float64 `json:"mean_price"`
	MedianPrice    *float64 `json:"median_price"`
	Quantity       int      `json:"quantity"`
	CreatedAt      int64    `json:"created_at"`
	UpdatedAt      int64    `json:"updated_at"`
}
