package modeldto

type (
	NewPurchase struct {
		UserID    string `json:"userId"`
		ProductID string `json:"productId"`
	}
	PurchaseReceipt struct {
		UserID    string `json:"userId"`
		ProductID string `json:"productId"`
		Price     string `json:"price"`
		Balance   string `json:"balance"`
		Status    string `json:"status"`
	}
	PublicItem struct {
		Name           string   `json:"name"`
		Currency       string   `json:"currency"`
		MinPrice       *float64 `json:"minPrice"`
		MaxPrice       *float64 `json:"maxPrice"`
		SuggestedPrice *float64 `json:"suggestedPrice"`
	}
	ResponseError struct {
		Code    string       `json:"code"`
		Message string       `json:"message"`
		Details []FieldError `json:"details,omitempty"`
	}
	FieldError struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	Response struct {
		Success bool           `json:"success"`
		Data    interface{}    `json:"data,omitempty"`
		Error   *ResponseError `json:"error,omitempty"`
	}
)
