package converter

import "time"

// CartRedisModel — сериализуемый снапшот корзины для локального хранилища.
type CartRedisModel struct {
	SessionID string              `json:"session_id"`
	Items     []CartItemModel     `json:"items"`
	Discount  *DiscountRedisModel `json:"discount,omitempty"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type CartItemModel struct {
	VariantID string `json:"variant_id"`
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Currency  string `json:"currency"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

type DiscountRedisModel struct {
	Code        string     `json:"code"`
	Kind        string     `json:"kind"`
	Value       int64      `json:"value"`
	MinSubtotal int64      `json:"min_subtotal"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
