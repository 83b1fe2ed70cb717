package converter

import "time"

// RemoteCartItemModel — строка таблицы remote_cart_items.
type RemoteCartItemModel struct {
	UserID    string
	Position  int
	VariantID string
	ProductID string
	Title     string
	Price     int64
	Currency  string
	Quantity  int
	Color     string
	Size      string
	ImageURL  string
}

// OrderModel — строка таблицы checkout_orders.
type OrderModel struct {
	ID          string
	AttemptID   string
	SessionID   string
	UserID      string
	RemoteID    string
	CheckoutURL string
	TotalAmount int64
	Currency    string
	CreatedAt   time.Time
}
