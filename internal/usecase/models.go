package usecase

import "github.com/DRSN-tech/storefront-backend/internal/domain"

// CART USECASE

// CartSnapshot — неизменяемый снимок корзины со всеми производными суммами.
// Все суммы в минорных единицах валюты.
type CartSnapshot struct {
	SessionID      string
	Items          []domain.CartItem
	Discount       *domain.Discount
	ItemCount      int
	Subtotal       int64
	DiscountAmount int64
	ShippingFee    int64
	FinalTotal     int64
	Currency       string
}

// CHECKOUT USECASE

// CheckoutStatus — текущее состояние машины отправки и шаг мастера.
type CheckoutStatus struct {
	State       domain.CheckoutState
	Step        domain.CheckoutStep
	Message     string
	CheckoutURL string
}

// INFRASTRUCTURE

// OrderLine — одна строка запроса на создание заказа.
type OrderLine struct {
	MerchandiseID string
	Quantity      int
	Attributes    map[string]string
}

// CreateOrderReq — запрос к внешнему эндпоинту создания заказа.
type CreateOrderReq struct {
	Lines []OrderLine
}

// CreateOrderRes — результат создания заказа: непрозрачный URL оплаты.
type CreateOrderRes struct {
	RemoteID    string
	CheckoutURL string
	Total       domain.Money
}

// Имена событий чекаута.
const (
	EventCheckoutSubmitted = "checkout.submitted"
	EventCheckoutSucceeded = "checkout.succeeded"
	EventCheckoutFailed    = "checkout.failed"
)

// CheckoutEventReq — событие жизненного цикла чекаута.
type CheckoutEventReq struct {
	Name      string
	SessionID string
	UserID    string
	AttemptID string
	Total     int64
	Currency  string
	Message   string
}

// MAPPERS

func NewCreateOrderReq(lines []OrderLine) *CreateOrderReq {
	return &CreateOrderReq{Lines: lines}
}

func NewCreateOrderRes(remoteID, checkoutURL string, total domain.Money) *CreateOrderRes {
	return &CreateOrderRes{
		RemoteID:    remoteID,
		CheckoutURL: checkoutURL,
		Total:       total,
	}
}

func NewCheckoutEventReq(name, sessionID, userID, attemptID string, total int64, currency, message string) *CheckoutEventReq {
	return &CheckoutEventReq{
		Name:      name,
		SessionID: sessionID,
		UserID:    userID,
		AttemptID: attemptID,
		Total:     total,
		Currency:  currency,
		Message:   message,
	}
}
