package domain

import "time"

// CheckoutState — состояние машины отправки заказа.
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "IDLE"
	CheckoutSubmitting CheckoutState = "SUBMITTING"
	CheckoutSuccess    CheckoutState = "SUCCESS"
	CheckoutError      CheckoutState = "ERROR"
)

// CheckoutStep — шаг мастера оформления заказа.
type CheckoutStep int

const (
	StepContact CheckoutStep = iota
	StepShipping
	StepPayment
)

func (s CheckoutStep) String() string {
	switch s {
	case StepContact:
		return "contact"
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	default:
		return "unknown"
	}
}

// ContactDetails — контактные данные покупателя.
type ContactDetails struct {
	Name  string
	Email string
	Phone string
}

// ShippingMethod — выбранный способ доставки.
type ShippingMethod struct {
	Code  string
	Label string
}

// Order — созданный во внешней системе заказ с хэндлом для оплаты.
type Order struct {
	ID          string
	AttemptID   string
	SessionID   string
	UserID      string
	RemoteID    string
	CheckoutURL string
	Total       Money
	CreatedAt   time.Time
}
