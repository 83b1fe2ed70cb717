package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

// OrderGateway создаёт заказ во внешнем Storefront API.
type OrderGateway interface {
	CreateOrder(ctx context.Context, req *CreateOrderReq) (*CreateOrderRes, error)
}

// EventProducer публикует события жизненного цикла чекаута.
type EventProducer interface {
	WriteCheckoutEvent(ctx context.Context, req *CheckoutEventReq) error
}

// MutationObserver уведомляется о каждой мутации корзины.
// Реализация не должна блокировать вызывающий поток.
type MutationObserver interface {
	CartChanged(sessionID, userID string, cart *domain.Cart)
}
