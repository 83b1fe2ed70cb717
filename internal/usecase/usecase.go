package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

type CartUC interface {
	Snapshot(ctx context.Context, sessionID string) (*CartSnapshot, error)
	AddItem(ctx context.Context, sessionID, userID string, item domain.CartItem) (*CartSnapshot, error)
	RemoveItem(ctx context.Context, sessionID, userID string, key domain.ItemKey) (*CartSnapshot, error)
	UpdateQuantity(ctx context.Context, sessionID, userID string, key domain.ItemKey, qty int) (*CartSnapshot, error)
	ClearCart(ctx context.Context, sessionID, userID string) (*CartSnapshot, error)
	ApplyPromoCode(ctx context.Context, sessionID, userID, code string) (*CartSnapshot, error)
	RemoveDiscount(ctx context.Context, sessionID, userID string) (*CartSnapshot, error)
}

type CheckoutUC interface {
	Status(sessionID string) *CheckoutStatus
	SetContact(sessionID string, contact domain.ContactDetails) (*CheckoutStatus, error)
	SelectShipping(sessionID string, methodCode string) (*CheckoutStatus, error)
	GoBack(sessionID string, step domain.CheckoutStep) (*CheckoutStatus, error)
	Submit(ctx context.Context, sessionID, userID string) (*CheckoutStatus, error)
}
