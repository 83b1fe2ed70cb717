package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

// CartRepository — локальное durable key-value хранилище снапшотов корзины.
// Get возвращает (nil, nil) при отсутствии снапшота.
type CartRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Set(ctx context.Context, cart *domain.Cart) error
}

// RemoteCartRepository — удалённое хранилище снапшотов по пользователю.
// Семантика replace-on-conflict: последний полный снапшот побеждает.
type RemoteCartRepository interface {
	ReplaceSnapshot(ctx context.Context, userID string, cart *domain.Cart, ts time.Time) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
}
