package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
)

// maxQuantity ограничивает количество единиц в одной позиции.
const maxQuantity = 1_000_000

// CartUseCase владеет каноническим состоянием корзин.
// Каждая корзина привязана к явному идентификатору сессии; мутации одной
// сессии сериализуются её собственным мьютексом и применяются в порядке вызова.
type CartUseCase struct {
	repo     CartRepository
	promo    *PromoEngine
	pricing  *cfg.PricingCfg
	logger   logger.Logger
	observer MutationObserver

	mu       sync.Mutex
	sessions map[string]*cartSession
}

type cartSession struct {
	mu   sync.Mutex
	cart *domain.Cart
}

func NewCartUC(
	repo CartRepository,
	promo *PromoEngine,
	pricing *cfg.PricingCfg,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		repo:     repo,
		promo:    promo,
		pricing:  pricing,
		logger:   logger,
		sessions: make(map[string]*cartSession),
	}
}

// SetObserver подключает наблюдателя мутаций (адаптер удалённой синхронизации).
// Вызывается один раз при сборке приложения, до обработки запросов.
func (c *CartUseCase) SetObserver(observer MutationObserver) {
	c.observer = observer
}

// Snapshot возвращает неизменяемый снимок корзины с производными суммами.
func (c *CartUseCase) Snapshot(ctx context.Context, sessionID string) (*CartSnapshot, error) {
	s, err := c.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return c.buildSnapshot(s.cart), nil
}

// AddItem сливает позицию с существующей по ключу идентичности
// (количество накапливается) или добавляет её в конец.
func (c *CartUseCase) AddItem(ctx context.Context, sessionID, userID string, item domain.CartItem) (*CartSnapshot, error) {
	const op = "CartUseCase.AddItem"

	if err := c.validateItem(&item); err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.mutate(ctx, sessionID, userID, func(cart *domain.Cart) error {
		if cur := cart.Currency(); cur != "" && cur != item.UnitPrice.Currency {
			return e.ErrCurrencyMismatch
		}

		if i := cart.FindItem(item.Key()); i >= 0 {
			if cart.Items[i].Quantity > maxQuantity-item.Quantity {
				return e.ErrInvalidQuantity
			}
			cart.Items[i].Quantity += item.Quantity
			return nil
		}

		cart.Items = append(cart.Items, item)
		return nil
	})
}

// RemoveItem удаляет позицию по ключу; отсутствие позиции — не ошибка.
func (c *CartUseCase) RemoveItem(ctx context.Context, sessionID, userID string, key domain.ItemKey) (*CartSnapshot, error) {
	return c.mutate(ctx, sessionID, userID, func(cart *domain.Cart) error {
		if i := cart.FindItem(key); i >= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		}
		return nil
	})
}

// UpdateQuantity выставляет количество позиции; qty <= 0 эквивалентно удалению.
func (c *CartUseCase) UpdateQuantity(ctx context.Context, sessionID, userID string, key domain.ItemKey, qty int) (*CartSnapshot, error) {
	if qty <= 0 {
		return c.RemoveItem(ctx, sessionID, userID, key)
	}

	if qty > maxQuantity {
		return nil, e.ErrInvalidQuantity
	}

	return c.mutate(ctx, sessionID, userID, func(cart *domain.Cart) error {
		if i := cart.FindItem(key); i >= 0 {
			cart.Items[i].Quantity = qty
		}
		return nil
	})
}

// ClearCart опустошает корзину и снимает активную скидку.
func (c *CartUseCase) ClearCart(ctx context.Context, sessionID, userID string) (*CartSnapshot, error) {
	return c.mutate(ctx, sessionID, userID, func(cart *domain.Cart) error {
		cart.Items = nil
		cart.Discount = nil
		return nil
	})
}

// ApplyPromoCode валидирует код через PromoEngine и прикрепляет скидку.
// При отклонении ранее активная скидка остаётся нетронутой.
func (c *CartUseCase) ApplyPromoCode(ctx context.Context, sessionID, userID, code string) (*CartSnapshot, error) {
	const op = "CartUseCase.ApplyPromoCode"

	snap, err := c.mutate(ctx, sessionID, userID, func(cart *domain.Cart) error {
		discount, err := c.promo.Validate(code, cart.Subtotal())
		if err != nil {
			return err
		}

		cart.Discount = discount
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return snap, nil
}

// RemoveDiscount снимает активную скидку; отсутствие скидки — не ошибка.
func (c *CartUseCase) RemoveDiscount(ctx context.Context, sessionID, userID string) (*CartSnapshot, error) {
	return c.mutate(ctx, sessionID, userID, func(cart *domain.Cart) error {
		cart.Discount = nil
		return nil
	})
}

// mutate применяет мутацию к копии корзины под мьютексом сессии,
// перепроверяет право скидки, асинхронно сохраняет полный снапшот и
// уведомляет наблюдателя. Копия фиксируется только после всех проверок:
// любая ошибка оставляет корзину в прежнем состоянии и ничего не сохраняет.
func (c *CartUseCase) mutate(ctx context.Context, sessionID, userID string, fn func(cart *domain.Cart) error) (*CartSnapshot, error) {
	s, err := c.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.cart.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}

	if _, ok := work.SubtotalChecked(); !ok {
		return nil, e.ErrCartTooLarge
	}

	c.revalidateDiscount(work)
	work.UpdatedAt = time.Now().UTC()
	s.cart = work

	clone := work.Clone()
	c.persistAsync(clone)
	if c.observer != nil {
		c.observer.CartChanged(sessionID, userID, clone)
	}

	return c.buildSnapshot(work), nil
}

// revalidateDiscount снимает скидку, если подытог опустился ниже её минимума.
func (c *CartUseCase) revalidateDiscount(cart *domain.Cart) {
	if cart.Discount == nil {
		return
	}

	if cart.Subtotal() < cart.Discount.MinSubtotal {
		cart.Discount = nil
	}
}

// persistAsync записывает полный снапшот в фоне, не блокируя мутацию.
// Каждая запись несёт полное состояние, поэтому поздняя запись просто
// замещает раннюю.
func (c *CartUseCase) persistAsync(cart *domain.Cart) {
	const op = "CartUseCase.persistAsync"

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.repo.Set(bgCtx, cart); err != nil {
			c.logger.Warnf("Failed to persist cart snapshot: %v", e.Wrap(op, err))
		}
	}()
}

// session возвращает сессию корзины, при первом обращении восстанавливая её
// из локального хранилища. Отсутствующий или повреждённый снапшот даёт
// пустую корзину, а не ошибку.
func (c *CartUseCase) session(ctx context.Context, sessionID string) (*cartSession, error) {
	const op = "CartUseCase.session"

	if sessionID == "" {
		return nil, e.ErrSessionRequired
	}

	c.mu.Lock()
	s, ok := c.sessions[sessionID]
	if !ok {
		s = &cartSession{}
		c.sessions[sessionID] = s
	}
	c.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart == nil {
		cart, err := c.repo.Get(ctx, sessionID)
		if err != nil {
			c.logger.Warnf("Failed to restore cart, starting empty: %v", e.Wrap(op, err))
			cart = nil
		}
		if cart == nil {
			cart = domain.NewCart(sessionID)
		}
		s.cart = cart
	}

	return s, nil
}

// validateItem проверяет корректность добавляемой позиции.
func (c *CartUseCase) validateItem(item *domain.CartItem) error {
	if item.VariantID == "" {
		return e.ErrVariantRequired
	}

	if item.Quantity <= 0 || item.Quantity > maxQuantity {
		return e.ErrInvalidQuantity
	}

	if item.UnitPrice.Amount < 0 {
		return e.ErrInvalidPrice
	}

	if item.UnitPrice.Currency == "" {
		item.UnitPrice.Currency = c.pricing.Currency
	}

	return nil
}

// buildSnapshot собирает снимок с производными суммами.
// Производные значения всегда вычисляются заново из текущего состояния.
func (c *CartUseCase) buildSnapshot(cart *domain.Cart) *CartSnapshot {
	clone := cart.Clone()
	subtotal := clone.Subtotal()
	discount := discountAmount(clone.Discount, subtotal)
	shipping := shippingFee(subtotal, c.pricing)

	currency := clone.Currency()
	if currency == "" {
		currency = c.pricing.Currency
	}

	return &CartSnapshot{
		SessionID:      clone.SessionID,
		Items:          clone.Items,
		Discount:       clone.Discount,
		ItemCount:      clone.ItemCount(),
		Subtotal:       subtotal,
		DiscountAmount: discount,
		ShippingFee:    shipping,
		FinalTotal:     subtotal - discount + shipping,
		Currency:       currency,
	}
}
