package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
)

// PromoEngine валидирует промокоды по таблице правил.
// Чистая функция от (код, подытог): без скрытого состояния, одинаковые
// входы всегда дают одинаковый результат.
type PromoEngine struct {
	rules []cfg.PromoRule
}

// NewPromoEngine проверяет таблицу правил один раз при сборке.
func NewPromoEngine(promoCfg *cfg.PromoCfg) (*PromoEngine, error) {
	const op = "NewPromoEngine"

	for _, rule := range promoCfg.Rules {
		switch domain.DiscountKind(rule.Kind) {
		case domain.DiscountPercentage, domain.DiscountFixed:
		default:
			return nil, e.Wrap(op, fmt.Errorf("unknown discount kind %q for code %q", rule.Kind, rule.Code))
		}

		if rule.Code == "" || rule.Value <= 0 {
			return nil, e.Wrap(op, fmt.Errorf("invalid rule for code %q", rule.Code))
		}
	}

	return &PromoEngine{rules: promoCfg.Rules}, nil
}

// Validate возвращает неизменяемую скидку либо типизированное отклонение:
// код не найден, подытог ниже минимума, код истёк.
// Сравнение кодов регистронезависимое.
func (p *PromoEngine) Validate(code string, subtotal int64) (*domain.Discount, error) {
	for _, rule := range p.rules {
		if !strings.EqualFold(rule.Code, code) {
			continue
		}

		if rule.ExpiresAt != nil && time.Now().After(*rule.ExpiresAt) {
			return nil, e.ErrPromoExpired
		}

		if subtotal < rule.MinSubtotal {
			return nil, e.ErrPromoSubtotalTooLow
		}

		return domain.NewDiscount(
			strings.ToUpper(rule.Code),
			domain.DiscountKind(rule.Kind),
			rule.Value,
			rule.MinSubtotal,
			rule.ExpiresAt,
		), nil
	}

	return nil, e.ErrPromoNotFound
}
