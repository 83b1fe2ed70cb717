package domain

import "time"

// DiscountKind определяет способ расчёта скидки.
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "PERCENTAGE" // процент от подытога
	DiscountFixed      DiscountKind = "FIXED"      // фиксированная сумма в минорных единицах
)

// Discount — применённая к корзине скидка.
// Создаётся только успешной валидацией промокода.
type Discount struct {
	Code        string
	Kind        DiscountKind
	Value       int64 // процент для PERCENTAGE, минорные единицы для FIXED
	MinSubtotal int64 // минимальный подытог, при котором код действует
	ExpiresAt   *time.Time
}

func NewDiscount(code string, kind DiscountKind, value int64, minSubtotal int64, expiresAt *time.Time) *Discount {
	return &Discount{
		Code:        code,
		Kind:        kind,
		Value:       value,
		MinSubtotal: minSubtotal,
		ExpiresAt:   expiresAt,
	}
}
