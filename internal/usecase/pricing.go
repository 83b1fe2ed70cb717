package usecase

import (
	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// discountAmount вычисляет сумму скидки для подытога.
// Результат всегда в диапазоне [0, subtotal].
func discountAmount(d *domain.Discount, subtotal int64) int64 {
	if d == nil || subtotal <= 0 {
		return 0
	}

	var amount int64
	switch d.Kind {
	case domain.DiscountPercentage:
		amount = decimal.NewFromInt(subtotal).
			Mul(decimal.NewFromInt(d.Value)).
			Div(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
	case domain.DiscountFixed:
		amount = d.Value
	}

	if amount < 0 {
		return 0
	}
	if amount > subtotal {
		return subtotal
	}
	return amount
}

// shippingFee — чистая функция подытога: бесплатно от порога, иначе фиксированная ставка.
// Пустая корзина доставки не требует.
func shippingFee(subtotal int64, pricing *cfg.PricingCfg) int64 {
	if subtotal <= 0 {
		return 0
	}
	if subtotal >= pricing.FreeShippingThreshold {
		return 0
	}
	return pricing.FlatShippingFee
}
