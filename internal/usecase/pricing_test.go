package usecase

import (
	"testing"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

func TestDiscountAmount(t *testing.T) {
	pct := domain.NewDiscount("SAVE20", domain.DiscountPercentage, 20, 0, nil)
	fixed := domain.NewDiscount("FLAT500", domain.DiscountFixed, 50_000, 0, nil)

	tests := []struct {
		name     string
		discount *domain.Discount
		subtotal int64
		want     int64
	}{
		{"nil discount", nil, 100_000, 0},
		{"zero subtotal", pct, 0, 0},
		{"percentage", pct, 300_000, 60_000},
		{"percentage rounds", pct, 333, 67},
		{"fixed", fixed, 300_000, 50_000},
		{"fixed clamped to subtotal", fixed, 30_000, 30_000},
		{"over-100 percent clamped to subtotal",
			domain.NewDiscount("MEGA", domain.DiscountPercentage, 150, 0, nil), 100_000, 100_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := discountAmount(tt.discount, tt.subtotal); got != tt.want {
				t.Errorf("discountAmount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestShippingFee(t *testing.T) {
	pricing := testPricingCfg()

	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{"empty cart ships free", 0, 0},
		{"below threshold", 499_999, 20_000},
		{"at threshold", 500_000, 0},
		{"above threshold", 900_000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shippingFee(tt.subtotal, pricing); got != tt.want {
				t.Errorf("shippingFee(%d) = %d, want %d", tt.subtotal, got, tt.want)
			}
		})
	}
}
