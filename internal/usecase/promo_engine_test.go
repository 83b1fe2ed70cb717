package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
)

func TestNewPromoEngine(t *testing.T) {
	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewPromoEngine(&cfg.PromoCfg{Rules: []cfg.PromoRule{
			{Code: "BAD", Kind: "BOGO", Value: 1},
		}})
		if err == nil {
			t.Fatal("expected error for unknown discount kind")
		}
	})

	t.Run("rejects non-positive value", func(t *testing.T) {
		_, err := NewPromoEngine(&cfg.PromoCfg{Rules: []cfg.PromoRule{
			{Code: "ZERO", Kind: "FIXED", Value: 0},
		}})
		if err == nil {
			t.Fatal("expected error for zero value")
		}
	})
}

func TestPromoEngine_Validate(t *testing.T) {
	engine := testPromoEngine(t)

	t.Run("unknown code", func(t *testing.T) {
		_, err := engine.Validate("NOPE", 100_000)
		if !errors.Is(err, e.ErrPromoNotFound) {
			t.Fatalf("got %v, want ErrPromoNotFound", err)
		}
	})

	t.Run("case insensitive match", func(t *testing.T) {
		d, err := engine.Validate("save20", 100_000)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if d.Code != "SAVE20" {
			t.Errorf("code = %q, want SAVE20", d.Code)
		}
		if d.Kind != domain.DiscountPercentage || d.Value != 20 {
			t.Errorf("got %s/%d, want PERCENTAGE/20", d.Kind, d.Value)
		}
	})

	t.Run("subtotal below minimum", func(t *testing.T) {
		_, err := engine.Validate("FLAT500", 199_999)
		if !errors.Is(err, e.ErrPromoSubtotalTooLow) {
			t.Fatalf("got %v, want ErrPromoSubtotalTooLow", err)
		}
	})

	t.Run("subtotal at minimum passes", func(t *testing.T) {
		d, err := engine.Validate("FLAT500", 200_000)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if d.Value != 50_000 {
			t.Errorf("value = %d, want 50000", d.Value)
		}
	})

	t.Run("expired code", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		expired, err := NewPromoEngine(&cfg.PromoCfg{Rules: []cfg.PromoRule{
			{Code: "OLD", Kind: "PERCENTAGE", Value: 10, ExpiresAt: &past},
		}})
		if err != nil {
			t.Fatalf("NewPromoEngine: %v", err)
		}

		_, err = expired.Validate("OLD", 100_000)
		if !errors.Is(err, e.ErrPromoExpired) {
			t.Fatalf("got %v, want ErrPromoExpired", err)
		}
	})

	t.Run("same input same output", func(t *testing.T) {
		a, errA := engine.Validate("SAVE20", 300_000)
		b, errB := engine.Validate("SAVE20", 300_000)
		if errA != nil || errB != nil {
			t.Fatalf("Validate: %v, %v", errA, errB)
		}
		if *a != *b {
			t.Errorf("validation is not deterministic: %+v vs %+v", a, b)
		}
	})
}
