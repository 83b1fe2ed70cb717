package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
)

func newTestCartUC() (*CartUseCase, *fakeCartRepo) {
	repo := newFakeCartRepo()
	engine, _ := NewPromoEngine(testPromoCfg())
	return NewCartUC(repo, engine, testPricingCfg(), nopLogger{}), repo
}

func TestCartUseCase_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("merges by identity key", func(t *testing.T) {
		uc, _ := newTestCartUC()

		item := testItem("v1", 100_000, 1)
		if _, err := uc.AddItem(ctx, "s1", "", item); err != nil {
			t.Fatalf("AddItem: %v", err)
		}

		item.Quantity = 2
		snap, err := uc.AddItem(ctx, "s1", "", item)
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}

		if len(snap.Items) != 1 {
			t.Fatalf("len(items) = %d, want 1 merged line", len(snap.Items))
		}
		if snap.Items[0].Quantity != 3 {
			t.Errorf("quantity = %d, want 3", snap.Items[0].Quantity)
		}
		if snap.Subtotal != 300_000 {
			t.Errorf("subtotal = %d, want 300000", snap.Subtotal)
		}
	})

	t.Run("different options stay separate lines", func(t *testing.T) {
		uc, _ := newTestCartUC()

		red := testItem("v1", 100_000, 1)
		red.Color = "red"
		blue := testItem("v1", 100_000, 1)
		blue.Color = "blue"

		uc.AddItem(ctx, "s1", "", red)
		snap, err := uc.AddItem(ctx, "s1", "", blue)
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}

		if len(snap.Items) != 2 {
			t.Fatalf("len(items) = %d, want 2", len(snap.Items))
		}
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		uc, _ := newTestCartUC()

		for i := 0; i < 5; i++ {
			uc.AddItem(ctx, "s1", "", testItem(fmt.Sprintf("v%d", i), 10_000, 1))
		}

		snap, _ := uc.Snapshot(ctx, "s1")
		for i, item := range snap.Items {
			if want := fmt.Sprintf("v%d", i); item.VariantID != want {
				t.Errorf("items[%d] = %s, want %s", i, item.VariantID, want)
			}
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		uc, _ := newTestCartUC()

		noVariant := testItem("", 100, 1)
		if _, err := uc.AddItem(ctx, "s1", "", noVariant); !errors.Is(err, e.ErrVariantRequired) {
			t.Errorf("got %v, want ErrVariantRequired", err)
		}

		zeroQty := testItem("v1", 100, 0)
		if _, err := uc.AddItem(ctx, "s1", "", zeroQty); !errors.Is(err, e.ErrInvalidQuantity) {
			t.Errorf("got %v, want ErrInvalidQuantity", err)
		}

		negPrice := testItem("v1", -1, 1)
		if _, err := uc.AddItem(ctx, "s1", "", negPrice); !errors.Is(err, e.ErrInvalidPrice) {
			t.Errorf("got %v, want ErrInvalidPrice", err)
		}
	})

	t.Run("currency defaults and mismatch rejected", func(t *testing.T) {
		uc, _ := newTestCartUC()

		bare := testItem("v1", 100_000, 1)
		bare.UnitPrice.Currency = ""
		snap, err := uc.AddItem(ctx, "s1", "", bare)
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if snap.Currency != "INR" {
			t.Errorf("currency = %q, want INR", snap.Currency)
		}

		foreign := testItem("v2", 100, 1)
		foreign.UnitPrice.Currency = "USD"
		if _, err := uc.AddItem(ctx, "s1", "", foreign); !errors.Is(err, e.ErrCurrencyMismatch) {
			t.Errorf("got %v, want ErrCurrencyMismatch", err)
		}
	})

	t.Run("session id required", func(t *testing.T) {
		uc, _ := newTestCartUC()

		if _, err := uc.AddItem(ctx, "", "", testItem("v1", 100, 1)); !errors.Is(err, e.ErrSessionRequired) {
			t.Errorf("got %v, want ErrSessionRequired", err)
		}
	})
}

func TestCartUseCase_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("sets quantity", func(t *testing.T) {
		uc, _ := newTestCartUC()
		item := testItem("v1", 100_000, 1)
		uc.AddItem(ctx, "s1", "", item)

		snap, err := uc.UpdateQuantity(ctx, "s1", "", item.Key(), 7)
		if err != nil {
			t.Fatalf("UpdateQuantity: %v", err)
		}
		if snap.Items[0].Quantity != 7 {
			t.Errorf("quantity = %d, want 7", snap.Items[0].Quantity)
		}
	})

	t.Run("zero removes the line", func(t *testing.T) {
		uc, _ := newTestCartUC()
		item := testItem("v1", 100_000, 2)
		uc.AddItem(ctx, "s1", "", item)

		snap, err := uc.UpdateQuantity(ctx, "s1", "", item.Key(), 0)
		if err != nil {
			t.Fatalf("UpdateQuantity: %v", err)
		}
		if len(snap.Items) != 0 {
			t.Errorf("len(items) = %d, want 0", len(snap.Items))
		}
	})

	t.Run("negative removes the line", func(t *testing.T) {
		uc, _ := newTestCartUC()
		item := testItem("v1", 100_000, 2)
		uc.AddItem(ctx, "s1", "", item)

		snap, _ := uc.UpdateQuantity(ctx, "s1", "", item.Key(), -3)
		if len(snap.Items) != 0 {
			t.Errorf("len(items) = %d, want 0", len(snap.Items))
		}
	})

	t.Run("missing key is a no-op", func(t *testing.T) {
		uc, _ := newTestCartUC()
		uc.AddItem(ctx, "s1", "", testItem("v1", 100_000, 1))

		snap, err := uc.UpdateQuantity(ctx, "s1", "", domain.ItemKey{VariantID: "ghost"}, 5)
		if err != nil {
			t.Fatalf("UpdateQuantity: %v", err)
		}
		if len(snap.Items) != 1 || snap.Items[0].Quantity != 1 {
			t.Errorf("cart changed unexpectedly: %+v", snap.Items)
		}
	})
}

func TestCartUseCase_QuantityBounds(t *testing.T) {
	ctx := context.Background()

	t.Run("quantity above cap rejected", func(t *testing.T) {
		uc, _ := newTestCartUC()

		if _, err := uc.AddItem(ctx, "s1", "", testItem("v1", 100, maxQuantity+1)); !errors.Is(err, e.ErrInvalidQuantity) {
			t.Errorf("got %v, want ErrInvalidQuantity", err)
		}
	})

	t.Run("merge cannot exceed cap", func(t *testing.T) {
		uc, _ := newTestCartUC()

		item := testItem("v1", 1, maxQuantity)
		if _, err := uc.AddItem(ctx, "s1", "", item); err != nil {
			t.Fatalf("AddItem: %v", err)
		}

		item.Quantity = 1
		if _, err := uc.AddItem(ctx, "s1", "", item); !errors.Is(err, e.ErrInvalidQuantity) {
			t.Fatalf("got %v, want ErrInvalidQuantity", err)
		}

		snap, _ := uc.Snapshot(ctx, "s1")
		if snap.Items[0].Quantity != maxQuantity {
			t.Errorf("quantity = %d, want untouched %d", snap.Items[0].Quantity, maxQuantity)
		}
	})

	t.Run("update above cap rejected", func(t *testing.T) {
		uc, _ := newTestCartUC()

		item := testItem("v1", 100, 1)
		uc.AddItem(ctx, "s1", "", item)

		if _, err := uc.UpdateQuantity(ctx, "s1", "", item.Key(), maxQuantity+1); !errors.Is(err, e.ErrInvalidQuantity) {
			t.Errorf("got %v, want ErrInvalidQuantity", err)
		}
	})

	// Максимальная цена уровня HTTP на максимальном количестве не должна
	// заворачивать int64 в отрицательный подытог.
	t.Run("overflowing mutation rejected, totals stay non-negative", func(t *testing.T) {
		uc, _ := newTestCartUC()

		item := testItem("v1", 10_000_000_000_000, 1)
		if _, err := uc.AddItem(ctx, "s1", "", item); err != nil {
			t.Fatalf("AddItem: %v", err)
		}

		_, err := uc.UpdateQuantity(ctx, "s1", "", item.Key(), maxQuantity)
		if !errors.Is(err, e.ErrCartTooLarge) {
			t.Fatalf("got %v, want ErrCartTooLarge", err)
		}

		snap, _ := uc.Snapshot(ctx, "s1")
		if snap.Items[0].Quantity != 1 {
			t.Errorf("quantity = %d, want untouched 1", snap.Items[0].Quantity)
		}
		if snap.Subtotal < 0 || snap.FinalTotal < 0 {
			t.Errorf("negative totals: subtotal=%d finalTotal=%d", snap.Subtotal, snap.FinalTotal)
		}
	})
}

func TestCartUseCase_Totals(t *testing.T) {
	ctx := context.Background()

	t.Run("subtotal is sum over lines", func(t *testing.T) {
		uc, _ := newTestCartUC()

		rng := rand.New(rand.NewSource(42))
		var want int64
		for i := 0; i < 20; i++ {
			price := int64(rng.Intn(100_000) + 1)
			qty := rng.Intn(5) + 1
			want += price * int64(qty)
			uc.AddItem(ctx, "s1", "", testItem(fmt.Sprintf("v%d", i), price, qty))
		}

		snap, _ := uc.Snapshot(ctx, "s1")
		if snap.Subtotal != want {
			t.Errorf("subtotal = %d, want %d", snap.Subtotal, want)
		}
	})

	t.Run("shipping charged below threshold and dropped above", func(t *testing.T) {
		uc, _ := newTestCartUC()

		uc.AddItem(ctx, "s1", "", testItem("v1", 100_000, 2))
		snap, _ := uc.Snapshot(ctx, "s1")
		if snap.ShippingFee != 20_000 {
			t.Errorf("shipping = %d, want 20000", snap.ShippingFee)
		}

		uc.AddItem(ctx, "s1", "", testItem("v2", 300_000, 1))
		snap, _ = uc.Snapshot(ctx, "s1")
		if snap.Subtotal != 500_000 {
			t.Fatalf("subtotal = %d, want 500000", snap.Subtotal)
		}
		if snap.ShippingFee != 0 {
			t.Errorf("shipping = %d, want 0 at threshold", snap.ShippingFee)
		}
	})

	t.Run("final total composes discount and shipping", func(t *testing.T) {
		uc, _ := newTestCartUC()

		uc.AddItem(ctx, "s1", "", testItem("v1", 300_000, 1))
		snap, err := uc.ApplyPromoCode(ctx, "s1", "", "SAVE20")
		if err != nil {
			t.Fatalf("ApplyPromoCode: %v", err)
		}

		if snap.DiscountAmount != 60_000 {
			t.Errorf("discount = %d, want 60000", snap.DiscountAmount)
		}
		// 300000 - 60000 + 20000 доставка
		if snap.FinalTotal != 260_000 {
			t.Errorf("final total = %d, want 260000", snap.FinalTotal)
		}
	})
}

func TestCartUseCase_Promo(t *testing.T) {
	ctx := context.Background()

	t.Run("rejection leaves prior discount intact", func(t *testing.T) {
		uc, _ := newTestCartUC()

		uc.AddItem(ctx, "s1", "", testItem("v1", 300_000, 1))
		if _, err := uc.ApplyPromoCode(ctx, "s1", "", "SAVE20"); err != nil {
			t.Fatalf("ApplyPromoCode: %v", err)
		}

		_, err := uc.ApplyPromoCode(ctx, "s1", "", "NOPE")
		if !errors.Is(err, e.ErrPromoNotFound) {
			t.Fatalf("got %v, want ErrPromoNotFound", err)
		}

		snap, _ := uc.Snapshot(ctx, "s1")
		if snap.Discount == nil || snap.Discount.Code != "SAVE20" {
			t.Errorf("prior discount lost: %+v", snap.Discount)
		}
	})

	t.Run("discount auto-invalidates when subtotal drops below minimum", func(t *testing.T) {
		uc, _ := newTestCartUC()

		big := testItem("v1", 250_000, 1)
		uc.AddItem(ctx, "s1", "", big)
		if _, err := uc.ApplyPromoCode(ctx, "s1", "", "FLAT500"); err != nil {
			t.Fatalf("ApplyPromoCode: %v", err)
		}

		snap, err := uc.RemoveItem(ctx, "s1", "", big.Key())
		if err != nil {
			t.Fatalf("RemoveItem: %v", err)
		}
		if snap.Discount != nil {
			t.Errorf("discount survived below its minimum: %+v", snap.Discount)
		}
	})

	t.Run("remove discount", func(t *testing.T) {
		uc, _ := newTestCartUC()

		uc.AddItem(ctx, "s1", "", testItem("v1", 300_000, 1))
		uc.ApplyPromoCode(ctx, "s1", "", "SAVE20")

		snap, err := uc.RemoveDiscount(ctx, "s1", "")
		if err != nil {
			t.Fatalf("RemoveDiscount: %v", err)
		}
		if snap.Discount != nil || snap.DiscountAmount != 0 {
			t.Errorf("discount not removed: %+v", snap.Discount)
		}
	})
}

func TestCartUseCase_ClearCart(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestCartUC()

	uc.AddItem(ctx, "s1", "", testItem("v1", 300_000, 2))
	uc.ApplyPromoCode(ctx, "s1", "", "SAVE20")

	snap, err := uc.ClearCart(ctx, "s1", "")
	if err != nil {
		t.Fatalf("ClearCart: %v", err)
	}

	if len(snap.Items) != 0 || snap.Discount != nil {
		t.Errorf("cart not cleared: %+v", snap)
	}
	if snap.FinalTotal != 0 {
		t.Errorf("final total = %d, want 0", snap.FinalTotal)
	}
}

func TestCartUseCase_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("restores persisted snapshot on first access", func(t *testing.T) {
		repo := newFakeCartRepo()
		repo.carts["s1"] = &domain.Cart{
			SessionID: "s1",
			Items:     []domain.CartItem{testItem("v1", 100_000, 2)},
		}

		engine, _ := NewPromoEngine(testPromoCfg())
		uc := NewCartUC(repo, engine, testPricingCfg(), nopLogger{})

		snap, err := uc.Snapshot(ctx, "s1")
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		if snap.Subtotal != 200_000 {
			t.Errorf("subtotal = %d, want 200000", snap.Subtotal)
		}
	})

	t.Run("corrupted snapshot degrades to empty cart", func(t *testing.T) {
		repo := newFakeCartRepo()
		repo.getErr = e.ErrSnapshotCorrupted

		engine, _ := NewPromoEngine(testPromoCfg())
		uc := NewCartUC(repo, engine, testPricingCfg(), nopLogger{})

		snap, err := uc.Snapshot(ctx, "s1")
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		if len(snap.Items) != 0 {
			t.Errorf("expected empty cart, got %d items", len(snap.Items))
		}
	})
}

func TestCartUseCase_Observer(t *testing.T) {
	ctx := context.Background()

	uc, _ := newTestCartUC()
	obs := &fakeObserver{}
	uc.SetObserver(obs)

	uc.AddItem(ctx, "s1", "u1", testItem("v1", 100_000, 1))
	uc.AddItem(ctx, "s1", "u1", testItem("v2", 100_000, 1))

	if got := obs.callCount(); got != 2 {
		t.Fatalf("observer calls = %d, want 2", got)
	}

	obs.mu.Lock()
	defer obs.mu.Unlock()
	last := obs.calls[1]
	if last.sessionID != "s1" || last.userID != "u1" {
		t.Errorf("observed %s/%s, want s1/u1", last.sessionID, last.userID)
	}
	if len(last.cart.Items) != 2 {
		t.Errorf("observed %d items, want 2", len(last.cart.Items))
	}
}
