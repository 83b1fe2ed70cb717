package converter

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

// Снапшот, прошедший сериализацию и восстановление, должен быть
// неотличим от исходного состояния корзины.
func TestCartConverter_RoundTrip(t *testing.T) {
	conv := NewCartConverterImpl()
	expires := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	original := &domain.Cart{
		SessionID: "s1",
		Items: []domain.CartItem{
			{
				VariantID: "v1",
				ProductID: "p1",
				Title:     "Kurta",
				UnitPrice: domain.NewMoney(100_000, "INR"),
				Quantity:  2,
				Color:     "red",
				Size:      "M",
				ImageURL:  "https://cdn.example/v1.jpg",
			},
			{
				VariantID: "v2",
				ProductID: "p2",
				Title:     "Scarf",
				UnitPrice: domain.NewMoney(35_000, "INR"),
				Quantity:  1,
			},
		},
		Discount:  domain.NewDiscount("FLAT500", domain.DiscountFixed, 50_000, 200_000, &expires),
		UpdatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(conv.ToRedisModel(original))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var model CartRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored := conv.ToEntity(&model)
	if !reflect.DeepEqual(original, restored) {
		t.Errorf("round trip changed the cart:\n got %+v\nwant %+v", restored, original)
	}
}

func TestCartConverter_EmptyCart(t *testing.T) {
	conv := NewCartConverterImpl()

	original := domain.NewCart("s1")
	restored := conv.ToEntity(conv.ToRedisModel(original))

	if len(restored.Items) != 0 || restored.Discount != nil {
		t.Errorf("empty cart round trip: %+v", restored)
	}
	if restored.SessionID != "s1" {
		t.Errorf("session id = %q, want s1", restored.SessionID)
	}
}
