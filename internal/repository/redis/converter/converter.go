package converter

import (
	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

type CartConverter interface {
	ToRedisModel(entity *domain.Cart) *CartRedisModel
	ToEntity(model *CartRedisModel) *domain.Cart
}

// CartConverterImpl — ручная реализация маппинга корзина <-> модель хранилища.
type CartConverterImpl struct{}

func NewCartConverterImpl() *CartConverterImpl {
	return &CartConverterImpl{}
}

func (c *CartConverterImpl) ToRedisModel(entity *domain.Cart) *CartRedisModel {
	model := &CartRedisModel{
		SessionID: entity.SessionID,
		UpdatedAt: entity.UpdatedAt,
	}

	for _, item := range entity.Items {
		model.Items = append(model.Items, CartItemModel{
			VariantID: item.VariantID,
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.UnitPrice.Amount,
			Currency:  item.UnitPrice.Currency,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Size:      item.Size,
			ImageURL:  item.ImageURL,
		})
	}

	if entity.Discount != nil {
		model.Discount = &DiscountRedisModel{
			Code:        entity.Discount.Code,
			Kind:        string(entity.Discount.Kind),
			Value:       entity.Discount.Value,
			MinSubtotal: entity.Discount.MinSubtotal,
			ExpiresAt:   entity.Discount.ExpiresAt,
		}
	}

	return model
}

func (c *CartConverterImpl) ToEntity(model *CartRedisModel) *domain.Cart {
	entity := &domain.Cart{
		SessionID: model.SessionID,
		UpdatedAt: model.UpdatedAt,
	}

	for _, item := range model.Items {
		entity.Items = append(entity.Items, domain.CartItem{
			VariantID: item.VariantID,
			ProductID: item.ProductID,
			Title:     item.Title,
			UnitPrice: domain.NewMoney(item.Price, item.Currency),
			Quantity:  item.Quantity,
			Color:     item.Color,
			Size:      item.Size,
			ImageURL:  item.ImageURL,
		})
	}

	if model.Discount != nil {
		entity.Discount = domain.NewDiscount(
			model.Discount.Code,
			domain.DiscountKind(model.Discount.Kind),
			model.Discount.Value,
			model.Discount.MinSubtotal,
			model.Discount.ExpiresAt,
		)
	}

	return entity
}
