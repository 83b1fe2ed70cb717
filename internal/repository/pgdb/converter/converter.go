package converter

import (
	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

type RemoteCartConverter interface {
	ToItemModels(userID string, entity *domain.Cart) []RemoteCartItemModel
}

type OrderConverter interface {
	ToModel(entity *domain.Order) *OrderModel
}

type RemoteCartConverterImpl struct{}

func NewRemoteCartConverterImpl() *RemoteCartConverterImpl {
	return &RemoteCartConverterImpl{}
}

func (c *RemoteCartConverterImpl) ToItemModels(userID string, entity *domain.Cart) []RemoteCartItemModel {
	models := make([]RemoteCartItemModel, 0, len(entity.Items))
	for i, item := range entity.Items {
		models = append(models, RemoteCartItemModel{
			UserID:    userID,
			Position:  i,
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

	return models
}

type OrderConverterImpl struct{}

func NewOrderConverterImpl() *OrderConverterImpl {
	return &OrderConverterImpl{}
}

func (c *OrderConverterImpl) ToModel(entity *domain.Order) *OrderModel {
	return &OrderModel{
		ID:          entity.ID,
		AttemptID:   entity.AttemptID,
		SessionID:   entity.SessionID,
		UserID:      entity.UserID,
		RemoteID:    entity.RemoteID,
		CheckoutURL: entity.CheckoutURL,
		TotalAmount: entity.Total.Amount,
		Currency:    entity.Total.Currency,
		CreatedAt:   entity.CreatedAt,
	}
}
