package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

type addItemRequest struct {
	VariantID string `json:"variant_id"`
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Currency  string `json:"currency"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	ImageURL  string `json:"image_url"`
}

type itemKeyRequest struct {
	VariantID string `json:"variant_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type updateQuantityRequest struct {
	VariantID string `json:"variant_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type applyPromoRequest struct {
	Code string `json:"code"`
}

type cartItemResponse struct {
	VariantID string `json:"variant_id"`
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

type discountResponse struct {
	Code  string `json:"code"`
	Kind  string `json:"kind"`
	Value int64  `json:"value"`
}

type cartResponse struct {
	SessionID      string             `json:"session_id"`
	Items          []cartItemResponse `json:"items"`
	Discount       *discountResponse  `json:"discount,omitempty"`
	ItemCount      int                `json:"item_count"`
	Subtotal       int64              `json:"subtotal"`
	DiscountAmount int64              `json:"discount_amount"`
	ShippingFee    int64              `json:"shipping_fee"`
	FinalTotal     int64              `json:"final_total"`
	Currency       string             `json:"currency"`
}

func newCartResponse(snap *usecase.CartSnapshot) *cartResponse {
	items := make([]cartItemResponse, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, cartItemResponse{
			VariantID: item.VariantID,
			ProductID: item.ProductID,
			Title:     item.Title,
			UnitPrice: item.UnitPrice.Amount,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Size:      item.Size,
			ImageURL:  item.ImageURL,
		})
	}

	resp := &cartResponse{
		SessionID:      snap.SessionID,
		Items:          items,
		ItemCount:      snap.ItemCount,
		Subtotal:       snap.Subtotal,
		DiscountAmount: snap.DiscountAmount,
		ShippingFee:    snap.ShippingFee,
		FinalTotal:     snap.FinalTotal,
		Currency:       snap.Currency,
	}

	if snap.Discount != nil {
		resp.Discount = &discountResponse{
			Code:  snap.Discount.Code,
			Kind:  string(snap.Discount.Kind),
			Value: snap.Discount.Value,
		}
	}

	return resp
}

// getCart
//
//	@Summary		Снимок корзины
//	@Description	Возвращает корзину сессии со всеми производными суммами
//	@Tags			cart
//	@Produce		json
//	@Param			X-Session-ID	header		string	true	"Идентификатор сессии"
//	@Success		200				{object}	cartResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	sessionID, _, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	snap, err := h.cartUsecase.Snapshot(r.Context(), sessionID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartResponse(snap))
}

// addItem
//
//	@Summary		Добавление позиции
//	@Description	Добавляет позицию в корзину; совпадающие по варианту и опциям позиции сливаются
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string			true	"Идентификатор сессии"
//	@Param			X-User-ID		header		string			false	"Идентификатор пользователя"
//	@Param			request			body		addItemRequest	true	"Позиция"
//	@Success		200				{object}	cartResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/cart/items [post]
func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	price, err := parsePriceToMinorUnits(req.Price)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	item := domain.CartItem{
		VariantID: req.VariantID,
		ProductID: req.ProductID,
		Title:     req.Title,
		UnitPrice: domain.NewMoney(price, req.Currency),
		Quantity:  req.Quantity,
		Color:     req.Color,
		Size:      req.Size,
		ImageURL:  req.ImageURL,
	}

	snap, err := h.cartUsecase.AddItem(r.Context(), sessionID, userID, item)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartResponse(snap))
}

// updateQuantity
//
//	@Summary		Изменение количества
//	@Description	Устанавливает количество позиции; нулевое или отрицательное значение удаляет позицию
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string					true	"Идентификатор сессии"
//	@Param			request			body		updateQuantityRequest	true	"Ключ позиции и количество"
//	@Success		200				{object}	cartResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/cart/items [put]
func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	key := domain.ItemKey{VariantID: req.VariantID, Color: req.Color, Size: req.Size}
	snap, err := h.cartUsecase.UpdateQuantity(r.Context(), sessionID, userID, key, req.Quantity)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartResponse(snap))
}

// removeItem
//
//	@Summary		Удаление позиции
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string			true	"Идентификатор сессии"
//	@Param			request			body		itemKeyRequest	true	"Ключ позиции"
//	@Success		200				{object}	cartResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/cart/items [delete]
func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req itemKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	key := domain.ItemKey{VariantID: req.VariantID, Color: req.Color, Size: req.Size}
	snap, err := h.cartUsecase.RemoveItem(r.Context(), sessionID, userID, key)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartResponse(snap))
}

// clearCart
//
//	@Summary		Очистка корзины
//	@Tags			cart
//	@Produce		json
//	@Param			X-Session-ID	header		string	true	"Идентификатор сессии"
//	@Success		200				{object}	cartResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/cart [delete]
func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	snap, err := h.cartUsecase.ClearCart(r.Context(), sessionID, userID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartResponse(snap))
}

// applyPromoCode
//
//	@Summary		Применение промокода
//	@Description	Валидирует промокод против текущей корзины и применяет скидку
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string				true	"Идентификатор сессии"
//	@Param			request			body		applyPromoRequest	true	"Промокод"
//	@Success		200				{object}	cartResponse
//	@Failure		404				{object}	ErrorResponse	"Промокод не найден"
//	@Failure		422				{object}	ErrorResponse	"Промокод отклонён"
//	@Router			/cart/promo [post]
func (h *CartHandler) applyPromoCode(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req applyPromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	snap, err := h.cartUsecase.ApplyPromoCode(r.Context(), sessionID, userID, req.Code)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartResponse(snap))
}

// removeDiscount
//
//	@Summary		Снятие скидки
//	@Tags			cart
//	@Produce		json
//	@Param			X-Session-ID	header		string	true	"Идентификатор сессии"
//	@Success		200				{object}	cartResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/cart/promo [delete]
func (h *CartHandler) removeDiscount(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	snap, err := h.cartUsecase.RemoveDiscount(r.Context(), sessionID, userID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartResponse(snap))
}
