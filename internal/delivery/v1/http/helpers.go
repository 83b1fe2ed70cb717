package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrSessionRequired):
		return http.StatusBadRequest, e.ErrSessionRequired.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrInvalidQuantity):
		return http.StatusBadRequest, e.ErrInvalidQuantity.Error()
	case errors.Is(err, e.ErrVariantRequired):
		return http.StatusBadRequest, e.ErrVariantRequired.Error()
	case errors.Is(err, e.ErrCurrencyMismatch):
		return http.StatusUnprocessableEntity, e.ErrCurrencyMismatch.Error()
	case errors.Is(err, e.ErrCartTooLarge):
		return http.StatusUnprocessableEntity, e.ErrCartTooLarge.Error()
	case errors.Is(err, e.ErrPromoNotFound):
		return http.StatusNotFound, e.ErrPromoNotFound.Error()
	case errors.Is(err, e.ErrPromoExpired):
		return http.StatusUnprocessableEntity, e.ErrPromoExpired.Error()
	case errors.Is(err, e.ErrPromoSubtotalTooLow):
		return http.StatusUnprocessableEntity, e.ErrPromoSubtotalTooLow.Error()
	case errors.Is(err, e.ErrEmptyCart):
		return http.StatusConflict, e.ErrEmptyCart.Error()
	case errors.Is(err, e.ErrContactIncomplete):
		return http.StatusUnprocessableEntity, e.ErrContactIncomplete.Error()
	case errors.Is(err, e.ErrUnknownShippingMethod):
		return http.StatusBadRequest, e.ErrUnknownShippingMethod.Error()
	case errors.Is(err, e.ErrStepNotReached):
		return http.StatusConflict, e.ErrStepNotReached.Error()
	case errors.Is(err, e.ErrCheckoutNotReady):
		return http.StatusConflict, e.ErrCheckoutNotReady.Error()
	case errors.Is(err, e.ErrCheckoutUnavailable):
		return http.StatusBadGateway, e.ErrCheckoutUnavailable.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sessionFromRequest достаёт обязательный идентификатор сессии
// и необязательный идентификатор пользователя из заголовков.
func sessionFromRequest(r *http.Request) (sessionID, userID string, err error) {
	sessionID = strings.TrimSpace(r.Header.Get("X-Session-ID"))
	if sessionID == "" {
		return "", "", e.ErrSessionRequired
	}

	return sessionID, strings.TrimSpace(r.Header.Get("X-User-ID")), nil
}

// parsePriceToMinorUnits переводит десятичную строку вида "599.99" или "600"
// в минорные единицы. Отклоняет нечисловые значения, отрицательные цены,
// более двух знаков после запятой и цены выше разумного потолка.
func parsePriceToMinorUnits(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, errors.New("price is empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	// Потолок: 1 млрд в основных единицах валюты.
	maxPrice := decimal.NewFromInt(1_000_000_000).Mul(decimal.NewFromInt(100))
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
