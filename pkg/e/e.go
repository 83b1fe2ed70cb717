package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки валидации промокодов
	ErrPromoNotFound       = fmt.Errorf("promo code not found")
	ErrPromoSubtotalTooLow = fmt.Errorf("cart subtotal is below the promo code minimum")
	ErrPromoExpired        = fmt.Errorf("promo code has expired")

	// Ошибки корзины
	ErrInvalidQuantity     = fmt.Errorf("quantity must be positive")
	ErrVariantRequired     = fmt.Errorf("variant id is required")
	ErrInvalidPrice        = fmt.Errorf("invalid price")
	ErrPricePrecision      = fmt.Errorf("price must have at most 2 decimal places")
	ErrCurrencyMismatch    = fmt.Errorf("item currency does not match cart currency")
	ErrCartTooLarge        = fmt.Errorf("cart total exceeds the supported maximum")
	ErrSnapshotCorrupted   = fmt.Errorf("persisted cart snapshot is corrupted")

	// Ошибки чекаута
	ErrEmptyCart             = fmt.Errorf("cart is empty")
	ErrContactIncomplete     = fmt.Errorf("contact details are incomplete")
	ErrUnknownShippingMethod = fmt.Errorf("unknown shipping method")
	ErrStepNotReached        = fmt.Errorf("checkout step has not been reached yet")
	ErrCheckoutNotReady      = fmt.Errorf("checkout steps are not completed")
	ErrCheckoutUnavailable   = fmt.Errorf("checkout is temporarily unavailable")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrSessionRequired  = fmt.Errorf("session id is required")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
