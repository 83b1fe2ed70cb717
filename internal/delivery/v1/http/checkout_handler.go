package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
)

type CheckoutHandler struct {
	checkoutUsecase usecase.CheckoutUC
	logger          logger.Logger
}

func NewCheckoutHandler(checkoutUsecase usecase.CheckoutUC, logger logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutUsecase: checkoutUsecase, logger: logger}
}

type contactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type shippingRequest struct {
	Method string `json:"method"`
}

type goBackRequest struct {
	Step string `json:"step"`
}

type checkoutStatusResponse struct {
	State       string `json:"state"`
	Step        string `json:"step"`
	Message     string `json:"message,omitempty"`
	CheckoutURL string `json:"checkout_url,omitempty"`
}

func newCheckoutStatusResponse(status *usecase.CheckoutStatus) *checkoutStatusResponse {
	return &checkoutStatusResponse{
		State:       string(status.State),
		Step:        status.Step.String(),
		Message:     status.Message,
		CheckoutURL: status.CheckoutURL,
	}
}

func parseStep(s string) (domain.CheckoutStep, error) {
	switch s {
	case "contact":
		return domain.StepContact, nil
	case "shipping":
		return domain.StepShipping, nil
	case "payment":
		return domain.StepPayment, nil
	default:
		return 0, e.ErrStatusBadRequest
	}
}

// getStatus
//
//	@Summary		Состояние чекаута
//	@Description	Возвращает состояние машины отправки и текущий шаг мастера
//	@Tags			checkout
//	@Produce		json
//	@Param			X-Session-ID	header		string	true	"Идентификатор сессии"
//	@Success		200				{object}	checkoutStatusResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/checkout [get]
func (h *CheckoutHandler) getStatus(w http.ResponseWriter, r *http.Request) {
	sessionID, _, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCheckoutStatusResponse(h.checkoutUsecase.Status(sessionID)))
}

// setContact
//
//	@Summary		Контактные данные
//	@Description	Сохраняет контактные данные и продвигает мастер на шаг доставки
//	@Tags			checkout
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string			true	"Идентификатор сессии"
//	@Param			request			body		contactRequest	true	"Контактные данные"
//	@Success		200				{object}	checkoutStatusResponse
//	@Failure		422				{object}	ErrorResponse	"Неполные контактные данные"
//	@Router			/checkout/contact [put]
func (h *CheckoutHandler) setContact(w http.ResponseWriter, r *http.Request) {
	sessionID, _, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	contact := domain.ContactDetails{Name: req.Name, Email: req.Email, Phone: req.Phone}
	status, err := h.checkoutUsecase.SetContact(sessionID, contact)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCheckoutStatusResponse(status))
}

// selectShipping
//
//	@Summary		Способ доставки
//	@Description	Выбирает способ доставки и продвигает мастер на шаг оплаты
//	@Tags			checkout
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string			true	"Идентификатор сессии"
//	@Param			request			body		shippingRequest	true	"Код способа доставки"
//	@Success		200				{object}	checkoutStatusResponse
//	@Failure		400				{object}	ErrorResponse	"Неизвестный способ доставки"
//	@Router			/checkout/shipping [put]
func (h *CheckoutHandler) selectShipping(w http.ResponseWriter, r *http.Request) {
	sessionID, _, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req shippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	status, err := h.checkoutUsecase.SelectShipping(sessionID, req.Method)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCheckoutStatusResponse(status))
}

// goBack
//
//	@Summary		Возврат на пройденный шаг
//	@Description	Возвращает мастер на уже пройденный шаг; введённые данные сохраняются
//	@Tags			checkout
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string			true	"Идентификатор сессии"
//	@Param			request			body		goBackRequest	true	"Целевой шаг"
//	@Success		200				{object}	checkoutStatusResponse
//	@Failure		409				{object}	ErrorResponse	"Шаг ещё не пройден"
//	@Router			/checkout/back [post]
func (h *CheckoutHandler) goBack(w http.ResponseWriter, r *http.Request) {
	sessionID, _, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req goBackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	step, err := parseStep(req.Step)
	if err != nil {
		WriteError(w, err)
		return
	}

	status, err := h.checkoutUsecase.GoBack(sessionID, step)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCheckoutStatusResponse(status))
}

// submit
//
//	@Summary		Отправка заказа
//	@Description	Создаёт заказ во внешней системе; повторные вызовы во время отправки игнорируются
//	@Tags			checkout
//	@Produce		json
//	@Param			X-Session-ID	header		string	true	"Идентификатор сессии"
//	@Param			X-User-ID		header		string	false	"Идентификатор пользователя"
//	@Success		200				{object}	checkoutStatusResponse
//	@Failure		409				{object}	ErrorResponse	"Чекаут не готов или корзина пуста"
//	@Failure		502				{object}	ErrorResponse	"Внешняя система недоступна"
//	@Router			/checkout/submit [post]
func (h *CheckoutHandler) submit(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	status, err := h.checkoutUsecase.Submit(r.Context(), sessionID, userID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCheckoutStatusResponse(status))
}
