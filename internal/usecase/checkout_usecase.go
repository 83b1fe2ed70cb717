package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/google/uuid"
)

// Допустимые способы доставки.
var shippingMethods = map[string]string{
	"standard": "Standard (3-5 days)",
	"express":  "Express (1-2 days)",
}

// CartProvider отдаёт снимок корзины для отправки заказа.
type CartProvider interface {
	Snapshot(ctx context.Context, sessionID string) (*CartSnapshot, error)
}

// CheckoutUseCase ведёт мастер оформления и машину состояний отправки.
// Машина использует собственное состояние Submitting как guard: повторная
// отправка отклоняется проверкой состояния, а не блокировкой.
type CheckoutUseCase struct {
	carts    CartProvider
	gateway  OrderGateway
	orders   OrderRepository
	producer EventProducer
	cfg      *cfg.CheckoutCfg
	logger   logger.Logger

	mu       sync.Mutex
	attempts map[string]*checkoutAttempt
}

type checkoutAttempt struct {
	mu          sync.Mutex
	state       domain.CheckoutState
	step        domain.CheckoutStep
	message     string
	checkoutURL string
	attemptID   string
	contact     *domain.ContactDetails
	shipping    *domain.ShippingMethod
	resetTimer  *time.Timer
}

func NewCheckoutUC(
	carts CartProvider,
	gateway OrderGateway,
	orders OrderRepository,
	producer EventProducer,
	cfg *cfg.CheckoutCfg,
	logger logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		carts:    carts,
		gateway:  gateway,
		orders:   orders,
		producer: producer,
		cfg:      cfg,
		logger:   logger,
		attempts: make(map[string]*checkoutAttempt),
	}
}

// Status возвращает текущее состояние машины и шаг мастера.
func (c *CheckoutUseCase) Status(sessionID string) *CheckoutStatus {
	a := c.attempt(sessionID)

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.statusLocked()
}

// SetContact сохраняет контактные данные и продвигает мастер вперёд.
// Данные можно править и после возврата на этот шаг — без потери
// прогресса более поздних шагов.
func (c *CheckoutUseCase) SetContact(sessionID string, contact domain.ContactDetails) (*CheckoutStatus, error) {
	if err := validateContact(&contact); err != nil {
		return nil, err
	}

	a := c.attempt(sessionID)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.contact = &contact
	if a.step == domain.StepContact {
		a.step = domain.StepShipping
	}

	return a.statusLocked(), nil
}

// SelectShipping сохраняет способ доставки; требует заполненного контакта.
func (c *CheckoutUseCase) SelectShipping(sessionID string, methodCode string) (*CheckoutStatus, error) {
	label, ok := shippingMethods[strings.ToLower(methodCode)]
	if !ok {
		return nil, e.ErrUnknownShippingMethod
	}

	a := c.attempt(sessionID)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.contact == nil {
		return nil, e.ErrStepNotReached
	}

	a.shipping = &domain.ShippingMethod{Code: strings.ToLower(methodCode), Label: label}
	if a.step == domain.StepShipping {
		a.step = domain.StepPayment
	}

	return a.statusLocked(), nil
}

// GoBack возвращает мастер на уже пройденный шаг.
// Введённые данные при этом сохраняются.
func (c *CheckoutUseCase) GoBack(sessionID string, step domain.CheckoutStep) (*CheckoutStatus, error) {
	a := c.attempt(sessionID)

	a.mu.Lock()
	defer a.mu.Unlock()

	if step > a.step {
		return nil, e.ErrStepNotReached
	}

	a.step = step
	return a.statusLocked(), nil
}

// Submit подтверждает последний шаг мастера и запускает отправку заказа.
// Пока состояние Submitting, повторные вызовы — no-op: ровно один внешний
// вызов создания заказа на попытку. Success терминален для попытки.
// Неудачная попытка оставляет корзину нетронутой.
func (c *CheckoutUseCase) Submit(ctx context.Context, sessionID, userID string) (*CheckoutStatus, error) {
	const op = "CheckoutUseCase.Submit"

	snap, err := c.carts.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a := c.attempt(sessionID)

	a.mu.Lock()
	switch a.state {
	case domain.CheckoutSubmitting, domain.CheckoutSuccess, domain.CheckoutError:
		st := a.statusLocked()
		a.mu.Unlock()
		return st, nil
	}

	if a.contact == nil || a.shipping == nil {
		a.mu.Unlock()
		return nil, e.ErrCheckoutNotReady
	}

	if len(snap.Items) == 0 {
		a.mu.Unlock()
		return nil, e.ErrEmptyCart
	}

	a.state = domain.CheckoutSubmitting
	a.attemptID = uuid.NewString()
	attemptID := a.attemptID
	a.mu.Unlock()

	c.publishEvent(NewCheckoutEventReq(EventCheckoutSubmitted, sessionID, userID, attemptID, snap.FinalTotal, snap.Currency, ""))

	// Отправка идёт в отрыве от контекста запроса: уход пользователя со
	// страницы не должен оборвать уже начатое создание заказа.
	subCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := c.gateway.CreateOrder(subCtx, NewCreateOrderReq(buildOrderLines(snap)))
	if err != nil {
		c.logger.Warnf("Order creation failed: %v", e.Wrap(op, err))
		c.failAttempt(a, sessionID)
		c.publishEvent(NewCheckoutEventReq(EventCheckoutFailed, sessionID, userID, attemptID, snap.FinalTotal, snap.Currency, err.Error()))

		a.mu.Lock()
		defer a.mu.Unlock()
		return a.statusLocked(), nil
	}

	a.mu.Lock()
	a.state = domain.CheckoutSuccess
	a.checkoutURL = res.CheckoutURL
	st := a.statusLocked()
	a.mu.Unlock()

	c.recordOrder(sessionID, userID, attemptID, res)
	c.publishEvent(NewCheckoutEventReq(EventCheckoutSucceeded, sessionID, userID, attemptID, res.Total.Amount, res.Total.Currency, ""))

	return st, nil
}

// Stop останавливает таймеры автосброса всех попыток.
func (c *CheckoutUseCase) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, a := range c.attempts {
		a.mu.Lock()
		if a.resetTimer != nil {
			a.resetTimer.Stop()
			a.resetTimer = nil
		}
		a.mu.Unlock()
	}
}

// failAttempt переводит попытку в Error с пользовательским сообщением и
// взводит таймер автосброса в Idle.
func (c *CheckoutUseCase) failAttempt(a *checkoutAttempt, sessionID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state = domain.CheckoutError
	a.message = e.ErrCheckoutUnavailable.Error()

	if a.resetTimer != nil {
		a.resetTimer.Stop()
	}
	a.resetTimer = time.AfterFunc(c.cfg.ErrorResetDelay, func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		if a.state == domain.CheckoutError {
			a.state = domain.CheckoutIdle
			a.message = ""
		}
	})

	c.logger.Debugf("Checkout attempt failed, auto-reset in %v (session %s)", c.cfg.ErrorResetDelay, sessionID)
}

// recordOrder сохраняет запись о созданном заказе best-effort.
func (c *CheckoutUseCase) recordOrder(sessionID, userID, attemptID string, res *CreateOrderRes) {
	const op = "CheckoutUseCase.recordOrder"

	if c.orders == nil {
		return
	}

	order := &domain.Order{
		ID:          uuid.NewString(),
		AttemptID:   attemptID,
		SessionID:   sessionID,
		UserID:      userID,
		RemoteID:    res.RemoteID,
		CheckoutURL: res.CheckoutURL,
		Total:       res.Total,
		CreatedAt:   time.Now().UTC(),
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.orders.Create(bgCtx, order); err != nil {
			c.logger.Warnf("Failed to record order: %v", e.Wrap(op, err))
		}
	}()
}

// publishEvent отправляет событие чекаута fire-and-forget:
// сбой публикации логируется и никогда не влияет на попытку.
func (c *CheckoutUseCase) publishEvent(req *CheckoutEventReq) {
	const op = "CheckoutUseCase.publishEvent"

	if c.producer == nil {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.producer.WriteCheckoutEvent(bgCtx, req); err != nil {
			c.logger.Warnf("Failed to publish checkout event %s: %v", req.Name, e.Wrap(op, err))
		}
	}()
}

func (c *CheckoutUseCase) attempt(sessionID string) *checkoutAttempt {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.attempts[sessionID]
	if !ok {
		a = &checkoutAttempt{
			state: domain.CheckoutIdle,
			step:  domain.StepContact,
		}
		c.attempts[sessionID] = a
	}

	return a
}

func (a *checkoutAttempt) statusLocked() *CheckoutStatus {
	return &CheckoutStatus{
		State:       a.state,
		Step:        a.step,
		Message:     a.message,
		CheckoutURL: a.checkoutURL,
	}
}

// buildOrderLines переводит позиции снапшота в строки внешнего заказа.
// Цвет и размер уходят атрибутами строки.
func buildOrderLines(snap *CartSnapshot) []OrderLine {
	lines := make([]OrderLine, 0, len(snap.Items))
	for _, item := range snap.Items {
		var attrs map[string]string
		if item.Color != "" || item.Size != "" {
			attrs = make(map[string]string, 2)
			if item.Color != "" {
				attrs["color"] = item.Color
			}
			if item.Size != "" {
				attrs["size"] = item.Size
			}
		}

		lines = append(lines, OrderLine{
			MerchandiseID: item.VariantID,
			Quantity:      item.Quantity,
			Attributes:    attrs,
		})
	}

	return lines
}

func validateContact(contact *domain.ContactDetails) error {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Email = strings.TrimSpace(contact.Email)

	if contact.Name == "" || contact.Email == "" {
		return e.ErrContactIncomplete
	}

	at := strings.Index(contact.Email, "@")
	if at <= 0 || at == len(contact.Email)-1 {
		return e.ErrContactIncomplete
	}

	return nil
}
