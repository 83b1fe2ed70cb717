package sync

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/jitter"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
)

// Adapter зеркалирует снапшоты корзин в удалённое хранилище с дебаунсом.
// Best-effort: сбой синхронизации логируется и никогда не влияет на
// локальную корзину.
type Adapter struct {
	remote     usecase.RemoteCartRepository
	debounce   time.Duration
	maxRetries int
	logger     logger.Logger

	mu      sync.Mutex
	pending map[string]*pendingSync
	stopped bool
	wg      sync.WaitGroup
}

// pendingSync — единственный живой таймер дебаунса сессии
// и последний снапшот, который он отправит.
type pendingSync struct {
	timer  *time.Timer
	cart   *domain.Cart
	userID string
}

func NewAdapter(
	remote usecase.RemoteCartRepository,
	debounce time.Duration,
	maxRetries int,
	logger logger.Logger,
) *Adapter {
	return &Adapter{
		remote:     remote,
		debounce:   debounce,
		maxRetries: maxRetries,
		logger:     logger,
		pending:    make(map[string]*pendingSync),
	}
}

// CartChanged реализует usecase.MutationObserver.
// Каждая новая мутация сдвигает существующий таймер, а не взводит второй.
// Пустая корзина или отсутствие пользователя отменяют отложенную отправку:
// после исчезновения корзины не должно выстрелить ни одной записи.
func (a *Adapter) CartChanged(sessionID, userID string, cart *domain.Cart) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}

	if userID == "" || cart.IsEmpty() {
		a.cancelLocked(sessionID)
		return
	}

	if p, ok := a.pending[sessionID]; ok && p.timer.Stop() {
		p.cart = cart
		p.userID = userID
		p.timer.Reset(a.debounce)
		return
	}

	// Либо записи нет, либо её таймер уже выстрелил и fire ждёт на a.mu.
	// Новая запись начинает тихий период заново; устаревший fire увидит
	// чужой указатель и ничего не отправит.
	p := &pendingSync{cart: cart, userID: userID}
	p.timer = time.AfterFunc(a.debounce, func() {
		a.fire(sessionID, p)
	})
	a.pending[sessionID] = p
}

// Stop отменяет все таймеры и дожидается завершения текущих отправок.
func (a *Adapter) Stop() {
	a.mu.Lock()
	a.stopped = true
	for sessionID := range a.pending {
		a.cancelLocked(sessionID)
	}
	a.mu.Unlock()

	a.wg.Wait()
	a.logger.Infof("Cart sync adapter stopped")
}

// cancelLocked явно останавливает таймер сессии. Вызывается под a.mu.
func (a *Adapter) cancelLocked(sessionID string) {
	if p, ok := a.pending[sessionID]; ok {
		p.timer.Stop()
		delete(a.pending, sessionID)
	}
}

// fire срабатывает по истечении тихого периода и отправляет последний снапшот.
// Отправка происходит только если запись сессии всё ещё та, чей таймер
// выстрелил: замещённая запись означает новую мутацию и новый тихий период.
func (a *Adapter) fire(sessionID string, fired *pendingSync) {
	a.mu.Lock()
	p, ok := a.pending[sessionID]
	if !ok || p != fired || a.stopped {
		a.mu.Unlock()
		return
	}
	delete(a.pending, sessionID)
	a.wg.Add(1)
	a.mu.Unlock()

	defer a.wg.Done()
	a.flush(sessionID, p.userID, p.cart)
}

// flush отправляет снапшот с ограниченными повторами.
// Последняя полная запись побеждает — порядок завершения относительно
// следующих мутаций не важен.
func (a *Adapter) flush(sessionID, userID string, cart *domain.Cart) {
	const (
		op          = "sync.Adapter.flush"
		baseBackoff = 500 * time.Millisecond
		maxBackoff  = 10 * time.Second
	)

	for attempt := 0; attempt < a.maxRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := a.remote.ReplaceSnapshot(ctx, userID, cart, cart.UpdatedAt)
		cancel()

		if err == nil {
			a.logger.Debugf("Cart snapshot synced (session %s, user %s)", sessionID, userID)
			return
		}

		if attempt == a.maxRetries-1 {
			a.logger.Warnf("Cart sync gave up after %d attempts: %v", a.maxRetries, e.Wrap(op, err))
			return
		}

		time.Sleep(jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter))
	}
}
