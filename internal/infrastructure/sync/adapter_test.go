package sync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

type fakeRemote struct {
	mu        sync.Mutex
	snapshots []remoteCall
	err       error
}

type remoteCall struct {
	userID string
	cart   *domain.Cart
}

func (f *fakeRemote) ReplaceSnapshot(_ context.Context, userID string, cart *domain.Cart, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.snapshots = append(f.snapshots, remoteCall{userID: userID, cart: cart})
	return nil
}

func (f *fakeRemote) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.snapshots)
}

func testCart(sessionID string, qty int) *domain.Cart {
	return &domain.Cart{
		SessionID: sessionID,
		Items: []domain.CartItem{{
			VariantID: "v1",
			UnitPrice: domain.NewMoney(100_000, "INR"),
			Quantity:  qty,
		}},
		UpdatedAt: time.Now().UTC(),
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestAdapter_DebounceCollapsesBurst(t *testing.T) {
	remote := &fakeRemote{}
	a := NewAdapter(remote, 30*time.Millisecond, 1, nopLogger{})
	defer a.Stop()

	// Серия быстрых мутаций — один вызов с последним снапшотом.
	for qty := 1; qty <= 5; qty++ {
		a.CartChanged("s1", "u1", testCart("s1", qty))
		time.Sleep(5 * time.Millisecond)
	}

	waitFor(t, func() bool { return remote.count() == 1 })

	remote.mu.Lock()
	defer remote.mu.Unlock()
	if got := remote.snapshots[0].cart.Items[0].Quantity; got != 5 {
		t.Errorf("synced quantity = %d, want the last snapshot (5)", got)
	}
	if remote.snapshots[0].userID != "u1" {
		t.Errorf("userID = %q, want u1", remote.snapshots[0].userID)
	}
}

func TestAdapter_SeparateSessionsSyncIndependently(t *testing.T) {
	remote := &fakeRemote{}
	a := NewAdapter(remote, 20*time.Millisecond, 1, nopLogger{})
	defer a.Stop()

	a.CartChanged("s1", "u1", testCart("s1", 1))
	a.CartChanged("s2", "u2", testCart("s2", 2))

	waitFor(t, func() bool { return remote.count() == 2 })
}

func TestAdapter_SkipsAnonymousSessions(t *testing.T) {
	remote := &fakeRemote{}
	a := NewAdapter(remote, 10*time.Millisecond, 1, nopLogger{})
	defer a.Stop()

	a.CartChanged("s1", "", testCart("s1", 1))

	time.Sleep(50 * time.Millisecond)
	if remote.count() != 0 {
		t.Errorf("anonymous session was synced %d times", remote.count())
	}
}

func TestAdapter_EmptyCartCancelsPendingSync(t *testing.T) {
	remote := &fakeRemote{}
	a := NewAdapter(remote, 30*time.Millisecond, 1, nopLogger{})
	defer a.Stop()

	a.CartChanged("s1", "u1", testCart("s1", 1))

	empty := &domain.Cart{SessionID: "s1", UpdatedAt: time.Now().UTC()}
	a.CartChanged("s1", "u1", empty)

	time.Sleep(100 * time.Millisecond)
	if remote.count() != 0 {
		t.Errorf("cancelled sync still fired %d times", remote.count())
	}
}

// Мутация, пришедшая после выстрела таймера, но до начала отправки,
// замещает запись сессии; отработавший таймер замещённой записи
// не должен отправить снапшот до нового тихого периода.
func TestAdapter_ReplacedEntryIgnoresStaleTimer(t *testing.T) {
	remote := &fakeRemote{}
	a := NewAdapter(remote, time.Hour, 1, nopLogger{})
	defer a.Stop()

	a.CartChanged("s1", "u1", testCart("s1", 1))

	a.mu.Lock()
	current := a.pending["s1"]
	a.mu.Unlock()

	stale := &pendingSync{cart: testCart("s1", 99), userID: "u1"}
	stale.timer = time.NewTimer(time.Hour)
	a.fire("s1", stale)

	if remote.count() != 0 {
		t.Fatalf("stale fire flushed %d snapshots", remote.count())
	}

	a.mu.Lock()
	still := a.pending["s1"]
	a.mu.Unlock()
	if still != current {
		t.Fatal("pending entry disturbed by stale fire")
	}

	// Актуальная запись отправляется как обычно.
	current.timer.Stop()
	a.fire("s1", current)
	if remote.count() != 1 {
		t.Fatalf("current fire flushed %d snapshots, want 1", remote.count())
	}
	remote.mu.Lock()
	defer remote.mu.Unlock()
	if got := remote.snapshots[0].cart.Items[0].Quantity; got != 1 {
		t.Errorf("synced quantity = %d, want the live entry (1)", got)
	}
}

func TestAdapter_StopCancelsTimersAndWaits(t *testing.T) {
	remote := &fakeRemote{}
	a := NewAdapter(remote, 20*time.Millisecond, 1, nopLogger{})

	a.CartChanged("s1", "u1", testCart("s1", 1))
	a.Stop()

	time.Sleep(60 * time.Millisecond)
	if remote.count() != 0 {
		t.Errorf("sync fired after Stop: %d calls", remote.count())
	}

	// После остановки новые мутации игнорируются.
	a.CartChanged("s2", "u2", testCart("s2", 1))
	time.Sleep(60 * time.Millisecond)
	if remote.count() != 0 {
		t.Errorf("adapter accepted work after Stop: %d calls", remote.count())
	}
}

func TestAdapter_FailureNeverPropagates(t *testing.T) {
	remote := &fakeRemote{err: context.DeadlineExceeded}
	a := NewAdapter(remote, 10*time.Millisecond, 2, nopLogger{})
	defer a.Stop()

	// Сбой удалённого хранилища молча логируется, паники и блокировок нет.
	a.CartChanged("s1", "u1", testCart("s1", 1))
	time.Sleep(100 * time.Millisecond)
}
