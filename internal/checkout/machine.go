// Package checkout drives a simulated payment through its dwell states. An
// attempt moves Processing -> Success -> Receipt on timers and ends either
// cancelled (from Processing only) or finalized (from Receipt only).
package checkout

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/afos-pos/internal/models"
)

const (
	DefaultProcessingDwell = 2500 * time.Millisecond
	DefaultSuccessDwell    = 2000 * time.Millisecond
)

// TransitionFunc observes every state change. It runs outside the attempt lock.
type TransitionFunc func(a *Attempt, from, to models.CheckoutState)

type Config struct {
	ProcessingDwell time.Duration
	SuccessDwell    time.Duration
}

type Machine struct {
	cfg          Config
	ids          *IDGenerator
	now          func() time.Time
	onTransition TransitionFunc
}

type Option func(*Machine)

func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

func WithIDGenerator(ids *IDGenerator) Option {
	return func(m *Machine) {
		m.ids = ids
	}
}

func WithTransitionHook(fn TransitionFunc) Option {
	return func(m *Machine) {
		m.onTransition = fn
	}
}

func NewMachine(cfg Config, opts ...Option) *Machine {
	if cfg.ProcessingDwell <= 0 {
		cfg.ProcessingDwell = DefaultProcessingDwell
	}

	if cfg.SuccessDwell <= 0 {
		cfg.SuccessDwell = DefaultSuccessDwell
	}

	m := &Machine{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}

	if m.ids == nil {
		m.ids = NewIDGenerator(m.now)
	}

	return m
}

type StartParams struct {
	Total  int64
	Method models.PaymentMethod
	Lines  []models.CartLine
}

// Start creates an attempt in Processing and arms its first dwell timer.
func (m *Machine) Start(p StartParams) *Attempt {
	a := &Attempt{
		machine:       m,
		state:         models.CheckoutStateProcessing,
		total:         p.Total,
		method:        p.Method,
		lines:         slices.Clone(p.Lines),
		transactionID: m.ids.TransactionID(),
		receiptID:     m.ids.ReceiptID(),
		startedAt:     m.now(),
	}

	a.mu.Lock()
	a.arm(m.cfg.ProcessingDwell, models.CheckoutStateProcessing, models.CheckoutStateSuccess)
	a.mu.Unlock()

	return a
}

// Snapshot is a consistent copy of an attempt taken under its lock.
type Snapshot struct {
	State         models.CheckoutState
	Total         int64
	Method        models.PaymentMethod
	TransactionID string
	ReceiptID     string
	StartedAt     time.Time
	Lines         []models.CartLine
}

type Attempt struct {
	machine *Machine

	mu            sync.Mutex
	state         models.CheckoutState
	total         int64
	method        models.PaymentMethod
	lines         []models.CartLine
	transactionID string
	receiptID     string
	startedAt     time.Time
	timer         *time.Timer
	closed        bool
}

// arm schedules the from -> to dwell transition. Callers hold a.mu.
func (a *Attempt) arm(dwell time.Duration, from, to models.CheckoutState) {
	a.timer = time.AfterFunc(dwell, func() {
		a.advance(from, to)
	})
}

func (a *Attempt) advance(from, to models.CheckoutState) {
	a.mu.Lock()
	if a.closed || a.state != from {
		a.mu.Unlock()
		return
	}

	a.state = to
	a.timer = nil
	if to == models.CheckoutStateSuccess {
		a.arm(a.machine.cfg.SuccessDwell, models.CheckoutStateSuccess, models.CheckoutStateReceipt)
	}
	a.mu.Unlock()

	a.notify(from, to)
}

func (a *Attempt) notify(from, to models.CheckoutState) {
	if a.machine.onTransition != nil {
		a.machine.onTransition(a, from, to)
	}
}

func (a *Attempt) stopTimer() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *Attempt) State() models.CheckoutState {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

// Active reports whether the attempt still holds the cart, i.e. it is neither
// terminal nor torn down.
func (a *Attempt) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return !a.closed && !a.state.IsTerminal()
}

func (a *Attempt) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.snapshotLocked()
}

func (a *Attempt) snapshotLocked() Snapshot {
	return Snapshot{
		State:         a.state,
		Total:         a.total,
		Method:        a.method,
		TransactionID: a.transactionID,
		ReceiptID:     a.receiptID,
		StartedAt:     a.startedAt,
		Lines:         slices.Clone(a.lines),
	}
}

// Cancel abandons the attempt. Only an attempt still in Processing can be
// cancelled; its pending timer is stopped so Success never fires.
func (a *Attempt) Cancel() error {
	a.mu.Lock()

	if a.closed {
		a.mu.Unlock()
		return ErrAttemptClosed
	}

	from := a.state
	if !from.CanTransitionTo(models.CheckoutStateCancelled) {
		a.mu.Unlock()
		return &TransitionError{From: from, To: models.CheckoutStateCancelled}
	}

	a.stopTimer()
	a.state = models.CheckoutStateCancelled
	a.transactionID = ""
	a.mu.Unlock()

	a.notify(from, models.CheckoutStateCancelled)

	return nil
}

// Close tears the attempt down without a transition. Pending timers are
// stopped and later Cancel or Finalize calls fail with ErrAttemptClosed.
func (a *Attempt) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopTimer()
	a.closed = true
}

// CommitFunc performs the side effects of finalizing. It sees the attempt
// exactly as it was in Receipt.
type CommitFunc func(ctx context.Context, snap Snapshot) error

// Finalize runs commit while holding the attempt lock and moves to finalized
// only when commit succeeds. On error the attempt stays in Receipt so the
// caller can retry.
func (a *Attempt) Finalize(ctx context.Context, commit CommitFunc) error {
	a.mu.Lock()

	if a.closed {
		a.mu.Unlock()
		return ErrAttemptClosed
	}

	from := a.state
	if !from.CanTransitionTo(models.CheckoutStateFinalized) {
		a.mu.Unlock()
		return &TransitionError{From: from, To: models.CheckoutStateFinalized}
	}

	if commit != nil {
		if err := commit(ctx, a.snapshotLocked()); err != nil {
			a.mu.Unlock()
			return err
		}
	}

	a.state = models.CheckoutStateFinalized
	a.mu.Unlock()

	a.notify(from, models.CheckoutStateFinalized)

	return nil
}
