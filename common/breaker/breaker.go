// Package breaker implements a per-dependency circuit breaker. Each outbound
// dependency of a service gets its own Breaker so a degraded downstream
// fast-fails only its own calls.
package breaker

import (
	"errors"
	"sync"
	"time"
)

// State is the breaker's position in the Closed -> Open -> HalfOpen cycle.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrOpen is returned without attempting the call while the breaker is open.
var ErrOpen = errors.New("circuit breaker is open")

const (
	DefaultFailureThreshold = 5
	DefaultResetTimeout     = 60 * time.Second
)

// Settings configures a Breaker.
type Settings struct {
	// Name identifies the guarded dependency in transition events.
	Name string
	// FailureThreshold is the count of consecutive failures that opens the
	// breaker. Defaults to 5.
	FailureThreshold int
	// ResetTimeout is how long the breaker stays open before allowing a
	// single probe call. Defaults to 60s.
	ResetTimeout time.Duration
	// OnStateChange is invoked on every transition. May be nil.
	OnStateChange func(name string, from, to State)
}

// Breaker tracks consecutive failures of one downstream dependency and
// fast-fails calls while the dependency is considered degraded.
type Breaker struct {
	name          string
	threshold     int
	resetTimeout  time.Duration
	onStateChange func(name string, from, to State)

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

// New creates a Breaker in the closed state.
func New(settings Settings) *Breaker {
	threshold := settings.FailureThreshold
	if threshold <= 0 {
		threshold = DefaultFailureThreshold
	}
	resetTimeout := settings.ResetTimeout
	if resetTimeout <= 0 {
		resetTimeout = DefaultResetTimeout
	}
	return &Breaker{
		name:          settings.Name,
		threshold:     threshold,
		resetTimeout:  resetTimeout,
		onStateChange: settings.OnStateChange,
		state:         StateClosed,
	}
}

// Name returns the dependency name this breaker guards.
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state, promoting Open to HalfOpen once the reset
// timeout has elapsed.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && time.Since(b.openedAt) >= b.resetTimeout {
		return StateHalfOpen
	}
	return b.state
}

// Do runs op under the breaker. While open it returns ErrOpen without
// invoking op. After the reset timeout exactly one caller is let through as
// a probe; its outcome decides whether the breaker closes or re-opens.
// Any error returned by op counts as a failure.
func (b *Breaker) Do(op func() error) error {
	if err := b.beforeCall(); err != nil {
		return err
	}

	err := op()
	b.afterCall(err)
	return err
}

func (b *Breaker) beforeCall() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return nil
	case StateOpen:
		if time.Since(b.openedAt) < b.resetTimeout {
			return ErrOpen
		}
		b.transition(StateHalfOpen)
		b.probing = true
		return nil
	case StateHalfOpen:
		// Only one probe in flight at a time.
		if b.probing {
			return ErrOpen
		}
		b.probing = true
		return nil
	}
	return nil
}

func (b *Breaker) afterCall(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen {
		b.probing = false
		if err != nil {
			b.openedAt = time.Now()
			b.failures = b.threshold
			b.transition(StateOpen)
			return
		}
		b.failures = 0
		b.transition(StateClosed)
		return
	}

	if err != nil {
		b.failures++
		if b.failures >= b.threshold && b.state == StateClosed {
			b.openedAt = time.Now()
			b.transition(StateOpen)
		}
		return
	}
	b.failures = 0
}

// transition must be called with the mutex held.
func (b *Breaker) transition(to State) {
	from := b.state
	if from == to {
		return
	}
	b.state = to
	if b.onStateChange != nil {
		b.onStateChange(b.name, from, to)
	}
}
