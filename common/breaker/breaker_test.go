package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func failingOp() error { return errBoom }
func okOp() error      { return nil }

func TestDo_PassesThroughWhileClosed(t *testing.T) {
	b := New(Settings{Name: "inventory"})

	called := false
	err := b.Do(func() error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, StateClosed, b.State())
}

func TestDo_OpensAfterConsecutiveFailures(t *testing.T) {
	b := New(Settings{Name: "inventory", FailureThreshold: 5, ResetTimeout: time.Minute})

	for i := 0; i < 5; i++ {
		err := b.Do(failingOp)
		assert.ErrorIs(t, err, errBoom)
	}
	assert.Equal(t, StateOpen, b.State())

	// The 6th call fails fast without invoking the operation.
	called := false
	err := b.Do(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestDo_SuccessResetsFailureCount(t *testing.T) {
	b := New(Settings{Name: "customers", FailureThreshold: 3, ResetTimeout: time.Minute})

	assert.Error(t, b.Do(failingOp))
	assert.Error(t, b.Do(failingOp))
	assert.NoError(t, b.Do(okOp))
	assert.Error(t, b.Do(failingOp))
	assert.Error(t, b.Do(failingOp))

	// Four failures total but never three in a row.
	assert.Equal(t, StateClosed, b.State())
}

func TestDo_HalfOpenProbeSuccessCloses(t *testing.T) {
	b := New(Settings{Name: "inventory", FailureThreshold: 1, ResetTimeout: 20 * time.Millisecond})

	assert.Error(t, b.Do(failingOp))
	assert.Equal(t, StateOpen, b.State())

	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, b.State())

	assert.NoError(t, b.Do(okOp))
	assert.Equal(t, StateClosed, b.State())
}

func TestDo_HalfOpenProbeFailureReopens(t *testing.T) {
	b := New(Settings{Name: "inventory", FailureThreshold: 1, ResetTimeout: 20 * time.Millisecond})

	assert.Error(t, b.Do(failingOp))
	time.Sleep(25 * time.Millisecond)

	assert.ErrorIs(t, b.Do(failingOp), errBoom)
	assert.Equal(t, StateOpen, b.State())

	// Reopened with a fresh timestamp: still fast-failing.
	assert.ErrorIs(t, b.Do(okOp), ErrOpen)
}

func TestDo_EmitsTransitionEvents(t *testing.T) {
	type event struct {
		name     string
		from, to State
	}
	var events []event

	b := New(Settings{
		Name:             "inventory",
		FailureThreshold: 2,
		ResetTimeout:     20 * time.Millisecond,
		OnStateChange: func(name string, from, to State) {
			events = append(events, event{name, from, to})
		},
	})

	assert.Error(t, b.Do(failingOp))
	assert.Error(t, b.Do(failingOp))
	time.Sleep(25 * time.Millisecond)
	assert.NoError(t, b.Do(okOp))

	assert.Equal(t, []event{
		{"inventory", StateClosed, StateOpen},
		{"inventory", StateOpen, StateHalfOpen},
		{"inventory", StateHalfOpen, StateClosed},
	}, events)
}

func TestDefaults(t *testing.T) {
	b := New(Settings{Name: "inventory"})
	assert.Equal(t, DefaultFailureThreshold, b.threshold)
	assert.Equal(t, DefaultResetTimeout, b.resetTimeout)
}
