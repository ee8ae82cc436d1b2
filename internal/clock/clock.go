// Package clock provides the interfaces.Clock port implementations: a real
// wall-clock for production wiring and a fake clock for deterministic tests
// of the Config Store's timestamps and the Update Manager's check-interval
// throttling.
package clock

import (
	"sync"
	"time"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

// Real returns the system wall clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fake is a settable clock for tests. Zero value starts at the zero
// time.Time (January 1, year 1, UTC).
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake creates a Fake clock set to the given time.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Set pins the fake clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

var (
	_ interfaces.Clock = Real{}
	_ interfaces.Clock = (*Fake)(nil)
)
