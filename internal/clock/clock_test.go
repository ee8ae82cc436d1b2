package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReal_Now(t *testing.T) {
	before := time.Now()
	got := Real{}.Now()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestFake_AdvanceAndSet(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)
	assert.Equal(t, start, f.Now())

	f.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), f.Now())

	pinned := time.Date(2030, 5, 5, 5, 5, 5, 0, time.UTC)
	f.Set(pinned)
	assert.Equal(t, pinned, f.Now())
}
