// Package leaktest detects goroutines left behind by a test. The
// connection pool and the resilient event publisher both spawn background
// goroutines; their tests snapshot the count up front and verify it
// settles back after shutdown.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleInterval = 10 * time.Millisecond
	settleDeadline = 1 * time.Second
)

// GoroutineChecker holds the goroutine count snapshot taken at
// construction time.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count. Call it before
// starting the code under test.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleInterval)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test when more than tolerance goroutines outlive the
// snapshot. The count is polled until it settles or a deadline passes, so
// goroutines that are mid-exit do not trip the check.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(settleDeadline)
	leaked := runtime.NumGoroutine() - g.before
	for leaked > tolerance && time.Now().Before(deadline) {
		runtime.Gosched()
		runtime.GC()
		time.Sleep(settleInterval)
		leaked = runtime.NumGoroutine() - g.before
	}

	if leaked > tolerance {
		g.t.Errorf("goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, g.before+leaked, leaked, tolerance)
	}
}
