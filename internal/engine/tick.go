// Package engine drives the shop simulation: a daily tick loop around the
// planning engine, plus the mutable shop state the plans are applied to.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/talgya/potion-shop/internal/shop"
)

// Engine advances the shop one day per tick.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic, never resets)
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval (default 1 second)
	Running  bool

	// OnDay runs once per tick. A non-nil error stops the loop — the
	// planning cycle only errors on config lookup failures and invariant
	// violations, both of which are bugs rather than shop conditions.
	OnDay func(tick uint64) error
}

// NewEngine creates a simulation engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: time.Second,
	}
}

// Run starts the tick loop. Blocks until Stop is called or a tick fails.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("shop engine started", "tick", e.Tick, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.Tick++
		if e.OnDay != nil {
			if err := e.OnDay(e.Tick); err != nil {
				slog.Error("tick failed, stopping engine", "tick", e.Tick, "error", err)
				e.Running = false
				break
			}
		}

		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("shop engine stopped", "tick", e.Tick)
}

// Stop halts the tick loop.
func (e *Engine) Stop() {
	e.Running = false
}

// ShopTime returns a human-readable shop calendar string for a tick.
func ShopTime(tick uint64) string {
	week := tick/shop.DaysPerWeek + 1
	return fmt.Sprintf("Week %d, %s", week, shop.DayOfTick(tick))
}
