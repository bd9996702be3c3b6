// Package planner is the shop's planning engine: strategy resolution,
// production (bottling) planning, wholesale barrel purchasing, capacity
// upgrades, and sale catalog assembly. Every planner is a pure function of
// the inventory snapshot and static tables it is handed; the package holds
// no mutable state and may be called concurrently for independent snapshots.
package planner

import (
	"log/slog"

	"github.com/talgya/potion-shop/internal/shop"
)

// Planner carries the static item catalog and an injected logger shared by
// all planning calls.
type Planner struct {
	items map[string]shop.ItemDefinition
	log   *slog.Logger
}

// New creates a Planner over the given item catalog. A nil logger falls
// back to slog.Default.
func New(items map[string]shop.ItemDefinition, log *slog.Logger) *Planner {
	if log == nil {
		log = slog.Default()
	}
	return &Planner{items: items, log: log}
}

// floorBatch rounds a quantity down to a multiple of the batch unit.
func floorBatch(qty, batchUnit int) int {
	return qty / batchUnit * batchUnit
}

// ceilDiv returns ceil(a/b) for positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
