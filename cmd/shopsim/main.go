// Command shopsim runs the potion shop economy simulation.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/potion-shop/internal/api"
	"github.com/talgya/potion-shop/internal/config"
	"github.com/talgya/potion-shop/internal/engine"
	"github.com/talgya/potion-shop/internal/persistence"
	"github.com/talgya/potion-shop/internal/planner"
	"github.com/talgya/potion-shop/internal/shop"
)

// Starting state for a fresh shop: one rack, one shelf, a little coin,
// and a few ml of each fluid to bottle the first day with.
const (
	startingCurrency = 800
	startingRawMl    = 2000
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	dbPath := envOr("SHOPSIM_DB", "data/shop.db")
	apiPort := envInt("SHOPSIM_PORT", 8080)
	seed := int64(envInt("SHOPSIM_SEED", 42))
	adminKey := os.Getenv("SHOPSIM_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("SHOPSIM_ADMIN_KEY not set — admin POST endpoints will be disabled")
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	// ── Shop ──────────────────────────────────────────────────────────
	p := planner.New(config.ItemDefinitions(), logger)
	sh := engine.NewShop(p, seed)

	if db.HasState() {
		slog.Info("found saved shop state, loading...")
		saved, err := db.LoadState()
		if err != nil {
			slog.Error("failed to load shop state", "error", err)
			os.Exit(1)
		}
		sh.Currency = saved.Snapshot.Currency
		sh.RawMl = saved.Snapshot.RawMl
		sh.FinishedGoods = saved.Snapshot.FinishedGoods
		sh.RawCapacityUnits = saved.Snapshot.RawCapacityUnits
		sh.GoodsCapacityUnits = saved.Snapshot.GoodsCapacityUnits
		sh.Stats = saved.Stats
		sh.LastTick = saved.LastTick
		slog.Info("shop state restored",
			"tick", saved.LastTick,
			"time", engine.ShopTime(saved.LastTick),
			"coins", sh.Currency,
		)
	} else {
		slog.Info("no saved state found, opening a new shop")
		sh.Currency = startingCurrency
		sh.RawCapacityUnits = 1
		sh.GoodsCapacityUnits = 1
		for _, c := range shop.Colors() {
			sh.RawMl[c] = startingRawMl
		}
		if err := db.SaveShopState(sh); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.Tick = sh.LastTick

	eng.OnDay = func(tick uint64) error {
		result, err := sh.TickDay(tick)
		if err != nil {
			return err
		}
		if err := db.ApplyTick(sh, result); err != nil {
			slog.Error("tick commit failed", "tick", tick, "error", err)
		}
		return nil
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	apiServer := &api.Server{
		Shop:     sh,
		Eng:      eng,
		DB:       db,
		Port:     apiPort,
		AdminKey: adminKey,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	snap := sh.Snapshot()
	fmt.Printf("\nThe shop is open: %s coins, %s ml of fluid in the cellar, %d bottles on the shelf.\n",
		humanize.Comma(int64(snap.Currency)),
		humanize.Comma(int64(snap.RawStockMl())),
		snap.FinishedTotal(),
	)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", apiPort)
	if sh.LastTick > 0 {
		fmt.Printf("Resuming from tick %d (%s)\n", sh.LastTick, engine.ShopTime(sh.LastTick))
	}
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	eng.Run()

	// Final save on shutdown.
	slog.Info("final save...")
	if err := db.SaveShopState(sh); err != nil {
		slog.Error("final save failed", "error", err)
	}

	fmt.Printf("Simulation stopped after %s ticks. Lifetime revenue: %s coins.\n",
		humanize.Comma(int64(sh.LastTick)),
		humanize.Comma(int64(sh.Stats.LifetimeRevenue)),
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
