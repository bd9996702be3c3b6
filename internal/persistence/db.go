// Package persistence provides SQLite-based shop state storage and the
// per-tick ledger. A tick's plans are committed in a single transaction so
// concurrent observers never see a half-applied day.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/potion-shop/internal/engine"
	"github.com/talgya/potion-shop/internal/shop"
)

// DB wraps a SQLite connection for shop state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shop_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		currency INTEGER NOT NULL,
		raw_capacity_units INTEGER NOT NULL,
		goods_capacity_units INTEGER NOT NULL,
		stats_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS raw_stock (
		color TEXT PRIMARY KEY,
		ml INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS finished_goods (
		sku TEXT PRIMARY KEY,
		quantity INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS production_ledger (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		plan_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		sku TEXT NOT NULL,
		quantity INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS purchase_ledger (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		plan_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		offer_sku TEXT NOT NULL,
		color TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price_per_unit INTEGER NOT NULL,
		ml_per_unit INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS capacity_ledger (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		plan_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		raw_units INTEGER NOT NULL,
		goods_units INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shop_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
	CREATE INDEX IF NOT EXISTS idx_production_tick ON production_ledger(tick);
	CREATE INDEX IF NOT EXISTS idx_purchase_tick ON purchase_ledger(tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SavedState is the persisted shop state loaded at startup.
type SavedState struct {
	Snapshot shop.InventorySnapshot
	Stats    engine.ShopStats
	LastTick uint64
}

// HasState reports whether a saved shop exists in this database.
func (db *DB) HasState() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM shop_state"); err != nil {
		return false
	}
	return count > 0
}

// saveStateTx replaces the state tables inside an open transaction.
func saveStateTx(tx *sqlx.Tx, snap shop.InventorySnapshot, stats engine.ShopStats) error {
	statsJSON, _ := json.Marshal(stats)
	if _, err := tx.Exec(`INSERT OR REPLACE INTO shop_state
		(id, currency, raw_capacity_units, goods_capacity_units, stats_json)
		VALUES (1, ?, ?, ?, ?)`,
		snap.Currency, snap.RawCapacityUnits, snap.GoodsCapacityUnits, string(statsJSON),
	); err != nil {
		return fmt.Errorf("save shop state: %w", err)
	}

	for _, c := range shop.Colors() {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO raw_stock (color, ml) VALUES (?, ?)",
			c.String(), snap.RawMl[c],
		); err != nil {
			return fmt.Errorf("save raw stock %s: %w", c, err)
		}
	}

	if _, err := tx.Exec("DELETE FROM finished_goods"); err != nil {
		return err
	}
	for sku, qty := range snap.FinishedGoods {
		if qty <= 0 {
			continue
		}
		if _, err := tx.Exec(
			"INSERT INTO finished_goods (sku, quantity) VALUES (?, ?)",
			sku, qty,
		); err != nil {
			return fmt.Errorf("save finished goods %s: %w", sku, err)
		}
	}
	return nil
}

// SaveShopState performs a full save of the shop's current state.
func (db *DB) SaveShopState(sh *engine.Shop) error {
	snap := sh.Snapshot()
	slog.Info("saving shop state",
		"coins", snap.Currency, "skus", len(snap.FinishedGoods), "tick", sh.LastTick)

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveStateTx(tx, snap, sh.Stats); err != nil {
		return err
	}
	if err := saveMetaTx(tx, "last_tick", fmt.Sprintf("%d", sh.LastTick)); err != nil {
		return err
	}
	return tx.Commit()
}

// ApplyTick commits one planning cycle: the post-application shop state,
// the tick's ledger rows (sharing one plan ID), and its events — all in a
// single transaction.
func (db *DB) ApplyTick(sh *engine.Shop, res *engine.TickResult) error {
	planID := uuid.NewString()

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveStateTx(tx, sh.Snapshot(), sh.Stats); err != nil {
		return err
	}

	for _, entry := range res.Bottling {
		if _, err := tx.Exec(
			"INSERT INTO production_ledger (plan_id, tick, sku, quantity) VALUES (?, ?, ?, ?)",
			planID, res.Tick, entry.SKU, entry.Quantity,
		); err != nil {
			return fmt.Errorf("insert production %s: %w", entry.SKU, err)
		}
	}

	for _, order := range res.Purchases {
		if _, err := tx.Exec(`INSERT INTO purchase_ledger
			(plan_id, tick, offer_sku, color, quantity, price_per_unit, ml_per_unit)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			planID, res.Tick, order.OfferSKU, order.Color.String(),
			order.Quantity, order.PricePerUnit, order.RawMlPerUnit,
		); err != nil {
			return fmt.Errorf("insert purchase %s: %w", order.OfferSKU, err)
		}
	}

	if res.Upgrade.RawUnits > 0 || res.Upgrade.GoodsUnits > 0 {
		if _, err := tx.Exec(
			"INSERT INTO capacity_ledger (plan_id, tick, raw_units, goods_units) VALUES (?, ?, ?, ?)",
			planID, res.Tick, res.Upgrade.RawUnits, res.Upgrade.GoodsUnits,
		); err != nil {
			return fmt.Errorf("insert capacity purchase: %w", err)
		}
	}

	for _, e := range res.Events {
		if _, err := tx.Exec(
			"INSERT INTO events (tick, description, category) VALUES (?, ?, ?)",
			e.Tick, e.Description, e.Category,
		); err != nil {
			return err
		}
	}

	if err := saveMetaTx(tx, "last_tick", fmt.Sprintf("%d", res.Tick)); err != nil {
		return err
	}
	if err := saveMetaTx(tx, "last_plan_id", planID); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadState restores the saved shop state.
func (db *DB) LoadState() (*SavedState, error) {
	var row struct {
		Currency           int    `db:"currency"`
		RawCapacityUnits   int    `db:"raw_capacity_units"`
		GoodsCapacityUnits int    `db:"goods_capacity_units"`
		StatsJSON          string `db:"stats_json"`
	}
	if err := db.conn.Get(&row,
		"SELECT currency, raw_capacity_units, goods_capacity_units, stats_json FROM shop_state WHERE id = 1",
	); err != nil {
		return nil, fmt.Errorf("load shop state: %w", err)
	}

	state := &SavedState{
		Snapshot: shop.InventorySnapshot{
			Currency:           row.Currency,
			RawCapacityUnits:   row.RawCapacityUnits,
			GoodsCapacityUnits: row.GoodsCapacityUnits,
			FinishedGoods:      make(map[string]int),
		},
	}
	if err := json.Unmarshal([]byte(row.StatsJSON), &state.Stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}

	for _, c := range shop.Colors() {
		var ml int
		err := db.conn.Get(&ml, "SELECT ml FROM raw_stock WHERE color = ?", c.String())
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load raw stock %s: %w", c, err)
		}
		state.Snapshot.RawMl[c] = ml
	}

	rows, err := db.conn.Queryx("SELECT sku, quantity FROM finished_goods")
	if err != nil {
		return nil, fmt.Errorf("load finished goods: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sku string
		var qty int
		if err := rows.Scan(&sku, &qty); err != nil {
			return nil, err
		}
		state.Snapshot.FinishedGoods[sku] = qty
	}

	if tickStr, err := db.GetMeta("last_tick"); err == nil {
		fmt.Sscanf(tickStr, "%d", &state.LastTick)
	}
	return state, nil
}

func saveMetaTx(tx *sqlx.Tx, key, value string) error {
	_, err := tx.Exec(
		"INSERT OR REPLACE INTO shop_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// SaveMeta stores a key-value pair in shop metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO shop_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM shop_meta WHERE key = ?", key)
	return value, err
}

// RecentEvents returns the most recent N events.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT tick, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}
