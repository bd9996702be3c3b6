// Package api provides the HTTP surface over the shop state.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/talgya/potion-shop/internal/engine"
	"github.com/talgya/potion-shop/internal/persistence"
	"github.com/talgya/potion-shop/internal/shop"
)

// Server serves the shop state over HTTP.
type Server struct {
	Shop     *engine.Shop
	Eng      *engine.Engine
	DB       *persistence.DB
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/inventory", s.handleInventory)
	mux.HandleFunc("/api/v1/catalog", s.handleCatalog)
	mux.HandleFunc("/api/v1/plan/latest", s.handleLatestPlan)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// adminOnly wraps a handler with bearer token auth. POST is disabled
// entirely when no admin key is configured.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" || r.Header.Get("Authorization") != "Bearer "+s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Shop.Snapshot()
	tick, _ := s.Shop.Latest()
	writeJSON(w, map[string]any{
		"tick":        tick,
		"time":        engine.ShopTime(tick),
		"speed":       s.Eng.Speed,
		"coins":       snap.Currency,
		"shelf_stock": snap.FinishedTotal(),
		"cellar_ml":   snap.RawStockMl(),
		"racks":       snap.RawCapacityUnits,
		"shelves":     snap.GoodsCapacityUnits,
		"stats":       s.Shop.Stats,
	})
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	snap := s.Shop.Snapshot()

	raw := make(map[string]int, shop.NumColors)
	for _, c := range shop.Colors() {
		raw[c.String()] = snap.RawMl[c]
	}

	writeJSON(w, map[string]any{
		"coins":            snap.Currency,
		"raw_ml":           raw,
		"finished_goods":   snap.FinishedGoods,
		"rack_capacity_ml": snap.RawCapacityMl(),
		"shelf_capacity":   snap.GoodsCapacityUnits * shop.BottlesPerShelfUnit,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	_, res := s.Shop.Latest()
	if res == nil {
		writeJSON(w, []shop.CatalogEntry{})
		return
	}
	writeJSON(w, res.Catalog)
}

func (s *Server) handleLatestPlan(w http.ResponseWriter, r *http.Request) {
	_, res := s.Shop.Latest()
	if res == nil {
		http.Error(w, "no plan yet", http.StatusNotFound)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	events, err := s.DB.RecentEvents(limit)
	if err != nil {
		http.Error(w, "failed to read events", http.StatusInternalServerError)
		return
	}
	writeJSON(w, events)
}

// handleSpeed sets the engine speed: {"speed": 2.0}. Zero pauses.
func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Speed < 0 || req.Speed > 60 {
		http.Error(w, "speed out of range", http.StatusBadRequest)
		return
	}
	s.Eng.Speed = req.Speed
	slog.Info("engine speed changed", "speed", req.Speed)
	writeJSON(w, map[string]any{"speed": req.Speed})
}
