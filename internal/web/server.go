// Package web serves the reconstructed balance and value series over a
// local HTTP dashboard.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mkrasov/folio/internal/domain"
	"github.com/mkrasov/folio/internal/services/valuation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type snapshotReader interface {
	LatestRun() (string, []domain.BalanceSnapshot, error)
}

type dailyPricer interface {
	FetchDaily(ctx context.Context, assets []string, days []time.Time) domain.PriceTable
}

// Server exposes the HTML UI plus JSON endpoints for the balance series
// and the USD value series.
type Server struct {
	Addr   string
	Store  snapshotReader
	Pricer dailyPricer
	Logger *zap.Logger
}

// NewServer creates a new web server instance.
func NewServer(addr string, store snapshotReader, pricer dailyPricer, logger *zap.Logger) *Server {
	return &Server{Addr: addr, Store: store, Pricer: pricer, Logger: logger}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/balances", s.handleBalances)
	mux.HandleFunc("/api/value", s.handleValue)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	snaps, ok := s.loadFiltered(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{
		"assets":    domain.Assets(snaps),
		"snapshots": snaps,
	})
}

func (s *Server) handleValue(w http.ResponseWriter, r *http.Request) {
	snaps, ok := s.loadFiltered(w, r)
	if !ok {
		return
	}

	assets := domain.Assets(snaps)
	table := s.Pricer.FetchDaily(r.Context(), assets, domain.Days(snaps))
	writeJSON(w, map[string]any{
		"assets": assets,
		"values": valuation.Valuate(snaps, table),
	})
}

// loadFiltered reads the latest reconstruction and applies the request's
// asset and date-range filters. Replies with an error status on failure.
func (s *Server) loadFiltered(w http.ResponseWriter, r *http.Request) ([]domain.BalanceSnapshot, bool) {
	if s.Store == nil {
		http.Error(w, "snapshot store not available", http.StatusServiceUnavailable)
		return nil, false
	}
	_, snaps, err := s.Store.LatestRun()
	if err != nil {
		s.Logger.Error("failed to load snapshots", zap.Error(err))
		http.Error(w, "failed to load snapshots", http.StatusInternalServerError)
		return nil, false
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return filter.apply(snaps), true
}

type seriesFilter struct {
	assets map[string]struct{}
	from   time.Time
	to     time.Time
}

func filterFromQuery(r *http.Request) (seriesFilter, error) {
	var f seriesFilter
	if raw := r.URL.Query().Get("assets"); raw != "" {
		f.assets = make(map[string]struct{})
		for _, a := range strings.Split(raw, ",") {
			f.assets[strings.ToUpper(strings.TrimSpace(a))] = struct{}{}
		}
	}

	var err error
	if raw := r.URL.Query().Get("from"); raw != "" {
		if f.from, err = time.ParseInLocation("2006-01-02", raw, time.Local); err != nil {
			return seriesFilter{}, errors.New("invalid 'from' date, want YYYY-MM-DD")
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if f.to, err = time.ParseInLocation("2006-01-02", raw, time.Local); err != nil {
			return seriesFilter{}, errors.New("invalid 'to' date, want YYYY-MM-DD")
		}
		// inclusive end of day
		f.to = f.to.Add(24*time.Hour - time.Second)
	}
	return f, nil
}

func (f seriesFilter) apply(snaps []domain.BalanceSnapshot) []domain.BalanceSnapshot {
	out := make([]domain.BalanceSnapshot, 0, len(snaps))
	for _, snap := range snaps {
		if !f.from.IsZero() && snap.Time.Before(f.from) {
			continue
		}
		if !f.to.IsZero() && snap.Time.After(f.to) {
			continue
		}
		if f.assets == nil {
			out = append(out, snap)
			continue
		}
		filtered := domain.BalanceSnapshot{
			Time:     snap.Time,
			Balances: make(map[string]decimal.Decimal, len(f.assets)),
		}
		for asset, amount := range snap.Balances {
			if _, ok := f.assets[asset]; ok {
				filtered.Balances[asset] = amount
			}
		}
		out = append(out, filtered)
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
