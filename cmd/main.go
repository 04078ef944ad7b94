// Command folio reconstructs a Binance spot portfolio's balance history
// from its trade history and serves it as a time series.
//
// Usage:
//
//	folio -config config.yaml setup     interactive config wizard
//	folio -config config.yaml sync      fetch trades, update ledger, rebuild history
//	folio -config config.yaml report    current spot account value
//	folio -config config.yaml serve     local web dashboard
//
// BINANCE_API_KEY and BINANCE_API_SECRET override the credentials in the
// config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mkrasov/folio/config"
	"github.com/mkrasov/folio/internal"
	"github.com/mkrasov/folio/internal/clients"
	"github.com/mkrasov/folio/internal/services/account"
	"github.com/mkrasov/folio/internal/services/fetcher"
	"github.com/mkrasov/folio/internal/services/pricer"
	"github.com/mkrasov/folio/internal/services/symbols"
	"github.com/mkrasov/folio/internal/setup"
	"github.com/mkrasov/folio/internal/storage/ledger"
	"github.com/mkrasov/folio/internal/storage/snapshots"
	"github.com/mkrasov/folio/internal/storage/symbolcache"
	"github.com/mkrasov/folio/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to yaml config")
	cached := flag.Bool("cached", true, "use the cached symbol universe when present")
	startStr := flag.String("start", "", "override history start date (YYYY-MM-DD)")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "sync"
	}

	if command == "setup" {
		if err := setup.RunTUI(*configPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *startStr != "" {
		cfg.Start, err = time.Parse("2006-01-02", *startStr)
		if err != nil {
			log.Fatalf("invalid -start: %v", err)
		}
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	client := clients.NewBinanceClient(cfg.APIKey, cfg.APISecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "sync":
		snapStore, err := snapshots.NewWALStore(cfg.SnapshotDir())
		if err != nil {
			log.Fatal(err)
		}
		defer snapStore.Close()

		resolver := symbols.NewResolver(
			symbols.NewBinanceExchangeInfo(client),
			symbolcache.NewStore(cfg.SymbolCachePath()),
			cfg.QuoteAssets,
			logger,
		)
		tracker := internal.NewTracker(
			resolver,
			fetcher.NewFetcher(fetcher.NewBinanceTradeSource(client, logger), logger),
			ledger.NewCSVStore(cfg.LedgerPath()),
			snapStore,
			cfg.QuoteAssets,
			logger,
		)

		result, err := tracker.Sync(ctx, *cached, cfg.Start)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("synced %d trades across %d symbols, ledger now %d records, %d snapshots\n",
			result.Fetched, result.Symbols, result.LedgerSize, len(result.Snapshots))

	case "report":
		valuer := account.NewValuer(
			account.NewBinanceBalanceSource(client),
			pricer.NewBinanceSpotPricer(client),
			cfg.QuoteAssets[0],
		)
		report, err := valuer.Value(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(account.Render(report, cfg.QuoteAssets[0]))

	case "serve":
		snapStore, err := snapshots.NewWALStore(cfg.SnapshotDir())
		if err != nil {
			log.Fatal(err)
		}
		defer snapStore.Close()

		daily := pricer.NewDailyPricer(pricer.NewBinanceDailyClose(client), cfg.QuoteAssets[0], logger)
		server := web.NewServer(cfg.Listen, snapStore, daily, logger)

		logger.Info("dashboard listening", zap.String("addr", cfg.Listen))
		if err := server.Start(ctx); err != nil {
			log.Fatal(err)
		}

	default:
		log.Fatalf("unknown command %q (want setup, sync, report or serve)", command)
	}
}
