// Command papertrade runs the simulated trading desk: a synthetic price feed,
// one demo portfolio, an order execution simulator with a WAL-backed trade
// ledger and a heuristic decision advisor, all exposed over a small HTTP
// dashboard.
//
// Usage:
//
//	papertrade --config config.yaml
//	papertrade (uses CLI arguments)
//	papertrade --setup (interactive configuration wizard)
package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/papertrade/papertrade/config"
	"github.com/papertrade/papertrade/internal/advisor"
	"github.com/papertrade/papertrade/internal/broker"
	"github.com/papertrade/papertrade/internal/catalog"
	"github.com/papertrade/papertrade/internal/feed"
	"github.com/papertrade/papertrade/internal/ledger"
	"github.com/papertrade/papertrade/internal/services"
	"github.com/papertrade/papertrade/internal/setup"
	"github.com/papertrade/papertrade/internal/storage/trades"
	"github.com/papertrade/papertrade/internal/web"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--setup" {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	cat, err := catalog.New(catalog.DefaultInstruments())
	if err != nil {
		logger.Fatal("failed to seed catalog", zap.Error(err))
	}

	priceFeed := feed.New(cat, rnd, logger)

	tradeStore, err := trades.NewWALStore(cfg.WalDir)
	if err != nil {
		logger.Fatal("failed to open trade WAL", zap.Error(err))
	}
	defer tradeStore.Close()

	book := ledger.New(tradeStore, logger)
	stored, err := tradeStore.All()
	if err != nil {
		logger.Fatal("failed to replay trade WAL", zap.Error(err))
	}
	if len(stored) > 0 {
		book.Restore(stored)
	} else {
		book.Restore(services.DemoTrades(time.Now()))
	}

	portfolio := services.DemoPortfolio()
	portfolio.Balance = cfg.Balance

	exec, err := broker.New(cat, portfolio, book, rnd, logger)
	if err != nil {
		logger.Fatal("failed to create broker", zap.Error(err))
	}

	adv, err := advisor.New(cat, rnd, logger)
	if err != nil {
		logger.Fatal("failed to create advisor", zap.Error(err))
	}
	opt, err := advisor.NewOptimizer(cat, rnd, logger)
	if err != nil {
		logger.Fatal("failed to create optimizer", zap.Error(err))
	}

	desk, err := services.NewDesk(cat, priceFeed, exec, book, adv, opt, logger)
	if err != nil {
		logger.Fatal("failed to create desk", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(cfg.WebAddr, desk, logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if len(cfg.TLSDomains) > 0 {
			return server.StartWithAutoTLS(ctx, cfg.TLSDomains, cfg.CertCacheDir)
		}
		return server.Start(ctx)
	})

	// the engine never owns a timer: the refresh cadence lives here, in the
	// caller, driving the pull-based feed.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.PollPriceInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if _, err := desk.ListQuotes(ctx); err != nil {
					logger.Warn("quote refresh failed", zap.Error(err))
				}
			}
		}
	})

	logger.Info("papertrade started",
		zap.String("addr", cfg.WebAddr),
		zap.Duration("poll_interval", cfg.PollPriceInterval),
		zap.Int64("seed", seed))

	if err := g.Wait(); err != nil {
		logger.Fatal("papertrade stopped", zap.Error(err))
	}
}
