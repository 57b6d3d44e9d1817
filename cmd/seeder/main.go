package main

import (
	"context"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_ledger/internal/adapters/ledgerapi"
	"hotel_ledger/internal/adapters/observability"
	"hotel_ledger/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	plan := shared.DefaultSeed()
	if cfg.SeedFile != "" {
		p, err := shared.LoadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Msg("load seed failed")
		}
		plan = p
	}

	log.Info().
		Str("base", cfg.LedgerBase).
		Int("workers", cfg.SeedWorkers).
		Int("hotels", len(plan.Hotels)).
		Msg("seeder starting")

	client, err := ledgerapi.New(cfg.LedgerBase, cfg.SeedRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize ledger client")
	}

	workers := cfg.SeedWorkers
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)

	for _, h := range plan.Hotels {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("seeding interrupted")
			break
		}

		wg.Add(1)
		go func(h shared.SeedHotel) {
			defer wg.Done()
			defer sem.Release(1)

			if err := client.SeedHotel(ctx, h); err != nil {
				failed.Add(1)
				log.Warn().Str("hotel", h.Name).Err(err).Msg("seed failed")
				return
			}
			log.Info().Str("hotel", h.Name).Int("rooms", len(h.Rooms)).Msg("seed ok")
		}(h)
	}

	wg.Wait()
	if n := failed.Load(); n > 0 {
		log.Fatal().Int32("failed", n).Msg("seeding finished with errors")
	}
	log.Info().Msg("seeding completed")
}
