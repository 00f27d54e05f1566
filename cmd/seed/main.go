// Command seed inserts the demo pipeline into the configured deal store.
// It is intended for fresh environments; running it twice inserts the
// sample deals twice.
//
// Flags:
//
//	--dry-run  print what would be inserted without writing
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/prismcrm/prism-backend/internal/adapter/localstore"
	"github.com/prismcrm/prism-backend/internal/adapter/postgres"
	dealrepo "github.com/prismcrm/prism-backend/internal/adapter/postgres/deal"
	"github.com/prismcrm/prism-backend/internal/app"
	"github.com/prismcrm/prism-backend/internal/config"
	"github.com/prismcrm/prism-backend/internal/service/deal"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "print what would be inserted without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	deals := localstore.SampleDeals(time.Now())
	for i := range deals {
		d := &deals[i]
		if *dryRun {
			logger.Info("would insert deal",
				slog.String("title", d.Title),
				slog.String("stage", d.Stage.String()),
			)
			continue
		}

		created, err := store.Create(ctx, d)
		if err != nil {
			logger.Error("insert deal",
				slog.String("title", d.Title),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		logger.Info("inserted deal",
			slog.String("id", created.ID.String()),
			slog.String("title", created.Title),
		)
	}

	logger.Info("seed complete", slog.Int("deals", len(deals)))
}

func openStore(ctx context.Context, cfg *config.Config) (deal.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		s, err := localstore.New(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	default:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return dealrepo.New(pool), pool.Close, nil
	}
}
