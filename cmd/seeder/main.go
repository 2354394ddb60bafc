package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"travelassist/internal/adapters/observability"
	"travelassist/internal/shared"
	mysqlrepo "travelassist/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "seeder")

	log.Info().
		Int("places", len(shared.SeedPlaces)).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	// An already-populated database is left alone.
	count, err := repo.CountPlaces(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("place count failed")
	}
	if count > 0 {
		log.Info().Int64("existing", count).Msg("places already present, nothing to do")
		return
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, sp := range shared.SeedPlaces {
		sp := sp

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(sp shared.SeedPlace) {
			defer wg.Done()
			defer sem.Release(int64(1))

			p, err := repo.UpsertPlace(ctx, sp.Place)
			if err != nil {
				log.Warn().Str("name", sp.Place.Name).Err(err).Msg("seed place failed")
				return
			}
			for _, m := range sp.Menu {
				m.PlaceID = p.ID
				if _, err := repo.InsertMenuItem(ctx, m); err != nil {
					log.Warn().Str("item", m.Name).Err(err).Msg("seed menu item failed")
				}
			}
			log.Info().Str("name", p.Name).Int64("id", p.ID).Msg("seeded")
		}(sp)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
