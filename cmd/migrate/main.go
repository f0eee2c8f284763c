package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/samirrijal/crestfield/internal/adapters/directory"
	"github.com/samirrijal/crestfield/internal/adapters/postgres"
	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
	"github.com/samirrijal/crestfield/internal/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up|down|seed [stations.yaml]>")
	}

	cfg, err := config.Load("crestfield-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "up", "down":
		applied, err := db.Migrate(ctx, os.Args[1])
		if err != nil {
			log.Fatalf("migrate %s: %v", os.Args[1], err)
		}
		for _, name := range applied {
			fmt.Printf("OK  %s\n", name)
		}
		log.Printf("%d migrations applied (%s)", len(applied), os.Args[1])
	case "seed":
		var src ports.DirectorySource = directory.Builtin{}
		if len(os.Args) > 2 {
			src = directory.YAMLSource{Path: os.Args[2]}
		}
		if err := seed(ctx, db, src); err != nil {
			log.Fatalf("seed: %v", err)
		}
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

func seed(ctx context.Context, db *postgres.DB, src ports.DirectorySource) error {
	stations, err := src.LoadStations(ctx)
	if err != nil {
		return err
	}
	if err := domain.ValidateDirectory(stations); err != nil {
		return err
	}
	if err := postgres.NewStationSource(db).UpsertBatch(ctx, stations); err != nil {
		return err
	}
	log.Printf("seeded %d stations", len(stations))
	return nil
}
