// Command seed loads the default catalog data.
//
//	go run ./scripts/seed                      # seed in-process
//	go run ./scripts/seed enqueue [kind ...]   # hand the work to the worker
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/catalog/internal/app"
	"github.com/odyssey-erp/catalog/internal/seed"
	"github.com/odyssey-erp/catalog/jobs"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if len(os.Args) > 1 && os.Args[1] == "enqueue" {
		client := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		defer client.Close()
		info, err := client.EnqueueSeed(ctx, jobs.SeedPayload{Kinds: os.Args[2:]})
		if err != nil {
			log.Fatalf("enqueue seed: %v", err)
		}
		fmt.Printf("→ Enqueued %s (id=%s queue=%s)\n", info.Type, info.ID, info.Queue)
		return
	}

	logger := app.NewLogger(cfg)
	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("open stores: %v", err)
	}
	defer stores.Close()

	fmt.Printf("→ Seeding catalog (%s)...\n", cfg.StoreDriver)
	if err := seed.Run(ctx, logger, app.SeedTargets(stores, logger, nil)...); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}
	fmt.Println("✓ Done")
}
