// Command seed fills the catalog with generated products for local runs and demos.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/retailstock/backend/internal/infrastructure/config"
	"github.com/retailstock/backend/internal/infrastructure/logger"
	"github.com/retailstock/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var opts CatalogOptions
	flag.IntVar(&opts.Products, "products", 40, "Number of products to create")
	flag.IntVar(&opts.Deleted, "deleted", 3, "How many of them to soft-delete within the last month")
	flag.Uint64Var(&opts.Seed, "seed", 1, "Random seed")
	flag.Parse()

	log, err := logger.New(logger.DefaultConfig(), "seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	opts.Today = time.Now().In(cfg.Inventory.Location())

	db, err := persistence.NewDatabase(&cfg.Database, persistence.Options{Logger: log})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if db.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to create schema", zap.Error(err))
		}
	}

	products, err := GenerateCatalog(opts)
	if err != nil {
		log.Fatal("Failed to generate catalog", zap.Error(err))
	}

	repo := persistence.NewGormProductRepository(db.DB)
	ctx := context.Background()
	for _, p := range products {
		if err := repo.Save(ctx, p); err != nil {
			log.Fatal("Failed to save product", zap.String("name", p.Name), zap.Error(err))
		}
	}
	log.Info("Catalog seeded", zap.Int("products", len(products)), zap.Int("deleted", opts.Deleted))
}
