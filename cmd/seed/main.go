package main

import (
	"context"
	"flag"
	"log"
	"os"

	"wardrobe-storefront/internal/catalog"
	"wardrobe-storefront/internal/config"
	"wardrobe-storefront/internal/db"
	facetrepo "wardrobe-storefront/internal/repository/facet"
	productrepo "wardrobe-storefront/internal/repository/product"
	"wardrobe-storefront/internal/seed"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Catalog YAML to load instead of the bundled sample")
	flag.Parse()

	cfg := config.Load()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	s, err := loadCatalog(filePath)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	res, err := seed.Apply(ctx, s, productrepo.NewPostgres(pool, nil), facetrepo.NewPostgres(pool, nil))
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied products=%d facets=%d", res.Products, res.Facets)
}

func loadCatalog(path string) (*catalog.Seed, error) {
	if path == "" {
		return catalog.Sample()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return catalog.Decode(raw)
}
