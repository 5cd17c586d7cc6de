package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"wardrobe-storefront/internal/config"
	"wardrobe-storefront/internal/db"
	"wardrobe-storefront/internal/importer"
	"wardrobe-storefront/internal/repository/facet"
	"wardrobe-storefront/internal/repository/product"
)

func main() {
	var (
		filePath   string
		skipFacets bool
	)
	flag.StringVar(&filePath, "file", "", "Path to a vendor listing CSV export")
	flag.BoolVar(&skipFacets, "skip-facets", false, "Do not register categories and locations found in the file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	products := product.NewPostgres(pool, nil)
	existing, err := products.List(ctx)
	if err != nil {
		log.Fatalf("list catalog: %v", err)
	}

	var facets importer.FacetWriter
	if !skipFacets {
		facets = facet.NewPostgres(pool, nil)
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, products, facets, len(existing))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d products in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
