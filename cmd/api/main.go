package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"wardrobe-storefront/internal/config"
	"wardrobe-storefront/internal/db"
	"wardrobe-storefront/internal/httpserver"
	facetrepo "wardrobe-storefront/internal/repository/facet"
	inquiryrepo "wardrobe-storefront/internal/repository/inquiry"
	orderrepo "wardrobe-storefront/internal/repository/order"
	productrepo "wardrobe-storefront/internal/repository/product"
	sessionrepo "wardrobe-storefront/internal/repository/session"
	vendorrepo "wardrobe-storefront/internal/repository/vendor"
	cartsvc "wardrobe-storefront/internal/service/cart"
	inquirysvc "wardrobe-storefront/internal/service/inquiry"
	productsvc "wardrobe-storefront/internal/service/product"
	sessionsvc "wardrobe-storefront/internal/service/session"
	vendorsvc "wardrobe-storefront/internal/service/vendor"
	"wardrobe-storefront/internal/telemetry"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:     cfg.TracingEnabled,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Fatalf("init tracing: %v", err)
	}

	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	rdb, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}
	defer rdb.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	facetRepo := facetrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	vendorRepo := vendorrepo.NewPostgres(dbpool, logger)
	inquiryRepo := inquiryrepo.NewPostgres(dbpool, logger)
	sessionRepo := sessionrepo.NewRedis(rdb, cfg.SessionTTL, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		ProductSvc:  productsvc.New(productRepo, facetRepo),
		SessionSvc:  sessionsvc.New(sessionRepo),
		CartSvc:     cartsvc.New(sessionRepo, productRepo, orderRepo, cfg.Currency),
		VendorSvc:   vendorsvc.New(vendorRepo, cfg.VendorFee, cfg.Currency),
		InquirySvc:  inquirysvc.New(inquiryRepo),
		CORSOrigins: cfg.CORSOrigins,
		ReadyChecks: []httpserver.ReadyCheck{
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Printf("flush traces: %v", err)
	}
}
