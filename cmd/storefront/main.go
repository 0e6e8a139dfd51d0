package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Nelson707/store-project-sub000/internal/cart"
	"github.com/Nelson707/store-project-sub000/internal/checkout"
	"github.com/Nelson707/store-project-sub000/internal/clients"
	"github.com/Nelson707/store-project-sub000/internal/config"
	httpapi "github.com/Nelson707/store-project-sub000/internal/http"
	"github.com/Nelson707/store-project-sub000/internal/session"
	"github.com/Nelson707/store-project-sub000/internal/storage"
)

func main() {
	cfg := config.LoadStorefront()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cartStore, err := storage.NewFileStore(cfg.DataDir, "cart")
	if err != nil {
		logger.Fatal("cart store init failed", zap.Error(err))
	}
	sessionStore, err := storage.NewFileStore(cfg.DataDir, "user")
	if err != nil {
		logger.Fatal("session store init failed", zap.Error(err))
	}

	sess := session.New(sessionStore, logger)

	// Shared HTTP client for every backend call.
	sharedHTTP := &http.Client{Timeout: cfg.UpstreamTimeout}
	base := clients.NewClient(cfg.APIBaseURL, sharedHTTP, sess)

	products := clients.NewProductsClient(base)
	categories := clients.NewCategoriesClient(base)
	orders := clients.NewOrdersClient(base)
	auth := clients.NewAuthClient(base)

	// The storefront cart pops its drawer open whenever an item lands.
	c := cart.New(cartStore, cart.Options{AutoOpen: true, Logger: logger})

	coordinator := checkout.NewCoordinator(c, orders, logger)

	router := httpapi.NewStorefrontRouter(httpapi.StorefrontDeps{
		Logger:     logger,
		Cfg:        cfg,
		Cart:       c,
		Session:    sess,
		Products:   products,
		Categories: categories,
		Orders:     orders,
		Auth:       auth,
		Checkout:   coordinator,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("storefront listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
