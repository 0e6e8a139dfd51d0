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
	cfg := config.LoadPOS()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cartStore, sessionStore := buildStores(ctx, cfg, logger)

	sess := session.New(sessionStore, logger)

	sharedHTTP := &http.Client{Timeout: cfg.UpstreamTimeout}
	base := clients.NewClient(cfg.APIBaseURL, sharedHTTP, sess)

	products := clients.NewProductsClient(base)
	categories := clients.NewCategoriesClient(base)
	orders := clients.NewOrdersClient(base)
	sales := clients.NewSalesClient(base)
	users := clients.NewUsersClient(base)
	auth := clients.NewAuthClient(base)

	// No drawer on a terminal: the cart panel is always visible.
	c := cart.New(cartStore, cart.Options{Logger: logger})

	coordinator := checkout.NewPOS(c, sales, logger)

	router := httpapi.NewPOSRouter(httpapi.POSDeps{
		Logger:     logger,
		Cfg:        cfg,
		Cart:       c,
		Session:    sess,
		Products:   products,
		Categories: categories,
		Orders:     orders,
		Sales:      sales,
		Users:      users,
		Auth:       auth,
		Checkout:   coordinator,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("pos console listening", zap.String("port", cfg.Port))
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

// buildStores picks Postgres-backed snapshots when POS_DATABASE_URL is set,
// so several terminals can share one register state, and falls back to local
// files otherwise.
func buildStores(ctx context.Context, cfg config.Config, logger *zap.Logger) (cartStore, sessionStore storage.Store) {
	if cfg.DatabaseURL != "" {
		if err := storage.RunMigrations(cfg.DatabaseURL); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
		pool, err := storage.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		logger.Info("using postgres snapshot store")
		return storage.NewPGStore(pool, "posCart"), storage.NewPGStore(pool, "user")
	}

	fsCart, err := storage.NewFileStore(cfg.DataDir, "posCart")
	if err != nil {
		logger.Fatal("cart store init failed", zap.Error(err))
	}
	fsSession, err := storage.NewFileStore(cfg.DataDir, "user")
	if err != nil {
		logger.Fatal("session store init failed", zap.Error(err))
	}
	return fsCart, fsSession
}
