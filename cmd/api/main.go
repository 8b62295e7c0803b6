package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mirelabs/chatskins-backend/api/routes"
	"github.com/mirelabs/chatskins-backend/internal/catalog"
	"github.com/mirelabs/chatskins-backend/internal/customization"
	"github.com/mirelabs/chatskins-backend/internal/membership"
	"github.com/mirelabs/chatskins-backend/internal/pricing"
	"github.com/mirelabs/chatskins-backend/internal/purchase"
	"github.com/mirelabs/chatskins-backend/internal/rollback"
	"github.com/mirelabs/chatskins-backend/internal/rollback/handlers/friendrequest"
	"github.com/mirelabs/chatskins-backend/internal/rollback/handlers/signature"
	"github.com/mirelabs/chatskins-backend/internal/rollback/handlers/storynotes"
	"github.com/mirelabs/chatskins-backend/internal/statestore"
	"github.com/mirelabs/chatskins-backend/internal/wallet"
	"github.com/mirelabs/chatskins-backend/pkg/config"
	"github.com/mirelabs/chatskins-backend/pkg/db"
	"github.com/mirelabs/chatskins-backend/pkg/events"
	"github.com/mirelabs/chatskins-backend/pkg/logger"
	"github.com/mirelabs/chatskins-backend/pkg/metrics"
	"github.com/mirelabs/chatskins-backend/pkg/migrate"
	"github.com/mirelabs/chatskins-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	shopMetrics := metrics.NewShopMetrics(promRegistry)

	bus := events.NewBus(logg)
	shopCatalog := catalog.Default()
	membershipRepo := membership.NewRepository(dbClient.DB())

	custRepo := customization.NewRepository(statestore.NewGormStore(dbClient.DB()), cfg.Quota.Location())
	custService, err := customization.NewService(customization.ServiceParams{
		Repo:    custRepo,
		Catalog: shopCatalog,
		Bus:     bus,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create customization service", err)
		os.Exit(1)
	}

	walletService, err := wallet.NewService(wallet.ServiceParams{
		Repo: wallet.NewRepository(dbClient.DB()),
		Bus:  bus,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wallet service", err)
		os.Exit(1)
	}

	pricingEngine, err := pricing.NewEngine(membershipRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing engine", err)
		os.Exit(1)
	}

	purchaseService, err := purchase.NewService(purchase.ServiceParams{
		Catalog:       shopCatalog,
		Customization: custRepo,
		Pricing:       pricingEngine,
		Wallet:        walletService,
		Locker:        redisClient,
		Bus:           bus,
		Metrics:       shopMetrics,
		Logger:        logg,
		LockTTL:       cfg.Purchase.LockTTL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create purchase service", err)
		os.Exit(1)
	}

	registry := rollback.NewRegistry(logg, shopMetrics)
	if err := registerRollbackHandlers(registry, dbClient, bus, logg); err != nil {
		logg.Error(context.Background(), "failed to register rollback handlers", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Catalog:       shopCatalog,
			Pricing:       pricingEngine,
			CustRepo:      custRepo,
			Customization: custService,
			Wallet:        walletService,
			Purchase:      purchaseService,
			Registry:      registry,
			Tiers:         membershipRepo,
			Metrics:       promRegistry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func registerRollbackHandlers(registry *rollback.Registry, dbClient *db.Client, bus *events.Bus, logg *logger.Logger) error {
	friendHandler, err := friendrequest.New(friendrequest.NewRepository(dbClient.DB()), bus, logg)
	if err != nil {
		return err
	}
	if err := registry.Register(friendHandler.RollbackHandler()); err != nil {
		return err
	}

	notesHandler, err := storynotes.New(storynotes.NewRepository(dbClient.DB()), bus, logg)
	if err != nil {
		return err
	}
	if err := registry.Register(notesHandler.RollbackHandler()); err != nil {
		return err
	}

	signatureHandler, err := signature.New(signature.NewRepository(dbClient.DB()), bus, logg)
	if err != nil {
		return err
	}
	return registry.Register(signatureHandler.RollbackHandler())
}
