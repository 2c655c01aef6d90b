package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"storefront-pricing/app/controller"
	"storefront-pricing/app/router"
	"storefront-pricing/config"
	"storefront-pricing/db"
	"storefront-pricing/pricing"
	"storefront-pricing/repository"
	"storefront-pricing/service"
	"storefront-pricing/utils"
)

// App holds the wired HTTP handler and the resources to release on shutdown
type App struct {
	Handler http.Handler
	Shop    *service.ShopService
	Hub     *service.NotificationHub

	closers []func() error
}

// Close releases the state store connection
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Printf("⚠️ App.Close: %v", err)
		}
	}
}

// newStateStore opens the store selected by store.driver
func newStateStore(ctx context.Context, cfg config.Config) (repository.StateStore, func() error, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		log.Printf("⚠️ newStateStore: Using in-memory store, state is lost on restart")
		return repository.NewMemoryStore(), nil, nil

	case config.StoreSQLite, config.StorePostgres:
		driver := db.DriverSQLite
		if cfg.Store.Driver == config.StorePostgres {
			driver = db.DriverPostgres
		}
		conn, err := db.Open(ctx, driver, cfg.Store.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		store, err := repository.NewSQLStore(ctx, conn, driver)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		return store, conn.Close, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		log.Printf("✅ newStateStore: Connected to redis at %s", cfg.Redis.Addr)
		return repository.NewRedisStore(rdb, cfg.Redis.Prefix), rdb.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg config.Config) (*App, error) {
	store, closeStore, err := newStateStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &App{}
	if closeStore != nil {
		a.closers = append(a.closers, closeStore)
	}

	engine, err := pricing.NewEngine(cfg.Pricing)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Notifications go to the log and to connected websocket clients
	a.Hub = service.NewNotificationHub()
	notifier := service.MultiNotifier{service.LogNotifier{}, a.Hub}

	repo := repository.NewStateRepository(store)
	a.Shop = service.NewShopService(ctx, engine, repo, notifier)
	catalogService := service.NewCatalogService(a.Shop, cfg.Catalog.ChromePath, cfg.Catalog.Title)

	// Create controllers
	controllers := &router.Controllers{
		Cart:          controller.NewCartController(a.Shop),
		Product:       controller.NewProductController(a.Shop, utils.PriceFormat(cfg.App.PriceFormat)),
		Coupon:        controller.NewCouponController(a.Shop),
		Catalog:       controller.NewCatalogController(catalogService),
		Notifications: a.Hub,
		AdminAPIKey:   cfg.App.AdminAPIKey,
	}
	if cfg.App.AdminAPIKey == "" {
		log.Printf("⚠️ Initialize: app.admin_api_key is empty, admin routes are open")
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)
	a.Handler = router.Handler(mux)

	return a, nil
}
