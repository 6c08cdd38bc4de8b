package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/meridianpay/dashboard/internal/activity"
	"github.com/meridianpay/dashboard/internal/config"
	"github.com/meridianpay/dashboard/internal/credstore"
	"github.com/meridianpay/dashboard/internal/logging"
	"github.com/meridianpay/dashboard/internal/middleware"
	"github.com/meridianpay/dashboard/internal/notify"
	"github.com/meridianpay/dashboard/internal/upstream"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Session state must be durable outside of dev, even though main also checks.
	if !d.Cfg.IsDev() && d.Cache == nil {
		return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Session())
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Shared collaborators
	client := upstream.New(d.Cfg.UpstreamURL, d.Cfg.UpstreamTimeout)

	var stores credstore.Factory
	if d.Cache != nil {
		cache, ttl := d.Cache, d.Cfg.SessionTTL
		stores = func(sid string) credstore.Store {
			return credstore.NewRedisStore(cache, sid, ttl)
		}
	} else {
		stores = credstore.NewMemoryFactory()
	}

	var activityRepo activity.Repository
	if d.DB != nil {
		activityRepo = activity.NewPostgresRepository(d.DB)
	} else {
		activityRepo = activity.NewMemoryRepository()
	}

	var notifier notify.Notifier
	if d.Cache != nil {
		notifier = notify.NewRedisNotifier(d.Cache)
	} else {
		notifier = notify.NewLoggerNotifier(d.Logger)
	}

	guardDeps := middleware.GuardDeps{
		Cache:    d.Cache,
		Client:   client,
		Stores:   stores,
		Activity: activityRepo,
		Logger:   logging.Component(d.Logger, "guard"),
	}

	// Page surface: public entry plus guarded prefixes.
	RegisterPageRoutes(app, guardDeps)

	// JSON APIs consumed by the SPA.
	api := app.Group("/api")
	authHandler := NewAuthHandler(client, stores, activityRepo, notifier, logging.Component(d.Logger, "auth"))
	RegisterAuthRoutes(api, authHandler, middleware.SubmitRateLimit(d.Cache, 5))

	sessionHandler := NewSessionHandler(guardDeps, stores, activityRepo, notifier)
	RegisterSessionRoutes(api, sessionHandler)

	walletHandler := NewWalletHandler(client, stores, activityRepo, notifier)
	var idem fiber.Handler
	if d.Cache != nil {
		idem = middleware.Idempotency(d.Cache, d.Logger)
	}
	RegisterWalletRoutes(api, walletHandler, idem)

	return nil
}
