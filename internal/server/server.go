// Package server assembles the application: configuration, logging,
// database, sessions, the HTTP middleware stack and the route table.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prasetyadi/gerai/app/auth"
	"github.com/prasetyadi/gerai/app/controllers"
	"github.com/prasetyadi/gerai/app/repositories"
	"github.com/prasetyadi/gerai/app/routes"
	"github.com/prasetyadi/gerai/app/services"
	"github.com/prasetyadi/gerai/app/views"
	"github.com/prasetyadi/gerai/config"
	_ "github.com/prasetyadi/gerai/database/migrations"
	"github.com/prasetyadi/gerai/database/seeders"
	"github.com/prasetyadi/gerai/pkg/cache"
	"github.com/prasetyadi/gerai/pkg/database"
	"github.com/prasetyadi/gerai/pkg/logger"
	"github.com/prasetyadi/gerai/pkg/metrics"
	"github.com/prasetyadi/gerai/pkg/middleware"
	"github.com/prasetyadi/gerai/pkg/migration"
	"github.com/prasetyadi/gerai/pkg/reqid"
	"github.com/prasetyadi/gerai/pkg/router"
	"github.com/prasetyadi/gerai/pkg/session"
	"github.com/prasetyadi/gerai/pkg/view"
	"gorm.io/gorm"
)

// Start boots the storefront and blocks until SIGINT/SIGTERM, then shuts
// down gracefully.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var audit *logger.MongoAuditSink
	if uri := config.LogMongoURI(); uri != "" {
		sink, err := logger.NewMongoAuditSink(uri, config.LogMongoDB())
		if err != nil {
			return fmt.Errorf("mongo audit sink: %w", err)
		}
		audit = sink
		logger.Setup(sink)
		defer audit.Close()
	} else {
		logger.Setup()
	}

	db, err := database.Connect()
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := migration.New(db).Up(); err != nil {
		return err
	}
	if err := seeders.RunAll(db); err != nil {
		return err
	}

	handler, err := BuildHandler(db)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// BuildHandler wires repositories, services, controllers and the
// middleware stack into the final HTTP handler. Split out from Start so
// tests can exercise the full stack against httptest servers.
func BuildHandler(db *gorm.DB) (http.Handler, error) {
	store, err := sessionStore()
	if err != nil {
		return nil, err
	}

	opts := session.DefaultOptions()
	opts.TTL = config.SessionTTL()
	opts.Secure = config.AppEnv() == "production"
	sessions := session.NewManager(store, opts)

	renderer, err := view.New(views.FS)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	users := repositories.NewUserRepository(db)
	orders := repositories.NewOrderRepository(db)
	products := repositories.NewProductRepository(db)

	var catalogue *cache.Cache
	if config.Get("CACHE_DRIVER", "none") == "redis" {
		catalogue, err = cache.New(config.RedisAddr(), config.RedisPassword())
		if err != nil {
			logger.Warn("cache unavailable, serving without it", "error", err)
			catalogue = nil
		}
	}

	authService := services.NewAuthService(users)
	orderService := services.NewOrderService(orders)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.RateLimit(config.GetInt("RATE_LIMIT_MAX", 120), time.Minute),
		session.Middleware(sessions),
		auth.Identity(users),
	)

	routes.Register(r, routes.Controllers{
		Auth:    controllers.NewAuthController(authService, renderer),
		Account: controllers.NewAccountController(authService, renderer),
		Order:   controllers.NewOrderController(orderService, renderer),
		Page:    controllers.NewPageController(products, catalogue, renderer),
	})

	return r.Handler(), nil
}

func sessionStore() (session.Store, error) {
	switch config.SessionDriver() {
	case "redis":
		store, err := session.NewRedisStore(config.RedisAddr(), config.RedisPassword())
		if err != nil {
			return nil, fmt.Errorf("redis session store: %w", err)
		}
		return store, nil
	default:
		return session.NewMemoryStore(), nil
	}
}
