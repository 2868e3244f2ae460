package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/alunakitchen/pickup-backend/api/controllers"
	"github.com/alunakitchen/pickup-backend/api/routes"
	authsvc "github.com/alunakitchen/pickup-backend/internal/auth"
	cartsvc "github.com/alunakitchen/pickup-backend/internal/cart"
	checkoutsvc "github.com/alunakitchen/pickup-backend/internal/checkout"
	menusvc "github.com/alunakitchen/pickup-backend/internal/menu"
	orderssvc "github.com/alunakitchen/pickup-backend/internal/orders"
	profilessvc "github.com/alunakitchen/pickup-backend/internal/profiles"
	"github.com/alunakitchen/pickup-backend/internal/realtime"
	"github.com/alunakitchen/pickup-backend/pkg/auth/session"
	"github.com/alunakitchen/pickup-backend/pkg/config"
	"github.com/alunakitchen/pickup-backend/pkg/db"
	"github.com/alunakitchen/pickup-backend/pkg/logger"
	"github.com/alunakitchen/pickup-backend/pkg/metrics"
	"github.com/alunakitchen/pickup-backend/pkg/migrate"
	"github.com/alunakitchen/pickup-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server exited with error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dbClient.Close(); cerr != nil {
			logg.Error(context.Background(), "error closing database", cerr)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logg.Error(context.Background(), "error closing redis", cerr)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	profileRepo := profilessvc.NewRepository(dbClient.DB())
	profileService, err := profilessvc.NewService(profileRepo)
	if err != nil {
		return err
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		DB:             dbClient,
		Users:          authsvc.NewUserRepository(dbClient.DB()),
		Admins:         profileRepo,
		Sessions:       sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return err
	}

	menuRepo := menusvc.NewRepository(dbClient.DB())
	menuService, err := menusvc.NewService(menuRepo)
	if err != nil {
		return err
	}

	cartStore, err := cartsvc.NewRedisStore(redisClient, cfg.Cart.SessionTTL)
	if err != nil {
		return err
	}
	cartService, err := cartsvc.NewService(cartStore, menuRepo)
	if err != nil {
		return err
	}

	feed := realtime.NewFeed()
	hub := realtime.NewHub()

	orderRepo := orderssvc.NewRepository(dbClient.DB())
	orderService, err := orderssvc.NewService(orderRepo, profileRepo, feed, logg)
	if err != nil {
		return err
	}

	checkoutService, err := checkoutsvc.NewService(
		cartStore,
		profileService,
		orderRepo,
		dbClient,
		feed,
		cfg.Checkout.PickupAddress,
		logg,
	)
	if err != nil {
		return err
	}

	console, err := orderssvc.NewConsole(orderService, logg)
	if err != nil {
		return err
	}
	if err := console.Load(ctx); err != nil {
		logg.Error(ctx, "initial console load failed", err)
	}

	consoleChanges, cancelConsoleSub := feed.Subscribe()
	defer cancelConsoleSub()
	go console.Watch(ctx, consoleChanges)
	go hub.Run(ctx)
	go realtime.Relay(ctx, feed, hub)

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		Sessions:    sessionManager,
		HTTPMetrics: httpMetrics,
		HealthChecks: map[string]controllers.Pinger{
			"postgres": dbClient,
			"redis":    redisClient,
		},
		AuthService:     authService,
		MenuService:     menuService,
		CartService:     cartService,
		CheckoutService: checkoutService,
		ProfileService:  profileService,
		OrdersService:   orderService,
		Console:         console,
		WSHandler:       realtime.ServeWS(hub, cfg.JWT, sessionManager, logg),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs error
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = multierr.Append(errs, err)
	}
	if err := <-serveErr; err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}
