package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/car-marketplace/internal/api/http"
	"github.com/spec-kit/car-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/car-marketplace/internal/auth"
	"github.com/spec-kit/car-marketplace/internal/config"
	"github.com/spec-kit/car-marketplace/internal/events"
	"github.com/spec-kit/car-marketplace/internal/observability"
	"github.com/spec-kit/car-marketplace/internal/persistence"
	"github.com/spec-kit/car-marketplace/internal/repository"
	"github.com/spec-kit/car-marketplace/internal/service"
	"github.com/spec-kit/car-marketplace/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	brandRepo := repository.NewBrandRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo, dispatcher, cfg.Auth.BcryptCost)
	brandService := service.NewBrandService(*cfg, brandRepo, redis.Client, logger)
	vehicleService := service.NewVehicleService(*cfg, service.VehicleDependencies{
		VehicleRepo: vehicleRepo,
		BrandRepo:   brandRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, redis.Client, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		AdminUsers:     handlers.NewAdminUsersHandler(userService),
		Brands:         handlers.NewBrandsHandler(brandService),
		AdminBrands:    handlers.NewAdminBrandsHandler(brandService),
		Vehicles:       handlers.NewVehiclesHandler(vehicleService),
		AdminVehicles:  handlers.NewAdminVehiclesHandler(vehicleService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
