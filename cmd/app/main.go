package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agrilogistics/cmd"
	_ "agrilogistics/docs"
	httpin "agrilogistics/internal/adapters/in/http"
	"agrilogistics/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// @title       Agri Allocation API
// @version     1.0
// @description Allocates farmer supply orders to the nearest warehouse with free capacity.
// @BasePath    /
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to close adapters", "error", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configs.SeedWarehouses {
		if err = app.SeedWarehouses(ctx); err != nil {
			log.Fatalf("Error seeding warehouses: %v", err)
		}
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	if configs.DBHost == "" {
		return nil, nil
	}
	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return nil, err
	}
	return gormDB, nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) {
	logger := app.Logger()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(httpin.RequestLogger(logger))
	e.Use(httpin.Observe(app.Metrics()))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(app.Metrics().Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	server := httpin.NewServer(
		app.CreateAllocateOrderCommandHandler(),
		app.CreateCreateWarehouseCommandHandler(),
		app.CreateGetWarehousesQueryHandler(),
		app.CreateGetTraderStatsQueryHandler(),
		app.CreateGetOrderHistoryQueryHandler(),
		app.CreateGeocodeAddressQueryHandler(),
		logger,
	)
	server.Register(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting web server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Web server shutdown failed", "error", err)
	}
}
