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

	"marketplace/cmd"
	"marketplace/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/errgroup"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	if configs.MigrateOnStart {
		if err = postgres.Migrate(configs.DatabaseURL()); err != nil {
			log.Fatalf("Error applying migrations: %v", err)
		}
	}

	gormDB, err := postgres.Open(configs.DatabaseURL())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn("close clients", "error", closeErr)
		}
	}()

	if err = run(app, configs, logger); err != nil {
		log.Fatalf("Service stopped: %v", err)
	}
}

// run serves until SIGINT/SIGTERM, then drains the HTTP server, the jobs and
// the realtime hub.
func run(app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := app.CreateHTTPServer()
	if err != nil {
		return err
	}
	e := server.NewEcho()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", "port", configs.HTTPPort)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})

	g.Go(func() error {
		if listenErr := app.Hub().Run(gctx, app.ChangeFeed()); listenErr != nil && gctx.Err() == nil {
			return fmt.Errorf("change feed: %w", listenErr)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		app.Hub().Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
