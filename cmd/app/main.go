package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courierops/cmd"
	"courierops/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// application is the part of the composition root main drives.
type application interface {
	Migrate(ctx context.Context) error
	CreateJobManager() *jobs.JobManager
	CreateHTTPServer() (*echo.Echo, error)
	Close() error
}

type options struct {
	migrate     bool
	monitorOnce bool
	port        string
}

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file to load; a missing file is ignored")
	migrate := pflag.Bool("migrate", false, "create or update the database schema before starting")
	monitorOnce := pflag.Bool("monitor-once", false, "run a single SLA sweep and exit")
	pflag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading %s: %v", *envFile, err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := cmd.OpenDatabase(configs)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = execute(ctx, app, options{
		migrate:     *migrate,
		monitorOnce: *monitorOnce,
		port:        configs.HTTPPort,
	}, logger)
	stop()
	if err != nil {
		log.Fatalf("%v", err)
	}
}

// execute owns app until it returns: whatever happens, app is closed before
// the error reaches main.
func execute(ctx context.Context, app application, opts options, logger *slog.Logger) error {
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to close connections", "error", closeErr)
		}
	}()

	if opts.migrate {
		if err := app.Migrate(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Schema migrated")
	}

	if opts.monitorOnce {
		if _, err := app.CreateJobManager().SLAMonitor().RunOnce(ctx); err != nil {
			return fmt.Errorf("SLA monitor run failed: %w", err)
		}
		return nil
	}

	return run(ctx, app, opts.port, logger)
}

// run serves HTTP and runs the scheduled jobs until ctx is cancelled.
func run(ctx context.Context, app application, port string, logger *slog.Logger) error {
	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := app.CreateHTTPServer()
	if err != nil {
		return fmt.Errorf("build http server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "port", port)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
