package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tableapi/backend/internal/config"
	"tableapi/backend/internal/handler"
	"tableapi/backend/internal/logging"
	"tableapi/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, flush := logging.Setup(os.Stdout, cfg.LogLevel, cfg.SeqURL)
	defer flush()
	if !cfg.EnvFileLoaded {
		logger.Warn("no .env file loaded, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := service.ConnectPostgres(ctx, cfg.DatabaseURL, service.PoolOptions{
		MaxOpenConns:    cfg.DBConfig.MaxOpenConns,
		ConnMaxLifetime: cfg.DBConfig.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	gin.SetMode(cfg.GinMode)
	tables := service.NewTableService(db, logger)
	h := handler.New(tables, logger, handler.Options{SurfaceRowErrors: cfg.SurfaceRowErrors})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler.NewRouter(h, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
