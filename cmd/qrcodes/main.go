// Command qrcodes запускает HTTP-сервис QR-кодов.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GevorkovG/go-qrcodes/config"
	"github.com/GevorkovG/go-qrcodes/internal/app"
	"github.com/GevorkovG/go-qrcodes/internal/logger"
	"github.com/GevorkovG/go-qrcodes/internal/routes"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.NewCfg()
	if err != nil {
		return err
	}

	if err := logger.InitLogger(cfg.LogLevel); err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	a := app.NewApp(cfg)
	if err := a.ConfigureStorage(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Host,
		Handler:           routes.Router(ctx, a),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("Running server", zap.String("address", cfg.Host), zap.String("base_url", cfg.BaseURL))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	zap.L().Info("Server stopped gracefully")
	return nil
}
