package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/creatorhub/memberkit/internal/api/http"
	"github.com/creatorhub/memberkit/internal/config"
	"github.com/creatorhub/memberkit/internal/observability"
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

	app := httptransport.NewServer(httptransport.ServerOptions{
		Name:            cfg.App.Name + "-devapi",
		Version:         cfg.App.Version,
		JWTSecret:       cfg.DevServer.JWTSecret,
		TokenTTLMinutes: cfg.DevServer.TokenTTLMinutes,
		BcryptCost:      cfg.DevServer.BcryptCost,
		RequestTimeout:  10 * time.Second,
		Logger:          logger,
	})

	go func() {
		logger.Info("dev backend listening", zap.String("addr", cfg.DevServer.Addr()))
		if err := app.Listen(cfg.DevServer.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
