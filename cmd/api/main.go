package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		common.LogFatal("Failed to load configuration", zap.Error(err))
	}
	common.InitLogger(cfg.Log.Level, cfg.Log.Mode)
	defer common.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	srv, err := server.New(ctx, cfg)
	cancel()
	if err != nil {
		common.LogFatal("Failed to initialize server", zap.Error(err))
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			common.LogFatal("Server error", zap.Error(err))
		}
	case sig := <-quit:
		common.LogInfo("Received signal", zap.String("signal", sig.String()))
	}

	common.LogInfo("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server shutdown error", zap.Error(err))
		return
	}
	common.LogInfo("Server stopped")
}
