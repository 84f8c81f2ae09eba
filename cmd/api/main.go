package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/league-scheduler/internal/app"
	"github.com/riskibarqy/league-scheduler/internal/config"
	"github.com/riskibarqy/league-scheduler/internal/observability"
	"github.com/riskibarqy/league-scheduler/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	logger, closeBetterStack, err := observability.InitBetterStackLogger(cfg, logger)
	if err != nil {
		logger.Error("init betterstack logger", "error", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", "error", err)
		os.Exit(1)
	}

	srv, err := app.NewHTTPServer(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	if pprofSrv != nil {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Error("stop pprof server", "error", err)
		}
	}
	if stopPyroscope != nil {
		if err := stopPyroscope(); err != nil {
			logger.Error("stop pyroscope", "error", err)
		}
	}
	if shutdownUptrace != nil {
		if err := shutdownUptrace(shutdownCtx); err != nil {
			logger.Error("shutdown uptrace", "error", err)
		}
	}
	if closeBetterStack != nil {
		if err := closeBetterStack(shutdownCtx); err != nil {
			logger.Error("close betterstack logger", "error", err)
		}
	}

	logger.Info("http server stopped")
}
