package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const tickInterval = 50 * time.Millisecond

func main() {
	cfg, err := LoadConfig(os.Getenv("PENTE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pente: %v\n", err)
		os.Exit(2)
	}
	configStore.Update(cfg)

	logger, err := NewLogger(cfg.LogLevel, cfg.Mode == ModeConsole)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pente: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, logger)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		logger.Errorw("exiting", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, logger *zap.SugaredLogger) error {
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	if cfg.Mode == ModeConsole {
		return RunConsole(ctx, os.Stdin, os.Stdout, settings, logger)
	}
	return runServer(ctx, cfg, settings, logger)
}

func runServer(ctx context.Context, cfg Config, settings GameSettings, logger *zap.SugaredLogger) error {
	controller := NewGameController(settings, logger)
	hub := NewHub(logger)

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go hub.Run(loopCtx.Done())
	go runTicker(loopCtx, controller, hub)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: newRouter(controller, hub),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	logger.Infow("listening", "addr", cfg.Addr, "game_id", controller.GameID())
	var runErr error
	select {
	case <-ctx.Done():
		logger.Infow("shutdown signal received", "reason", ctx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			logger.Errorw("server error", "error", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warnw("graceful shutdown failed", "error", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			logger.Warnw("forced close failed", "error", closeErr)
		}
	}
	cancel()
	return runErr
}

// runTicker advances the game and pushes every applied move to the
// websocket clients.
func runTicker(ctx context.Context, controller *GameController, hub *Hub) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if controller.Tick(ctx) && hub.HasClients() {
				if entry, ok := controller.LatestHistoryEntry(); ok {
					hub.PublishHistory(historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
				}
				hub.PublishStatus(controllerStatus(controller))
			}
		}
	}
}
