package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-fuse/internal/config"
	"github.com/nguyentantai21042004/lecture-fuse/internal/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Import and fuse lectures as their metadata files appear",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), a)
		},
	}
}

func runWatch(ctx context.Context, a *app) error {
	cfg, log := a.cfg, a.log

	log.Info(ctx, "========================================")
	log.Info(ctx, "Lecture Fuse Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Fusion policy: %s", cfg.FuserOptions().Policy)

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		return err
	}

	w, err := watcher.New(cfg.Paths.Meta, a.proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- w.Start(ctx)
	}()

	log.Info(ctx, "Monitoring: %s", w.Dir())
	log.Info(ctx, "Transcripts: %s", cfg.Paths.Timestamped)
	log.Info(ctx, "Database: %s", cfg.Database.Path)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("watcher: %w", err)
		}
		return nil
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	<-errChan

	log.Info(ctx, "Lecture Fuse Pipeline stopped")
	return nil
}

// ensureDirectories creates the watched directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Meta,
		cfg.Paths.Timestamped,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
