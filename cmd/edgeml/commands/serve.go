package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/robodu/edgeml/internal/grpcclient"
	"github.com/robodu/edgeml/internal/orchestrator"
	"github.com/robodu/edgeml/internal/server"
)

var (
	flagAddr         string
	flagRuntime      string
	flagListen       bool
	flagWriteTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket server",
	Long: `Run the HTTP and WebSocket server.

Models are loaded lazily through initKeywordModel and initModel calls. With
--listen the keyword model is loaded and the microphone opened at startup.

Example:
  edgeml serve --addr :8000 --runtime localhost:50051 --listen`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address (overrides http_addr)")
	serveCmd.Flags().StringVar(&flagRuntime, "runtime", "", "Model runtime gRPC address (overrides runtime_addr)")
	serveCmd.Flags().BoolVar(&flagListen, "listen", false, "Load the keyword model and start listening at startup")
	serveCmd.Flags().DurationVar(&flagWriteTimeout, "write-timeout", 5*time.Minute, "HTTP write timeout, bounds train calls")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.HTTPAddr = flagAddr
	}
	if flagRuntime != "" {
		cfg.RuntimeAddr = flagRuntime
	}
	slog.Debug("config loaded", "config", cfg.String())

	rtCfg := grpcclient.DefaultConfig(cfg.RuntimeAddr)
	rtCfg.MaxMessageBytes = cfg.RuntimeMaxMessageBytes
	rt, err := grpcclient.New(rtCfg)
	if err != nil {
		return fmt.Errorf("connect runtime %s: %w", cfg.RuntimeAddr, err)
	}
	defer func() { _ = rt.Close() }()

	mgr := orchestrator.New(cfg, orchestrator.RuntimeDeps(rt, cfg))
	defer func() {
		if err := mgr.Close(); err != nil {
			slog.Error("close manager", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if flagListen {
		if err := mgr.InitKeywordModel(ctx); err != nil {
			return err
		}
		if err := mgr.StartListening(ctx); err != nil {
			return err
		}
	}

	srv := server.New(mgr)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srv.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: flagWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("edgeml server starting", "http", cfg.HTTPAddr, "runtime", cfg.RuntimeAddr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	slog.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}
	mgr.StopListening()
	slog.Info("shutdown complete")
	return nil
}
