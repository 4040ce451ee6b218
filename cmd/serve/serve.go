// Package serve handles the HTTP service command
package serve

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/xact-rollup/cmd/root"
	"fjacquet/xact-rollup/internal/server"

	"github.com/spf13/cobra"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the estimate processing HTTP service",
	Long: `Run the HTTP service exposing the pipeline: /health,
/api/parse-estimate (multipart upload), /api/validate-estimate and
/api/reprice. The service shuts down gracefully on SIGINT/SIGTERM.

Example:
  xact-rollup serve --port 5001`,
	Run: serveFunc,
}

var port int

func init() {
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides configuration)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Serve command called")

	cfg := root.Cfg
	if port > 0 {
		cfg.Server.Port = port
	}

	c := root.App()
	srv := server.New(server.Config{
		Port:          cfg.Server.Port,
		MaxFileSizeMB: cfg.Server.MaxFileSizeMB,
		Version:       root.Version,
	}, c.GetEngine(), c.GetReviewer(), root.Log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			root.Log.Fatalf("HTTP service failed: %v", err)
		}
	case <-ctx.Done():
		root.Log.Info("Shutting down HTTP service")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			root.Log.WithError(err).Error("Graceful shutdown failed")
		}
	}
}
