package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dyluth/kennel/internal/config"
	"github.com/dyluth/kennel/internal/dashboard"
	"github.com/dyluth/kennel/internal/printer"
	"github.com/spf13/cobra"
)

var serveCatalogPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard web server",
	Long: `Start the dashboard web server.

Connects to the record store (fatal if unreachable), then serves:
  • The interactive dashboard page at /
  • JSON endpoints under /api/ for the table, chart, and map
  • A store health check at /healthz

The listen address and store credentials come from the KENNEL_*
environment variables. Shut down with Ctrl-C.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveCatalogPath, "catalog", "", "Path to a YAML filter catalog (built-in filters if omitted)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cat, err := loadCatalog(serveCatalogPath)
	if err != nil {
		return err
	}

	store, cfg, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	printer.Success("Connected to record store at %s (db=%s, collection=%s)\n",
		cfg.StoreOptions().Addr, config.Database, config.Collection)

	srv := dashboard.NewServer(store, cat, cfg.DefaultCenter())
	if err := srv.Start(cfg.ListenAddr); err != nil {
		return printer.Error("Cannot start dashboard server", err.Error(), nil)
	}
	printer.Info("Dashboard listening on %s\n", cfg.ListenAddr)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigCh
	printer.Info("Received signal %v, shutting down gracefully...\n", sig)

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
