package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/sdcops/muppet/internal/adapters/logging"
	"github.com/sdcops/muppet/internal/adapters/metrics"
	configadapter "github.com/sdcops/muppet/internal/adapters/secondary/config"
	"github.com/sdcops/muppet/internal/adapters/secondary/coordination"
	"github.com/sdcops/muppet/internal/adapters/secondary/lbreload"
	"github.com/sdcops/muppet/internal/adapters/secondary/nicinfo"
	"github.com/sdcops/muppet/internal/core/domain"
)

var (
	mdataTimeout time.Duration
	reloadCmd    []string
	metricsAddr  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load the configuration, classify host addresses, and watch the registrar",
	RunE:  runDaemon,
}

func init() {
	runCmd.Flags().DurationVar(&mdataTimeout, "mdata-timeout", 30*time.Second, "Timeout for fetching NIC metadata")
	runCmd.Flags().StringSliceVar(&reloadCmd, "reload-cmd", nil, "Load balancer reload command (empty logs only)")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address for the Prometheus metrics listener (empty disables)")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.New(os.Stdout, logLevel)
	log.Info("muppet has started", slog.String("config", configPath))

	cfg, err := loadAndClassify(ctx, log)
	if err != nil {
		return err
	}

	if metricsAddr != "" {
		go serveMetrics(log, metricsAddr)
	}

	builder := coordination.NewSessionBuilder(log)
	session, err := builder.Build(ctx, cfg.Coordination())
	if err != nil {
		return err
	}
	defer session.Close()

	reloader := lbreload.NewCommandReloader(log, reloadCmd)
	watcher := coordination.NewWatcher(log, session, reloader)
	return watcher.Run(ctx, coordination.RegistrarPath(cfg.Name()))
}

// loadAndClassify is the startup path: load the config, fetch and parse the
// live NIC inventory, and classify it.
func loadAndClassify(ctx context.Context, log *slog.Logger) (*domain.Config, error) {
	provider := configadapter.NewFileProvider()
	cfg, err := provider.Load(ctx, configPath)
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, mdataTimeout)
	defer cancel()
	raw, err := nicinfo.NewMdataSource().Fetch(fetchCtx)
	if err != nil {
		return nil, err
	}

	inventory, err := nicinfo.NewParser(log).ParseInventory(raw)
	if err != nil {
		return nil, err
	}

	cfg.ClassifyInventory(inventory)
	metrics.SetUntrustedAddresses(cfg.UntrustedIPs().Len())
	log.Info("host addresses classified",
		slog.Int("inventory", inventory.Len()),
		slog.Any("untrusted", cfg.UntrustedIPs().Strings()))

	return cfg, nil
}

func serveMetrics(log *slog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("metrics listener failed", slog.String("error", err.Error()))
	}
}
