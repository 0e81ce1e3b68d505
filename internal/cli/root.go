// Package cli implements the muppet command set.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "muppet",
	Short: "Service-discovery-driven load balancer daemon",
	Long: `Muppet is an HTTP load balancer (haproxy) companion daemon that
interacts with ZooKeeper via registrar. It updates the load balancer with
new configuration as hosts come and go from the configured service name,
and classifies the host's own addresses into trust tiers at startup.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "file", "f", "etc/config.json", "Configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}
