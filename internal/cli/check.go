package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdcops/muppet/internal/adapters/logging"
	configadapter "github.com/sdcops/muppet/internal/adapters/secondary/config"
	"github.com/sdcops/muppet/internal/adapters/secondary/nicinfo"
	"github.com/sdcops/muppet/internal/core/ports"
)

var inventoryPath string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a configuration file and print the resulting classification",
	Long: `Check loads the configuration file, obtains a NIC inventory (from
--inventory, or live host metadata when omitted), runs the trust
classification, and prints the classified configuration as JSON.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&inventoryPath, "inventory", "", "NIC inventory JSON file (defaults to live host metadata)")
}

// checkResult is the printable view of a classified configuration.
type checkResult struct {
	Name         string   `json:"name"`
	TrustedIP    string   `json:"trusted_ip"`
	AdminIPs     []string `json:"admin_ips,omitempty"`
	ServiceIPs   []string `json:"service_ips,omitempty"`
	UntrustedIPs []string `json:"untrusted_ips,omitempty"`
	Servers      []string `json:"coordination_servers"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.New(os.Stderr, logLevel)

	cfg, err := configadapter.NewFileProvider().Load(ctx, configPath)
	if err != nil {
		return err
	}

	var source ports.InventorySource = nicinfo.NewMdataSource()
	if inventoryPath != "" {
		source = fileInventory{path: inventoryPath}
	}
	raw, err := source.Fetch(ctx)
	if err != nil {
		return err
	}

	inventory, err := nicinfo.NewParser(log).ParseInventory(raw)
	if err != nil {
		return err
	}
	cfg.ClassifyInventory(inventory)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(checkResult{
		Name:         cfg.Name(),
		TrustedIP:    cfg.TrustedIP().String(),
		AdminIPs:     cfg.AdminIPs().Strings(),
		ServiceIPs:   cfg.ServiceIPs().Strings(),
		UntrustedIPs: cfg.UntrustedIPs().Strings(),
		Servers:      cfg.Coordination().Endpoints(),
	})
}

// fileInventory satisfies ports.InventorySource from a file on disk, for
// checking a configuration against a captured inventory.
type fileInventory struct {
	path string
}

func (f fileInventory) Fetch(_ context.Context) ([]byte, error) {
	return os.ReadFile(f.path)
}
