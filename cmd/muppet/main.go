// muppet is a small daemon that keeps an HTTP load balancer in sync with
// service membership registered in ZooKeeper, applying per-address trust
// policy derived from the host's network configuration.
package main

import (
	"fmt"
	"os"

	"github.com/sdcops/muppet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
