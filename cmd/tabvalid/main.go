// Command tabvalid runs tabular validation analytics defined in YAML or
// TOML configuration files against a dataset read from a JSON file.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lblanes25/tabvalid/internal/telemetry"
)

func main() {
	shutdown, err := telemetry.InitGlobal()
	if err != nil {
		fmt.Fprintln(os.Stderr, "telemetry: falling back to no-op providers:", err)
	} else {
		defer shutdown(context.Background())
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
