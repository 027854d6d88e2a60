// Command hypo is the CLI entry point over the analytical engine defined
// by internal/{typesystem,model,provider,hypocontext,hydration,hydrators,
// mapping,mappingcompletion}. It follows the teacher's parse-flags ->
// build-config -> run -> print shape (cmd/morfx/main.go) with cobra
// subcommand dispatch the way the teacher's demo/cmd/main.go wires cobra.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hypo",
		Short: "Analytical model over compiled class files",
		Long:  "Hypo ingests class files from multiple roots, hydrates a derived-relationship graph over them, and completes name mappings against that graph.",
	}
	root.AddCommand(newHydrateCmd(), newMapCmd(), newStatsCmd())
	return root
}
