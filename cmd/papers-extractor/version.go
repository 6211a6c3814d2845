package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "papers-extractor %s\n", version)
		_, _ = fmt.Fprintf(out, "  Go:     %s\n", runtime.Version())
		_, _ = fmt.Fprintf(out, "  Commit: %s\n", commit)
	},
}
