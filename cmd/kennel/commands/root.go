package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kennel",
	Short: "Kennel - animal outcomes dashboard",
	Long: `Kennel serves an interactive dashboard over a collection of animal
outcome records: a filterable table, a breed distribution chart, and a
map of the selected animal's last known location.

Records live in a Redis-backed document store addressed via the
KENNEL_STORE_* environment variables. The rescue-type filters are built
in and can be overridden with a YAML catalog file.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
