package main

import (
	"github.com/spf13/cobra"
)

var (
	catalogueDBPath string
	noColor         bool
)

var rootCmd = &cobra.Command{
	Use:   "udgerua",
	Short: "udgerua - User-Agent classification against a Udger v3 catalogue",
	Long: `udgerua identifies the client (browser), operating system, device class,
and device brand behind a User-Agent string, using a compiled Udger v3
rule catalogue.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogueDBPath, "db", "udgerdb_v3.dat", "Path to the Udger v3 catalogue sqlite file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
