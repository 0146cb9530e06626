package main

import (
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "arbor",
	Short:        "Arbor is a behavior-tree evaluation engine",
	Long:         `Arbor builds behavior trees from YAML or JSON files and ticks them, locally or behind an HTTP inspector.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", cli.DefaultConfigFile, "Path to the arbor.yaml configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// loadConfig reads the --config file and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (cli.Config, bool, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	cfg, err := cli.LoadConfig(path)
	return cfg, debug, err
}
