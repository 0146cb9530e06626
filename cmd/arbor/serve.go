package main

import (
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP inspector",
	Long:  `Serves the trees of a directory and a set of agents over HTTP, with Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, debug, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := cli.ServeOptions{Debug: debug, Config: cfg, Port: cfg.HTTP.Port}
		opts.Dir, _ = cmd.Flags().GetString("dir")
		if cmd.Flags().Changed("port") {
			opts.Port, _ = cmd.Flags().GetString("port")
		}
		if cmd.Flags().Changed("redis") {
			opts.Config.Redis.Addr, _ = cmd.Flags().GetString("redis")
		}

		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout)
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		return cli.Serve(sigCtx, opts, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("dir", ".", "Directory containing the tree files")
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for snapshots, locks and the global scope")
}
