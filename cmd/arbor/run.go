package main

import (
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <file|dir>",
	Short: "Tick a behavior tree",
	Long: `Loads a tree and ticks it with a fixed delta, printing the status of every tick.
A directory runs its entry point: main, root, or the tree named after the directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, debug, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		opts := cli.RunOptions{Path: args[0], Debug: debug, Config: cfg}
		opts.Ticks, _ = flags.GetInt("ticks")
		opts.UntilDone, _ = flags.GetBool("until-done")
		opts.JSON, _ = flags.GetBool("json")
		opts.Quiet, _ = flags.GetBool("quiet")

		opts.Delta = cfg.Tick.Delta
		if flags.Changed("delta") {
			opts.Delta, _ = flags.GetFloat64("delta")
		}
		opts.Interval = cfg.Tick.Interval
		if flags.Changed("interval") {
			opts.Interval, _ = flags.GetDuration("interval")
		}
		if flags.Changed("redis") {
			cfg.Redis.Addr, _ = flags.GetString("redis")
			opts.Config = cfg
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		_, err = cli.Run(sigCtx, opts, os.Stdout)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("ticks", "n", 1, "Number of ticks (0 runs until interrupted)")
	runCmd.Flags().Float64("delta", 0.1, "Seconds written to 'delta' before each tick")
	runCmd.Flags().Duration("interval", 0, "Wall-clock pause between ticks")
	runCmd.Flags().Bool("until-done", false, "Stop at the first status other than RUNNING")
	runCmd.Flags().Bool("json", false, "Print one JSON record per tick (NDJSON)")
	runCmd.Flags().BoolP("quiet", "q", false, "Do not print tick lines")
	runCmd.Flags().String("redis", "", "Redis address backing the global scope")
}
