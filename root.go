package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Frontends accepted by --frontend.
const (
	frontendWindow   = "window"
	frontendTerminal = "terminal"
	frontendHeadless = "headless"
)

// runOptions holds the root command's flags.
type runOptions struct {
	configPath     string
	frontend       string
	seed           int64
	maxTicks       int
	stepsPerUpdate int
	outputDir      string
	logStats       bool
	statsWindow    float64
	metricsAddr    string
	sound          bool
}

// NewRootCmd creates the root command. Without a subcommand it runs the arena.
func NewRootCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "dinos",
		Short: "Dinosaurs chase, fight and respawn in a bounded arena",
		Long: `dinos runs a small arena where each dinosaur pursues a target,
collisions are resolved as fights, and losers respawn after a short delay.

Click a dinosaur to change its target. Space pauses, ',' and '.' change speed.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.frontend {
			case frontendWindow, frontendTerminal, frontendHeadless:
			default:
				return fmt.Errorf("unknown frontend %q (want window, terminal or headless)", opts.frontend)
			}
			return run(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.yaml (empty = defaults)")

	flags := cmd.Flags()
	flags.StringVar(&opts.frontend, "frontend", frontendWindow, "window, terminal or headless")
	flags.Int64Var(&opts.seed, "seed", 0, "RNG seed (0 = time-based)")
	flags.IntVar(&opts.maxTicks, "max-ticks", 0, "stop after N ticks (0 = unlimited)")
	flags.IntVar(&opts.stepsPerUpdate, "steps-per-update", 1, "simulation ticks per update call")
	flags.StringVar(&opts.outputDir, "output-dir", "", "directory for CSV logs and a config snapshot")
	flags.BoolVar(&opts.logStats, "log-stats", false, "log window stats and every combat")
	flags.Float64Var(&opts.statsWindow, "stats-window", 0, "stats window in seconds (0 = config)")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flags.BoolVar(&opts.sound, "sound", false, "chirp on every elimination")

	cmd.AddCommand(NewValidateCmd(opts))

	return cmd
}
