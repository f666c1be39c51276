package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/dinos/config"
	"github.com/pthm-cable/dinos/game"
)

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd(opts *runOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration without starting the arena",
		Long: `Loads the configuration, validates it, and checks that the roster fits
the headless play area at the configured spacing.
Exits with code 0 on success, non-zero on failure.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate(opts.configPath)
		},
	}
}

func runValidate(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sub := game.NewHeadless(cfg)
	if err := cfg.ValidateLayout(float64(sub.Width), float64(sub.Height),
		float64(sub.FootprintW), float64(sub.FootprintH)); err != nil {
		return err
	}

	slog.Info("config valid",
		"actors", cfg.Derived.N,
		"play_w", sub.Width,
		"play_h", sub.Height,
	)
	return nil
}
