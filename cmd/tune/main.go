// Package main searches pacing parameters so headless arenas reach a target combat rate.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/dinos/config"
)

// evalRow is one line of tune_log.csv.
type evalRow struct {
	Eval        int     `csv:"eval"`
	Loss        float64 `csv:"loss"`
	Rate        float64 `csv:"combats_per_min"`
	SpeedFactor float64 `csv:"speed_factor"`
	RespawnMin  float64 `csv:"respawn_min"`
	RespawnMax  float64 `csv:"respawn_max"`
}

type tuneOptions struct {
	configPath string
	outputDir  string
	target     float64
	seeds      int
	maxTicks   int
	maxEvals   int
}

func main() {
	if err := newTuneCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newTuneCmd() *cobra.Command {
	opts := &tuneOptions{}
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Search speed and respawn timing for a target combat rate",
		Long: `tune runs headless arenas over several seeds and uses CMA-ES to find
steering.speed_factor and the respawn range that produce the requested number
of combats per simulated minute. The best configuration is written as YAML.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTune(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "base config YAML (empty = defaults)")
	flags.StringVar(&opts.outputDir, "output", "", "output directory for results (required)")
	flags.Float64Var(&opts.target, "target", 12, "target combats per simulated minute")
	flags.IntVar(&opts.seeds, "seeds", 3, "seeds per evaluation")
	flags.IntVar(&opts.maxTicks, "max-ticks", 36000, "ticks per run")
	flags.IntVar(&opts.maxEvals, "max-evals", 60, "maximum number of evaluations")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runTune(opts *tuneOptions) error {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if opts.target <= 0 {
		return fmt.Errorf("target must be positive, got %v", opts.target)
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	baseCfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := baseCfg.Validate(); err != nil {
		return err
	}

	params := NewParamVector()
	seeds := make([]int64, opts.seeds)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewPacingEvaluator(params, baseCfg, seeds, int32(opts.maxTicks), opts.target)

	logFile, err := os.Create(filepath.Join(opts.outputDir, "tune_log.csv"))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	var rows []evalRow
	var bestLoss = 1e18
	var bestRaw []float64
	start := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			loss := evaluator.Evaluate(raw)
			rate := evaluator.LastRate()

			if loss < bestLoss {
				bestLoss = loss
				bestRaw = raw
			}

			row := evalRow{
				Eval:        len(rows) + 1,
				Loss:        loss,
				Rate:        rate,
				SpeedFactor: raw[0],
				RespawnMin:  raw[1],
				RespawnMax:  raw[1] + raw[2],
			}
			rows = append(rows, row)
			fmt.Printf("Eval %d/%d: %.2f combats/min (target %.2f) loss=%.4f | elapsed %s\n",
				row.Eval, opts.maxEvals, rate, opts.target, loss, time.Since(start).Round(time.Second))
			return loss
		},
	}

	settings := &optimize.Settings{FuncEvaluations: opts.maxEvals}
	method := &optimize.CmaEsChol{InitStepSize: 0.2}

	initX := params.Normalize(params.FromConfig(baseCfg))
	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		slog.Warn("optimization ended", "error", err)
	}

	if err := gocsv.MarshalFile(&rows, logFile); err != nil {
		return fmt.Errorf("writing tune log: %w", err)
	}
	if bestRaw == nil {
		return fmt.Errorf("no evaluations completed")
	}

	best, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	params.ApplyToConfig(best, bestRaw)
	outPath := filepath.Join(opts.outputDir, "best_config.yaml")
	if err := best.WriteYAML(outPath); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}

	fmt.Printf("\nBest loss %.4f after %d evaluations\n", bestLoss, len(rows))
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Path, bestRaw[i])
	}
	fmt.Printf("Best config saved to: %s\n", outPath)
	return nil
}
