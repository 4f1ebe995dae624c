package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/subsim/internal/config"
	"github.com/san-kum/subsim/internal/experiment"
	"github.com/san-kum/subsim/internal/storage"
	"github.com/san-kum/subsim/internal/viz"
)

func newRunCmd() *cobra.Command {
	var flags simFlags
	var noSave bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			exp := experiment.New(cfg, nil, logger)
			if err := exp.Setup(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			logger.Info("running simulation",
				zap.String("preset", flags.preset),
				zap.String("integrator", cfg.Integrator),
				zap.Float64("duration", cfg.Duration),
			)
			start := time.Now()
			result, err := exp.Run(ctx)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Printf("completed in %v\n", elapsed)
			fmt.Printf("steps: %d\n", result.StepsTaken)

			if !noSave {
				st := storage.New(dataDir)
				if err := st.Init(); err != nil {
					return err
				}
				runID, err := st.Save(flags.preset, cfg, result)
				if err != nil {
					return err
				}
				fmt.Printf("run id: %s\n", runID)
			}

			fmt.Println("\nmetrics:")
			printMetrics(result.Metrics)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	return cmd
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, metrics[name])
	}
	w.Flush()
}

func newLiveCmd() *cobra.Command {
	var flags simFlags
	cmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			// the live view owns the terminal
			exp := experiment.New(cfg, nil, zap.NewNop())
			if err := exp.Setup(); err != nil {
				return err
			}

			p := tea.NewProgram(viz.NewModel(exp.Simulator()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func newSweepCmd() *cobra.Command {
	var workers int
	var duration float64
	var save bool
	cmd := &cobra.Command{
		Use:   "sweep [preset...]",
		Short: "run several presets in parallel and compare their metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = config.ListPresets()
			}

			cases := make([]experiment.Case, 0, len(names))
			for _, name := range names {
				cfg := config.GetPreset(name)
				if cfg == nil {
					return fmt.Errorf("unknown preset: %s", name)
				}
				if cmd.Flags().Changed("time") {
					cfg.Duration = duration
				}
				cases = append(cases, experiment.Case{Name: name, Config: cfg})
			}

			results, err := runCases(cases, workers, save)
			if err != nil {
				return err
			}
			printSweep(results)
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = one per CPU)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration of every run in seconds")
	cmd.Flags().BoolVar(&save, "save", false, "store every run")
	return cmd
}

func printSweep(results []experiment.CaseResult) {
	if len(results) == 0 {
		return
	}
	var metricNames []string
	for name := range results[0].Result.Metrics {
		metricNames = append(metricNames, name)
	}
	sort.Strings(metricNames)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "CASE\t%s\n", strings.ToUpper(strings.Join(metricNames, "\t")))
	for _, r := range results {
		fmt.Fprint(w, r.Name)
		for _, name := range metricNames {
			fmt.Fprintf(w, "\t%.4f", r.Result.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func newConfigCmd() *cobra.Command {
	var flags simFlags
	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				logger.Warn("configuration is invalid", zap.Error(err))
			}
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}
	flags.register(cmd)
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDURATION\tROLL\tPITCH\tSPEED\tFINS")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fins := cfg.Submarine.HorizontalFins.Enabled || cfg.Submarine.VerticalFins.Enabled
				fmt.Fprintf(w, "%s\t%.0fs\t%.2f\t%.2f\t%.2f\t%v\n",
					name, cfg.Duration, cfg.Initial.Roll, cfg.Initial.Pitch, cfg.Initial.Velocity.Len(), fins)
			}
			return w.Flush()
		},
	}
}
