package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/subsim/internal/automation"
	"github.com/san-kum/subsim/internal/config"
	"github.com/san-kum/subsim/internal/experiment"
	"github.com/san-kum/subsim/internal/optim"
	"github.com/san-kum/subsim/internal/storage"
)

// runCases sweeps cases until done or interrupted, storing each run when
// save is set.
func runCases(cases []experiment.Case, workers int, save bool) ([]experiment.CaseResult, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := experiment.Sweep(ctx, cases, workers, nil, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("sweep complete", zap.Int("cases", len(results)), zap.Duration("elapsed", time.Since(start)))

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return nil, err
		}
		for i, r := range results {
			runID, err := st.Save(r.Name, cases[i].Config, r.Result)
			if err != nil {
				return nil, err
			}
			logger.Info("stored", zap.String("case", r.Name), zap.String("run", runID))
		}
	}
	return results, nil
}

func newScenarioCmd() *cobra.Command {
	var workers int
	var save bool
	cmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every case of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			cases, err := sc.Resolve()
			if err != nil {
				return err
			}
			logger.Info("scenario", zap.String("name", sc.Name), zap.Int("cases", len(cases)))

			results, err := runCases(cases, workers, save)
			if err != nil {
				return err
			}
			if sc.Description != "" {
				fmt.Println(sc.Description)
			}
			printSweep(results)
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = one per CPU)")
	cmd.Flags().BoolVar(&save, "save", false, "store every run")
	return cmd
}

func newMonteCarloCmd() *cobra.Command {
	var flags simFlags
	var workers, trials int
	var seed int64
	var perturb []string
	var metric string
	var limit float64
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb parameters at random and report the spread of a metric",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if err := base.Validate(); err != nil {
				return err
			}

			spread := make(map[string]float64, len(perturb))
			for _, p := range perturb {
				name, amount, err := parseAssignment(p)
				if err != nil {
					return err
				}
				spread[name] = amount
			}
			cases, err := automation.MonteCarloCases(base, automation.MonteCarloConfig{
				Trials:       trials,
				Perturbation: spread,
				Seed:         seed,
			})
			if err != nil {
				return err
			}

			results, err := runCases(cases, workers, false)
			if err != nil {
				return err
			}
			s := automation.Summarize(results, metric, limit)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "metric\t%s\n", s.Metric)
			fmt.Fprintf(w, "trials\t%d\n", s.Trials)
			fmt.Fprintf(w, "within %g\t%d (%.0f%%)\n", limit, s.Bounded, 100*float64(s.Bounded)/float64(s.Trials))
			fmt.Fprintf(w, "mean\t%.4f\n", s.Mean)
			fmt.Fprintf(w, "std dev\t%.4f\n", s.StdDev)
			fmt.Fprintf(w, "min / max\t%.4f / %.4f\n", s.Min, s.Max)
			fmt.Fprintf(w, "p95\t%.4f\n", s.P95)
			return w.Flush()
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = one per CPU)")
	cmd.Flags().IntVar(&trials, "trials", 50, "number of runs")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = from clock)")
	cmd.Flags().StringSliceVar(&perturb, "perturb", []string{"initial.roll=0.3", "initial.pitch=0.1"}, "name=amount, uniform in ±amount")
	cmd.Flags().StringVar(&metric, "metric", "max_roll", "metric to summarise")
	cmd.Flags().Float64Var(&limit, "limit", math.Pi/4, "metric bound counted as acceptable")
	return cmd
}

func parseAssignment(s string) (string, float64, error) {
	p, err := optim.ParseParam(s)
	if err != nil {
		return "", 0, err
	}
	if len(p.Values) != 1 {
		return "", 0, fmt.Errorf("%s: want a single value", s)
	}
	return p.Name, p.Values[0], nil
}

func newTuneCmd() *cobra.Command {
	var flags simFlags
	var workers, top int
	var grid []string
	var metric string
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search config parameters to minimise a metric",
		Long: "grid search config parameters to minimise a metric\n\n" +
			"parameters: " + strings.Join(config.ParamNames(), ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if len(grid) == 0 {
				return fmt.Errorf("no --grid parameters given")
			}
			params := make([]optim.Param, len(grid))
			for i, g := range grid {
				if params[i], err = optim.ParseParam(g); err != nil {
					return err
				}
			}

			search := optim.NewGridSearch(params, workers, logger)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			trials, err := search.Search(ctx, base, metric, nil)
			if err != nil {
				return err
			}

			if top > 0 && top < len(trials) {
				trials = trials[:top]
			}
			names := make([]string, len(params))
			for i, p := range params {
				names[i] = p.Name
			}
			sort.Strings(names)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(metric))
			for _, t := range trials {
				for _, name := range names {
					fmt.Fprintf(w, "%g\t", t.Params[name])
				}
				fmt.Fprintf(w, "%.4f\n", t.Value)
			}
			return w.Flush()
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = one per CPU)")
	cmd.Flags().IntVar(&top, "top", 10, "rows to show (0 = all)")
	cmd.Flags().StringArrayVar(&grid, "grid", nil, "name=v1,v2,... or name=lo:hi:n (repeatable)")
	cmd.Flags().StringVar(&metric, "metric", "max_roll", "metric to minimise")
	return cmd
}
