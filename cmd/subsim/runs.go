package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/subsim/internal/analysis"
	"github.com/san-kum/subsim/internal/storage"
	"github.com/san-kum/subsim/internal/viz"
)

func openStore() *storage.Store {
	return storage.New(dataDir)
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := openStore().List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRESET\tINTEGRATOR\tDURATION\tSTEPS\tTIMESTAMP")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%d\t%s\n",
					r.ID, r.Preset, r.Integrator, r.Duration, r.Steps, r.Timestamp.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
}

func newPlotCmd() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot attitude, rates, angle of attack, velocity and track of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, err := openStore().LoadSamples(args[0])
			if err != nil {
				return err
			}
			if len(samples) == 0 {
				return fmt.Errorf("run %s has no samples", args[0])
			}

			for _, chart := range viz.RunCharts(samples, width, height) {
				fmt.Println(chart)
				fmt.Println()
			}
			for _, view := range []viz.TrackView{viz.SideView, viz.TopView} {
				fmt.Printf("track (%s)\n", view)
				fmt.Println(viz.Track(samples, view, width/2, height))
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "chart width")
	cmd.Flags().IntVar(&height, "height", 10, "chart height")
	return cmd
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := openStore().Load(args[0])
			if err != nil {
				return err
			}
			return storage.ExportMetadata(os.Stdout, *meta)
		},
	}
}

// outputFile returns stdout when path is empty.
func outputFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func newExportCSVCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, err := openStore().LoadSamples(args[0])
			if err != nil {
				return err
			}
			out, err := outputFile(output)
			if err != nil {
				return err
			}
			defer out.Close()

			if err := storage.WriteCSV(out, samples); err != nil {
				return err
			}
			if output != "" {
				logger.Info("exported", zap.String("run", args[0]), zap.String("path", output), zap.Int("rows", len(samples)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newExportJSONCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := openStore()
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			samples, err := st.LoadSamples(args[0])
			if err != nil {
				return err
			}
			out, err := outputFile(output)
			if err != nil {
				return err
			}
			defer out.Close()

			if err := storage.ExportJSON(out, *meta, samples); err != nil {
				return err
			}
			if output != "" {
				logger.Info("exported", zap.String("run", args[0]), zap.String("path", output))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

const brailleDot = 4

func newExportSVGCmd() *cobra.Command {
	var output, view, theme string
	var width, height int
	var braille bool
	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the track of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tv viz.TrackView
			switch view {
			case "side":
				tv = viz.SideView
			case "top":
				tv = viz.TopView
			default:
				return fmt.Errorf("unknown view: %s (available: side, top)", view)
			}
			names := viz.ThemeNames()
			if !slices.Contains(names, theme) {
				return fmt.Errorf("unknown theme: %s (available: %s)", theme, strings.Join(names, ", "))
			}
			th := viz.GetTheme(theme)

			samples, err := openStore().LoadSamples(args[0])
			if err != nil {
				return err
			}
			if len(samples) < 2 {
				return fmt.Errorf("run %s has too few samples to draw", args[0])
			}

			var svg string
			if braille {
				// one braille cell is 2x4 dots, each dot brailleDot px square
				c := viz.TrackCanvas(samples, tv, max(1, width/(2*brailleDot)), max(1, height/(4*brailleDot)))
				svg = viz.CanvasSVG(c, brailleDot, th)
			} else {
				svg = viz.TrackSVG(samples, tv, width, height, th)
			}

			out, err := outputFile(output)
			if err != nil {
				return err
			}
			defer out.Close()

			if _, err := io.WriteString(out, svg); err != nil {
				return err
			}
			if output != "" {
				logger.Info("exported", zap.String("run", args[0]), zap.String("path", output), zap.String("view", view))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&view, "view", "side", "track view (side, top)")
	cmd.Flags().StringVar(&theme, "theme", "ocean", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	cmd.Flags().BoolVar(&braille, "braille", false, "render the braille dot track instead of a vector path")
	cmd.Flags().IntVar(&width, "width", 800, "image width in px")
	cmd.Flags().IntVar(&height, "height", 400, "image height in px")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var signals []string
	cmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum, dominant period and damping of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := openStore()
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			samples, err := st.LoadSamples(args[0])
			if err != nil {
				return err
			}

			for _, name := range signals {
				sig, err := analysis.ParseSignal(name)
				if err != nil {
					return err
				}
				data := analysis.Series(samples, sig)

				fmt.Printf("%s\n", sig)
				if sum, err := analysis.Summarize(data); err == nil {
					fmt.Printf("  min %.4f  max %.4f  mean %.4f  median %.4f  std %.4f  rms %.4f  final %.4f\n",
						sum.Min, sum.Max, sum.Mean, sum.Median, sum.StdDev, sum.RMS, sum.Final)
				}
				freq, period, err := analysis.DominantFrequency(data, meta.Dt)
				if err != nil {
					fmt.Printf("  spectrum: %v\n\n", err)
					continue
				}
				fmt.Printf("  dominant frequency: %.4f Hz (period %.3f s)\n", freq, period)
				if delta, zeta, err := analysis.LogDecrement(data); err == nil {
					fmt.Printf("  log decrement: %.4f (damping ratio %.4f)\n", delta, zeta)
				}

				spec, _ := analysis.PowerSpectrum(data, meta.Dt)
				bins := spec.Power
				if len(bins) > 120 {
					bins = bins[:120]
				}
				fmt.Println(asciigraph.Plot(bins,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption(fmt.Sprintf("%s spectrum, %.3f Hz per bin", sig, spec.Frequencies[1])),
				))
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&signals, "signal", []string{"roll", "pitch"}, "signals to analyze")
	return cmd
}
