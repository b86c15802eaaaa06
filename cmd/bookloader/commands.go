package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/bookloader/internal/book"
	"github.com/san-kum/bookloader/internal/config"
	"github.com/san-kum/bookloader/internal/loader"
	"github.com/san-kum/bookloader/internal/render"
	"github.com/san-kum/bookloader/internal/sim"
	"github.com/san-kum/bookloader/internal/storage"
	"github.com/san-kum/bookloader/internal/tui"
	"github.com/san-kum/bookloader/internal/viz"
)

func runLive(cmd *cobra.Command, args []string) error {
	opts := render.DefaultOptions()
	opts.Width, opts.Height = cfg.Render.Width, cfg.Render.Height
	opts.Color, opts.Background, opts.Caption = cfg.Render.Color, cfg.Render.Background, cfg.Render.Caption

	return viz.RunLive(viz.Options{
		Scale:   cfg.Scale,
		Policy:  bookPolicy(),
		Theme:   cfg.Theme,
		FPS:     cfg.FPS,
		GIFPath: gifPath,
		Render:  opts,
		Logger:  logger,
	})
}

func playRun(cmd *cobra.Command, args []string) error {
	r := tui.NewLiveRenderer(os.Stdout, cfg.FPS)
	r.Realtime = !fast

	sc := samplerConfig()
	sc.Observers = []sim.Observer{r}

	r.Start()
	defer r.Stop()

	res, err := sim.Run(cmd.Context(), sc)
	if err != nil {
		return err
	}
	logger.Info("played", "frames", r.Frames(), "cycles", res.Metrics["cycles"])
	return nil
}

func printTable(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATE\tSTAGE\tPART\tX\tY\tANGLE")

	for _, st := range loader.States {
		for _, stage := range loader.Stages {
			for _, part := range loader.Parts {
				pose := st.Pose(stage, part)
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.0f\n", st, stage, part, pose.Offset.X, pose.Offset.Y, pose.Angle)
			}
		}
	}
	for _, part := range loader.Parts {
		pose := loader.InitialPose(part)
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.0f\n", "initial", "-", part, pose.Offset.X, pose.Offset.Y, pose.Angle)
	}

	return w.Flush()
}

func printTimeline(cmd *cobra.Command, args []string) error {
	result, err := sim.Run(cmd.Context(), samplerConfig())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tEVENT\tSTATE")
	for _, e := range result.Events {
		fmt.Fprintf(w, "%.3fs\t%s\t%s\n", e.At.Seconds(), e.Name, e.State)
	}
	return w.Flush()
}

func recordRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sc := samplerConfig()
	fmt.Printf("sampling %.1fs at scale %.2f...\n", sc.Duration, sc.Scale)
	start := time.Now()

	result, err := sim.Run(cmd.Context(), sc)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Name:     runName,
		Scale:    sc.Scale,
		Policy:   string(sc.Policy),
		Dt:       sc.Dt,
		Duration: sc.Duration,
		Warmup:   sc.Warmup,
		Taps:     sc.Taps,
	}, result)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", runID, "samples", len(result.Samples), "events", len(result.Events))

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Samples))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %g\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSCALE\tPOLICY\tDURATION\tDT\tCYCLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%.2fs\t%.4fs\t%.0f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Scale,
			run.Policy,
			run.Duration,
			run.Dt,
			run.Metrics["cycles"],
		)
	}

	return w.Flush()
}

// resolveRun returns the run named in args, or the latest one.
func resolveRun(st *storage.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return st.Latest()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	table, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(table.Rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scale: %.2f  policy: %s\n", meta.Scale, meta.Policy)
	fmt.Printf("samples: %d\n\n", len(table.Rows))

	for _, name := range columns {
		data := table.Column(name)
		if data == nil {
			return fmt.Errorf("unknown column %q", name)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}

	table, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(table.Rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time"}, table.Columns...)); err != nil {
		return err
	}
	for i, row := range table.Rows {
		record := []string{strconv.FormatFloat(table.Times[i], 'f', 6, 64)}
		for _, val := range row {
			record = append(record, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	var table *storage.Table
	if withSamples {
		if table, err = st.LoadSamples(runID); err != nil {
			return err
		}
	}
	return storage.WriteJSON(os.Stdout, meta, table)
}

func compareScales(cmd *cobra.Command, args []string) error {
	sc := samplerConfig()
	results, err := sim.Sweep(cmd.Context(), sc, scales)
	if err != nil {
		return err
	}

	fmt.Printf("comparing scales over %.1fs (dt=%.4f)\n\n", sc.Duration, sc.Dt)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCALE\tFIRST BOOK\tPERIOD\tCYCLES\tPAGE LOOPS\tFINAL STATE")
	for i, r := range results {
		first := "-"
		for _, e := range r.Events {
			if e.Name == book.EventBook {
				first = fmt.Sprintf("%.2fs", e.At.Seconds())
				break
			}
		}
		fmt.Fprintf(w, "%.2f\t%s\t%.2fs\t%.0f\t%.0f\t%s\n",
			scales[i],
			first,
			book.RepeatDelay*scales[i],
			r.Metrics["cycles"],
			r.Metrics["page_loops"],
			loader.States[int(r.Metrics["final_state"])],
		)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSCALE\tPOLICY\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		pol := string(p.Policy)
		if pol == "" {
			pol = "restart"
		}
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n", name, p.Scale, pol, p.Description)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := defaultConfigFile
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
