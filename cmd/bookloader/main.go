package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/bookloader/internal/config"
)

var (
	dataDir    string
	configFile string
	preset     string
	scale      float64
	policy     string
	logLevel   string
	// sampling
	dt       float64
	duration float64
	warmup   float64
	taps     []float64
	runName  string
	// export
	withSamples bool
	// live view
	theme     string
	frameRate int
	gifPath   string
	fast      bool
	// rendering
	outPath    string
	imgWidth   int
	imgHeight  int
	color      string
	background string
	caption    bool
	workers    int
	at         float64
	braille    bool
	// plots and comparisons
	columns []string
	scales  []float64
)

// main registers commands and flags, opens the live view when no subcommand
// is given, and exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:               "bookloader",
		Short:             "looping book loading animation",
		SilenceUsage:      true,
		RunE:              runLive,
		PersistentPreRunE: setup,
		PersistentPostRun: teardown,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", "", "data directory (default .bookloader)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&scale, "scale", config.DefaultScale, "animation scale, seconds per timing unit")
	pf.StringVar(&policy, "policy", "restart", "re-tap policy: restart or overlap")
	pf.StringVar(&logLevel, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR")
	addLiveFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the animation in the terminal",
		RunE:  runLive,
	}
	addLiveFlags(liveCmd)

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play a sampled run as plain ANSI frames",
		RunE:  playRun,
	}
	addSampleFlags(playCmd)
	playCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second")
	playCmd.Flags().BoolVar(&fast, "fast", false, "draw frames without real-time pacing")

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "print the transform table",
		RunE:  printTable,
	}

	timelineCmd := &cobra.Command{
		Use:   "timeline",
		Short: "print every choreography event of a sampled run",
		RunE:  printTimeline,
	}
	addSampleFlags(timelineCmd)

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "sample a run and save it",
		RunE:  recordRun,
	}
	addSampleFlags(recordCmd)
	recordCmd.Flags().StringVar(&runName, "name", "run", "run name prefix")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run columns (latest run by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&columns, "columns", []string{"holder_angle", "left_cover_angle", "right_cover_angle", "right_bar_angle"}, "columns to plot")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and events to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().BoolVar(&withSamples, "samples", false, "include sampled columns")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare cycle counts across animation scales",
		RunE:  compareScales,
	}
	addSampleFlags(compareCmd)
	compareCmd.Flags().Float64SliceVar(&scales, "scales", []float64{0.25, 0.4, 0.7}, "animation scales")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames to a PNG directory or a .gif file",
		RunE:  renderFrames,
	}
	addSampleFlags(renderCmd)
	addImageFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "frames", "output directory, or a .gif path")
	renderCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second")
	renderCmd.Flags().IntVar(&workers, "workers", 0, "parallel render workers (0 = all CPUs)")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "write one frame as SVG",
		RunE:  writeSVG,
	}
	addImageFlags(svgCmd)
	svgCmd.Flags().Float64Var(&at, "at", 2, "time of the frame in seconds")
	svgCmd.Flags().Float64Var(&warmup, "warmup", 0, "delay before the first tap (seconds)")
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().BoolVar(&braille, "braille", false, "export the terminal braille rendering instead")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective config to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(liveCmd, playCmd, tableCmd, timelineCmd, recordCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, compareCmd, renderCmd, svgCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLiveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&theme, "theme", "", "color theme")
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().StringVar(&gifPath, "gif", "bookloader.gif", "where G saves recordings")
}

func addSampleFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "sampling step (seconds)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (seconds)")
	cmd.Flags().Float64Var(&warmup, "warmup", 0, "delay before the first tap (seconds)")
	cmd.Flags().Float64SliceVar(&taps, "taps", nil, "explicit tap times (seconds), overrides --warmup")
}

func addImageFlags(cmd *cobra.Command) {
	d := config.DefaultConfig().Render
	cmd.Flags().IntVar(&imgWidth, "width", d.Width, "image width")
	cmd.Flags().IntVar(&imgHeight, "height", d.Height, "image height")
	cmd.Flags().StringVar(&color, "color", d.Color, "stroke color")
	cmd.Flags().StringVar(&background, "background", d.Background, "background color")
	cmd.Flags().BoolVar(&caption, "caption", false, "print the time in each frame")
}

func printErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
