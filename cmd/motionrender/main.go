package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/motionrender/internal/batch"
	"github.com/san-kum/motionrender/internal/chart"
	"github.com/san-kum/motionrender/internal/config"
	"github.com/san-kum/motionrender/internal/encode"
	"github.com/san-kum/motionrender/internal/export"
	"github.com/san-kum/motionrender/internal/gui"
	"github.com/san-kum/motionrender/internal/mocap"
	"github.com/san-kum/motionrender/internal/observability"
	"github.com/san-kum/motionrender/internal/render"
	"github.com/san-kum/motionrender/internal/stats"
	"github.com/san-kum/motionrender/internal/viz"
)

var (
	cfg *config.Config

	configFile string
	preset     string
	logLevel   string

	outPath string

	// Frame selection
	frameIdx   int
	atTime     float64
	startFrame int
	endFrame   int
	stride     int
	workers    int

	// Camera
	elevation float64
	azimuth   float64
	zoom      float64
	distance  float64
	upAxis    string

	// Frame size and rate
	width  int
	height int
	fps    int

	// Drawing toggles
	showBox    bool
	showTitle  bool
	showLabels bool

	// Trajectory charts
	trajJoints  []string
	axisName    string
	chartWidth  int
	chartHeight int

	// Info
	cadenceJoint string

	// Export
	exportFormat string
	indent       bool

	// Batch
	graphPath string
	outDir    string
	outExt    string

	// Demo
	demoOut    string
	demoFrames int
	demoPlay   bool
)

// main is the entry point for the motionrender CLI; it registers commands and flags, resolves configuration (file, preset, flag overrides) before every run, and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:               "motionrender",
		Short:             "load, validate and render motion capture recordings",
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "apply a named preset (see presets)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	validateCmd := &cobra.Command{
		Use:   "validate [series.csv] [graph.txt]",
		Short: "check a series and graph pair for format and consistency errors",
		Args:  cobra.ExactArgs(2),
		RunE:  validateFiles,
	}

	infoCmd := &cobra.Command{
		Use:   "info [series.csv] [graph.txt]",
		Short: "summarize a recording: extent, rate, per-joint motion",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  showInfo,
	}
	infoCmd.Flags().StringVar(&cadenceJoint, "cadence", "", "estimate the step frequency of this joint")
	infoCmd.Flags().StringVar(&axisName, "axis", "z", "coordinate axis for --cadence")

	plotCmd := &cobra.Command{
		Use:   "plot [series.csv] [graph.txt]",
		Short: "render a single frame to PNG or SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  plotFrame,
	}
	plotCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (.png or .svg)")
	plotCmd.Flags().IntVar(&frameIdx, "frame", 0, "frame index to plot")
	plotCmd.Flags().Float64Var(&atTime, "time", 0, "plot the frame nearest this timestamp instead")
	addViewFlags(plotCmd)
	addSizeFlags(plotCmd)

	renderCmd := &cobra.Command{
		Use:   "render [series.csv] [graph.txt]",
		Short: "render an animation, format chosen by output extension",
		Args:  cobra.ExactArgs(2),
		RunE:  renderMovie,
	}
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output movie file")
	renderCmd.Flags().IntVar(&workers, "workers", 0, "parallel frame renderers (0 = all cpus)")
	addClipFlags(renderCmd)
	addViewFlags(renderCmd)
	addSizeFlags(renderCmd)

	trajCmd := &cobra.Command{
		Use:   "traj [series.csv]",
		Short: "chart joint coordinates over time, ASCII or PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTrajectory,
	}
	trajCmd.Flags().StringSliceVar(&trajJoints, "joint", nil, "joint to chart (repeatable)")
	trajCmd.Flags().StringVar(&axisName, "axis", "z", "coordinate axis to chart")
	trajCmd.Flags().IntVar(&chartWidth, "chart-width", 80, "ASCII chart width")
	trajCmd.Flags().IntVar(&chartHeight, "chart-height", 15, "ASCII chart height")
	trajCmd.Flags().StringVarP(&outPath, "out", "o", "", "write a PNG chart instead of ASCII")

	playCmd := &cobra.Command{
		Use:   "play [series.csv] [graph.txt]",
		Short: "play the recording in the terminal",
		Args:  cobra.ExactArgs(2),
		RunE:  playCapture,
	}
	addViewFlags(playCmd)
	addSizeFlags(playCmd)

	viewCmd := &cobra.Command{
		Use:   "view [series.csv] [graph.txt]",
		Short: "open the recording in a 3D window",
		Args:  cobra.ExactArgs(2),
		RunE:  viewCapture,
	}
	addViewFlags(viewCmd)
	addSizeFlags(viewCmd)

	exportCmd := &cobra.Command{
		Use:   "export [series.csv] [graph.txt]",
		Short: "re-emit a recording as JSON or canonical CSV",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportSeries,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json or csv)")
	exportCmd.Flags().BoolVar(&indent, "indent", false, "indent JSON output")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (JSON defaults to stdout)")
	addClipFlags(exportCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [glob...]",
		Short: "render every matching series against one graph",
		Args:  cobra.MinimumNArgs(1),
		RunE:  batchRender,
	}
	batchCmd.Flags().StringVar(&graphPath, "graph", "", "joint graph shared by all series")
	batchCmd.Flags().StringVar(&outDir, "out-dir", "renders", "output directory")
	batchCmd.Flags().StringVarP(&outExt, "ext", "e", "avi", "output format extension")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "files rendered in parallel (0 = default)")
	batchCmd.Flags().IntVar(&stride, "stride", 1, "render every nth frame")
	addViewFlags(batchCmd)
	addSizeFlags(batchCmd)

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "synthesize a walking figure and render it",
		RunE:  renderDemo,
	}
	demoCmd.Flags().StringVarP(&demoOut, "out", "o", "demo.gif", "output movie file")
	demoCmd.Flags().IntVar(&demoFrames, "frames", 120, "number of frames to synthesize")
	demoCmd.Flags().BoolVar(&demoPlay, "play", false, "play in the terminal instead of rendering")
	addViewFlags(demoCmd)
	addSizeFlags(demoCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list view and render presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.Presets[name].Description)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(validateCmd, infoCmd, plotCmd, renderCmd, trajCmd, playCmd, viewCmd, exportCmd, batchCmd, demoCmd, presetsCmd)

	err := rootCmd.Execute()
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// setup resolves the effective config for the invoked command: defaults,
// then config file, then preset, then explicit flags, and initializes
// logging from the result.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		p.Apply(cfg)
	}
	applyFlags(cmd)
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	observability.Initialize(cfg.Log)
	return nil
}

// applyFlags copies explicitly set flags into the config, so flags beat
// both the config file and the preset.
func applyFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("width") {
		cfg.Render.Width = width
	}
	if f.Changed("height") {
		cfg.Render.Height = height
	}
	if f.Changed("fps") {
		cfg.Render.FPS = fps
	}
	if f.Changed("stride") {
		cfg.Render.Stride = stride
	}
	if f.Changed("workers") {
		cfg.Render.Workers = workers
	}
	if f.Changed("elev") {
		cfg.View.Elevation = elevation
	}
	if f.Changed("azim") {
		cfg.View.Azimuth = azimuth
	}
	if f.Changed("zoom") {
		cfg.View.Zoom = zoom
	}
	if f.Changed("distance") {
		cfg.View.Distance = distance
	}
	if f.Changed("up") {
		cfg.View.Up = upAxis
	}
	if f.Changed("box") {
		cfg.Render.ShowBox = showBox
	}
	if f.Changed("title") {
		cfg.Render.ShowTitle = showTitle
	}
	if f.Changed("labels") {
		cfg.Render.LabelJoints = showLabels
	}
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&elevation, "elev", 0, "camera elevation in degrees")
	cmd.Flags().Float64Var(&azimuth, "azim", 0, "camera azimuth in degrees")
	cmd.Flags().Float64Var(&zoom, "zoom", 1.0, "camera zoom factor")
	cmd.Flags().Float64Var(&distance, "distance", config.DefaultDistance, "perspective eye distance in box units")
	cmd.Flags().StringVar(&upAxis, "up", "z", "vertical axis of the recording (z or y)")
	cmd.Flags().BoolVar(&showBox, "box", true, "draw the bounds box")
	cmd.Flags().BoolVar(&showTitle, "title", true, "draw the frame timestamp")
	cmd.Flags().BoolVar(&showLabels, "labels", false, "draw joint names")
}

func addSizeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "frame width in pixels")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "frame height in pixels")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
}

func addClipFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&startFrame, "start", 0, "first frame index")
	cmd.Flags().IntVar(&endFrame, "end", 0, "end frame index, exclusive (0 = end of series)")
	cmd.Flags().IntVar(&stride, "stride", 1, "take every nth frame")
}

func validateFiles(cmd *cobra.Command, args []string) error {
	c, err := mocap.Load(args[0], args[1])
	if err != nil {
		return err
	}
	s := c.Series
	fmt.Printf("ok: %d frames, %d joints, %d bones\n", s.Len(), s.JointCount(), c.Graph.EdgeCount())
	fmt.Printf("duration %.2fs at %.1f fps\n", captureSeconds(s, s.Duration()), captureRate(s))
	return nil
}

func showInfo(cmd *cobra.Command, args []string) error {
	series, err := mocap.LoadTimeSeries(args[0])
	if err != nil {
		return err
	}
	var graph *mocap.JointGraph
	if len(args) > 1 {
		graph, err = mocap.LoadJointGraph(args[1])
		if err != nil {
			return err
		}
		if err := mocap.ValidateJoints(series, graph); err != nil {
			return err
		}
	}

	sum := stats.Summarize(series)
	fmt.Printf("file: %s\n", args[0])
	fmt.Printf("frames: %d\n", sum.Frames)
	fmt.Printf("joints: %d\n", sum.JointCount)
	if graph != nil {
		fmt.Printf("bones: %d\n", graph.EdgeCount())
	}
	fmt.Printf("duration: %.2fs at %.1f fps\n", captureSeconds(series, sum.Duration), captureRate(series))
	fmt.Printf("bounds: [%.1f %.1f %.1f] .. [%.1f %.1f %.1f]\n",
		sum.Min.X, sum.Min.Y, sum.Min.Z, sum.Max.X, sum.Max.Y, sum.Max.Z)

	// speeds are per timestamp unit; scale ms-stamped recordings to seconds
	scale := 1.0
	if series.SampleInterval() > 1 {
		scale = 1000
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "JOINT\tPATH\tMEAN/S\tMAX/S\tGAPS")
	for _, js := range sum.Joints {
		fmt.Fprintf(w, "%s\t%.1f\t%.2f\t%.2f\t%d\n",
			js.Name, js.PathLength, js.MeanSpeed*scale, js.MaxSpeed*scale, js.Gaps)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if cadenceJoint != "" {
		j, ok := series.JointIndex(cadenceJoint)
		if !ok {
			return fmt.Errorf("%w: %q (have: %s)", mocap.ErrUnknownJoint, cadenceJoint, strings.Join(series.Joints, ", "))
		}
		axis, err := mocap.ParseAxis(axisName)
		if err != nil {
			return err
		}
		cad, err := stats.Cadence(series.Track(j, axis), captureRate(series))
		if err != nil {
			return err
		}
		fmt.Printf("\ncadence (%s, %s): %.2f hz, period %.2f s\n", cadenceJoint, axis, cad, 1/cad)
	}
	return nil
}

func plotFrame(cmd *cobra.Command, args []string) error {
	if outPath == "" {
		return fmt.Errorf("output path required (-o frame.png)")
	}
	c, err := mocap.Load(args[0], args[1])
	if err != nil {
		return err
	}
	r, err := render.New(c, cfg)
	if err != nil {
		return err
	}

	i := frameIdx
	if cmd.Flags().Changed("time") {
		i = c.Series.IndexAtTime(atTime)
	}

	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".svg":
		doc, err := export.FrameSVG(r, i)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
			return err
		}
	case ".png":
		img, err := r.RenderFrame(i)
		if err != nil {
			return err
		}
		if err := render.SavePNG(img, outPath); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported plot format %q (want .png or .svg)", filepath.Ext(outPath))
	}

	fmt.Printf("wrote frame %d to %s\n", i, outPath)
	return nil
}

func renderMovie(cmd *cobra.Command, args []string) error {
	if outPath == "" {
		return fmt.Errorf("output path required (-o clip.avi; formats: %s)", strings.Join(encode.Formats(), ", "))
	}
	c, err := mocap.Load(args[0], args[1])
	if err != nil {
		return err
	}
	r, err := render.New(c, cfg)
	if err != nil {
		return err
	}
	w, err := encode.New(outPath, encode.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("rendering %s -> %s\n", args[0], outPath)
	start := time.Now()

	frames, err := render.Animate(context.Background(), r, w, render.AnimateOptions{
		Start:   startFrame,
		End:     endFrame,
		Stride:  cfg.Render.Stride,
		Workers: cfg.Render.Workers,
		Progress: func(done, total int) {
			if done%100 == 0 || done == total {
				fmt.Printf("  frame %d/%d\n", done, total)
			}
		},
	})
	if err != nil {
		w.Close()
		os.Remove(outPath)
		return err
	}
	if err := w.Close(); err != nil {
		os.Remove(outPath)
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("wrote %d frames to %s\n", frames, outPath)
	return nil
}

func plotTrajectory(cmd *cobra.Command, args []string) error {
	series, err := mocap.LoadTimeSeries(args[0])
	if err != nil {
		return err
	}
	if len(trajJoints) == 0 {
		return fmt.Errorf("at least one --joint required (have: %s)", strings.Join(series.Joints, ", "))
	}
	joints := make([]int, 0, len(trajJoints))
	for _, name := range trajJoints {
		j, ok := series.JointIndex(name)
		if !ok {
			return fmt.Errorf("%w: %q (have: %s)", mocap.ErrUnknownJoint, name, strings.Join(series.Joints, ", "))
		}
		joints = append(joints, j)
	}
	axis, err := mocap.ParseAxis(axisName)
	if err != nil {
		return err
	}

	if outPath == "" {
		graph, err := chart.ASCII(series, joints, axis, chartWidth, chartHeight)
		if err != nil {
			return err
		}
		fmt.Println(graph)
		return nil
	}

	png, err := chart.PNG(series, joints, axis)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, png, 0644); err != nil {
		return err
	}
	fmt.Printf("wrote chart to %s\n", outPath)
	return nil
}

func playCapture(cmd *cobra.Command, args []string) error {
	c, err := mocap.Load(args[0], args[1])
	if err != nil {
		return err
	}
	r, err := render.New(c, cfg)
	if err != nil {
		return err
	}
	return viz.Run(r, cfg, stemOf(args[0]))
}

func viewCapture(cmd *cobra.Command, args []string) error {
	c, err := mocap.Load(args[0], args[1])
	if err != nil {
		return err
	}
	gui.Run(c, cfg, stemOf(args[0]))
	return nil
}

func exportSeries(cmd *cobra.Command, args []string) error {
	series, err := mocap.LoadTimeSeries(args[0])
	if err != nil {
		return err
	}
	var graph *mocap.JointGraph
	if len(args) > 1 {
		graph, err = mocap.LoadJointGraph(args[1])
		if err != nil {
			return err
		}
		if err := mocap.ValidateJoints(series, graph); err != nil {
			return err
		}
	}

	end := endFrame
	if end <= 0 {
		end = series.Len()
	}
	clip := series.Slice(startFrame, end).Stride(stride)
	if clip.Len() == 0 {
		return fmt.Errorf("no frames selected (start %d, end %d)", startFrame, end)
	}

	switch exportFormat {
	case "json":
		if outPath == "" {
			return export.EncodeJSON(os.Stdout, clip, graph, indent)
		}
		if err := export.WriteJSON(clip, graph, outPath, indent); err != nil {
			return err
		}
	case "csv":
		if outPath == "" {
			return fmt.Errorf("csv export needs an output path (-o)")
		}
		if err := export.WriteCSV(clip, outPath); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want json or csv)", exportFormat)
	}

	fmt.Printf("wrote %d frames to %s\n", clip.Len(), outPath)
	return nil
}

func batchRender(cmd *cobra.Command, args []string) error {
	if graphPath == "" {
		return fmt.Errorf("--graph is required")
	}
	sum, err := batch.Run(context.Background(), batch.Request{
		GraphPath: graphPath,
		Patterns:  args,
		OutDir:    outDir,
		Ext:       outExt,
		Workers:   workers,
	}, cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tOUTPUT\tFRAMES\tTIME\tSTATUS")
	for _, o := range sum.Outcomes {
		status := "ok"
		if o.Err != nil {
			status = o.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%s\n",
			o.SeriesPath, o.OutPath, o.Frames, o.Elapsed.Round(time.Millisecond), status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d ok, %d failed\n", sum.OK, sum.Failed)
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d renders failed", sum.Failed, len(sum.Outcomes))
	}
	return nil
}

func renderDemo(cmd *cobra.Command, args []string) error {
	c := mocap.NewWalker().Capture(demoFrames)
	r, err := render.New(c, cfg)
	if err != nil {
		return err
	}
	if demoPlay {
		return viz.Run(r, cfg, "walker")
	}

	w, err := encode.New(demoOut, encode.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}
	frames, err := render.Animate(context.Background(), r, w, render.AnimateOptions{
		Stride:  cfg.Render.Stride,
		Workers: cfg.Render.Workers,
	})
	if err != nil {
		w.Close()
		os.Remove(demoOut)
		return err
	}
	if err := w.Close(); err != nil {
		os.Remove(demoOut)
		return err
	}
	fmt.Printf("wrote %d frames to %s\n", frames, demoOut)
	return nil
}

// captureSeconds converts a span of the recording's timestamps to
// seconds. Recordings stamp either seconds or milliseconds; a median
// sample interval above one means milliseconds, since no capture runs
// below one frame per second.
func captureSeconds(ts *mocap.TimeSeries, span float64) float64 {
	if ts.SampleInterval() > 1 {
		return span / 1000
	}
	return span
}

// captureRate is the estimated capture rate in frames per second.
func captureRate(ts *mocap.TimeSeries) float64 {
	dt := captureSeconds(ts, ts.SampleInterval())
	if dt <= 0 {
		return 0
	}
	return 1 / dt
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
