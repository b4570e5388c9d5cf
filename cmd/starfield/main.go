package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/starfield/internal/config"
	"github.com/san-kum/starfield/internal/export"
	"github.com/san-kum/starfield/internal/gui"
	"github.com/san-kum/starfield/internal/metrics"
	"github.com/san-kum/starfield/internal/render"
	"github.com/san-kum/starfield/internal/scenario"
	"github.com/san-kum/starfield/internal/sim"
	"github.com/san-kum/starfield/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	mode       string
	seed       int64
	frameRate  int
	theme      string
	easingName string
	debug      bool
	// run / plot / export
	preset    string
	runTicks  int
	plotTicks int
	svgTicks  int
	every     float64
	plot      bool
	outFile   string
	advance   int
	runs      int

	logFile *os.File
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "starfield",
		Short: "slide deck flown through a starfield",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !debug {
				log.SetOutput(io.Discard)
				return nil
			}
			f, err := tea.LogToFile("starfield-debug.log", "starfield")
			if err != nil {
				return fmt.Errorf("open debug log: %w", err)
			}
			logFile = f
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&mode, "mode", config.DefaultMode, "speed source: tween or pointer")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "terminal color theme")
	pf.StringVar(&easingName, "easing", "", "tween easing curve")
	pf.BoolVar(&debug, "debug", false, "write a debug log to starfield-debug.log")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "fly the deck in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "fly the deck in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "run a scripted session headless and report metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "deck preset (overrides the scenario's)")
	runCmd.Flags().IntVar(&runTicks, "ticks", 0, "number of frames (overrides the scenario's)")
	runCmd.Flags().Float64Var(&every, "every", 0, "advance every N ms of virtual time")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot speed after the run")
	runCmd.Flags().IntVar(&runs, "runs", 1, "repeat under consecutive seeds and compare")

	plotCmd := &cobra.Command{
		Use:   "plot [preset]",
		Short: "plot speed, position and star count over a tour of the deck",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotTour,
	}
	plotCmd.Flags().IntVar(&plotTicks, "ticks", 1500, "number of frames")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [preset]",
		Short: "render one frame to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgTicks, "ticks", 300, "frames to simulate before rendering")
	exportSVGCmd.Flags().IntVar(&advance, "advance", 1, "slide advances before the first frame")
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark ticks per second at several star caps",
		RunE:  benchTicks,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list deck presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODE\tEASING\tSLIDES")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", name, p.Mode, p.Easing, len(p.Slides))
			}
			return w.Flush()
		},
	}

	slidesCmd := &cobra.Command{
		Use:   "slides [preset]",
		Short: "show a deck's slides and positions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, presetArg(args))
			if err != nil {
				return err
			}
			if len(cfg.Slides) == 0 {
				fmt.Println("no slides")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tPOSITION\tTEXT")
			for i, s := range cfg.Slides {
				fmt.Fprintf(w, "%d\t%.2f\t%s\n", i+1, s.Position, s.Text)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, plotCmd, exportSVGCmd, benchCmd, presetsCmd, slidesCmd)
	return rootCmd
}

func presetArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// resolveConfig layers preset, config file, STARFIELD_* variables and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, presetName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if presetName != "" {
		cfg = config.GetPreset(presetName)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("easing") {
		cfg.Easing = easingName
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Printf("config: mode=%s seed=%d fps=%d easing=%s slides=%d", cfg.Mode, cfg.Seed, cfg.FPS, cfg.Easing, len(cfg.Slides))
	return cfg, nil
}

func newSimulator(cfg *config.Config) (*sim.Simulator, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	engine, err := sim.NewEngine(params, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, err
	}
	return sim.New(engine, engine.Initial(cfg.Deck())), nil
}

func runLive(cmd *cobra.Command, args []string) error {
	name := presetArg(args)
	cfg, err := resolveConfig(cmd, name)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	if name == "" {
		name = "starfield"
	}

	m := viz.NewModel(s, viz.Options{
		Title:   name,
		Mode:    cfg.Mode,
		FrameMs: cfg.FrameMs,
		FPS:     cfg.FPS,
		Theme:   cfg.Theme,
	})
	return viz.Run(m)
}

func runGUI(cmd *cobra.Command, args []string) error {
	name := presetArg(args)
	cfg, err := resolveConfig(cmd, name)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	if name == "" {
		name = "starfield"
	}

	gui.Run(s, gui.Options{
		Title:   name,
		Mode:    cfg.Mode,
		Width:   cfg.Width,
		Height:  cfg.Height,
		FPS:     cfg.FPS,
		FrameMs: cfg.FrameMs,
	})
	return nil
}

// slideLogger logs every slide change at debug level.
type slideLogger struct {
	last int
}

func (l *slideLogger) OnStep(s sim.State, ev sim.Event) {
	if s.CurrentSlide == l.last {
		return
	}
	l.last = s.CurrentSlide
	log.Printf("t=%.0fms slide %d target=%.2f tween_end=%.0fms", s.Time, s.CurrentSlide, s.TargetPosition, s.TweenEndTime)
}

// loadScenario reads the scenario file, or the default tour, and applies
// the run flags that were given on the command line.
func loadScenario(cmd *cobra.Command, args []string) (*scenario.Scenario, error) {
	var sc *scenario.Scenario
	if len(args) > 0 {
		loaded, err := scenario.LoadScenario(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
		sc = loaded
	} else {
		sc = scenario.Default("journey")
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		sc.Preset = preset
	}
	if flags.Changed("ticks") {
		sc.Ticks = runTicks
	}
	if flags.Changed("every") {
		sc.AdvanceEveryMs = every
	}
	return sc, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd, sc.Preset)
	if err != nil {
		return err
	}
	if runs > 1 {
		return runEnsemble(sc, cfg)
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}
	if debug {
		s.AddObserver(&slideLogger{})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := scenario.Run(ctx, sc, s)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Printf("steps: %d (%v)\n\n", result.StepsTaken, elapsed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, m := range metrics.Defaults() {
		fmt.Fprintf(w, "%s\t%.6f\n", m.Name(), result.Metrics[m.Name()])
	}
	final := result.Final
	fmt.Fprintf(w, "final_time\t%.0fms\n", final.Time)
	fmt.Fprintf(w, "final_position\t%.4f\n", final.CurrentPosition)
	fmt.Fprintf(w, "final_slide\t%d/%d\n", final.CurrentSlide+1, len(final.Slides))
	fmt.Fprintf(w, "stars\t%d\n", len(final.Stars))
	if err := w.Flush(); err != nil {
		return err
	}

	if plot {
		fmt.Println()
		fmt.Println(plotSeries(result.Samples, "speed", func(s sim.Sample) float64 { return s.Speed }))
	}
	return nil
}

func runEnsemble(sc *scenario.Scenario, cfg *config.Config) error {
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	events, err := sc.Events()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ens := sim.NewEnsemble(params, cfg.Deck(), runs, cfg.Seed).WithMetrics(metrics.Defaults)
	results, err := ens.Run(ctx, events)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s, %d runs\n\n", sc.Name, runs)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tPEAK_SPEED\tMEAN_SPEED\tDISTANCE\tRECYCLES\tSTARS")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%.4f\t%.0f\t%d\n", ens.Seed(i),
			r.Metrics["peak_speed"], r.Metrics["mean_speed"], r.Metrics["distance"], r.Metrics["recycles"], len(r.Final.Stars))
	}
	return w.Flush()
}

func plotSeries(samples []sim.Sample, caption string, pick func(sim.Sample) float64) string {
	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = pick(s)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

func plotTour(cmd *cobra.Command, args []string) error {
	name := presetArg(args)
	if name == "" {
		name = "journey"
	}
	cfg, err := resolveConfig(cmd, name)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	sc := scenario.Default(name)
	sc.Ticks = plotTicks
	sc.FrameMs = cfg.FrameMs
	result, err := scenario.Run(context.Background(), sc, s)
	if err != nil {
		return err
	}
	if len(result.Samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("preset: %s\n", name)
	fmt.Printf("samples: %d\n\n", len(result.Samples))

	series := []struct {
		caption string
		pick    func(sim.Sample) float64
	}{
		{"speed", func(s sim.Sample) float64 { return s.Speed }},
		{"camera position", func(s sim.Sample) float64 { return s.Position }},
		{"stars", func(s sim.Sample) float64 { return float64(s.Stars) }},
	}
	for _, sr := range series {
		fmt.Println(plotSeries(result.Samples, sr.caption, sr.pick))
		fmt.Println()
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, presetArg(args))
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	for i := 0; i < advance; i++ {
		s.Apply(sim.AdvancePressed{})
	}
	for i := 0; i < svgTicks; i++ {
		s.Apply(sim.Tick{DeltaMs: cfg.FrameMs})
	}

	vp := render.Viewport{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	frame := render.Project(s.State(), vp)

	var w io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := export.WriteSVG(w, frame, vp, export.DefaultStyle()); err != nil {
		return err
	}
	if outFile != "" {
		fmt.Printf("wrote %d stars, %d captions to %s\n", len(frame.Stars), len(frame.Slides), outFile)
	}
	return nil
}

func benchTicks(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "warp")
	if err != nil {
		return err
	}
	cfg.Mode = "pointer"
	caps := []int{100, 300, 1000, 3000}
	const n = 2000

	fmt.Printf("benchmarking %d ticks in pointer mode\n\n", n)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CAP\tSTARS\tRECYCLED\tTIME\tTICKS/SEC")

	for _, c := range caps {
		cfg.StarCap = c
		s, err := newSimulator(cfg)
		if err != nil {
			return err
		}
		s.Apply(sim.PointerMoved{X: 1, ViewportWidth: 4})

		start := time.Now()
		for i := 0; i < n; i++ {
			s.Apply(sim.Tick{DeltaMs: cfg.FrameMs})
		}
		elapsed := time.Since(start)

		st := s.State()
		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n", c, len(st.Stars), st.Recycled, elapsed, float64(n)/elapsed.Seconds())
	}
	return w.Flush()
}
