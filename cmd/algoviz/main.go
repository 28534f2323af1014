package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/san-kum/algoviz/internal/anim"
	"github.com/san-kum/algoviz/internal/automation"
	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/dataset"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFormat  string
	logFile    string

	// Session flags shared by play and run.
	category  string
	valuesArg string
	size      int
	shape     string
	seed      int64
	minValue  int
	maxValue  int
	targetArg string
	speed     int
	language  string
	theme     string
	preset    string
	resume    string
	baseline  bool

	// run
	save      bool
	live      bool
	frameRate int
	jsonOut   bool
	showChart bool

	// bench
	sizes  []int
	trials int

	outPath string
	addr    string
)

// main registers the commands and runs the interactive app when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "algoviz [algorithm]",
		Short:        "sorting and searching algorithm visualizer",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".algoviz", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&baseline, "baseline", false, "only animate the baseline algorithm set")
	sessionFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play [algorithm]",
		Short: "open the interactive visualizer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	sessionFlags(playCmd)

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "run an algorithm headless and print its counters",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	sessionFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "store the trace under the data directory")
	runCmd.Flags().BoolVar(&live, "live", false, "animate in the terminal at the configured speed")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the trace as JSON")
	runCmd.Flags().BoolVar(&showChart, "chart", false, "plot counters per step")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "summarize a stored run and plot its counters",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a stored run's events as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a stored run's final array and counters as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outPath, "out", "o", ".", "output directory")

	benchCmd := &cobra.Command{
		Use:   "bench [category]",
		Short: "compare mean counters across algorithms and sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchCategory,
	}
	benchCmd.Flags().IntSliceVar(&sizes, "sizes", []int{16, 32, 64}, "array sizes")
	benchCmd.Flags().IntVar(&trials, "trials", 3, "runs per cell")
	benchCmd.Flags().Int64Var(&seed, "seed", 1, "seed of the first trial")
	benchCmd.Flags().StringVar(&shape, "shape", "random", "array shape")

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms [category]",
		Short: "list the algorithm catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listAlgorithms,
	}

	describeCmd := &cobra.Command{
		Use:   "describe [algorithm]",
		Short: "show an algorithm's description, complexity and code",
		Args:  cobra.ExactArgs(1),
		RunE:  describeAlgorithm,
	}
	describeCmd.Flags().StringVar(&language, "lang", config.DefaultLanguage, "code sample language")

	codeCmd := &cobra.Command{
		Use:   "code [algorithm]",
		Short: "print an algorithm's code sample",
		Args:  cobra.ExactArgs(1),
		RunE:  printCode,
	}
	codeCmd.Flags().StringVar(&language, "lang", config.DefaultLanguage, "code sample language")

	presetsCmd := &cobra.Command{
		Use:   "presets [category]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario and check its expectations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the catalog and headless runs over HTTP",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	rootCmd.AddCommand(playCmd, runCmd, listCmd, showCmd, exportCSVCmd, exportJSONCmd, svgCmd,
		benchCmd, algorithmsCmd, describeCmd, codeCmd, presetsCmd, scenarioCmd, serveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func sessionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&category, "category", "", "sorting or searching")
	f.StringVar(&valuesArg, "values", "", "comma separated input array")
	f.IntVar(&size, "size", config.DefaultSize, "generated array size")
	f.StringVar(&shape, "shape", "random", "generated array shape")
	f.Int64Var(&seed, "seed", 0, "generator seed (0 picks one)")
	f.IntVar(&minValue, "min", config.DefaultMin, "smallest generated value")
	f.IntVar(&maxValue, "max", config.DefaultMax, "generated values stay below this")
	f.StringVar(&targetArg, "target", "", "search target")
	f.IntVar(&speed, "speed", config.DefaultSpeed, "speed level 1..10")
	f.StringVar(&language, "lang", config.DefaultLanguage, "code sample language")
	f.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&resume, "resume", "restart", "resume mode after pause (restart, continue)")
}

// loadConfig layers defaults, the config file, a preset and finally the
// flags the user set, then resolves the category from the algorithm.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, *catalog.Registry, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p := findPreset(cmd, preset)
		if p == nil {
			return nil, nil, fmt.Errorf("unknown preset: %s (sorting: %v, searching: %v)", preset,
				config.ListPresets(string(anim.Sorting)), config.ListPresets(string(anim.Searching)))
		}
		cfg.Merge(p)
	}

	changed := cmd.Flags().Changed
	if changed("category") {
		cfg.Category = category
	}
	if changed("size") {
		cfg.Array.Size = size
	}
	if changed("shape") {
		cfg.Array.Shape = shape
	}
	if changed("seed") {
		cfg.Array.Seed = seed
	}
	if changed("min") {
		cfg.Array.Min = minValue
	}
	if changed("max") {
		cfg.Array.Max = maxValue
	}
	if changed("speed") {
		cfg.Speed = speed
	}
	if changed("lang") {
		cfg.Language = language
	}
	if changed("theme") {
		cfg.Theme = theme
	}
	if changed("resume") {
		cfg.Resume = resume
	}
	if changed("baseline") {
		cfg.Baseline = baseline
	}
	if changed("values") {
		values, err := dataset.ParseValues(valuesArg)
		if err != nil {
			return nil, nil, err
		}
		cfg.Array.Values = values
	}
	if changed("target") {
		t, err := dataset.ParseTarget(targetArg)
		if err != nil {
			return nil, nil, err
		}
		cfg.Search.Target = t
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}

	var opts []catalog.Option
	if cfg.Baseline {
		opts = append(opts, catalog.Baseline())
	}
	reg := catalog.NewRegistry(opts...)

	if len(args) > 0 {
		cfg.Algorithm = args[0]
		if !changed("category") {
			c, err := reg.CategoryOf(anim.Algorithm(args[0]))
			if err != nil {
				return nil, nil, err
			}
			cfg.Category = string(c)
		}
	} else if changed("category") && preset == "" {
		first, err := reg.First(anim.Category(cfg.Category))
		if err != nil {
			return nil, nil, err
		}
		cfg.Algorithm = string(first)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if _, err := reg.Resolve(anim.Category(cfg.Category), anim.Algorithm(cfg.Algorithm)); err != nil {
		return nil, nil, err
	}
	return cfg, reg, nil
}

func findPreset(cmd *cobra.Command, name string) *config.Config {
	if cmd.Flags().Changed("category") {
		return config.GetPreset(category, name)
	}
	for _, c := range anim.Categories() {
		if p := config.GetPreset(string(c), name); p != nil {
			return p
		}
	}
	return nil
}

// newLogger builds the slog logger. Interactive commands own the terminal,
// so their logs go to a file under the data directory unless one is given.
func newLogger(lc config.LogConfig, interactive bool) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	path := lc.File
	if path == "" && interactive {
		path = filepath.Join(dataDir, "algoviz.log")
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { f.Close() }
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if lc.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h), closeFn, nil
}

// setup is the common prologue of commands that do not need a session.
func setup(interactive bool) (*slog.Logger, func(), error) {
	lc := config.DefaultConfig().Log
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		lc = cfg.Log
	}
	if logLevel != "" {
		lc.Level = logLevel
	}
	if logFormat != "" {
		lc.Format = logFormat
	}
	if logFile != "" {
		lc.File = logFile
	}
	return newLogger(lc, interactive)
}

func registry() *catalog.Registry {
	if baseline {
		return catalog.NewRegistry(catalog.Baseline())
	}
	return catalog.NewRegistry()
}

func isRunError(err error) bool {
	var re *anim.RunError
	return errors.As(err, &re)
}

// jobFor converts cfg and rejects searches without a target up front.
func jobFor(cfg *config.Config) (automation.Job, error) {
	job, err := automation.JobFromConfig(cfg)
	if err != nil {
		return automation.Job{}, err
	}
	if job.Category == anim.Searching && job.Target == nil {
		return automation.Job{}, &anim.ValidationError{Field: "search target", Reason: "pass --target"}
	}
	return job, nil
}
