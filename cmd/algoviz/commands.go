package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/algoviz/internal/anim"
	"github.com/san-kum/algoviz/internal/automation"
	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/dataset"
	"github.com/san-kum/algoviz/internal/server"
	"github.com/san-kum/algoviz/internal/trace"
	"github.com/san-kum/algoviz/internal/tui"
	"github.com/san-kum/algoviz/internal/viz"
	"github.com/spf13/cobra"
)

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, reg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg.Log, true)
	if err != nil {
		return err
	}
	defer closeLog()

	job, err := automation.JobFromConfig(cfg)
	if err != nil {
		return err
	}
	gen, err := dataset.NewGenerator(cfg.Array.Min, cfg.Array.Max, job.Shape, cfg.Array.Seed)
	if err != nil {
		return err
	}

	bridge := &viz.Bridge{}
	ctrl := anim.NewController(reg, bridge,
		anim.WithGenerator(gen),
		anim.WithLogger(log),
		anim.WithSpeed(cfg.Speed),
		anim.WithResumeMode(job.Resume))

	log.Info("starting visualizer", "category", cfg.Category, "algorithm", cfg.Algorithm, "baseline", cfg.Baseline)
	return viz.Run(cmd.Context(), ctrl, reg, bridge, viz.Options{
		Category:  job.Category,
		Algorithm: job.Algorithm,
		Language:  cfg.Language,
		Theme:     cfg.Theme,
		Size:      cfg.Array.Size,
		Values:    cfg.Array.Values,
		Target:    job.Target,
	})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, reg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg.Log, live)
	if err != nil {
		return err
	}
	defer closeLog()

	job, err := jobFor(cfg)
	if err != nil {
		return err
	}

	var opts []anim.Option
	if live {
		lr := tui.NewLiveRenderer(os.Stdout, string(job.Algorithm), frameRate)
		job.Observer = lr
		opts = append(opts, anim.WithClock(anim.RealClock{}), anim.WithPacing(anim.DefaultPacing()))
		lr.Start()
		defer lr.Stop()
	}

	start := time.Now()
	tr, err := automation.Execute(cmd.Context(), reg, job, log, opts...)
	if err != nil && !isRunError(err) {
		return err
	}
	runErr := err
	elapsed := time.Since(start)

	if save {
		st := trace.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(tr)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run id: %s\n", runID)
	}

	if jsonOut {
		if err := trace.ExportJSONStdout(tr); err != nil {
			return err
		}
		return runErr
	}

	m := tr.Meta
	fmt.Println(trace.Summary(m))
	fmt.Printf("input:       %s\n", dataset.Format(m.Input))
	fmt.Printf("final:       %s\n", dataset.Format(m.Final))
	fmt.Printf("comparisons: %s\n", humanize.Comma(int64(m.Counters.Comparisons)))
	fmt.Printf("swaps:       %s\n", humanize.Comma(int64(m.Counters.Swaps)))
	fmt.Printf("steps:       %s\n", humanize.Comma(int64(m.Counters.CurrentStep)))
	fmt.Printf("completed in %v\n", elapsed.Round(time.Microsecond))
	if showChart {
		if c := trace.Chart(tr.Entries, 80, 12); c != "" {
			fmt.Println()
			fmt.Println(c)
		}
	}
	return runErr
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := trace.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tWHEN\tSIZE\tCOMPARISONS\tSWAPS\tSTATE")
	for _, run := range runs {
		name := string(run.Algorithm)
		if run.Fallback {
			name += " (" + string(run.Runs) + ")"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			trace.RunID(run),
			name,
			humanize.Time(run.Timestamp),
			len(run.Input),
			humanize.Comma(int64(run.Counters.Comparisons)),
			humanize.Comma(int64(run.Counters.Swaps)),
			run.State,
		)
	}
	return w.Flush()
}

func loadTrace(runID string) (*trace.Trace, error) {
	st := trace.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, err
	}
	entries, err := st.LoadEntries(runID)
	if err != nil {
		return nil, err
	}
	return &trace.Trace{Meta: *meta, Entries: entries}, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	tr, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	m := tr.Meta

	fmt.Printf("run: %s\n", args[0])
	fmt.Printf("recorded: %s (%s)\n", m.Timestamp.Format("2006-01-02 15:04:05"), humanize.Time(m.Timestamp))
	fmt.Println(trace.Summary(m))
	fmt.Printf("input: %s\n", dataset.Format(m.Input))
	fmt.Printf("final: %s\n", dataset.Format(m.Final))

	if len(tr.Entries) < 2 {
		return nil
	}
	fmt.Println()
	fmt.Println(trace.Chart(tr.Entries, 80, 12))

	// Values at the final step, one point per element.
	final := make([]float64, len(m.Final))
	for i, v := range m.Final {
		final[i] = float64(v)
	}
	if len(final) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(final,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption("final array"),
		))
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	entries, err := trace.New(dataDir).LoadEntries(args[0])
	if err != nil {
		return err
	}
	return trace.WriteCSV(os.Stdout, entries)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	tr, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return trace.ExportJSONStdout(tr)
	}
	if err := trace.ExportJSON(outPath, tr); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	tr, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outPath, 0755); err != nil {
		return err
	}

	var marked []int
	if tr.Meta.Found != nil {
		marked = []int{*tr.Meta.Found}
	}
	files := map[string]string{
		args[0] + "_final.svg":    trace.SnapshotSVG(tr.Meta.Final, marked, 800, 300),
		args[0] + "_counters.svg": trace.CountersSVG(tr.Entries, 800, 300, "#05d9e8"),
	}
	for name, body := range files {
		path := filepath.Join(outPath, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%s)\n", path, humanize.Bytes(uint64(len(body))))
	}
	return nil
}

func benchCategory(cmd *cobra.Command, args []string) error {
	log, closeLog, err := setup(false)
	if err != nil {
		return err
	}
	defer closeLog()

	c := anim.Sorting
	if len(args) > 0 {
		c = anim.Category(args[0])
	}
	sh, err := dataset.ParseShape(shape)
	if err != nil {
		return err
	}
	reg := registry()
	if _, err := reg.First(c); err != nil {
		return err
	}

	sweep := &automation.Sweep{Category: c, Sizes: sizes, Trials: trials, Seed: seed, Shape: sh}
	fmt.Printf("benchmarking %s (%d trials per cell)\n\n", c, trials)
	results, err := automation.RunSweep(cmd.Context(), sweep, reg, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSIZE\tCOMPARISONS\tSWAPS\tSTEPS\tFAILURES\tTIME")
	series := make(map[anim.Algorithm][]float64)
	var order []anim.Algorithm
	for _, r := range results {
		name := string(r.Algorithm)
		if r.Runs != "" && r.Runs != r.Algorithm {
			name += " (" + string(r.Runs) + ")"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%d\t%v\n",
			name, r.Size,
			humanize.CommafWithDigits(r.Comparisons, 1),
			humanize.CommafWithDigits(r.Swaps, 1),
			humanize.CommafWithDigits(r.Steps, 1),
			r.Failures, r.Elapsed.Round(time.Microsecond))
		if _, ok := series[r.Algorithm]; !ok {
			order = append(order, r.Algorithm)
		}
		series[r.Algorithm] = append(series[r.Algorithm], r.Comparisons)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(sizes) > 1 {
		data := make([][]float64, 0, len(order))
		legends := make([]string, 0, len(order))
		for _, alg := range order {
			data = append(data, series[alg])
			legends = append(legends, string(alg))
		}
		fmt.Println()
		fmt.Println(asciigraph.PlotMany(data,
			asciigraph.Height(12),
			asciigraph.Width(60),
			asciigraph.SeriesLegends(legends...),
			asciigraph.Caption(fmt.Sprintf("mean comparisons over sizes %v", sizes)),
		))
	}
	return nil
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	reg := registry()
	categories := anim.Categories()
	if len(args) > 0 {
		c := anim.Category(args[0])
		if _, err := reg.First(c); err != nil {
			return err
		}
		categories = []anim.Category{c}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tID\tNAME\tTIME\tSPACE\tANIMATION")
	for _, c := range categories {
		for _, d := range reg.Descriptors(c) {
			status := "yes"
			if !d.Implemented {
				res, err := reg.Resolve(c, d.Algorithm)
				if err != nil {
					return err
				}
				status = "via " + string(res.Runs)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				c, d.Algorithm, d.Name, d.TimeComplexity, d.SpaceComplexity, status)
		}
	}
	return w.Flush()
}

func describeAlgorithm(cmd *cobra.Command, args []string) error {
	reg := registry()
	a := anim.Algorithm(args[0])
	c, err := reg.CategoryOf(a)
	if err != nil {
		return err
	}
	d, err := reg.Describe(c, a)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", d.Name, c)
	fmt.Printf("  %s\n\n", d.Description)
	fmt.Printf("  time:  %s\n", d.TimeComplexity)
	fmt.Printf("  space: %s\n", d.SpaceComplexity)
	if !d.Implemented {
		res, err := reg.Resolve(c, a)
		if err != nil {
			return err
		}
		fmt.Printf("  animated with %s\n", res.Runs)
	}
	fmt.Printf("\n%s:\n%s\n", language, indent(catalog.CodeSample(language, a), "  "))
	return nil
}

func printCode(cmd *cobra.Command, args []string) error {
	a := anim.Algorithm(args[0])
	if _, err := registry().CategoryOf(a); err != nil {
		return err
	}
	fmt.Println(catalog.CodeSample(language, a))
	return nil
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

func listPresets(cmd *cobra.Command, args []string) error {
	categories := []string{string(anim.Sorting), string(anim.Searching)}
	if len(args) > 0 {
		categories = args[:1]
	}
	for _, c := range categories {
		presets := config.ListPresets(c)
		if len(presets) == 0 {
			fmt.Printf("no presets for category: %s\n", c)
			continue
		}
		fmt.Printf("presets for %s:\n", c)
		for _, name := range presets {
			p := config.GetPreset(c, name)
			fmt.Printf("  %-14s %s\n", name, p.Algorithm)
		}
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	log, closeLog, err := setup(false)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	var opts []catalog.Option
	if sc.Baseline || baseline {
		opts = append(opts, catalog.Baseline())
	}
	st := trace.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}
	results, runErr := automation.RunScenario(cmd.Context(), sc, catalog.NewRegistry(opts...), st, log)
	for i, tr := range results {
		fmt.Printf("  %d. %s\n", i+1, trace.Summary(tr.Meta))
	}
	if runErr != nil {
		fmt.Printf("\nFAILED\n%v\n", runErr)
		return runErr
	}
	fmt.Printf("\nall %d steps passed\n", len(results))
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	log, closeLog, err := setup(false)
	if err != nil {
		return err
	}
	defer closeLog()

	st := trace.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	return server.New(registry(), st, log).Run(cmd.Context(), addr)
}
