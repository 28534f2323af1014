package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/san-kum/algoviz/internal/anim"
	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/dataset"
	"github.com/san-kum/algoviz/internal/trace"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of headless runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Baseline    bool           `yaml:"baseline"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario with optional assertions
type ScenarioStep struct {
	Job    `yaml:",inline"`
	Expect Expect `yaml:"expect"`
	SaveAs string `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// RunScenario executes every step in order. Failed expectations are
// collected and returned together; a step that cannot run stops the scenario.
// Steps with SaveAs are persisted when st is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, reg *catalog.Registry, st *trace.Store, log *slog.Logger) ([]*trace.Trace, error) {
	if log == nil {
		log = slog.Default()
	}
	results := make([]*trace.Trace, 0, len(scenario.Steps))
	var failed []error

	for i, step := range scenario.Steps {
		log.Info("running step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "algorithm", step.Algorithm)

		tr, err := Execute(ctx, reg, step.Job, log)
		var re *anim.RunError
		if err != nil && !errors.As(err, &re) {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, tr)

		if err := step.Expect.Check(tr); err != nil {
			log.Warn("step expectation failed", "step", i+1, "error", err)
			failed = append(failed, fmt.Errorf("step %d: %w", i+1, err))
		}

		if step.SaveAs != "" && st != nil {
			tr.Meta.ID = step.SaveAs
			runID, err := st.Save(tr)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			log.Info("trace saved", "step", i+1, "run", runID)
		}
	}

	return results, errors.Join(failed...)
}

// Sweep runs every algorithm over every size, Trials times each, with
// seeds Seed, Seed+1, ...
type Sweep struct {
	Category   anim.Category
	Algorithms []anim.Algorithm
	Sizes      []int
	Trials     int
	Seed       int64
	Shape      dataset.Shape
}

// SweepResult holds mean counters for one (algorithm, size) cell.
type SweepResult struct {
	Algorithm   anim.Algorithm `json:"algorithm"`
	Runs        anim.Algorithm `json:"runs"`
	Size        int            `json:"size"`
	Trials      int            `json:"trials"`
	Comparisons float64        `json:"comparisons"`
	Swaps       float64        `json:"swaps"`
	Steps       float64        `json:"steps"`
	Failures    int            `json:"failures"`
	Elapsed     time.Duration  `json:"elapsed"`
}

// RunSweep executes a sweep. Searches target the middle input element so
// every trial finds something.
func RunSweep(ctx context.Context, sweep *Sweep, reg *catalog.Registry, log *slog.Logger) ([]SweepResult, error) {
	if log == nil {
		log = slog.Default()
	}
	if sweep.Trials < 1 {
		sweep.Trials = 1
	}
	algorithms := sweep.Algorithms
	if len(algorithms) == 0 {
		algorithms = reg.Algorithms(sweep.Category)
	}

	results := make([]SweepResult, 0, len(algorithms)*len(sweep.Sizes))
	for _, alg := range algorithms {
		for _, size := range sweep.Sizes {
			cell := SweepResult{Algorithm: alg, Size: size, Trials: sweep.Trials}
			started := time.Now()

			job := Job{
				Category:  sweep.Category,
				Algorithm: alg,
				Size:      size,
				Shape:     sweep.Shape,
			}
			traces, err := NewEnsemble(reg, job, sweep.Trials, sweep.Seed+1).Run(ctx, log)
			if err != nil {
				return results, fmt.Errorf("%s size %d: %w", alg, size, err)
			}
			for _, tr := range traces {
				if tr.Meta.Error != "" {
					cell.Failures++
				}
				cell.Runs = tr.Meta.Runs
				cell.Comparisons += float64(tr.Meta.Counters.Comparisons)
				cell.Swaps += float64(tr.Meta.Counters.Swaps)
				cell.Steps += float64(tr.Meta.Counters.CurrentStep)
			}

			n := float64(sweep.Trials)
			cell.Comparisons /= n
			cell.Swaps /= n
			cell.Steps /= n
			cell.Elapsed = time.Since(started)
			results = append(results, cell)

			log.Debug("sweep cell done", "algorithm", alg, "size", size, "comparisons", cell.Comparisons)
		}
	}
	return results, nil
}
