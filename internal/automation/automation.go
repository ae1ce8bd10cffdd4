package automation

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/stats"
	"github.com/san-kum/sortviz/internal/storage"
)

// Scenario defines a scripted sequence of recording runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario
type ScenarioStep struct {
	Algorithm string  `yaml:"algorithm"`
	Size      int     `yaml:"size"`
	Seed      int64   `yaml:"seed"`
	MaxValue  int     `yaml:"max_value"`
	Values    []int   `yaml:"values"`
	Speed     float64 `yaml:"speed"`
	Save      bool    `yaml:"save"`
}

// StepResult summarizes one executed step
type StepResult struct {
	Algorithm string
	Size      int
	RunID     string
	Counts    stats.Counts
	Sorted    bool
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

	return &scenario, nil
}

// RunScenario records every step in order. Steps marked save are persisted
// to the store.
func RunScenario(scenario *Scenario, registry *algorithms.Registry, store *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Printf("Running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Algorithm)

		cfg := config.DefaultConfig()
		cfg.Algorithm = step.Algorithm
		cfg.Seed = step.Seed
		if step.Size > 0 {
			cfg.Size = step.Size
		}
		if step.MaxValue > 0 {
			cfg.MaxValue = step.MaxValue
		}
		if len(step.Values) > 0 {
			cfg.Values = step.Values
		}
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		values := cfg.InitValues()
		tr, _, err := registry.Record(step.Algorithm, values)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res := StepResult{
			Algorithm: step.Algorithm,
			Size:      len(values),
			Counts:    stats.FromTrace(tr),
			Sorted:    isSorted(tr.Replay()),
		}

		if step.Save && store != nil {
			runID, err := store.Save(step.Algorithm, step.Seed, tr)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			res.RunID = runID
		}

		results = append(results, res)
	}

	return results, nil
}

// SizeSweep records one algorithm across a range of array sizes
type SizeSweep struct {
	Algorithm string
	SizeMin   int
	SizeMax   int
	NumSteps  int
	MaxValue  int
	Seed      int64
}

// SweepResult holds counts for one size in a sweep
type SweepResult struct {
	Size   int
	Counts stats.Counts
}

// RunSweep executes a size sweep
func RunSweep(sweep *SizeSweep, registry *algorithms.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	sizeStep := float64(sweep.SizeMax-sweep.SizeMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		size := sweep.SizeMin + int(float64(i)*sizeStep)

		cfg := config.DefaultConfig()
		cfg.Algorithm = sweep.Algorithm
		cfg.Size = size
		cfg.Seed = sweep.Seed
		if sweep.MaxValue > 0 {
			cfg.MaxValue = sweep.MaxValue
		}

		tr, _, err := registry.Record(sweep.Algorithm, cfg.InitValues())
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{Size: size, Counts: stats.FromTrace(tr)})
		fmt.Printf("Sweep %d/%d: n=%d\n", i+1, sweep.NumSteps, size)
	}

	return results, nil
}

// TrialConfig defines repeated randomized trials of one algorithm
type TrialConfig struct {
	Algorithm string
	Size      int
	MaxValue  int
	NumTrials int
	Seed      int64
}

// TrialResult holds the outcome of one randomized trial
type TrialResult struct {
	TrialID int
	Seed    int64
	Counts  stats.Counts
	Sorted  bool
}

// RunTrials executes repeated trials with fresh random arrays and reports
// per-trial counts. A zero seed falls back to wall-clock seeding.
func RunTrials(cfg *TrialConfig, registry *algorithms.Registry) ([]TrialResult, error) {
	results := make([]TrialResult, 0, cfg.NumTrials)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	for trial := 0; trial < cfg.NumTrials; trial++ {
		trialSeed := rng.Int63()

		runCfg := config.DefaultConfig()
		runCfg.Algorithm = cfg.Algorithm
		runCfg.Size = cfg.Size
		runCfg.Seed = trialSeed
		if cfg.MaxValue > 0 {
			runCfg.MaxValue = cfg.MaxValue
		}

		tr, _, err := registry.Record(cfg.Algorithm, runCfg.InitValues())
		if err != nil {
			return nil, err
		}

		results = append(results, TrialResult{
			TrialID: trial,
			Seed:    trialSeed,
			Counts:  stats.FromTrace(tr),
			Sorted:  isSorted(tr.Replay()),
		})

		if (trial+1)%10 == 0 {
			fmt.Printf("Trials: %d/%d complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// TrialStats summarizes sorted versus unsorted outcomes
func TrialStats(results []TrialResult) (sortedCount int, unsortedCount int) {
	for _, r := range results {
		if r.Sorted {
			sortedCount++
		} else {
			unsortedCount++
		}
	}
	return
}

func isSorted(values []int) bool {
	for i := 1; i < len(values); i++ {
		if values[i-1] > values[i] {
			return false
		}
	}
	return true
}
