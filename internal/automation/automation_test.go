package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/storage"
)

const scenarioYAML = `name: demo
description: two quick recordings
steps:
  - algorithm: bubble
    values: [3, 1, 2]
    save: true
  - algorithm: quicksort
    size: 10
    seed: 42
    max_value: 50
`

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if scenario.Name != "demo" || len(scenario.Steps) != 2 {
		t.Fatalf("scenario = %+v", scenario)
	}
	if !scenario.Steps[0].Save || len(scenario.Steps[0].Values) != 3 {
		t.Fatalf("step 0 = %+v", scenario.Steps[0])
	}
	if scenario.Steps[1].Size != 10 || scenario.Steps[1].Seed != 42 {
		t.Fatalf("step 1 = %+v", scenario.Steps[1])
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}

	store := storage.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(scenario, algorithms.NewRegistry(), store)
	if err != nil {
		t.Fatalf("RunScenario: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	if results[0].Algorithm != "bubble" || results[0].Size != 3 {
		t.Fatalf("result 0 = %+v", results[0])
	}
	if !results[0].Sorted || !results[1].Sorted {
		t.Fatalf("results not sorted: %+v", results)
	}
	if results[0].RunID == "" {
		t.Fatal("saved step has no run ID")
	}
	if results[1].RunID != "" {
		t.Fatal("unsaved step has a run ID")
	}

	if _, err := store.Load(results[0].RunID); err != nil {
		t.Fatalf("saved run not loadable: %v", err)
	}
}

func TestRunScenarioUnknownAlgorithm(t *testing.T) {
	scenario := &Scenario{Steps: []ScenarioStep{{Algorithm: "bogo", Size: 4}}}
	if _, err := RunScenario(scenario, algorithms.NewRegistry(), nil); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &SizeSweep{
		Algorithm: "bubble",
		SizeMin:   4,
		SizeMax:   16,
		NumSteps:  4,
		Seed:      7,
	}
	results, err := RunSweep(sweep, algorithms.NewRegistry())
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	if results[0].Size != 4 || results[len(results)-1].Size != 16 {
		t.Fatalf("size range = %d..%d, want 4..16", results[0].Size, results[len(results)-1].Size)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Size < results[i-1].Size {
			t.Fatalf("sizes not increasing: %+v", results)
		}
	}
}

func TestRunSweepTooFewSteps(t *testing.T) {
	sweep := &SizeSweep{Algorithm: "bubble", SizeMin: 4, SizeMax: 8, NumSteps: 1}
	if _, err := RunSweep(sweep, algorithms.NewRegistry()); err == nil {
		t.Fatal("expected error for single-step sweep")
	}
}

func TestRunTrialsDeterministicWithSeed(t *testing.T) {
	cfg := &TrialConfig{Algorithm: "insertion", Size: 12, NumTrials: 5, Seed: 99}
	reg := algorithms.NewRegistry()

	a, err := RunTrials(cfg, reg)
	if err != nil {
		t.Fatalf("RunTrials: %v", err)
	}
	b, err := RunTrials(cfg, reg)
	if err != nil {
		t.Fatalf("RunTrials: %v", err)
	}

	if len(a) != 5 {
		t.Fatalf("got %d trials, want 5", len(a))
	}
	for i := range a {
		if a[i].Seed != b[i].Seed || a[i].Counts != b[i].Counts {
			t.Fatalf("trial %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
		if !a[i].Sorted {
			t.Fatalf("trial %d not sorted", i)
		}
	}

	sorted, unsorted := TrialStats(a)
	if sorted != 5 || unsorted != 0 {
		t.Fatalf("TrialStats = %d/%d, want 5/0", sorted, unsorted)
	}
}

func TestEnsembleMatchesSequentialSeeds(t *testing.T) {
	cfg := TrialConfig{Algorithm: "merge", Size: 20, NumTrials: 8, Seed: 500}
	reg := algorithms.NewRegistry()

	results, err := NewEnsemble(reg, cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 8 {
		t.Fatalf("got %d results, want 8", len(results))
	}

	for i, r := range results {
		if r.TrialID != i {
			t.Fatalf("result %d has trial ID %d", i, r.TrialID)
		}
		if r.Seed != cfg.Seed+int64(i) {
			t.Fatalf("trial %d seed = %d, want %d", i, r.Seed, cfg.Seed+int64(i))
		}
		if !r.Sorted {
			t.Fatalf("trial %d not sorted", i)
		}
	}

	// Parallel results equal a second deterministic run.
	again, err := NewEnsemble(reg, cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := range results {
		if results[i].Counts != again[i].Counts {
			t.Fatalf("trial %d counts differ across runs", i)
		}
	}
}

func TestEnsembleCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := TrialConfig{Algorithm: "bubble", Size: 4, NumTrials: 3, Seed: 1}
	if _, err := NewEnsemble(algorithms.NewRegistry(), cfg).Run(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestIsSorted(t *testing.T) {
	tests := []struct {
		values []int
		want   bool
	}{
		{nil, true},
		{[]int{1}, true},
		{[]int{1, 1, 2}, true},
		{[]int{2, 1}, false},
	}
	for _, tt := range tests {
		if got := isSorted(tt.values); got != tt.want {
			t.Errorf("isSorted(%v) = %v, want %v", tt.values, got, tt.want)
		}
	}
}
