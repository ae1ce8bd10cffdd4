package automation

import (
	"context"
	"sync"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/stats"
)

// Ensemble records many trials of one algorithm concurrently. Trial i uses
// seed base+i, so results are deterministic regardless of scheduling.
type Ensemble struct {
	registry *algorithms.Registry
	cfg      TrialConfig
}

func NewEnsemble(registry *algorithms.Registry, cfg TrialConfig) *Ensemble {
	return &Ensemble{registry: registry, cfg: cfg}
}

func (e *Ensemble) Run(ctx context.Context) ([]TrialResult, error) {
	results := make([]TrialResult, e.cfg.NumTrials)
	errs := make([]error, e.cfg.NumTrials)

	var wg sync.WaitGroup
	for i := 0; i < e.cfg.NumTrials; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			trialSeed := e.cfg.Seed + int64(idx)
			runCfg := config.DefaultConfig()
			runCfg.Algorithm = e.cfg.Algorithm
			runCfg.Size = e.cfg.Size
			runCfg.Seed = trialSeed
			if e.cfg.MaxValue > 0 {
				runCfg.MaxValue = e.cfg.MaxValue
			}

			tr, _, err := e.registry.Record(e.cfg.Algorithm, runCfg.InitValues())
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = TrialResult{
				TrialID: idx,
				Seed:    trialSeed,
				Counts:  stats.FromTrace(tr),
				Sorted:  isSorted(tr.Replay()),
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
