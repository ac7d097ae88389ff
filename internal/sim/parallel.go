package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/binstar/internal/physics"
)

// Job is one independent run of an ensemble. Metrics are attached to this
// job only, after the ensemble's shared factory set.
type Job struct {
	Name    string
	A, B    physics.Body
	Config  Config
	Metrics []Metric
}

// Ensemble runs independent jobs concurrently. Each job gets its own
// Simulator and a fresh set of metrics from the factory.
type Ensemble struct {
	metrics func() []Metric
}

func NewEnsemble(metrics func() []Metric) *Ensemble {
	return &Ensemble{metrics: metrics}
}

// Run returns results in job order. The first failing job's error is
// returned and the remaining results are discarded.
func (e *Ensemble) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s := New()
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			job := jobs[idx]
			for _, m := range job.Metrics {
				s.AddMetric(m)
			}
			results[idx], errs[idx] = s.Run(ctx, job.A, job.B, job.Config)
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", jobs[i].Name, err)
		}
	}

	return results, nil
}
