package worker

import (
	"context"
	"sync"

	"github.com/kirthika85/appealgen/internal/llm"
)

// Generator is the slice of the provider interface the runner needs.
// It must be safe for concurrent use; both built-in providers are.
type Generator interface {
	Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error)
}

// GenerationJob is one per-claim generation call
type GenerationJob struct {
	Index       int    // Output slot, keyed by claim position
	ClaimNumber string // Carried through for reporting
	Request     llm.GenerateRequest
}

// GenerationResult is the outcome of one generation job. Err is a
// per-claim failure, never a batch failure.
type GenerationResult struct {
	Index       int
	ClaimNumber string
	Letter      string
	Model       string
	Err         error
}

// Runner fans generation jobs out across a bounded set of goroutines
// with a rate limiter in front of the generator.
type Runner struct {
	generator  Generator
	limiter    *Limiter
	bucket     string
	maxWorkers int
}

// NewRunner creates a runner. The bucket names the limiter budget
// the jobs draw from, normally the provider name.
func NewRunner(generator Generator, limiter *Limiter, bucket string, maxWorkers int) *Runner {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &Runner{
		generator:  generator,
		limiter:    limiter,
		bucket:     bucket,
		maxWorkers: maxWorkers,
	}
}

// Run executes all jobs and returns one result per job, in job
// order. Results land in independent slots keyed by job index, so no
// locking is needed and one claim's failure cannot touch another's
// result. A cancelled context records the cancellation on every job
// not yet finished; completed results are kept.
func (r *Runner) Run(ctx context.Context, jobs []GenerationJob) []GenerationResult {
	results := make([]GenerationResult, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, r.maxWorkers)

	for i, job := range jobs {
		wg.Add(1)
		go func(slot int, j GenerationJob) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[slot] = GenerationResult{
					Index:       j.Index,
					ClaimNumber: j.ClaimNumber,
					Err:         ctx.Err(),
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[slot] = r.runSingle(ctx, j)
		}(i, job)
	}

	wg.Wait()
	return results
}

// runSingle performs exactly one generator call for one claim
func (r *Runner) runSingle(ctx context.Context, j GenerationJob) GenerationResult {
	res := GenerationResult{Index: j.Index, ClaimNumber: j.ClaimNumber}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, r.bucket); err != nil {
			res.Err = err
			return res
		}
	}

	resp, err := r.generator.Generate(ctx, j.Request)
	if err != nil {
		res.Err = err
		return res
	}

	res.Letter = resp.Letter
	res.Model = resp.Model
	return res
}
