package provision

import (
	"context"
	"time"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/logging"
	"github.com/rs/zerolog"
)

// Step is one bootstrap action. Steps are idempotent: applying one to an
// already-configured system is a no-op reported as unchanged.
type Step struct {
	// Name identifies the step in logs and results.
	Name string

	// Run performs the step. The returned bool reports whether anything
	// was changed.
	Run func(ctx context.Context) (changed bool, err error)
}

// StepResult is the outcome of one executed step.
type StepResult struct {
	Name     string
	Changed  bool
	Skipped  bool
	Err      error
	Duration time.Duration
}

// RunnerOptions configures the step runner.
type RunnerOptions struct {
	DryRun bool
	Logger zerolog.Logger
}

// Runner executes bootstrap steps in order. Unlike key loads, bootstrap
// steps depend on their predecessors, so the first failure aborts the run.
type Runner struct {
	dryRun bool
	logger zerolog.Logger
}

// NewRunner creates a step runner.
func NewRunner(opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("provision.runner")
	}
	return &Runner{
		dryRun: opts.DryRun,
		logger: logger,
	}
}

// Execute runs the steps sequentially and returns a result per executed
// step. On failure the results collected so far are returned together with
// a step-failed error.
func (r *Runner) Execute(ctx context.Context, steps []Step) ([]StepResult, error) {
	results := make([]StepResult, 0, len(steps))

	for _, step := range steps {
		start := time.Now()

		if r.dryRun {
			r.logger.Info().Str("step", step.Name).Msg("dry run, skipping step")
			results = append(results, StepResult{
				Name:     step.Name,
				Skipped:  true,
				Duration: time.Since(start),
			})
			continue
		}

		r.logger.Info().Str("step", step.Name).Msg("running step")
		changed, err := step.Run(ctx)
		result := StepResult{
			Name:     step.Name,
			Changed:  changed,
			Err:      err,
			Duration: time.Since(start),
		}
		results = append(results, result)

		if err != nil {
			r.logger.Error().Err(err).Str("step", step.Name).Msg("step failed")
			return results, errors.Wrapf(err, errors.ErrStepFailed, "step %q failed", step.Name)
		}
		r.logger.Debug().
			Str("step", step.Name).
			Bool("changed", changed).
			Dur("duration", result.Duration).
			Msg("step completed")
	}

	return results, nil
}
