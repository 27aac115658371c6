package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/flightradar/flightradar"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of concurrent workers
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator applies compiled filters to position lists
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the positions matching filter, preserving input order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter Filter, positions []flightradar.FlightPosition) ([]flightradar.FlightPosition, error) {
	if len(positions) == 0 {
		return []flightradar.FlightPosition{}, nil
	}

	// Small lists are not worth the goroutines
	if len(positions) < e.batchSize {
		return evaluateSequential(filter, positions), nil
	}

	return e.evaluateConcurrent(ctx, filter, positions)
}

// EvaluateBatch evaluates multiple filters against the same positions
func (e *ConcurrentEvaluator) EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, positions []flightradar.FlightPosition) (map[string][]flightradar.FlightPosition, error) {
	results := make(map[string][]flightradar.FlightPosition, len(filters))
	if len(filters) == 0 || len(positions) == 0 {
		return results, nil
	}

	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	matches := make([][]flightradar.FlightPosition, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)
	for i, name := range names {
		g.Go(func() error {
			m, err := e.Evaluate(ctx, filters[name], positions)
			if err != nil {
				return err
			}
			matches[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, name := range names {
		results[name] = matches[i]
	}
	return results, nil
}

func evaluateSequential(filter Filter, positions []flightradar.FlightPosition) []flightradar.FlightPosition {
	matches := make([]flightradar.FlightPosition, 0, len(positions)/4)
	for _, pos := range positions {
		if filter.Evaluate(pos) {
			matches = append(matches, pos)
		}
	}
	return matches
}

func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter Filter, positions []flightradar.FlightPosition) ([]flightradar.FlightPosition, error) {
	chunkSize := max(len(positions)/e.workerCount, e.batchSize)
	chunks := make([][]flightradar.FlightPosition, (len(positions)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)
	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(positions))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunks[i] = evaluateSequential(filter, positions[start:end])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	matches := make([]flightradar.FlightPosition, 0, total)
	for _, c := range chunks {
		matches = append(matches, c...)
	}
	return matches, nil
}
