package choropleth

import (
	"fmt"
	"io"
	"runtime"
	"sync"
)

// AssembleAllOptions controls batch assembly behavior and error handling.
type AssembleAllOptions struct {
	// Parallel enables concurrent assembly of independent datasets.
	// Assembly has no cross-dataset side effects, so datasets are
	// embarrassingly parallel.
	Parallel bool

	// Workers specifies the number of assembly goroutines.
	// If 0, defaults to runtime.NumCPU(). Only used when Parallel is true.
	Workers int

	// SkipErrors causes the batch to continue when individual datasets
	// fail. Failed datasets are skipped and errors are collected. When
	// false, the first error stops the batch and is returned immediately.
	SkipErrors bool

	// Progress is an optional callback for tracking batch progress.
	// Called after each dataset is assembled (successfully or with error).
	Progress func(done, total int)

	// ErrorLog is an optional writer for detailed error reporting.
	ErrorLog io.Writer

	// Assemble configures assembly of each dataset.
	Assemble AssembleOptions
}

// DefaultAssembleAllOptions returns batch options with sensible defaults.
func DefaultAssembleAllOptions() AssembleAllOptions {
	return AssembleAllOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
		Assemble:   DefaultAssembleOptions(),
	}
}

// NamedPolygonSet pairs an assembled PolygonSet with its dataset name.
type NamedPolygonSet struct {
	Name string
	Set  *PolygonSet
}

// AssembleAll looks up and assembles multiple named datasets.
//
// Results keep the order of the names argument regardless of completion
// order. With SkipErrors, datasets that fail lookup or assembly are skipped
// and their errors collected; without it, the first error aborts the batch.
//
// Example:
//
//	sets, errs := choropleth.AssembleAll(catalog,
//	    []string{"us_states", "us_counties"},
//	    choropleth.NewAssembler(),
//	    choropleth.DefaultAssembleAllOptions())
//	if len(errs) > 0 {
//	    fmt.Printf("skipped %d datasets\n", len(errs))
//	}
func AssembleAll(catalog *Catalog, names []string, asm Assembler, opts AssembleAllOptions) ([]NamedPolygonSet, []error) {
	if len(names) == 0 {
		return []NamedPolygonSet{}, nil
	}

	if !opts.Parallel {
		return assembleAllSerial(catalog, names, asm, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(names) {
		workers = len(names)
	}

	type result struct {
		index int
		set   *PolygonSet
		err   error
	}

	jobs := make(chan int, len(names))
	results := make(chan result, len(names))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				set, err := assembleOne(catalog, names[index], asm, opts.Assemble)
				results <- result{index: index, set: set, err: err}
			}
		}()
	}

	for i := range names {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	sets := make(map[int]*PolygonSet)
	var errs []error
	done := 0

	for res := range results {
		done++

		if opts.Progress != nil {
			opts.Progress(done, len(names))
		}

		if res.err != nil {
			err := fmt.Errorf("%s: %w", names[res.index], res.err)

			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error assembling dataset: %v\n", err)
			}

			if opts.SkipErrors {
				errs = append(errs, err)
				continue
			}
			return nil, []error{err}
		}

		sets[res.index] = res.set
	}

	ordered := make([]NamedPolygonSet, 0, len(sets))
	for i := range names {
		if set, ok := sets[i]; ok {
			ordered = append(ordered, NamedPolygonSet{Name: names[i], Set: set})
		}
	}

	return ordered, errs
}

// assembleAllSerial assembles datasets one at a time (fallback when
// Parallel=false).
func assembleAllSerial(catalog *Catalog, names []string, asm Assembler, opts AssembleAllOptions) ([]NamedPolygonSet, []error) {
	ordered := make([]NamedPolygonSet, 0, len(names))
	var errs []error

	for i, name := range names {
		if opts.Progress != nil {
			opts.Progress(i, len(names))
		}

		set, err := assembleOne(catalog, name, asm, opts.Assemble)
		if err != nil {
			err := fmt.Errorf("%s: %w", name, err)

			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error assembling dataset: %v\n", err)
			}

			if opts.SkipErrors {
				errs = append(errs, err)
				continue
			}
			return nil, []error{err}
		}

		ordered = append(ordered, NamedPolygonSet{Name: name, Set: set})
	}

	if opts.Progress != nil {
		opts.Progress(len(names), len(names))
	}

	return ordered, errs
}

// assembleOne looks up one dataset and assembles it.
func assembleOne(catalog *Catalog, name string, asm Assembler, opts AssembleOptions) (*PolygonSet, error) {
	points, err := catalog.Lookup(name)
	if err != nil {
		return nil, err
	}
	set, err := asm.AssembleWithOptions(points, opts)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	return set, nil
}
