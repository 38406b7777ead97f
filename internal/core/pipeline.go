package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Result is the outcome of one pipeline run.
type Result struct {
	RunID    string
	Mapping  *Mapping
	Err      error
	Duration time.Duration

	// Rows is the number of data rows parsed. Zero when the run failed
	// before parsing completed.
	Rows int

	// Source and FetchDuration describe the fetched document. Empty when
	// the fetch failed.
	Source        string
	FetchDuration time.Duration
}

// Pipeline composes fetch, parse and reformat. A Pipeline holds only
// immutable collaborators, so concurrent runs share nothing mutable.
type Pipeline struct {
	fetcher     Fetcher
	reformatter *Reformatter
}

// NewPipeline creates a pipeline from a fetcher and a reformatter.
func NewPipeline(fetcher Fetcher, reformatter *Reformatter) *Pipeline {
	return &Pipeline{fetcher: fetcher, reformatter: reformatter}
}

// Run fetches the source document, parses it and folds the rows into a
// Mapping. The first failing stage ends the run; later stages are not called.
func (p *Pipeline) Run(ctx context.Context) (*Mapping, error) {
	res := p.run(ctx)
	return res.Mapping, res.Err
}

// Start runs the pipeline in its own goroutine. The returned channel receives
// exactly one Result and is then closed.
func (p *Pipeline) Start(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		out <- p.run(ctx)
	}()
	return out
}

func (p *Pipeline) run(ctx context.Context) Result {
	res := Result{RunID: uuid.NewString()}
	start := time.Now()

	doc, err := p.fetcher.Fetch(ctx)
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}
	res.Source = doc.URL
	res.FetchDuration = doc.Duration

	table, err := Parse(doc.Body)
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}
	if p.reformatter.opts.RequireKeyColumn && len(table.Header) > 0 && !table.HasKeyColumn() {
		res.Err = &ParseError{Err: ErrNoKeyColumn}
		res.Duration = time.Since(start)
		return res
	}

	res.Rows = len(table.Rows)
	res.Mapping = p.reformatter.Reformat(table.Rows)
	res.Duration = time.Since(start)
	return res
}
