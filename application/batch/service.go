package batch

import (
	"context"
	"fmt"
	"io"
	"strings"

	appvideo "ffcrop/application/video"
	"ffcrop/infrastructure/config"
)

// JobRunner runs one trim job; implemented by the video trim service
type JobRunner interface {
	Trim(ctx context.Context, input appvideo.TrimInput) (*appvideo.TrimResult, error)
}

// Loader reads and normalizes a batch configuration document
type Loader func(path string) ([]config.JobSpec, error)

// Result summarizes a batch run
type Result struct {
	Total     int
	Succeeded int
}

// AnySucceeded reports whether the batch counts as an overall success
func (r *Result) AnySucceeded() bool {
	return r.Succeeded > 0
}

// Service runs every job in a batch configuration document sequentially,
// isolating per-job failures
type Service struct {
	runner JobRunner
	load   Loader
	output io.Writer
}

// ServiceOption is a functional option for configuring Service
type ServiceOption func(*Service)

// WithLoader sets a custom batch document loader (for testing)
func WithLoader(load Loader) ServiceOption {
	return func(s *Service) {
		s.load = load
	}
}

// NewService creates a new batch service
func NewService(runner JobRunner, output io.Writer, opts ...ServiceOption) *Service {
	s := &Service{
		runner: runner,
		load:   config.LoadBatch,
		output: output,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run processes all jobs in the document at configPath. Document-level
// problems (unreadable file, malformed JSON, zero candidates) return an
// error; individual job failures are reported and skipped.
func (s *Service) Run(ctx context.Context, configPath string) (*Result, error) {
	jobs, err := s.load(configPath)
	if err != nil {
		return nil, err
	}

	result := &Result{Total: len(jobs)}
	fmt.Fprintf(s.output, "Found %d video(s) to process in config file\n", result.Total)

	for i, job := range jobs {
		fmt.Fprintf(s.output, "\nProcessing video %d/%d\n", i+1, result.Total)

		if missing := job.MissingFields(); len(missing) > 0 {
			fmt.Fprintf(s.output, "Config #%d is missing required parameters: %s\n", i+1, strings.Join(missing, ", "))
			continue
		}

		_, err := s.runner.Trim(ctx, appvideo.TrimInput{
			SourcePath:    job.Source,
			In:            job.In,
			Out:           job.Out,
			OutputPattern: job.Output,
		})
		if err != nil {
			fmt.Fprintf(s.output, "Error processing config #%d: %v\n", i+1, err)
			continue
		}

		result.Succeeded++
	}

	fmt.Fprintf(s.output, "\nBatch processing summary: Successfully processed %d out of %d videos\n",
		result.Succeeded, result.Total)

	return result, nil
}
