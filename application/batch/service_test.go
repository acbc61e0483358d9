package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	appvideo "ffcrop/application/video"
	"ffcrop/infrastructure/config"
)

// fakeRunner records trim inputs and fails for configured sources
type fakeRunner struct {
	calls       []appvideo.TrimInput
	failSources map[string]error
}

func (r *fakeRunner) Trim(ctx context.Context, input appvideo.TrimInput) (*appvideo.TrimResult, error) {
	r.calls = append(r.calls, input)
	if err, ok := r.failSources[input.SourcePath]; ok {
		return nil, err
	}
	return &appvideo.TrimResult{OutputPath: input.OutputPattern, Trimmer: "system ffmpeg"}, nil
}

func staticLoader(jobs []config.JobSpec, err error) Loader {
	return func(path string) ([]config.JobSpec, error) {
		return jobs, err
	}
}

func TestRun_AllJobsSucceed(t *testing.T) {
	runner := &fakeRunner{}
	output := &bytes.Buffer{}
	service := NewService(runner, output, WithLoader(staticLoader([]config.JobSpec{
		{Source: "a.mp4", In: "000000", Out: "000010", Output: "/tmp/a.mp4"},
		{Source: "b.mp4", In: "000500", Out: "001000", Output: "/tmp/b.mp4"},
	}, nil)))

	result, err := service.Run(context.Background(), "jobs.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 2 || result.Succeeded != 2 {
		t.Errorf("result = %+v, want 2/2", result)
	}
	if !result.AnySucceeded() {
		t.Error("expected AnySucceeded to be true")
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected 2 trim calls, got %d", len(runner.calls))
	}
	if runner.calls[0].SourcePath != "a.mp4" || runner.calls[1].SourcePath != "b.mp4" {
		t.Errorf("jobs ran out of order: %+v", runner.calls)
	}
	if !strings.Contains(output.String(), "Successfully processed 2 out of 2 videos") {
		t.Errorf("missing summary in output: %s", output.String())
	}
}

func TestRun_SkipsJobWithMissingFields(t *testing.T) {
	runner := &fakeRunner{}
	output := &bytes.Buffer{}
	service := NewService(runner, output, WithLoader(staticLoader([]config.JobSpec{
		{Source: "a.mp4", In: "000000", Output: "/tmp/a.mp4"}, // no "out"
		{Source: "b.mp4", In: "000500", Out: "001000", Output: "/tmp/b.mp4"},
	}, nil)))

	result, err := service.Run(context.Background(), "jobs.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Succeeded != 1 {
		t.Errorf("Succeeded = %d, want 1", result.Succeeded)
	}
	// The incomplete job must be reported by name and must not stop the rest
	if !strings.Contains(output.String(), "Config #1 is missing required parameters: out") {
		t.Errorf("missing-field diagnostic absent: %s", output.String())
	}
	if len(runner.calls) != 1 || runner.calls[0].SourcePath != "b.mp4" {
		t.Errorf("expected only the complete job to run, got %+v", runner.calls)
	}
}

func TestRun_IsolatesJobFailures(t *testing.T) {
	runner := &fakeRunner{
		failSources: map[string]error{"a.mp4": errors.New("ffmpeg invocation failed")},
	}
	output := &bytes.Buffer{}
	service := NewService(runner, output, WithLoader(staticLoader([]config.JobSpec{
		{Source: "a.mp4", In: "000000", Out: "000010", Output: "/tmp/a.mp4"},
		{Source: "b.mp4", In: "000500", Out: "001000", Output: "/tmp/b.mp4"},
	}, nil)))

	result, err := service.Run(context.Background(), "jobs.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 2 || result.Succeeded != 1 {
		t.Errorf("result = %+v, want 1 of 2", result)
	}
	if !strings.Contains(output.String(), "Error processing config #1") {
		t.Errorf("per-job error diagnostic absent: %s", output.String())
	}
	if len(runner.calls) != 2 {
		t.Errorf("failure should not abort the batch, got %d calls", len(runner.calls))
	}
}

func TestRun_AllJobsFail(t *testing.T) {
	runner := &fakeRunner{
		failSources: map[string]error{"a.mp4": errors.New("boom")},
	}
	service := NewService(runner, &bytes.Buffer{}, WithLoader(staticLoader([]config.JobSpec{
		{Source: "a.mp4", In: "000000", Out: "000010", Output: "/tmp/a.mp4"},
	}, nil)))

	result, err := service.Run(context.Background(), "jobs.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AnySucceeded() {
		t.Error("expected AnySucceeded to be false")
	}
}

func TestRun_DocumentErrorsPropagate(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"parse error", fmt.Errorf("%w: unexpected end of JSON input", config.ErrConfigParse)},
		{"no valid configs", config.ErrNoValidConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			service := NewService(runner, &bytes.Buffer{}, WithLoader(staticLoader(nil, tt.err)))

			_, err := service.Run(context.Background(), "jobs.json")
			if !errors.Is(err, tt.err) {
				t.Errorf("expected %v to propagate, got: %v", tt.err, err)
			}
			if len(runner.calls) != 0 {
				t.Errorf("no jobs should run on document errors")
			}
		})
	}
}

func TestRun_ProgressOutput(t *testing.T) {
	runner := &fakeRunner{}
	output := &bytes.Buffer{}
	service := NewService(runner, output, WithLoader(staticLoader([]config.JobSpec{
		{Source: "a.mp4", In: "000000", Out: "000010", Output: "/tmp/a.mp4"},
		{Source: "b.mp4", In: "000500", Out: "001000", Output: "/tmp/b.mp4"},
	}, nil)))

	if _, err := service.Run(context.Background(), "jobs.json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Found 2 video(s) to process in config file",
		"Processing video 1/2",
		"Processing video 2/2",
	} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("output missing %q:\n%s", want, output.String())
		}
	}
}
