//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"ffcrop/cmd"
	"ffcrop/domain/video"

	appvideo "ffcrop/application/video"

	"github.com/cucumber/godog"
)

// trimContext holds test state for trim scenarios
type trimContext struct {
	sourcePath string
	system     *fakeTrimmer
	binding    *fakeTrimmer
	fs         *fakeFilesystem
	output     *bytes.Buffer
	err        error
	result     *appvideo.TrimResult
}

// SharedTrimContext is reset before each scenario via Before hook
var SharedTrimContext *trimContext

func getTrimContext() *trimContext {
	return SharedTrimContext
}

func InitializeTrimScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedTrimContext = &trimContext{
			system:  &fakeTrimmer{name: "system ffmpeg"},
			binding: &fakeTrimmer{name: "ffmpeg-go binding"},
			fs:      newFakeFilesystem(),
			output:  &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedTrimContext = nil
		return c, nil
	})

	ctx.Step(`^a source video at "([^"]*)"$`, aSourceVideoAt)
	ctx.Step(`^no source video exists at "([^"]*)"$`, noSourceVideoExistsAt)
	ctx.Step(`^an existing output directory "([^"]*)"$`, anExistingOutputDirectory)
	ctx.Step(`^the system ffmpeg invocation fails$`, theSystemFFmpegInvocationFails)
	ctx.Step(`^I trim the video from "([^"]*)" to "([^"]*)" into "([^"]*)"$`, iTrimTheVideoInto)
	ctx.Step(`^I attempt to trim the video from "([^"]*)" to "([^"]*)" into "([^"]*)"$`, iAttemptToTrimTheVideoInto)
	ctx.Step(`^the output file should be "([^"]*)"$`, theOutputFileShouldBe)
	ctx.Step(`^the output path should start with "([^"]*)"$`, theOutputPathShouldStartWith)
	ctx.Step(`^the output path should not contain "([^"]*)"$`, theOutputPathShouldNotContain)
	ctx.Step(`^the trim should seek to second (\d+) for (\d+) seconds$`, theTrimShouldSeekFor)
	ctx.Step(`^I should receive an error about an invalid timestamp$`, iShouldReceiveAnInvalidTimestampError)
	ctx.Step(`^I should receive an error about the time range$`, iShouldReceiveATimeRangeError)
	ctx.Step(`^I should receive an error about a missing source file$`, iShouldReceiveAMissingSourceError)
	ctx.Step(`^the library binding should have produced the output$`, theLibraryBindingShouldHaveProducedTheOutput)
	ctx.Step(`^the diagnostics should mention the failed ffmpeg attempt$`, theDiagnosticsShouldMentionTheFailedAttempt)
}

func aSourceVideoAt(path string) error {
	t := getTrimContext()
	t.sourcePath = path
	t.fs.existingFiles[path] = true
	return nil
}

func noSourceVideoExistsAt(path string) error {
	t := getTrimContext()
	t.sourcePath = path
	return nil
}

func anExistingOutputDirectory(path string) error {
	t := getTrimContext()
	t.fs.existingDirs[path] = true
	return nil
}

func theSystemFFmpegInvocationFails() error {
	t := getTrimContext()
	t.system.shouldFail = true
	t.system.failError = fmt.Errorf("%w: exit status 1", video.ErrExternalTool)
	return nil
}

func (t *trimContext) runTrim(in, out, pattern string) {
	t.result, t.err = cmd.RunTrimWithDependencies(
		context.Background(),
		[]video.Trimmer{t.system, t.binding},
		t.fs,
		0,
		t.sourcePath,
		in,
		out,
		pattern,
		t.output,
	)
}

func iTrimTheVideoInto(in, out, pattern string) error {
	t := getTrimContext()
	t.runTrim(in, out, pattern)
	if t.err != nil {
		return fmt.Errorf("unexpected error: %v", t.err)
	}
	return nil
}

func iAttemptToTrimTheVideoInto(in, out, pattern string) error {
	t := getTrimContext()
	t.runTrim(in, out, pattern)
	return nil
}

func theOutputFileShouldBe(expected string) error {
	t := getTrimContext()
	if t.result == nil || t.result.OutputPath != expected {
		return fmt.Errorf("expected output path %q, got %+v", expected, t.result)
	}
	return nil
}

func theOutputPathShouldStartWith(prefix string) error {
	t := getTrimContext()
	if t.result == nil || !strings.HasPrefix(t.result.OutputPath, prefix) {
		return fmt.Errorf("expected output path starting with %q, got %+v", prefix, t.result)
	}
	return nil
}

func theOutputPathShouldNotContain(substr string) error {
	t := getTrimContext()
	if t.result == nil {
		return fmt.Errorf("no trim result")
	}
	if strings.Contains(t.result.OutputPath, substr) {
		return fmt.Errorf("output path %q still contains %q", t.result.OutputPath, substr)
	}
	return nil
}

func theTrimShouldSeekFor(seek, duration int) error {
	t := getTrimContext()
	if len(t.system.calls) == 0 {
		return fmt.Errorf("ffmpeg was not called")
	}
	call := t.system.calls[0]
	if got := call.req.In.TotalSeconds(); got != seek {
		return fmt.Errorf("expected seek offset %d, got %d", seek, got)
	}
	if got := call.req.Duration(); got != duration {
		return fmt.Errorf("expected duration %d, got %d", duration, got)
	}
	return nil
}

func iShouldReceiveAnInvalidTimestampError() error {
	t := getTrimContext()
	if t.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(t.err.Error(), "invalid timestamp") {
		return fmt.Errorf("expected error about invalid timestamp, got: %v", t.err)
	}
	return nil
}

func iShouldReceiveATimeRangeError() error {
	t := getTrimContext()
	if t.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(t.err.Error(), "OUT timestamp must be greater than IN timestamp") {
		return fmt.Errorf("expected error about the time range, got: %v", t.err)
	}
	return nil
}

func iShouldReceiveAMissingSourceError() error {
	t := getTrimContext()
	if t.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(t.err.Error(), "source file not found") {
		return fmt.Errorf("expected error about missing source file, got: %v", t.err)
	}
	return nil
}

func theLibraryBindingShouldHaveProducedTheOutput() error {
	t := getTrimContext()
	if len(t.binding.calls) != 1 {
		return fmt.Errorf("expected 1 binding call, got %d", len(t.binding.calls))
	}
	if t.result == nil || t.result.Trimmer != "ffmpeg-go binding" {
		return fmt.Errorf("expected result from the binding, got %+v", t.result)
	}
	return nil
}

func theDiagnosticsShouldMentionTheFailedAttempt() error {
	t := getTrimContext()
	if !strings.Contains(t.output.String(), "Error processing with system ffmpeg") {
		return fmt.Errorf("expected diagnostic about the failed attempt, got: %s", t.output.String())
	}
	return nil
}
