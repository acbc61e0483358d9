//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"ffcrop/cmd"
	"ffcrop/domain/video"
	"ffcrop/infrastructure/config"

	appbatch "ffcrop/application/batch"

	"github.com/cucumber/godog"
)

// batchContext holds test state for batch scenarios
type batchContext struct {
	doc    string
	system *fakeTrimmer
	fs     *fakeFilesystem
	output *bytes.Buffer
	err    error
	result *appbatch.Result
}

// SharedBatchContext is reset before each scenario via Before hook
var SharedBatchContext *batchContext

func getBatchContext() *batchContext {
	return SharedBatchContext
}

func InitializeBatchScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedBatchContext = &batchContext{
			system: &fakeTrimmer{name: "system ffmpeg"},
			fs:     newFakeFilesystem(),
			output: &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedBatchContext = nil
		return c, nil
	})

	ctx.Step(`^a batch source video at "([^"]*)"$`, aBatchSourceVideoAt)
	ctx.Step(`^a batch document:$`, aBatchDocument)
	ctx.Step(`^I run the batch$`, iRunTheBatch)
	ctx.Step(`^I attempt to run the batch$`, iAttemptToRunTheBatch)
	ctx.Step(`^(\d+) of (\d+) jobs should succeed$`, jobsShouldSucceed)
	ctx.Step(`^job (\d+) should be reported as missing "([^"]*)"$`, jobShouldBeReportedAsMissing)
	ctx.Step(`^I should receive an error about no valid configurations$`, iShouldReceiveANoValidConfigsError)
	ctx.Step(`^I should receive an error about parsing the config file$`, iShouldReceiveAConfigParseError)
}

func aBatchSourceVideoAt(path string) error {
	b := getBatchContext()
	b.fs.existingFiles[path] = true
	return nil
}

func aBatchDocument(doc *godog.DocString) error {
	b := getBatchContext()
	b.doc = doc.Content
	return nil
}

func (b *batchContext) runBatch() {
	loader := func(path string) ([]config.JobSpec, error) {
		return config.ParseBatch([]byte(b.doc))
	}

	b.result, b.err = cmd.RunBatchWithDependencies(
		context.Background(),
		[]video.Trimmer{b.system},
		b.fs,
		0,
		"inline.json",
		loader,
		b.output,
	)
}

func iRunTheBatch() error {
	b := getBatchContext()
	b.runBatch()
	if b.err != nil {
		return fmt.Errorf("unexpected error: %v", b.err)
	}
	return nil
}

func iAttemptToRunTheBatch() error {
	b := getBatchContext()
	b.runBatch()
	return nil
}

func jobsShouldSucceed(succeeded, total int) error {
	b := getBatchContext()
	if b.result == nil {
		return fmt.Errorf("no batch result")
	}
	if b.result.Succeeded != succeeded || b.result.Total != total {
		return fmt.Errorf("expected %d of %d jobs to succeed, got %d of %d",
			succeeded, total, b.result.Succeeded, b.result.Total)
	}
	return nil
}

func jobShouldBeReportedAsMissing(index int, field string) error {
	b := getBatchContext()
	want := fmt.Sprintf("Config #%d is missing required parameters: %s", index, field)
	if !strings.Contains(b.output.String(), want) {
		return fmt.Errorf("expected output containing %q, got:\n%s", want, b.output.String())
	}
	return nil
}

func iShouldReceiveANoValidConfigsError() error {
	b := getBatchContext()
	if b.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(b.err.Error(), "no valid configurations") {
		return fmt.Errorf("expected error about no valid configurations, got: %v", b.err)
	}
	return nil
}

func iShouldReceiveAConfigParseError() error {
	b := getBatchContext()
	if b.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(b.err.Error(), "error parsing config file") {
		return fmt.Errorf("expected error about parsing the config file, got: %v", b.err)
	}
	return nil
}
