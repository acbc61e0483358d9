//go:build integration

package steps

import (
	"context"

	"ffcrop/domain/video"
)

// fakeTrimmer records calls to Trim for verification
type fakeTrimmer struct {
	name       string
	calls      []fakeTrimCall
	shouldFail bool
	failError  error
}

type fakeTrimCall struct {
	req        *video.TrimRequest
	outputPath string
}

func (m *fakeTrimmer) Name() string {
	return m.name
}

func (m *fakeTrimmer) Trim(ctx context.Context, req *video.TrimRequest, outputPath string) error {
	m.calls = append(m.calls, fakeTrimCall{req: req, outputPath: outputPath})
	if m.shouldFail {
		return m.failError
	}
	return nil
}

// fakeFilesystem simulates file existence, directory targets, and parent
// directory creation
type fakeFilesystem struct {
	existingFiles map[string]bool
	existingDirs  map[string]bool
}

func newFakeFilesystem() *fakeFilesystem {
	return &fakeFilesystem{
		existingFiles: make(map[string]bool),
		existingDirs:  make(map[string]bool),
	}
}

func (f *fakeFilesystem) Exists(path string) bool {
	return f.existingFiles[path] || f.existingDirs[path]
}

func (f *fakeFilesystem) IsDir(path string) bool {
	return f.existingDirs[path]
}

func (f *fakeFilesystem) EnsureParentDir(path string) error {
	return nil
}
