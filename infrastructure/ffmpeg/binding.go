package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"ffcrop/domain/video"
)

// BindingTrimmer implements video.Trimmer through the ffmpeg-go library
// binding. It performs the same seek/copy/overwrite operation as the
// subprocess trimmer and serves as the fallback when that invocation fails.
type BindingTrimmer struct{}

// NewBindingTrimmer creates a new library-binding trimmer
func NewBindingTrimmer() *BindingTrimmer {
	return &BindingTrimmer{}
}

// Name implements video.Trimmer
func (t *BindingTrimmer) Name() string {
	return "ffmpeg-go binding"
}

// Trim implements video.Trimmer
func (t *BindingTrimmer) Trim(ctx context.Context, req *video.TrimRequest, outputPath string) error {
	// Probe first so a broken binding fails with a clear message instead of
	// a half-written output file
	if _, err := ffmpeggo.Probe(req.SourcePath); err != nil {
		return fmt.Errorf("%w: binding cannot access ffmpeg: %v", video.ErrExternalTool, err)
	}

	err := ffmpeggo.Input(req.SourcePath, ffmpeggo.KwArgs{
		"ss": req.In.TotalSeconds(),
	}).Output(outputPath, ffmpeggo.KwArgs{
		"t": req.Duration(),
		"c": "copy",
	}).OverWriteOutput().ErrorToStdOut().Run()
	if err != nil {
		return fmt.Errorf("%w: binding trim failed: %v", video.ErrExternalTool, err)
	}

	return nil
}

// Available reports whether the binding can reach an ffmpeg executable.
// ffmpeg-go drives the ffmpeg binary itself, so a PATH lookup is the whole
// check; actual invocation errors surface from Trim.
func (t *BindingTrimmer) Available(ctx context.Context) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg binding is not usable: %w", err)
	}
	return nil
}

// Ensure BindingTrimmer implements video.Trimmer
var _ video.Trimmer = (*BindingTrimmer)(nil)
