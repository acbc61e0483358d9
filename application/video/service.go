package video

import (
	"context"
	"errors"
	"fmt"
	"io"

	"ffcrop/domain/video"
)

// DirEnsurer creates the parent directory for an output path
type DirEnsurer interface {
	EnsureParentDir(path string) error
}

// TrimResult contains the result of a trim operation
type TrimResult struct {
	OutputPath string
	Trimmer    string
}

// TrimInput represents the input for a trim operation
type TrimInput struct {
	SourcePath    string
	In            string
	Out           string
	OutputPattern string
}

// TrimService coordinates a single trim: input validation, output path
// resolution, and the ordered chain of trimmer strategies
type TrimService struct {
	trimmers    []video.Trimmer
	fileChecker video.FileChecker
	dirEnsurer  DirEnsurer
	resolver    *video.PathResolver
	output      io.Writer
}

// NewTrimService creates a new TrimService. Trimmers are tried in the order
// given; the first success wins.
func NewTrimService(
	trimmers []video.Trimmer,
	fileChecker video.FileChecker,
	dirEnsurer DirEnsurer,
	resolver *video.PathResolver,
	output io.Writer,
) *TrimService {
	return &TrimService{
		trimmers:    trimmers,
		fileChecker: fileChecker,
		dirEnsurer:  dirEnsurer,
		resolver:    resolver,
		output:      output,
	}
}

// Trim validates the input, resolves the destination path, and extracts the
// requested range via the first trimmer that succeeds
func (s *TrimService) Trim(ctx context.Context, input TrimInput) (*TrimResult, error) {
	if !s.fileChecker.Exists(input.SourcePath) {
		return nil, fmt.Errorf("%w: %s", video.ErrSourceNotFound, input.SourcePath)
	}

	req, err := video.NewTrimRequest(input.SourcePath, input.In, input.Out, input.OutputPattern)
	if err != nil {
		return nil, err
	}

	outputPath := s.resolver.Resolve(req.OutputPattern, req.SourcePath)
	fmt.Fprintf(s.output, "Normalized output path: %s\n", outputPath)

	if err := s.dirEnsurer.EnsureParentDir(outputPath); err != nil {
		return nil, err
	}

	if len(s.trimmers) == 0 {
		return nil, video.ErrToolUnavailable
	}

	var attemptErrs []error
	for _, trimmer := range s.trimmers {
		if err := trimmer.Trim(ctx, req, outputPath); err != nil {
			fmt.Fprintf(s.output, "Error processing with %s: %v\n", trimmer.Name(), err)
			attemptErrs = append(attemptErrs, err)
			continue
		}
		fmt.Fprintf(s.output, "Successfully processed: %s -> %s\n", req.SourcePath, outputPath)
		return &TrimResult{
			OutputPath: outputPath,
			Trimmer:    trimmer.Name(),
		}, nil
	}

	return nil, fmt.Errorf("all trim attempts failed: %w", errors.Join(attemptErrs...))
}
