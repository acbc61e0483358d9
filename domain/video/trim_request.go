package video

import "fmt"

// TrimRequest represents a request to extract a sub-range of a video
type TrimRequest struct {
	SourcePath    string
	In            Timestamp
	Out           Timestamp
	OutputPattern string
}

// NewTrimRequest creates a TrimRequest from raw timestamp strings.
// Parse failures are wrapped so the caller can tell which of the two
// timestamps was bad.
func NewTrimRequest(sourcePath, in, out, outputPattern string) (*TrimRequest, error) {
	inTS, err := ParseTimestamp(in)
	if err != nil {
		return nil, fmt.Errorf("invalid IN timestamp: %w", err)
	}

	outTS, err := ParseTimestamp(out)
	if err != nil {
		return nil, fmt.Errorf("invalid OUT timestamp: %w", err)
	}

	req := &TrimRequest{
		SourcePath:    sourcePath,
		In:            inTS,
		Out:           outTS,
		OutputPattern: outputPattern,
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks that the trim request describes a positive time range
func (r *TrimRequest) Validate() error {
	if r.SourcePath == "" {
		return fmt.Errorf("source path is required")
	}

	if r.Duration() <= 0 {
		return fmt.Errorf("%w: OUT %s is not after IN %s", ErrInvalidRange, r.Out, r.In)
	}

	return nil
}

// Duration returns the length of the requested range in seconds
func (r *TrimRequest) Duration() int {
	return r.Out.TotalSeconds() - r.In.TotalSeconds()
}
