package video

import "context"

// Trimmer defines the interface for video trimming operations.
// Implementations are tried in order: the subprocess trimmer first, then the
// library-binding fallback if one is available.
type Trimmer interface {
	// Trim extracts the requested range and saves it to outputPath,
	// overwriting any existing file
	Trim(ctx context.Context, req *TrimRequest, outputPath string) error

	// Name identifies the trimmer in diagnostic output
	Name() string
}

// FileChecker defines the interface for filesystem lookups the trim flow
// needs: source existence and directory-target detection
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool

	// IsDir returns true if the path names an existing directory
	IsDir(path string) bool
}
