package video

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// TimestampToken is the literal placeholder users may embed in an output
// pattern; it is replaced with the current wall-clock time before use.
const TimestampToken = "[timestamp]"

// timestampLayout is the wall-clock format substituted for TimestampToken
const timestampLayout = "20060102_150405"

// PathResolver computes a concrete destination file path from an output
// pattern and the source file path
type PathResolver struct {
	fs              FileChecker
	now             func() time.Time
	subsecondDigits int
}

// ResolverOption is a functional option for configuring PathResolver
type ResolverOption func(*PathResolver)

// WithClock sets a custom time source (for testing)
func WithClock(now func() time.Time) ResolverOption {
	return func(r *PathResolver) {
		r.now = now
	}
}

// WithSubsecondDigits appends n digits of sub-second precision to generated
// timestamps so that back-to-back runs produce unique filenames
func WithSubsecondDigits(n int) ResolverOption {
	return func(r *PathResolver) {
		if n < 0 {
			n = 0
		}
		if n > 9 {
			n = 9
		}
		r.subsecondDigits = n
	}
}

// NewPathResolver creates a PathResolver backed by the given filesystem checker
func NewPathResolver(fs FileChecker, opts ...ResolverOption) *PathResolver {
	r := &PathResolver{
		fs:  fs,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve turns an output pattern into a concrete destination path:
// the [timestamp] token is substituted, directory targets (existing
// directories, or patterns ending with a separator) get a generated
// "{stem}-{timestamp}{ext}" filename, and separators are normalized for the
// host. It never checks whether the destination itself exists.
func (r *PathResolver) Resolve(pattern, sourcePath string) string {
	// Trailing-separator detection has to happen before Clean strips it
	endsWithSep := strings.HasSuffix(pattern, "/") || strings.HasSuffix(pattern, "\\")

	out := pattern
	if strings.Contains(out, TimestampToken) {
		out = strings.ReplaceAll(out, TimestampToken, r.timestamp())
	}

	if endsWithSep || r.fs.IsDir(out) {
		base := filepath.Base(sourcePath)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		out = filepath.Join(out, fmt.Sprintf("%s-%s%s", stem, r.timestamp(), ext))
	}

	return filepath.Clean(filepath.FromSlash(out))
}

func (r *PathResolver) timestamp() string {
	t := r.now()
	s := t.Format(timestampLayout)
	if r.subsecondDigits > 0 {
		s += fmt.Sprintf("%09d", t.Nanosecond())[:r.subsecondDigits]
	}
	return s
}
