package video

import "errors"

var (
	// ErrInvalidTimestamp is returned when a timestamp string is not six
	// digits or its time values are out of range
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidRange is returned when the OUT timestamp is not after the IN timestamp
	ErrInvalidRange = errors.New("OUT timestamp must be greater than IN timestamp")

	// ErrSourceNotFound is returned when the source video file does not exist
	ErrSourceNotFound = errors.New("source file not found")

	// ErrOutputDir is returned when the output directory cannot be created
	ErrOutputDir = errors.New("cannot create output directory")

	// ErrToolUnavailable is returned when neither the ffmpeg executable nor
	// the library binding is usable
	ErrToolUnavailable = errors.New("ffmpeg is not available")

	// ErrExternalTool is returned when an ffmpeg invocation fails
	ErrExternalTool = errors.New("ffmpeg invocation failed")
)
