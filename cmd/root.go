package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	appbatch "ffcrop/application/batch"
	appvideo "ffcrop/application/video"
	"ffcrop/domain/video"
	"ffcrop/infrastructure/config"
	"ffcrop/infrastructure/ffmpeg"
	"ffcrop/infrastructure/filesystem"
)

// Sub-second digits appended to generated [timestamp] substitutions.
// Single-file mode adds precision for uniqueness of repeated runs; batch mode
// historically did not. Both can be overridden in config.yaml.
const (
	singleModeSubsecondDigits = 4
	batchModeSubsecondDigits  = 0
)

var (
	cfg *config.Config

	batchConfigPath string
	sourcePath      string
	inTimestamp     string
	outTimestamp    string
	outputPattern   string
	ffmpegPath      string
)

var rootCmd = &cobra.Command{
	Use:   "ffcrop",
	Short: "Trim a video between two timestamps using ffmpeg",
	Long: `ffcrop extracts a sub-range of a video file without re-encoding,
using ffmpeg in stream-copy mode with an in-process binding as fallback.

Timestamps are given as 6-digit clock times (HHMMSS). The output path may be
a file, a directory, or contain the literal [timestamp] placeholder.

Examples:
  ffcrop --source recording.mp4 --in 000530 --out 014500 --output trimmed/
  ffcrop --source clip.mp4 --in 001000 --out 001100 --output "out_[timestamp].mp4"
  ffcrop --config jobs.json`,
	RunE: runRoot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to config.json for batch processing")
	rootCmd.Flags().StringVar(&sourcePath, "source", "", "Path to input video file")
	rootCmd.Flags().StringVar(&inTimestamp, "in", "", "IN timestamp in HHMMSS format")
	rootCmd.Flags().StringVar(&outTimestamp, "out", "", "OUT timestamp in HHMMSS format")
	rootCmd.Flags().StringVar(&outputPattern, "output", "", "Path for the output video, with optional [timestamp] placeholder")
	rootCmd.Flags().StringVar(&ffmpegPath, "ffmpeg-path", "", "Path to ffmpeg executable, if not in system PATH")

	rootCmd.MarkFlagsMutuallyExclusive("config", "source")
	rootCmd.MarkFlagsOneRequired("config", "source")
}

func initConfig() {
	var err error
	cfg, err = config.Load("config/config.yaml")
	if err != nil {
		// The config file is optional; flags cover everything it provides
		cfg = nil
	}
}

// GetConfig returns the loaded configuration, or nil if none was found
func GetConfig() *config.Config {
	return cfg
}

func runRoot(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	execPath := ffmpegPath
	if execPath == "" && cfg != nil {
		execPath = cfg.FFmpeg.Path
	}

	// Probe once, up front; the trim service never re-checks
	trimmers, err := availableTrimmers(cmd.Context(), execPath, out)
	if err != nil {
		return err
	}

	if batchConfigPath != "" {
		return runBatch(cmd.Context(), trimmers, out)
	}
	return runSingle(cmd.Context(), trimmers, out)
}

// availableTrimmers probes the external tool and the library binding and
// returns the usable strategies in fallback order
func availableTrimmers(ctx context.Context, execPath string, out io.Writer) ([]video.Trimmer, error) {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var trimmers []video.Trimmer

	execTrimmer := ffmpeg.NewTrimmer(ffmpeg.WithFFmpegPath(execPath))
	if err := execTrimmer.Available(probeCtx); err == nil {
		trimmers = append(trimmers, execTrimmer)
	} else {
		fmt.Fprintf(out, "System FFMPEG not found: %v\n", err)
	}

	binding := ffmpeg.NewBindingTrimmer()
	if err := binding.Available(probeCtx); err == nil {
		if len(trimmers) == 0 {
			fmt.Fprintln(out, "Falling back to the ffmpeg-go library binding")
		}
		trimmers = append(trimmers, binding)
	}

	if len(trimmers) == 0 {
		return nil, toolUnavailableError()
	}
	return trimmers, nil
}

func toolUnavailableError() error {
	return fmt.Errorf(`%w

Please install FFMPEG to use this tool:
- Windows: download from https://ffmpeg.org/download.html and add it to PATH
- macOS: brew install ffmpeg
- Linux: use your package manager, e.g. apt install ffmpeg

Alternatively, specify the executable location with --ffmpeg-path`, video.ErrToolUnavailable)
}

func subsecondDigits(modeDefault int) int {
	if cfg != nil && cfg.Output.TimestampSubsecondDigits != nil {
		return *cfg.Output.TimestampSubsecondDigits
	}
	return modeDefault
}

func runSingle(ctx context.Context, trimmers []video.Trimmer, out io.Writer) error {
	if inTimestamp == "" {
		return fmt.Errorf("--in is required when not using --config")
	}
	if outTimestamp == "" {
		return fmt.Errorf("--out is required when not using --config")
	}
	pattern := outputPattern
	if pattern == "" && cfg != nil {
		pattern = cfg.Output.DefaultDirectory
	}
	if pattern == "" {
		return fmt.Errorf("--output is required when not using --config")
	}

	fmt.Fprintf(out, "Processing single video: %s\n", sourcePath)

	result, err := RunTrimWithDependencies(
		ctx,
		trimmers,
		filesystem.NewChecker(),
		subsecondDigits(singleModeSubsecondDigits),
		sourcePath,
		inTimestamp,
		outTimestamp,
		pattern,
		out,
	)
	if err != nil {
		fmt.Fprintln(out, "Video processing completed with errors")
		return err
	}

	fmt.Fprintf(out, "Video processing completed successfully (%s)\n", result.Trimmer)
	return nil
}

func runBatch(ctx context.Context, trimmers []video.Trimmer, out io.Writer) error {
	fmt.Fprintf(out, "Starting batch processing with config: %s\n", batchConfigPath)

	if _, err := os.Stat(batchConfigPath); err != nil {
		return fmt.Errorf("config file not found: %s", batchConfigPath)
	}

	result, err := RunBatchWithDependencies(
		ctx,
		trimmers,
		filesystem.NewChecker(),
		subsecondDigits(batchModeSubsecondDigits),
		batchConfigPath,
		config.LoadBatch,
		out,
	)
	if err != nil {
		return err
	}

	if !result.AnySucceeded() {
		fmt.Fprintln(out, "Batch processing completed with errors")
		return errors.New("no batch jobs succeeded")
	}

	fmt.Fprintln(out, "Batch processing completed successfully")
	return nil
}

// FilesystemAccess combines the filesystem capabilities the trim flow needs;
// the production checker satisfies it, and tests substitute fakes
type FilesystemAccess interface {
	video.FileChecker
	appvideo.DirEnsurer
}

// RunTrimWithDependencies runs a single trim with injected dependencies (for testing)
func RunTrimWithDependencies(
	ctx context.Context,
	trimmers []video.Trimmer,
	fs FilesystemAccess,
	subsecDigits int,
	sourcePath string,
	in string,
	out string,
	outputPattern string,
	output io.Writer,
) (*appvideo.TrimResult, error) {
	resolver := video.NewPathResolver(fs, video.WithSubsecondDigits(subsecDigits))
	service := appvideo.NewTrimService(trimmers, fs, fs, resolver, output)

	return service.Trim(ctx, appvideo.TrimInput{
		SourcePath:    sourcePath,
		In:            in,
		Out:           out,
		OutputPattern: outputPattern,
	})
}

// RunBatchWithDependencies runs a batch with injected dependencies (for testing)
func RunBatchWithDependencies(
	ctx context.Context,
	trimmers []video.Trimmer,
	fs FilesystemAccess,
	subsecDigits int,
	configPath string,
	loader appbatch.Loader,
	output io.Writer,
) (*appbatch.Result, error) {
	resolver := video.NewPathResolver(fs, video.WithSubsecondDigits(subsecDigits))
	trimService := appvideo.NewTrimService(trimmers, fs, fs, resolver, output)
	batchService := appbatch.NewService(trimService, output, appbatch.WithLoader(loader))

	return batchService.Run(ctx, configPath)
}
