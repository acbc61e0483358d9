package video

import (
	"errors"
	"strings"
	"testing"
)

func TestNewTrimRequest(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		in           string
		out          string
		wantErr      bool
		wantSentinel error
		errMsg       string
		wantDuration int
	}{
		{
			name:         "valid request",
			source:       "clip.mp4",
			in:           "000010",
			out:          "000020",
			wantDuration: 10,
		},
		{
			name:         "range spanning hours",
			source:       "clip.mp4",
			in:           "005930",
			out:          "010030",
			wantDuration: 60,
		},
		{
			name:         "invalid IN timestamp",
			source:       "clip.mp4",
			in:           "9999",
			out:          "000020",
			wantErr:      true,
			wantSentinel: ErrInvalidTimestamp,
			errMsg:       "invalid IN timestamp",
		},
		{
			name:         "invalid OUT timestamp",
			source:       "clip.mp4",
			in:           "000010",
			out:          "996000",
			wantErr:      true,
			wantSentinel: ErrInvalidTimestamp,
			errMsg:       "invalid OUT timestamp",
		},
		{
			name:         "out before in",
			source:       "clip.mp4",
			in:           "120000",
			out:          "110000",
			wantErr:      true,
			wantSentinel: ErrInvalidRange,
		},
		{
			name:         "out equals in",
			source:       "clip.mp4",
			in:           "000010",
			out:          "000010",
			wantErr:      true,
			wantSentinel: ErrInvalidRange,
		},
		{
			name:    "empty source",
			source:  "",
			in:      "000010",
			out:     "000020",
			wantErr: true,
			errMsg:  "source path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewTrimRequest(tt.source, tt.in, tt.out, "/tmp/out.mp4")

			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewTrimRequest() expected error, got nil")
				}
				if tt.wantSentinel != nil && !errors.Is(err, tt.wantSentinel) {
					t.Errorf("NewTrimRequest() error = %v, want %v in chain", err, tt.wantSentinel)
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("NewTrimRequest() error = %v, want error containing %q", err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewTrimRequest() unexpected error: %v", err)
			}
			if got := req.Duration(); got != tt.wantDuration {
				t.Errorf("Duration() = %d, want %d", got, tt.wantDuration)
			}
		})
	}
}
