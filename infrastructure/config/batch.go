package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var (
	// ErrConfigParse is returned when a batch document is not valid JSON
	ErrConfigParse = errors.New("error parsing config file")

	// ErrNoValidConfigs is returned when a batch document yields zero
	// candidate jobs
	ErrNoValidConfigs = errors.New("no valid configurations found in the config file")
)

// JobSpec is one trim job as described in a batch configuration document
type JobSpec struct {
	Source string `json:"source"`
	In     string `json:"in"`
	Out    string `json:"out"`
	Output string `json:"output"`
}

// jobFields lists the required keys in document order
var jobFields = []string{"source", "in", "out", "output"}

// MissingFields returns the names of required fields that are absent or empty
func (j JobSpec) MissingFields() []string {
	var missing []string
	for _, f := range jobFields {
		switch f {
		case "source":
			if j.Source == "" {
				missing = append(missing, f)
			}
		case "in":
			if j.In == "" {
				missing = append(missing, f)
			}
		case "out":
			if j.Out == "" {
				missing = append(missing, f)
			}
		case "output":
			if j.Output == "" {
				missing = append(missing, f)
			}
		}
	}
	return missing
}

// LoadBatch reads a batch configuration document from disk and normalizes it
// into an ordered list of job candidates
func LoadBatch(path string) ([]JobSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return ParseBatch(data)
}

// ParseBatch normalizes a batch document into a list of job candidates.
// Three shapes are accepted: an array of job objects, a single job object,
// or an object whose values are job objects (named jobs, run in sorted key
// order). Candidates may still be missing fields; the batch runner skips and
// reports those individually.
func ParseBatch(data []byte) ([]JobSpec, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var jobs []JobSpec
		if err := json.Unmarshal(trimmed, &jobs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
		if len(jobs) == 0 {
			return nil, ErrNoValidConfigs
		}
		return jobs, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	// A single object qualifies as one job when all four keys are present;
	// otherwise its values are treated as named jobs
	if hasAllJobKeys(obj) {
		var job JobSpec
		if err := json.Unmarshal(trimmed, &job); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
		return []JobSpec{job}, nil
	}

	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)

	var jobs []JobSpec
	for _, name := range names {
		var job JobSpec
		if err := json.Unmarshal(obj[name], &job); err != nil {
			// Not job-shaped (scalar, array, mistyped fields); skip it
			continue
		}
		jobs = append(jobs, job)
	}

	if len(jobs) == 0 {
		return nil, ErrNoValidConfigs
	}
	return jobs, nil
}

func hasAllJobKeys(obj map[string]json.RawMessage) bool {
	for _, f := range jobFields {
		if _, ok := obj[f]; !ok {
			return false
		}
	}
	return true
}
