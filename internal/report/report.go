// Package report writes a run's results to a JSON or YAML file.
//
// Reports are written under an exclusive file lock and replaced atomically,
// so concurrent dnacount processes pointed at the same report path never
// interleave or leave a half-written file behind.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/dendrascience/dnacount/count"
	"github.com/dendrascience/dnacount/version"
)

// Report is the serialized form of a run.
type Report struct {
	RunID       string      `json:"run_id" yaml:"run_id"`
	Version     string      `json:"version" yaml:"version"`
	Directory   string      `json:"directory" yaml:"directory"`
	Pattern     string      `json:"pattern" yaml:"pattern"`
	Total       int64       `json:"total" yaml:"total"`
	Partial     bool        `json:"partial" yaml:"partial"`
	Interrupted bool        `json:"interrupted" yaml:"interrupted"`
	GeneratedAt time.Time   `json:"generated_at" yaml:"generated_at"`
	Files       []FileEntry `json:"files" yaml:"files"`
}

// FileEntry is one file's line in a report.
type FileEntry struct {
	Path       string `json:"path" yaml:"path"`
	Count      int64  `json:"count" yaml:"count"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMS int64  `json:"duration_ms" yaml:"duration_ms"`
	SHA256     string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
}

// New builds a Report from a summary.
func New(runID, dir string, summary count.Summary) Report {
	r := Report{
		RunID:       runID,
		Version:     version.GetVersion(),
		Directory:   dir,
		Pattern:     summary.Pattern,
		Total:       summary.Total,
		Partial:     summary.Partial(),
		Interrupted: summary.Interrupted,
		GeneratedAt: time.Now().UTC(),
		Files:       make([]FileEntry, 0, len(summary.Results)),
	}
	for _, res := range summary.Results {
		e := FileEntry{Path: res.Path, Count: res.Count, DurationMS: res.Duration.Milliseconds()}
		if res.Err != nil {
			e.Error = res.Err.Error()
		}
		r.Files = append(r.Files, e)
	}
	return r
}

// Marshal encodes r as YAML for .yaml/.yml paths and as indented JSON otherwise.
func Marshal(path string, r Report) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(r)
	default:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// Write encodes r according to the extension of path and replaces the file.
func Write(path string, r Report) error {
	data, err := Marshal(path, r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", path, err)
	}
	defer lock.Unlock()

	return atomicWrite(path, data)
}

// atomicWrite writes data to a temp file beside path and renames it into place.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-report-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	tmp = nil
	return nil
}

// Read loads a report written by Write.
func Read(path string) (Report, error) {
	var r Report
	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &r)
	default:
		err = json.Unmarshal(data, &r)
	}
	if err != nil {
		return r, fmt.Errorf("decode report %s: %w", path, err)
	}
	return r, nil
}
