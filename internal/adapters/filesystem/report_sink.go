// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/visa/internal/ports/secondary"
)

// ReportSink implements secondary.ReportSink on the local filesystem.
type ReportSink struct {
	exportDir string
}

// NewReportSink creates a sink resolving relative paths against exportDir.
// An empty exportDir means the working directory.
func NewReportSink(exportDir string) *ReportSink {
	return &ReportSink{exportDir: exportDir}
}

// Resolve returns the absolute destination for path.
func (s *ReportSink) Resolve(path string) (string, error) {
	if !filepath.IsAbs(path) && s.exportDir != "" {
		path = filepath.Join(s.exportDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return abs, nil
}

// Write renders into a temporary file beside path and renames it into place.
// The export directory is created on demand; any other missing directory is an error.
func (s *ReportSink) Write(ctx context.Context, path string, fill func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if s.exportDir != "" && sameDir(dir, s.exportDir) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	tmp, err := os.CreateTemp(dir, ".visa-export-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if err := fill(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := ctx.Err(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move report into place: %w", err)
	}

	committed = true
	return nil
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// Ensure ReportSink implements the interface
var _ secondary.ReportSink = (*ReportSink)(nil)
