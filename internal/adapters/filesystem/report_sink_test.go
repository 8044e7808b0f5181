package filesystem_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/visa/internal/adapters/filesystem"
)

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestReportSink_Resolve(t *testing.T) {
	exportDir := t.TempDir()
	sink := filesystem.NewReportSink(exportDir)

	got, err := sink.Resolve("vencidos.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(exportDir, "vencidos.pdf"), got)

	abs := filepath.Join(t.TempDir(), "x.pdf")
	got, err = sink.Resolve(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, got)
}

func TestReportSink_ResolveWithoutExportDir(t *testing.T) {
	sink := filesystem.NewReportSink("")

	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := sink.Resolve("r.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "r.pdf"), got)
}

func TestReportSink_Write(t *testing.T) {
	dir := t.TempDir()
	sink := filesystem.NewReportSink("")
	path := filepath.Join(dir, "r.pdf")

	require.NoError(t, sink.Write(context.Background(), path, writeString("%PDF-1.3")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))

	// Overwrite replaces the whole file
	require.NoError(t, sink.Write(context.Background(), path, writeString("v2")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestReportSink_FailedFillLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	sink := filesystem.NewReportSink("")
	path := filepath.Join(dir, "r.pdf")

	boom := errors.New("render failed")
	err := sink.Write(context.Background(), path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReportSink_FailedFillKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	sink := filesystem.NewReportSink("")
	path := filepath.Join(dir, "r.pdf")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	err := sink.Write(context.Background(), path, func(io.Writer) error { return errors.New("boom") })
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestReportSink_CreatesExportDir(t *testing.T) {
	exportDir := filepath.Join(t.TempDir(), "reports")
	sink := filesystem.NewReportSink(exportDir)

	path, err := sink.Resolve("r.pdf")
	require.NoError(t, err)
	require.NoError(t, sink.Write(context.Background(), path, writeString("ok")))

	assert.FileExists(t, filepath.Join(exportDir, "r.pdf"))
}

func TestReportSink_Unwritable(t *testing.T) {
	dir := t.TempDir()
	sink := filesystem.NewReportSink("")

	tests := []struct {
		name string
		path string
	}{
		{name: "missing directory", path: filepath.Join(dir, "missing", "r.pdf")},
		{name: "destination is a directory", path: dir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sink.Write(context.Background(), tt.path, writeString("x"))
			assert.Error(t, err)
		})
	}
}

func TestReportSink_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	sink := filesystem.NewReportSink("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sink.Write(ctx, filepath.Join(dir, "r.pdf"), writeString("x"))
	assert.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
