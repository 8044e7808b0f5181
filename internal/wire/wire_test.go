package wire

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/visa/internal/apperror"
	"github.com/example/visa/internal/config"
	"github.com/example/visa/internal/core/establishment"
	"github.com/example/visa/internal/db"
	"github.com/example/visa/internal/ports/primary"
)

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default(dir)
	cfg.ExportDir = filepath.Join(dir, "reports")

	clock := func() time.Time { return time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC) }
	c, err := New(context.Background(), cfg, nil, Options{Clock: clock})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNew_CreatesDatabaseAndTable(t *testing.T) {
	c := newTestContainer(t)

	assert.FileExists(t, c.Config.DBPath)
	exists, err := db.TableExists(c.DB)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestContainer_EndToEnd(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	est, err := c.Establishments.Register(ctx, primary.RegisterRequest{
		Name:  "Padaria Pão Dourado",
		TaxID: "11.222.333/0001-81",
		Group: establishment.GroupFood,
	})
	require.NoError(t, err)
	assert.Equal(t, establishment.StatusUnset, est.Status)

	req := est.InspectionRequest()
	req.LastInspectionDate = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	updated, err := c.Establishments.RecordInspection(ctx, est.ID, req)
	require.NoError(t, err)
	assert.Equal(t, establishment.StatusExpired, updated.Status)

	found, err := c.Establishments.Search(ctx, primary.Filter{Field: "Status", Value: "VENCIDO"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	var out bytes.Buffer
	resp, err := c.EstablishmentAdapterWithOutput(&out).Export(ctx, primary.ExportRequest{All: true, Path: "todos"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.Config.ExportDir, "todos.pdf"), resp.Path)

	data, err := os.ReadFile(resp.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestNew_UnopenableDatabase(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	cfg := config.Default(dir)
	cfg.DBPath = filepath.Join(blocker, "visa_bd.db")

	_, err := New(context.Background(), cfg, nil, Options{})
	assert.ErrorIs(t, err, apperror.ErrStorage)
}

func TestNew_DatabasePathIsDirectory(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default(dir)
	cfg.DBPath = dir

	_, err := New(context.Background(), cfg, nil, Options{})
	assert.ErrorIs(t, err, apperror.ErrStorage)
}
