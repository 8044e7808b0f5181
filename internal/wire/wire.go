// Package wire provides dependency injection for the visa application.
// A Container owns the database handle and every service built on it.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"go.uber.org/zap"

	cliadapter "github.com/example/visa/internal/adapters/cli"
	"github.com/example/visa/internal/adapters/filesystem"
	"github.com/example/visa/internal/adapters/pdf"
	"github.com/example/visa/internal/adapters/sqlite"
	"github.com/example/visa/internal/app"
	"github.com/example/visa/internal/config"
	"github.com/example/visa/internal/core/establishment"
	"github.com/example/visa/internal/db"
	"github.com/example/visa/internal/ports/primary"
	"github.com/example/visa/internal/ports/secondary"
)

// Container holds the wired application for one process.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sql.DB

	Repository     secondary.EstablishmentRepository
	Establishments primary.EstablishmentService
	Reports        primary.ReportService
}

// Options tweak a Container; zero values select production behaviour.
type Options struct {
	Clock establishment.Clock
}

// New opens the database at cfg.DBPath, ensures the schema and builds the services.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts Options) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	// Create repository adapters (secondary ports) with injected DB
	repo := sqlite.NewEstablishmentRepository(database)
	if err := repo.CreateTable(ctx); err != nil {
		database.Close()
		return nil, err
	}

	renderer := pdf.NewReportRenderer()
	sink := filesystem.NewReportSink(cfg.ExportDir)

	// Create services (primary ports implementation)
	establishments := app.NewEstablishmentService(repo, opts.Clock, logger)
	reports := app.NewReportService(establishments, renderer, sink, opts.Clock, logger)

	logger.Debug("container ready", zap.String("db", cfg.DBPath))

	return &Container{
		Config:         cfg,
		Logger:         logger,
		DB:             database,
		Repository:     repo,
		Establishments: establishments,
		Reports:        reports,
	}, nil
}

// Close releases the database handle and flushes the logger.
func (c *Container) Close() error {
	_ = c.Logger.Sync()
	if err := c.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// EstablishmentAdapterWithOutput returns a new EstablishmentAdapter writing to the given output.
func (c *Container) EstablishmentAdapterWithOutput(out io.Writer) *cliadapter.EstablishmentAdapter {
	return cliadapter.NewEstablishmentAdapter(c.Establishments, c.Reports, out)
}
