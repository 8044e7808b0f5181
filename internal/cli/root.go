// Package cli implements the visa command-line interface.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cliadapter "github.com/example/visa/internal/adapters/cli"
	"github.com/example/visa/internal/config"
	"github.com/example/visa/internal/core/establishment"
	"github.com/example/visa/internal/logging"
	"github.com/example/visa/internal/version"
	"github.com/example/visa/internal/wire"
)

// Env carries per-invocation state shared by every command.
// The container is opened on first use; Close releases it.
type Env struct {
	// Flag values
	DBPath   string
	LogLevel string

	// Clock overrides time.Now, for tests.
	Clock establishment.Clock

	Home      string
	Config    *config.Config
	Logger    *zap.Logger
	container *wire.Container
}

// NewRootCmd builds the visa command tree.
func NewRootCmd(env *Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "visa",
		Short:   "VISA - establishment ledger for sanitary inspections",
		Version: version.String(),
		Long: `visa keeps the register of establishments under sanitary surveillance,
tracks their inspections and permit renewal status, and exports PDF reports.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: env.setup,
	}

	rootCmd.PersistentFlags().StringVar(&env.DBPath, "db", "", "Database file (default: ~/.visa/visa_bd.db)")
	rootCmd.PersistentFlags().StringVar(&env.LogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(InitCmd(env))
	rootCmd.AddCommand(DoctorCmd(env))
	rootCmd.AddCommand(RegisterCmd(env))
	rootCmd.AddCommand(InspectCmd(env))
	rootCmd.AddCommand(ShowCmd(env))
	rootCmd.AddCommand(ListCmd(env))
	rootCmd.AddCommand(ExportCmd(env))
	rootCmd.AddCommand(RefreshCmd(env))
	rootCmd.AddCommand(SeedCmd(env))

	return rootCmd
}

// setup resolves configuration and builds the logger. Flags win over config.
func (e *Env) setup(cmd *cobra.Command, args []string) error {
	if e.Home == "" {
		home, err := config.Dir()
		if err != nil {
			return err
		}
		e.Home = home
	}

	cfg, err := config.Load(e.Home, filepath.Join(e.Home, ".env"))
	if err != nil {
		return err
	}
	if e.DBPath != "" {
		cfg.DBPath = e.DBPath
	}
	if e.LogLevel != "" {
		cfg.LogLevel = e.LogLevel
	}
	e.Config = cfg

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	e.Logger = logger.With(zap.String("cmd", cmd.Name()))
	return nil
}

// Close releases the container if a command opened one.
// Cobra skips post-run hooks on error, so callers close after Execute.
func (e *Env) Close() error {
	if e.container == nil {
		return nil
	}
	err := e.container.Close()
	e.container = nil
	return err
}

// Container opens the database and services on first use.
func (e *Env) Container(ctx context.Context) (*wire.Container, error) {
	if e.container != nil {
		return e.container, nil
	}
	if e.Config == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	c, err := wire.New(ctx, e.Config, e.Logger, wire.Options{Clock: e.Clock})
	if err != nil {
		return nil, err
	}
	e.container = c
	return c, nil
}

// Adapter returns an EstablishmentAdapter writing to the command's output.
func (e *Env) Adapter(cmd *cobra.Command) (*cliadapter.EstablishmentAdapter, error) {
	c, err := e.Container(cmd.Context())
	if err != nil {
		return nil, err
	}
	return c.EstablishmentAdapterWithOutput(cmd.OutOrStdout()), nil
}
