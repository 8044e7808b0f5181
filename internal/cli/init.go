package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/visa/internal/config"
)

// InitCmd returns the init command
func InitCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the visa database and config",
		Long: `Create ~/.visa/config.json (if missing) and the establishments table.
Safe to run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if _, err := os.Stat(config.Path(env.Home)); errors.Is(err, os.ErrNotExist) {
				if err := config.SaveConfig(env.Home, env.Config); err != nil {
					return err
				}
				fmt.Fprintf(out, "✓ Config written to %s\n", config.Path(env.Home))
			}

			fmt.Fprintf(out, "Initializing visa database at %s\n", env.Config.DBPath)
			if _, err := env.Container(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out, "✓ Database initialized successfully")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, `  visa register --name "Padaria Central" --tax-id 11.222.333/0001-81`)
			fmt.Fprintln(out, "  visa list")

			return nil
		},
	}
}
