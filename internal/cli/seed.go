package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/visa/internal/db"
)

// SeedCmd returns the seed command
func SeedCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert development fixtures",
		Long: `Insert sample establishments covering every status.
Fixtures whose CNPJ/CPF already exists are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}

			now := time.Now
			if env.Clock != nil {
				now = env.Clock
			}
			n, err := db.SeedFixtures(cmd.Context(), c.Repository, now())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Inserted %d fixture(s)\n", n)
			return nil
		},
	}
}
