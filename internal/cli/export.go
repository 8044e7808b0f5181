package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/visa/internal/ports/primary"
)

// ExportCmd returns the export command
func ExportCmd(env *Env) *cobra.Command {
	var all bool
	var ids []int64
	var filter string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export establishments to a PDF report",
		Long: `Export establishments to a PDF report.

Select rows with --ids, --filter or --all (checked in that order).
".pdf" is appended when missing; relative paths go to the configured export directory.

Examples:
  visa export todos --all
  visa export selecao.pdf --ids 1,4,7
  visa export vencidos --filter Status=VENCIDO`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFilter(filter)
			if err != nil {
				return err
			}
			adapter, err := env.Adapter(cmd)
			if err != nil {
				return err
			}
			_, err = adapter.Export(cmd.Context(), primary.ExportRequest{
				IDs:    ids,
				Filter: f,
				All:    all,
				Path:   args[0],
			})
			return err
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Export every establishment")
	cmd.Flags().Int64SliceVar(&ids, "ids", nil, "Comma-separated establishment IDs")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Filter as Field=value")
	cmd.MarkFlagsMutuallyExclusive("all", "ids", "filter")

	return cmd
}
