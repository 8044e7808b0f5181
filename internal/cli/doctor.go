package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/visa/internal/config"
	"github.com/example/visa/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd(env *Env) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the visa environment",
		Long: `Health check for the visa installation.

Validates:
- Config file (~/.visa/config.json)
- Database directory and file
- Establishments table

Examples:
  visa doctor              # Run full health check
  visa doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkConfig(env.Home),
				checkDatabaseDir(env.Config.DBPath),
				checkDatabase(env.Config.DBPath),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Check              Status")
				fmt.Fprintln(out, "─────────────────────────")
				for _, r := range results {
					fmt.Fprintf(out, "%-18s %s\n", r.Name, r.Status)
				}
				fmt.Fprintln(out)

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Fprintln(out, "Details:")
							hasDetails = true
						}
						fmt.Fprintf(out, "\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Fprintln(out, "\n⚠ Issues found. Run 'visa init' to create missing pieces.")
				} else {
					fmt.Fprintln(out, "All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkConfig warns when config.json is missing and fails when it is unreadable.
func checkConfig(home string) CheckResult {
	_, err := config.LoadConfig(home)
	switch {
	case err == nil:
		return CheckResult{Name: "Config", Status: "✓"}
	case errors.Is(err, os.ErrNotExist):
		return CheckResult{Name: "Config", Status: "⚠", Details: fmt.Sprintf("  %s missing, defaults in use", config.Path(home))}
	default:
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}
	}
}

// checkDatabaseDir fails when the database directory cannot be written.
func checkDatabaseDir(dbPath string) CheckResult {
	if dbPath == db.MemoryPath {
		return CheckResult{Name: "Database dir", Status: "✓"}
	}
	dir := filepath.Dir(dbPath)
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return CheckResult{Name: "Database dir", Status: "⚠", Details: fmt.Sprintf("  %s does not exist yet", dir)}
	}
	if err != nil {
		return CheckResult{Name: "Database dir", Status: "✗", Details: "  " + err.Error()}
	}
	if !info.IsDir() {
		return CheckResult{Name: "Database dir", Status: "✗", Details: fmt.Sprintf("  %s is not a directory", dir)}
	}

	tmp, err := os.CreateTemp(dir, ".visa-doctor-*")
	if err != nil {
		return CheckResult{Name: "Database dir", Status: "✗", Details: fmt.Sprintf("  %s is not writable: %v", dir, err)}
	}
	tmp.Close()
	os.Remove(tmp.Name())
	return CheckResult{Name: "Database dir", Status: "✓"}
}

// checkDatabase inspects an existing database without creating one.
func checkDatabase(dbPath string) CheckResult {
	if dbPath != db.MemoryPath {
		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return CheckResult{Name: "Database", Status: "⚠", Details: fmt.Sprintf("  %s not created yet", dbPath)}
		}
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	defer database.Close()

	exists, err := db.TableExists(database)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	if !exists {
		return CheckResult{Name: "Database", Status: "⚠", Details: "  establishments table missing"}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}
