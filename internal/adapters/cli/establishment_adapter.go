// Package cli translates command-line operations into service calls and
// formats the results for the terminal.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/visa/internal/core/establishment"
	"github.com/example/visa/internal/ports/primary"
)

// EstablishmentAdapter is a thin adapter that translates CLI operations to
// EstablishmentService and ReportService calls.
type EstablishmentAdapter struct {
	service primary.EstablishmentService
	reports primary.ReportService
	out     io.Writer
}

// NewEstablishmentAdapter creates a new EstablishmentAdapter.
func NewEstablishmentAdapter(service primary.EstablishmentService, reports primary.ReportService, out io.Writer) *EstablishmentAdapter {
	return &EstablishmentAdapter{
		service: service,
		reports: reports,
		out:     out,
	}
}

// Register registers a new establishment.
func (a *EstablishmentAdapter) Register(ctx context.Context, req primary.RegisterRequest) (*primary.Establishment, error) {
	est, err := a.service.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Registered establishment %d: %s\n", est.ID, est.Name)
	fmt.Fprintf(a.out, "  CNPJ/CPF: %s\n", est.TaxID)
	fmt.Fprintf(a.out, "  Status:   %s\n", StatusLabel(est.Status))
	return est, nil
}

// Inspect loads an establishment by tax ID, lets edit change the request and
// records the inspection.
func (a *EstablishmentAdapter) Inspect(ctx context.Context, taxID string, edit func(*primary.InspectionRequest)) (*primary.Establishment, error) {
	current, err := a.service.GetByTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}

	req := current.InspectionRequest()
	edit(&req)

	est, err := a.service.RecordInspection(ctx, current.ID, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Updated establishment %d: %s\n", est.ID, est.Name)
	fmt.Fprintf(a.out, "  Last inspection: %s\n", orDash(est.LastInspectionLabel()))
	fmt.Fprintf(a.out, "  Next inspection: %s\n", orDash(establishment.FormatDate(est.NextInspectionDate)))
	fmt.Fprintf(a.out, "  Status:          %s\n", StatusLabel(est.Status))
	return est, nil
}

// Show displays every field of a single establishment.
func (a *EstablishmentAdapter) Show(ctx context.Context, taxID string) (*primary.Establishment, error) {
	est, err := a.service.GetByTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nEstablishment %d: %s\n", est.ID, est.Name)
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, f := range [][2]string{
		{"CNPJ/CPF", est.TaxID},
		{"Grupo", string(est.Group)},
		{"CNAE", est.ActivityCode},
		{"Grau de risco", string(est.RiskGrade)},
		{"Responsável", est.ResponsiblePerson},
		{"CPF responsável", est.ResponsiblePersonID},
		{"Endereço", est.Address},
		{"Telefone", est.Phone},
		{"Email", est.Email},
		{"Projeto arquitetônico", string(est.ArchitecturalProject)},
		{"Última inspeção", est.LastInspectionLabel()},
		{"Reinspeção", establishment.FormatReinspection(est.Reinspection)},
		{"Alvará", string(est.PermitStatus)},
		{"Próxima inspeção", establishment.FormatDate(est.NextInspectionDate)},
		{"Motivo", string(est.Reason)},
	} {
		fmt.Fprintf(w, "  %s:\t%s\n", f[0], orDash(f[1]))
	}
	fmt.Fprintf(w, "  Situação:\t%s\n", StatusLabel(est.Status))
	w.Flush()
	fmt.Fprintln(a.out)

	return est, nil
}

// List prints establishments as a table. A zero filter lists everything.
func (a *EstablishmentAdapter) List(ctx context.Context, filter primary.Filter) ([]*primary.Establishment, error) {
	list, err := a.service.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No establishments found.")
		if filter.IsZero() {
			fmt.Fprintln(a.out)
			fmt.Fprintln(a.out, "Register your first establishment:")
			fmt.Fprintln(a.out, `  visa register --name "Padaria Central" --tax-id 11.222.333/0001-81`)
		}
		return list, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCNPJ/CPF\tGROUP\tLAST INSPECTION\tNEXT INSPECTION\tSTATUS")
	fmt.Fprintln(w, "--\t----\t--------\t-----\t---------------\t---------------\t------")
	for _, e := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Name,
			e.TaxID,
			orDash(string(e.Group)),
			orDash(e.LastInspectionLabel()),
			orDash(establishment.FormatDate(e.NextInspectionDate)),
			StatusLabel(e.Status),
		)
	}
	w.Flush()

	return list, nil
}

// Export writes a report and prints where it went.
func (a *EstablishmentAdapter) Export(ctx context.Context, req primary.ExportRequest) (*primary.ExportResponse, error) {
	resp, err := a.reports.Export(ctx, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Exported %d establishment(s)\n", resp.Rows)
	fmt.Fprintf(a.out, "  %s\n", resp.Title)
	fmt.Fprintf(a.out, "  %s\n", resp.Path)
	return resp, nil
}

// Refresh recomputes stored statuses.
func (a *EstablishmentAdapter) Refresh(ctx context.Context) (int, error) {
	changed, err := a.service.RefreshStatuses(ctx)
	if err != nil {
		return 0, err
	}

	if changed == 0 {
		fmt.Fprintln(a.out, "✓ All statuses up to date")
	} else {
		fmt.Fprintf(a.out, "✓ Refreshed %d establishment(s)\n", changed)
	}
	return changed, nil
}

// StatusLabel renders a status in its traffic-light colour.
func StatusLabel(s establishment.Status) string {
	switch s {
	case establishment.StatusCurrent:
		return color.New(color.FgGreen).Sprint(s)
	case establishment.StatusNeedsAttention:
		return color.New(color.FgYellow).Sprint(s)
	case establishment.StatusExpired:
		return color.New(color.FgRed, color.Bold).Sprint(s)
	case establishment.StatusFormatError:
		return color.New(color.FgMagenta).Sprint(s)
	default:
		return color.New(color.Faint).Sprint(s)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
