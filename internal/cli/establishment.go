package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/visa/internal/core/establishment"
	"github.com/example/visa/internal/ports/primary"
)

// registrationFlags binds the registration fields shared by register and inspect.
type registrationFlags struct {
	name, taxID, group, activityCode, risk     string
	responsible, responsibleID, address, phone string
	email, project                             string
}

func (f *registrationFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Establishment name")
	cmd.Flags().StringVar(&f.taxID, "tax-id", "", "CNPJ or CPF")
	cmd.Flags().StringVar(&f.group, "group", "", oneOfHelp("Group", establishment.Groups))
	cmd.Flags().StringVar(&f.activityCode, "activity-code", "", "CNAE code (dddd-d/dd)")
	cmd.Flags().StringVar(&f.risk, "risk", "", oneOfHelp("Risk grade", establishment.RiskGrades))
	cmd.Flags().StringVar(&f.responsible, "responsible", "", "Responsible person")
	cmd.Flags().StringVar(&f.responsibleID, "responsible-id", "", "CPF of the responsible person")
	cmd.Flags().StringVar(&f.address, "address", "", "Address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone")
	cmd.Flags().StringVar(&f.email, "email", "", "Email")
	cmd.Flags().StringVar(&f.project, "project", "", oneOfHelp("Architectural project", establishment.ArchitecturalProjects))
}

func (f *registrationFlags) request() primary.RegisterRequest {
	return primary.RegisterRequest{
		Name:                 f.name,
		TaxID:                f.taxID,
		Group:                establishment.Group(f.group),
		ActivityCode:         f.activityCode,
		RiskGrade:            establishment.RiskGrade(f.risk),
		ResponsiblePerson:    f.responsible,
		ResponsiblePersonID:  f.responsibleID,
		Address:              f.address,
		Phone:                f.phone,
		Email:                f.email,
		ArchitecturalProject: establishment.ArchitecturalProject(f.project),
	}
}

// overlay copies the flags the user actually set onto req.
func (f *registrationFlags) overlay(cmd *cobra.Command, req *primary.RegisterRequest) {
	set := cmd.Flags().Changed
	if set("name") {
		req.Name = f.name
	}
	if set("tax-id") {
		req.TaxID = f.taxID
	}
	if set("group") {
		req.Group = establishment.Group(f.group)
	}
	if set("activity-code") {
		req.ActivityCode = f.activityCode
	}
	if set("risk") {
		req.RiskGrade = establishment.RiskGrade(f.risk)
	}
	if set("responsible") {
		req.ResponsiblePerson = f.responsible
	}
	if set("responsible-id") {
		req.ResponsiblePersonID = f.responsibleID
	}
	if set("address") {
		req.Address = f.address
	}
	if set("phone") {
		req.Phone = f.phone
	}
	if set("email") {
		req.Email = f.email
	}
	if set("project") {
		req.ArchitecturalProject = establishment.ArchitecturalProject(f.project)
	}
}

// RegisterCmd returns the register command
func RegisterCmd(env *Env) *cobra.Command {
	var flags registrationFlags

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new establishment",
		Long: `Register a new establishment. Inspection fields are set later with 'visa inspect'.

Examples:
  visa register --name "Padaria Pão Dourado" --tax-id 11.222.333/0001-81 --group ALIMENTOS
  visa register --name "Clínica Vida" --tax-id 33.444.555/0001-03 --risk "ALTO RISCO"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := env.Adapter(cmd)
			if err != nil {
				return err
			}
			_, err = adapter.Register(cmd.Context(), flags.request())
			return err
		},
	}

	flags.bind(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("tax-id")

	return cmd
}

// InspectCmd returns the inspect command
func InspectCmd(env *Env) *cobra.Command {
	var flags registrationFlags
	var lastInspection, permit, reason string
	var reinspection bool

	cmd := &cobra.Command{
		Use:   "inspect <tax-id>",
		Short: "Record an inspection and update an establishment",
		Long: `Update an establishment after an inspection. Only the flags given change;
status and next inspection date are recomputed.

Examples:
  visa inspect 11.222.333/0001-81 --last-inspection 15/03/2024 --permit LIBERADO
  visa inspect 11.222.333/0001-81 --reinspection --reason "Denúncia"
  visa inspect 11.222.333/0001-81 --last-inspection ""   # clear the date`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var last *lastInspectionValue
			if cmd.Flags().Changed("last-inspection") {
				v, err := parseLastInspection(lastInspection)
				if err != nil {
					return err
				}
				last = &v
			}

			adapter, err := env.Adapter(cmd)
			if err != nil {
				return err
			}

			_, err = adapter.Inspect(cmd.Context(), args[0], func(req *primary.InspectionRequest) {
				flags.overlay(cmd, &req.RegisterRequest)
				if last != nil {
					req.LastInspectionDate = last.date
				}
				if cmd.Flags().Changed("reinspection") {
					req.Reinspection = reinspection
				}
				if cmd.Flags().Changed("permit") {
					req.PermitStatus = establishment.PermitStatus(permit)
				}
				if cmd.Flags().Changed("reason") {
					req.Reason = establishment.Reason(reason)
				}
			})
			return err
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&lastInspection, "last-inspection", "", "Last inspection date (DD/MM/YYYY)")
	cmd.Flags().BoolVar(&reinspection, "reinspection", false, "Reinspection required")
	cmd.Flags().StringVar(&permit, "permit", "", oneOfHelp("Permit status", establishment.PermitStatuses))
	cmd.Flags().StringVar(&reason, "reason", "", oneOfHelp("Inspection reason", establishment.Reasons))

	return cmd
}

// ShowCmd returns the show command
func ShowCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <tax-id>",
		Short: "Show establishment details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := env.Adapter(cmd)
			if err != nil {
				return err
			}
			_, err = adapter.Show(cmd.Context(), args[0])
			return err
		},
	}
}

// ListCmd returns the list command
func ListCmd(env *Env) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List establishments",
		Long: `List establishments, optionally filtered by a field.

Filterable fields: Group, ActivityCode, RiskGrade, ReinspectionFlag, Status, Reason.
Matching is a case-sensitive substring match.

Examples:
  visa list
  visa list --filter Status=VENCIDO
  visa list --filter "Group=SERVIÇOS DE SAÚDE"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFilter(filter)
			if err != nil {
				return err
			}
			adapter, err := env.Adapter(cmd)
			if err != nil {
				return err
			}
			_, err = adapter.List(cmd.Context(), f)
			return err
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Filter as Field=value")

	return cmd
}

// RefreshCmd returns the refresh command
func RefreshCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Recompute stored statuses for today",
		Long: `Status depends on today's date. Stored statuses go stale as days pass;
this command recomputes and saves them for every establishment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := env.Adapter(cmd)
			if err != nil {
				return err
			}
			_, err = adapter.Refresh(cmd.Context())
			return err
		},
	}
}
