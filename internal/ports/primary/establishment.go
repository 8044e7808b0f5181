// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the CLI drives the application.
package primary

import (
	"context"
	"time"

	"github.com/example/visa/internal/core/establishment"
)

// EstablishmentService defines the primary port for establishment operations.
type EstablishmentService interface {
	// Register creates a new establishment with registration fields only.
	Register(ctx context.Context, req RegisterRequest) (*Establishment, error)

	// GetByID retrieves an establishment by ID.
	GetByID(ctx context.Context, id int64) (*Establishment, error)

	// GetByTaxID retrieves an establishment by tax identifier.
	GetByTaxID(ctx context.Context, taxID string) (*Establishment, error)

	// RecordInspection overwrites all mutable fields of an establishment
	// and recomputes its status.
	RecordInspection(ctx context.Context, id int64, req InspectionRequest) (*Establishment, error)

	// List retrieves all establishments in insertion order.
	List(ctx context.Context) ([]*Establishment, error)

	// Search retrieves establishments whose field contains the filter value.
	// A zero filter returns everything; a named field must be filterable
	// even when the value is empty.
	Search(ctx context.Context, filter Filter) ([]*Establishment, error)

	// RefreshStatuses recomputes and stores the derived fields of every
	// establishment. Returns the number of rows that changed.
	RefreshStatuses(ctx context.Context) (int, error)
}

// ReportService defines the primary port for report export.
type ReportService interface {
	// Export renders the selected establishments to a document at req.Path.
	Export(ctx context.Context, req ExportRequest) (*ExportResponse, error)
}

// RegisterRequest contains the registration fields of a new establishment.
type RegisterRequest struct {
	Name                 string // Required
	TaxID                string // Required, unique
	Group                establishment.Group
	ActivityCode         string // Optional, dddd-d/dd
	RiskGrade            establishment.RiskGrade
	ResponsiblePerson    string
	ResponsiblePersonID  string
	Address              string
	Phone                string
	Email                string
	ArchitecturalProject establishment.ArchitecturalProject
}

// InspectionRequest carries every mutable field. Fields not meant to change
// must be copied from the current record.
type InspectionRequest struct {
	RegisterRequest
	LastInspectionDate time.Time // Zero means not inspected
	Reinspection       bool
	PermitStatus       establishment.PermitStatus
	Reason             establishment.Reason
}

// Filter selects establishments by substring match on one field.
type Filter struct {
	Field string // One of establishment.FilterableFields
	Value string
}

// IsZero reports whether the filter matches every row. A non-empty Field is
// still checked against establishment.FilterableFields.
func (f Filter) IsZero() bool {
	return f.Field == "" || f.Value == ""
}

// ExportRequest selects what to export and where.
// IDs takes precedence, then Filter; All exports every establishment.
type ExportRequest struct {
	IDs    []int64
	Filter Filter
	All    bool
	Path   string
}

// ExportResponse contains the result of an export.
type ExportResponse struct {
	Path  string
	Rows  int
	Title string
}

// Establishment represents an establishment at the port boundary.
type Establishment struct {
	ID                   int64
	Name                 string
	TaxID                string
	Group                establishment.Group
	ActivityCode         string
	RiskGrade            establishment.RiskGrade
	ResponsiblePerson    string
	ResponsiblePersonID  string
	Address              string
	Phone                string
	Email                string
	ArchitecturalProject establishment.ArchitecturalProject
	LastInspectionDate   time.Time // Zero when never inspected or unreadable
	LastInspectionText   string    // As stored, kept for unreadable dates
	Reinspection         bool
	PermitStatus         establishment.PermitStatus
	NextInspectionDate   time.Time
	Status               establishment.Status
	Reason               establishment.Reason
}

// LastInspectionLabel renders the last inspection date for display. An
// unreadable stored value is shown as-is.
func (e *Establishment) LastInspectionLabel() string {
	if !e.LastInspectionDate.IsZero() {
		return establishment.FormatDate(e.LastInspectionDate)
	}
	return e.LastInspectionText
}

// InspectionRequest returns a request pre-filled with the current values,
// for callers that change only a few fields.
func (e *Establishment) InspectionRequest() InspectionRequest {
	return InspectionRequest{
		RegisterRequest: RegisterRequest{
			Name:                 e.Name,
			TaxID:                e.TaxID,
			Group:                e.Group,
			ActivityCode:         e.ActivityCode,
			RiskGrade:            e.RiskGrade,
			ResponsiblePerson:    e.ResponsiblePerson,
			ResponsiblePersonID:  e.ResponsiblePersonID,
			Address:              e.Address,
			Phone:                e.Phone,
			Email:                e.Email,
			ArchitecturalProject: e.ArchitecturalProject,
		},
		LastInspectionDate: e.LastInspectionDate,
		Reinspection:       e.Reinspection,
		PermitStatus:       e.PermitStatus,
		Reason:             e.Reason,
	}
}
