// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// EstablishmentRepository defines the secondary port for establishment persistence.
// It is the single-table record store; records are never deleted.
type EstablishmentRepository interface {
	// CreateTable ensures the schema exists. Safe to call repeatedly.
	CreateTable(ctx context.Context) error

	// Create persists a new establishment and returns its assigned ID.
	Create(ctx context.Context, record *EstablishmentRecord) (int64, error)

	// GetByID retrieves an establishment by its ID.
	GetByID(ctx context.Context, id int64) (*EstablishmentRecord, error)

	// GetByTaxID retrieves an establishment by its tax identifier.
	GetByTaxID(ctx context.Context, taxID string) (*EstablishmentRecord, error)

	// Update overwrites every mutable column of the row with record.ID.
	Update(ctx context.Context, record *EstablishmentRecord) error

	// UpdateDerived persists recomputed status and next inspection date.
	UpdateDerived(ctx context.Context, id int64, status, nextInspectionDate string) error

	// List retrieves all establishments in insertion order.
	List(ctx context.Context) ([]*EstablishmentRecord, error)

	// ListFiltered retrieves establishments whose field contains value.
	ListFiltered(ctx context.Context, field, value string) ([]*EstablishmentRecord, error)
}

// EstablishmentRecord represents an establishment as stored in persistence.
// Every column is text except ID; empty string means unset.
type EstablishmentRecord struct {
	ID                   int64
	Name                 string
	TaxID                string
	Group                string
	ActivityCode         string
	RiskGrade            string
	ResponsiblePerson    string
	ResponsiblePersonID  string
	Address              string
	Phone                string
	Email                string
	ArchitecturalProject string
	LastInspectionDate   string // DD/MM/YYYY
	Reinspection         string // "Sim", "Não" or empty
	PermitStatus         string
	NextInspectionDate   string // DD/MM/YYYY, derived
	Status               string // derived
	Reason               string
}
