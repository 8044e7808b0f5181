// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/example/visa/internal/apperror"
	"github.com/example/visa/internal/core/establishment"
	"github.com/example/visa/internal/db"
	"github.com/example/visa/internal/ports/secondary"
)

const establishmentColumns = `ID, Estabelecimento, CNPJ_CPF, Grupo, CNAE, Grau_de_risco,
	Responsavel, CPF_Responsavel, Endereco, Telefone, Email,
	Projeto_Arquitetonico, Data_ultima_inspecao, Reinspecao,
	Alvara, Data_proxima_inspecao, Situacao, motivo`

// EstablishmentRepository implements secondary.EstablishmentRepository with SQLite.
type EstablishmentRepository struct {
	db *sql.DB
}

// NewEstablishmentRepository creates a new SQLite establishment repository.
func NewEstablishmentRepository(db *sql.DB) *EstablishmentRepository {
	return &EstablishmentRepository{db: db}
}

// CreateTable ensures the establishments table exists.
func (r *EstablishmentRepository) CreateTable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, db.GetSchemaSQL()); err != nil {
		return apperror.Storage(err, "failed to create establishments table")
	}
	return nil
}

// Create validates and persists a new establishment, returning its ID.
func (r *EstablishmentRepository) Create(ctx context.Context, record *secondary.EstablishmentRecord) (int64, error) {
	normalize(record)
	if err := establishment.Validate(fieldsOf(record)); err != nil {
		return 0, err
	}
	deriveDates(record)

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO estabelecimentos (
			Estabelecimento, CNPJ_CPF, Grupo, CNAE, Grau_de_risco,
			Responsavel, CPF_Responsavel, Endereco, Telefone, Email,
			Projeto_Arquitetonico, Data_ultima_inspecao, Reinspecao,
			Alvara, Data_proxima_inspecao, Situacao, motivo
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Name, record.TaxID, record.Group, record.ActivityCode, record.RiskGrade,
		record.ResponsiblePerson, record.ResponsiblePersonID, record.Address, record.Phone, record.Email,
		record.ArchitecturalProject, record.LastInspectionDate, record.Reinspection,
		record.PermitStatus, record.NextInspectionDate, record.Status, record.Reason,
	)
	if err != nil {
		return 0, mapWriteError(err, record.TaxID, "failed to create establishment")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperror.Storage(err, "failed to read establishment ID")
	}
	record.ID = id

	return id, nil
}

// GetByID retrieves an establishment by its ID.
func (r *EstablishmentRepository) GetByID(ctx context.Context, id int64) (*secondary.EstablishmentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+establishmentColumns+" FROM estabelecimentos WHERE ID = ?",
		id,
	)

	record, err := scanEstablishment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("establishment %d not found", id)
	}
	if err != nil {
		return nil, apperror.Storage(err, "failed to get establishment")
	}

	return record, nil
}

// GetByTaxID retrieves an establishment by its tax identifier.
func (r *EstablishmentRepository) GetByTaxID(ctx context.Context, taxID string) (*secondary.EstablishmentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+establishmentColumns+" FROM estabelecimentos WHERE CNPJ_CPF = ?",
		taxID,
	)

	record, err := scanEstablishment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("no establishment with CNPJ/CPF '%s'", taxID)
	}
	if err != nil {
		return nil, apperror.Storage(err, "failed to get establishment")
	}

	return record, nil
}

// Update overwrites every mutable column of the row with record.ID.
func (r *EstablishmentRepository) Update(ctx context.Context, record *secondary.EstablishmentRecord) error {
	normalize(record)
	if err := establishment.Validate(fieldsOf(record)); err != nil {
		return err
	}
	deriveDates(record)

	result, err := r.db.ExecContext(ctx,
		`UPDATE estabelecimentos SET
			Estabelecimento = ?, CNPJ_CPF = ?, Grupo = ?, CNAE = ?, Grau_de_risco = ?,
			Responsavel = ?, CPF_Responsavel = ?, Endereco = ?, Telefone = ?, Email = ?,
			Projeto_Arquitetonico = ?, Data_ultima_inspecao = ?, Reinspecao = ?,
			Alvara = ?, Data_proxima_inspecao = ?, Situacao = ?, motivo = ?
		WHERE ID = ?`,
		record.Name, record.TaxID, record.Group, record.ActivityCode, record.RiskGrade,
		record.ResponsiblePerson, record.ResponsiblePersonID, record.Address, record.Phone, record.Email,
		record.ArchitecturalProject, record.LastInspectionDate, record.Reinspection,
		record.PermitStatus, record.NextInspectionDate, record.Status, record.Reason,
		record.ID,
	)
	if err != nil {
		return mapWriteError(err, record.TaxID, "failed to update establishment")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.Storage(err, "failed to update establishment")
	}
	if rowsAffected == 0 {
		return apperror.NotFound("establishment %d not found", record.ID)
	}

	return nil
}

// UpdateDerived persists recomputed status and next inspection date.
func (r *EstablishmentRepository) UpdateDerived(ctx context.Context, id int64, status, nextInspectionDate string) error {
	if !establishment.Status(status).Valid() {
		return apperror.Validation(map[string]string{
			"Status": fmt.Sprintf("'%s' is not a known status", status),
		})
	}
	if nextInspectionDate != "" {
		next, err := establishment.ParseDate(nextInspectionDate)
		if err != nil {
			return apperror.Validation(map[string]string{
				"NextInspectionDate": fmt.Sprintf("'%s' is not a DD/MM/YYYY date", nextInspectionDate),
			})
		}
		nextInspectionDate = establishment.FormatDate(next)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE estabelecimentos SET Situacao = ?, Data_proxima_inspecao = ? WHERE ID = ?",
		status, nextInspectionDate, id,
	)
	if err != nil {
		return apperror.Storage(err, "failed to update establishment status")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.Storage(err, "failed to update establishment status")
	}
	if rowsAffected == 0 {
		return apperror.NotFound("establishment %d not found", id)
	}

	return nil
}

// List retrieves all establishments in insertion order.
func (r *EstablishmentRepository) List(ctx context.Context) ([]*secondary.EstablishmentRecord, error) {
	return r.query(ctx, "SELECT "+establishmentColumns+" FROM estabelecimentos ORDER BY ID")
}

// ListFiltered retrieves establishments whose field contains value,
// using LIKE '%value%' semantics. The connection runs with case-sensitive LIKE.
func (r *EstablishmentRepository) ListFiltered(ctx context.Context, field, value string) ([]*secondary.EstablishmentRecord, error) {
	col, err := establishment.LookupColumn(field)
	if err != nil {
		return nil, err
	}

	// col.SQL comes from the closed column set, never from the caller.
	query := fmt.Sprintf("SELECT %s FROM estabelecimentos WHERE %s LIKE ? ORDER BY ID", establishmentColumns, col.SQL)
	return r.query(ctx, query, "%"+value+"%")
}

func (r *EstablishmentRepository) query(ctx context.Context, query string, args ...any) ([]*secondary.EstablishmentRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.Storage(err, "failed to list establishments")
	}
	defer rows.Close()

	var records []*secondary.EstablishmentRecord
	for rows.Next() {
		record, err := scanEstablishment(rows)
		if err != nil {
			return nil, apperror.Storage(err, "failed to scan establishment")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage(err, "failed to list establishments")
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEstablishment reads one row. Text columns may be NULL in databases
// written by older versions, so they go through sql.NullString.
func scanEstablishment(row rowScanner) (*secondary.EstablishmentRecord, error) {
	var (
		record = &secondary.EstablishmentRecord{}
		text   [17]sql.NullString
	)

	dest := make([]any, 0, len(text)+1)
	dest = append(dest, &record.ID)
	for i := range text {
		dest = append(dest, &text[i])
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	record.Name = text[0].String
	record.TaxID = text[1].String
	record.Group = text[2].String
	record.ActivityCode = text[3].String
	record.RiskGrade = text[4].String
	record.ResponsiblePerson = text[5].String
	record.ResponsiblePersonID = text[6].String
	record.Address = text[7].String
	record.Phone = text[8].String
	record.Email = text[9].String
	record.ArchitecturalProject = text[10].String
	record.LastInspectionDate = text[11].String
	record.Reinspection = text[12].String
	record.PermitStatus = text[13].String
	record.NextInspectionDate = text[14].String
	record.Status = text[15].String
	record.Reason = text[16].String

	return record, nil
}

func normalize(record *secondary.EstablishmentRecord) {
	f := fieldsOf(record).Normalize()
	record.Name = f.Name
	record.TaxID = f.TaxID
	record.Group = f.Group
	record.ActivityCode = f.ActivityCode
	record.RiskGrade = f.RiskGrade
	record.ArchitecturalProject = f.ArchitecturalProject
	record.LastInspectionDate = f.LastInspectionDate
	record.Reinspection = f.Reinspection
	record.PermitStatus = f.PermitStatus
	record.Reason = f.Reason
	record.Status = f.Status
}

// deriveDates stores the last inspection date as DD/MM/YYYY and the next
// inspection date as exactly 365 days later. Runs after validation.
func deriveDates(record *secondary.EstablishmentRecord) {
	if record.LastInspectionDate == "" {
		record.NextInspectionDate = ""
		return
	}
	last, err := establishment.ParseDate(record.LastInspectionDate)
	if err != nil {
		return
	}
	record.LastInspectionDate = establishment.FormatDate(last)
	record.NextInspectionDate = establishment.FormatDate(establishment.NextInspection(last))
}

func fieldsOf(record *secondary.EstablishmentRecord) establishment.Fields {
	return establishment.Fields{
		Name:                 record.Name,
		TaxID:                record.TaxID,
		Group:                record.Group,
		ActivityCode:         record.ActivityCode,
		RiskGrade:            record.RiskGrade,
		ArchitecturalProject: record.ArchitecturalProject,
		LastInspectionDate:   record.LastInspectionDate,
		Reinspection:         record.Reinspection,
		PermitStatus:         record.PermitStatus,
		Reason:               record.Reason,
		Status:               record.Status,
	}
}

// mapWriteError classifies a failed INSERT/UPDATE. A UNIQUE violation can
// only come from CNPJ_CPF.
func mapWriteError(err error, taxID, message string) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return apperror.Wrap(err, apperror.CodeDuplicateKey,
			fmt.Sprintf("CNPJ/CPF '%s' is already registered", taxID))
	}
	return apperror.Storage(err, message)
}

// Ensure EstablishmentRepository implements the interface.
var _ secondary.EstablishmentRepository = (*EstablishmentRepository)(nil)
