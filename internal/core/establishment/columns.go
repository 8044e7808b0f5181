package establishment

import (
	"strings"

	"github.com/example/visa/internal/apperror"
)

// Column ties a field's public name to its storage column and report header.
type Column struct {
	Name   string // public field name, e.g. "RiskGrade"
	SQL    string // column in the estabelecimentos table
	Header string // report and table header
}

// Columns is the full ordered column set of the establishments table.
var Columns = []Column{
	{Name: "ID", SQL: "ID", Header: "ID"},
	{Name: "Name", SQL: "Estabelecimento", Header: "Estabelecimento"},
	{Name: "TaxID", SQL: "CNPJ_CPF", Header: "CNPJ_CPF"},
	{Name: "Group", SQL: "Grupo", Header: "Grupo"},
	{Name: "ActivityCode", SQL: "CNAE", Header: "CNAE"},
	{Name: "RiskGrade", SQL: "Grau_de_risco", Header: "Grau_de_risco"},
	{Name: "ResponsiblePerson", SQL: "Responsavel", Header: "Responsavel"},
	{Name: "ResponsiblePersonID", SQL: "CPF_Responsavel", Header: "CPF_Responsavel"},
	{Name: "Address", SQL: "Endereco", Header: "Endereco"},
	{Name: "Phone", SQL: "Telefone", Header: "Telefone"},
	{Name: "Email", SQL: "Email", Header: "Email"},
	{Name: "ArchitecturalProject", SQL: "Projeto_Arquitetonico", Header: "Projeto_Arquitetonico"},
	{Name: "LastInspectionDate", SQL: "Data_ultima_inspecao", Header: "Data_ultima_inspecao"},
	{Name: "ReinspectionFlag", SQL: "Reinspecao", Header: "Reinspecao"},
	{Name: "PermitStatus", SQL: "Alvara", Header: "Alvara"},
	{Name: "NextInspectionDate", SQL: "Data_proxima_inspecao", Header: "Data_proxima_inspecao"},
	{Name: "Status", SQL: "Situacao", Header: "Situacao"},
	{Name: "Reason", SQL: "motivo", Header: "Motivo"},
}

// FilterableFields are the fields offered by search.
var FilterableFields = []string{
	"Group",
	"ActivityCode",
	"RiskGrade",
	"ReinspectionFlag",
	"Status",
	"Reason",
}

// Headers returns the report headers in column order.
func Headers() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Header
	}
	return out
}

// LookupColumn resolves a field by public name or storage column, ignoring case.
func LookupColumn(name string) (Column, error) {
	name = strings.TrimSpace(name)
	for _, c := range Columns {
		if strings.EqualFold(c.Name, name) || strings.EqualFold(c.SQL, name) {
			return c, nil
		}
	}
	return Column{}, apperror.Newf(apperror.CodeInvalidField, "unknown field %q", name)
}

// LookupFilterField resolves a field and checks it is filterable.
func LookupFilterField(name string) (Column, error) {
	col, err := LookupColumn(name)
	if err != nil {
		return Column{}, err
	}
	for _, f := range FilterableFields {
		if f == col.Name {
			return col, nil
		}
	}
	return Column{}, apperror.Newf(apperror.CodeInvalidField,
		"field %q is not filterable (use one of: %s)", name, strings.Join(FilterableFields, ", "))
}
