// Package establishment contains the pure business logic for establishment records:
// the closed value sets, the inspection status rule and input validation.
package establishment

// Group is the regulated sector of an establishment.
type Group string

const (
	GroupFood           Group = "ALIMENTOS"
	GroupHealthServices Group = "SERVIÇOS DE SAÚDE"
)

// Groups lists the allowed Group values in display order.
var Groups = []Group{GroupFood, GroupHealthServices}

// RiskGrade is the sanitary risk classification.
type RiskGrade string

const (
	RiskHigh RiskGrade = "ALTO RISCO"
	RiskLowA RiskGrade = "BAIXO RISCO A"
	RiskLowB RiskGrade = "BAIXO RISCO B"
)

// RiskGrades lists the allowed RiskGrade values in display order.
var RiskGrades = []RiskGrade{RiskHigh, RiskLowA, RiskLowB}

// ArchitecturalProject is the approval state of the building project.
type ArchitecturalProject string

const (
	ProjectApprovedBuilt    ArchitecturalProject = "APROVADO E EXECUTADO"
	ProjectApprovedNotBuilt ArchitecturalProject = "APROVADO E NÃO EXECUTADO"
	ProjectUnderReview      ArchitecturalProject = "EM ANÁLISE"
	ProjectNotApproved      ArchitecturalProject = "NÃO APROVADO"
	ProjectNotApplicable    ArchitecturalProject = "NÃO SE APLICA"
)

// ArchitecturalProjects lists the allowed ArchitecturalProject values in display order.
var ArchitecturalProjects = []ArchitecturalProject{
	ProjectApprovedBuilt,
	ProjectApprovedNotBuilt,
	ProjectUnderReview,
	ProjectNotApproved,
	ProjectNotApplicable,
}

// PermitStatus is the state of the operating permit.
type PermitStatus string

const (
	PermitReleased    PermitStatus = "LIBERADO"
	PermitUnderReview PermitStatus = "EM ANÁLISE"
	PermitExempt      PermitStatus = "DISPENSADO"
)

// PermitStatuses lists the allowed PermitStatus values in display order.
var PermitStatuses = []PermitStatus{PermitReleased, PermitUnderReview, PermitExempt}

// Reason is what triggered the last inspection.
type Reason string

const (
	ReasonPermitRelease  Reason = "Liberação de alvará"
	ReasonPermitRenewal  Reason = "Renovação de alvará"
	ReasonComplaint      Reason = "Denúncia"
	ReasonOutbreak       Reason = "Surto de TDAH"
	ReasonAgencyInterest Reason = "Interesse da visa"
	ReasonOtherAgency    Reason = "A pedido de outros órgãos"
)

// Reasons lists the allowed Reason values in display order.
var Reasons = []Reason{
	ReasonPermitRelease,
	ReasonPermitRenewal,
	ReasonComplaint,
	ReasonOutbreak,
	ReasonAgencyInterest,
	ReasonOtherAgency,
}

// Status is the derived renewal state of the operating permit.
type Status string

const (
	StatusCurrent        Status = "VIGENTE"
	StatusNeedsAttention Status = "REQUER ATENÇÃO"
	StatusExpired        Status = "VENCIDO"
	StatusUnset          Status = "Não Informado"
	StatusFormatError    Status = "Erro de Formato"
)

// Statuses lists every Status value in display order.
var Statuses = []Status{
	StatusCurrent,
	StatusNeedsAttention,
	StatusExpired,
	StatusUnset,
	StatusFormatError,
}

// Stored text for the reinspection flag.
const (
	ReinspectionYes = "Sim"
	ReinspectionNo  = "Não"
)

// FormatReinspection renders the flag the way it is stored.
func FormatReinspection(flag bool) string {
	if flag {
		return ReinspectionYes
	}
	return ReinspectionNo
}

// ParseReinspection reads a stored flag. Anything but "Sim" is false.
func ParseReinspection(s string) bool {
	return s == ReinspectionYes
}

func (g Group) Valid() bool                { return contains(Groups, g) }
func (r RiskGrade) Valid() bool            { return contains(RiskGrades, r) }
func (p ArchitecturalProject) Valid() bool { return contains(ArchitecturalProjects, p) }
func (p PermitStatus) Valid() bool         { return contains(PermitStatuses, p) }
func (r Reason) Valid() bool               { return contains(Reasons, r) }
func (s Status) Valid() bool               { return contains(Statuses, s) }

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// StringValues converts a typed value set to plain strings, for flag help and pickers.
func StringValues[T ~string](set []T) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = string(v)
	}
	return out
}
