package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/example/visa/internal/apperror"
	"github.com/example/visa/internal/core/establishment"
	"github.com/example/visa/internal/ports/secondary"
)

// fixedClock returns a clock stuck at the given date.
func fixedClock(year int, month time.Month, day int) establishment.Clock {
	return func() time.Time {
		return time.Date(year, month, day, 10, 30, 0, 0, time.UTC)
	}
}

// ============================================================================
// mockEstablishmentRepository
// ============================================================================

// Ensure mockEstablishmentRepository implements the interface
var _ secondary.EstablishmentRepository = (*mockEstablishmentRepository)(nil)

// mockEstablishmentRepository implements secondary.EstablishmentRepository in memory.
type mockEstablishmentRepository struct {
	records []*secondary.EstablishmentRecord
	nextID  int64

	derivedUpdates int
	listCalls      int

	createErr        error
	updateErr        error
	updateDerivedErr error
	listErr          error
}

func newMockEstablishmentRepository() *mockEstablishmentRepository {
	return &mockEstablishmentRepository{nextID: 1}
}

func (m *mockEstablishmentRepository) CreateTable(ctx context.Context) error {
	return nil
}

func (m *mockEstablishmentRepository) Create(ctx context.Context, record *secondary.EstablishmentRecord) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	for _, r := range m.records {
		if r.TaxID == record.TaxID {
			return 0, apperror.Newf(apperror.CodeDuplicateKey, "tax ID %s already registered", record.TaxID)
		}
	}
	stored := *record
	stored.ID = m.nextID
	m.nextID++
	m.records = append(m.records, &stored)
	return stored.ID, nil
}

func (m *mockEstablishmentRepository) GetByID(ctx context.Context, id int64) (*secondary.EstablishmentRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("establishment %d not found", id)
}

func (m *mockEstablishmentRepository) GetByTaxID(ctx context.Context, taxID string) (*secondary.EstablishmentRecord, error) {
	for _, r := range m.records {
		if r.TaxID == taxID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("establishment with tax ID %s not found", taxID)
}

func (m *mockEstablishmentRepository) Update(ctx context.Context, record *secondary.EstablishmentRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, r := range m.records {
		if r.ID == record.ID {
			stored := *record
			m.records[i] = &stored
			return nil
		}
	}
	return apperror.NotFound("establishment %d not found", record.ID)
}

func (m *mockEstablishmentRepository) UpdateDerived(ctx context.Context, id int64, status, next string) error {
	if m.updateDerivedErr != nil {
		return m.updateDerivedErr
	}
	for _, r := range m.records {
		if r.ID == id {
			r.Status = status
			r.NextInspectionDate = next
			m.derivedUpdates++
			return nil
		}
	}
	return apperror.NotFound("establishment %d not found", id)
}

func (m *mockEstablishmentRepository) List(ctx context.Context) ([]*secondary.EstablishmentRecord, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*secondary.EstablishmentRecord, len(m.records))
	for i, r := range m.records {
		cp := *r
		out[i] = &cp
	}
	return out, nil
}

func (m *mockEstablishmentRepository) ListFiltered(ctx context.Context, field, value string) ([]*secondary.EstablishmentRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	col, err := establishment.LookupColumn(field)
	if err != nil {
		return nil, err
	}
	var out []*secondary.EstablishmentRecord
	for _, r := range m.records {
		if strings.Contains(recordField(r, col.Name), value) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func recordField(r *secondary.EstablishmentRecord, name string) string {
	switch name {
	case "Group":
		return r.Group
	case "ActivityCode":
		return r.ActivityCode
	case "RiskGrade":
		return r.RiskGrade
	case "ReinspectionFlag":
		return r.Reinspection
	case "Status":
		return r.Status
	case "Reason":
		return r.Reason
	case "Name":
		return r.Name
	}
	panic(fmt.Sprintf("recordField: unsupported field %s", name))
}

// seed stores a record as-is, bypassing Create's checks.
func (m *mockEstablishmentRepository) seed(r secondary.EstablishmentRecord) int64 {
	r.ID = m.nextID
	m.nextID++
	m.records = append(m.records, &r)
	return r.ID
}

// ============================================================================
// mockReportRenderer
// ============================================================================

var _ secondary.ReportRenderer = (*mockReportRenderer)(nil)

// mockReportRenderer records the last report and writes a marker document.
type mockReportRenderer struct {
	rendered  *secondary.Report
	renderErr error
}

func (m *mockReportRenderer) Render(ctx context.Context, w io.Writer, report secondary.Report) error {
	if m.renderErr != nil {
		return m.renderErr
	}
	m.rendered = &report
	_, err := fmt.Fprintf(w, "%s (%d rows)", report.Title, len(report.Rows))
	return err
}

func (m *mockReportRenderer) Extension() string {
	return ".pdf"
}

// ============================================================================
// mockReportSink
// ============================================================================

var _ secondary.ReportSink = (*mockReportSink)(nil)

// mockReportSink keeps written documents in memory.
type mockReportSink struct {
	files      map[string]string
	writeErr   error
	resolveErr error
}

func newMockReportSink() *mockReportSink {
	return &mockReportSink{files: make(map[string]string)}
}

func (m *mockReportSink) Write(ctx context.Context, path string, fill func(w io.Writer) error) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	var b strings.Builder
	if err := fill(&b); err != nil {
		return err
	}
	m.files[path] = b.String()
	return nil
}

func (m *mockReportSink) Resolve(path string) (string, error) {
	if m.resolveErr != nil {
		return "", m.resolveErr
	}
	if strings.HasPrefix(path, "/") {
		return path, nil
	}
	return "/reports/" + path, nil
}

var errDiskFull = errors.New("disk full")
