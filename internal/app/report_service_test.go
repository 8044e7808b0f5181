package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/visa/internal/apperror"
	"github.com/example/visa/internal/core/establishment"
	"github.com/example/visa/internal/ports/primary"
	"github.com/example/visa/internal/ports/secondary"
)

// ============================================================================
// Test Helper
// ============================================================================

func newTestReportService() (*ReportServiceImpl, *mockEstablishmentRepository, *mockReportRenderer, *mockReportSink) {
	clock := func() time.Time { return time.Date(2024, time.January, 1, 14, 5, 0, 0, time.UTC) }
	repo := newMockEstablishmentRepository()
	establishments := NewEstablishmentService(repo, clock, nil)
	renderer := &mockReportRenderer{}
	sink := newMockReportSink()
	return NewReportService(establishments, renderer, sink, clock, nil), repo, renderer, sink
}

// ============================================================================
// Export Tests
// ============================================================================

func TestExport_All(t *testing.T) {
	service, repo, renderer, sink := newTestReportService()
	seedMixed(repo)

	resp, err := service.Export(context.Background(), primary.ExportRequest{All: true, Path: "todos"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Path != "/reports/todos.pdf" {
		t.Errorf("expected path /reports/todos.pdf, got %q", resp.Path)
	}
	if resp.Rows != 3 {
		t.Errorf("expected 3 rows, got %d", resp.Rows)
	}
	if resp.Title != "Relatório de Estabelecimentos - 01/01/2024 14:05" {
		t.Errorf("unexpected title %q", resp.Title)
	}
	if _, ok := sink.files["/reports/todos.pdf"]; !ok {
		t.Errorf("expected document written, got %v", sink.files)
	}

	report := renderer.rendered
	if report == nil {
		t.Fatal("expected renderer to be called")
	}
	if len(report.Headers) != len(establishment.Columns) {
		t.Errorf("expected %d headers, got %d", len(establishment.Columns), len(report.Headers))
	}
	for i, row := range report.Rows {
		if len(row) != len(report.Headers) {
			t.Errorf("row %d has %d cells, want %d", i, len(row), len(report.Headers))
		}
	}
}

func TestExport_RowContents(t *testing.T) {
	service, repo, renderer, _ := newTestReportService()
	repo.seed(secondary.EstablishmentRecord{
		Name:               "Padaria Pão Dourado",
		TaxID:              "11.222.333/0001-81",
		Group:              "ALIMENTOS",
		LastInspectionDate: "1/10/2023",
		Reinspection:       "Sim",
		Reason:             "Denúncia",
	})

	if _, err := service.Export(context.Background(), primary.ExportRequest{All: true, Path: "/tmp/r.pdf"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	row := renderer.rendered.Rows[0]
	want := map[int]string{
		0:  "1",
		1:  "Padaria Pão Dourado",
		3:  "ALIMENTOS",
		12: "01/10/2023",
		13: "Sim",
		15: "30/09/2024",
		16: "VIGENTE",
		17: "Denúncia",
	}
	for i, v := range want {
		if row[i] != v {
			t.Errorf("cell %d (%s) = %q, want %q", i, establishment.Columns[i].Header, row[i], v)
		}
	}
}

func TestExport_UnreadableDateKeepsStoredText(t *testing.T) {
	service, repo, renderer, _ := newTestReportService()
	repo.seed(secondary.EstablishmentRecord{
		Name:               "Legado",
		TaxID:              "000",
		LastInspectionDate: "2023-13-45",
	})

	if _, err := service.Export(context.Background(), primary.ExportRequest{All: true, Path: "r.pdf"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	row := renderer.rendered.Rows[0]
	if row[12] != "2023-13-45" {
		t.Errorf("expected stored date text, got %q", row[12])
	}
	if row[15] != "" {
		t.Errorf("expected empty next inspection, got %q", row[15])
	}
	if row[16] != string(establishment.StatusFormatError) {
		t.Errorf("expected status %q, got %q", establishment.StatusFormatError, row[16])
	}
}

func TestExport_IDsTakePrecedence(t *testing.T) {
	service, repo, renderer, _ := newTestReportService()
	seedMixed(repo)

	resp, err := service.Export(context.Background(), primary.ExportRequest{
		IDs:    []int64{3, 1, 3},
		Filter: primary.Filter{Field: "Group", Value: "SAÚDE"},
		All:    true,
		Path:   "sel.PDF",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Path != "/reports/sel.PDF" {
		t.Errorf("expected existing extension kept, got %q", resp.Path)
	}
	rows := renderer.rendered.Rows
	if len(rows) != 2 || rows[0][1] != "C" || rows[1][1] != "A" {
		t.Errorf("expected rows C, A in request order, got %v", rows)
	}
}

func TestExport_Filter(t *testing.T) {
	service, repo, renderer, _ := newTestReportService()
	seedMixed(repo)

	_, err := service.Export(context.Background(), primary.ExportRequest{
		Filter: primary.Filter{Field: "Status", Value: "VENCIDO"},
		Path:   "/tmp/vencidos.pdf",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	rows := renderer.rendered.Rows
	if len(rows) != 1 || rows[0][1] != "B" {
		t.Errorf("expected only B, got %v", rows)
	}
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*mockEstablishmentRepository, *mockReportRenderer, *mockReportSink)
		req      primary.ExportRequest
		wantCode string
	}{
		{
			name:     "empty store",
			setup:    func(*mockEstablishmentRepository, *mockReportRenderer, *mockReportSink) {},
			req:      primary.ExportRequest{All: true, Path: "r.pdf"},
			wantCode: apperror.CodeExport,
		},
		{
			name:     "filter matches nothing",
			setup:    func(r *mockEstablishmentRepository, _ *mockReportRenderer, _ *mockReportSink) { seedMixed(r) },
			req:      primary.ExportRequest{Filter: primary.Filter{Field: "Reason", Value: "Surto"}, Path: "r.pdf"},
			wantCode: apperror.CodeExport,
		},
		{
			name:     "nothing selected",
			setup:    func(r *mockEstablishmentRepository, _ *mockReportRenderer, _ *mockReportSink) { seedMixed(r) },
			req:      primary.ExportRequest{Path: "r.pdf"},
			wantCode: apperror.CodeExport,
		},
		{
			name:     "missing path",
			setup:    func(r *mockEstablishmentRepository, _ *mockReportRenderer, _ *mockReportSink) { seedMixed(r) },
			req:      primary.ExportRequest{All: true},
			wantCode: apperror.CodeExport,
		},
		{
			name:     "unknown id",
			setup:    func(r *mockEstablishmentRepository, _ *mockReportRenderer, _ *mockReportSink) { seedMixed(r) },
			req:      primary.ExportRequest{IDs: []int64{1, 99}, Path: "r.pdf"},
			wantCode: apperror.CodeNotFound,
		},
		{
			name:     "invalid filter field",
			setup:    func(r *mockEstablishmentRepository, _ *mockReportRenderer, _ *mockReportSink) { seedMixed(r) },
			req:      primary.ExportRequest{Filter: primary.Filter{Field: "Color", Value: "x"}, Path: "r.pdf"},
			wantCode: apperror.CodeInvalidField,
		},
		{
			name:     "invalid filter field without value",
			setup:    func(r *mockEstablishmentRepository, _ *mockReportRenderer, _ *mockReportSink) { seedMixed(r) },
			req:      primary.ExportRequest{Filter: primary.Filter{Field: "Color"}, All: true, Path: "r.pdf"},
			wantCode: apperror.CodeInvalidField,
		},
		{
			name: "unwritable destination",
			setup: func(r *mockEstablishmentRepository, _ *mockReportRenderer, s *mockReportSink) {
				seedMixed(r)
				s.writeErr = errDiskFull
			},
			req:      primary.ExportRequest{All: true, Path: "r.pdf"},
			wantCode: apperror.CodeExport,
		},
		{
			name: "render failure",
			setup: func(r *mockEstablishmentRepository, rr *mockReportRenderer, _ *mockReportSink) {
				seedMixed(r)
				rr.renderErr = errors.New("font missing")
			},
			req:      primary.ExportRequest{All: true, Path: "r.pdf"},
			wantCode: apperror.CodeExport,
		},
		{
			name: "storage failure",
			setup: func(r *mockEstablishmentRepository, _ *mockReportRenderer, _ *mockReportSink) {
				r.listErr = apperror.Storage(errDiskFull, "failed to list establishments")
			},
			req:      primary.ExportRequest{All: true, Path: "r.pdf"},
			wantCode: apperror.CodeStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, renderer, sink := newTestReportService()
			tt.setup(repo, renderer, sink)

			_, err := service.Export(context.Background(), tt.req)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := apperror.CodeOf(err); got != tt.wantCode {
				t.Errorf("expected code %s, got %s (%v)", tt.wantCode, got, err)
			}
			if tt.wantCode == apperror.CodeExport && !errors.Is(err, apperror.ErrExport) {
				t.Errorf("expected ErrExport, got %v", err)
			}
			if len(sink.files) != 0 {
				t.Errorf("expected no document written, got %v", sink.files)
			}
		})
	}
}

func TestWithExtension(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"report", "report.pdf"},
		{"report.pdf", "report.pdf"},
		{"report.PDF", "report.PDF"},
		{"report.txt", "report.txt.pdf"},
	}
	for _, tt := range tests {
		if got := withExtension(tt.path, ".pdf"); got != tt.want {
			t.Errorf("withExtension(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
