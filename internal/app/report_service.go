package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/visa/internal/apperror"
	"github.com/example/visa/internal/core/establishment"
	"github.com/example/visa/internal/ports/primary"
	"github.com/example/visa/internal/ports/secondary"
)

// ReportTitle prefixes every exported report.
const ReportTitle = "Relatório de Estabelecimentos"

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	establishments primary.EstablishmentService
	renderer       secondary.ReportRenderer
	sink           secondary.ReportSink
	clock          establishment.Clock
	logger         *zap.Logger
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(
	establishments primary.EstablishmentService,
	renderer secondary.ReportRenderer,
	sink secondary.ReportSink,
	clock establishment.Clock,
	logger *zap.Logger,
) *ReportServiceImpl {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportServiceImpl{
		establishments: establishments,
		renderer:       renderer,
		sink:           sink,
		clock:          clock,
		logger:         logger.Named("report.service"),
	}
}

// Export renders the selected establishments to a document at req.Path.
func (s *ReportServiceImpl) Export(ctx context.Context, req primary.ExportRequest) (*primary.ExportResponse, error) {
	// 1. Resolve destination before touching the store
	if strings.TrimSpace(req.Path) == "" {
		return nil, apperror.New(apperror.CodeExport, "no destination file given")
	}
	path := withExtension(strings.TrimSpace(req.Path), s.renderer.Extension())
	path, err := s.sink.Resolve(path)
	if err != nil {
		return nil, exportError(err, "failed to resolve destination")
	}

	// 2. Select rows
	selected, err := s.selectEstablishments(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, apperror.New(apperror.CodeExport, "no establishments to export")
	}

	// 3. Build and render the report
	report := s.buildReport(selected)
	err = s.sink.Write(ctx, path, func(w io.Writer) error {
		return s.renderer.Render(ctx, w, report)
	})
	if err != nil {
		return nil, exportError(err, fmt.Sprintf("failed to write %s", path))
	}

	s.logger.Info("exported report",
		zap.String("path", path),
		zap.Int("rows", len(report.Rows)),
	)

	return &primary.ExportResponse{
		Path:  path,
		Rows:  len(report.Rows),
		Title: report.Title,
	}, nil
}

// selectEstablishments picks rows by IDs, then filter, then all.
func (s *ReportServiceImpl) selectEstablishments(ctx context.Context, req primary.ExportRequest) ([]*primary.Establishment, error) {
	switch {
	case len(req.IDs) > 0:
		out := make([]*primary.Establishment, 0, len(req.IDs))
		seen := make(map[int64]bool, len(req.IDs))
		for _, id := range req.IDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			e, err := s.establishments.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	case req.Filter.Field != "":
		return s.establishments.Search(ctx, req.Filter)
	case req.All:
		return s.establishments.List(ctx)
	default:
		return nil, apperror.New(apperror.CodeExport, "nothing selected: pass IDs, a filter or all")
	}
}

func (s *ReportServiceImpl) buildReport(list []*primary.Establishment) secondary.Report {
	rows := make([][]string, len(list))
	for i, e := range list {
		rows[i] = reportRow(e)
	}
	return secondary.Report{
		Title:   fmt.Sprintf("%s - %s", ReportTitle, s.clock().Format("02/01/2006 15:04")),
		Headers: establishment.Headers(),
		Rows:    rows,
	}
}

// reportRow renders an establishment in establishment.Columns order.
func reportRow(e *primary.Establishment) []string {
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.Name,
		e.TaxID,
		string(e.Group),
		e.ActivityCode,
		string(e.RiskGrade),
		e.ResponsiblePerson,
		e.ResponsiblePersonID,
		e.Address,
		e.Phone,
		e.Email,
		string(e.ArchitecturalProject),
		e.LastInspectionLabel(),
		establishment.FormatReinspection(e.Reinspection),
		string(e.PermitStatus),
		establishment.FormatDate(e.NextInspectionDate),
		string(e.Status),
		string(e.Reason),
	}
}

// withExtension appends ext unless path already ends with it, ignoring case.
func withExtension(path, ext string) string {
	if ext == "" || strings.HasSuffix(strings.ToLower(path), strings.ToLower(ext)) {
		return path
	}
	return path + ext
}

// exportError keeps classified errors and files everything else as EXPORT_ERROR.
func exportError(err error, message string) error {
	if apperror.CodeOf(err) != "" {
		return err
	}
	return apperror.Wrap(err, apperror.CodeExport, message)
}

// Ensure ReportServiceImpl implements the interface.
var _ primary.ReportService = (*ReportServiceImpl)(nil)
