package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/visa/internal/core/establishment"
	"github.com/example/visa/internal/ports/primary"
	"github.com/example/visa/internal/ports/secondary"
)

// EstablishmentServiceImpl implements the EstablishmentService interface.
type EstablishmentServiceImpl struct {
	repo   secondary.EstablishmentRepository
	clock  establishment.Clock
	logger *zap.Logger
}

// NewEstablishmentService creates a new EstablishmentService with injected dependencies.
// A nil clock means time.Now; a nil logger discards output.
func NewEstablishmentService(
	repo secondary.EstablishmentRepository,
	clock establishment.Clock,
	logger *zap.Logger,
) *EstablishmentServiceImpl {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EstablishmentServiceImpl{
		repo:   repo,
		clock:  clock,
		logger: logger.Named("establishment.service"),
	}
}

// Register creates a new establishment with registration fields only.
func (s *EstablishmentServiceImpl) Register(ctx context.Context, req primary.RegisterRequest) (*primary.Establishment, error) {
	record := registrationRecord(req)
	status, next := establishment.ComputeStatus("", s.clock())
	record.Status = string(status)
	record.NextInspectionDate = next

	id, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to register establishment: %w", err)
	}

	s.logger.Info("registered establishment",
		zap.Int64("id", id),
		zap.String("tax_id", record.TaxID),
	)

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registered establishment: %w", err)
	}
	return s.recordToEstablishment(created, s.clock()), nil
}

// GetByID retrieves an establishment by ID.
func (s *EstablishmentServiceImpl) GetByID(ctx context.Context, id int64) (*primary.Establishment, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.recordToEstablishment(record, s.clock()), nil
}

// GetByTaxID retrieves an establishment by tax identifier.
func (s *EstablishmentServiceImpl) GetByTaxID(ctx context.Context, taxID string) (*primary.Establishment, error) {
	record, err := s.repo.GetByTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}
	return s.recordToEstablishment(record, s.clock()), nil
}

// RecordInspection overwrites all mutable fields and recomputes the derived ones.
func (s *EstablishmentServiceImpl) RecordInspection(ctx context.Context, id int64, req primary.InspectionRequest) (*primary.Establishment, error) {
	record := registrationRecord(req.RegisterRequest)
	record.ID = id
	record.LastInspectionDate = establishment.FormatDate(req.LastInspectionDate)
	record.Reinspection = establishment.FormatReinspection(req.Reinspection)
	record.PermitStatus = string(req.PermitStatus)
	record.Reason = string(req.Reason)

	status, next := establishment.ComputeStatus(record.LastInspectionDate, s.clock())
	record.Status = string(status)
	record.NextInspectionDate = next

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record inspection: %w", err)
	}

	s.logger.Info("recorded inspection",
		zap.Int64("id", id),
		zap.String("last_inspection", record.LastInspectionDate),
		zap.String("status", record.Status),
	)

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated establishment: %w", err)
	}
	return s.recordToEstablishment(updated, s.clock()), nil
}

// List retrieves all establishments in insertion order.
func (s *EstablishmentServiceImpl) List(ctx context.Context) ([]*primary.Establishment, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list establishments: %w", err)
	}
	return s.recordsToEstablishments(records), nil
}

// Search retrieves establishments whose field contains the filter value.
// A named field is always checked, even with an empty value; no field or
// no value lists everything. Filtering on Status refreshes the stored
// statuses first so the match reflects today rather than the last save.
func (s *EstablishmentServiceImpl) Search(ctx context.Context, filter primary.Filter) ([]*primary.Establishment, error) {
	if filter.Field == "" {
		return s.List(ctx)
	}

	col, err := establishment.LookupFilterField(filter.Field)
	if err != nil {
		return nil, err
	}
	if filter.Value == "" {
		return s.List(ctx)
	}

	if col.Name == "Status" {
		if _, err := s.RefreshStatuses(ctx); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("searching establishments",
		zap.String("field", col.Name),
		zap.String("value", filter.Value),
	)

	records, err := s.repo.ListFiltered(ctx, col.Name, filter.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to search establishments: %w", err)
	}
	return s.recordsToEstablishments(records), nil
}

// RefreshStatuses recomputes and stores derived fields for every establishment.
func (s *EstablishmentServiceImpl) RefreshStatuses(ctx context.Context) (int, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list establishments: %w", err)
	}

	today := s.clock()
	changed := 0
	for _, r := range records {
		status, next := establishment.ComputeStatus(r.LastInspectionDate, today)
		if string(status) == r.Status && next == r.NextInspectionDate {
			continue
		}
		if err := s.repo.UpdateDerived(ctx, r.ID, string(status), next); err != nil {
			return changed, fmt.Errorf("failed to refresh establishment %d: %w", r.ID, err)
		}
		changed++
	}

	if changed > 0 {
		s.logger.Info("refreshed statuses", zap.Int("changed", changed), zap.Int("total", len(records)))
	}
	return changed, nil
}

// Helper methods

func registrationRecord(req primary.RegisterRequest) *secondary.EstablishmentRecord {
	return &secondary.EstablishmentRecord{
		Name:                 req.Name,
		TaxID:                req.TaxID,
		Group:                string(req.Group),
		ActivityCode:         req.ActivityCode,
		RiskGrade:            string(req.RiskGrade),
		ResponsiblePerson:    req.ResponsiblePerson,
		ResponsiblePersonID:  req.ResponsiblePersonID,
		Address:              req.Address,
		Phone:                req.Phone,
		Email:                req.Email,
		ArchitecturalProject: string(req.ArchitecturalProject),
	}
}

func (s *EstablishmentServiceImpl) recordsToEstablishments(records []*secondary.EstablishmentRecord) []*primary.Establishment {
	today := s.clock()
	out := make([]*primary.Establishment, len(records))
	for i, r := range records {
		out[i] = s.recordToEstablishment(r, today)
	}
	return out
}

// recordToEstablishment maps a stored row and derives status and next
// inspection date for today. The stored derived columns are ignored.
func (s *EstablishmentServiceImpl) recordToEstablishment(r *secondary.EstablishmentRecord, today time.Time) *primary.Establishment {
	e := &primary.Establishment{
		ID:                   r.ID,
		Name:                 r.Name,
		TaxID:                r.TaxID,
		Group:                establishment.Group(r.Group),
		ActivityCode:         r.ActivityCode,
		RiskGrade:            establishment.RiskGrade(r.RiskGrade),
		ResponsiblePerson:    r.ResponsiblePerson,
		ResponsiblePersonID:  r.ResponsiblePersonID,
		Address:              r.Address,
		Phone:                r.Phone,
		Email:                r.Email,
		ArchitecturalProject: establishment.ArchitecturalProject(r.ArchitecturalProject),
		Reinspection:         establishment.ParseReinspection(r.Reinspection),
		PermitStatus:         establishment.PermitStatus(r.PermitStatus),
		Reason:               establishment.Reason(r.Reason),
		LastInspectionText:   r.LastInspectionDate,
	}

	status, _ := establishment.ComputeStatus(r.LastInspectionDate, today)
	e.Status = status
	if last, err := establishment.ParseDate(r.LastInspectionDate); err == nil && r.LastInspectionDate != "" {
		e.LastInspectionDate = last
		e.NextInspectionDate = establishment.NextInspection(last)
	} else if status == establishment.StatusFormatError {
		s.logger.Warn("unreadable last inspection date",
			zap.Int64("id", r.ID),
			zap.String("value", r.LastInspectionDate),
		)
	}

	return e
}

// Ensure EstablishmentServiceImpl implements the interface.
var _ primary.EstablishmentService = (*EstablishmentServiceImpl)(nil)
