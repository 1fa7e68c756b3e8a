package app

import (
	"context"
	"strings"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/analytics"
	"github.com/Kartikay-0111/Placify/internal/domain/application"
	"github.com/Kartikay-0111/Placify/internal/domain/job"
	"github.com/Kartikay-0111/Placify/internal/domain/profile"
)

type ApplicationService struct {
	repo      application.Repository
	jobs      job.Repository
	students  profile.StudentRepository
	analytics analytics.Repository
	metrics   Metrics
	now       func() time.Time
}

func NewApplicationService(repo application.Repository, jobs job.Repository, students profile.StudentRepository, analyticsRepo analytics.Repository, metrics Metrics) *ApplicationService {
	return &ApplicationService{
		repo:      repo,
		jobs:      jobs,
		students:  students,
		analytics: analyticsRepo,
		metrics:   orNopMetrics(metrics),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *ApplicationService) Apply(ctx context.Context, jobID, studentID common.UUID) (*application.Application, error) {
	studentProfile, err := s.students.GetByUserID(ctx, studentID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "student profile is required", nil)
		}
		return nil, err
	}
	if studentProfile.ResumeURL == "" {
		return nil, common.NewError(common.CodeValidation, "resume is required before applying", nil)
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusPublished {
		return nil, common.NewError(common.CodeValidation, "job is not published", nil)
	}
	if s.now().After(j.ApplicationDeadline) {
		return nil, common.NewError(common.CodeValidation, "application deadline has passed", nil)
	}
	approved, err := s.jobs.HasApprovedTarget(ctx, jobID, studentProfile.CollegeID)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, common.NewError(common.CodeForbidden, "job is not open to your college", nil)
	}
	if _, err := s.repo.FindByJobAndStudent(ctx, jobID, studentID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	created, err := s.repo.Create(ctx, application.Application{
		JobID:     jobID,
		StudentID: studentID,
		Status:    application.StatusPending,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordApplicationCreated()
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.created", UserID: &studentID, Payload: analyticsPayload(ctx, map[string]string{"application_id": created.ID.String(), "job_id": jobID.String()})})
	return created, nil
}

// CellDecision records the placement cell's ruling on a pending application.
func (s *ApplicationService) CellDecision(ctx context.Context, applicationID, adminID, adminCollegeID common.UUID, status application.Status, notes string) (*application.Application, error) {
	next := normalizeApplicationStatus(status)
	if !application.IsCellStatus(next) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be cell_approved or cell_rejected"})
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	studentProfile, err := s.students.GetByUserID(ctx, app.StudentID)
	if err != nil {
		return nil, err
	}
	if studentProfile.CollegeID != adminCollegeID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another college", nil)
	}
	if err := s.checkTransition(app.Status, next); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateCellDecision(ctx, applicationID, next, notes)
	if err != nil {
		return nil, err
	}
	if next != app.Status {
		s.metrics.RecordTransition(string(next))
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.cell_decision", UserID: &adminID, Payload: analyticsPayload(ctx, map[string]string{"application_id": applicationID.String(), "status": string(next)})})
	return updated, nil
}

// CompanyDecision records the company's ruling on a cell-approved
// application.
func (s *ApplicationService) CompanyDecision(ctx context.Context, applicationID, companyID common.UUID, status application.Status, notes string) (*application.Application, error) {
	next := normalizeApplicationStatus(status)
	if !application.IsCompanyStatus(next) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be company_approved or company_rejected"})
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if j.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another company", nil)
	}
	if err := s.checkTransition(app.Status, next); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateCompanyDecision(ctx, applicationID, next, notes)
	if err != nil {
		return nil, err
	}
	if next != app.Status {
		s.metrics.RecordTransition(string(next))
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.company_decision", UserID: &companyID, Payload: analyticsPayload(ctx, map[string]string{"application_id": applicationID.String(), "status": string(next)})})
	return updated, nil
}

// checkTransition allows re-submitting the current status (a notes-only
// update) and otherwise admits only pairs from the transition table.
func (s *ApplicationService) checkTransition(current, next application.Status) error {
	if next == current {
		return nil
	}
	if application.IsTerminal(current) {
		return common.NewError(common.CodeValidation, "application status is final", nil)
	}
	if !application.CanTransition(current, next) {
		return common.NewError(common.CodeValidation, "invalid status transition", nil)
	}
	return nil
}

func (s *ApplicationService) Get(ctx context.Context, id common.UUID) (*application.Application, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ApplicationService) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Detail, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *ApplicationService) ListByCompany(ctx context.Context, companyID common.UUID, status application.Status) ([]application.Detail, error) {
	if err := validateStatusFilter(status); err != nil {
		return nil, err
	}
	return s.repo.ListByCompany(ctx, companyID, status)
}

func (s *ApplicationService) ListByCollege(ctx context.Context, collegeID common.UUID, status application.Status) ([]application.Detail, error) {
	if err := validateStatusFilter(status); err != nil {
		return nil, err
	}
	return s.repo.ListByCollege(ctx, collegeID, status)
}

func validateStatusFilter(status application.Status) error {
	if status == "" {
		return nil
	}
	if !application.IsKnown(normalizeApplicationStatus(status)) {
		return common.NewValidationError("invalid status filter", map[string]string{"status": "unknown application status"})
	}
	return nil
}

func normalizeApplicationStatus(status application.Status) application.Status {
	return application.Status(strings.ToLower(strings.TrimSpace(string(status))))
}
