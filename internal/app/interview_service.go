package app

import (
	"context"
	"strings"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/analytics"
	"github.com/Kartikay-0111/Placify/internal/domain/application"
	"github.com/Kartikay-0111/Placify/internal/domain/interview"
	"github.com/Kartikay-0111/Placify/internal/domain/job"
)

type InterviewService struct {
	repo         interview.Repository
	applications application.Repository
	jobs         job.Repository
	analytics    analytics.Repository
	metrics      Metrics
	now          func() time.Time
}

func NewInterviewService(repo interview.Repository, applications application.Repository, jobs job.Repository, analyticsRepo analytics.Repository, metrics Metrics) *InterviewService {
	return &InterviewService{
		repo:         repo,
		applications: applications,
		jobs:         jobs,
		analytics:    analyticsRepo,
		metrics:      orNopMetrics(metrics),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Schedule creates the single interview for a company-approved application
// owned by the calling company.
func (s *InterviewService) Schedule(ctx context.Context, companyID common.UUID, iv interview.Interview) (*interview.Interview, error) {
	fields := map[string]string{}
	if iv.ApplicationID.IsZero() {
		fields["application_id"] = "application_id is required"
	}
	if iv.InterviewDate.IsZero() {
		fields["interview_date"] = "interview date is required"
	}
	iv.InterviewType = interview.Type(strings.ToLower(strings.TrimSpace(string(iv.InterviewType))))
	switch iv.InterviewType {
	case interview.TypeTechnical, interview.TypeHR, interview.TypeOther:
	default:
		fields["interview_type"] = "interview type must be technical, hr, or other"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid interview", fields)
	}
	app, err := s.applications.GetByID(ctx, iv.ApplicationID)
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
	if app.Status != application.StatusCompanyApproved {
		return nil, common.NewError(common.CodeValidation, "application is not company approved", nil)
	}
	if _, err := s.repo.FindByApplication(ctx, iv.ApplicationID); err == nil {
		return nil, common.NewError(common.CodeConflict, "interview already scheduled", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	iv.Result = ""
	created, err := s.repo.Create(ctx, iv)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordInterviewScheduled()
	_ = s.analytics.Create(ctx, analytics.Event{Name: "interview.scheduled", UserID: &companyID, Payload: analyticsPayload(ctx, map[string]string{"interview_id": created.ID.String(), "application_id": iv.ApplicationID.String()})})
	return created, nil
}

// SetResult records the interview outcome. It is only allowed once the
// interview date has passed; repeating the recorded result is a no-op and
// changing it is rejected.
func (s *InterviewService) SetResult(ctx context.Context, companyID, interviewID common.UUID, result interview.Result) (*interview.Interview, error) {
	normalized := interview.Result(strings.ToLower(strings.TrimSpace(string(result))))
	if normalized != interview.ResultSelected && normalized != interview.ResultNotSelected {
		return nil, common.NewValidationError("invalid result", map[string]string{"result": "result must be selected or not_selected"})
	}
	iv, err := s.repo.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	app, err := s.applications.GetByID(ctx, iv.ApplicationID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if j.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "interview belongs to another company", nil)
	}
	if s.now().Before(iv.InterviewDate) {
		return nil, common.NewError(common.CodeValidation, "interview has not taken place yet", nil)
	}
	if iv.Result == normalized {
		return iv, nil
	}
	if iv.Result != "" {
		return nil, common.NewError(common.CodeValidation, "interview result already recorded", nil)
	}
	updated, err := s.repo.SetResult(ctx, interviewID, normalized)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "interview.result_set", UserID: &companyID, Payload: analyticsPayload(ctx, map[string]string{"interview_id": interviewID.String(), "result": string(normalized)})})
	return updated, nil
}

func (s *InterviewService) ListByCompany(ctx context.Context, companyID common.UUID) ([]interview.Detail, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *InterviewService) ListByStudent(ctx context.Context, studentID common.UUID) ([]interview.Detail, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// CompanyStats recomputes the dashboard counters by rescanning the full
// sets; tables stay small enough that this is fine.
func (s *InterviewService) CompanyStats(ctx context.Context, companyID common.UUID) (*interview.Stats, error) {
	approved, err := s.applications.ListByCompany(ctx, companyID, application.StatusCompanyApproved)
	if err != nil {
		return nil, err
	}
	interviews, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	scheduled := make(map[common.UUID]struct{}, len(interviews))
	stats := interview.Stats{Scheduled: len(interviews)}
	for _, iv := range interviews {
		scheduled[iv.ApplicationID] = struct{}{}
		switch iv.Result {
		case interview.ResultSelected:
			stats.Selected++
		case interview.ResultNotSelected:
			stats.NotSelected++
		}
	}
	for _, app := range approved {
		if _, ok := scheduled[app.ID]; !ok {
			stats.AwaitingInterview++
		}
	}
	return &stats, nil
}
