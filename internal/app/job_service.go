package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/analytics"
	"github.com/Kartikay-0111/Placify/internal/domain/job"
	"github.com/Kartikay-0111/Placify/internal/domain/profile"
	"github.com/Kartikay-0111/Placify/internal/domain/user"
)

type JobService struct {
	repo      job.Repository
	companies profile.CompanyRepository
	students  profile.StudentRepository
	analytics analytics.Repository
	logger    Logger
}

func NewJobService(repo job.Repository, companies profile.CompanyRepository, students profile.StudentRepository, analyticsRepo analytics.Repository, logger Logger) *JobService {
	return &JobService{repo: repo, companies: companies, students: students, analytics: analyticsRepo, logger: logger}
}

func (s *JobService) Create(ctx context.Context, j job.Job, collegeIDs []common.UUID) (*job.Job, error) {
	if j.Status == "" {
		j.Status = job.StatusDraft
	}
	normalized, err := normalizeJobStatus(j.Status)
	if err != nil {
		return nil, err
	}
	j.Status = normalized
	if err := validateJob(j); err != nil {
		return nil, err
	}
	if j.Status == job.StatusPublished {
		if err := s.ensurePublishable(ctx, j.CompanyID); err != nil {
			return nil, err
		}
	}
	created, err := s.repo.Create(ctx, j)
	if err != nil {
		return nil, err
	}
	if err := s.reconcileTargets(ctx, created.ID, collegeIDs); err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.created", UserID: &j.CompanyID, Payload: analyticsPayload(ctx, map[string]string{"job_id": created.ID.String()})})
	return created, nil
}

func (s *JobService) Update(ctx context.Context, j job.Job, collegeIDs []common.UUID) (*job.Job, error) {
	current, err := s.repo.GetByID(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	if current.CompanyID != j.CompanyID {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another company", nil)
	}
	if j.Status == "" {
		j.Status = current.Status
	}
	normalized, err := normalizeJobStatus(j.Status)
	if err != nil {
		return nil, err
	}
	j.Status = normalized
	if err := validateJob(j); err != nil {
		return nil, err
	}
	if j.Status == job.StatusPublished && current.Status != job.StatusPublished {
		if err := s.ensurePublishable(ctx, j.CompanyID); err != nil {
			return nil, err
		}
	}
	updated, err := s.repo.Update(ctx, j)
	if err != nil {
		return nil, err
	}
	if collegeIDs != nil {
		if err := s.reconcileTargets(ctx, j.ID, collegeIDs); err != nil {
			return nil, err
		}
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.updated", UserID: &j.CompanyID, Payload: analyticsPayload(ctx, map[string]string{"job_id": j.ID.String()})})
	return updated, nil
}

// reconcileTargets diffs the desired college set against the stored one and
// applies only the difference, so a pair that survives an edit keeps the
// approval the placement cell already gave it.
func (s *JobService) reconcileTargets(ctx context.Context, jobID common.UUID, desired []common.UUID) error {
	existing, err := s.repo.ListTargets(ctx, jobID)
	if err != nil {
		return err
	}
	desiredSet := make(map[common.UUID]struct{}, len(desired))
	for _, collegeID := range desired {
		desiredSet[collegeID] = struct{}{}
	}
	existingSet := make(map[common.UUID]struct{}, len(existing))
	var remove []common.UUID
	for _, target := range existing {
		existingSet[target.CollegeID] = struct{}{}
		if _, ok := desiredSet[target.CollegeID]; !ok {
			remove = append(remove, target.CollegeID)
		}
	}
	var add []common.UUID
	for _, collegeID := range desired {
		if _, ok := existingSet[collegeID]; !ok {
			add = append(add, collegeID)
		}
	}
	if err := s.repo.ReconcileTargets(ctx, jobID, add, remove); err != nil {
		return err
	}
	if len(desired) == 0 {
		s.logger.Info("job has no target colleges", "job_id", jobID.String())
	}
	return nil
}

func (s *JobService) UpdateStatus(ctx context.Context, companyID, jobID common.UUID, status job.Status) (*job.Job, error) {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another company", nil)
	}
	normalized, err := normalizeJobStatus(status)
	if err != nil {
		return nil, err
	}
	if normalized == job.StatusPublished && j.Status != job.StatusPublished {
		if err := s.ensurePublishable(ctx, companyID); err != nil {
			return nil, err
		}
	}
	j.Status = normalized
	updated, err := s.repo.Update(ctx, *j)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.status_changed", UserID: &companyID, Payload: analyticsPayload(ctx, map[string]string{"job_id": jobID.String(), "status": string(normalized)})})
	return updated, nil
}

// Delete removes a job. Companies may delete their own postings; admins may
// delete any.
func (s *JobService) Delete(ctx context.Context, actorID common.UUID, actorRole user.Role, jobID common.UUID) error {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if actorRole != user.RoleAdmin && j.CompanyID != actorID {
		return common.NewError(common.CodeForbidden, "job belongs to another company", nil)
	}
	if err := s.repo.Delete(ctx, jobID); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.deleted", UserID: &actorID, Payload: analyticsPayload(ctx, map[string]string{"job_id": jobID.String()})})
	return nil
}

func (s *JobService) ListByCompany(ctx context.Context, companyID common.UUID) ([]job.Job, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

// ListAll backs the placement cell's job management screen; it spans every
// company so the admin can moderate postings before deleting them.
func (s *JobService) ListAll(ctx context.Context) ([]job.AdminJob, error) {
	return s.repo.ListAll(ctx)
}

func (s *JobService) GetByCompany(ctx context.Context, companyID, jobID common.UUID) (*job.Job, []job.CollegeTarget, error) {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if j.CompanyID != companyID {
		return nil, nil, common.NewError(common.CodeForbidden, "job belongs to another company", nil)
	}
	targets, err := s.repo.ListTargets(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	return j, targets, nil
}

/// ListVisible returns the jobs a student may see: published postings with an
// approved target for the student's college. Eligible is informational only.
func (s *JobService) ListVisible(ctx context.Context, studentID common.UUID, filter job.ListFilter) ([]job.VisibleJob, error) {
	studentProfile, err := s.students.GetByUserID(ctx, studentID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "student profile is required", nil)
		}
		return nil, err
	}
	items, err := s.repo.ListVisibleToCollege(ctx, studentProfile.CollegeID, filter)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Eligible = studentProfile.CGPA >= items[i].MinCGPA
	}
	return items, nil
}

func (s *JobService) GetVisible(ctx context.Context, studentID, jobID common.UUID) (*job.VisibleJob, error) {
	studentProfile, err := s.students.GetByUserID(ctx, studentID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "student profile is required", nil)
		}
		return nil, err
	}
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusPublished {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	approved, err := s.repo.HasApprovedTarget(ctx, jobID, studentProfile.CollegeID)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	visible := &job.VisibleJob{Job: *j, Eligible: studentProfile.CGPA >= j.MinCGPA}
	if companyProfile, err := s.companies.GetByUserID(ctx, j.CompanyID); err == nil {
		visible.CompanyName = companyProfile.CompanyName
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.viewed", UserID: &studentID, Payload: analyticsPayload(ctx, map[string]string{"job_id": jobID.String()})})
	return visible, nil
}

// ListTargetsForCollege backs the placement cell's target approval queue.
func (s *JobService) ListTargetsForCollege(ctx context.Context, collegeID common.UUID, status job.TargetStatus) ([]job.TargetDetail, error) {
	if status != "" && status != job.TargetPending && status != job.TargetApproved && status != job.TargetRejected {
		return nil, common.NewValidationError("invalid status filter", map[string]string{"status": "status must be pending, approved, or rejected"})
	}
	return s.repo.ListTargetsByCollege(ctx, collegeID, status)
}

// SetTargetApproval records the placement cell's decision on its own
// college's target row.
func (s *JobService) SetTargetApproval(ctx context.Context, adminID, adminCollegeID, jobID common.UUID, status job.TargetStatus) error {
	if status != job.TargetApproved && status != job.TargetRejected {
		return common.NewValidationError("invalid approval status", map[string]string{"status": "status must be approved or rejected"})
	}
	if err := s.repo.UpdateTargetApproval(ctx, jobID, adminCollegeID, status); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.target_approval_set", UserID: &adminID, Payload: analyticsPayload(ctx, map[string]string{"job_id": jobID.String(), "status": string(status)})})
	return nil
}

func validateJob(j job.Job) error {
	fields := map[string]string{}
	if len(j.Title) < 4 || len(j.Title) > 120 {
		fields["title"] = "title must be between 4 and 120 characters"
	}
	if j.JobType == "" {
		fields["job_type"] = "job type is required"
	}
	if j.Description == "" {
		fields["description"] = "description is required"
	}
	if j.MinCGPA < 0 || j.MinCGPA > 10 {
		fields["min_cgpa"] = "min_cgpa must be between 0 and 10"
	}
	if j.ApplicationDeadline.IsZero() {
		fields["application_deadline"] = "application deadline is required"
	}
	for i, req := range j.Requirements {
		if len(strings.TrimSpace(req)) < 2 {
			fields[fmt.Sprintf("requirements[%d]", i)] = "requirement must be at least 2 characters"
		}
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid job", fields)
	}
	return nil
}

func normalizeJobStatus(status job.Status) (job.Status, error) {
	normalized := job.Status(strings.ToLower(strings.TrimSpace(string(status))))
	// The original drafts used "active" interchangeably with "published".
	if normalized == "active" {
		normalized = job.StatusPublished
	}
	switch normalized {
	case job.StatusDraft, job.StatusPublished, job.StatusClosed:
		return normalized, nil
	default:
		return "", common.NewValidationError("invalid job status", map[string]string{"status": "status must be draft, published, or closed"})
	}
}

func (s *JobService) ensurePublishable(ctx context.Context, companyID common.UUID) error {
	companyProfile, err := s.companies.GetByUserID(ctx, companyID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return common.NewError(common.CodeValidation, "company profile is required", nil)
		}
		return err
	}
	if !IsCompanyProfileComplete(*companyProfile) {
		return common.NewError(common.CodeValidation, "company profile is incomplete", nil)
	}
	return nil
}

func (s *JobService) Get(ctx context.Context, jobID common.UUID) (*job.Job, error) {
	return s.repo.GetByID(ctx, jobID)
}
