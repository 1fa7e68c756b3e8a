package app

import (
	"context"
	"testing"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/job"
	"github.com/Kartikay-0111/Placify/internal/domain/profile"
	"github.com/Kartikay-0111/Placify/internal/domain/user"
)

func newJobService(jobs *fakeJobRepo, companies *fakeCompanyRepo, students *fakeStudentRepo) *JobService {
	return NewJobService(jobs, companies, students, noopAnalyticsRepo{}, nopLogger{})
}

func seedCompanyProfile(t *testing.T, companies *fakeCompanyRepo, companyID common.UUID) {
	t.Helper()
	if _, err := companies.Upsert(context.Background(), profile.CompanyProfile{
		UserID:      companyID,
		CompanyName: "Nimbus Labs",
		Industry:    "Software",
		Location:    "Pune",
	}); err != nil {
		t.Fatalf("expected company profile stored, got %v", err)
	}
}

func validJob(companyID common.UUID) job.Job {
	return job.Job{
		CompanyID:           companyID,
		Title:               "Backend Intern",
		JobType:             "internship",
		Description:         "Go services",
		MinCGPA:             7.0,
		ApplicationDeadline: time.Now().UTC().Add(72 * time.Hour),
		Status:              job.StatusPublished,
	}
}

func TestJobServiceUpdate_ReconcileKeepsSurvivingApproval(t *testing.T) {
	jobs := newFakeJobRepo()
	companies := newFakeCompanyRepo()
	students := newFakeStudentRepo()
	service := newJobService(jobs, companies, students)
	ctx := context.Background()

	companyID := common.NewUUID()
	seedCompanyProfile(t, companies, companyID)
	collegeA := common.NewUUID()
	collegeB := common.NewUUID()
	collegeC := common.NewUUID()

	created, err := service.Create(ctx, validJob(companyID), []common.UUID{collegeA, collegeB})
	if err != nil {
		t.Fatalf("expected job created, got %v", err)
	}
	if err := jobs.UpdateTargetApproval(ctx, created.ID, collegeB, job.TargetApproved); err != nil {
		t.Fatalf("expected approval stored, got %v", err)
	}

	edited := validJob(companyID)
	edited.ID = created.ID
	if _, err := service.Update(ctx, edited, []common.UUID{collegeB, collegeC}); err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}

	targets, err := jobs.ListTargets(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected targets listed, got %v", err)
	}
	byCollege := make(map[common.UUID]job.TargetStatus, len(targets))
	for _, target := range targets {
		byCollege[target.CollegeID] = target.ApprovalStatus
	}
	if len(byCollege) != 2 {
		t.Fatalf("expected 2 targets after reconcile, got %d", len(byCollege))
	}
	if _, ok := byCollege[collegeA]; ok {
		t.Fatal("expected removed college to be gone")
	}
	if byCollege[collegeB] != job.TargetApproved {
		t.Fatalf("expected surviving target to keep approval, got %s", byCollege[collegeB])
	}
	if byCollege[collegeC] != job.TargetPending {
		t.Fatalf("expected new target to be pending, got %s", byCollege[collegeC])
	}
}

func TestJobServiceUpdate_NilCollegeIDsLeavesTargetsAlone(t *testing.T) {
	jobs := newFakeJobRepo()
	companies := newFakeCompanyRepo()
	service := newJobService(jobs, companies, newFakeStudentRepo())
	ctx := context.Background()

	companyID := common.NewUUID()
	seedCompanyProfile(t, companies, companyID)
	collegeID := common.NewUUID()

	created, err := service.Create(ctx, validJob(companyID), []common.UUID{collegeID})
	if err != nil {
		t.Fatalf("expected job created, got %v", err)
	}
	edited := validJob(companyID)
	edited.ID = created.ID
	edited.Title = "Backend Intern II"
	if _, err := service.Update(ctx, edited, nil); err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	targets, err := jobs.ListTargets(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected targets listed, got %v", err)
	}
	if len(targets) != 1 || targets[0].CollegeID != collegeID {
		t.Fatalf("expected target untouched, got %v", targets)
	}
}

func TestJobServiceCreate_NormalizesActiveStatus(t *testing.T) {
	jobs := newFakeJobRepo()
	companies := newFakeCompanyRepo()
	service := newJobService(jobs, companies, newFakeStudentRepo())

	companyID := common.NewUUID()
	seedCompanyProfile(t, companies, companyID)
	j := validJob(companyID)
	j.Status = "Active"

	created, err := service.Create(context.Background(), j, nil)
	if err != nil {
		t.Fatalf("expected job created, got %v", err)
	}
	if created.Status != job.StatusPublished {
		t.Fatalf("expected active to normalize to published, got %s", created.Status)
	}
}

func TestJobServiceCreate_PublishNeedsCompleteCompanyProfile(t *testing.T) {
	service := newJobService(newFakeJobRepo(), newFakeCompanyRepo(), newFakeStudentRepo())

	_, err := service.Create(context.Background(), validJob(common.NewUUID()), nil)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestJobServiceListVisible_EligibilityBoundaryIsInclusive(t *testing.T) {
	jobs := newFakeJobRepo()
	companies := newFakeCompanyRepo()
	students := newFakeStudentRepo()
	service := newJobService(jobs, companies, students)
	ctx := context.Background()

	companyID := common.NewUUID()
	seedCompanyProfile(t, companies, companyID)
	collegeID := common.NewUUID()

	created, err := service.Create(ctx, validJob(companyID), []common.UUID{collegeID})
	if err != nil {
		t.Fatalf("expected job created, got %v", err)
	}
	if err := jobs.UpdateTargetApproval(ctx, created.ID, collegeID, job.TargetApproved); err != nil {
		t.Fatalf("expected approval stored, got %v", err)
	}

	studentID := common.NewUUID()
	if _, err := students.Upsert(ctx, profile.StudentProfile{
		UserID:         studentID,
		CollegeID:      collegeID,
		FullName:       "Ravi Nair",
		RollNumber:     "IT2022-007",
		Branch:         "IT",
		CGPA:           7.0,
		GraduationYear: time.Now().Year() + 1,
	}); err != nil {
		t.Fatalf("expected student profile stored, got %v", err)
	}

	items, err := service.ListVisible(ctx, studentID, job.ListFilter{})
	if err != nil {
		t.Fatalf("expected visible jobs, got %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 visible job, got %d", len(items))
	}
	if !items[0].Eligible {
		t.Fatal("expected cgpa equal to min_cgpa to be eligible")
	}
}

func TestJobServiceGetVisible_HidesUnapprovedTarget(t *testing.T) {
	jobs := newFakeJobRepo()
	companies := newFakeCompanyRepo()
	students := newFakeStudentRepo()
	service := newJobService(jobs, companies, students)
	ctx := context.Background()

	companyID := common.NewUUID()
	seedCompanyProfile(t, companies, companyID)
	collegeID := common.NewUUID()

	created, err := service.Create(ctx, validJob(companyID), []common.UUID{collegeID})
	if err != nil {
		t.Fatalf("expected job created, got %v", err)
	}
	studentID := common.NewUUID()
	if _, err := students.Upsert(ctx, profile.StudentProfile{
		UserID:         studentID,
		CollegeID:      collegeID,
		FullName:       "Ravi Nair",
		RollNumber:     "IT2022-007",
		Branch:         "IT",
		CGPA:           8.5,
		GraduationYear: time.Now().Year() + 1,
	}); err != nil {
		t.Fatalf("expected student profile stored, got %v", err)
	}

	_, err = service.GetVisible(ctx, studentID, created.ID)
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found for unapproved target, got %v", err)
	}
}

func TestJobServiceDelete_AdminMayDeleteAnyJob(t *testing.T) {
	jobs := newFakeJobRepo()
	companies := newFakeCompanyRepo()
	service := newJobService(jobs, companies, newFakeStudentRepo())
	ctx := context.Background()

	companyID := common.NewUUID()
	seedCompanyProfile(t, companies, companyID)
	created, err := service.Create(ctx, validJob(companyID), nil)
	if err != nil {
		t.Fatalf("expected job created, got %v", err)
	}

	otherCompany := common.NewUUID()
	if err := service.Delete(ctx, otherCompany, user.RoleCompany, created.ID); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for other company, got %v", err)
	}
	if err := service.Delete(ctx, common.NewUUID(), user.RoleAdmin, created.ID); err != nil {
		t.Fatalf("expected admin delete to succeed, got %v", err)
	}
}

func TestJobServiceSetTargetApproval_RejectsPendingStatus(t *testing.T) {
	service := newJobService(newFakeJobRepo(), newFakeCompanyRepo(), newFakeStudentRepo())

	err := service.SetTargetApproval(context.Background(), common.NewUUID(), common.NewUUID(), common.NewUUID(), job.TargetPending)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestJobServiceListAll_SpansCompanies(t *testing.T) {
	jobs := newFakeJobRepo()
	companies := newFakeCompanyRepo()
	service := newJobService(jobs, companies, newFakeStudentRepo())
	ctx := context.Background()

	firstCompany := common.NewUUID()
	secondCompany := common.NewUUID()
	seedCompanyProfile(t, companies, firstCompany)
	seedCompanyProfile(t, companies, secondCompany)
	if _, err := service.Create(ctx, validJob(firstCompany), nil); err != nil {
		t.Fatalf("expected job created, got %v", err)
	}
	if _, err := service.Create(ctx, validJob(secondCompany), nil); err != nil {
		t.Fatalf("expected job created, got %v", err)
	}

	items, err := service.ListAll(ctx)
	if err != nil {
		t.Fatalf("expected listing, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(items))
	}
	seen := map[common.UUID]bool{}
	for _, item := range items {
		seen[item.CompanyID] = true
	}
	if !seen[firstCompany] || !seen[secondCompany] {
		t.Fatalf("expected both companies' jobs, got %v", seen)
	}
}
