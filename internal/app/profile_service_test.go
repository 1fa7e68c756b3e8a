package app

import (
	"context"
	"testing"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/college"
	"github.com/Kartikay-0111/Placify/internal/domain/profile"
)

func newProfileService(students *fakeStudentRepo, companies *fakeCompanyRepo, colleges *fakeCollegeRepo) *ProfileService {
	return NewProfileService(students, companies, colleges, noopAnalyticsRepo{})
}

func validStudentProfile(userID, collegeID common.UUID) profile.StudentProfile {
	return profile.StudentProfile{
		UserID:         userID,
		CollegeID:      collegeID,
		FullName:       "Asha Verma",
		RollNumber:     "CS2021-042",
		Branch:         "CSE",
		CGPA:           8.0,
		GraduationYear: time.Now().Year() + 1,
	}
}

func TestProfileServiceUpsertStudent_NewProfileIsPending(t *testing.T) {
	collegeID := common.NewUUID()
	colleges := newFakeCollegeRepo(college.College{ID: collegeID, Name: "IIT Example"})
	service := newProfileService(newFakeStudentRepo(), newFakeCompanyRepo(), colleges)

	saved, err := service.UpsertStudent(context.Background(), validStudentProfile(common.NewUUID(), collegeID))
	if err != nil {
		t.Fatalf("expected profile saved, got %v", err)
	}
	if saved.ApprovalStatus != profile.ApprovalPending {
		t.Fatalf("expected pending approval, got %s", saved.ApprovalStatus)
	}
}

func TestProfileServiceUpsertStudent_EditKeepsApprovalAndFiles(t *testing.T) {
	collegeID := common.NewUUID()
	colleges := newFakeCollegeRepo(college.College{ID: collegeID, Name: "IIT Example"})
	students := newFakeStudentRepo()
	service := newProfileService(students, newFakeCompanyRepo(), colleges)
	ctx := context.Background()

	userID := common.NewUUID()
	if _, err := service.UpsertStudent(ctx, validStudentProfile(userID, collegeID)); err != nil {
		t.Fatalf("expected profile saved, got %v", err)
	}
	if err := students.UpdateApproval(ctx, userID, profile.ApprovalApproved); err != nil {
		t.Fatalf("expected approval stored, got %v", err)
	}
	if err := students.UpdateFiles(ctx, userID, "https://files.example.com/resume.pdf", ""); err != nil {
		t.Fatalf("expected resume stored, got %v", err)
	}

	edited := validStudentProfile(userID, collegeID)
	edited.CGPA = 8.4
	saved, err := service.UpsertStudent(ctx, edited)
	if err != nil {
		t.Fatalf("expected edit to succeed, got %v", err)
	}
	if saved.ApprovalStatus != profile.ApprovalApproved {
		t.Fatalf("expected approval to survive edit, got %s", saved.ApprovalStatus)
	}
	if saved.ResumeURL != "https://files.example.com/resume.pdf" {
		t.Fatalf("expected resume url to survive edit, got %q", saved.ResumeURL)
	}
	if saved.CGPA != 8.4 {
		t.Fatalf("expected cgpa updated, got %v", saved.CGPA)
	}
}

func TestProfileServiceUpsertStudent_UnknownCollegeRejected(t *testing.T) {
	service := newProfileService(newFakeStudentRepo(), newFakeCompanyRepo(), newFakeCollegeRepo())

	_, err := service.UpsertStudent(context.Background(), validStudentProfile(common.NewUUID(), common.NewUUID()))
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProfileServiceSetStudentApproval_OwnCollegeOnly(t *testing.T) {
	collegeID := common.NewUUID()
	colleges := newFakeCollegeRepo(college.College{ID: collegeID, Name: "IIT Example"})
	students := newFakeStudentRepo()
	service := newProfileService(students, newFakeCompanyRepo(), colleges)
	ctx := context.Background()

	userID := common.NewUUID()
	if _, err := service.UpsertStudent(ctx, validStudentProfile(userID, collegeID)); err != nil {
		t.Fatalf("expected profile saved, got %v", err)
	}

	adminID := common.NewUUID()
	if err := service.SetStudentApproval(ctx, adminID, common.NewUUID(), userID, profile.ApprovalApproved); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for other college, got %v", err)
	}
	if err := service.SetStudentApproval(ctx, adminID, collegeID, userID, profile.ApprovalPending); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for pending, got %v", err)
	}
	if err := service.SetStudentApproval(ctx, adminID, collegeID, userID, profile.ApprovalApproved); err != nil {
		t.Fatalf("expected approval to succeed, got %v", err)
	}
	stored, err := students.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("expected profile, got %v", err)
	}
	if stored.ApprovalStatus != profile.ApprovalApproved {
		t.Fatalf("expected approved, got %s", stored.ApprovalStatus)
	}
}
