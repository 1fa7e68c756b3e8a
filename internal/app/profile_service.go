package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/analytics"
	"github.com/Kartikay-0111/Placify/internal/domain/college"
	"github.com/Kartikay-0111/Placify/internal/domain/profile"
)

type ProfileService struct {
	students  profile.StudentRepository
	companies profile.CompanyRepository
	colleges  college.Repository
	analytics analytics.Repository
}

func NewProfileService(students profile.StudentRepository, companies profile.CompanyRepository, colleges college.Repository, analyticsRepo analytics.Repository) *ProfileService {
	return &ProfileService{students: students, companies: companies, colleges: colleges, analytics: analyticsRepo}
}

func (s *ProfileService) UpsertStudent(ctx context.Context, p profile.StudentProfile) (*profile.StudentProfile, error) {
	fields := map[string]string{}
	if p.FullName == "" {
		fields["full_name"] = "full name is required"
	}
	if p.RollNumber == "" {
		fields["roll_number"] = "roll number is required"
	}
	if p.Branch == "" {
		fields["branch"] = "branch is required"
	}
	if p.CGPA < 0 || p.CGPA > 10 {
		fields["cgpa"] = "cgpa must be between 0 and 10"
	}
	currentYear := time.Now().UTC().Year()
	if p.GraduationYear < currentYear-1 || p.GraduationYear > currentYear+6 {
		fields["graduation_year"] = fmt.Sprintf("graduation year must be between %d and %d", currentYear-1, currentYear+6)
	}
	if p.CollegeID.IsZero() {
		fields["college_id"] = "college_id is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid student profile", fields)
	}
	if _, err := s.colleges.GetByID(ctx, p.CollegeID); err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewValidationError("invalid student profile", map[string]string{"college_id": "unknown college"})
		}
		return nil, err
	}
	// New profiles enter the approval queue; edits keep whatever status the
	// placement cell last set.
	existing, err := s.students.GetByUserID(ctx, p.UserID)
	if err == nil {
		p.ApprovalStatus = existing.ApprovalStatus
		if p.ResumeURL == "" {
			p.ResumeURL = existing.ResumeURL
		}
		if p.AvatarURL == "" {
			p.AvatarURL = existing.AvatarURL
		}
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	} else {
		p.ApprovalStatus = profile.ApprovalPending
	}
	saved, err := s.students.Upsert(ctx, p)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "profile.student_saved", UserID: &p.UserID, Payload: analyticsPayload(ctx, map[string]string{})})
	return saved, nil
}

func (s *ProfileService) GetStudent(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	return s.students.GetByUserID(ctx, userID)
}

// AttachStudentFiles stores freshly uploaded resume/avatar URLs on an
// existing profile. Empty arguments leave the current value in place.
func (s *ProfileService) AttachStudentFiles(ctx context.Context, userID common.UUID, resumeURL, avatarURL string) error {
	if resumeURL == "" && avatarURL == "" {
		return common.NewValidationError("no files provided", nil)
	}
	if err := s.students.UpdateFiles(ctx, userID, resumeURL, avatarURL); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "profile.student_files_updated", UserID: &userID, Payload: analyticsPayload(ctx, map[string]string{})})
	return nil
}

func (s *ProfileService) UpsertCompany(ctx context.Context, p profile.CompanyProfile) (*profile.CompanyProfile, error) {
	fields := map[string]string{}
	if p.CompanyName == "" {
		fields["company_name"] = "company name is required"
	}
	if p.Industry == "" {
		fields["industry"] = "industry is required"
	}
	if p.Location == "" {
		fields["location"] = "location is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid company profile", fields)
	}
	existing, err := s.companies.GetByUserID(ctx, p.UserID)
	if err == nil && p.LogoURL == "" {
		p.LogoURL = existing.LogoURL
	} else if err != nil && !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	saved, err := s.companies.Upsert(ctx, p)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "profile.company_saved", UserID: &p.UserID, Payload: analyticsPayload(ctx, map[string]string{})})
	return saved, nil
}

func (s *ProfileService) GetCompany(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	return s.companies.GetByUserID(ctx, userID)
}

func (s *ProfileService) AttachCompanyLogo(ctx context.Context, userID common.UUID, logoURL string) error {
	if logoURL == "" {
		return common.NewValidationError("no logo provided", nil)
	}
	if err := s.companies.UpdateLogo(ctx, userID, logoURL); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "profile.company_logo_updated", UserID: &userID, Payload: analyticsPayload(ctx, map[string]string{})})
	return nil
}

// ListStudentsByCollege backs the placement cell's review queue.
func (s *ProfileService) ListStudentsByCollege(ctx context.Context, collegeID common.UUID, status profile.ApprovalStatus) ([]profile.StudentProfile, error) {
	if status != "" && status != profile.ApprovalPending && status != profile.ApprovalApproved && status != profile.ApprovalRejected {
		return nil, common.NewValidationError("invalid status filter", map[string]string{"status": "status must be pending, approved, or rejected"})
	}
	return s.students.ListByCollege(ctx, collegeID, status)
}

// SetStudentApproval records the placement cell's decision on a student
// profile. The admin may only rule on students of their own college.
func (s *ProfileService) SetStudentApproval(ctx context.Context, adminID, adminCollegeID, studentUserID common.UUID, status profile.ApprovalStatus) error {
	if status != profile.ApprovalApproved && status != profile.ApprovalRejected {
		return common.NewValidationError("invalid approval status", map[string]string{"status": "status must be approved or rejected"})
	}
	studentProfile, err := s.students.GetByUserID(ctx, studentUserID)
	if err != nil {
		return err
	}
	if studentProfile.CollegeID != adminCollegeID {
		return common.NewError(common.CodeForbidden, "student belongs to another college", nil)
	}
	if err := s.students.UpdateApproval(ctx, studentUserID, status); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "profile.student_approval_set", UserID: &adminID, Payload: analyticsPayload(ctx, map[string]string{"student_id": studentUserID.String(), "status": string(status)})})
	return nil
}
