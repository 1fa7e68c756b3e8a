package app

import (
	"context"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/application"
	"github.com/Kartikay-0111/Placify/internal/domain/interview"
	"github.com/Kartikay-0111/Placify/internal/domain/job"
	"github.com/Kartikay-0111/Placify/internal/domain/profile"
)

// StudentDashboard summarises a student's standing: profile approval, how
// their applications are distributed across statuses, and what comes next.
type StudentDashboard struct {
	ProfileStatus        profile.ApprovalStatus     `json:"profile_status"`
	ProfileComplete      bool                       `json:"profile_complete"`
	TotalApplications    int                        `json:"total_applications"`
	ApplicationsByStatus map[application.Status]int `json:"applications_by_status"`
	UpcomingInterviews   int                        `json:"upcoming_interviews"`
	RecentApplications   []application.Detail       `json:"recent_applications"`
}

type CompanyDashboard struct {
	TotalJobs          int                  `json:"total_jobs"`
	PublishedJobs      int                  `json:"published_jobs"`
	TotalApplications  int                  `json:"total_applications"`
	PendingDecisions   int                  `json:"pending_decisions"`
	Interviews         interview.Stats      `json:"interviews"`
	RecentApplications []application.Detail `json:"recent_applications"`
}

type AdminDashboard struct {
	TotalStudents       int                  `json:"total_students"`
	PendingStudents     int                  `json:"pending_students"`
	PendingTargets      int                  `json:"pending_targets"`
	PendingApplications int                  `json:"pending_applications"`
	RecentApplications  []application.Detail `json:"recent_applications"`
}

const recentLimit = 5

// DashboardService aggregates read-only counters for the three role home
// screens. It reuses the list queries the screens already need rather than
// maintaining counters.
type DashboardService struct {
	students     profile.StudentRepository
	jobs         job.Repository
	applications application.Repository
	interviews   *InterviewService
}

func NewDashboardService(students profile.StudentRepository, jobs job.Repository, applications application.Repository, interviews *InterviewService) *DashboardService {
	return &DashboardService{students: students, jobs: jobs, applications: applications, interviews: interviews}
}

func (s *DashboardService) Student(ctx context.Context, studentID common.UUID) (*StudentDashboard, error) {
	dash := &StudentDashboard{ApplicationsByStatus: map[application.Status]int{}}
	p, err := s.students.GetByUserID(ctx, studentID)
	if err == nil {
		dash.ProfileStatus = p.ApprovalStatus
		dash.ProfileComplete = IsStudentProfileComplete(*p)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	apps, err := s.applications.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	dash.TotalApplications = len(apps)
	for _, a := range apps {
		dash.ApplicationsByStatus[a.Status]++
	}
	dash.RecentApplications = recentApplications(apps)
	interviews, err := s.interviews.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for _, iv := range interviews {
		if iv.Result == "" {
			dash.UpcomingInterviews++
		}
	}
	return dash, nil
}

func (s *DashboardService) Company(ctx context.Context, companyID common.UUID) (*CompanyDashboard, error) {
	dash := &CompanyDashboard{}
	jobs, err := s.jobs.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	dash.TotalJobs = len(jobs)
	for _, j := range jobs {
		if j.Status == job.StatusPublished {
			dash.PublishedJobs++
		}
	}
	apps, err := s.applications.ListByCompany(ctx, companyID, "")
	if err != nil {
		return nil, err
	}
	dash.TotalApplications = len(apps)
	for _, a := range apps {
		if a.Status == application.StatusCellApproved {
			dash.PendingDecisions++
		}
	}
	dash.RecentApplications = recentApplications(apps)
	stats, err := s.interviews.CompanyStats(ctx, companyID)
	if err != nil {
		return nil, err
	}
	dash.Interviews = *stats
	return dash, nil
}

func (s *DashboardService) Admin(ctx context.Context, collegeID common.UUID) (*AdminDashboard, error) {
	dash := &AdminDashboard{}
	students, err := s.students.ListByCollege(ctx, collegeID, "")
	if err != nil {
		return nil, err
	}
	dash.TotalStudents = len(students)
	for _, st := range students {
		if st.ApprovalStatus == profile.ApprovalPending {
			dash.PendingStudents++
		}
	}
	targets, err := s.jobs.ListTargetsByCollege(ctx, collegeID, job.TargetPending)
	if err != nil {
		return nil, err
	}
	dash.PendingTargets = len(targets)
	apps, err := s.applications.ListByCollege(ctx, collegeID, "")
	if err != nil {
		return nil, err
	}
	for _, a := range apps {
		if a.Status == application.StatusPending {
			dash.PendingApplications++
		}
	}
	dash.RecentApplications = recentApplications(apps)
	return dash, nil
}

func recentApplications(apps []application.Detail) []application.Detail {
	if len(apps) > recentLimit {
		return apps[:recentLimit]
	}
	return apps
}
