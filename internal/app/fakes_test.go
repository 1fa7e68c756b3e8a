package app

import (
	"context"
	"sync"
	"time"

	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/analytics"
	"github.com/Kartikay-0111/Placify/internal/domain/application"
	"github.com/Kartikay-0111/Placify/internal/domain/auth"
	"github.com/Kartikay-0111/Placify/internal/domain/college"
	"github.com/Kartikay-0111/Placify/internal/domain/interview"
	"github.com/Kartikay-0111/Placify/internal/domain/job"
	"github.com/Kartikay-0111/Placify/internal/domain/profile"
	"github.com/Kartikay-0111/Placify/internal/domain/user"
)

type noopAnalyticsRepo struct{}

func (noopAnalyticsRepo) Create(ctx context.Context, event analytics.Event) error {
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*user.User
	byID    map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[common.UUID]*user.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account.ID = common.NewUUID()
	account.CreatedAt = time.Now().UTC()
	stored := account
	r.byEmail[account.Email] = &stored
	r.byID[account.ID] = &stored
	copy := stored
	return &copy, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copy := *account
	return &copy, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byEmail[email]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copy := *account
	return &copy, nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]auth.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]auth.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Store(ctx context.Context, token auth.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.tokens[token]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "refresh token not found", nil)
	}
	copy := value
	return &copy, nil
}

func (r *fakeRefreshTokenRepo) Revoke(ctx context.Context, token string, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.tokens[token]
	if !ok {
		return common.NewError(common.CodeNotFound, "refresh token not found", nil)
	}
	revokedAt := time.Unix(revokedAtUnix, 0).UTC()
	value.RevokedAt = &revokedAt
	r.tokens[token] = value
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAll(ctx context.Context, userID common.UUID, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	revokedAt := time.Unix(revokedAtUnix, 0).UTC()
	for key, value := range r.tokens {
		if value.UserID == userID {
			value.RevokedAt = &revokedAt
			r.tokens[key] = value
		}
	}
	return nil
}

type fakeCollegeRepo struct {
	colleges map[common.UUID]college.College
}

func newFakeCollegeRepo(colleges ...college.College) *fakeCollegeRepo {
	repo := &fakeCollegeRepo{colleges: make(map[common.UUID]college.College)}
	for _, c := range colleges {
		repo.colleges[c.ID] = c
	}
	return repo
}

func (r *fakeCollegeRepo) List(ctx context.Context) ([]college.College, error) {
	items := make([]college.College, 0, len(r.colleges))
	for _, c := range r.colleges {
		items = append(items, c)
	}
	return items, nil
}

func (r *fakeCollegeRepo) GetByID(ctx context.Context, id common.UUID) (*college.College, error) {
	c, ok := r.colleges[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "college not found", nil)
	}
	return &c, nil
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	profiles map[common.UUID]*profile.StudentProfile
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{profiles: make(map[common.UUID]*profile.StudentProfile)}
}

func (r *fakeStudentRepo) Upsert(ctx context.Context, p profile.StudentProfile) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing := r.profiles[p.UserID]; existing != nil {
		p.CreatedAt = existing.CreatedAt
	} else {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	stored := p
	r.profiles[p.UserID] = &stored
	copy := stored
	return &copy, nil
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.profiles[userID]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "student profile not found", nil)
	}
	copy := *p
	return &copy, nil
}

func (r *fakeStudentRepo) UpdateFiles(ctx context.Context, userID common.UUID, resumeURL, avatarURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.profiles[userID]
	if p == nil {
		return common.NewError(common.CodeNotFound, "student profile not found", nil)
	}
	if resumeURL != "" {
		p.ResumeURL = resumeURL
	}
	if avatarURL != "" {
		p.AvatarURL = avatarURL
	}
	return nil
}

func (r *fakeStudentRepo) UpdateApproval(ctx context.Context, userID common.UUID, status profile.ApprovalStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.profiles[userID]
	if p == nil {
		return common.NewError(common.CodeNotFound, "student profile not found", nil)
	}
	p.ApprovalStatus = status
	return nil
}

func (r *fakeStudentRepo) ListByCollege(ctx context.Context, collegeID common.UUID, status profile.ApprovalStatus) ([]profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []profile.StudentProfile
	for _, p := range r.profiles {
		if p.CollegeID != collegeID {
			continue
		}
		if status != "" && p.ApprovalStatus != status {
			continue
		}
		items = append(items, *p)
	}
	return items, nil
}

type fakeCompanyRepo struct {
	mu       sync.Mutex
	profiles map[common.UUID]*profile.CompanyProfile
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{profiles: make(map[common.UUID]*profile.CompanyProfile)}
}

func (r *fakeCompanyRepo) Upsert(ctx context.Context, p profile.CompanyProfile) (*profile.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := p
	r.profiles[p.UserID] = &stored
	copy := stored
	return &copy, nil
}

func (r *fakeCompanyRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.profiles[userID]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "company profile not found", nil)
	}
	copy := *p
	return &copy, nil
}

func (r *fakeCompanyRepo) UpdateLogo(ctx context.Context, userID common.UUID, logoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.profiles[userID]
	if p == nil {
		return common.NewError(common.CodeNotFound, "company profile not found", nil)
	}
	p.LogoURL = logoURL
	return nil
}

type fakeJobRepo struct {
	mu      sync.Mutex
	jobs    map[common.UUID]*job.Job
	targets map[common.UUID]map[common.UUID]job.TargetStatus
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{
		jobs:    make(map[common.UUID]*job.Job),
		targets: make(map[common.UUID]map[common.UUID]job.TargetStatus),
	}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	stored := j
	r.jobs[j.ID] = &stored
	copy := stored
	return &copy, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.jobs[j.ID]
	if existing == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.CreatedAt = existing.CreatedAt
	j.UpdatedAt = time.Now().UTC()
	stored := j
	r.jobs[j.ID] = &stored
	copy := stored
	return &copy, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.jobs[id]
	if j == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	copy := *j
	return &copy, nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.jobs[id] == nil {
		return common.NewError(common.CodeNotFound, "job not found", nil)
	}
	delete(r.jobs, id)
	delete(r.targets, id)
	return nil
}

func (r *fakeJobRepo) ListByCompany(ctx context.Context, companyID common.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, j := range r.jobs {
		if j.CompanyID == companyID {
			items = append(items, *j)
		}
	}
	return items, nil
}

func (r *fakeJobRepo) ListAll(ctx context.Context) ([]job.AdminJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.AdminJob
	for _, j := range r.jobs {
		items = append(items, job.AdminJob{Job: *j})
	}
	return items, nil
}

func (r *fakeJobRepo) ListVisibleToCollege(ctx context.Context, collegeID common.UUID, filter job.ListFilter) ([]job.VisibleJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.VisibleJob
	for jobID, statuses := range r.targets {
		if statuses[collegeID] != job.TargetApproved {
			continue
		}
		j := r.jobs[jobID]
		if j == nil || j.Status != job.StatusPublished {
			continue
		}
		if !j.ApplicationDeadline.IsZero() && !j.ApplicationDeadline.After(time.Now().UTC()) {
			continue
		}
		if filter.MinCGPA > 0 && j.MinCGPA > filter.MinCGPA {
			continue
		}
		items = append(items, job.VisibleJob{Job: *j})
	}
	return items, nil
}

func (r *fakeJobRepo) ListTargets(ctx context.Context, jobID common.UUID) ([]job.CollegeTarget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.CollegeTarget
	for collegeID, status := range r.targets[jobID] {
		items = append(items, job.CollegeTarget{JobID: jobID, CollegeID: collegeID, ApprovalStatus: status})
	}
	return items, nil
}

func (r *fakeJobRepo) ListTargetsByCollege(ctx context.Context, collegeID common.UUID, status job.TargetStatus) ([]job.TargetDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.TargetDetail
	for jobID, statuses := range r.targets {
		current, ok := statuses[collegeID]
		if !ok {
			continue
		}
		if status != "" && current != status {
			continue
		}
		items = append(items, job.TargetDetail{CollegeTarget: job.CollegeTarget{JobID: jobID, CollegeID: collegeID, ApprovalStatus: current}})
	}
	return items, nil
}

func (r *fakeJobRepo) ReconcileTargets(ctx context.Context, jobID common.UUID, add, remove []common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	statuses := r.targets[jobID]
	if statuses == nil {
		statuses = make(map[common.UUID]job.TargetStatus)
		r.targets[jobID] = statuses
	}
	for _, collegeID := range add {
		if _, ok := statuses[collegeID]; !ok {
			statuses[collegeID] = job.TargetPending
		}
	}
	for _, collegeID := range remove {
		delete(statuses, collegeID)
	}
	return nil
}

func (r *fakeJobRepo) UpdateTargetApproval(ctx context.Context, jobID, collegeID common.UUID, status job.TargetStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	statuses := r.targets[jobID]
	if statuses == nil {
		return common.NewError(common.CodeNotFound, "target not found", nil)
	}
	if _, ok := statuses[collegeID]; !ok {
		return common.NewError(common.CodeNotFound, "target not found", nil)
	}
	statuses[collegeID] = status
	return nil
}

func (r *fakeJobRepo) HasApprovedTarget(ctx context.Context, jobID, collegeID common.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.targets[jobID][collegeID] == job.TargetApproved, nil
}

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[common.UUID]*application.Application
	// jobCompany and studentCollege stand in for the joins the SQL
	// repository performs.
	jobCompany     map[common.UUID]common.UUID
	studentCollege map[common.UUID]common.UUID
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications:   make(map[common.UUID]*application.Application),
		jobCompany:     make(map[common.UUID]common.UUID),
		studentCollege: make(map[common.UUID]common.UUID),
	}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.JobID == app.JobID && existing.StudentID == app.StudentID {
			return nil, common.NewError(common.CodeConflict, "already applied", nil)
		}
	}
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.SubmittedAt = now
	app.UpdatedAt = now
	stored := app
	r.applications[app.ID] = &stored
	copy := stored
	return &copy, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.applications[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copy := *app
	return &copy, nil
}

func (r *fakeApplicationRepo) FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.applications {
		if app.JobID == jobID && app.StudentID == studentID {
			copy := *app
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Detail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Detail
	for _, app := range r.applications {
		if app.StudentID == studentID {
			items = append(items, application.Detail{Application: *app})
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByCompany(ctx context.Context, companyID common.UUID, status application.Status) ([]application.Detail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Detail
	for _, app := range r.applications {
		if r.jobCompany[app.JobID] != companyID {
			continue
		}
		if status != "" && app.Status != status {
			continue
		}
		items = append(items, application.Detail{Application: *app})
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByCollege(ctx context.Context, collegeID common.UUID, status application.Status) ([]application.Detail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Detail
	for _, app := range r.applications {
		if r.studentCollege[app.StudentID] != collegeID {
			continue
		}
		if status != "" && app.Status != status {
			continue
		}
		items = append(items, application.Detail{Application: *app})
	}
	return items, nil
}

func (r *fakeApplicationRepo) UpdateCellDecision(ctx context.Context, id common.UUID, status application.Status, notes string) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.applications[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	app.PlacementCellNotes = notes
	app.UpdatedAt = time.Now().UTC()
	copy := *app
	return &copy, nil
}

func (r *fakeApplicationRepo) UpdateCompanyDecision(ctx context.Context, id common.UUID, status application.Status, notes string) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.applications[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	app.CompanyNotes = notes
	app.UpdatedAt = time.Now().UTC()
	copy := *app
	return &copy, nil
}

type fakeInterviewRepo struct {
	mu         sync.Mutex
	interviews map[common.UUID]*interview.Interview
	// companyByApplication mirrors the application→job→company join.
	companyByApplication map[common.UUID]common.UUID
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{
		interviews:           make(map[common.UUID]*interview.Interview),
		companyByApplication: make(map[common.UUID]common.UUID),
	}
}

func (r *fakeInterviewRepo) Create(ctx context.Context, iv interview.Interview) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.interviews {
		if existing.ApplicationID == iv.ApplicationID {
			return nil, common.NewError(common.CodeConflict, "interview already scheduled", nil)
		}
	}
	iv.ID = common.NewUUID()
	now := time.Now().UTC()
	iv.CreatedAt = now
	iv.UpdatedAt = now
	stored := iv
	r.interviews[iv.ID] = &stored
	copy := stored
	return &copy, nil
}

func (r *fakeInterviewRepo) GetByID(ctx context.Context, id common.UUID) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv := r.interviews[id]
	if iv == nil {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	copy := *iv
	return &copy, nil
}

func (r *fakeInterviewRepo) FindByApplication(ctx context.Context, applicationID common.UUID) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, iv := range r.interviews {
		if iv.ApplicationID == applicationID {
			copy := *iv
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
}

func (r *fakeInterviewRepo) ListByCompany(ctx context.Context, companyID common.UUID) ([]interview.Detail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []interview.Detail
	for _, iv := range r.interviews {
		if r.companyByApplication[iv.ApplicationID] == companyID {
			items = append(items, interview.Detail{Interview: *iv})
		}
	}
	return items, nil
}

func (r *fakeInterviewRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]interview.Detail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []interview.Detail
	for _, iv := range r.interviews {
		items = append(items, interview.Detail{Interview: *iv, StudentID: studentID})
	}
	return items, nil
}

func (r *fakeInterviewRepo) SetResult(ctx context.Context, id common.UUID, result interview.Result) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv := r.interviews[id]
	if iv == nil {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	iv.Result = result
	iv.UpdatedAt = time.Now().UTC()
	copy := *iv
	return &copy, nil
}
