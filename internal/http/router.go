package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/Kartikay-0111/Placify/internal/domain/user"
	"github.com/Kartikay-0111/Placify/internal/http/handlers"
	httpmw "github.com/Kartikay-0111/Placify/internal/http/middleware"
	"github.com/Kartikay-0111/Placify/internal/metrics"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	CollegeHandler     *handlers.CollegeHandler
	ProfileHandler     *handlers.ProfileHandler
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	InterviewHandler   *handlers.InterviewHandler
	AdminHandler       *handlers.AdminHandler
	DashboardHandler   *handlers.DashboardHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 12 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.Metrics.Handler().ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/refresh":
			r.deps.AuthHandler.Refresh(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/logout":
			r.deps.AuthHandler.Logout(w, req)
			return
		case req.Method == http.MethodGet && path == "/colleges":
			r.deps.CollegeHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/colleges/"):
			r.deps.CollegeHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/students") || strings.HasPrefix(path, "/companies") || strings.HasPrefix(path, "/jobs") || strings.HasPrefix(path, "/applications") || strings.HasPrefix(path, "/interviews") || strings.HasPrefix(path, "/admin") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	student := httpmw.RequireRole(user.RoleStudent)
	company := httpmw.RequireRole(user.RoleCompany)
	admin := httpmw.RequireRole(user.RoleAdmin)

	switch {
	case req.Method == http.MethodGet && path == "/students/profile":
		student(http.HandlerFunc(r.deps.ProfileHandler.GetStudent)).ServeHTTP(w, req)
		return
	case (req.Method == http.MethodPost || req.Method == http.MethodPut) && path == "/students/profile":
		student(http.HandlerFunc(r.deps.ProfileHandler.UpsertStudent)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/students/profile/files":
		student(http.HandlerFunc(r.deps.ProfileHandler.UploadStudentFiles)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/students/jobs":
		student(http.HandlerFunc(r.deps.JobHandler.ListVisible)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/students/jobs/"):
		student(http.HandlerFunc(r.deps.JobHandler.GetVisible)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/students/interviews":
		student(http.HandlerFunc(r.deps.InterviewHandler.ListByStudent)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/students/dashboard":
		student(http.HandlerFunc(r.deps.DashboardHandler.Student)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodGet && path == "/companies/profile":
		company(http.HandlerFunc(r.deps.ProfileHandler.GetCompany)).ServeHTTP(w, req)
		return
	case (req.Method == http.MethodPost || req.Method == http.MethodPut) && path == "/companies/profile":
		company(http.HandlerFunc(r.deps.ProfileHandler.UpsertCompany)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/companies/profile/logo":
		company(http.HandlerFunc(r.deps.ProfileHandler.UploadCompanyLogo)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/companies/jobs":
		company(http.HandlerFunc(r.deps.JobHandler.ListByCompany)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/companies/jobs/"):
		company(http.HandlerFunc(r.deps.JobHandler.GetByCompany)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/companies/applications":
		company(http.HandlerFunc(r.deps.ApplicationHandler.List)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/companies/interviews":
		company(http.HandlerFunc(r.deps.InterviewHandler.ListByCompany)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/companies/dashboard":
		company(http.HandlerFunc(r.deps.DashboardHandler.Company)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/jobs":
		company(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/status"):
		company(http.HandlerFunc(r.deps.JobHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/jobs/"):
		company(http.HandlerFunc(r.deps.JobHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/jobs/"):
		r.deps.JobHandler.Delete(w, req)
		return

	case req.Method == http.MethodPost && path == "/applications":
		student(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/cell-status"):
		admin(http.HandlerFunc(r.deps.ApplicationHandler.CellStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/company-status"):
		company(http.HandlerFunc(r.deps.ApplicationHandler.CompanyStatus)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/interviews":
		company(http.HandlerFunc(r.deps.InterviewHandler.Schedule)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/interviews/") && strings.HasSuffix(path, "/result"):
		company(http.HandlerFunc(r.deps.InterviewHandler.SetResult)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodGet && path == "/admin/students":
		admin(http.HandlerFunc(r.deps.AdminHandler.ListStudents)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/admin/students/") && strings.HasSuffix(path, "/approval"):
		admin(http.HandlerFunc(r.deps.AdminHandler.SetStudentApproval)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/jobs":
		admin(http.HandlerFunc(r.deps.AdminHandler.ListJobs)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/targets":
		admin(http.HandlerFunc(r.deps.AdminHandler.ListTargets)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/admin/jobs/") && strings.HasSuffix(path, "/targets/approval"):
		admin(http.HandlerFunc(r.deps.AdminHandler.SetTargetApproval)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/applications":
		admin(http.HandlerFunc(r.deps.ApplicationHandler.List)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/dashboard":
		admin(http.HandlerFunc(r.deps.DashboardHandler.Admin)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
