package handlers

import (
	"net/http"
	"time"

	"github.com/Kartikay-0111/Placify/internal/app"
	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/application"
	"github.com/Kartikay-0111/Placify/internal/domain/user"
	"github.com/Kartikay-0111/Placify/internal/http/middleware"
	"github.com/Kartikay-0111/Placify/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type applyRequest struct {
	JobID string `json:"job_id"`
}

type decisionRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if h.limiter != nil && !h.limiter.Allow("apply:"+studentID.String(), 20, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many applications", nil))
		return
	}
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := common.ParseUUID(req.JobID)
	if err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "valid job_id is required", err))
		return
	}
	created, err := h.applications.Apply(r.Context(), jobID, studentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

// List dispatches on the caller's role: students see their own applications,
// companies the applicants to their jobs, admins their college's students.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	status := application.Status(r.URL.Query().Get("status"))

	switch role {
	case user.RoleStudent:
		items, err := h.applications.ListByStudent(r.Context(), userID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, items)
	case user.RoleCompany:
		items, err := h.applications.ListByCompany(r.Context(), userID, status)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, items)
	case user.RoleAdmin:
		collegeID, ok := middleware.CollegeIDFromContext(r.Context())
		if !ok {
			response.Error(w, common.NewError(common.CodeForbidden, "admin has no college", nil))
			return
		}
		items, err := h.applications.ListByCollege(r.Context(), collegeID, status)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, items)
	default:
		response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
	}
}

func (h *ApplicationHandler) CellStatus(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	collegeID, ok := middleware.CollegeIDFromContext(r.Context())
	if !ok {
		response.Error(w, common.NewError(common.CodeForbidden, "admin has no college", nil))
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req decisionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.CellDecision(r.Context(), applicationID, adminID, collegeID, application.Status(req.Status), req.Notes)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) CompanyStatus(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req decisionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.CompanyDecision(r.Context(), applicationID, companyID, application.Status(req.Status), req.Notes)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
