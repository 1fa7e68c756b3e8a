package handlers

import (
	"net/http"

	"github.com/Kartikay-0111/Placify/internal/app"
	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/job"
	"github.com/Kartikay-0111/Placify/internal/domain/profile"
	"github.com/Kartikay-0111/Placify/internal/http/middleware"
	"github.com/Kartikay-0111/Placify/internal/http/response"
)

// AdminHandler serves the placement cell screens. Every route is scoped to
// the admin's own college.
type AdminHandler struct {
	profiles *app.ProfileService
	jobs     *app.JobService
}

func NewAdminHandler(profiles *app.ProfileService, jobs *app.JobService) *AdminHandler {
	return &AdminHandler{profiles: profiles, jobs: jobs}
}

type approvalRequest struct {
	Status string `json:"status"`
}

func adminScope(r *http.Request) (common.UUID, common.UUID, error) {
	adminID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return "", "", errUnauthorized()
	}
	collegeID, ok := middleware.CollegeIDFromContext(r.Context())
	if !ok {
		return "", "", common.NewError(common.CodeForbidden, "admin has no college", nil)
	}
	return adminID, collegeID, nil
}

func (h *AdminHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	_, collegeID, err := adminScope(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	status := profile.ApprovalStatus(r.URL.Query().Get("status"))
	items, err := h.profiles.ListStudentsByCollege(r.Context(), collegeID, status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *AdminHandler) SetStudentApproval(w http.ResponseWriter, r *http.Request) {
	adminID, collegeID, err := adminScope(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	studentUserID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req approvalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.profiles.SetStudentApproval(r.Context(), adminID, collegeID, studentUserID, profile.ApprovalStatus(req.Status)); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

// ListJobs returns every posting for the cell's moderation screen; the
// college scope check still applies even though the list is global.
func (h *AdminHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	if _, _, err := adminScope(r); err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.jobs.ListAll(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *AdminHandler) ListTargets(w http.ResponseWriter, r *http.Request) {
	_, collegeID, err := adminScope(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	status := job.TargetStatus(r.URL.Query().Get("status"))
	items, err := h.jobs.ListTargetsForCollege(r.Context(), collegeID, status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *AdminHandler) SetTargetApproval(w http.ResponseWriter, r *http.Request) {
	adminID, collegeID, err := adminScope(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req approvalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.jobs.SetTargetApproval(r.Context(), adminID, collegeID, jobID, job.TargetStatus(req.Status)); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}
