package handlers

import (
	"net/http"

	"github.com/Kartikay-0111/Placify/internal/app"
	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/http/middleware"
	"github.com/Kartikay-0111/Placify/internal/http/response"
)

type DashboardHandler struct {
	dashboards *app.DashboardService
}

func NewDashboardHandler(dashboards *app.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

func (h *DashboardHandler) Student(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	dash, err := h.dashboards.Student(r.Context(), studentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dash)
}

func (h *DashboardHandler) Company(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	dash, err := h.dashboards.Company(r.Context(), companyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dash)
}

func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	collegeID, ok := middleware.CollegeIDFromContext(r.Context())
	if !ok {
		response.Error(w, common.NewError(common.CodeForbidden, "admin has no college", nil))
		return
	}
	dash, err := h.dashboards.Admin(r.Context(), collegeID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dash)
}
