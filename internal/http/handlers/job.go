package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Kartikay-0111/Placify/internal/app"
	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/job"
	"github.com/Kartikay-0111/Placify/internal/http/middleware"
	"github.com/Kartikay-0111/Placify/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title               string   `json:"title"`
	Position            string   `json:"position"`
	Location            string   `json:"location"`
	JobType             string   `json:"job_type"`
	Description         string   `json:"description"`
	MinCGPA             float64  `json:"min_cgpa"`
	Stipend             string   `json:"stipend"`
	EligibilityCriteria string   `json:"eligibility_criteria"`
	ApplicationDeadline string   `json:"application_deadline"`
	Requirements        []string `json:"requirements"`
	Status              string   `json:"status"`
	CollegeIDs          []string `json:"college_ids"`
}

type jobStatusRequest struct {
	Status string `json:"status"`
}

func (req *jobRequest) toJob(companyID common.UUID) (job.Job, error) {
	j := job.Job{
		CompanyID:           companyID,
		Title:               req.Title,
		Position:            req.Position,
		Location:            req.Location,
		JobType:             req.JobType,
		Description:         req.Description,
		MinCGPA:             req.MinCGPA,
		Stipend:             req.Stipend,
		EligibilityCriteria: req.EligibilityCriteria,
		Requirements:        req.Requirements,
		Status:              job.Status(req.Status),
	}
	if strings.TrimSpace(req.ApplicationDeadline) != "" {
		deadline, err := time.Parse(time.RFC3339, req.ApplicationDeadline)
		if err != nil {
			return job.Job{}, common.NewValidationError("invalid job", map[string]string{"application_deadline": "application_deadline must be RFC3339"})
		}
		j.ApplicationDeadline = deadline
	}
	return j, nil
}

func parseCollegeIDs(raw []string) ([]common.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	ids := make([]common.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := common.ParseUUID(value)
		if err != nil {
			return nil, common.NewValidationError("invalid job", map[string]string{"college_ids": "college_ids must be valid ids"})
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	j, err := req.toJob(companyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	collegeIDs, err := parseCollegeIDs(req.CollegeIDs)
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), j, collegeIDs)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	j, err := req.toJob(companyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	j.ID = jobID
	collegeIDs, err := parseCollegeIDs(req.CollegeIDs)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.Update(r.Context(), j, collegeIDs)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *JobHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req jobStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		response.Error(w, common.NewError(common.CodeValidation, "status is required", nil))
		return
	}
	updated, err := h.jobs.UpdateStatus(r.Context(), companyID, jobID, job.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.jobs.Delete(r.Context(), actorID, role, jobID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

func (h *JobHandler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.jobs.ListByCompany(r.Context(), companyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) GetByCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, targets, err := h.jobs.GetByCompany(r.Context(), companyID, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"job":     item,
		"targets": targets,
	})
}

func (h *JobHandler) ListVisible(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	query := r.URL.Query()
	filter := job.ListFilter{
		Search:   query.Get("search"),
		JobType:  query.Get("job_type"),
		Location: query.Get("location"),
		Limit:    20,
	}
	if value := query.Get("min_cgpa"); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			filter.MinCGPA = parsed
		}
	}
	if value := query.Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			filter.Limit = parsed
		}
	}
	if value := query.Get("offset"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			filter.Offset = parsed
		}
	}
	items, err := h.jobs.ListVisible(r.Context(), studentID, filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) GetVisible(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.jobs.GetVisible(r.Context(), studentID, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}
