package handlers

import (
	"net/http"
	"time"

	"github.com/Kartikay-0111/Placify/internal/app"
	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/interview"
	"github.com/Kartikay-0111/Placify/internal/http/middleware"
	"github.com/Kartikay-0111/Placify/internal/http/response"
)

type InterviewHandler struct {
	interviews *app.InterviewService
}

func NewInterviewHandler(interviews *app.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

type scheduleRequest struct {
	ApplicationID string `json:"application_id"`
	InterviewDate string `json:"interview_date"`
	InterviewType string `json:"interview_type"`
	Location      string `json:"location"`
	MeetingLink   string `json:"meeting_link"`
	Notes         string `json:"notes"`
}

type resultRequest struct {
	Result string `json:"result"`
}

func (h *InterviewHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req scheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := common.ParseUUID(req.ApplicationID)
	if err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "valid application_id is required", err))
		return
	}
	interviewDate, err := time.Parse(time.RFC3339, req.InterviewDate)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid interview", map[string]string{"interview_date": "interview_date must be RFC3339"}))
		return
	}
	created, err := h.interviews.Schedule(r.Context(), companyID, interview.Interview{
		ApplicationID: applicationID,
		InterviewDate: interviewDate,
		InterviewType: interview.Type(req.InterviewType),
		Location:      req.Location,
		MeetingLink:   req.MeetingLink,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *InterviewHandler) SetResult(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	interviewID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req resultRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.interviews.SetResult(r.Context(), companyID, interviewID, interview.Result(req.Result))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *InterviewHandler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.interviews.ListByCompany(r.Context(), companyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *InterviewHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.interviews.ListByStudent(r.Context(), studentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
