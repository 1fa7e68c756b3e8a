package handlers

import (
	"net/http"

	"github.com/Kartikay-0111/Placify/internal/domain/college"
	"github.com/Kartikay-0111/Placify/internal/http/response"
)

// CollegeHandler serves the public college directory used by registration
// and profile forms. Read-only, so it sits directly on the repository.
type CollegeHandler struct {
	colleges college.Repository
}

func NewCollegeHandler(colleges college.Repository) *CollegeHandler {
	return &CollegeHandler{colleges: colleges}
}

func (h *CollegeHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.colleges.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *CollegeHandler) Get(w http.ResponseWriter, r *http.Request) {
	collegeID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.colleges.GetByID(r.Context(), collegeID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}
