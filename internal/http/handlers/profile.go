package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Kartikay-0111/Placify/internal/app"
	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/profile"
	"github.com/Kartikay-0111/Placify/internal/http/middleware"
	"github.com/Kartikay-0111/Placify/internal/http/response"
	"github.com/Kartikay-0111/Placify/internal/storage"
)

const maxUploadBytes = 10 << 20

type ProfileHandler struct {
	profiles *app.ProfileService
	store    storage.Store
}

func NewProfileHandler(profiles *app.ProfileService, store storage.Store) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, store: store}
}

type studentProfileRequest struct {
	CollegeID      string   `json:"college_id"`
	FullName       string   `json:"full_name"`
	RollNumber     string   `json:"roll_number"`
	Branch         string   `json:"branch"`
	CGPA           float64  `json:"cgpa"`
	GraduationYear int      `json:"graduation_year"`
	Skills         []string `json:"skills"`
}

type companyProfileRequest struct {
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

func (h *ProfileHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	item, err := h.profiles.GetStudent(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *ProfileHandler) UpsertStudent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req studentProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	collegeID, err := common.ParseUUID(req.CollegeID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid profile", map[string]string{"college_id": "valid college_id is required"}))
		return
	}
	saved, err := h.profiles.UpsertStudent(r.Context(), profile.StudentProfile{
		UserID:         userID,
		CollegeID:      collegeID,
		FullName:       req.FullName,
		RollNumber:     req.RollNumber,
		Branch:         req.Branch,
		CGPA:           req.CGPA,
		GraduationYear: req.GraduationYear,
		Skills:         req.Skills,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, saved)
}

// UploadStudentFiles accepts multipart form parts named "resume" and
// "avatar"; either may be omitted. Present parts are stored concurrently and
// the profile is updated with the resulting URLs.
func (h *ProfileHandler) UploadStudentFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if h.store == nil {
		response.Error(w, common.NewError(common.CodeInternal, "file storage is not configured", nil))
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "invalid multipart form", err))
		return
	}
	var resumeURL, avatarURL string
	g, ctx := errgroup.WithContext(r.Context())
	if file, header, err := r.FormFile("resume"); err == nil {
		g.Go(func() error {
			defer file.Close()
			url, err := h.upload(ctx, file, header, fmt.Sprintf("resumes/%s", userID))
			if err != nil {
				return err
			}
			resumeURL = url
			return nil
		})
	}
	if file, header, err := r.FormFile("avatar"); err == nil {
		g.Go(func() error {
			defer file.Close()
			url, err := h.upload(ctx, file, header, fmt.Sprintf("avatars/%s", userID))
			if err != nil {
				return err
			}
			avatarURL = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		response.Error(w, err)
		return
	}
	if resumeURL == "" && avatarURL == "" {
		response.Error(w, common.NewError(common.CodeValidation, "no files provided", nil))
		return
	}
	if err := h.profiles.AttachStudentFiles(r.Context(), userID, resumeURL, avatarURL); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{
		"resume_url": resumeURL,
		"avatar_url": avatarURL,
	})
}

func (h *ProfileHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	item, err := h.profiles.GetCompany(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *ProfileHandler) UpsertCompany(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req companyProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	saved, err := h.profiles.UpsertCompany(r.Context(), profile.CompanyProfile{
		UserID:      userID,
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Location:    req.Location,
		Website:     req.Website,
		Description: req.Description,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, saved)
}

func (h *ProfileHandler) UploadCompanyLogo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if h.store == nil {
		response.Error(w, common.NewError(common.CodeInternal, "file storage is not configured", nil))
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "invalid multipart form", err))
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "logo file is required", err))
		return
	}
	defer file.Close()
	logoURL, err := h.upload(r.Context(), file, header, fmt.Sprintf("logos/%s", userID))
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.profiles.AttachCompanyLogo(r.Context(), userID, logoURL); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"logo_url": logoURL})
}

func (h *ProfileHandler) upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, prefix string) (string, error) {
	if header.Size > maxUploadBytes {
		return "", common.NewError(common.CodeValidation, "file exceeds size limit", nil)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectName := prefix + "/" + common.NewUUID().String() + strings.ToLower(filepath.Ext(header.Filename))
	if _, err := h.store.Upload(ctx, objectName, file, header.Size, contentType); err != nil {
		return "", err
	}
	return h.store.PublicURL(objectName), nil
}
