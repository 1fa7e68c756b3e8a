package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Kartikay-0111/Placify/internal/app"
	"github.com/Kartikay-0111/Placify/internal/common"
	"github.com/Kartikay-0111/Placify/internal/domain/user"
	"github.com/Kartikay-0111/Placify/internal/http/middleware"
	"github.com/Kartikay-0111/Placify/internal/http/response"
)

type AuthHandler struct {
	auth    *app.AuthService
	limiter middleware.Limiter
}

func NewAuthHandler(auth *app.AuthService, limiter middleware.Limiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CollegeID string `json:"college_id,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.allow(r, "register") {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many registration attempts", nil))
		return
	}
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	var collegeID *common.UUID
	if strings.TrimSpace(req.CollegeID) != "" {
		parsed, err := common.ParseUUID(req.CollegeID)
		if err != nil {
			response.Error(w, common.NewError(common.CodeValidation, "invalid college id", err))
			return
		}
		collegeID = &parsed
	}
	created, err := h.auth.Register(r.Context(), req.Email, req.Password, user.Role(req.Role), collegeID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.allow(r, "login") {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many login attempts", nil))
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	tokens, account, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"tokens": tokens,
		"user":   account,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		response.Error(w, common.NewError(common.CodeValidation, "refresh_token is required", nil))
		return
	}
	tokens, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.auth.Logout(r.Context(), req.RefreshToken); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

func (h *AuthHandler) allow(r *http.Request, action string) bool {
	if h.limiter == nil {
		return true
	}
	return h.limiter.Allow("auth:"+action+":"+middleware.ClientIP(r), 10, time.Minute)
}
