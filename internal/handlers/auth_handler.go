package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sunshinej01/second-hand/internal/middleware"
	"github.com/sunshinej01/second-hand/internal/models"
	"github.com/sunshinej01/second-hand/internal/remote"
	"github.com/sunshinej01/second-hand/internal/services"
)

type AuthHandler struct {
	sessionService *services.SessionService
}

func NewAuthHandler(sessionService *services.SessionService) *AuthHandler {
	return &AuthHandler{sessionService: sessionService}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	session, err := h.sessionService.SignUp(r.Context(), &req)
	if err != nil {
		log.Printf("[SignUp] Service error: %v", err)
		writeJSON(w, authStatus(err), models.NewErrorResponse("회원가입에 실패했습니다."))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(session))
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	session, err := h.sessionService.SignIn(r.Context(), &req)
	if err != nil {
		log.Printf("[SignIn] Service error: %v", err)
		writeJSON(w, authStatus(err), models.NewErrorResponse("이메일 또는 비밀번호가 올바르지 않습니다."))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(session))
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.sessionService.SignOut(r.Context())
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessionService.Resolve(r.Context(), middleware.GetAccessToken(r.Context()))
	if err != nil {
		log.Printf("[Me] Service error: %v", err)
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired token"))
		return
	}
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Not signed in"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.sessionService.Profile(r.Context(), userID)
	if err != nil {
		log.Printf("[GetProfile] Service error: %v", err)
		writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Failed to get profile"))
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	token := middleware.GetAccessToken(r.Context())

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	profile, err := h.sessionService.UpdateProfile(r.Context(), token, userID, &req)
	if err != nil {
		log.Printf("[UpdateProfile] Service error: %v", err)
		writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Failed to update profile"))
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

// authStatus maps auth service failures: the backend's own rejection passes
// through, an unreachable backend is a gateway problem.
func authStatus(err error) int {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
	}
	return http.StatusBadGateway
}
