package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"resumatch/internal/server/repository"
	"resumatch/internal/server/service"
	"resumatch/internal/shared/models"
)

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	var in models.RegisterRequest
	if !r.decodeBody(w, req, &in) {
		return
	}
	if err := r.validate.Struct(in); err != nil {
		writeFieldErrors(w, http.StatusBadRequest, r.validationErrors(err))
		return
	}
	if in.Password != in.PasswordConfirm {
		writeFieldErrors(w, http.StatusBadRequest, map[string][]string{
			"password_confirm": {"Passwords do not match"},
		})
		return
	}

	user, err := r.services.Auth.Register(req.Context(), in.Email, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			writeFieldErrors(w, http.StatusBadRequest, map[string][]string{
				"email": {"A user with this email already exists."},
			})
			return
		}
		r.logger.Printf("register: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	tokens, err := r.services.Auth.IssueTokens(req.Context(), user.ID)
	if err != nil {
		r.logger.Printf("register tokens: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	writeJSON(w, http.StatusCreated, models.AuthResponse{Tokens: tokens, User: user})
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	var in models.LoginRequest
	if !r.decodeBody(w, req, &in) {
		return
	}
	if err := r.validate.Struct(in); err != nil {
		writeFieldErrors(w, http.StatusBadRequest, r.validationErrors(err))
		return
	}

	user, err := r.services.Auth.Authenticate(req.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeFieldErrors(w, http.StatusUnauthorized, map[string][]string{
				"non_field_errors": {"Invalid credentials"},
			})
			return
		}
		r.logger.Printf("login: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Login failed")
		return
	}
	tokens, err := r.services.Auth.IssueTokens(req.Context(), user.ID)
	if err != nil {
		r.logger.Printf("login tokens: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Login failed")
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{Tokens: tokens, User: user})
}

func (r *Router) handleRefresh(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Refresh string `json:"refresh"`
	}
	if !r.decodeBody(w, req, &in) {
		return
	}
	if in.Refresh == "" {
		writeFieldErrors(w, http.StatusBadRequest, map[string][]string{
			"refresh": {"This field is required."},
		})
		return
	}
	tokens, err := r.services.Auth.Refresh(req.Context(), in.Refresh)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (r *Router) handleProfile(w http.ResponseWriter, req *http.Request) {
	user, err := r.services.Auth.GetUser(req.Context(), getUserID(req.Context()))
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// decodeBody reads a size-limited JSON body into dst. It writes the
// error response itself and reports whether decoding succeeded.
func (r *Router) decodeBody(w http.ResponseWriter, req *http.Request, dst any) bool {
	req.Body = http.MaxBytesReader(w, req.Body, r.maxRequestBytes)
	if err := json.NewDecoder(req.Body).Decode(dst); err != nil {
		writeFieldErrors(w, http.StatusBadRequest, map[string][]string{
			"non_field_errors": {"Malformed request body"},
		})
		return false
	}
	return true
}
