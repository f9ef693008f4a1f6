package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if creds.Email == "" || len(creds.Password) < 8 {
			respondError(w, http.StatusBadRequest, "email and a password of at least 8 characters are required")
			return
		}

		id, err := s.userStore.Create(r.Context(), creds.Email, creds.Password, "")
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE") {
				respondError(w, http.StatusConflict, "email already registered")
				return
			}
			s.logger.Error("register failed", "error", err)
			respondError(w, http.StatusInternalServerError, "registration failed")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"id":    id,
			"email": creds.Email,
		})
	}
}

func (s *Server) handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		u, err := s.userStore.GetByEmail(r.Context(), creds.Email)
		if err != nil {
			s.logger.Error("login lookup failed", "error", err)
			respondError(w, http.StatusInternalServerError, "login failed")
			return
		}
		if u == nil || !u.CheckPassword(creds.Password) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}

		token, err := s.generateToken(u)
		if err != nil {
			s.logger.Error("token generation failed", "error", err)
			respondError(w, http.StatusInternalServerError, "login failed")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "token",
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		respondJSON(w, http.StatusOK, map[string]string{
			"token": token,
			"role":  u.Role,
		})
	}
}
