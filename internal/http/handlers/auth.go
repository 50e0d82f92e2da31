package handlers

import (
	"net/http"
	"strings"

	"github.com/hongminglow/driveops-be/internal/http/respond"
	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/models/dto"
	"github.com/hongminglow/driveops-be/internal/service"
)

// AuthHandler owns the login and validate-token endpoints.
type AuthHandler struct {
	svc service.AuthService
	log logger.ILogger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc service.AuthService, log logger.ILogger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
	mux.HandleFunc("POST /api/auth/validate-token", h.handleValidateToken)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Token: token, User: user})
}

func (h *AuthHandler) handleValidateToken(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		respond.Error(w, http.StatusBadRequest, "token is required")
		return
	}

	id, ok := h.svc.ValidateToken(req.Token)
	if !ok {
		respond.JSON(w, http.StatusOK, dto.ValidateTokenResponse{IsValid: false})
		return
	}
	respond.JSON(w, http.StatusOK, dto.ValidateTokenResponse{
		IsValid: dto.TokenInfo{ID: id.UserID, Role: id.Role, Email: id.Email},
	})
}
