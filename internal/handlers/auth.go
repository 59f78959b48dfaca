package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/albercy/auto-clinic/internal/auth"
	"github.com/albercy/auto-clinic/internal/db"
	"github.com/albercy/auto-clinic/internal/models"
)

// AuthHandler handles admin authentication requests
type AuthHandler struct {
	authService *auth.Service
	admins      db.AdminCollection
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *auth.Service, admins db.AdminCollection) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		admins:      admins,
	}
}

// Login handles admin login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if loginReq.Email == "" || loginReq.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	admin, err := h.admins.FindAdminByEmail(r.Context(), loginReq.Email)
	if err != nil {
		log.WithError(err).Error("Failed to look up admin")
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}
	if admin == nil || !h.authService.CheckPassword(loginReq.Password, admin.PasswordHash) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.authService.GenerateToken(admin)
	if err != nil {
		log.WithError(err).Error("Failed to generate token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.LoginResponse{Token: token, Admin: *admin})
}

// Register creates a new admin: credentials plus the capability document
// in the admins collection that grants admin access.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.authService.ValidateUsername(registerReq.Username); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.authService.ValidateEmail(registerReq.Email); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.authService.ValidatePassword(registerReq.Password); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	existing, err := h.admins.FindAdminByEmail(r.Context(), registerReq.Email)
	if err != nil {
		log.WithError(err).Error("Failed to look up admin")
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "Email already exists", http.StatusConflict)
		return
	}

	passwordHash, err := h.authService.HashPassword(registerReq.Password)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	admin := models.AdminUser{
		UID:          uuid.NewString(),
		Email:        registerReq.Email,
		Username:     registerReq.Username,
		PasswordHash: passwordHash,
		Role:         "admin",
		CreatedAt:    time.Now(),
	}

	if err := h.admins.InsertAdmin(r.Context(), admin); err != nil {
		log.WithError(err).Error("Failed to create admin")
		http.Error(w, "Failed to create admin", http.StatusInternalServerError)
		return
	}

	token, err := h.authService.GenerateToken(&admin)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.LoginResponse{Token: token, Admin: admin})
}
