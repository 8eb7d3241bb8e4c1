package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/aarthiksaathi/aarthik-be/internal/auth"
	"github.com/aarthiksaathi/aarthik-be/internal/http/respond"
	"github.com/aarthiksaathi/aarthik-be/internal/metrics"
	"github.com/aarthiksaathi/aarthik-be/internal/models"
	"github.com/aarthiksaathi/aarthik-be/internal/models/dto"
	"github.com/aarthiksaathi/aarthik-be/internal/storage"
)

const (
	minPasswordChars = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// AuthHandler owns register/login endpoints.
type AuthHandler struct {
	users    storage.UserStore
	profiles storage.ProfileStore
	tokens   *auth.TokenManager
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewAuthHandler constructs the handler. Profiles are only read to tell a
// freshly signed-in client whether onboarding is complete.
func NewAuthHandler(users storage.UserStore, profiles storage.ProfileStore, tokens *auth.TokenManager, logger *slog.Logger, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{users: users, profiles: profiles, tokens: tokens, logger: logger, metrics: m}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	user := req.User()
	if err := user.Validate(); err != nil {
		writeValidation(w, err)
		return
	}
	if err := validatePassword(req.Password); err != nil {
		writeValidation(w, err)
		return
	}
	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "hash password failed", "error", err, "request_id", chimw.GetReqID(r.Context()))
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	user.PasswordHash = passwordHash

	created, err := h.users.CreateUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusConflict, "user already exists")
		default:
			h.logger.ErrorContext(r.Context(), "create user failed", "error", err, "request_id", chimw.GetReqID(r.Context()))
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	h.metrics.IncrementUsersCreated()
	h.logger.InfoContext(r.Context(), "user registered", "user_id", created.ID, "request_id", chimw.GetReqID(r.Context()))
	respond.JSON(w, http.StatusCreated, "User created successfully", created)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	identity := req.Identity()
	if identity == "" || strings.TrimSpace(req.Password) == "" {
		respond.Error(w, http.StatusBadRequest, "identifier and password are required")
		return
	}
	user, err := h.users.FindByUsernameOrEmail(r.Context(), identity)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.ErrorContext(r.Context(), "fetch user failed", "error", err, "request_id", chimw.GetReqID(r.Context()))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := h.tokens.Generate(user)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "sign token failed", "error", err, "user_id", user.ID)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	hasProfile := true
	if _, err := h.profiles.GetProfile(r.Context(), user.ID); err != nil {
		hasProfile = false
		if !errors.Is(err, storage.ErrNotFound) {
			h.logger.WarnContext(r.Context(), "profile lookup on login failed", "error", err, "user_id", user.ID)
		}
	}
	respond.JSON(w, http.StatusOK, "login successful", dto.LoginResponse{Token: token, User: user, HasProfile: hasProfile})
}

func validatePassword(password string) error {
	if !utf8.ValidString(password) || utf8.RuneCountInString(strings.TrimSpace(password)) < minPasswordChars {
		return &models.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	if len(password) > maxPasswordBytes {
		return &models.ValidationError{Field: "password", Reason: "must be at most 72 bytes"}
	}
	return nil
}

// writeValidation reports a *models.ValidationError with its field name.
func writeValidation(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		respond.Invalid(w, verr.Field, verr.Error())
		return
	}
	respond.Error(w, http.StatusBadRequest, err.Error())
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
