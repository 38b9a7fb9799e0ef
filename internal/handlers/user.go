package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"VaultKeeper/internal/config"
	"VaultKeeper/internal/metrics"
	"VaultKeeper/internal/middleware"
	"VaultKeeper/internal/service"
	"VaultKeeper/internal/validation"
)

// AuthHandler — регистрация, вход, выход и текущий пользователь.
type AuthHandler struct {
	UserService *service.UserService
	Validator   *validation.Validator
	Metrics     *metrics.Metrics
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewAuthHandler(userService *service.UserService, v *validation.Validator, m *metrics.Metrics, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{UserService: userService, Validator: v, Metrics: m, Logger: logger, Config: cfg}
}

type sessionResponse struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}

// Register регистрация нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req validation.Registration
	if err := bind(w, r, h.Validator, &req); err != nil {
		respondError(w, r, h.Logger, "Register", err)
		return
	}

	sess, err := h.UserService.Register(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrConflict) {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		respondError(w, r, h.Logger, "Register", err)
		return
	}

	h.Logger.Infow("user registered", "user_id", sess.User.ID)
	middleware.SetLoginCookie(w, sess.Token, sess.ExpiresAt, h.Config.EnableHTTPS)
	writeJSON(w, http.StatusCreated, sessionResponse{User: toUserDTO(sess.User), Token: sess.Token})
}

// Login аутентификация по email и паролю.
// Тело, не прошедшее схему, отвечает так же, как неверный пароль.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req validation.Login
	err := bind(w, r, h.Validator, &req)
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		h.rejectLogin(w)
		return
	}
	if err != nil {
		respondError(w, r, h.Logger, "Login", err)
		return
	}

	sess, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.rejectLogin(w)
		return
	}
	if err != nil {
		respondError(w, r, h.Logger, "Login", err)
		return
	}

	middleware.SetLoginCookie(w, sess.Token, sess.ExpiresAt, h.Config.EnableHTTPS)
	writeJSON(w, http.StatusOK, sessionResponse{User: toUserDTO(sess.User), Token: sess.Token})
}

func (h *AuthHandler) rejectLogin(w http.ResponseWriter) {
	h.Metrics.AuthFailure(metrics.ReasonBadLogin)
	writeError(w, http.StatusUnauthorized, "Invalid credentials")
}

// Logout затирает cookie. Сам токен stateless и живёт до истечения.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w, h.Config.EnableHTTPS)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me возвращает учётку текущего principal.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.GetPrincipalFromContext(r.Context())

	u, err := h.UserService.GetUser(r.Context(), p.ID)
	if errors.Is(err, service.ErrNotFound) {
		// токен пережил удалённую учётку
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	if err != nil {
		respondError(w, r, h.Logger, "Me", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]userDTO{"user": toUserDTO(u)})
}
