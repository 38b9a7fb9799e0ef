package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"VaultKeeper/internal/middleware"
	"VaultKeeper/internal/service"
	"VaultKeeper/internal/validation"
)

// AdminHandler — управление учётками, маршруты закрыты RequireRole(admin).
type AdminHandler struct {
	UserService *service.UserService
	Validator   *validation.Validator
	Logger      *zap.SugaredLogger
}

func NewAdminHandler(userService *service.UserService, v *validation.Validator, logger *zap.SugaredLogger) *AdminHandler {
	return &AdminHandler{UserService: userService, Validator: v, Logger: logger}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, h.Logger, "ListUsers", err)
		return
	}
	out := make([]userDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": out})
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.Logger, "GetUser", err)
		return
	}
	u, err := h.UserService.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, r, h.Logger, "GetUser", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]userDTO{"user": toUserDTO(u)})
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.Logger, "UpdateUser", err)
		return
	}
	var req validation.UserUpdate
	if err := bind(w, r, h.Validator, &req); err != nil {
		respondError(w, r, h.Logger, "UpdateUser", err)
		return
	}

	u, err := h.UserService.UpdateUser(r.Context(), id, req.Email, req.Role)
	if err != nil {
		respondError(w, r, h.Logger, "UpdateUser", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]userDTO{"user": toUserDTO(u)})
}

// DeleteUser удаляет учётку вместе с её записями. Свою учётку удалить нельзя.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.Logger, "DeleteUser", err)
		return
	}
	actor, _ := middleware.GetPrincipalFromContext(r.Context())

	if err := h.UserService.DeleteUser(r.Context(), actor, id); err != nil {
		respondError(w, r, h.Logger, "DeleteUser", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
