package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"VaultKeeper/internal/middleware"
	"VaultKeeper/internal/service"
	"VaultKeeper/internal/validation"
)

// ItemHandler обрабатывает записи хранилища /api/vault.
type ItemHandler struct {
	ItemService *service.ItemService
	Validator   *validation.Validator
	Logger      *zap.SugaredLogger
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, v *validation.Validator, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Validator: v, Logger: logger}
}

// List — записи текущего пользователя.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.GetPrincipalFromContext(r.Context())
	items, err := h.ItemService.ListOwn(r.Context(), p)
	if err != nil {
		respondError(w, r, h.Logger, "List", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": toItemDTOs(items)})
}

// ListAll — все записи с email владельца (только admin, проверяется маршрутом).
func (h *ItemHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.ItemService.ListAll(r.Context())
	if err != nil {
		respondError(w, r, h.Logger, "ListAll", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": toItemDTOs(items)})
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.Logger, "Get", err)
		return
	}
	p, _ := middleware.GetPrincipalFromContext(r.Context())

	it, err := h.ItemService.Get(r.Context(), p, id)
	if err != nil {
		respondError(w, r, h.Logger, "Get", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]itemDTO{"item": toItemDTO(it)})
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req validation.ItemInput
	if err := bind(w, r, h.Validator, &req); err != nil {
		respondError(w, r, h.Logger, "Create", err)
		return
	}
	p, _ := middleware.GetPrincipalFromContext(r.Context())

	it, err := h.ItemService.Create(r.Context(), p, req.Name, req.Note)
	if err != nil {
		respondError(w, r, h.Logger, "Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]itemDTO{"item": toItemDTO(it)})
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.Logger, "Update", err)
		return
	}
	var req validation.ItemInput
	if err := bind(w, r, h.Validator, &req); err != nil {
		respondError(w, r, h.Logger, "Update", err)
		return
	}
	p, _ := middleware.GetPrincipalFromContext(r.Context())

	it, err := h.ItemService.Update(r.Context(), p, id, req.Name, req.Note)
	if err != nil {
		respondError(w, r, h.Logger, "Update", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]itemDTO{"item": toItemDTO(it)})
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.Logger, "Delete", err)
		return
	}
	p, _ := middleware.GetPrincipalFromContext(r.Context())

	if err := h.ItemService.Delete(r.Context(), p, id); err != nil {
		respondError(w, r, h.Logger, "Delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}

// Search — поиск по своим записям. Запрос всегда трактуется как литеральный текст.
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req validation.Search
	if err := bind(w, r, h.Validator, &req); err != nil {
		respondError(w, r, h.Logger, "Search", err)
		return
	}
	p, _ := middleware.GetPrincipalFromContext(r.Context())

	items, err := h.ItemService.Search(r.Context(), p, req.Query)
	if err != nil {
		respondError(w, r, h.Logger, "Search", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": toItemDTOs(items)})
}
