package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"VaultKeeper/internal/middleware"
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/service"
	"VaultKeeper/internal/validation"
)

// maxBodyBytes — предел тела JSON-запроса.
const maxBodyBytes = 64 << 10

const (
	msgNotFound         = "Not found"
	msgInternal         = "Internal server error"
	msgInvalidBody      = "Invalid request body"
	msgInvalidID        = "Invalid id"
	msgValidationFailed = "Validation failed"
)

var errInvalidBody = errors.New("invalid request body")

type errorResponse struct {
	Error   string                  `json:"error"`
	Details []validation.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON читает тело не больше maxBodyBytes и отклоняет неизвестные поля.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return tooLarge
		}
		return errInvalidBody
	}
	// после объекта ничего быть не должно
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

// bind декодирует и валидирует payload.
func bind(w http.ResponseWriter, r *http.Request, v *validation.Validator, dst any) error {
	if err := decodeJSON(w, r, dst); err != nil {
		return err
	}
	return v.Struct(dst)
}

// respondError маппит ошибку слоя сервисов в HTTP-ответ.
// Неожиданные ошибки логируются полностью, клиенту уходит общее сообщение.
func respondError(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, op string, err error) {
	var verrs validation.Errors
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgValidationFailed, Details: verrs})
	case errors.Is(err, errInvalidBody):
		writeError(w, http.StatusBadRequest, msgInvalidBody)
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, validation.ErrInvalidID):
		writeError(w, http.StatusBadRequest, msgInvalidID)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, "Email already in use")
	case errors.Is(err, service.ErrSelfDelete):
		writeError(w, http.StatusBadRequest, "Cannot delete your own account")
	default:
		logger.Errorw(op+": internal error",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// userDTO — представление учётки без digest пароля.
type userDTO struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

func toUserDTO(u *model.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

type itemDTO struct {
	ID         int64     `json:"id"`
	OwnerID    int64     `json:"owner_id"`
	OwnerEmail string    `json:"owner_email,omitempty"`
	Name       string    `json:"name"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toItemDTO(it *model.Item) itemDTO {
	dto := itemDTO{
		ID:        it.ID,
		OwnerID:   it.OwnerID,
		Name:      it.Name,
		Note:      it.Note,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
	if it.Owner != nil {
		dto.OwnerEmail = it.Owner.Email
	}
	return dto
}

func toItemDTOs(items []model.Item) []itemDTO {
	out := make([]itemDTO, 0, len(items))
	for i := range items {
		out = append(out, toItemDTO(&items[i]))
	}
	return out
}
