package validation

import (
	"strings"

	"VaultKeeper/internal/model"
)

type normalizer interface {
	Normalize()
}

// NormalizeEmail приводит email к каноничному виду.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Registration — POST /api/auth/register.
type Registration struct {
	Email    string `json:"email" validate:"required,max=255,email"`
	Password string `json:"password" validate:"required,min=8,max=100,password_strength"`
}

func (r *Registration) Normalize() { r.Email = NormalizeEmail(r.Email) }

// Login — POST /api/auth/login. Сложность пароля здесь не проверяется.
type Login struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=100"`
}

func (l *Login) Normalize() { l.Email = NormalizeEmail(l.Email) }

// ItemInput — POST /api/vault и PUT /api/vault/{id}.
type ItemInput struct {
	Name string `json:"name" validate:"required,min=1,max=255,item_name"`
	Note string `json:"note" validate:"max=5000"`
}

func (i *ItemInput) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Note = strings.TrimSpace(i.Note)
}

// Search — POST /api/vault/search.
type Search struct {
	Query string `json:"query" validate:"max=255"`
}

func (s *Search) Normalize() { s.Query = strings.TrimSpace(s.Query) }

// UserUpdate — PUT /api/users/{id} (только admin).
type UserUpdate struct {
	Email string     `json:"email" validate:"required,max=255,email"`
	Role  model.Role `json:"role" validate:"required,role"`
}

func (u *UserUpdate) Normalize() { u.Email = NormalizeEmail(u.Email) }
