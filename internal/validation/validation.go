// Package validation — схемная проверка входящих payload'ов до бизнес-логики.
// Все нарушения собираются вместе, чтобы клиент увидел их за один запрос.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"VaultKeeper/internal/model"
)

// ErrInvalidID — идентификатор в пути не является неотрицательным целым.
var ErrInvalidID = errors.New("invalid id")

// FieldError — нарушение правила для одного поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors — все нарушения payload'а.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var itemNameRe = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// Validator оборачивает validator.Validate с правилами хранилища.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках используем имена полей из json-тегов
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("password_strength", passwordStrength)
	_ = v.RegisterValidation("item_name", func(fl validator.FieldLevel) bool {
		return itemNameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return model.Role(fl.Field().String()).Valid()
	})
	return &Validator{v: v}
}

// Struct нормализует (если схема это умеет) и проверяет payload.
// Возвращает Errors со всеми нарушениями или nil.
func (v *Validator) Struct(s any) error {
	if n, ok := s.(normalizer); ok {
		n.Normalize()
	}
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "password_strength":
		return "must contain at least one uppercase letter, one lowercase letter and one digit"
	case "item_name":
		return "may contain only letters, digits, spaces, hyphens and underscores"
	case "role":
		return "must be one of: admin, user, auditor"
	}
	return "is invalid"
}

func passwordStrength(fl validator.FieldLevel) bool {
	var upper, lower, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// ParseID разбирает идентификатор из пути. Всё, что не является
// неотрицательным целым, отклоняется до обращения к хранилищу.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		return 0, ErrInvalidID
	}
	return int64(id), nil
}
