// Package authz принимает решения о доступе: проверка роли на уровне маршрута
// и проверка владения на уровне записи. Решения чистые, без I/O и кэширования.
package authz

import (
	"slices"

	"VaultKeeper/internal/auth"
	"VaultKeeper/internal/model"
)

// HasRole — роль principal совпадает с ожидаемой.
func HasRole(p auth.Principal, role model.Role) bool {
	return p.Role == role
}

// HasAnyRole — роль principal входит в набор.
func HasAnyRole(p auth.Principal, roles ...model.Role) bool {
	return slices.Contains(roles, p.Role)
}

// CanAccessItem — admin видит всё, остальные только свои записи.
func CanAccessItem(p auth.Principal, it *model.Item) bool {
	if it == nil {
		return false
	}
	return p.IsAdmin() || it.OwnerID == p.ID
}

// OwnerScope возвращает фильтр владельца для запросов к хранилищу:
// nil для admin (без фильтра), id principal для всех остальных.
func OwnerScope(p auth.Principal) *int64 {
	if p.IsAdmin() {
		return nil
	}
	id := p.ID
	return &id
}
