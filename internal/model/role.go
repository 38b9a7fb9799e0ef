package model

// Role — роль пользователя. Замкнутое множество значений.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleAuditor Role = "auditor"
)

// Roles перечисляет все допустимые роли.
var Roles = []Role{RoleAdmin, RoleUser, RoleAuditor}

// Valid сообщает, входит ли роль в замкнутое множество.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleAuditor:
		return true
	}
	return false
}
