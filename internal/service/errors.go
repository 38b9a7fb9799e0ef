package service

import "errors"

// Ошибки сервисного слоя. Хендлеры маппят их в HTTP-статусы.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSelfDelete         = errors.New("cannot delete own account")
)
