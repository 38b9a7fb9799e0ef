package auth

import "errors"

// Ошибки проверки токена сессии. Наружу (клиенту) причина не раскрывается.
var (
	ErrMalformed    = errors.New("token malformed")
	ErrBadSignature = errors.New("token signature mismatch")
	ErrExpired      = errors.New("token expired")
)
