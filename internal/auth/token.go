package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"VaultKeeper/internal/model"
)

// Principal — идентичность, извлечённая из проверенного токена.
// Значение неизменяемо: смена роли требует выпуска нового токена.
type Principal struct {
	ID   int64
	Role model.Role
}

// IsAdmin сообщает, что principal — администратор.
func (p Principal) IsAdmin() bool { return p.Role == model.RoleAdmin }

// Claims — полезная нагрузка токена сессии.
type Claims struct {
	UserID int64      `json:"uid"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет подписанные HS256 токены сессии.
// Безопасен для конкурентного использования: состояние только для чтения.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

type TokenOption func(*TokenService)

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) *TokenService {
	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	return s
}

// TTL возвращает срок жизни выпускаемых токенов.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue выпускает токен для principal. Возвращает строку токена и момент истечения.
func (s *TokenService) Issue(p Principal) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		UserID: p.ID,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify проверяет токен: сначала подпись по сырым сегментам, затем содержимое и срок.
// Подпись пересчитывается всегда; доверять можно только payload с валидной подписью.
func (s *TokenService) Verify(token string) (Principal, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Principal{}, ErrMalformed
	}
	sig, err := s.parser.DecodeSegment(parts[2])
	if err != nil {
		return Principal{}, ErrBadSignature
	}
	if err := jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, s.secret); err != nil {
		return Principal{}, ErrBadSignature
	}

	claims := &Claims{}
	_, err = s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Principal{}, ErrExpired
	case err != nil:
		return Principal{}, ErrMalformed
	}

	if claims.UserID <= 0 || claims.Subject != strconv.FormatInt(claims.UserID, 10) || !claims.Role.Valid() {
		return Principal{}, ErrMalformed
	}
	return Principal{ID: claims.UserID, Role: claims.Role}, nil
}
