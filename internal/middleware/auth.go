package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"VaultKeeper/internal/auth"
	"VaultKeeper/internal/authz"
	"VaultKeeper/internal/metrics"
	"VaultKeeper/internal/model"
)

// CookieName — имя cookie с токеном сессии.
const CookieName = "auth_token"

const (
	msgAuthRequired = "Authentication required"
	msgInvalidToken = "Invalid or expired token"
	msgAccessDenied = "Access denied"
)

type ctxKey string

const principalKey ctxKey = "principal"

// WithPrincipal кладёт проверенного principal в контекст.
func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipalFromContext достаёт principal, установленный Authenticate.
func GetPrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(auth.Principal)
	return p, ok
}

// GetUserIDFromContext достаёт id пользователя из контекста
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	p, ok := GetPrincipalFromContext(ctx)
	if !ok {
		return 0, false
	}
	return p.ID, true
}

// tokenSources — источники токена в порядке приоритета: заголовок, затем cookie.
var tokenSources = []func(*http.Request) string{
	bearerToken,
	cookieToken,
}

// TokenFromRequest возвращает токен из первого непустого источника.
func TokenFromRequest(r *http.Request) (string, bool) {
	for _, src := range tokenSources {
		if tok := src(r); tok != "" {
			return tok, true
		}
	}
	return "", false
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, tok, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}

func cookieToken(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Auth — гейт аутентификации и проверки ролей.
type Auth struct {
	tokens  *auth.TokenService
	metrics *metrics.Metrics
}

// NewAuth создаёт гейт. metrics может быть nil.
func NewAuth(tokens *auth.TokenService, m *metrics.Metrics) *Auth {
	return &Auth{tokens: tokens, metrics: m}
}

// Authenticate пропускает запрос только с валидным токеном.
// Причина отказа наружу не раскрывается: только два грубых сообщения.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := TokenFromRequest(r)
		if !ok {
			a.metrics.AuthFailure(metrics.ReasonMissingToken)
			writeError(w, http.StatusUnauthorized, msgAuthRequired)
			return
		}
		p, err := a.tokens.Verify(tok)
		if err != nil {
			a.metrics.AuthFailure(metrics.ReasonInvalidToken)
			logger.Debugw("token rejected", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireRole допускает только principal с указанной ролью.
func (a *Auth) RequireRole(role model.Role) func(http.Handler) http.Handler {
	return a.RequireAnyRole(role)
}

// RequireAnyRole допускает principal с любой из перечисленных ролей.
// Ставится после Authenticate.
func (a *Auth) RequireAnyRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := GetPrincipalFromContext(r.Context())
			if !ok {
				a.metrics.AuthFailure(metrics.ReasonMissingToken)
				writeError(w, http.StatusUnauthorized, msgAuthRequired)
				return
			}
			if !authz.HasAnyRole(p, roles...) {
				a.metrics.AuthFailure(metrics.ReasonForbidden)
				writeError(w, http.StatusForbidden, msgAccessDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetLoginCookie выставляет HttpOnly cookie с токеном до момента его истечения.
func SetLoginCookie(w http.ResponseWriter, token string, expiresAt time.Time, secure bool) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearLoginCookie перезаписывает cookie просроченной.
func ClearLoginCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
