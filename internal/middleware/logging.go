package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"VaultKeeper/internal/metrics"
)

var logger = zap.NewNop().Sugar()

// SetLogger задаёт логгер для middleware пакета.
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		logger = l
	}
}

const requestIDKey ctxKey = "request_id"

// RequestIDFromContext возвращает id запроса, выданный WithLogging.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	data *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if r.data.status == 0 {
		r.data.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.data.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	if r.data.status == 0 {
		r.data.status = statusCode
	}
	r.ResponseWriter.WriteHeader(statusCode)
}

// WithLogging пишет access-лог: метод, путь, статус, размер и длительность.
// Заголовки с токенами не логируются.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)

		data := &responseData{}
		lw := &loggingResponseWriter{ResponseWriter: w, data: data}
		next.ServeHTTP(lw, r.WithContext(context.WithValue(r.Context(), requestIDKey, reqID)))

		if data.status == 0 {
			data.status = http.StatusOK
		}
		logger.Infow("request",
			"request_id", reqID,
			"method", r.Method,
			"uri", r.URL.Path,
			"status", data.status,
			"size", data.size,
			"duration", time.Since(start),
		)
	})
}

// WithMetrics считает обработанные запросы по методу и статусу.
func WithMetrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data := &responseData{}
			next.ServeHTTP(&loggingResponseWriter{ResponseWriter: w, data: data}, r)
			if data.status == 0 {
				data.status = http.StatusOK
			}
			m.Request(methodLabel(r.Method), data.status)
		})
	}
}

// methodLabel ограничивает метку method стандартными методами, остальные сводятся к OTHER.
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return method
	default:
		return "OTHER"
	}
}
