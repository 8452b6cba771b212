// Package logger настраивает глобальный zap-логгер приложения
// и предоставляет middleware для журналирования HTTP-запросов.
package logger

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// responseData хранит информацию о HTTP-ответе
type responseData struct {
	status int
	size   int
}

// loggingResponseWriter оборачивает http.ResponseWriter для захвата статуса и размера ответа
type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

// Write переопределяет метод Write для захвата размера ответа
func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

// WriteHeader переопределяет метод WriteHeader для захвата статуса ответа
func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// InitLogger создаёт production-логгер с заданным уровнем и делает его глобальным (zap.L()).
func InitLogger(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(zl)
	return nil
}

// LoggerMiddleware — middleware для логирования HTTP-запросов
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Создаем обёртку для захвата статуса и размера ответа
		responseData := &responseData{}
		lw := loggingResponseWriter{
			ResponseWriter: w,
			responseData:   responseData,
		}

		// Передаем управление следующему обработчику
		next.ServeHTTP(&lw, r)

		zap.L().Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("uri", r.RequestURI),
			zap.String("method", r.Method),
			zap.Int("status", responseData.status),
			zap.Duration("duration", time.Since(start)),
			zap.Int("size", responseData.size),
		)
	})
}
