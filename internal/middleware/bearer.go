package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/GevorkovG/go-qrcodes/internal/httpjson"
	"go.uber.org/zap"
)

type contextKey string

// SubjectKey ключ контекста, под которым хранится имя аутентифицированного пользователя.
const SubjectKey contextKey = "subject"

// SubjectParser извлекает субъект из токена доступа.
type SubjectParser interface {
	GetSubject(tokenString string) (string, error)
}

// BearerAuth требует заголовок "Authorization: Bearer <token>".
// При ошибке отвечает 401 и WWW-Authenticate: Bearer.
func BearerAuth(p SubjectParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				unauthorized(w)
				return
			}

			subject, err := p.GetSubject(strings.TrimSpace(token))
			if err != nil {
				zap.L().Warn("bearer auth failed", zap.String("path", r.URL.Path), zap.Error(err))
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Subject возвращает имя пользователя, записанное BearerAuth.
func Subject(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(SubjectKey).(string)
	return s, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	httpjson.Error(w, http.StatusUnauthorized, "could not validate credentials")
}
