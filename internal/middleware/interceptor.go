package middleware

import (
	"net"
	"net/http"

	"github.com/GevorkovG/go-qrcodes/internal/httpjson"
)

// TrustedSubnet проверяет, что запрос пришел из доверенной подсети.
// IP клиента берётся из заголовка X-Real-IP; пустая подсеть закрывает доступ всем.
func TrustedSubnet(trustedSubnet string) func(http.Handler) http.Handler {
	var subnet *net.IPNet
	if trustedSubnet != "" {
		_, subnet, _ = net.ParseCIDR(trustedSubnet)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if trustedSubnet == "" {
				httpjson.Error(w, http.StatusForbidden, "access forbidden")
				return
			}
			if subnet == nil {
				httpjson.Error(w, http.StatusInternalServerError, "invalid trusted subnet configuration")
				return
			}

			ip := net.ParseIP(r.Header.Get("X-Real-IP"))
			if ip == nil {
				httpjson.Error(w, http.StatusForbidden, "X-Real-IP header required")
				return
			}

			// Проверяем принадлежность IP к подсети
			if !subnet.Contains(ip) {
				httpjson.Error(w, http.StatusForbidden, "access forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
