package middleware

import (
	"net/http"

	"github.com/estoquelab/embalagens-backend/internal/auditoria"
)

// RequestMeta captures the caller IP and user agent so audit writes can
// attach them to each entry.
func RequestMeta() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := auditoria.WithRequestMeta(r.Context(), auditoria.RequestMeta{
				IPAddress: clientIP(r),
				UserAgent: r.UserAgent(),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
