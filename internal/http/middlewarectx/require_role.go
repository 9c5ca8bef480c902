package middlewarectx

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-management/internal/http/response"
)

// RequireRole создает middleware, пропускающий только пользователей с указанной ролью.
// Набор ролей берётся из контекста, заполненного SessionMiddleware.
func RequireRole(log *slog.Logger, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roles, ok := r.Context().Value(Roles).([]string)
			if !ok || !slices.Contains(roles, role) {
				log.Error("access denied",
					slog.String("required_role", role),
					slog.Any("roles", roles))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
