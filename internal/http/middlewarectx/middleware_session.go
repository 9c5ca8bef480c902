// Package middlewarectx содержит HTTP middleware для работы с cookie-сессиями.
//
// SessionMiddleware извлекает идентификатор сессии из куки, загружает
// серверное состояние сессии из Redis и в случае успеха добавляет в контекст
// идентификатор сессии, email, UID и роли пользователя.
//
// При отсутствии куки или истёкшей сессии возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-management/internal/http/response"
	"github.com/magabrotheeeer/product-management/internal/lib/sl"
	"github.com/magabrotheeeer/product-management/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// SessionID — ключ идентификатора сессии в контексте
	SessionID Key = "session_id"
	// User — ключ email пользователя в контексте
	User Key = "email"
	// UserUID — ключ UID пользователя в контексте
	UserUID Key = "user_uid"
	// Roles — ключ списка ролей пользователя в контексте
	Roles Key = "roles"
)

// SessionProvider описывает интерфейс чтения серверного состояния сессии.
type SessionProvider interface {
	Get(ctx context.Context, id string) (*models.Session, error)
}

// SessionMiddleware возвращает HTTP middleware, который проверяет cookie-сессию.
//
// Если сессия существует, добавляет её идентификатор, email, UID и роли
// в контекст запроса, иначе возвращает HTTP 401 Unauthorized.
func SessionMiddleware(sessions SessionProvider, cookieName string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				log.Error("missing session cookie")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not authenticated"))
				return
			}

			sess, err := sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				log.Error("invalid or expired session", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired session"))
				return
			}

			ctx := context.WithValue(r.Context(), SessionID, cookie.Value)
			ctx = context.WithValue(ctx, User, sess.Email)
			ctx = context.WithValue(ctx, UserUID, sess.UserUID)
			ctx = context.WithValue(ctx, Roles, sess.Roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
