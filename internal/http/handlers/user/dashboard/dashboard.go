// Package dashboard реализует HTTP-обработчик личного кабинета пользователя.
// Данные берутся из контекста запроса, заполненного session middleware.
package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-management/internal/http/middlewarectx"
	"github.com/magabrotheeeer/product-management/internal/http/response"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("missing email in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}
	roles, _ := r.Context().Value(middlewarectx.Roles).([]string)

	log.Info("success to read dashboard", slog.String("email", email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"email": email,
		"roles": roles,
	}))
}
