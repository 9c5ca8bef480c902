// Package rolelist реализует HTTP-обработчик для списка имён ролей.
package rolelist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-management/internal/http/response"
	"github.com/magabrotheeeer/product-management/internal/lib/sl"
)

// Service описывает интерфейс чтения списка ролей.
type Service interface {
	ListRoleNames(ctx context.Context) ([]string, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.superadmin.rolelist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	names, err := h.service.ListRoleNames(r.Context())
	if err != nil {
		log.Error("failed to list roles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list roles"))
		return
	}

	log.Info("success to list roles", slog.Int("count", len(names)))
	render.JSON(w, r, response.StatusOKWithData(names))
}
