// Package accountlist реализует HTTP-обработчик для списка учётных записей
// в заданной роли. Один и тот же обработчик обслуживает списки администраторов
// и пользователей: роль фиксируется при создании.
package accountlist

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

// Service описывает интерфейс чтения списков учётных записей.
type Service interface {
	ListAccountsInRole(ctx context.Context, role string) ([]models.AccountInfo, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
	role    string
}

// New создает Handler, выдающий список учётных записей в роли role.
func New(log *slog.Logger, service Service, role string) *Handler {
	return &Handler{
		log:     log,
		service: service,
		role:    role,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.superadmin.accountlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("role", h.role),
	)

	accounts, err := h.service.ListAccountsInRole(r.Context(), h.role)
	if err != nil {
		log.Error("failed to list accounts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list accounts"))
		return
	}

	log.Info("success to list accounts", slog.Int("count", len(accounts)))
	render.JSON(w, r, response.StatusOKWithData(accounts))
}
