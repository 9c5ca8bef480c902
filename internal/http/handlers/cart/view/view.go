// Package view реализует HTTP-обработчик для просмотра корзины текущей сессии.
package view

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-management/internal/http/middlewarectx"
	"github.com/magabrotheeeer/product-management/internal/http/response"
	"github.com/magabrotheeeer/product-management/internal/lib/sl"
	"github.com/magabrotheeeer/product-management/internal/models"
)

// Service описывает интерфейс чтения корзины.
type Service interface {
	Items(ctx context.Context, sessionID string) ([]models.Product, error)
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
	const op = "handlers.cart.view"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessionID, ok := r.Context().Value(middlewarectx.SessionID).(string)
	if !ok || sessionID == "" {
		log.Error("missing session id in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}

	items, err := h.service.Items(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to read cart", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read cart"))
		return
	}

	log.Info("success to read cart", slog.Int("items", len(items)))
	render.JSON(w, r, response.StatusOKWithData(items))
}
