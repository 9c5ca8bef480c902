// Package add реализует HTTP-обработчик для добавления товара в корзину сессии.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/product-management/internal/http/middlewarectx"
	"github.com/magabrotheeeer/product-management/internal/http/response"
	"github.com/magabrotheeeer/product-management/internal/lib/sl"
	"github.com/magabrotheeeer/product-management/internal/models"
	"github.com/magabrotheeeer/product-management/internal/storage/repository"
)

// Request описывает структуру запроса на добавление товара в корзину.
type Request struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// Service описывает интерфейс бизнес-логики корзины.
type Service interface {
	Add(ctx context.Context, sessionID, productID string) (*models.Product, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает HTTP-запрос на добавление товара в корзину.
// Несуществующий товар — HTTP 404, дубликаты в корзине допустимы.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.add"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	product, err := h.service.Add(r.Context(), sessionID, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			log.Error("product not found", slog.String("product_id", req.ProductID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
			return
		}
		log.Error("failed to add product to cart", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not add product to cart"))
		return
	}

	log.Info("success to add product to cart", slog.String("product_id", product.ID))
	render.JSON(w, r, response.StatusOKWithData(product))
}
