package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/product-management/internal/http/response"
	"github.com/magabrotheeeer/product-management/internal/lib/sl"
	"github.com/magabrotheeeer/product-management/internal/models"
	accountservice "github.com/magabrotheeeer/product-management/internal/services/account"
)

// Request — входные данные для регистрации
type Request struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// Service описывает интерфейс регистрации учётной записи.
type Service interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (string, error)
}

// SessionCreator создает серверную сессию и возвращает её идентификатор.
type SessionCreator interface {
	Create(ctx context.Context, sess models.Session) (string, error)
}

type Handler struct {
	log        *slog.Logger
	service    Service
	sessions   SessionCreator
	validate   *validator.Validate
	cookieName string
	cookieTTL  time.Duration
}

func New(log *slog.Logger, service Service, sessions SessionCreator, cookieName string, cookieTTL time.Duration) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		sessions:   sessions,
		validate:   validator.New(),
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
	}
}

// ServeHTTP регистрирует новую учётную запись с ролью "User"
// и сразу выполняет вход, создавая cookie-сессию.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	uid, err := h.service.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	sessionID, err := h.sessions.Create(r.Context(), models.Session{
		UserUID: uid,
		Email:   req.Email,
		Roles:   []string{models.RoleUser},
	})
	if err != nil {
		log.Error("failed to create session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(h.cookieTTL.Seconds()),
	})

	log.Info("register success", slog.String("email", req.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"redirect": accountservice.DashboardUser,
		"email":    req.Email,
	}))
}
