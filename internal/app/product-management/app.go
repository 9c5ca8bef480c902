// Package productmanagement собирает приложение каталога товаров:
// хранилище, миграции, сессии, брокер событий, сервисы и HTTP-сервер.
package productmanagement

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/product-management/internal/config"
	"github.com/magabrotheeeer/product-management/internal/lib/sl"
	"github.com/magabrotheeeer/product-management/internal/migrations"
	"github.com/magabrotheeeer/product-management/internal/models"
	"github.com/magabrotheeeer/product-management/internal/rabbitmq"
	accountservice "github.com/magabrotheeeer/product-management/internal/services/account"
	cartservice "github.com/magabrotheeeer/product-management/internal/services/cart"
	productservice "github.com/magabrotheeeer/product-management/internal/services/product"
	superadminservice "github.com/magabrotheeeer/product-management/internal/services/superadmin"
	"github.com/magabrotheeeer/product-management/internal/session"
	"github.com/magabrotheeeer/product-management/internal/storage/repository"
)

// App агрегирует долгоживущие зависимости приложения.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	sessions *session.Store
	rabbit   *amqp.Connection // nil, если публикация событий отключена
}

// New инициализирует все зависимости и собирает HTTP-сервер.
// Пустой cfg.RabbitConnection.URL отключает публикацию событий учётных записей.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	sessions, err := session.InitServer(ctx, cfg.RedisConnection, cfg.Session.SessionTTL)
	if err != nil {
		return nil, err
	}

	var rabbitConn *amqp.Connection
	var publisher *rabbitmq.Publisher
	if cfg.RabbitConnection.URL != "" {
		rabbitConn, err = rabbitmq.Connect(cfg.RabbitConnection.URL, cfg.RabbitConnection.Retries, cfg.RabbitConnection.RetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetAccountQueues())
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch)
	}

	accountService := accountservice.NewAccountService(db, eventsOrNil(publisher), logger)
	productService := productservice.NewProductService(db, logger)
	superAdminService := superadminservice.NewSuperAdminService(db, superadminEventsOrNil(publisher), logger)
	cartService := cartservice.NewCartService(sessions, db, logger)

	if err = seedSuperAdmin(ctx, cfg.SeedSuperAdmin, db, superAdminService, logger); err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, sessions, accountService, productService, superAdminService, cartService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		sessions: sessions,
		rabbit:   rabbitConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.rabbit != nil {
			_ = a.rabbit.Close()
		}
		_ = a.sessions.Close()
		_ = a.db.DB.Close()
		return err
	}
}

// seedStore — часть хранилища, нужная для посева суперадминистратора.
type seedStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserRoles(ctx context.Context, userUID string) ([]string, error)
	AddUserToRole(ctx context.Context, userUID, role string) error
}

// seedSuperAdmin создает запись суперадминистратора при первом запуске.
// Пустой email в конфиге отключает посев. Существующая запись сохраняет
// профиль и пароль, но роль SuperAdmin восстанавливается, если её сняли.
func seedSuperAdmin(ctx context.Context, cfg config.SeedSuperAdmin, store seedStore, svc *superadminservice.SuperAdminService, logger *slog.Logger) error {
	if cfg.SeedEmail == "" {
		return nil
	}
	user, err := store.GetUserByEmail(ctx, cfg.SeedEmail)
	if err == nil {
		roles, err := store.GetUserRoles(ctx, user.UID)
		if err != nil {
			return err
		}
		if slices.Contains(roles, models.RoleSuperAdmin) {
			return nil
		}
		if err = store.AddUserToRole(ctx, user.UID, models.RoleSuperAdmin); err != nil {
			return err
		}
		logger.Info("restored superadmin role", slog.String("uid", user.UID), slog.String("email", cfg.SeedEmail))
		return nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return err
	}
	uid, err := svc.AddAdmin(ctx, cfg.SeedEmail, "Super", "Admin", cfg.SeedPassword, models.RoleSuperAdmin)
	if err != nil {
		logger.Error("failed to seed superadmin", sl.Err(err))
		return err
	}
	logger.Info("seeded superadmin account", slog.String("uid", uid), slog.String("email", cfg.SeedEmail))
	return nil
}

func eventsOrNil(p *rabbitmq.Publisher) accountservice.EventsPublisher {
	if p == nil {
		return nil
	}
	return p
}

func superadminEventsOrNil(p *rabbitmq.Publisher) superadminservice.EventsPublisher {
	if p == nil {
		return nil
	}
	return p
}
