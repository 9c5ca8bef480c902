// Package services содержит логику бизнес-уровня для работы с учётными записями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/product-management/internal/lib/password"
	"github.com/magabrotheeeer/product-management/internal/lib/sl"
	"github.com/magabrotheeeer/product-management/internal/models"
	"github.com/magabrotheeeer/product-management/internal/rabbitmq"
	"github.com/magabrotheeeer/product-management/internal/storage/repository"
)

// Пути панелей, на которые направляется пользователь после входа.
const (
	DashboardSuperAdmin = "/superadmin/dashboard"
	DashboardAdmin      = "/products"
	DashboardUser       = "/user/dashboard"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Отсутствующая учётная запись не отличается от неверного пароля.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с учётными записями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет новую учётную запись и возвращает её UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает учётную запись по email или ошибку, если не найдена.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserRoles возвращает имена ролей учётной записи.
	GetUserRoles(ctx context.Context, userUID string) ([]string, error)

	// AddUserToRole добавляет учётную запись в роль.
	AddUserToRole(ctx context.Context, userUID, role string) error
}

// EventsPublisher публикует события жизненного цикла учётных записей.
type EventsPublisher interface {
	PublishAccountCreated(event rabbitmq.AccountEvent) error
}

// AccountService отвечает за регистрацию, вход и определение ролей.
// Блокировка после неудачных попыток входа намеренно не реализована.
type AccountService struct {
	users  UserRepository
	events EventsPublisher // nil, если публикация событий отключена
	log    *slog.Logger
}

// NewAccountService создает новый экземпляр AccountService.
func NewAccountService(users UserRepository, events EventsPublisher, log *slog.Logger) *AccountService {
	return &AccountService{
		users:  users,
		events: events,
		log:    log,
	}
}

// Login проверяет пароль учётной записи и возвращает её вместе с набором ролей.
func (s *AccountService) Login(ctx context.Context, email, rawPassword string) (*models.User, []string, error) {
	const op = "account.Login"
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	roles, err := s.users.GetUserRoles(ctx, user.UID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, roles, nil
}

// Register создает новую учётную запись с хэшированием пароля и дефолтной ролью "User".
// При ошибке создания роль не назначается и событие не публикуется.
func (s *AccountService) Register(ctx context.Context, email, rawPassword, firstName, lastName string) (string, error) {
	const op = "account.Register"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		UID:          uuid.New().String(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hashed,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err = s.users.AddUserToRole(ctx, uid, models.RoleUser); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.publishCreated(uid, email, models.RoleUser)
	return uid, nil
}

// GetRoles возвращает роли учётной записи по email,
// пустой список — если запись не найдена.
func (s *AccountService) GetRoles(ctx context.Context, email string) ([]string, error) {
	const op = "account.GetRoles"
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	roles, err := s.users.GetUserRoles(ctx, user.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return roles, nil
}

// DashboardPath выбирает панель по набору ролей.
// Приоритет при нескольких ролях: SuperAdmin > Admin > User.
func DashboardPath(roles []string) string {
	switch {
	case slices.Contains(roles, models.RoleSuperAdmin):
		return DashboardSuperAdmin
	case slices.Contains(roles, models.RoleAdmin):
		return DashboardAdmin
	default:
		return DashboardUser
	}
}

// publishCreated отправляет событие о созданной записи, ошибки публикации
// только логируются и не влияют на результат операции.
func (s *AccountService) publishCreated(uid, email, role string) {
	if s.events == nil {
		return
	}
	event := rabbitmq.AccountEvent{
		UserUID:   uid,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.events.PublishAccountCreated(event); err != nil {
		s.log.Error("failed to publish account.created event", sl.Err(err))
	}
}
