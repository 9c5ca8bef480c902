// Package services содержит бизнес-логику управления учётными записями
// с повышенными ролями: создание администраторов, редактирование и удаление
// записей, списки по ролям.
//
// Пары editAdmin/editUser и deleteAdmin/deleteUser исходной постановки
// схлопнуты в одну операцию над записью по ID: различие между "админом"
// и "пользователем" — только членство в роли, отдельной логики оно не несёт.
// Отказы провайдера не глотаются молча, а возвращаются вызывающему.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/product-management/internal/lib/password"
	"github.com/magabrotheeeer/product-management/internal/lib/sl"
	"github.com/magabrotheeeer/product-management/internal/models"
	"github.com/magabrotheeeer/product-management/internal/rabbitmq"
)

// AccountRepository определяет методы хранилища для управления учётными записями.
type AccountRepository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdateUser(ctx context.Context, user models.User) (int, error)
	DeleteUser(ctx context.Context, userUID string) (int, error)
	ListUsersInRole(ctx context.Context, role string) ([]*models.User, error)
	GetUserRoles(ctx context.Context, userUID string) ([]string, error)
	AddUserToRole(ctx context.Context, userUID, role string) error
	ReplaceUserRoles(ctx context.Context, userUID, role string) error
	ListRoleNames(ctx context.Context) ([]string, error)
}

// EventsPublisher публикует события жизненного цикла учётных записей.
type EventsPublisher interface {
	PublishAccountCreated(event rabbitmq.AccountEvent) error
}

// SuperAdminService реализует операции управления учётными записями.
type SuperAdminService struct {
	accounts AccountRepository
	events   EventsPublisher // nil, если публикация событий отключена
	log      *slog.Logger
}

// NewSuperAdminService создает новый экземпляр SuperAdminService.
func NewSuperAdminService(accounts AccountRepository, events EventsPublisher, log *slog.Logger) *SuperAdminService {
	return &SuperAdminService{
		accounts: accounts,
		events:   events,
		log:      log,
	}
}

// AddAdmin создает учётную запись и назначает ей указанную роль.
// При ошибке назначения роли запись остаётся без роли,
// ошибка возвращается вызывающему.
func (s *SuperAdminService) AddAdmin(ctx context.Context, email, firstName, lastName, rawPassword, role string) (string, error) {
	const op = "superadmin.AddAdmin"
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
	uid, err := s.accounts.CreateUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err = s.accounts.AddUserToRole(ctx, uid, role); err != nil {
		return "", fmt.Errorf("%s: account created without role: %w", op, err)
	}
	s.publishCreated(uid, email, role)
	return uid, nil
}

// EditAccount перезаписывает профиль записи по ID. Если новая роль не входит
// в текущий набор ролей, весь набор заменяется на единственную новую роль.
func (s *SuperAdminService) EditAccount(ctx context.Context, id, email, firstName, lastName, role string) error {
	const op = "superadmin.EditAccount"
	user, err := s.accounts.GetUser(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user.Email = email
	user.FirstName = firstName
	user.LastName = lastName

	currentRoles, err := s.accounts.GetUserRoles(ctx, user.UID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !slices.Contains(currentRoles, role) {
		if err = s.accounts.ReplaceUserRoles(ctx, user.UID, role); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if _, err = s.accounts.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteAccount удаляет учётную запись по ID.
func (s *SuperAdminService) DeleteAccount(ctx context.Context, id string) error {
	const op = "superadmin.DeleteAccount"
	if _, err := s.accounts.GetUser(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.accounts.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListAccountsInRole возвращает проекции учётных записей, состоящих в роли.
func (s *SuperAdminService) ListAccountsInRole(ctx context.Context, role string) ([]models.AccountInfo, error) {
	const op = "superadmin.ListAccountsInRole"
	users, err := s.accounts.ListUsersInRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result := make([]models.AccountInfo, 0, len(users))
	for _, user := range users {
		roles, err := s.accounts.GetUserRoles(ctx, user.UID)
		if err != nil {
			// Запись без читаемых ролей выпадает из списка
			s.log.Error("failed to load roles for account", slog.String("uid", user.UID), sl.Err(err))
			continue
		}
		result = append(result, projectAccount(user, roles))
	}
	return result, nil
}

// GetAccountByID возвращает проекцию учётной записи по ID.
func (s *SuperAdminService) GetAccountByID(ctx context.Context, id string) (*models.AccountInfo, error) {
	const op = "superadmin.GetAccountByID"
	user, err := s.accounts.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	roles, err := s.accounts.GetUserRoles(ctx, user.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	info := projectAccount(user, roles)
	return &info, nil
}

// ListRoleNames возвращает имена всех известных ролей.
func (s *SuperAdminService) ListRoleNames(ctx context.Context) ([]string, error) {
	const op = "superadmin.ListRoleNames"
	names, err := s.accounts.ListRoleNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return names, nil
}

func projectAccount(user *models.User, roles []string) models.AccountInfo {
	return models.AccountInfo{
		ID:        user.UID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     strings.Join(roles, ", "),
	}
}

func (s *SuperAdminService) publishCreated(uid, email, role string) {
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
