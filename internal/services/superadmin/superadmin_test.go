package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/product-management/internal/models"
	"github.com/magabrotheeeer/product-management/internal/rabbitmq"
	"github.com/magabrotheeeer/product-management/internal/storage/repository"
)

type AccountsMock struct{ mock.Mock }

func (m *AccountsMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *AccountsMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *AccountsMock) UpdateUser(ctx context.Context, user models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}
func (m *AccountsMock) DeleteUser(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}
func (m *AccountsMock) ListUsersInRole(ctx context.Context, role string) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *AccountsMock) GetUserRoles(ctx context.Context, userUID string) ([]string, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *AccountsMock) AddUserToRole(ctx context.Context, userUID, role string) error {
	args := m.Called(ctx, userUID, role)
	return args.Error(0)
}
func (m *AccountsMock) ReplaceUserRoles(ctx context.Context, userUID, role string) error {
	args := m.Called(ctx, userUID, role)
	return args.Error(0)
}
func (m *AccountsMock) ListRoleNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type EventsMock struct{ mock.Mock }

func (m *EventsMock) PublishAccountCreated(event rabbitmq.AccountEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAddAdmin(t *testing.T) {
	accounts := new(AccountsMock)
	events := new(EventsMock)

	accounts.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "admin@example.com" && u.FirstName == "Ad" && u.LastName == "Min"
	})).Return("uid-admin", nil).Once()
	accounts.On("AddUserToRole", mock.Anything, "uid-admin", models.RoleAdmin).Return(nil).Once()
	events.On("PublishAccountCreated", mock.MatchedBy(func(e rabbitmq.AccountEvent) bool {
		return e.Role == models.RoleAdmin && e.UserUID == "uid-admin"
	})).Return(nil).Once()

	service := NewSuperAdminService(accounts, events, newNoopLogger())
	uid, err := service.AddAdmin(context.Background(), "admin@example.com", "Ad", "Min", "password123", models.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, "uid-admin", uid)
	accounts.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestAddAdmin_RoleAssignFails(t *testing.T) {
	accounts := new(AccountsMock)

	accounts.On("CreateUser", mock.Anything, mock.Anything).Return("uid-admin", nil).Once()
	accounts.On("AddUserToRole", mock.Anything, "uid-admin", models.RoleAdmin).
		Return(errors.New("role does not exist")).Once()

	service := NewSuperAdminService(accounts, nil, newNoopLogger())
	_, err := service.AddAdmin(context.Background(), "admin@example.com", "Ad", "Min", "password123", models.RoleAdmin)

	// Частичное применение: запись создана, роль не назначена — ошибка видна вызывающему
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account created without role")
}

func TestEditAccount_CollapsesRoleSet(t *testing.T) {
	accounts := new(AccountsMock)
	user := &models.User{UID: "uid-1", Email: "old@example.com", FirstName: "Old", LastName: "Name"}

	accounts.On("GetUser", mock.Anything, "uid-1").Return(user, nil).Once()
	// Запись состоит в двух ролях, редактируется на третью
	accounts.On("GetUserRoles", mock.Anything, "uid-1").Return([]string{"Admin", "User"}, nil).Once()
	accounts.On("ReplaceUserRoles", mock.Anything, "uid-1", "SuperAdmin").Return(nil).Once()
	accounts.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "new@example.com" && u.FirstName == "New" && u.LastName == "Name"
	})).Return(1, nil).Once()

	service := NewSuperAdminService(accounts, nil, newNoopLogger())
	err := service.EditAccount(context.Background(), "uid-1", "new@example.com", "New", "Name", "SuperAdmin")

	require.NoError(t, err)
	accounts.AssertExpectations(t)
}

func TestEditAccount_RoleUnchangedKeepsMembership(t *testing.T) {
	accounts := new(AccountsMock)
	user := &models.User{UID: "uid-1", Email: "old@example.com"}

	accounts.On("GetUser", mock.Anything, "uid-1").Return(user, nil).Once()
	accounts.On("GetUserRoles", mock.Anything, "uid-1").Return([]string{"Admin"}, nil).Once()
	accounts.On("UpdateUser", mock.Anything, mock.Anything).Return(1, nil).Once()

	service := NewSuperAdminService(accounts, nil, newNoopLogger())
	err := service.EditAccount(context.Background(), "uid-1", "new@example.com", "New", "Name", "Admin")

	require.NoError(t, err)
	accounts.AssertNotCalled(t, "ReplaceUserRoles", mock.Anything, mock.Anything, mock.Anything)
}

func TestEditAccount_NotFound(t *testing.T) {
	accounts := new(AccountsMock)
	accounts.On("GetUser", mock.Anything, "ghost").
		Return(nil, repository.ErrAccountNotFound).Once()

	service := NewSuperAdminService(accounts, nil, newNoopLogger())
	err := service.EditAccount(context.Background(), "ghost", "a@b.c", "A", "B", "Admin")

	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
	accounts.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestDeleteAccount(t *testing.T) {
	accounts := new(AccountsMock)
	accounts.On("GetUser", mock.Anything, "uid-1").
		Return(&models.User{UID: "uid-1"}, nil).Once()
	accounts.On("DeleteUser", mock.Anything, "uid-1").Return(1, nil).Once()

	service := NewSuperAdminService(accounts, nil, newNoopLogger())
	require.NoError(t, service.DeleteAccount(context.Background(), "uid-1"))
	accounts.AssertExpectations(t)
}

func TestDeleteAccount_NotFound(t *testing.T) {
	accounts := new(AccountsMock)
	accounts.On("GetUser", mock.Anything, "ghost").
		Return(nil, repository.ErrAccountNotFound).Once()

	service := NewSuperAdminService(accounts, nil, newNoopLogger())
	err := service.DeleteAccount(context.Background(), "ghost")

	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
	accounts.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}

func TestListAccountsInRole(t *testing.T) {
	accounts := new(AccountsMock)
	users := []*models.User{
		{UID: "uid-1", Email: "a@example.com", FirstName: "A", LastName: "One"},
		{UID: "uid-2", Email: "b@example.com", FirstName: "B", LastName: "Two"},
	}

	accounts.On("ListUsersInRole", mock.Anything, "Admin").Return(users, nil).Once()
	accounts.On("GetUserRoles", mock.Anything, "uid-1").Return([]string{"Admin", "User"}, nil).Once()
	// Запись с нечитаемыми ролями выпадает из списка
	accounts.On("GetUserRoles", mock.Anything, "uid-2").Return(nil, errors.New("broken")).Once()

	service := NewSuperAdminService(accounts, nil, newNoopLogger())
	got, err := service.ListAccountsInRole(context.Background(), "Admin")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "uid-1", got[0].ID)
	assert.Equal(t, "Admin, User", got[0].Roles)
}

func TestGetAccountByID(t *testing.T) {
	accounts := new(AccountsMock)
	accounts.On("GetUser", mock.Anything, "uid-1").
		Return(&models.User{UID: "uid-1", Email: "a@example.com"}, nil).Once()
	accounts.On("GetUserRoles", mock.Anything, "uid-1").Return([]string{"Admin"}, nil).Once()

	service := NewSuperAdminService(accounts, nil, newNoopLogger())
	info, err := service.GetAccountByID(context.Background(), "uid-1")

	require.NoError(t, err)
	assert.Equal(t, "a@example.com", info.Email)
	assert.Equal(t, "Admin", info.Roles)
}

func TestListRoleNames(t *testing.T) {
	accounts := new(AccountsMock)
	accounts.On("ListRoleNames", mock.Anything).
		Return([]string{"Admin", "SuperAdmin", "User"}, nil).Once()

	service := NewSuperAdminService(accounts, nil, newNoopLogger())
	names, err := service.ListRoleNames(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Admin", "SuperAdmin", "User"}, names)
}
