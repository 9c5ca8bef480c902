package productmanagement

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/product-management/internal/config"
	"github.com/magabrotheeeer/product-management/internal/models"
	superadminservice "github.com/magabrotheeeer/product-management/internal/services/superadmin"
	"github.com/magabrotheeeer/product-management/internal/storage/repository"
)

type SeedRepoMock struct {
	mock.Mock
}

func (m *SeedRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *SeedRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *SeedRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *SeedRepoMock) UpdateUser(ctx context.Context, user models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

func (m *SeedRepoMock) DeleteUser(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func (m *SeedRepoMock) ListUsersInRole(ctx context.Context, role string) ([]*models.User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *SeedRepoMock) GetUserRoles(ctx context.Context, userUID string) ([]string, error) {
	args := m.Called(ctx, userUID)
	roles, _ := args.Get(0).([]string)
	return roles, args.Error(1)
}

func (m *SeedRepoMock) AddUserToRole(ctx context.Context, userUID, role string) error {
	args := m.Called(ctx, userUID, role)
	return args.Error(0)
}

func (m *SeedRepoMock) ReplaceUserRoles(ctx context.Context, userUID, role string) error {
	args := m.Called(ctx, userUID, role)
	return args.Error(0)
}

func (m *SeedRepoMock) ListRoleNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSeedSuperAdmin_EmptyEmailDisablesSeeding(t *testing.T) {
	repoMock := new(SeedRepoMock)
	svc := superadminservice.NewSuperAdminService(repoMock, nil, newNoopLogger())

	err := seedSuperAdmin(context.Background(), config.SeedSuperAdmin{}, repoMock, svc, newNoopLogger())
	require.NoError(t, err)

	repoMock.AssertNotCalled(t, "GetUserByEmail")
}

func TestSeedSuperAdmin_CreatesAccountWithRole(t *testing.T) {
	repoMock := new(SeedRepoMock)
	svc := superadminservice.NewSuperAdminService(repoMock, nil, newNoopLogger())

	cfg := config.SeedSuperAdmin{SeedEmail: "root@example.com", SeedPassword: "password123"}

	repoMock.On("GetUserByEmail", mock.Anything, cfg.SeedEmail).
		Return(nil, repository.ErrAccountNotFound).Once()
	repoMock.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		return user.Email == cfg.SeedEmail && user.PasswordHash != ""
	})).Return("uid-1", nil).Once()
	repoMock.On("AddUserToRole", mock.Anything, "uid-1", models.RoleSuperAdmin).
		Return(nil).Once()

	err := seedSuperAdmin(context.Background(), cfg, repoMock, svc, newNoopLogger())
	require.NoError(t, err)

	repoMock.AssertExpectations(t)
}

func TestSeedSuperAdmin_ExistingAccountUntouched(t *testing.T) {
	repoMock := new(SeedRepoMock)
	svc := superadminservice.NewSuperAdminService(repoMock, nil, newNoopLogger())

	cfg := config.SeedSuperAdmin{SeedEmail: "root@example.com", SeedPassword: "password123"}

	repoMock.On("GetUserByEmail", mock.Anything, cfg.SeedEmail).
		Return(&models.User{UID: "uid-1", Email: cfg.SeedEmail}, nil).Once()
	repoMock.On("GetUserRoles", mock.Anything, "uid-1").
		Return([]string{models.RoleSuperAdmin}, nil).Once()

	err := seedSuperAdmin(context.Background(), cfg, repoMock, svc, newNoopLogger())
	require.NoError(t, err)

	repoMock.AssertExpectations(t)
	repoMock.AssertNotCalled(t, "CreateUser")
	repoMock.AssertNotCalled(t, "AddUserToRole")
}

func TestSeedSuperAdmin_RestoresMissingRole(t *testing.T) {
	repoMock := new(SeedRepoMock)
	svc := superadminservice.NewSuperAdminService(repoMock, nil, newNoopLogger())

	cfg := config.SeedSuperAdmin{SeedEmail: "root@example.com", SeedPassword: "password123"}

	// Запись существует, но роль SuperAdmin с неё сняли
	repoMock.On("GetUserByEmail", mock.Anything, cfg.SeedEmail).
		Return(&models.User{UID: "uid-1", Email: cfg.SeedEmail}, nil).Once()
	repoMock.On("GetUserRoles", mock.Anything, "uid-1").
		Return([]string{models.RoleUser}, nil).Once()
	repoMock.On("AddUserToRole", mock.Anything, "uid-1", models.RoleSuperAdmin).
		Return(nil).Once()

	err := seedSuperAdmin(context.Background(), cfg, repoMock, svc, newNoopLogger())
	require.NoError(t, err)

	repoMock.AssertExpectations(t)
	repoMock.AssertNotCalled(t, "CreateUser")
}
