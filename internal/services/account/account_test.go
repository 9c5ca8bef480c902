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

	"github.com/magabrotheeeer/product-management/internal/lib/password"
	"github.com/magabrotheeeer/product-management/internal/models"
	"github.com/magabrotheeeer/product-management/internal/rabbitmq"
	"github.com/magabrotheeeer/product-management/internal/storage/repository"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *UsersMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UsersMock) GetUserRoles(ctx context.Context, userUID string) ([]string, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *UsersMock) AddUserToRole(ctx context.Context, userUID, role string) error {
	args := m.Called(ctx, userUID, role)
	return args.Error(0)
}

type EventsMock struct{ mock.Mock }

func (m *EventsMock) PublishAccountCreated(event rabbitmq.AccountEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLogin(t *testing.T) {
	hash, err := password.GetHash("correct_password")
	require.NoError(t, err)

	user := &models.User{
		UID:          "uid-1",
		Email:        "user@example.com",
		PasswordHash: hash,
	}

	tests := []struct {
		name      string
		email     string
		pass      string
		mockUser  *models.User
		mockErr   error
		roles     []string
		wantErr   error
		wantRoles []string
	}{
		{
			name:      "valid credentials",
			email:     "user@example.com",
			pass:      "correct_password",
			mockUser:  user,
			roles:     []string{"User"},
			wantRoles: []string{"User"},
		},
		{
			name:     "wrong password",
			email:    "user@example.com",
			pass:     "wrong_password",
			mockUser: user,
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:    "unknown account",
			email:   "ghost@example.com",
			pass:    "whatever",
			mockErr: repository.ErrAccountNotFound,
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			users.On("GetUserByEmail", mock.Anything, tt.email).Return(tt.mockUser, tt.mockErr).Once()
			if tt.wantErr == nil {
				users.On("GetUserRoles", mock.Anything, tt.mockUser.UID).Return(tt.roles, nil).Once()
			}

			service := NewAccountService(users, nil, newNoopLogger())
			got, roles, err := service.Login(context.Background(), tt.email, tt.pass)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.mockUser.Email, got.Email)
			assert.Equal(t, tt.wantRoles, roles)
			users.AssertExpectations(t)
		})
	}
}

func TestRegister_AssignsDefaultRole(t *testing.T) {
	users := new(UsersMock)
	events := new(EventsMock)

	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "new@example.com" && u.UID != "" && u.PasswordHash != ""
	})).Return("uid-new", nil).Once()
	users.On("AddUserToRole", mock.Anything, "uid-new", models.RoleUser).Return(nil).Once()
	events.On("PublishAccountCreated", mock.MatchedBy(func(e rabbitmq.AccountEvent) bool {
		return e.Email == "new@example.com" && e.Role == models.RoleUser
	})).Return(nil).Once()

	service := NewAccountService(users, events, newNoopLogger())
	uid, err := service.Register(context.Background(), "new@example.com", "password123", "New", "User")

	require.NoError(t, err)
	assert.Equal(t, "uid-new", uid)
	users.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestRegister_CreateFails_NoRoleAssigned(t *testing.T) {
	users := new(UsersMock)
	users.On("CreateUser", mock.Anything, mock.Anything).
		Return("", errors.New("password rejected")).Once()

	service := NewAccountService(users, nil, newNoopLogger())
	_, err := service.Register(context.Background(), "new@example.com", "short", "New", "User")

	require.Error(t, err)
	users.AssertNotCalled(t, "AddUserToRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_PublishFailureDoesNotFailRegistration(t *testing.T) {
	users := new(UsersMock)
	events := new(EventsMock)

	users.On("CreateUser", mock.Anything, mock.Anything).Return("uid-new", nil).Once()
	users.On("AddUserToRole", mock.Anything, "uid-new", models.RoleUser).Return(nil).Once()
	events.On("PublishAccountCreated", mock.Anything).
		Return(errors.New("broker unavailable")).Once()

	service := NewAccountService(users, events, newNoopLogger())
	uid, err := service.Register(context.Background(), "new@example.com", "password123", "New", "User")

	require.NoError(t, err)
	assert.Equal(t, "uid-new", uid)
}

func TestGetRoles_MissingAccountReturnsEmpty(t *testing.T) {
	users := new(UsersMock)
	users.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, repository.ErrAccountNotFound).Once()

	service := NewAccountService(users, nil, newNoopLogger())
	roles, err := service.GetRoles(context.Background(), "ghost@example.com")

	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestDashboardPath(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  string
	}{
		{name: "superadmin only", roles: []string{"SuperAdmin"}, want: DashboardSuperAdmin},
		{name: "admin only", roles: []string{"Admin"}, want: DashboardAdmin},
		{name: "user only", roles: []string{"User"}, want: DashboardUser},
		{name: "superadmin wins over admin", roles: []string{"Admin", "SuperAdmin"}, want: DashboardSuperAdmin},
		{name: "admin wins over user", roles: []string{"User", "Admin"}, want: DashboardAdmin},
		{name: "no roles falls back to user", roles: nil, want: DashboardUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DashboardPath(tt.roles))
		})
	}
}
