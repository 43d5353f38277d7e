package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/auth"
	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/user"
	userMock "go-hrms/internal/user/mock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func tokenConfig() auth.TokenConfig {
	return auth.TokenConfig{Secret: testSecret, AccessTTL: time.Minute, RefreshTTL: time.Hour}
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	assert.NoError(t, err)
	return parsed.Claims.(jwt.MapClaims)
}

func newUser(t *testing.T, password, role string) *user.User {
	t.Helper()
	u, err := user.NewUser(uuid.New(), "admin@example.com", password, role)
	assert.NoError(t, err)
	return u
}

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := userMock.NewMockRepository(ctrl)
	service := auth.NewService(repo, tokenConfig())
	ctx := context.Background()

	u := newUser(t, "password123", "manager")

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().FindByEmail(ctx, u.Email).Return(u, nil)

		access, refresh, resp, err := service.Login(ctx, u.Email, "password123")

		assert.NoError(t, err)
		assert.Equal(t, u.Email, resp.Email)
		assert.Equal(t, "manager", resp.Role)

		claims := parseClaims(t, access)
		assert.Equal(t, u.ID.String(), claims["user_id"])
		assert.Equal(t, u.EmployeeID.String(), claims["employee_id"])
		assert.Equal(t, "manager", claims["role"])
		assert.Equal(t, "access", claims["typ"])
		assert.Equal(t, "refresh", parseClaims(t, refresh)["typ"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		repo.EXPECT().FindByEmail(ctx, u.Email).Return(u, nil)

		_, _, _, err := service.Login(ctx, u.Email, "wrongpass")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		repo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, _, _, err := service.Login(ctx, "ghost@example.com", "password123")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative inactive user", func(t *testing.T) {
		inactive := newUser(t, "password123", "")
		inactive.IsActive = false
		repo.EXPECT().FindByEmail(ctx, inactive.Email).Return(inactive, nil)

		_, _, _, err := service.Login(ctx, inactive.Email, "password123")

		assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
	})

	t.Run("negative repository failure is not masked", func(t *testing.T) {
		boom := errors.New("db down")
		repo.EXPECT().FindByEmail(ctx, u.Email).Return(nil, boom)

		_, _, _, err := service.Login(ctx, u.Email, "password123")

		assert.ErrorIs(t, err, boom)
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := userMock.NewMockRepository(ctrl)
	service := auth.NewService(repo, tokenConfig())
	ctx := context.Background()

	u := newUser(t, "password123", "employee")
	repo.EXPECT().FindByEmail(ctx, u.Email).Return(u, nil)
	access, refresh, _, err := service.Login(ctx, u.Email, "password123")
	assert.NoError(t, err)

	t.Run("success picks up role change", func(t *testing.T) {
		promoted := *u
		promoted.Role = "manager"
		repo.EXPECT().FindByID(ctx, u.ID).Return(&promoted, nil)

		newAccess, _, resp, err := service.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.Equal(t, "manager", resp.Role)
		assert.Equal(t, "manager", parseClaims(t, newAccess)["role"])
	})

	t.Run("negative access token rejected", func(t *testing.T) {
		_, _, _, err := service.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		_, _, _, err := service.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative user deleted", func(t *testing.T) {
		repo.EXPECT().FindByID(ctx, u.ID).Return(nil, gorm.ErrRecordNotFound)

		_, _, _, err := service.RefreshToken(ctx, refresh)

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative user deactivated", func(t *testing.T) {
		inactive := *u
		inactive.IsActive = false
		repo.EXPECT().FindByID(ctx, u.ID).Return(&inactive, nil)

		_, _, _, err := service.RefreshToken(ctx, refresh)

		assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
	})
}
