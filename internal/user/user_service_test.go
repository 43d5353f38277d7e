package user_test

import (
	"context"
	"database/sql"
	"testing"

	auditmock "go-hrms/internal/audit/mock"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"
	userMock "go-hrms/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  user.Service
	repo     *userMock.MockRepository
	recorder *auditmock.MockRecorder
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := userMock.NewMockRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()
	recorder := auditmock.NewMockRecorder(ctrl)
	recorder.EXPECT().WithTx(gomock.Any()).Return(recorder).AnyTimes()

	return &serviceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  user.NewService(db, repo, recorder),
		repo:     repo,
		recorder: recorder,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func asUser(userID uuid.UUID, role string) context.Context {
	return contextutil.WithRequestMeta(context.Background(), contextutil.RequestMeta{
		UserID:  userID.String(),
		ActorID: uuid.NewString(),
		Role:    role,
	})
}

func existingUser(t *testing.T, password string) *user.User {
	t.Helper()
	u, err := user.NewUser(uuid.New(), "Jane@Example.com", password, "")
	assert.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	t.Run("defaults role and normalizes email", func(t *testing.T) {
		u, err := user.NewUser(uuid.New(), "  Jane@Example.COM ", "password123", "")

		assert.NoError(t, err)
		assert.Equal(t, "jane@example.com", u.Email)
		assert.Equal(t, "employee", u.Role)
		assert.True(t, u.IsActive)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))
	})

	t.Run("negative invalid role", func(t *testing.T) {
		_, err := user.NewUser(uuid.New(), "a@b.c", "password123", "owner")
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

func TestUserService_GetMe(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	t.Run("success", func(t *testing.T) {
		u := existingUser(t, "password123")
		ctx := asUser(u.ID, "employee")
		deps.repo.EXPECT().FindByID(ctx, u.ID).Return(u, nil)

		resp, err := deps.service.GetMe(ctx)

		assert.NoError(t, err)
		assert.Equal(t, u.ID.String(), resp.ID)
		assert.Equal(t, "jane@example.com", resp.Email)
	})

	t.Run("negative not found", func(t *testing.T) {
		id := uuid.New()
		ctx := asUser(id, "employee")
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetMe(ctx)

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("negative no identity", func(t *testing.T) {
		_, err := deps.service.GetMe(context.Background())
		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		u := existingUser(t, "old-password")
		ctx := asUser(u.ID, "employee")

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().FindByID(ctx, u.ID).Return(u, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, got *user.User) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("new-password")))
			return nil
		})
		deps.recorder.EXPECT().RecordUpdate(ctx, gomock.Any(), gomock.Any()).Return(nil)

		err := deps.service.ChangePassword(ctx, user.ChangePasswordRequest{
			CurrentPassword: "old-password",
			NewPassword:     "new-password",
		})

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative wrong current password", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		u := existingUser(t, "old-password")
		ctx := asUser(u.ID, "employee")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().FindByID(ctx, u.ID).Return(u, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		err := deps.service.ChangePassword(ctx, user.ChangePasswordRequest{
			CurrentPassword: "guess",
			NewPassword:     "new-password",
		})

		assert.ErrorIs(t, err, usererrors.ErrWrongPassword)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative same password", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		err := deps.service.ChangePassword(asUser(uuid.New(), "employee"), user.ChangePasswordRequest{
			CurrentPassword: "same-password",
			NewPassword:     "same-password",
		})

		assert.ErrorIs(t, err, usererrors.ErrSamePassword)
	})
}

func TestUserService_UpdateStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		u := existingUser(t, "password123")
		ctx := asUser(uuid.New(), "admin")

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().FindByID(ctx, u.ID).Return(u, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, got *user.User) error {
			assert.False(t, got.IsActive)
			return nil
		})
		deps.recorder.EXPECT().RecordUpdate(ctx, gomock.Any(), gomock.Any()).Return(nil)

		err := deps.service.UpdateStatus(ctx, u.ID.String(), false)

		assert.NoError(t, err)
	})

	t.Run("negative own account", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		err := deps.service.UpdateStatus(asUser(id, "admin"), id.String(), false)

		assert.ErrorIs(t, err, usererrors.ErrCannotChangeOwnAccount)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		err := deps.service.UpdateStatus(asUser(uuid.New(), "admin"), "nope", true)

		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})
}

func TestUserService_UpdateRole(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		u := existingUser(t, "password123")
		ctx := asUser(uuid.New(), "admin")

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().FindByID(ctx, u.ID).Return(u, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, got *user.User) error {
			assert.Equal(t, "manager", got.Role)
			return nil
		})
		deps.recorder.EXPECT().RecordUpdate(ctx, gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, deps.service.UpdateRole(ctx, u.ID.String(), "manager"))
	})

	t.Run("negative unknown role", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		err := deps.service.UpdateRole(asUser(uuid.New(), "admin"), uuid.NewString(), "owner")

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("negative user missing", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		ctx := asUser(uuid.New(), "admin")
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.UpdateRole(ctx, id.String(), "manager")

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}
