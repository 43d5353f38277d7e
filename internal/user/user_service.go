package user

import (
	"context"
	"database/sql"
	"strings"

	"go-hrms/internal/audit"
	"go-hrms/internal/rbac"
	"go-hrms/internal/shared/contextutil"
	usererrors "go-hrms/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetMe(ctx context.Context) (UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	ResetPassword(ctx context.Context, id string, req ResetPasswordRequest) error
	UpdateStatus(ctx context.Context, id string, isActive bool) error
	UpdateRole(ctx context.Context, id string, role string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, recorder: recorder, logger: l}
}

// HashPassword returns the bcrypt hash stored in users.password_hash.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// NewUser builds an active user for employeeID with a hashed password.
// An empty role defaults to employee.
func NewUser(employeeID uuid.UUID, email, password, role string) (*User, error) {
	if role == "" {
		role = rbac.RoleEmployee
	}
	if !rbac.IsValidRole(role) {
		return nil, usererrors.ErrInvalidRole
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
	}, nil
}

func parseUserID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, usererrors.ErrInvalidUserID
	}
	return uid, nil
}

func (s *service) GetMe(ctx context.Context) (UserResponse, error) {
	meta := contextutil.GetRequestMeta(ctx)
	return s.GetByID(ctx, meta.UserID)
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	uid, err := parseUserID(id)
	if err != nil {
		return UserResponse{}, err
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, MapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	meta := contextutil.GetRequestMeta(ctx)
	s.logger.Debug("change password requested", zap.String("user_id", meta.UserID))

	uid, err := parseUserID(meta.UserID)
	if err != nil {
		return err
	}
	if req.CurrentPassword == req.NewPassword {
		return usererrors.ErrSamePassword
	}

	return s.mutate(ctx, uid, func(u *User) error {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			s.logger.Warn("change password rejected", zap.String("user_id", meta.UserID))
			return usererrors.ErrWrongPassword
		}
		hashed, err := HashPassword(req.NewPassword)
		if err != nil {
			return err
		}
		u.PasswordHash = hashed
		return nil
	})
}

func (s *service) ResetPassword(ctx context.Context, id string, req ResetPasswordRequest) error {
	uid, err := parseUserID(id)
	if err != nil {
		return err
	}
	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.mutate(ctx, uid, func(u *User) error {
		u.PasswordHash = hashed
		return nil
	})
}

func (s *service) UpdateStatus(ctx context.Context, id string, isActive bool) error {
	uid, err := parseUserID(id)
	if err != nil {
		return err
	}
	if contextutil.GetRequestMeta(ctx).UserID == uid.String() {
		return usererrors.ErrCannotChangeOwnAccount
	}
	return s.mutate(ctx, uid, func(u *User) error {
		u.IsActive = isActive
		return nil
	})
}

func (s *service) UpdateRole(ctx context.Context, id string, role string) error {
	uid, err := parseUserID(id)
	if err != nil {
		return err
	}
	if !rbac.IsValidRole(role) {
		return usererrors.ErrInvalidRole
	}
	if contextutil.GetRequestMeta(ctx).UserID == uid.String() {
		return usererrors.ErrCannotChangeOwnAccount
	}
	return s.mutate(ctx, uid, func(u *User) error {
		u.Role = role
		return nil
	})
}

// mutate loads the user, applies fn and persists the result with an audit
// entry in one transaction.
func (s *service) mutate(ctx context.Context, id uuid.UUID, fn func(u *User) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("user begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return MapRepositoryError(err)
	}
	before := *u

	if err := fn(u); err != nil {
		return err
	}

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("user update failed", zap.String("user_id", id.String()), zap.Error(err))
		return MapRepositoryError(err)
	}
	if err := s.recorder.WithTx(tx).RecordUpdate(ctx, before, *u); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("user commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("user updated", zap.String("user_id", id.String()))
	return nil
}
