package user

import (
	"errors"
	"strings"

	usererrors "go-hrms/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapRepositoryError translates persistence errors into user sentinels.
// Employee onboarding uses it for the user row it creates.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_users_email":
			return usererrors.ErrUserAlreadyExists
		case "uq_users_employee":
			return usererrors.ErrEmployeeHasUser
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_users_email") {
			return usererrors.ErrUserAlreadyExists
		}
		if strings.Contains(errMsg, "uq_users_employee") {
			return usererrors.ErrEmployeeHasUser
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usererrors.ErrUserAlreadyExists
	}

	return err
}
