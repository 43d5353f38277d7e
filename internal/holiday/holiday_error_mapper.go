package holiday

import (
	"errors"
	"strings"

	holidayerrors "go-hrms/internal/holiday/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueDateRegion = "uq_holidays_date_region"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return holidayerrors.ErrHolidayNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return holidayerrors.ErrDuplicateHoliday
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == uniqueDateRegion {
		return holidayerrors.ErrDuplicateHoliday
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueDateRegion) {
		return holidayerrors.ErrDuplicateHoliday
	}

	return err
}
