package calendarerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var ErrRangeTooLong = apperror.New(
	apperror.CodeInvalidInput,
	"date range must not exceed 366 days",
	http.StatusBadRequest,
)
