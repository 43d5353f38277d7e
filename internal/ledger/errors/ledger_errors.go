package ledgererrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrBalanceMissing = apperror.New(
		apperror.CodeIntegrityFault,
		"leave balance row missing for employee and leave type",
		http.StatusInternalServerError,
	)
	ErrUsedBelowZero = apperror.New(
		apperror.CodeIntegrityFault,
		"leave balance adjustment would make used leaves negative",
		http.StatusInternalServerError,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"leave_type must be one of SICK, CASUAL, EARNED, UNPAID",
		http.StatusBadRequest,
	)
	ErrNonPositiveAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidInput,
		"insufficient leave balance",
		http.StatusBadRequest,
	)
	ErrBalanceNotVisible = apperror.New(
		apperror.CodeForbidden,
		"you can only view your own balances or those of your direct reports",
		http.StatusForbidden,
	)
)
