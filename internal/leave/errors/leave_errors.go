package leaveerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeForbidden,
		"caller has no employee profile",
		http.StatusForbidden,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"leave_type must be one of SICK, CASUAL, EARNED, UNPAID",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrStartNotInFuture = apperror.New(
		apperror.CodeInvalidInput,
		"full-day leave must start in the future",
		http.StatusBadRequest,
	)
	ErrHalfDayInPast = apperror.New(
		apperror.CodeInvalidInput,
		"half-day leave cannot be in the past",
		http.StatusBadRequest,
	)
	ErrWeekendBoundary = apperror.New(
		apperror.CodeInvalidInput,
		"leave cannot start or end on a weekend",
		http.StatusBadRequest,
	)
	ErrHalfDaySpan = apperror.New(
		apperror.CodeInvalidInput,
		"half-day leave must start and end on the same day",
		http.StatusBadRequest,
	)
	ErrHalfDayPeriodRequired = apperror.New(
		apperror.CodeInvalidInput,
		"half_day_period is required for half-day leave",
		http.StatusBadRequest,
	)
	ErrHalfDayPeriodNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"half_day_period is only allowed for half-day leave",
		http.StatusBadRequest,
	)
	ErrLeaveTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"a leave request cannot span more than 366 days",
		http.StatusBadRequest,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"the requested period has no working days",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidInput,
		"insufficient leave balance",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid leave status transition",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required when rejecting",
		http.StatusBadRequest,
	)
	ErrNotAuthorizedToAct = apperror.New(
		apperror.CodeForbidden,
		"only the employee's manager or an admin can act on this request",
		http.StatusForbidden,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requesting employee can change this request",
		http.StatusForbidden,
	)
	ErrNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"only pending requests that have not started can be edited",
		http.StatusBadRequest,
	)
	ErrHardDeleteAdminOnly = apperror.New(
		apperror.CodeForbidden,
		"only an admin can delete a leave request",
		http.StatusForbidden,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of PENDING, APPROVED, REJECTED, CANCELLED or all",
		http.StatusBadRequest,
	)
)
