package auditerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrAuditImmutable = apperror.New(
		apperror.CodeForbidden,
		"audit log entries cannot be modified or deleted",
		http.StatusForbidden,
	)
	ErrAuditNotFound = apperror.New(
		apperror.CodeNotFound,
		"audit log not found",
		http.StatusNotFound,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be one of CREATE, UPDATE, DELETE, HARD_DELETE",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must not be after to",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
)
