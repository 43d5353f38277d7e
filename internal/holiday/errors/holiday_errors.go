package holidayerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"holiday not found",
		http.StatusNotFound,
	)
	ErrDuplicateHoliday = apperror.New(
		apperror.CodeConflict,
		"duplicate holiday for this date and region",
		http.StatusConflict,
	)
	ErrNameTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"holiday name must be at least 3 characters",
		http.StatusBadRequest,
	)
	ErrRecurringNeedsName = apperror.New(
		apperror.CodeInvalidInput,
		"recurring holiday must have a name",
		http.StatusBadRequest,
	)
	ErrDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"cannot create a holiday in the past",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"date must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidHolidayID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid holiday id",
		http.StatusBadRequest,
	)
	ErrEmptyBatch = apperror.New(
		apperror.CodeInvalidInput,
		"holidays must contain at least one entry",
		http.StatusBadRequest,
	)
	ErrUnsupportedImage = apperror.New(
		apperror.CodeInvalidInput,
		"file must be a PNG, JPEG or WEBP image",
		http.StatusBadRequest,
	)
	ErrUnreadableImage = apperror.New(
		apperror.CodeInvalidInput,
		"image could not be decoded",
		http.StatusBadRequest,
	)
	ErrImageTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"image exceeds the upload size limit",
		http.StatusBadRequest,
	)
	ErrExtractionFailed = apperror.New(
		apperror.CodeExternalFailure,
		"holiday extraction failed",
		http.StatusBadGateway,
	)
	ErrExtractorUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"holiday extraction is not configured",
		http.StatusServiceUnavailable,
	)
)
