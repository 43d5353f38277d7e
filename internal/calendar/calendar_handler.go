package calendar

import (
	"net/http"

	calendarerrors "go-hrms/internal/calendar/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WorkingDaysQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
	Region    string `form:"region"`
	IsHalfDay bool   `form:"is_half_day"`
}

type WorkingDaysResponse struct {
	StartDate        string     `json:"start_date"`
	EndDate          string     `json:"end_date"`
	Region           string     `json:"region"`
	WorkingDays      int        `json:"working_days"`
	Duration         float64    `json:"duration"`
	ExcludedHolidays []Excluded `json:"excluded_holidays"`
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("calendar.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) WorkingDays(c *gin.Context) {
	var q WorkingDaysQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	start, err := ParseDate(q.StartDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "start_date must be YYYY-MM-DD", nil)
		return
	}
	end, err := ParseDate(q.EndDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "end_date must be YYYY-MM-DD", nil)
		return
	}
	if end.Before(start) {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "end_date must not be before start_date", nil)
		return
	}
	if SpanDays(start, end) > MaxSpanDays {
		httpErr := apperror.ToHTTP(calendarerrors.ErrRangeTooLong)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	if q.IsHalfDay && !end.Equal(start) {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "half day requires start_date and end_date to be the same", nil)
		return
	}

	ctx := c.Request.Context()
	count, excluded, err := h.service.WorkingDays(ctx, start, end, q.Region)
	if err != nil {
		h.logger.Error("working days lookup failed", zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	duration := float64(count)
	if q.IsHalfDay {
		duration = HalfDay.InexactFloat64()
		excluded = []Excluded{}
	}

	response.Success(c, http.StatusOK, WorkingDaysResponse{
		StartDate:        q.StartDate,
		EndDate:          q.EndDate,
		Region:           q.Region,
		WorkingDays:      count,
		Duration:         duration,
		ExcludedHolidays: excluded,
	}, nil)
}
