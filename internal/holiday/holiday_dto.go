package holiday

import (
	"time"

	"go-hrms/internal/calendar"
)

type CreateHolidayRequest struct {
	Date         string `json:"date" binding:"required"`
	Name         string `json:"name" binding:"required,max=200"`
	Description  string `json:"description"`
	IsRecurring  bool   `json:"is_recurring"`
	Region       string `json:"region" binding:"max=100"`
	IsWorkingDay bool   `json:"is_working_day"`
}

type UpdateHolidayRequest struct {
	Date         *string `json:"date"`
	Name         *string `json:"name" binding:"omitempty,max=200"`
	Description  *string `json:"description"`
	IsRecurring  *bool   `json:"is_recurring"`
	Region       *string `json:"region" binding:"omitempty,max=100"`
	IsWorkingDay *bool   `json:"is_working_day"`
	IsActive     *bool   `json:"is_active"`
}

type ListHolidaysQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Region    string `form:"region"`
}

// Items are validated one by one in the service so a bad entry does not
// reject the whole batch.
type BulkCreateRequest struct {
	Holidays []CreateHolidayRequest `json:"holidays" binding:"required"`
}

type HolidayResponse struct {
	ID               string    `json:"id"`
	Date             string    `json:"date"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	IsRecurring      bool      `json:"is_recurring"`
	RecurringGroupID *string   `json:"recurring_group_id"`
	Region           string    `json:"region"`
	IsWorkingDay     bool      `json:"is_working_day"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

type SkippedHoliday struct {
	Index int                  `json:"index"`
	Data  CreateHolidayRequest `json:"data"`
	Error string               `json:"error"`
}

type BulkCreateResponse struct {
	TotalSubmitted  int               `json:"total_submitted"`
	CreatedCount    int               `json:"created_count"`
	SkippedCount    int               `json:"skipped_count"`
	CreatedHolidays []HolidayResponse `json:"created_holidays"`
	SkippedHolidays []SkippedHoliday  `json:"skipped_holidays"`
}

type ExtractResponse struct {
	UploadID   string                 `json:"upload_id"`
	Status     string                 `json:"status"`
	ImagePath  string                 `json:"image_path"`
	Holidays   []CreateHolidayRequest `json:"extracted_holidays"`
	TotalCount int                    `json:"total_count"`
	Errors     []SkippedHoliday       `json:"validation_errors"`
}

func toHolidayResponse(h Holiday) HolidayResponse {
	var group *string
	if h.RecurringGroupID != nil {
		g := h.RecurringGroupID.String()
		group = &g
	}
	return HolidayResponse{
		ID:               h.ID.String(),
		Date:             h.Date.Format(calendar.DateLayout),
		Name:             h.Name,
		Description:      h.Description,
		IsRecurring:      h.IsRecurring,
		RecurringGroupID: group,
		Region:           h.Region,
		IsWorkingDay:     h.IsWorkingDay,
		IsActive:         h.IsActive,
		CreatedAt:        h.CreatedAt,
	}
}
