package holiday

import (
	"time"

	"go-hrms/internal/audit"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Holiday is one dated entry of the company calendar. A blank Region applies
// to every region. Rows in the same recurring series share RecurringGroupID.
type Holiday struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date             time.Time  `gorm:"type:date;not null;uniqueIndex:uq_holidays_date_region,priority:1,where:is_deleted = false"`
	Name             string     `gorm:"type:varchar(200);not null"`
	Description      string     `gorm:"type:text"`
	IsRecurring      bool       `gorm:"not null;default:false"`
	RecurringGroupID *uuid.UUID `gorm:"type:uuid;index"`
	Region           string     `gorm:"type:varchar(100);not null;default:'';uniqueIndex:uq_holidays_date_region,priority:2,where:is_deleted = false"`
	IsWorkingDay     bool       `gorm:"not null;default:false"`
	IsActive         bool       `gorm:"not null;default:true"`
	IsDeleted        bool       `gorm:"not null;default:false"`
	CreatedBy        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Holiday) TableName() string {
	return "holidays"
}

func (h Holiday) AuditTable() string { return "holidays" }

func (h Holiday) AuditKey() string { return h.ID.String() }

func (h Holiday) AuditSnapshot() audit.Snapshot {
	return audit.Snapshot{
		"id":                 h.ID,
		"date":               h.Date,
		"name":               h.Name,
		"description":        h.Description,
		"is_recurring":       h.IsRecurring,
		"recurring_group_id": h.RecurringGroupID,
		"region":             h.Region,
		"is_working_day":     h.IsWorkingDay,
		"is_active":          h.IsActive,
		"is_deleted":         h.IsDeleted,
	}
}

const (
	ExtractionPending = "PENDING"
	ExtractionSuccess = "SUCCESS"
	ExtractionFailed  = "FAILED"
)

// HolidayUpload tracks one OCR attempt on an uploaded calendar image.
type HolidayUpload struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UploadedBy       *uuid.UUID     `gorm:"type:uuid"`
	ImagePath        string         `gorm:"type:varchar(255);not null"`
	ExtractedData    datatypes.JSON `gorm:"type:jsonb"`
	ExtractionStatus string         `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ErrorMessage     string         `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (HolidayUpload) TableName() string {
	return "holiday_uploads"
}

func (u HolidayUpload) AuditTable() string { return "holiday_uploads" }

func (u HolidayUpload) AuditKey() string { return u.ID.String() }

func (u HolidayUpload) AuditSnapshot() audit.Snapshot {
	return audit.Snapshot{
		"id":                u.ID,
		"uploaded_by":       u.UploadedBy,
		"image_path":        u.ImagePath,
		"extraction_status": u.ExtractionStatus,
		"error_message":     u.ErrorMessage,
	}
}
