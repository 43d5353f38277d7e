package department

import (
	"time"

	"go-hrms/internal/audit"

	"github.com/google/uuid"
)

type Department struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(200);not null;uniqueIndex:uq_departments_name"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;default:true"`
	IsDeleted   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Department) TableName() string {
	return "departments"
}

func (d Department) AuditTable() string { return "departments" }

func (d Department) AuditKey() string { return d.ID.String() }

func (d Department) AuditSnapshot() audit.Snapshot {
	return audit.Snapshot{
		"id":          d.ID,
		"name":        d.Name,
		"description": d.Description,
		"is_active":   d.IsActive,
		"is_deleted":  d.IsDeleted,
	}
}
