package employee

import (
	"time"

	"go-hrms/internal/audit"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeCode string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_code"`
	FullName     string     `gorm:"type:varchar(200);not null"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_employees_email"`
	Phone        string     `gorm:"type:varchar(30)"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	ManagerID    *uuid.UUID `gorm:"type:uuid;index"`
	Designation  string     `gorm:"type:varchar(100)"`
	Region       string     `gorm:"type:varchar(64);index"`
	JoiningDate  time.Time  `gorm:"type:date;not null"`
	IsActive     bool       `gorm:"not null;default:true"`
	IsDeleted    bool       `gorm:"not null;default:false"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) AuditTable() string { return "employees" }

func (e Employee) AuditKey() string { return e.ID.String() }

func (e Employee) AuditSnapshot() audit.Snapshot {
	return audit.Snapshot{
		"id":            e.ID,
		"employee_code": e.EmployeeCode,
		"full_name":     e.FullName,
		"email":         e.Email,
		"phone":         e.Phone,
		"department_id": e.DepartmentID,
		"manager_id":    e.ManagerID,
		"designation":   e.Designation,
		"region":        e.Region,
		"joining_date":  e.JoiningDate,
		"is_active":     e.IsActive,
		"is_deleted":    e.IsDeleted,
	}
}
