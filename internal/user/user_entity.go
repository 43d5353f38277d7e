package user

import (
	"time"

	"go-hrms/internal/audit"

	"github.com/google/uuid"
)

// User is the login identity of an employee. Every user belongs to exactly
// one employee and is created together with it.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_users_employee"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'employee'"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u User) AuditTable() string { return "users" }

func (u User) AuditKey() string { return u.ID.String() }

func (u User) AuditSnapshot() audit.Snapshot {
	return audit.Snapshot{
		"id":            u.ID,
		"employee_id":   u.EmployeeID,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"role":          u.Role,
		"is_active":     u.IsActive,
	}
}
