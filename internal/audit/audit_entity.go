package audit

import (
	"time"

	auditerrors "go-hrms/internal/audit/errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActionCreate     = "CREATE"
	ActionUpdate     = "UPDATE"
	ActionDelete     = "DELETE"
	ActionHardDelete = "HARD_DELETE"
)

// AuditLog is written once and never changed. The hooks below reject any
// update or delete issued through gorm.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorID   *uuid.UUID     `gorm:"type:uuid;index:idx_audit_logs_actor"`
	Action    string         `gorm:"type:varchar(20);not null;index:idx_audit_logs_action"`
	Table     string         `gorm:"column:table_name;type:varchar(50);not null;index:idx_audit_logs_record,priority:1"`
	RecordID  string         `gorm:"type:varchar(50);index:idx_audit_logs_record,priority:2"`
	Timestamp time.Time      `gorm:"not null;index:idx_audit_logs_timestamp;<-:create"`
	Changes   datatypes.JSON `gorm:"type:jsonb"`
	UserAgent string         `gorm:"type:varchar(255)"`
	Path      string         `gorm:"type:varchar(255)"`
	RequestID string         `gorm:"type:varchar(64)"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (a *AuditLog) BeforeUpdate(tx *gorm.DB) error {
	return auditerrors.ErrAuditImmutable
}

func (a *AuditLog) BeforeDelete(tx *gorm.DB) error {
	return auditerrors.ErrAuditImmutable
}
