package app

import (
	"fmt"

	"go-hrms/internal/audit"
	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/holiday"
	"go-hrms/internal/leave"
	"go-hrms/internal/ledger"
	"go-hrms/internal/rbac"
	"go-hrms/internal/user"

	"gorm.io/gorm"
)

// rawSchema holds the tables written through database/sql rather than gorm.
var rawSchema = []string{
	`CREATE TABLE IF NOT EXISTS counters (
	counter_type VARCHAR(50) PRIMARY KEY,
	last_value   BIGINT NOT NULL DEFAULT 0,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
	id             UUID PRIMARY KEY,
	request_id     VARCHAR(64),
	aggregate_type VARCHAR(50) NOT NULL,
	aggregate_id   VARCHAR(64) NOT NULL,
	event_type     VARCHAR(100) NOT NULL,
	topic          VARCHAR(150) NOT NULL,
	payload        JSONB NOT NULL,
	status         VARCHAR(20) NOT NULL DEFAULT 'pending',
	retry_count    INT NOT NULL DEFAULT 0,
	error_message  TEXT,
	next_retry_at  TIMESTAMPTZ,
	processed_at   TIMESTAMPTZ,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_due ON outbox_events (status, next_retry_at, created_at)`,
}

// Migrate brings the schema up to date. Statements are idempotent.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&department.Department{},
		&employee.Employee{},
		&user.User{},
		&ledger.LeaveBalance{},
		&leave.LeaveRequest{},
		&holiday.Holiday{},
		&holiday.HolidayUpload{},
		&audit.AuditLog{},
		&rbac.RolePermissionRow{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range rawSchema {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
