package ledger

import (
	"context"
	"database/sql"

	ledgererrors "go-hrms/internal/ledger/errors"
	"go-hrms/internal/shared/connection"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// Insert creates b unless a row for its (employee, leave type) already
	// exists. It reports whether a row was written.
	Insert(ctx context.Context, b *LeaveBalance) (bool, error)
	Find(ctx context.Context, employeeID uuid.UUID, leaveType string) (*LeaveBalance, error)
	// AdjustUsed adds delta to used_leaves in one statement and returns the
	// updated row, or nil when no row exists. A delta that would take
	// used_leaves below zero changes nothing and returns ErrUsedBelowZero.
	AdjustUsed(ctx context.Context, employeeID uuid.UUID, leaveType string, delta decimal.Decimal) (*LeaveBalance, error)
	ListByEmployees(ctx context.Context, employeeIDs []uuid.UUID) ([]LeaveBalance, error)
	ListAll(ctx context.Context) ([]LeaveBalance, error)
	DirectReportIDs(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.GormTx(ctx, r.db, r.tx)
}

func (r *repository) Insert(ctx context.Context, b *LeaveBalance) (bool, error) {
	res := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "leave_type"}},
			DoNothing: true,
		}).
		Create(b)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) Find(ctx context.Context, employeeID uuid.UUID, leaveType string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.conn(ctx).
		Where("employee_id = ? AND leave_type = ?", employeeID, leaveType).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) AdjustUsed(ctx context.Context, employeeID uuid.UUID, leaveType string, delta decimal.Decimal) (*LeaveBalance, error) {
	var rows []LeaveBalance
	err := r.conn(ctx).Raw(`
		UPDATE leave_balances
		SET used_leaves = used_leaves + ?, updated_at = now()
		WHERE employee_id = ? AND leave_type = ? AND used_leaves + ? >= 0
		RETURNING id, employee_id, leave_type, total_allocated, used_leaves, created_at, updated_at
	`, delta, employeeID, leaveType, delta).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return &rows[0], nil
	}

	var n int64
	err = r.conn(ctx).
		Model(&LeaveBalance{}).
		Where("employee_id = ? AND leave_type = ?", employeeID, leaveType).
		Count(&n).Error
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return nil, ledgererrors.ErrUsedBelowZero
}

func (r *repository) ListByEmployees(ctx context.Context, employeeIDs []uuid.UUID) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	if len(employeeIDs) == 0 {
		return balances, nil
	}
	err := r.conn(ctx).
		Where("employee_id IN ?", employeeIDs).
		Order("employee_id, leave_type").
		Find(&balances).Error
	return balances, err
}

func (r *repository) ListAll(ctx context.Context) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.conn(ctx).
		Order("employee_id, leave_type").
		Find(&balances).Error
	return balances, err
}

func (r *repository) DirectReportIDs(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(ctx).
		Table("employees").
		Where("manager_id = ? AND is_deleted = ?", managerID, false).
		Pluck("id", &ids).Error
	return ids, err
}
