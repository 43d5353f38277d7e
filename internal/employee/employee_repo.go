package employee

import (
	"context"
	"database/sql"

	"go-hrms/internal/leave"
	"go-hrms/internal/ledger"
	"go-hrms/internal/shared/connection"
	"go-hrms/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	// FindVisible returns the viewer and their direct reports.
	FindVisible(ctx context.Context, viewerID uuid.UUID) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	// FindByIDForUpdate includes soft-deleted rows and locks the row.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindManagerID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error)
	DepartmentExists(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, empl *Employee) error
	// FindDirectReports locks every row, deleted or not, that names
	// managerID as its manager.
	FindDirectReports(ctx context.Context, managerID uuid.UUID) ([]Employee, error)
	ClearManager(ctx context.Context, managerID uuid.UUID) (int64, error)
	FindLeaveRequests(ctx context.Context, id uuid.UUID) ([]leave.LeaveRequest, error)
	FindLeaveBalances(ctx context.Context, id uuid.UUID) ([]ledger.LeaveBalance, error)
	PurgeLeaveData(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.GormTx(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var emps []Employee
	err := r.conn(ctx).
		Scopes(scope.NotDeleted).
		Order("employee_code ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindVisible(ctx context.Context, viewerID uuid.UUID) ([]Employee, error) {
	var emps []Employee
	err := r.conn(ctx).
		Scopes(scope.NotDeleted).
		Where("id = ? OR manager_id = ?", viewerID, viewerID).
		Order("employee_code ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var emps []Employee
	err := r.conn(ctx).
		Select("id", "employee_code", "full_name").
		Scopes(scope.Active).
		Order("full_name ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Scopes(scope.NotDeleted).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindManagerID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	var row struct {
		ManagerID *uuid.UUID
	}
	err := r.conn(ctx).
		Model(&Employee{}).
		Select("manager_id").
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return row.ManagerID, nil
}

func (r *repository) DepartmentExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.conn(ctx).
		Table("departments").
		Where("id = ? AND is_deleted = ? AND is_active = ?", id, false, true).
		Count(&n).Error
	return n > 0, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Save(empl).Error
}

func (r *repository) FindDirectReports(ctx context.Context, managerID uuid.UUID) ([]Employee, error) {
	var reports []Employee
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("manager_id = ?", managerID).
		Order("id").
		Find(&reports).Error
	return reports, err
}

func (r *repository) ClearManager(ctx context.Context, managerID uuid.UUID) (int64, error) {
	res := r.conn(ctx).
		Model(&Employee{}).
		Where("manager_id = ?", managerID).
		Update("manager_id", nil)
	return res.RowsAffected, res.Error
}

func (r *repository) FindLeaveRequests(ctx context.Context, id uuid.UUID) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", id).
		Order("start_date").
		Find(&out).Error
	return out, err
}

func (r *repository) FindLeaveBalances(ctx context.Context, id uuid.UUID) ([]ledger.LeaveBalance, error) {
	var out []ledger.LeaveBalance
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", id).
		Order("leave_type").
		Find(&out).Error
	return out, err
}

// PurgeLeaveData removes the employee's leave requests and balances.
func (r *repository) PurgeLeaveData(ctx context.Context, id uuid.UUID) error {
	db := r.conn(ctx)
	if err := db.Exec("DELETE FROM leave_requests WHERE employee_id = ?", id).Error; err != nil {
		return err
	}
	return db.Exec("DELETE FROM leave_balances WHERE employee_id = ?", id).Error
}

func (r *repository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Where("id = ?", id).Delete(&Employee{}).Error
}
