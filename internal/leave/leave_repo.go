package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	Update(ctx context.Context, l *LeaveRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends,
	// so two transitions on one request are applied one after the other.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	// HasOverlap reports whether the employee has a PENDING or APPROVED
	// request sharing a day with [start, end].
	HasOverlap(ctx context.Context, employeeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, status string) ([]LeaveRequest, error)
	ListByManager(ctx context.Context, managerID uuid.UUID, status string) ([]LeaveRequest, error)
	ListAll(ctx context.Context, status string) ([]LeaveRequest, error)
	FindOwner(ctx context.Context, employeeID uuid.UUID) (*Owner, error)
	// LockOwner is FindOwner with a row lock on the employee. Writers that
	// check overlap take it first so two requests of one employee cannot
	// both pass the check.
	LockOwner(ctx context.Context, employeeID uuid.UUID) (*Owner, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Where("id = ?", id).Delete(&LeaveRequest{}).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	if err := r.conn(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) HasOverlap(ctx context.Context, employeeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	q := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func withStatus(q *gorm.DB, status string) *gorm.DB {
	if status == "" {
		return q
	}
	return q.Where("leave_requests.status = ?", status)
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, status string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	q := r.conn(ctx).Where("employee_id = ?", employeeID)
	err := withStatus(q, status).Order("start_date DESC").Find(&out).Error
	return out, err
}

func (r *repository) ListByManager(ctx context.Context, managerID uuid.UUID, status string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	q := r.conn(ctx).
		Where("employee_id IN (?)",
			r.conn(ctx).Table("employees").Select("id").Where("manager_id = ? AND is_deleted = ?", managerID, false),
		)
	err := withStatus(q, status).Order("start_date ASC").Find(&out).Error
	return out, err
}

func (r *repository) ListAll(ctx context.Context, status string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	err := withStatus(r.conn(ctx), status).Order("start_date ASC").Find(&out).Error
	return out, err
}

func (r *repository) FindOwner(ctx context.Context, employeeID uuid.UUID) (*Owner, error) {
	return r.findOwner(r.conn(ctx), employeeID)
}

func (r *repository) LockOwner(ctx context.Context, employeeID uuid.UUID) (*Owner, error) {
	return r.findOwner(r.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), employeeID)
}

func (r *repository) findOwner(db *gorm.DB, employeeID uuid.UUID) (*Owner, error) {
	var o Owner
	err := db.
		Table("employees").
		Select("id, manager_id, region").
		Where("id = ? AND is_deleted = ?", employeeID, false).
		Take(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}
