package audit

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/connection"
	"go-hrms/internal/shared/scope"

	"gorm.io/gorm"
)

type ListFilter struct {
	ActorID  string
	Table    string
	Action   string
	RecordID string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// Repository is append-only: there is no update or delete.
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *AuditLog) error
	List(ctx context.Context, f ListFilter) ([]AuditLog, int64, error)
	FindByID(ctx context.Context, id string) (*AuditLog, error)
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

func (r *repository) Create(ctx context.Context, entry *AuditLog) error {
	return r.conn(ctx).Create(entry).Error
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]AuditLog, int64, error) {
	q := r.conn(ctx).Model(&AuditLog{})
	if f.ActorID != "" {
		q = q.Where("actor_id = ?", f.ActorID)
	}
	if f.Table != "" {
		q = q.Where("table_name = ?", f.Table)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.RecordID != "" {
		q = q.Where("record_id = ?", f.RecordID)
	}
	if f.From != nil {
		q = q.Where("timestamp >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("timestamp < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []AuditLog
	err := q.Scopes(scope.Paginate(f.Page, f.PageSize)).
		Order("timestamp DESC").
		Find(&logs).Error
	return logs, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*AuditLog, error) {
	var entry AuditLog
	if err := r.conn(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
