package holiday

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/connection"
	"go-hrms/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	From       *time.Time
	To         *time.Time
	Region     string
	ActiveOnly bool
}

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *Holiday) error
	// CreateIfAbsent inserts h unless (date, region) is already taken and
	// reports whether it did.
	CreateIfAbsent(ctx context.Context, h *Holiday) (bool, error)
	Update(ctx context.Context, h *Holiday) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Holiday, error)
	FindByGroup(ctx context.Context, groupID uuid.UUID) ([]Holiday, error)
	List(ctx context.Context, f ListFilter) ([]Holiday, error)
	// ActiveBetween returns active, non-deleted holidays dated in [from, to].
	ActiveBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)

	CreateUpload(ctx context.Context, u *HolidayUpload) error
	UpdateUpload(ctx context.Context, u *HolidayUpload) error
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

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.conn(ctx).Create(h).Error
}

func (r *repository) CreateIfAbsent(ctx context.Context, h *Holiday) (bool, error) {
	res := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "date"}, {Name: "region"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "is_deleted = false"}}},
			DoNothing:   true,
		}).
		Create(h)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) Update(ctx context.Context, h *Holiday) error {
	return r.conn(ctx).Save(h).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Where("id = ?", id).Delete(&Holiday{}).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Holiday, error) {
	var h Holiday
	if err := r.conn(ctx).Where("id = ?", id).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) FindByGroup(ctx context.Context, groupID uuid.UUID) ([]Holiday, error) {
	var out []Holiday
	err := r.conn(ctx).
		Where("recurring_group_id = ?", groupID).
		Order("date ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Holiday, error) {
	q := r.conn(ctx).Model(&Holiday{}).Scopes(scope.Region(f.Region))
	if f.ActiveOnly {
		q = q.Scopes(scope.Active)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}

	var out []Holiday
	err := q.Order("date ASC, region ASC").Find(&out).Error
	return out, err
}

func (r *repository) ActiveBetween(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	var out []Holiday
	err := r.conn(ctx).
		Scopes(scope.Active).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) CreateUpload(ctx context.Context, u *HolidayUpload) error {
	return r.conn(ctx).Create(u).Error
}

func (r *repository) UpdateUpload(ctx context.Context, u *HolidayUpload) error {
	return r.conn(ctx).Save(u).Error
}
