package user

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) (*User, error)
	Update(ctx context.Context, u *User) error
	DeleteByEmployeeID(ctx context.Context, employeeID uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.conn(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.conn(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail matches case-insensitively; emails are stored lower-cased.
func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.conn(ctx).First(&u, "lower(email) = lower(?)", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) (*User, error) {
	var u User
	if err := r.conn(ctx).First(&u, "employee_id = ?", employeeID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.conn(ctx).Save(u).Error
}

func (r *repository) DeleteByEmployeeID(ctx context.Context, employeeID uuid.UUID) error {
	return r.conn(ctx).Where("employee_id = ?", employeeID).Delete(&User{}).Error
}
