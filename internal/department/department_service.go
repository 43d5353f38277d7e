package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"go-hrms/internal/audit"
	departmenterrors "go-hrms/internal/department/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	AllDepartmentsCacheKey = "departments:all"
	allDepartmentsCacheTTL = 30 * time.Minute
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	rdb      *redis.Client
	recorder audit.Recorder
	logger   *zap.Logger
}

// NewService builds the department service. rdb may be nil to disable the
// list cache.
func NewService(db *sql.DB, repo Repository, rdb *redis.Client, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, recorder: recorder, logger: l}
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, AllDepartmentsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate department cache", zap.Error(err))
	}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	s.logger.Debug("create department requested", zap.String("name", req.Name))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		IsActive:    true,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("create department persist failed", zap.Error(err))
		}
		return DepartmentResponse{}, mapped
	}
	if err := s.recorder.WithTx(tx).RecordCreate(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info("create department success", zap.String("department_id", dept.ID.String()))
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, AllDepartmentsCacheKey).Result(); err == nil {
			var resp []DepartmentResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all departments failed", zap.Error(err))
		return nil, err
	}
	resp := mapToListResponse(depts)

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, AllDepartmentsCacheKey, string(data), allDepartmentsCacheTTL).Err(); err != nil {
				s.logger.Warn("department cache store failed", zap.Error(err))
			}
		}
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}
	dept, err := s.repo.FindByID(ctx, deptID)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	s.logger.Debug("update department requested", zap.String("department_id", id))

	deptID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, deptID)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	before := *dept

	if req.Name != nil {
		dept.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	if err := s.recorder.WithTx(tx).RecordUpdate(ctx, before, *dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info("update department success", zap.String("department_id", id))
	return mapToResponse(*dept), nil
}

// Delete soft-deletes the department. Departments that still hold
// employees are kept.
func (s *service) Delete(ctx context.Context, id string) error {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete department begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, deptID)
	if err != nil {
		return mapRepositoryError(err)
	}

	n, err := qtx.CountActiveEmployees(ctx, deptID)
	if err != nil {
		s.logger.Error("delete department employee count failed", zap.Error(err))
		return err
	}
	if n > 0 {
		s.logger.Warn("delete department still in use",
			zap.String("department_id", id),
			zap.Int64("employees", n),
		)
		return departmenterrors.ErrDepartmentInUse
	}

	before := *dept
	dept.IsDeleted = true
	dept.IsActive = false
	if err := qtx.Update(ctx, dept); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.recorder.WithTx(tx).RecordUpdate(ctx, before, *dept); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete department commit failed", zap.Error(err))
		return err
	}

	s.invalidateCache(ctx)
	s.logger.Info("delete department success", zap.String("department_id", id))
	return nil
}
