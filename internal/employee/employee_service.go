package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrms/internal/audit"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/ledger"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	EmployeeOptionsCacheKey = "employees:options"
	employeeOptionsCacheTTL = time.Hour

	// maxManagerDepth bounds the ancestor walk when checking for cycles.
	maxManagerDepth = 64
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	users    user.Repository
	ledger   ledger.Ledger
	counter  counter.Repository
	recorder audit.Recorder
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	sf       *singleflight.Group
	now      func() time.Time
	logger   *zap.Logger
}

// NewService wires employee onboarding. outbox and rdb may be nil.
func NewService(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	ledgerSvc ledger.Ledger,
	counter counter.Repository,
	recorder audit.Recorder,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		users:    users,
		ledger:   ledgerSvc,
		counter:  counter,
		recorder: recorder,
		outbox:   outbox,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, employeeerrors.ErrInvalidEmployeeID
	}
	return uid, nil
}

// parseOptionalID returns nil for a blank value.
func parseOptionalID(v string, invalid error) (*uuid.UUID, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, invalid
	}
	return &id, nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsCacheKey),
		)
	}
}

func (s *service) queueLifecycleEvent(ctx context.Context, tx *sql.Tx, eventType string, empl *Employee, userID string) error {
	if s.outbox == nil {
		return nil
	}
	event, err := kafka.NewEvent(ctx, kafka.AggregateEmployee, empl.ID.String(), eventType, events.EmployeeLifecycleTopic,
		events.EmployeeLifecycleEvent{
			EventType:    eventType,
			EmployeeID:   empl.ID.String(),
			EmployeeCode: empl.EmployeeCode,
			UserID:       userID,
			OccurredAt:   s.now(),
		})
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("employee outbox persist failed",
			zap.String("employee_id", empl.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) checkDepartment(ctx context.Context, qtx Repository, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	ok, err := qtx.DepartmentExists(ctx, *id)
	if err != nil {
		s.logger.Error("department lookup failed", zap.Error(err))
		return err
	}
	if !ok {
		return employeeerrors.ErrDepartmentNotFound
	}
	return nil
}

func (s *service) checkManager(ctx context.Context, qtx Repository, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	mgr, err := qtx.FindByID(ctx, *id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrManagerNotFound
		}
		s.logger.Error("manager lookup failed", zap.Error(err))
		return err
	}
	if !mgr.IsActive {
		return employeeerrors.ErrManagerNotFound
	}
	return nil
}

// checkNoCycle walks up from newManager and fails if it reaches employeeID.
// A chain deeper than maxManagerDepth is treated as a cycle.
func (s *service) checkNoCycle(ctx context.Context, qtx Repository, employeeID uuid.UUID, newManager *uuid.UUID) error {
	if newManager == nil {
		return nil
	}
	current := newManager
	for depth := 0; current != nil; depth++ {
		if *current == employeeID {
			return employeeerrors.ErrManagerCycle
		}
		if depth >= maxManagerDepth {
			s.logger.Warn("manager chain too deep",
				zap.String("employee_id", employeeID.String()),
				zap.Int("depth", depth),
			)
			return employeeerrors.ErrManagerCycle
		}
		next, err := qtx.FindManagerID(ctx, *current)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		current = next
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department_id", req.DepartmentID),
		zap.String("manager_id", req.ManagerID),
	)

	joiningDate, err := time.Parse(joiningDateLayout, req.JoiningDate)
	if err != nil {
		s.logger.Warn("create employee invalid joining_date", zap.String("joining_date", req.JoiningDate))
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoiningDate
	}
	departmentID, err := parseOptionalID(req.DepartmentID, employeeerrors.ErrInvalidDepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	managerID, err := parseOptionalID(req.ManagerID, employeeerrors.ErrInvalidManagerID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:           uuid.New(),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		DepartmentID: departmentID,
		ManagerID:    managerID,
		Designation:  req.Designation,
		Region:       strings.TrimSpace(req.Region),
		JoiningDate:  joiningDate,
		IsActive:     true,
	}

	account, err := user.NewUser(empl.ID, empl.Email, req.Password, req.Role)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	recorder := s.recorder.WithTx(tx)

	if err := s.checkDepartment(ctx, qtx, departmentID); err != nil {
		return EmployeeResponse{}, err
	}
	if err := s.checkManager(ctx, qtx, managerID); err != nil {
		return EmployeeResponse{}, err
	}

	next, err := s.counter.WithTx(tx).GetNextValue(ctx, counter.EmployeeCode)
	if err != nil {
		s.logger.Error("create employee generate code failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	empl.EmployeeCode = fmt.Sprintf("EMP-%06d", next)

	if err := qtx.Create(ctx, empl); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("create employee persist failed", zap.Error(err))
		}
		return EmployeeResponse{}, mapped
	}
	if err := s.users.WithTx(tx).Create(ctx, account); err != nil {
		mapped := user.MapRepositoryError(err)
		if mapped == err {
			s.logger.Error("create employee user persist failed", zap.Error(err))
		}
		return EmployeeResponse{}, mapped
	}

	seeded, err := s.ledger.WithTx(tx).Seed(ctx, empl.ID)
	if err != nil {
		s.logger.Error("create employee seed balances failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := recorder.RecordCreate(ctx, empl); err != nil {
		return EmployeeResponse{}, err
	}
	if err := recorder.RecordCreate(ctx, account); err != nil {
		return EmployeeResponse{}, err
	}
	if err := s.queueLifecycleEvent(ctx, tx, events.EmployeeCreatedType, empl, account.ID.String()); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
		zap.Int("balances_seeded", seeded),
	)

	resp := mapToResponse(*empl)
	resp.UserID = account.ID.String()
	resp.Role = account.Role
	return resp, nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	meta := contextutil.GetRequestMeta(ctx)
	s.logger.Debug("get all employees requested", zap.String("actor_id", meta.ActorID), zap.String("role", meta.Role))

	var (
		emps []Employee
		err  error
	)
	if meta.IsAdmin() {
		emps, err = s.repo.FindAll(ctx)
	} else {
		viewer, perr := uuid.Parse(meta.ActorID)
		if perr != nil {
			return []EmployeeResponse{}, nil
		}
		emps, err = s.repo.FindVisible(ctx, viewer)
	}
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(emps), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsCacheKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsCacheKey, func() (interface{}, error) {
		emps, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToOptions(emps)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsCacheKey, string(data), employeeOptionsCacheTTL).Err(); err != nil {
					s.logger.Warn("employee options cache fill failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

// canView allows admins, the employee themself and their direct manager.
func canView(meta contextutil.RequestMeta, empl *Employee) bool {
	if meta.IsAdmin() {
		return true
	}
	if meta.ActorID == "" {
		return false
	}
	if empl.ID.String() == meta.ActorID {
		return true
	}
	return empl.ManagerID != nil && empl.ManagerID.String() == meta.ActorID
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	meta := contextutil.GetRequestMeta(ctx)
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))

	eid, err := parseID(id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByID(ctx, eid)
	if err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("get employee by id failed", zap.Error(err))
		}
		return EmployeeResponse{}, mapped
	}
	if !canView(meta, empl) {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	eid, err := parseID(id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	recorder := s.recorder.WithTx(tx)

	empl, err := qtx.FindByIDForUpdate(ctx, eid)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if empl.IsDeleted {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	before := *empl

	if req.FullName != nil {
		empl.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		empl.Phone = *req.Phone
	}
	if req.Designation != nil {
		empl.Designation = *req.Designation
	}
	if req.Region != nil {
		empl.Region = strings.TrimSpace(*req.Region)
	}
	if req.DepartmentID != nil {
		deptID, err := parseOptionalID(*req.DepartmentID, employeeerrors.ErrInvalidDepartmentID)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if err := s.checkDepartment(ctx, qtx, deptID); err != nil {
			return EmployeeResponse{}, err
		}
		empl.DepartmentID = deptID
	}
	if req.ManagerID != nil {
		mgrID, err := parseOptionalID(*req.ManagerID, employeeerrors.ErrInvalidManagerID)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if err := s.checkNoCycle(ctx, qtx, eid, mgrID); err != nil {
			if errors.Is(err, employeeerrors.ErrManagerCycle) {
				s.logger.Warn("update employee rejected: manager cycle",
					zap.String("employee_id", id),
					zap.String("manager_id", *req.ManagerID),
				)
			}
			return EmployeeResponse{}, err
		}
		if err := s.checkManager(ctx, qtx, mgrID); err != nil {
			return EmployeeResponse{}, err
		}
		empl.ManagerID = mgrID
	}
	if req.IsActive != nil {
		empl.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := recorder.RecordUpdate(ctx, before, *empl); err != nil {
		return EmployeeResponse{}, err
	}
	if before.IsActive != empl.IsActive {
		if _, err := s.setUserActive(ctx, tx, eid, empl.IsActive); err != nil {
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

// setUserActive mirrors the employee's active flag onto the login user and
// returns the user id, empty when the employee has no account.
func (s *service) setUserActive(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, active bool) (string, error) {
	users := s.users.WithTx(tx)
	u, err := users.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		s.logger.Error("user lookup failed", zap.String("employee_id", employeeID.String()), zap.Error(err))
		return "", err
	}
	if u.IsActive == active {
		return u.ID.String(), nil
	}
	before := *u
	u.IsActive = active
	if err := users.Update(ctx, u); err != nil {
		s.logger.Error("user status update failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return "", err
	}
	if err := s.recorder.WithTx(tx).RecordUpdate(ctx, before, *u); err != nil {
		return "", err
	}
	return u.ID.String(), nil
}

// Delete soft-deletes the employee and deactivates their login.
func (s *service) Delete(ctx context.Context, id string) error {
	meta := contextutil.GetRequestMeta(ctx)
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	eid, err := parseID(id)
	if err != nil {
		return err
	}
	if meta.ActorID == eid.String() {
		return employeeerrors.ErrCannotDeleteSelf
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDForUpdate(ctx, eid)
	if err != nil {
		return mapRepositoryError(err)
	}
	if empl.IsDeleted {
		return employeeerrors.ErrEmployeeNotFound
	}
	before := *empl
	empl.IsDeleted = true
	empl.IsActive = false

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := s.recorder.WithTx(tx).RecordUpdate(ctx, before, *empl); err != nil {
		return err
	}
	userID, err := s.setUserActive(ctx, tx, eid, false)
	if err != nil {
		return err
	}
	if err := s.queueLifecycleEvent(ctx, tx, events.EmployeeDeactivatedType, empl, userID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// HardDelete removes the employee row together with their user, balances and
// leave requests. Direct reports lose their manager.
func (s *service) HardDelete(ctx context.Context, id string) error {
	meta := contextutil.GetRequestMeta(ctx)
	s.logger.Debug("hard delete employee requested", zap.String("employee_id", id))

	if !meta.IsAdmin() {
		return employeeerrors.ErrAdminOnly
	}
	eid, err := parseID(id)
	if err != nil {
		return err
	}
	if meta.ActorID == eid.String() {
		return employeeerrors.ErrCannotDeleteSelf
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("hard delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	users := s.users.WithTx(tx)
	recorder := s.recorder.WithTx(tx)

	empl, err := qtx.FindByIDForUpdate(ctx, eid)
	if err != nil {
		return mapRepositoryError(err)
	}

	account, err := users.FindByEmployeeID(ctx, eid)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("hard delete employee user lookup failed", zap.Error(err))
		return err
	}

	if err := s.auditLeaveData(ctx, qtx, recorder, eid); err != nil {
		return err
	}
	if err := qtx.PurgeLeaveData(ctx, eid); err != nil {
		s.logger.Error("hard delete employee purge leave data failed", zap.Error(err))
		return err
	}
	if account != nil {
		if err := users.DeleteByEmployeeID(ctx, eid); err != nil {
			s.logger.Error("hard delete employee user failed", zap.Error(err))
			return err
		}
		if err := recorder.RecordHardDelete(ctx, account); err != nil {
			return err
		}
	}
	reports, err := qtx.FindDirectReports(ctx, eid)
	if err != nil {
		s.logger.Error("hard delete employee reports lookup failed", zap.Error(err))
		return err
	}
	orphaned, err := qtx.ClearManager(ctx, eid)
	if err != nil {
		s.logger.Error("hard delete employee clear manager failed", zap.Error(err))
		return err
	}
	for _, before := range reports {
		after := before
		after.ManagerID = nil
		if err := recorder.RecordUpdate(ctx, before, after); err != nil {
			return err
		}
	}
	if err := qtx.HardDelete(ctx, eid); err != nil {
		s.logger.Error("hard delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := recorder.RecordHardDelete(ctx, empl); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("hard delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("hard delete employee success",
		zap.String("employee_id", id),
		zap.Int64("reports_unassigned", orphaned),
	)
	return nil
}

// auditLeaveData logs a hard delete for every leave request and balance
// row of the employee before they are purged in bulk.
func (s *service) auditLeaveData(ctx context.Context, qtx Repository, recorder audit.Recorder, id uuid.UUID) error {
	requests, err := qtx.FindLeaveRequests(ctx, id)
	if err != nil {
		s.logger.Error("hard delete employee leave lookup failed", zap.Error(err))
		return err
	}
	for _, l := range requests {
		if err := recorder.RecordHardDelete(ctx, l); err != nil {
			return err
		}
	}
	balances, err := qtx.FindLeaveBalances(ctx, id)
	if err != nil {
		s.logger.Error("hard delete employee balance lookup failed", zap.Error(err))
		return err
	}
	for _, b := range balances {
		if err := recorder.RecordHardDelete(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
