package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	auditmock "go-hrms/internal/audit/mock"
	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	employeeMock "go-hrms/internal/employee/mock"
	"go-hrms/internal/leave"
	"go-hrms/internal/ledger"
	ledgermock "go-hrms/internal/ledger/mock"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"
	countermock "go-hrms/internal/shared/counter/mock"
	"go-hrms/internal/user"
	userMock "go-hrms/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	users     *userMock.MockRepository
	ledger    *ledgermock.MockLedger
	counter   *countermock.MockRepository
	recorder  *auditmock.MockRecorder
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	rdb, redisMock := redismock.NewClientMock()

	repo := employeeMock.NewMockRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()
	users := userMock.NewMockRepository(ctrl)
	users.EXPECT().WithTx(gomock.Any()).Return(users).AnyTimes()
	ledgerSvc := ledgermock.NewMockLedger(ctrl)
	ledgerSvc.EXPECT().WithTx(gomock.Any()).Return(ledgerSvc).AnyTimes()
	counterRepo := countermock.NewMockRepository(ctrl)
	counterRepo.EXPECT().WithTx(gomock.Any()).Return(counterRepo).AnyTimes()
	recorder := auditmock.NewMockRecorder(ctrl)
	recorder.EXPECT().WithTx(gomock.Any()).Return(recorder).AnyTimes()

	svc := employee.NewService(db, repo, users, ledgerSvc, counterRepo, recorder, kafka.NewOutboxRepository(db), rdb)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		users:     users,
		ledger:    ledgerSvc,
		counter:   counterRepo,
		recorder:  recorder,
		redismock: redisMock,
	}
}

func asAdmin(actorID uuid.UUID) context.Context {
	return contextutil.WithRequestMeta(context.Background(), contextutil.RequestMeta{
		ActorID: actorID.String(),
		UserID:  uuid.NewString(),
		Role:    "admin",
	})
}

func asEmployee(actorID uuid.UUID) context.Context {
	return contextutil.WithRequestMeta(context.Background(), contextutil.RequestMeta{
		ActorID: actorID.String(),
		UserID:  uuid.NewString(),
		Role:    "employee",
	})
}

func existing(id uuid.UUID, managerID *uuid.UUID) *employee.Employee {
	return &employee.Employee{
		ID:           id,
		EmployeeCode: "EMP-000001",
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		ManagerID:    managerID,
		JoiningDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
	}
}

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FullName:    " Jane Doe ",
		Email:       "Jane@Example.com",
		Region:      "ID-JK",
		JoiningDate: "2024-01-15",
		Password:    "password123",
		Role:        "manager",
	}
}

func TestEmployeeService_Create(t *testing.T) {
	t.Run("success seeds balances and queues event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := asAdmin(uuid.New())
		deptID := uuid.New()
		managerID := uuid.New()
		req := validCreateRequest()
		req.DepartmentID = deptID.String()
		req.ManagerID = managerID.String()

		var created *employee.Employee

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().DepartmentExists(ctx, deptID).Return(true, nil)
		deps.repo.EXPECT().FindByID(ctx, managerID).Return(existing(managerID, nil), nil)
		deps.counter.EXPECT().GetNextValue(ctx, counter.EmployeeCode).Return(int64(7), nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *employee.Employee) error {
			created = e
			assert.Equal(t, "EMP-000007", e.EmployeeCode)
			assert.Equal(t, "Jane Doe", e.FullName)
			assert.Equal(t, "jane@example.com", e.Email)
			assert.Equal(t, "ID-JK", e.Region)
			assert.Equal(t, &managerID, e.ManagerID)
			return nil
		})
		deps.users.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.Equal(t, created.ID, u.EmployeeID)
			assert.Equal(t, "manager", u.Role)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))
			return nil
		})
		deps.ledger.EXPECT().Seed(ctx, gomock.Any()).Return(4, nil)
		deps.recorder.EXPECT().RecordCreate(ctx, gomock.Any()).Return(nil).Times(2)
		deps.sqlMock.ExpectExec("INSERT INTO outbox_events").WillReturnResult(sqlmock.NewResult(1, 1))
		deps.sqlMock.ExpectCommit()
		deps.redismock.ExpectDel(employee.EmployeeOptionsCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000007", resp.EmployeeCode)
		assert.Equal(t, "2024-01-15", resp.JoiningDate)
		assert.Equal(t, "manager", resp.Role)
		assert.NotEmpty(t, resp.UserID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("negative invalid joining date", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()
		req.JoiningDate = "15/01/2024"

		_, err := deps.service.Create(asAdmin(uuid.New()), req)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidJoiningDate)
	})

	t.Run("negative invalid manager id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()
		req.ManagerID = "boss"

		_, err := deps.service.Create(asAdmin(uuid.New()), req)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidManagerID)
	})

	t.Run("negative inactive manager", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := asAdmin(uuid.New())
		managerID := uuid.New()
		mgr := existing(managerID, nil)
		mgr.IsActive = false
		req := validCreateRequest()
		req.ManagerID = managerID.String()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().FindByID(ctx, managerID).Return(mgr, nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrManagerNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown department", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := asAdmin(uuid.New())
		deptID := uuid.New()
		req := validCreateRequest()
		req.DepartmentID = deptID.String()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().DepartmentExists(ctx, deptID).Return(false, nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrDepartmentNotFound)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := asAdmin(uuid.New())

		deps.sqlMock.ExpectBegin()
		deps.counter.EXPECT().GetNextValue(ctx, counter.EmployeeCode).Return(int64(8), nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_email"})
		deps.users.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
		deps.ledger.EXPECT().Seed(gomock.Any(), gomock.Any()).Times(0)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, validCreateRequest())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_UpdateManager(t *testing.T) {
	t.Run("negative indirect cycle", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := asAdmin(uuid.New())
		a, b, c := uuid.New(), uuid.New(), uuid.New()
		newManager := b.String()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().FindByIDForUpdate(ctx, a).Return(existing(a, nil), nil)
		deps.repo.EXPECT().FindManagerID(ctx, b).Return(&c, nil)
		deps.repo.EXPECT().FindManagerID(ctx, c).Return(&a, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Update(ctx, a.String(), employee.UpdateEmployeeRequest{ManagerID: &newManager})

		assert.ErrorIs(t, err, employeeerrors.ErrManagerCycle)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative self as manager", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := asAdmin(uuid.New())
		a := uuid.New()
		self := a.String()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().FindByIDForUpdate(ctx, a).Return(existing(a, nil), nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Update(ctx, a.String(), employee.UpdateEmployeeRequest{ManagerID: &self})

		assert.ErrorIs(t, err, employeeerrors.ErrManagerCycle)
	})

	t.Run("success reassign and clear", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := asAdmin(uuid.New())
		a, b, top := uuid.New(), uuid.New(), uuid.New()
		newManager := b.String()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().FindByIDForUpdate(ctx, a).Return(existing(a, nil), nil)
		deps.repo.EXPECT().FindManagerID(ctx, b).Return(&top, nil)
		deps.repo.EXPECT().FindManagerID(ctx, top).Return(nil, nil)
		deps.repo.EXPECT().FindByID(ctx, b).Return(existing(b, &top), nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.recorder.EXPECT().RecordUpdate(ctx, gomock.Any(), gomock.Any()).Return(nil)
		deps.sqlMock.ExpectCommit()
		deps.redismock.ExpectDel(employee.EmployeeOptionsCacheKey).SetVal(1)

		resp, err := deps.service.Update(ctx, a.String(), employee.UpdateEmployeeRequest{ManagerID: &newManager})

		assert.NoError(t, err)
		assert.Equal(t, b.String(), resp.ManagerID)

		cleared := ""
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().FindByIDForUpdate(ctx, a).Return(existing(a, &b), nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.recorder.EXPECT().RecordUpdate(ctx, gomock.Any(), gomock.Any()).Return(nil)
		deps.sqlMock.ExpectCommit()
		deps.redismock.ExpectDel(employee.EmployeeOptionsCacheKey).SetVal(1)

		resp, err = deps.service.Update(ctx, a.String(), employee.UpdateEmployeeRequest{ManagerID: &cleared})

		assert.NoError(t, err)
		assert.Empty(t, resp.ManagerID)
	})
}

func TestEmployeeService_UpdateDeactivatesUser(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := asAdmin(uuid.New())
	id := uuid.New()
	account, _ := user.NewUser(id, "jane@example.com", "password123", "")
	inactive := false

	deps.sqlMock.ExpectBegin()
	deps.repo.EXPECT().FindByIDForUpdate(ctx, id).Return(existing(id, nil), nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	deps.recorder.EXPECT().RecordUpdate(ctx, gomock.Any(), gomock.Any()).Return(nil).Times(2)
	deps.users.EXPECT().FindByEmployeeID(ctx, id).Return(account, nil)
	deps.users.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
		assert.False(t, u.IsActive)
		return nil
	})
	deps.sqlMock.ExpectCommit()
	deps.redismock.ExpectDel(employee.EmployeeOptionsCacheKey).SetVal(1)

	resp, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{IsActive: &inactive})

	assert.NoError(t, err)
	assert.False(t, resp.IsActive)
}

func TestEmployeeService_Delete(t *testing.T) {
	t.Run("success soft deletes and emits deactivated event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := asAdmin(uuid.New())
		id := uuid.New()
		account, _ := user.NewUser(id, "jane@example.com", "password123", "")

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().FindByIDForUpdate(ctx, id).Return(existing(id, nil), nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *employee.Employee) error {
			assert.True(t, e.IsDeleted)
			assert.False(t, e.IsActive)
			return nil
		})
		deps.recorder.EXPECT().RecordUpdate(ctx, gomock.Any(), gomock.Any()).Return(nil).Times(2)
		deps.users.EXPECT().FindByEmployeeID(ctx, id).Return(account, nil)
		deps.users.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.sqlMock.ExpectExec("INSERT INTO outbox_events").WillReturnResult(sqlmock.NewResult(1, 1))
		deps.sqlMock.ExpectCommit()
		deps.redismock.ExpectDel(employee.EmployeeOptionsCacheKey).SetVal(1)

		err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already deleted", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := asAdmin(uuid.New())
		id := uuid.New()
		gone := existing(id, nil)
		gone.IsDeleted = true

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().FindByIDForUpdate(ctx, id).Return(gone, nil)
		deps.sqlMock.ExpectRollback()

		err := deps.service.Delete(ctx, id.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("negative self", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		self := uuid.New()
		err := deps.service.Delete(asAdmin(self), self.String())

		assert.ErrorIs(t, err, employeeerrors.ErrCannotDeleteSelf)
	})
}

func TestEmployeeService_HardDelete(t *testing.T) {
	t.Run("success cascades and audits every removed row", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := asAdmin(uuid.New())
		id := uuid.New()
		account, _ := user.NewUser(id, "jane@example.com", "password123", "")
		requests := []leave.LeaveRequest{
			{ID: uuid.New(), EmployeeID: id, LeaveType: ledger.LeaveTypeCasual, Status: leave.StatusApproved},
		}
		balances := []ledger.LeaveBalance{
			{ID: uuid.New(), EmployeeID: id, LeaveType: ledger.LeaveTypeCasual},
			{ID: uuid.New(), EmployeeID: id, LeaveType: ledger.LeaveTypeSick},
		}
		reports := []employee.Employee{*existing(uuid.New(), &id), *existing(uuid.New(), &id)}
		unassigned := make([]employee.Employee, len(reports))
		for i, r := range reports {
			r.ManagerID = nil
			unassigned[i] = r
		}

		deps.sqlMock.ExpectBegin()
		gomock.InOrder(
			deps.repo.EXPECT().FindByIDForUpdate(ctx, id).Return(existing(id, nil), nil),
			deps.users.EXPECT().FindByEmployeeID(ctx, id).Return(account, nil),
			deps.repo.EXPECT().FindLeaveRequests(ctx, id).Return(requests, nil),
			deps.recorder.EXPECT().RecordHardDelete(ctx, requests[0]).Return(nil),
			deps.repo.EXPECT().FindLeaveBalances(ctx, id).Return(balances, nil),
			deps.recorder.EXPECT().RecordHardDelete(ctx, balances[0]).Return(nil),
			deps.recorder.EXPECT().RecordHardDelete(ctx, balances[1]).Return(nil),
			deps.repo.EXPECT().PurgeLeaveData(ctx, id).Return(nil),
			deps.users.EXPECT().DeleteByEmployeeID(ctx, id).Return(nil),
			deps.recorder.EXPECT().RecordHardDelete(ctx, account).Return(nil),
			deps.repo.EXPECT().FindDirectReports(ctx, id).Return(reports, nil),
			deps.repo.EXPECT().ClearManager(ctx, id).Return(int64(2), nil),
			deps.recorder.EXPECT().RecordUpdate(ctx, reports[0], unassigned[0]).Return(nil),
			deps.recorder.EXPECT().RecordUpdate(ctx, reports[1], unassigned[1]).Return(nil),
			deps.repo.EXPECT().HardDelete(ctx, id).Return(nil),
			deps.recorder.EXPECT().RecordHardDelete(ctx, existing(id, nil)).Return(nil),
		)
		deps.sqlMock.ExpectCommit()
		deps.redismock.ExpectDel(employee.EmployeeOptionsCacheKey).SetVal(1)

		assert.NoError(t, deps.service.HardDelete(ctx, id.String()))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative audit failure rolls back before purge", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := asAdmin(uuid.New())
		id := uuid.New()
		requests := []leave.LeaveRequest{{ID: uuid.New(), EmployeeID: id, LeaveType: ledger.LeaveTypeSick}}

		deps.sqlMock.ExpectBegin()
		gomock.InOrder(
			deps.repo.EXPECT().FindByIDForUpdate(ctx, id).Return(existing(id, nil), nil),
			deps.users.EXPECT().FindByEmployeeID(ctx, id).Return(nil, gorm.ErrRecordNotFound),
			deps.repo.EXPECT().FindLeaveRequests(ctx, id).Return(requests, nil),
			deps.recorder.EXPECT().RecordHardDelete(ctx, requests[0]).Return(errors.New("audit insert failed")),
		)
		deps.sqlMock.ExpectRollback()

		err := deps.service.HardDelete(ctx, id.String())

		assert.EqualError(t, err, "audit insert failed")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not admin", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		err := deps.service.HardDelete(asEmployee(uuid.New()), uuid.NewString())

		assert.ErrorIs(t, err, employeeerrors.ErrAdminOnly)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := asAdmin(uuid.New())
		id := uuid.New()
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().FindByIDForUpdate(ctx, id).Return(nil, gorm.ErrRecordNotFound)
		deps.sqlMock.ExpectRollback()

		err := deps.service.HardDelete(ctx, id.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Visibility(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	managerID := uuid.New()
	report := existing(uuid.New(), &managerID)

	t.Run("admin lists everyone", func(t *testing.T) {
		ctx := asAdmin(uuid.New())
		deps.repo.EXPECT().FindAll(ctx).Return([]employee.Employee{*report, *existing(managerID, nil)}, nil)

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("non-admin lists self and reports", func(t *testing.T) {
		ctx := asEmployee(managerID)
		deps.repo.EXPECT().FindVisible(ctx, managerID).Return([]employee.Employee{*report}, nil)

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("manager can read direct report", func(t *testing.T) {
		ctx := asEmployee(managerID)
		deps.repo.EXPECT().FindByID(ctx, report.ID).Return(report, nil)

		resp, err := deps.service.GetByID(ctx, report.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, report.ID.String(), resp.ID)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		ctx := asEmployee(uuid.New())
		deps.repo.EXPECT().FindByID(ctx, report.ID).Return(report, nil)

		_, err := deps.service.GetByID(ctx, report.ID.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	t.Run("cache hit skips the repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached, _ := json.Marshal([]employee.EmployeeOption{{ID: uuid.NewString(), FullName: "Jane"}})
		deps.redismock.ExpectGet(employee.EmployeeOptionsCacheKey).SetVal(string(cached))
		deps.repo.EXPECT().FindOptions(gomock.Any()).Times(0)

		resp, err := deps.service.GetOptions(context.Background())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := context.Background()
		deps.redismock.ExpectGet(employee.EmployeeOptionsCacheKey).RedisNil()
		deps.repo.EXPECT().FindOptions(ctx).Return([]employee.Employee{*existing(uuid.New(), nil)}, nil)
		deps.redismock.Regexp().ExpectSet(employee.EmployeeOptionsCacheKey, `.*Jane Doe.*`, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "EMP-000001", resp[0].EmployeeCode)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}
