package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go-hrms/internal/audit"
	ledgererrors "go-hrms/internal/ledger/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Ledger owns used_leaves. Callers bind it to their transaction with WithTx
// so balance movements commit or roll back together with the state change
// that caused them.
//
//go:generate mockgen -source=ledger_service.go -destination=mock/ledger_mock.go -package=mock
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	// Seed creates the default balance rows that are missing for the
	// employee and returns how many were created.
	Seed(ctx context.Context, employeeID uuid.UUID) (int, error)
	Balance(ctx context.Context, employeeID uuid.UUID, leaveType string) (*LeaveBalance, error)
	Deduct(ctx context.Context, employeeID uuid.UUID, leaveType string, amount decimal.Decimal) (*LeaveBalance, error)
	Refund(ctx context.Context, employeeID uuid.UUID, leaveType string, amount decimal.Decimal) (*LeaveBalance, error)
}

type ledger struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewLedger(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger")
	}
	return &ledger{repo: repo, recorder: recorder, logger: l}
}

func (s *ledger) WithTx(tx *sql.Tx) Ledger {
	return &ledger{
		repo:     s.repo.WithTx(tx),
		recorder: s.recorder.WithTx(tx),
		logger:   s.logger,
	}
}

func (s *ledger) Seed(ctx context.Context, employeeID uuid.UUID) (int, error) {
	created := 0
	for _, leaveType := range LeaveTypes {
		b := &LeaveBalance{
			EmployeeID:     employeeID,
			LeaveType:      leaveType,
			TotalAllocated: DefaultAllocations[leaveType],
			UsedLeaves:     decimal.Zero,
		}
		inserted, err := s.repo.Insert(ctx, b)
		if err != nil {
			s.logger.Error("failed to seed leave balance",
				zap.String("employee_id", employeeID.String()),
				zap.String("leave_type", leaveType),
				zap.Error(err),
			)
			return created, err
		}
		if !inserted {
			continue
		}
		if err := s.recorder.RecordCreate(ctx, b); err != nil {
			return created, err
		}
		created++
	}

	s.logger.Debug("leave balances seeded",
		zap.String("employee_id", employeeID.String()),
		zap.Int("created", created),
	)
	return created, nil
}

func (s *ledger) Balance(ctx context.Context, employeeID uuid.UUID, leaveType string) (*LeaveBalance, error) {
	b, err := s.repo.Find(ctx, employeeID, leaveType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.missing(employeeID, leaveType)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *ledger) Deduct(ctx context.Context, employeeID uuid.UUID, leaveType string, amount decimal.Decimal) (*LeaveBalance, error) {
	return s.adjust(ctx, employeeID, leaveType, amount)
}

func (s *ledger) Refund(ctx context.Context, employeeID uuid.UUID, leaveType string, amount decimal.Decimal) (*LeaveBalance, error) {
	return s.adjust(ctx, employeeID, leaveType, amount.Neg())
}

func (s *ledger) adjust(ctx context.Context, employeeID uuid.UUID, leaveType string, delta decimal.Decimal) (*LeaveBalance, error) {
	if !IsValidLeaveType(leaveType) {
		return nil, ledgererrors.ErrInvalidLeaveType
	}

	after, err := s.repo.AdjustUsed(ctx, employeeID, leaveType, delta)
	if err != nil {
		s.logger.Error("failed to adjust used leaves",
			zap.String("employee_id", employeeID.String()),
			zap.String("leave_type", leaveType),
			zap.String("delta", delta.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if after == nil {
		return nil, s.missing(employeeID, leaveType)
	}

	before := *after
	before.UsedLeaves = after.UsedLeaves.Sub(delta)
	if err := s.recorder.RecordUpdate(ctx, before, *after); err != nil {
		return nil, err
	}

	s.logger.Info("used leaves adjusted",
		zap.String("employee_id", employeeID.String()),
		zap.String("leave_type", leaveType),
		zap.String("delta", delta.String()),
		zap.String("used", after.UsedLeaves.String()),
	)
	return after, nil
}

func (s *ledger) missing(employeeID uuid.UUID, leaveType string) error {
	s.logger.Error("leave balance row missing",
		zap.String("employee_id", employeeID.String()),
		zap.String("leave_type", leaveType),
	)
	return apperror.Integrity(
		fmt.Errorf("no %s balance for employee %s", leaveType, employeeID),
		ledgererrors.ErrBalanceMissing.Message,
	)
}

type Service interface {
	// ListBalances returns the balances the caller may see. Admins see
	// everyone; others see themselves and their direct reports.
	ListBalances(ctx context.Context, employeeID string) ([]BalanceResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("ledger.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ListBalances(ctx context.Context, employeeID string) ([]BalanceResponse, error) {
	meta := contextutil.GetRequestMeta(ctx)
	s.logger.Debug("list leave balances",
		zap.String("actor_id", meta.ActorID),
		zap.String("employee_id", employeeID),
	)

	var target uuid.UUID
	if employeeID != "" {
		id, err := uuid.Parse(employeeID)
		if err != nil {
			s.logger.Warn("invalid employee id", zap.String("employee_id", employeeID))
			return nil, ledgererrors.ErrInvalidEmployeeID
		}
		target = id
	}

	if meta.IsAdmin() {
		var (
			balances []LeaveBalance
			err      error
		)
		if target == uuid.Nil {
			balances, err = s.repo.ListAll(ctx)
		} else {
			balances, err = s.repo.ListByEmployees(ctx, []uuid.UUID{target})
		}
		if err != nil {
			s.logger.Error("failed to list leave balances", zap.Error(err))
			return nil, err
		}
		return toBalanceResponses(balances), nil
	}

	actorID, err := uuid.Parse(meta.ActorID)
	if err != nil {
		s.logger.Warn("caller has no employee record", zap.String("user_id", meta.UserID))
		return nil, ledgererrors.ErrBalanceNotVisible
	}

	visible := []uuid.UUID{actorID}
	reports, err := s.repo.DirectReportIDs(ctx, actorID)
	if err != nil {
		s.logger.Error("failed to load direct reports", zap.Error(err))
		return nil, err
	}
	visible = append(visible, reports...)

	if target != uuid.Nil {
		if !containsID(visible, target) {
			s.logger.Warn("balance not visible to caller",
				zap.String("actor_id", meta.ActorID),
				zap.String("employee_id", employeeID),
			)
			return nil, ledgererrors.ErrBalanceNotVisible
		}
		visible = []uuid.UUID{target}
	}

	balances, err := s.repo.ListByEmployees(ctx, visible)
	if err != nil {
		s.logger.Error("failed to list leave balances", zap.Error(err))
		return nil, err
	}
	return toBalanceResponses(balances), nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
