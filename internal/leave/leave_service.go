package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-hrms/internal/audit"
	"go-hrms/internal/calendar"
	"go-hrms/internal/events"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/ledger"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StatusFilterAll disables the status filter on listings.
const StatusFilterAll = "all"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	ListMine(ctx context.Context, status string) ([]LeaveResponse, error)
	// ListSubordinates returns the requests of the caller's direct reports,
	// or of everyone for an admin. An empty status means PENDING.
	ListSubordinates(ctx context.Context, status string) ([]LeaveResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, id string) (LeaveResponse, error)
	Reject(ctx context.Context, id, reason string) (LeaveResponse, error)
	Cancel(ctx context.Context, id string) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	ledger   ledger.Ledger
	calendar calendar.Service
	recorder audit.Recorder
	outbox   kafka.OutboxRepository
	now      func() time.Time
	logger   *zap.Logger
}

// NewService wires the state machine. outbox may be nil, in which case no
// status events are queued.
func NewService(
	db *sql.DB,
	repo Repository,
	ledgerSvc ledger.Ledger,
	calendarSvc calendar.Service,
	recorder audit.Recorder,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		ledger:   ledgerSvc,
		calendar: calendarSvc,
		recorder: recorder,
		outbox:   outbox,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

func (s *service) today() time.Time {
	return calendar.DateOnly(s.now())
}

type period struct {
	leaveType     string
	start         time.Time
	end           time.Time
	isHalfDay     bool
	halfDayPeriod *string
}

// validatePeriod applies the creation rules: dates in range and at most
// calendar.MaxSpanDays long, future-only full days, same-day-or-future half
// days and no weekend boundary.
func (s *service) validatePeriod(leaveType, startDate, endDate string, isHalfDay bool, halfDayPeriod string) (period, error) {
	if !ledger.IsValidLeaveType(leaveType) {
		return period{}, leaveerrors.ErrInvalidLeaveType
	}
	start, err := calendar.ParseDate(startDate)
	if err != nil {
		return period{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := calendar.ParseDate(endDate)
	if err != nil {
		return period{}, leaveerrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return period{}, leaveerrors.ErrInvalidDateRange
	}
	if calendar.SpanDays(start, end) > calendar.MaxSpanDays {
		return period{}, leaveerrors.ErrLeaveTooLong
	}

	p := period{leaveType: leaveType, start: start, end: end, isHalfDay: isHalfDay}
	today := s.today()
	halfDayPeriod = strings.TrimSpace(halfDayPeriod)

	if isHalfDay {
		if !start.Equal(end) {
			return period{}, leaveerrors.ErrHalfDaySpan
		}
		if halfDayPeriod != FirstHalf && halfDayPeriod != SecondHalf {
			return period{}, leaveerrors.ErrHalfDayPeriodRequired
		}
		if start.Before(today) {
			return period{}, leaveerrors.ErrHalfDayInPast
		}
		p.halfDayPeriod = &halfDayPeriod
	} else {
		if halfDayPeriod != "" {
			return period{}, leaveerrors.ErrHalfDayPeriodNotAllowed
		}
		if !start.After(today) {
			return period{}, leaveerrors.ErrStartNotInFuture
		}
	}

	if calendar.IsWeekend(start) || calendar.IsWeekend(end) {
		return period{}, leaveerrors.ErrWeekendBoundary
	}
	return p, nil
}

// checkBalance fails when amount exceeds what is left of leaveType. UNPAID
// leave has no ceiling.
func checkBalance(ctx context.Context, l ledger.Ledger, employeeID uuid.UUID, leaveType string, amount decimal.Decimal) error {
	if leaveType == ledger.LeaveTypeUnpaid {
		return nil
	}
	b, err := l.Balance(ctx, employeeID, leaveType)
	if err != nil {
		return err
	}
	remaining := b.Remaining()
	if amount.GreaterThan(remaining) {
		return leaveerrors.ErrInsufficientBalance.WithDetails(map[string]any{
			"leave_type": leaveType,
			"requested":  amount.InexactFloat64(),
			"remaining":  remaining.InexactFloat64(),
			"shortfall":  amount.Sub(remaining).InexactFloat64(),
		})
	}
	return nil
}

func callerID(meta contextutil.RequestMeta) (uuid.UUID, bool) {
	if meta.ActorID == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(meta.ActorID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func parseStatusFilter(status, fallback string) (string, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch {
	case status == "":
		return fallback, nil
	case status == strings.ToUpper(StatusFilterAll):
		return "", nil
	case IsValidStatus(status):
		return status, nil
	}
	return "", leaveerrors.ErrInvalidStatusFilter
}

func (s *service) queueEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest, from string, actionBy *uuid.UUID, delta decimal.Decimal) error {
	if s.outbox == nil {
		return nil
	}
	payload := events.LeaveStatusChangedEvent{
		EventType:   events.LeaveStatusChangedType,
		LeaveID:     l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LeaveType:   l.LeaveType,
		FromStatus:  from,
		ToStatus:    l.Status,
		LedgerDelta: delta.String(),
		OccurredAt:  s.now(),
	}
	if actionBy != nil {
		payload.ActionBy = actionBy.String()
	}
	event, err := kafka.NewEvent(ctx, kafka.AggregateLeave, l.ID.String(), events.LeaveStatusChangedType, events.LeaveStatusTopic, payload)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("leave outbox persist failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) Apply(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	meta := contextutil.GetRequestMeta(ctx)
	s.logger.Debug("apply leave requested",
		zap.String("actor_id", meta.ActorID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Bool("is_half_day", req.IsHalfDay),
	)

	employeeID, ok := callerID(meta)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrNoEmployeeProfile
	}

	p, err := s.validatePeriod(req.LeaveType, req.StartDate, req.EndDate, req.IsHalfDay, req.HalfDayPeriod)
	if err != nil {
		s.logger.Warn("apply leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	owner, err := qtx.LockOwner(ctx, employeeID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrEmployeeNotFound)
	}

	overlap, err := qtx.HasOverlap(ctx, employeeID, p.start, p.end, nil)
	if err != nil {
		s.logger.Error("apply leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("apply leave overlap detected",
			zap.String("employee_id", employeeID.String()),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	duration, excluded, err := s.calendar.Duration(ctx, p.start, p.end, p.isHalfDay, owner.Region)
	if err != nil {
		s.logger.Error("apply leave duration failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !duration.IsPositive() {
		return LeaveResponse{}, leaveerrors.ErrNoWorkingDays
	}

	if err := checkBalance(ctx, s.ledger.WithTx(tx), employeeID, p.leaveType, duration); err != nil {
		s.logger.Warn("apply leave balance check failed",
			zap.String("employee_id", employeeID.String()),
			zap.String("leave_type", p.leaveType),
			zap.String("requested", duration.String()),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		LeaveType:     p.leaveType,
		StartDate:     p.start,
		EndDate:       p.end,
		IsHalfDay:     p.isHalfDay,
		HalfDayPeriod: p.halfDayPeriod,
		Reason:        strings.TrimSpace(req.Reason),
		Status:        StatusPending,
		BilledDays:    decimal.Zero,
	}
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if err := s.recorder.WithTx(tx).RecordCreate(ctx, l); err != nil {
		return LeaveResponse{}, err
	}
	if err := s.queueEvent(ctx, tx, l, "", nil, decimal.Zero); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave applied",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.String("duration", duration.String()),
		zap.Int("excluded_holidays", len(excluded)),
	)

	resp := mapToResponse(*l)
	d := duration.InexactFloat64()
	resp.Duration = &d
	resp.ExcludedHolidays = excluded
	return resp, nil
}

// canView reports whether the caller may read l: the owner, the owner's
// direct manager, or an admin.
func canView(meta contextutil.RequestMeta, caller uuid.UUID, owner *Owner) bool {
	if meta.IsAdmin() {
		return true
	}
	if caller == uuid.Nil || owner == nil {
		return false
	}
	return owner.ID == caller || (owner.ManagerID != nil && *owner.ManagerID == caller)
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	meta := contextutil.GetRequestMeta(ctx)
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	owner, err := s.repo.FindOwner(ctx, l.EmployeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveResponse{}, err
	}

	caller, _ := callerID(meta)
	if !canView(meta, caller, owner) {
		s.logger.Warn("leave not visible to caller",
			zap.String("leave_id", id),
			zap.String("actor_id", meta.ActorID),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	resp := mapToResponse(*l)
	region := ""
	if owner != nil {
		region = owner.Region
	}
	duration, excluded, err := s.calendar.Duration(ctx, l.StartDate, l.EndDate, l.IsHalfDay, region)
	if err != nil {
		s.logger.Warn("leave duration unavailable", zap.String("leave_id", id), zap.Error(err))
		return resp, nil
	}
	d := duration.InexactFloat64()
	resp.Duration = &d
	resp.ExcludedHolidays = excluded
	return resp, nil
}

func (s *service) ListMine(ctx context.Context, status string) ([]LeaveResponse, error) {
	meta := contextutil.GetRequestMeta(ctx)
	employeeID, ok := callerID(meta)
	if !ok {
		return nil, leaveerrors.ErrNoEmployeeProfile
	}
	filter, err := parseStatusFilter(status, "")
	if err != nil {
		return nil, err
	}

	leaves, err := s.repo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		s.logger.Error("list own leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListSubordinates(ctx context.Context, status string) ([]LeaveResponse, error) {
	meta := contextutil.GetRequestMeta(ctx)
	filter, err := parseStatusFilter(status, StatusPending)
	if err != nil {
		return nil, err
	}

	var leaves []LeaveRequest
	if meta.IsAdmin() {
		leaves, err = s.repo.ListAll(ctx, filter)
	} else {
		managerID, ok := callerID(meta)
		if !ok {
			return nil, leaveerrors.ErrNoEmployeeProfile
		}
		leaves, err = s.repo.ListByManager(ctx, managerID, filter)
	}
	if err != nil {
		s.logger.Error("list subordinate leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	meta := contextutil.GetRequestMeta(ctx)
	s.logger.Debug("update leave requested", zap.String("leave_id", id), zap.String("actor_id", meta.ActorID))

	employeeID, ok := callerID(meta)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrNoEmployeeProfile
	}
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if l.EmployeeID != employeeID {
		s.logger.Warn("update leave by non-owner", zap.String("leave_id", id), zap.String("actor_id", meta.ActorID))
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}
	if l.Status != StatusPending || !l.StartDate.After(s.today()) {
		return LeaveResponse{}, leaveerrors.ErrNotEditable
	}

	before := *l

	leaveType := l.LeaveType
	if req.LeaveType != nil {
		leaveType = *req.LeaveType
	}
	startDate := l.StartDate.Format(calendar.DateLayout)
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	endDate := l.EndDate.Format(calendar.DateLayout)
	if req.EndDate != nil {
		endDate = *req.EndDate
	}
	isHalfDay := l.IsHalfDay
	if req.IsHalfDay != nil {
		isHalfDay = *req.IsHalfDay
	}
	halfDayPeriod := ""
	if l.HalfDayPeriod != nil {
		halfDayPeriod = *l.HalfDayPeriod
	}
	if req.HalfDayPeriod != nil {
		halfDayPeriod = *req.HalfDayPeriod
	}
	if !isHalfDay && req.HalfDayPeriod == nil {
		halfDayPeriod = ""
	}

	p, err := s.validatePeriod(leaveType, startDate, endDate, isHalfDay, halfDayPeriod)
	if err != nil {
		s.logger.Warn("update leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	owner, err := qtx.LockOwner(ctx, employeeID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrEmployeeNotFound)
	}

	overlap, err := qtx.HasOverlap(ctx, employeeID, p.start, p.end, &l.ID)
	if err != nil {
		s.logger.Error("update leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	duration, excluded, err := s.calendar.Duration(ctx, p.start, p.end, p.isHalfDay, owner.Region)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !duration.IsPositive() {
		return LeaveResponse{}, leaveerrors.ErrNoWorkingDays
	}
	if err := checkBalance(ctx, s.ledger.WithTx(tx), employeeID, p.leaveType, duration); err != nil {
		return LeaveResponse{}, err
	}

	l.LeaveType = p.leaveType
	l.StartDate = p.start
	l.EndDate = p.end
	l.IsHalfDay = p.isHalfDay
	l.HalfDayPeriod = p.halfDayPeriod
	if req.Reason != nil {
		l.Reason = strings.TrimSpace(*req.Reason)
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.recorder.WithTx(tx).RecordUpdate(ctx, before, *l); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave updated", zap.String("leave_id", id))
	resp := mapToResponse(*l)
	d := duration.InexactFloat64()
	resp.Duration = &d
	resp.ExcludedHolidays = excluded
	return resp, nil
}

func (s *service) Approve(ctx context.Context, id string) (LeaveResponse, error) {
	return s.transition(ctx, id, StatusApproved, "")
}

func (s *service) Reject(ctx context.Context, id, reason string) (LeaveResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	return s.transition(ctx, id, StatusRejected, reason)
}

func (s *service) Cancel(ctx context.Context, id string) (LeaveResponse, error) {
	return s.transition(ctx, id, StatusCancelled, "")
}

// authorizeTransition: admins and the direct manager may make any legal
// move; the owner may only withdraw a request that is still pending.
func authorizeTransition(meta contextutil.RequestMeta, caller uuid.UUID, owner *Owner, from, to string) error {
	if meta.IsAdmin() {
		return nil
	}
	if caller == uuid.Nil {
		return leaveerrors.ErrNoEmployeeProfile
	}
	if owner.ManagerID != nil && *owner.ManagerID == caller {
		return nil
	}
	if owner.ID == caller && from == StatusPending && to == StatusCancelled {
		return nil
	}
	return leaveerrors.ErrNotAuthorizedToAct
}

// transition moves a request to status `to` and applies the ledger effect
// of the move in the same transaction. The request row is locked first so
// concurrent transitions on it serialize and each is billed exactly once.
func (s *service) transition(ctx context.Context, id, to, reason string) (LeaveResponse, error) {
	meta := contextutil.GetRequestMeta(ctx)
	s.logger.Debug("leave transition requested",
		zap.String("leave_id", id),
		zap.String("to", to),
		zap.String("actor_id", meta.ActorID),
	)

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	caller, _ := callerID(meta)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave transition begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	txLedger := s.ledger.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}

	owner, err := qtx.LockOwner(ctx, l.EmployeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		owner = &Owner{ID: l.EmployeeID}
	} else if err != nil {
		s.logger.Error("leave transition owner lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	from := l.Status
	if err := authorizeTransition(meta, caller, owner, from, to); err != nil {
		s.logger.Warn("leave transition not authorized",
			zap.String("leave_id", id),
			zap.String("actor_id", meta.ActorID),
			zap.String("from", from),
			zap.String("to", to),
		)
		return LeaveResponse{}, err
	}
	if !CanTransition(from, to) {
		s.logger.Warn("invalid leave transition",
			zap.String("leave_id", id),
			zap.String("from", from),
			zap.String("to", to),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition.WithDetails(map[string]string{
			"from": from,
			"to":   to,
		})
	}

	before := *l
	delta := decimal.Zero

	switch effect := BillingEffect(from, to); effect {
	case Deduct:
		// A rejected request may have had its days taken by a later one.
		overlap, err := qtx.HasOverlap(ctx, l.EmployeeID, l.StartDate, l.EndDate, &l.ID)
		if err != nil {
			s.logger.Error("leave transition overlap check failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		if overlap {
			s.logger.Warn("leave approval overlaps another request",
				zap.String("leave_id", id),
				zap.String("from", from),
			)
			return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
		}
		amount, _, err := s.calendar.Duration(ctx, l.StartDate, l.EndDate, l.IsHalfDay, owner.Region)
		if err != nil {
			s.logger.Error("leave transition duration failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		if amount.IsPositive() {
			if _, err := txLedger.Deduct(ctx, l.EmployeeID, l.LeaveType, amount); err != nil {
				return LeaveResponse{}, err
			}
		}
		l.BilledDays = amount
		delta = amount
	case Refund:
		if l.BilledDays.IsPositive() {
			if _, err := txLedger.Refund(ctx, l.EmployeeID, l.LeaveType, l.BilledDays); err != nil {
				return LeaveResponse{}, err
			}
		}
		delta = l.BilledDays.Neg()
		l.BilledDays = decimal.Zero
	}

	now := s.now()
	l.Status = to
	l.ActionAt = &now
	if caller != uuid.Nil {
		l.ActionBy = &caller
	} else {
		l.ActionBy = nil
	}
	switch to {
	case StatusRejected:
		l.RejectionReason = &reason
	case StatusApproved:
		l.RejectionReason = nil
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("leave transition persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.recorder.WithTx(tx).RecordUpdate(ctx, before, *l); err != nil {
		return LeaveResponse{}, err
	}
	if err := s.queueEvent(ctx, tx, l, from, l.ActionBy, delta); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("leave transition commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave transitioned",
		zap.String("leave_id", id),
		zap.String("from", from),
		zap.String("to", to),
		zap.Bool("revocation", IsRevocation(from)),
		zap.String("ledger_delta", delta.String()),
	)
	return mapToResponse(*l), nil
}

// Delete removes a request for good. An approved request is refunded first
// so the ledger never keeps days billed to a row that no longer exists.
func (s *service) Delete(ctx context.Context, id string) error {
	meta := contextutil.GetRequestMeta(ctx)
	if !meta.IsAdmin() {
		return leaveerrors.ErrHardDeleteAdminOnly
	}
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, leaveID)
	if err != nil {
		return mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}

	if l.Status == StatusApproved && l.BilledDays.IsPositive() {
		if _, err := s.ledger.WithTx(tx).Refund(ctx, l.EmployeeID, l.LeaveType, l.BilledDays); err != nil {
			return err
		}
	}
	if err := qtx.Delete(ctx, l.ID); err != nil {
		s.logger.Error("delete leave persist failed", zap.Error(err))
		return err
	}
	if err := s.recorder.WithTx(tx).RecordHardDelete(ctx, l); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete leave commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("leave deleted",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
		zap.String("refunded", l.BilledDays.String()),
	)
	return nil
}

func mapRepositoryError(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
