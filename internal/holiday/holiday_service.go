package holiday

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"go-hrms/internal/audit"
	"go-hrms/internal/calendar"
	holidayerrors "go-hrms/internal/holiday/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultRecurringYears = 5
	minNameLength         = 3
)

// CacheInvalidator drops cached calendar years after holidays change.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, years ...int)
}

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (HolidayResponse, error)
	List(ctx context.Context, q ListHolidaysQuery) ([]HolidayResponse, error)
	BulkCreate(ctx context.Context, req BulkCreateRequest) (BulkCreateResponse, error)
}

type service struct {
	db             *sql.DB
	repo           Repository
	recorder       audit.Recorder
	cache          CacheInvalidator
	recurringYears int
	now            func() time.Time
	logger         *zap.Logger
}

// NewService builds the registry. recurringYears is how many yearly
// occurrences follow a recurring holiday; zero means the default of five.
func NewService(db *sql.DB, repo Repository, recorder audit.Recorder, cache CacheInvalidator, recurringYears int, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	if recurringYears <= 0 {
		recurringYears = DefaultRecurringYears
	}
	return &service{
		db:             db,
		repo:           repo,
		recorder:       recorder,
		cache:          cache,
		recurringYears: recurringYears,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         l,
	}
}

func (s *service) today() time.Time {
	return calendar.DateOnly(s.now())
}

// validateCandidate checks one proposed holiday and returns the row to insert.
func (s *service) validateCandidate(req CreateHolidayRequest) (*Holiday, error) {
	name := strings.TrimSpace(req.Name)
	if req.IsRecurring && name == "" {
		return nil, holidayerrors.ErrRecurringNeedsName
	}
	if len([]rune(name)) < minNameLength {
		return nil, holidayerrors.ErrNameTooShort
	}

	date, err := calendar.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, holidayerrors.ErrInvalidDate
	}
	if date.Before(s.today()) {
		return nil, holidayerrors.ErrDateInPast
	}

	return &Holiday{
		Date:         date,
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		IsRecurring:  req.IsRecurring,
		Region:       strings.TrimSpace(req.Region),
		IsWorkingDay: req.IsWorkingDay,
		IsActive:     true,
	}, nil
}

func actorID(ctx context.Context) *uuid.UUID {
	id, err := uuid.Parse(contextutil.GetRequestMeta(ctx).UserID)
	if err != nil {
		return nil
	}
	return &id
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	s.logger.Debug("create holiday", zap.String("date", req.Date), zap.String("region", req.Region))

	h, err := s.validateCandidate(req)
	if err != nil {
		s.logger.Warn("create holiday rejected", zap.String("date", req.Date), zap.Error(err))
		return HolidayResponse{}, err
	}
	h.CreatedBy = actorID(ctx)
	if h.IsRecurring {
		group := uuid.New()
		h.RecurringGroupID = &group
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("begin tx failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rec := s.recorder.WithTx(tx)

	if err := qtx.Create(ctx, h); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, holidayerrors.ErrDuplicateHoliday) {
			s.logger.Warn("duplicate holiday", zap.String("date", req.Date), zap.String("region", h.Region))
		} else {
			s.logger.Error("create holiday failed", zap.Error(err))
		}
		return HolidayResponse{}, mapped
	}
	if err := rec.RecordCreate(ctx, *h); err != nil {
		return HolidayResponse{}, err
	}

	years := []int{h.Date.Year()}
	if h.IsRecurring {
		generated, err := s.generateOccurrences(ctx, qtx, rec, *h)
		if err != nil {
			return HolidayResponse{}, err
		}
		years = append(years, generated...)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit tx failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	s.cache.Invalidate(ctx, years...)

	s.logger.Info("holiday created",
		zap.String("holiday_id", h.ID.String()),
		zap.Bool("recurring", h.IsRecurring),
		zap.Int("occurrences", len(years)),
	)
	return toHolidayResponse(*h), nil
}

// occurrence returns base moved forward by n years. Feb 29 has no
// occurrence in a non-leap year.
func occurrence(base time.Time, n int) (time.Time, bool) {
	t := time.Date(base.Year()+n, base.Month(), base.Day(), 0, 0, 0, 0, time.UTC)
	return t, t.Month() == base.Month()
}

// generateOccurrences adds the following yearly copies of base to its group.
// Dates already taken for the region are skipped, including ones inserted
// concurrently by another request.
func (s *service) generateOccurrences(ctx context.Context, repo Repository, rec audit.Recorder, base Holiday) ([]int, error) {
	var years []int
	for n := 1; n <= s.recurringYears; n++ {
		date, ok := occurrence(base.Date, n)
		if !ok {
			continue
		}
		occ := base
		occ.ID = uuid.Nil
		occ.Date = date
		occ.CreatedAt = time.Time{}
		occ.UpdatedAt = time.Time{}

		created, err := repo.CreateIfAbsent(ctx, &occ)
		if err != nil {
			s.logger.Error("generate recurring holiday failed",
				zap.String("date", date.Format(calendar.DateLayout)),
				zap.Error(err),
			)
			return nil, err
		}
		if !created {
			s.logger.Debug("recurring occurrence exists, skipping",
				zap.String("date", date.Format(calendar.DateLayout)),
				zap.String("region", base.Region),
			)
			continue
		}
		if err := rec.RecordCreate(ctx, occ); err != nil {
			return nil, err
		}
		years = append(years, date.Year())
	}
	return years, nil
}

// retractGroup removes the future members of a series and unlinks the rest.
// The member identified by keep is left to the caller.
func (s *service) retractGroup(ctx context.Context, repo Repository, rec audit.Recorder, groupID, keep uuid.UUID) ([]int, error) {
	members, err := repo.FindByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("load recurring group failed", zap.String("group_id", groupID.String()), zap.Error(err))
		return nil, err
	}

	today := s.today()
	var years []int
	for _, m := range members {
		if m.ID == keep {
			continue
		}
		years = append(years, m.Date.Year())

		if m.Date.After(today) {
			if err := repo.Delete(ctx, m.ID); err != nil {
				s.logger.Error("delete future occurrence failed", zap.String("holiday_id", m.ID.String()), zap.Error(err))
				return nil, err
			}
			if err := rec.RecordHardDelete(ctx, m); err != nil {
				return nil, err
			}
			continue
		}

		before := m
		m.IsRecurring = false
		m.RecurringGroupID = nil
		if err := repo.Update(ctx, &m); err != nil {
			s.logger.Error("unlink occurrence failed", zap.String("holiday_id", m.ID.String()), zap.Error(err))
			return nil, err
		}
		if err := rec.RecordUpdate(ctx, before, m); err != nil {
			return nil, err
		}
	}
	return years, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	s.logger.Debug("update holiday", zap.String("holiday_id", id))

	holidayID, err := uuid.Parse(id)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}

	var newDate *time.Time
	if req.Date != nil {
		d, err := calendar.ParseDate(strings.TrimSpace(*req.Date))
		if err != nil {
			s.logger.Warn("update holiday rejected", zap.String("holiday_id", id), zap.Error(err))
			return HolidayResponse{}, holidayerrors.ErrInvalidDate
		}
		newDate = &d
	}
	if req.Name != nil && len([]rune(strings.TrimSpace(*req.Name))) < minNameLength {
		s.logger.Warn("update holiday rejected", zap.String("holiday_id", id))
		return HolidayResponse{}, holidayerrors.ErrNameTooShort
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("begin tx failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rec := s.recorder.WithTx(tx)

	h, err := qtx.FindByID(ctx, holidayID)
	if err != nil {
		return HolidayResponse{}, mapRepositoryError(err)
	}
	if h.IsDeleted {
		return HolidayResponse{}, holidayerrors.ErrHolidayNotFound
	}
	before := *h

	if newDate != nil {
		h.Date = *newDate
	}
	if req.Name != nil {
		h.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		h.Description = strings.TrimSpace(*req.Description)
	}
	if req.Region != nil {
		h.Region = strings.TrimSpace(*req.Region)
	}
	if req.IsWorkingDay != nil {
		h.IsWorkingDay = *req.IsWorkingDay
	}
	if req.IsActive != nil {
		h.IsActive = *req.IsActive
	}
	if req.IsRecurring != nil {
		h.IsRecurring = *req.IsRecurring
	}

	years := []int{before.Date.Year(), h.Date.Year()}
	startSeries := !before.IsRecurring && h.IsRecurring

	if before.IsRecurring && !h.IsRecurring && before.RecurringGroupID != nil {
		retracted, err := s.retractGroup(ctx, qtx, rec, *before.RecurringGroupID, h.ID)
		if err != nil {
			return HolidayResponse{}, err
		}
		years = append(years, retracted...)
		h.RecurringGroupID = nil
	}
	if startSeries {
		group := uuid.New()
		h.RecurringGroupID = &group
	}

	if err := qtx.Update(ctx, h); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, holidayerrors.ErrDuplicateHoliday) {
			s.logger.Warn("duplicate holiday", zap.String("holiday_id", id))
		} else {
			s.logger.Error("update holiday failed", zap.String("holiday_id", id), zap.Error(err))
		}
		return HolidayResponse{}, mapped
	}
	if err := rec.RecordUpdate(ctx, before, *h); err != nil {
		return HolidayResponse{}, err
	}

	if startSeries {
		generated, err := s.generateOccurrences(ctx, qtx, rec, *h)
		if err != nil {
			return HolidayResponse{}, err
		}
		years = append(years, generated...)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit tx failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	s.cache.Invalidate(ctx, years...)

	s.logger.Info("holiday updated", zap.String("holiday_id", id))
	return toHolidayResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete holiday", zap.String("holiday_id", id))

	holidayID, err := uuid.Parse(id)
	if err != nil {
		return holidayerrors.ErrInvalidHolidayID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rec := s.recorder.WithTx(tx)

	h, err := qtx.FindByID(ctx, holidayID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if h.IsDeleted {
		return holidayerrors.ErrHolidayNotFound
	}

	targets := []Holiday{*h}
	if h.RecurringGroupID != nil {
		targets, err = qtx.FindByGroup(ctx, *h.RecurringGroupID)
		if err != nil {
			s.logger.Error("load recurring group failed", zap.Error(err))
			return err
		}
	}

	var years []int
	for _, t := range targets {
		if t.IsDeleted {
			continue
		}
		before := t
		t.IsActive = false
		t.IsDeleted = true
		if err := qtx.Update(ctx, &t); err != nil {
			s.logger.Error("soft delete holiday failed", zap.String("holiday_id", t.ID.String()), zap.Error(err))
			return err
		}
		if err := rec.RecordUpdate(ctx, before, t); err != nil {
			return err
		}
		years = append(years, t.Date.Year())
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit tx failed", zap.Error(err))
		return err
	}
	s.cache.Invalidate(ctx, years...)

	s.logger.Info("holiday deleted", zap.String("holiday_id", id), zap.Int("rows", len(years)))
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (HolidayResponse, error) {
	holidayID, err := uuid.Parse(id)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}

	h, err := s.repo.FindByID(ctx, holidayID)
	if err != nil {
		return HolidayResponse{}, mapRepositoryError(err)
	}
	if !contextutil.GetRequestMeta(ctx).IsAdmin() && (!h.IsActive || h.IsDeleted) {
		return HolidayResponse{}, holidayerrors.ErrHolidayNotFound
	}
	return toHolidayResponse(*h), nil
}

func (s *service) List(ctx context.Context, q ListHolidaysQuery) ([]HolidayResponse, error) {
	f := ListFilter{
		Region:     strings.TrimSpace(q.Region),
		ActiveOnly: !contextutil.GetRequestMeta(ctx).IsAdmin(),
	}
	if q.StartDate != "" {
		d, err := calendar.ParseDate(q.StartDate)
		if err != nil {
			return nil, apperror.InvalidField("start_date")
		}
		f.From = &d
	}
	if q.EndDate != "" {
		d, err := calendar.ParseDate(q.EndDate)
		if err != nil {
			return nil, apperror.InvalidField("end_date")
		}
		f.To = &d
	}

	rows, err := s.repo.List(ctx, f)
	if err != nil {
		s.logger.Error("list holidays failed", zap.Error(err))
		return nil, err
	}

	out := make([]HolidayResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, toHolidayResponse(h))
	}
	return out, nil
}

func (s *service) BulkCreate(ctx context.Context, req BulkCreateRequest) (BulkCreateResponse, error) {
	s.logger.Debug("bulk create holidays", zap.Int("submitted", len(req.Holidays)))

	if len(req.Holidays) == 0 {
		return BulkCreateResponse{}, holidayerrors.ErrEmptyBatch
	}

	resp := BulkCreateResponse{
		TotalSubmitted:  len(req.Holidays),
		CreatedHolidays: []HolidayResponse{},
		SkippedHolidays: []SkippedHoliday{},
	}

	type candidate struct {
		index int
		req   CreateHolidayRequest
		row   *Holiday
	}
	var valid []candidate
	for i, item := range req.Holidays {
		row, err := s.validateCandidate(item)
		if err != nil {
			resp.SkippedHolidays = append(resp.SkippedHolidays, SkippedHoliday{Index: i, Data: item, Error: errorMessage(err)})
			continue
		}
		valid = append(valid, candidate{index: i, req: item, row: row})
	}

	createdBy := actorID(ctx)
	var years []int

	if len(valid) > 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			s.logger.Error("begin tx failed", zap.Error(err))
			return BulkCreateResponse{}, err
		}
		defer tx.Rollback()

		qtx := s.repo.WithTx(tx)
		rec := s.recorder.WithTx(tx)

		for _, c := range valid {
			h := c.row
			h.CreatedBy = createdBy
			if h.IsRecurring {
				group := uuid.New()
				h.RecurringGroupID = &group
			}

			created, err := qtx.CreateIfAbsent(ctx, h)
			if err != nil {
				s.logger.Error("bulk create holiday failed", zap.Int("index", c.index), zap.Error(err))
				return BulkCreateResponse{}, err
			}
			if !created {
				resp.SkippedHolidays = append(resp.SkippedHolidays, SkippedHoliday{
					Index: c.index,
					Data:  c.req,
					Error: holidayerrors.ErrDuplicateHoliday.Message,
				})
				continue
			}
			if err := rec.RecordCreate(ctx, *h); err != nil {
				return BulkCreateResponse{}, err
			}
			years = append(years, h.Date.Year())

			if h.IsRecurring {
				generated, err := s.generateOccurrences(ctx, qtx, rec, *h)
				if err != nil {
					return BulkCreateResponse{}, err
				}
				years = append(years, generated...)
			}
			resp.CreatedHolidays = append(resp.CreatedHolidays, toHolidayResponse(*h))
		}

		if err := tx.Commit(); err != nil {
			s.logger.Error("commit tx failed", zap.Error(err))
			return BulkCreateResponse{}, err
		}
		s.cache.Invalidate(ctx, years...)
	}

	sort.Slice(resp.SkippedHolidays, func(i, j int) bool {
		return resp.SkippedHolidays[i].Index < resp.SkippedHolidays[j].Index
	})
	resp.CreatedCount = len(resp.CreatedHolidays)
	resp.SkippedCount = len(resp.SkippedHolidays)

	s.logger.Info("bulk holidays processed",
		zap.Int("created", resp.CreatedCount),
		zap.Int("skipped", resp.SkippedCount),
	)
	return resp, nil
}

func errorMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
