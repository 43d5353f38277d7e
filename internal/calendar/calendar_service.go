package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	calendarerrors "go-hrms/internal/calendar/errors"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const HolidayCacheKeyPrefix = "calendar:holidays:"

func HolidayCacheKey(year int) string {
	return HolidayCacheKeyPrefix + strconv.Itoa(year)
}

// HolidaySource loads the active, non-deleted calendar rows dated within [from, to].
type HolidaySource interface {
	CalendarDays(ctx context.Context, from, to time.Time) ([]Day, error)
}

//go:generate mockgen -source=calendar_service.go -destination=mock/calendar_service_mock.go -package=mock
type Service interface {
	WorkingDays(ctx context.Context, start, end time.Time, region string) (int, []Excluded, error)
	Duration(ctx context.Context, start, end time.Time, halfDay bool, region string) (decimal.Decimal, []Excluded, error)
	Invalidate(ctx context.Context, years ...int)
}

type service struct {
	source HolidaySource
	rdb    *redis.Client
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService builds a calculator. rdb may be nil, in which case every call reads the source.
func NewService(source HolidaySource, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &service{
		source: source,
		rdb:    rdb,
		ttl:    ttl,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) WorkingDays(ctx context.Context, start, end time.Time, region string) (int, []Excluded, error) {
	days, err := s.daysBetween(ctx, start, end)
	if err != nil {
		return 0, nil, err
	}
	n, excluded := WorkingDays(start, end, region, days)
	return n, excluded, nil
}

func (s *service) Duration(ctx context.Context, start, end time.Time, halfDay bool, region string) (decimal.Decimal, []Excluded, error) {
	if halfDay {
		return HalfDay, []Excluded{}, nil
	}
	days, err := s.daysBetween(ctx, start, end)
	if err != nil {
		return decimal.Zero, nil, err
	}
	d, excluded := Duration(start, end, false, region, days)
	return d, excluded, nil
}

// Invalidate drops the cached calendar for the given years.
func (s *service) Invalidate(ctx context.Context, years ...int) {
	if s.rdb == nil || len(years) == 0 {
		return
	}
	keys := make([]string, 0, len(years))
	seen := make(map[int]bool, len(years))
	for _, y := range years {
		if seen[y] {
			continue
		}
		seen[y] = true
		keys = append(keys, HolidayCacheKey(y))
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("invalidate holiday cache failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (s *service) daysBetween(ctx context.Context, start, end time.Time) ([]Day, error) {
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return nil, nil
	}
	if SpanDays(start, end) > MaxSpanDays {
		return nil, calendarerrors.ErrRangeTooLong
	}

	var out []Day
	for year := start.Year(); year <= end.Year(); year++ {
		days, err := s.yearDays(ctx, year)
		if err != nil {
			return nil, err
		}
		out = append(out, days...)
	}
	return out, nil
}

func (s *service) yearDays(ctx context.Context, year int) ([]Day, error) {
	key := HolidayCacheKey(year)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var days []Day
			if json.Unmarshal([]byte(cached), &days) == nil {
				return days, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

		days, err := s.source.CalendarDays(ctx, from, to)
		if err != nil {
			s.logger.Error("load holiday calendar failed", zap.Int("year", year), zap.Error(err))
			return nil, fmt.Errorf("load holiday calendar %d: %w", year, err)
		}
		if days == nil {
			days = []Day{}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(days); err == nil {
				s.rdb.Set(ctx, key, string(payload), s.ttl)
			}
		}
		return days, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]Day), nil
}
