package calendar_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/calendar"
	calendarerrors "go-hrms/internal/calendar/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type fakeHolidaySource struct {
	calls          int
	calendarDaysFn func(ctx context.Context, from, to time.Time) ([]calendar.Day, error)
}

func (f *fakeHolidaySource) CalendarDays(ctx context.Context, from, to time.Time) ([]calendar.Day, error) {
	f.calls++
	if f.calendarDaysFn != nil {
		return f.calendarDaysFn(ctx, from, to)
	}
	return nil, nil
}

func TestCalendarService_WorkingDays(t *testing.T) {
	ctx := context.Background()
	republicDay := calendar.Day{Date: time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC), Name: "Republic Day"}

	t.Run("cache miss loads source and fills cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		source := &fakeHolidaySource{
			calendarDaysFn: func(ctx context.Context, from, to time.Time) ([]calendar.Day, error) {
				assert.Equal(t, "2026-01-01", from.Format(calendar.DateLayout))
				assert.Equal(t, "2026-12-31", to.Format(calendar.DateLayout))
				return []calendar.Day{republicDay}, nil
			},
		}
		svc := calendar.NewService(source, rdb, time.Hour)

		payload, _ := json.Marshal([]calendar.Day{republicDay})
		mock.ExpectGet(calendar.HolidayCacheKey(2026)).RedisNil()
		mock.ExpectSet(calendar.HolidayCacheKey(2026), string(payload), time.Hour).SetVal("OK")

		n, excluded, err := svc.WorkingDays(ctx, republicDay.Date, republicDay.Date.AddDate(0, 0, 2), "")

		assert.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Len(t, excluded, 1)
		assert.Equal(t, 1, source.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache hit skips source", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		source := &fakeHolidaySource{}
		svc := calendar.NewService(source, rdb, time.Hour)

		payload, _ := json.Marshal([]calendar.Day{republicDay})
		mock.ExpectGet(calendar.HolidayCacheKey(2026)).SetVal(string(payload))

		n, _, err := svc.WorkingDays(ctx, republicDay.Date, republicDay.Date, "")

		assert.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Equal(t, 0, source.calls)
	})

	t.Run("range across years reads both years", func(t *testing.T) {
		source := &fakeHolidaySource{}
		svc := calendar.NewService(source, nil, time.Hour)

		_, _, err := svc.WorkingDays(ctx,
			time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC), "")

		assert.NoError(t, err)
		assert.Equal(t, 2, source.calls)
	})

	t.Run("negative source error", func(t *testing.T) {
		source := &fakeHolidaySource{
			calendarDaysFn: func(ctx context.Context, from, to time.Time) ([]calendar.Day, error) {
				return nil, errors.New("db down")
			},
		}
		svc := calendar.NewService(source, nil, time.Hour)

		_, _, err := svc.WorkingDays(ctx, republicDay.Date, republicDay.Date, "")

		assert.ErrorContains(t, err, "db down")
	})
}

func TestCalendarService_Duration(t *testing.T) {
	source := &fakeHolidaySource{}
	svc := calendar.NewService(source, nil, time.Hour)

	d, excluded, err := svc.Duration(context.Background(),
		time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC), true, "")

	assert.NoError(t, err)
	assert.Equal(t, "0.5", d.String())
	assert.Empty(t, excluded)
	assert.Equal(t, 0, source.calls)
}

func TestCalendarService_Invalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := calendar.NewService(&fakeHolidaySource{}, rdb, time.Hour)

	mock.ExpectDel(calendar.HolidayCacheKey(2026), calendar.HolidayCacheKey(2027)).SetVal(2)

	svc.Invalidate(context.Background(), 2026, 2027, 2026)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarService_RangeTooLong(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	source := &fakeHolidaySource{}
	svc := calendar.NewService(source, rdb, time.Hour)
	start := time.Date(2027, 1, 4, 0, 0, 0, 0, time.UTC)

	_, _, err := svc.WorkingDays(context.Background(), start, time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC), "")
	assert.ErrorIs(t, err, calendarerrors.ErrRangeTooLong)

	_, _, err = svc.Duration(context.Background(), start, start.AddDate(1, 0, 1), false, "")
	assert.ErrorIs(t, err, calendarerrors.ErrRangeTooLong)

	assert.Equal(t, 0, source.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
