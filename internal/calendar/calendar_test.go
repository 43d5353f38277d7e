package calendar_test

import (
	"testing"
	"time"

	"go-hrms/internal/calendar"

	"github.com/stretchr/testify/assert"
)

func date(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := calendar.ParseDate(v)
	assert.NoError(t, err)
	return d
}

func TestWorkingDays(t *testing.T) {
	republicDay := calendar.Day{Date: date(t, "2026-01-26"), Name: "Republic Day"}

	t.Run("single weekday", func(t *testing.T) {
		n, excluded := calendar.WorkingDays(date(t, "2026-01-27"), date(t, "2026-01-27"), "", nil)
		assert.Equal(t, 1, n)
		assert.Empty(t, excluded)
	})

	t.Run("single weekend day", func(t *testing.T) {
		n, excluded := calendar.WorkingDays(date(t, "2026-01-24"), date(t, "2026-01-24"), "", nil)
		assert.Equal(t, 0, n)
		assert.Empty(t, excluded)
	})

	t.Run("span with holiday", func(t *testing.T) {
		n, excluded := calendar.WorkingDays(date(t, "2026-01-24"), date(t, "2026-01-28"), "", []calendar.Day{republicDay})

		assert.Equal(t, 2, n)
		assert.Equal(t, []calendar.Excluded{{Date: "2026-01-26", Name: "Republic Day"}}, excluded)
	})

	t.Run("friday to tuesday across weekend", func(t *testing.T) {
		n, _ := calendar.WorkingDays(date(t, "2026-02-20"), date(t, "2026-02-24"), "", nil)
		assert.Equal(t, 3, n)
	})

	t.Run("region filter", func(t *testing.T) {
		mumbai := calendar.Day{Date: date(t, "2026-01-27"), Name: "Local Fair", Region: "Mumbai"}

		n, excluded := calendar.WorkingDays(date(t, "2026-01-27"), date(t, "2026-01-27"), "Pune", []calendar.Day{mumbai})
		assert.Equal(t, 1, n)
		assert.Empty(t, excluded)

		n, excluded = calendar.WorkingDays(date(t, "2026-01-27"), date(t, "2026-01-27"), "Mumbai", []calendar.Day{mumbai})
		assert.Equal(t, 0, n)
		assert.Len(t, excluded, 1)
	})

	t.Run("blank region holiday applies to every region", func(t *testing.T) {
		n, _ := calendar.WorkingDays(date(t, "2026-01-26"), date(t, "2026-01-26"), "Mumbai", []calendar.Day{republicDay})
		assert.Equal(t, 0, n)
	})

	t.Run("compensatory working saturday counts", func(t *testing.T) {
		sat := calendar.Day{Date: date(t, "2026-01-24"), Name: "Compensatory Saturday", IsWorkingDay: true}

		n, excluded := calendar.WorkingDays(date(t, "2026-01-24"), date(t, "2026-01-25"), "", []calendar.Day{sat})
		assert.Equal(t, 1, n)
		assert.Empty(t, excluded)
	})

	t.Run("end before start", func(t *testing.T) {
		n, excluded := calendar.WorkingDays(date(t, "2026-01-28"), date(t, "2026-01-27"), "", nil)
		assert.Equal(t, 0, n)
		assert.Nil(t, excluded)
	})
}

func TestDuration(t *testing.T) {
	holiday := []calendar.Day{{Date: date(t, "2026-01-26"), Name: "Republic Day"}}

	t.Run("half day ignores holidays", func(t *testing.T) {
		d, excluded := calendar.Duration(date(t, "2026-01-26"), date(t, "2026-01-26"), true, "", holiday)
		assert.Equal(t, "0.5", d.String())
		assert.Empty(t, excluded)
	})

	t.Run("full day counts working days", func(t *testing.T) {
		d, excluded := calendar.Duration(date(t, "2026-01-26"), date(t, "2026-01-28"), false, "", holiday)
		assert.Equal(t, "2", d.String())
		assert.Len(t, excluded, 1)
	})
}

func TestSpanDays(t *testing.T) {
	assert.Equal(t, 1, calendar.SpanDays(date(t, "2026-03-02"), date(t, "2026-03-02")))
	assert.Equal(t, 365, calendar.SpanDays(date(t, "2026-01-01"), date(t, "2026-12-31")))
	assert.Equal(t, 366, calendar.SpanDays(date(t, "2028-01-01"), date(t, "2028-12-31")))
	assert.Equal(t, 366, calendar.SpanDays(date(t, "2026-03-02").Add(15*time.Hour), date(t, "2027-03-02")))
}
