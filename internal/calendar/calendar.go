package calendar

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// MaxSpanDays bounds any range handed to the calculator, inclusive of both ends.
const MaxSpanDays = 366

// HalfDay is the fixed duration of a half-day request.
var HalfDay = decimal.NewFromFloat(0.5)

// Day is one row of the holiday calendar as seen by the calculator.
// Only active, non-deleted holidays should be handed in.
type Day struct {
	Date         time.Time `json:"date"`
	Name         string    `json:"name"`
	Region       string    `json:"region"`
	IsWorkingDay bool      `json:"is_working_day"`
}

// Excluded is a weekday that was skipped because of a holiday.
type Excluded struct {
	Date   string `json:"date"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// DateOnly strips the clock and zone from t.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(v string) (time.Time, error) {
	return time.Parse(DateLayout, v)
}

// SpanDays counts the calendar days in [start, end].
func SpanDays(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours()/24) + 1
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// appliesTo reports whether a calendar row is in effect for region.
// Blank-region rows apply everywhere.
func appliesTo(d Day, region string) bool {
	return d.Region == "" || d.Region == region
}

// WorkingDays counts the days in [start, end] that are Monday to Friday and not
// an applicable holiday. A weekend marked as a working day counts as well.
// Holidays that removed a weekday are returned in date order.
func WorkingDays(start, end time.Time, region string, days []Day) (int, []Excluded) {
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return 0, nil
	}

	holidays := make(map[time.Time]Day)
	working := make(map[time.Time]bool)
	for _, d := range days {
		if !appliesTo(d, region) {
			continue
		}
		key := DateOnly(d.Date)
		if d.IsWorkingDay {
			working[key] = true
			continue
		}
		// Region-specific rows win over company-wide rows for the same date.
		if prev, ok := holidays[key]; ok && prev.Region != "" {
			continue
		}
		holidays[key] = d
	}

	count := 0
	excluded := []Excluded{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if working[day] {
			count++
			continue
		}
		if IsWeekend(day) {
			continue
		}
		if h, ok := holidays[day]; ok {
			excluded = append(excluded, Excluded{
				Date:   day.Format(DateLayout),
				Name:   h.Name,
				Region: h.Region,
			})
			continue
		}
		count++
	}

	return count, excluded
}

// Duration is the ledger amount for a request. Half-day requests are always 0.5
// and never consult the holiday calendar.
func Duration(start, end time.Time, halfDay bool, region string, days []Day) (decimal.Decimal, []Excluded) {
	if halfDay {
		return HalfDay, []Excluded{}
	}
	n, excluded := WorkingDays(start, end, region, days)
	return decimal.NewFromInt(int64(n)), excluded
}
