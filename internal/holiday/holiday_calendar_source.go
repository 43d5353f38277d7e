package holiday

import (
	"context"
	"time"

	"go-hrms/internal/calendar"
)

// CalendarSource feeds the working-days calculator from the holiday table.
type CalendarSource struct {
	repo Repository
}

func NewCalendarSource(repo Repository) *CalendarSource {
	return &CalendarSource{repo: repo}
}

func (s *CalendarSource) CalendarDays(ctx context.Context, from, to time.Time) ([]calendar.Day, error) {
	rows, err := s.repo.ActiveBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	days := make([]calendar.Day, 0, len(rows))
	for _, h := range rows {
		days = append(days, calendar.Day{
			Date:         calendar.DateOnly(h.Date),
			Name:         h.Name,
			Region:       h.Region,
			IsWorkingDay: h.IsWorkingDay,
		})
	}
	return days, nil
}
