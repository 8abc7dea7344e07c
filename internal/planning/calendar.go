package planning

import (
	"fmt"

	"github.com/nktomer45/planboard/internal/domain"
)

// DefaultMonths are the month labels of the standard planning horizon.
var DefaultMonths = []string{"Jan", "Feb", "Mar", "Apr"}

// DefaultWeeksPerMonth is the number of week columns under each month.
const DefaultWeeksPerMonth = 4

// BuildCalendar returns the standard 16-week planning calendar (w1..w16,
// four weeks per month from Jan to Apr).
func BuildCalendar() []domain.CalendarWeek {
	return BuildCalendarN(DefaultMonths, DefaultWeeksPerMonth)
}

// BuildCalendarN generates weeksPerMonth weeks for every month label, in the
// order given. Week numbering is continuous across months.
func BuildCalendarN(months []string, weeksPerMonth int) []domain.CalendarWeek {
	if weeksPerMonth <= 0 || len(months) == 0 {
		return []domain.CalendarWeek{}
	}

	weeks := make([]domain.CalendarWeek, 0, len(months)*weeksPerMonth)
	for m, month := range months {
		for i := 1; i <= weeksPerMonth; i++ {
			n := m*weeksPerMonth + i
			weeks = append(weeks, domain.CalendarWeek{
				ID:    fmt.Sprintf("w%d", n),
				Week:  fmt.Sprintf("W%d", n),
				Month: month,
			})
		}
	}

	return weeks
}

// weekIndex maps week ids to their position in the calendar.
func weekIndex(calendar []domain.CalendarWeek) map[string]int {
	idx := make(map[string]int, len(calendar))
	for i, w := range calendar {
		idx[w.ID] = i
	}
	return idx
}
