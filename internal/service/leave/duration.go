package leave

import "time"

// WorkingDays counts the days a leave spanning start through end
// (inclusive) occupies. With excludeWeekends set, Saturdays and Sundays
// are skipped; a weekend-only span counts as zero. An end before start
// also counts as zero.
func WorkingDays(start, end time.Time, excludeWeekends bool) float64 {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return 0
	}

	if !excludeWeekends {
		return float64(end.Sub(start)/(24*time.Hour)) + 1
	}

	var days float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
