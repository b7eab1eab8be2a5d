package numbering

import "time"

// Range is the half-open date interval [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls within the range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// Midnight truncates t to 00:00 UTC of its calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Day covers the calendar day of t.
func Day(t time.Time) Range {
	from := Midnight(t)
	return Range{From: from, To: from.AddDate(0, 0, 1)}
}

// Month covers the calendar month of t.
func Month(t time.Time) Range {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Range{From: from, To: from.AddDate(0, 1, 0)}
}

// Year covers the calendar year of t.
func Year(t time.Time) Range {
	from := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return Range{From: from, To: from.AddDate(1, 0, 0)}
}

// Week covers the Monday-based week of t.
func Week(t time.Time) Range {
	from := Midnight(t)
	offset := (int(from.Weekday()) + 6) % 7
	from = from.AddDate(0, 0, -offset)
	return Range{From: from, To: from.AddDate(0, 0, 7)}
}

// Period names accepted by ParsePeriod.
const (
	PeriodToday     = "today"
	PeriodYesterday = "yesterday"
	PeriodThisWeek  = "this_week"
	PeriodLastWeek  = "last_week"
	PeriodThisMonth = "this_month"
	PeriodLastMonth = "last_month"
	PeriodThisYear  = "this_year"
	PeriodLastYear  = "last_year"
)

// ParsePeriod resolves a named period relative to now.
func ParsePeriod(name string, now time.Time) (Range, bool) {
	switch name {
	case PeriodToday:
		return Day(now), true
	case PeriodYesterday:
		return Day(now.AddDate(0, 0, -1)), true
	case PeriodThisWeek:
		return Week(now), true
	case PeriodLastWeek:
		return Week(now.AddDate(0, 0, -7)), true
	case PeriodThisMonth:
		return Month(now), true
	case PeriodLastMonth:
		return Month(Month(now).From.AddDate(0, -1, 0)), true
	case PeriodThisYear:
		return Year(now), true
	case PeriodLastYear:
		return Year(now.AddDate(-1, 0, 0)), true
	}
	return Range{}, false
}
