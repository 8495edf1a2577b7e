package utils

import "time"

const DateLayout = "2006-01-02"

func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// LocalDate is the calendar date of t in loc, as YYYY-MM-DD. A nil loc
// means time.Local.
func LocalDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// SameLocalDay compares calendar date strings, not elapsed time.
func SameLocalDay(a, b time.Time, loc *time.Location) bool {
	return LocalDate(a, loc) == LocalDate(b, loc)
}

func ParseLocalDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, value, loc)
}
