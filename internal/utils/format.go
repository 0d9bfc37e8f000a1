package utils

import "time"

const (
	DateOnly    = "2006-01-02"
	DateTimeSec = "2006-01-02 15:04:05"
	// ShortDate is the yy-mm-dd layout used for daily log file names.
	ShortDate = "06-01-02"
)

// TimeOrDash formats a time value using the given layout, or returns "-" if zero.
func TimeOrDash(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(layout)
}
