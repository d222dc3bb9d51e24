package handlers

import "time"

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = time.RFC3339
)

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.Local)
}

func parseDateTime(s string) (time.Time, error) {
	return time.Parse(dateTimeLayout, s)
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
