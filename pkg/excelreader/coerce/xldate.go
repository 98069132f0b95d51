package coerce

import (
	"math"
	"time"
)

const (
	// MaxSerial is the last representable serial day (9999-12-31).
	MaxSerial = 2958465

	msPerDay = 86400000
)

// SerialToTime converts a spreadsheet serial day count to a time in loc.
// Day 0 is 1899-12-30, so day 1 is 1899-12-31 and day 61 is 1900-03-01;
// Excel's fictitious 1900-02-29 (day 60) therefore lands on 1900-02-28.
// The fraction is the time of day, rounded to the millisecond.
// Serials outside [0, MaxSerial] are rejected.
func SerialToTime(serial float64, loc *time.Location) (time.Time, bool) {
	if math.IsNaN(serial) || serial < 0 || serial >= MaxSerial+1 {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	total := int64(serial*msPerDay + 0.5)
	days := total / msPerDay
	ms := total % msPerDay
	if days > MaxSerial {
		days, ms = MaxSerial, msPerDay-1
	}
	return time.Date(1899, time.December, 30+int(days), 0, 0, 0, int(ms)*int(time.Millisecond), loc), true
}

// TimeToSerial is the inverse of SerialToTime for the wall clock of t.
func TimeToSerial(t time.Time) float64 {
	y, m, d := t.Date()
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	days := float64((day.Unix() - epoch.Unix()) / 86400)
	clock := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second + time.Duration(t.Nanosecond())
	return days + float64(clock.Milliseconds())/msPerDay
}
