// Package unixtime converts between civil date-times and Unix timestamps,
// i.e. seconds since 1970-01-01 00:00:00 UTC. It ignores leap seconds but
// respects leap years and assumes the proleptic Gregorian calendar.
//
// The implementation is based on the Go standard library's time package
// but does not depend on time.Location. Depending on time.Location feels
// weird for a low-level utility whose job is to produce the data that
// time.Location is built from.
package unixtime

import "github.com/grodin/jiff/internal/datemath"

// FromDateTime converts a given civil date and time to a Unix timestamp.
// The time of day components are not normalized: hour may exceed 23 and
// any component may be negative, which is how POSIX transition times such
// as "M3.2.0/26" or negative rule hours are expressed.
func FromDateTime(year, month, day, hour, minute, second int) int64 {
	daysSinceStartOfYear := []uint64{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

	d := daysSinceEpoch(year) + daysSinceStartOfYear[month-1] + (uint64(day) - 1)
	if month > 2 && datemath.IsLeapYear(year) {
		d++ // +leap year
	}
	abs := int64(d * secondsPerDay)
	abs += int64(hour)*secondsPerHour + int64(minute)*secondsPerMinute + int64(second)
	return abs + (absoluteToInternal + internalToUnix)
}

// ToDateTime converts a Unix timestamp back to its civil date and time.
// It is the inverse of FromDateTime for normalized inputs.
func ToDateTime(unix int64) (year, month, day, hour, minute, second int) {
	abs := uint64(unix + (unixToInternal + internalToAbsolute))

	secOfDay := abs % secondsPerDay
	hour = int(secOfDay / secondsPerHour)
	minute = int(secOfDay % secondsPerHour / secondsPerMinute)
	second = int(secOfDay % secondsPerMinute)

	d := abs / secondsPerDay

	// Account for 400 year cycles.
	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	// Cut off 100-year cycles. The last cycle has one extra leap year, so
	// on the last day of that year, day / daysPer100Years will be 4 instead
	// of 3. Cut it back down to 3 by subtracting n>>2.
	n = d / daysPer100Years
	n -= n >> 2
	y += 100 * n
	d -= daysPer100Years * n

	// Cut off 4-year cycles. The last cycle has a missing leap year, which
	// does not affect the computation.
	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	// Cut off years within a 4-year cycle. The last year is a leap year, so
	// on its last day, day / 365 will be 4 instead of 3. Cut it back down
	// to 3 by subtracting n>>2.
	n = d / 365
	n -= n >> 2
	y += n
	d -= 365 * n

	year = int(int64(y) + absoluteZeroYear)
	yday := int(d)

	if datemath.IsLeapYear(year) {
		switch {
		case yday > 31+29-1:
			yday-- // after leap day; pretend it wasn't there
		case yday == 31+29-1:
			return year, 2, 29, hour, minute, second
		}
	}
	month, day = nonLeapYearDay(yday)
	return year, month, day, hour, minute, second
}

// Weekday returns the day of the week for a Unix timestamp,
// where 0=Sunday, 1=Monday, ..., 6=Saturday.
func Weekday(unix int64) int {
	// The Unix epoch was a Thursday (4).
	d := unix / secondsPerDay
	if unix%secondsPerDay < 0 {
		d--
	}
	return int(((d%7)+7+4) % 7)
}

var daysBeforeMonth = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

func nonLeapYearDay(yday int) (month, day int) {
	month = 12
	for m := 1; m < 12; m++ {
		if yday < daysBeforeMonth[m] {
			month = m
			break
		}
	}
	return month, yday - daysBeforeMonth[month-1] + 1
}

// The constants were copied from time.go in the Go standard library's time package.
const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	daysPer400Years  = 365*400 + 97
	daysPer100Years  = 365*100 + 24
	daysPer4Years    = 365*4 + 1

	absoluteZeroYear         = -292277022399
	internalYear             = 1
	absoluteToInternal int64 = (absoluteZeroYear - internalYear) * 365.2425 * secondsPerDay
	internalToAbsolute       = -absoluteToInternal
	unixToInternal     int64 = (1969*365 + 1969/4 - 1969/100 + 1969/400) * secondsPerDay
	internalToUnix     int64 = -unixToInternal
)

// daysSinceEpoch takes a year and returns the number of days from
// the absolute epoch to the start of that year.
// This is basically (year - zeroYear) * 365, but accounting for leap days.
//
// This function was copied from time.go in the Go standard library time package.
func daysSinceEpoch(year int) uint64 {
	y := uint64(int64(year) - absoluteZeroYear)

	// Add in days from 400-year cycles.
	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	// Add in 100-year cycles.
	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	// Add in 4-year cycles.
	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	// Add in non-leap years.
	n = y
	d += 365 * n

	return d
}
