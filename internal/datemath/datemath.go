// Package datemath provides proleptic Gregorian calendar arithmetic
// without depending on time.Location.
package datemath

// IsLeapYear determines if the year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in a given month for a specific year.
func DaysInMonth(year, month int) int {
	if month == 2 {
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}
	return 31
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// daysBeforeMonth[m-1] is the number of days in a non-leap year before
// month m begins.
var daysBeforeMonth = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// DayOfWeek calculates the day of the week for a given date,
// where 0=Sunday, 1=Monday, ..., 6=Saturday.
func DayOfWeek(year, month, day int) int {
	// Zeller's Congruence algorithm adjustment for Gregorian calendar
	if month < 3 {
		month += 12
		year -= 1
	}
	k := year % 100
	j := year / 100
	h := (day + ((13 * (month + 1)) / 5) + k + (k / 4) + (j / 4) + (5 * j)) % 7
	// Adjust result to fit Sunday=0, Monday=1, ..., Saturday=6
	return (h + 6) % 7
}

// LastWeekdayOfMonth finds the last instance of a given weekday
// (0=Sunday) in a specific month and year.
func LastWeekdayOfMonth(year, month, weekday int) int {
	lastDay := DaysInMonth(year, month)
	lastDayWeekday := DayOfWeek(year, month, lastDay)

	// Days to subtract from the last day to land on the wanted weekday.
	offset := (lastDayWeekday - weekday + 7) % 7
	return lastDay - offset
}

// NthWeekdayOfMonth finds the n-th instance (1-based) of a given weekday
// (0=Sunday) in a specific month and year. An n of 5 means the last
// instance, even when the month only contains four.
func NthWeekdayOfMonth(year, month, n, weekday int) int {
	firstWeekday := DayOfWeek(year, month, 1)
	first := 1 + (weekday-firstWeekday+7)%7
	day := first + (n-1)*7
	if day > DaysInMonth(year, month) {
		day -= 7
	}
	return day
}

// YearDayToDate converts a zero-based day of year (0 = Jan 1, leap day
// counted) to a month and day of month. Day 365 of a non-leap year is
// January 1 of the following year; it is returned as an overflowing day
// of December so that unnormalized date arithmetic resolves it forward.
func YearDayToDate(year, yday int) (month, day int) {
	for month = 1; month <= 12; month++ {
		n := DaysInMonth(year, month)
		if yday < n {
			return month, yday + 1
		}
		yday -= n
	}
	return 12, 31 + yday + 1
}

// JulianOneToDate converts a one-based Julian day (1 = Jan 1, Feb 29
// never counted) to a month and day of month. In leap years every day
// from March 1 onward lands one calendar day later than the plain
// day-of-year numbering would suggest.
func JulianOneToDate(year, n int) (month, day int) {
	yday := n - 1
	if IsLeapYear(year) && yday >= daysBeforeMonth[2] {
		yday++ // skip Feb 29
	}
	return YearDayToDate(year, yday)
}
