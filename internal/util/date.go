package util

import "math/rand"

// RandIntRange returns a random int in [lo, hi]. hi <= lo yields lo.
func RandIntRange(r *rand.Rand, lo int, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// RandDate draws a valid calendar date with a year in [minYear, maxYear].
func RandDate(r *rand.Rand, minYear, maxYear int) (year, month, day int) {
	year = RandIntRange(r, minYear, maxYear)
	month = RandIntRange(r, 1, 12)
	day = RandIntRange(r, 1, DaysInMonth(year, month))
	return year, month, day
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month int) int {
	switch month {
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
