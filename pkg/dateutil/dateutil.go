package dateutil

import (
	"time"

	"github.com/shopspring/decimal"
)

// Layouts used for report timestamps
const (
	FileStampLayout = "20060102_150405"
	DisplayLayout   = "2006-01-02 15:04"
	MonthLayout     = "Jan 2006"
)

// minCalendarYear separates calendar years from zero-based year indexes
const minCalendarYear = 1000

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// BeginningOfYear returns the first day of the year for a given date
func BeginningOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), 1, 1, 0, 0, 0, 0, date.Location())
}

// IsCalendarYear reports whether a year label is a calendar year rather than an index
func IsCalendarYear(year int) bool {
	return year >= minCalendarYear
}

// DateInYear returns the UTC date reached after fraction (0..1) of the calendar year has elapsed.
// Fractions outside the range are clamped.
func DateInYear(year int, fraction decimal.Decimal) time.Time {
	if fraction.IsNegative() {
		fraction = decimal.Zero
	}
	if fraction.GreaterThan(decimal.NewFromInt(1)) {
		fraction = decimal.NewFromInt(1)
	}
	days := fraction.Mul(decimal.NewFromInt(int64(DaysInYear(year)))).IntPart()
	if days >= int64(DaysInYear(year)) {
		days = int64(DaysInYear(year)) - 1
	}
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, 0, int(days))
}

// FileStamp formats t for use in report file names
func FileStamp(t time.Time) string {
	return t.Format(FileStampLayout)
}

// Display formats t for report headers
func Display(t time.Time) string {
	return t.Format(DisplayLayout)
}
