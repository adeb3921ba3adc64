package sheet

import (
	"fmt"
	"math"
	"time"
)

// DateSystem is the epoch a workbook counts date serials from
type DateSystem int

const (
	// Date1900 is the default Windows date system, including the fictitious 1900-02-29.
	Date1900 DateSystem = iota
	// Date1904 is the legacy Mac date system.
	Date1904
)

func (d DateSystem) String() string {
	if d == Date1904 {
		return "1904"
	}
	return "1900"
}

// MaxSerial1900 is the last serial a spreadsheet can hold, 9999-12-31 in the 1900 system
const MaxSerial1900 = 2958465

// the 1904 system starts 1462 days after the 1900 system
const offset1904 = 1462

var unixEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// SerialToTime converts a spreadsheet date serial into a UTC time.
//
// In the 1900 system serials below 1 carry only a time of day and are placed on
// 1970-01-01, serials 1 to 59 count from 1899-12-31 and later serials count from
// 1899-12-30, so 59 and 60 both land on 1900-02-28. In the 1904 system days count
// from 1904-01-01. The fractional day becomes hours, minutes and rounded seconds.
// Serials past 9999-12-31 are rejected.
func SerialToTime(serial float64, system DateSystem) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, fmt.Errorf("date serial %v is not a finite number", serial)
	}
	if serial < 0 {
		return time.Time{}, fmt.Errorf("date serial %v is negative", serial)
	}
	limit := float64(MaxSerial1900)
	if system == Date1904 {
		limit -= offset1904
	}
	if math.Floor(serial) > limit {
		return time.Time{}, fmt.Errorf("date serial %v is after 9999-12-31", serial)
	}

	var base time.Time
	switch {
	case system == Date1904:
		base = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
	case serial < 1:
		base = unixEpoch
	case serial < 60:
		base = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		base = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	}

	days := math.Floor(serial)
	part := serial - days
	hours := math.Floor(part * 24)
	part = part*24 - hours
	minutes := math.Floor(part * 60)
	part = part*60 - minutes
	seconds := math.Round(part * 60)

	return time.Date(
		base.Year(), base.Month(), base.Day()+int(days),
		int(hours), int(minutes), int(seconds), 0,
		time.UTC,
	), nil
}
