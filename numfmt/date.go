package numfmt

import (
	"fmt"
	"math"
	"time"
)

// maxSerial1900 is the largest 1900-system serial Time accepts (a larger
// serial is an error); it is one day past Excel's own last date, 9999-12-31
// (serial 2,958,465).
const maxSerial1900 = 2_958_466

// maxSerial1904 is maxSerial1900 offset by 1462, the 1900-system serial of
// 1904-01-01 (the 1904 system's day 0), which counts the phantom 1900-02-29.
const maxSerial1904 = maxSerial1900 - 1462

// Time converts an Excel date serial number to a time.Time, honoring the
// workbook's date system (date1904 mirrors Workbook.Date1904). Adapted
// verbatim from the teacher's xlsb.ConvertDate/ConvertDateEx, which handles
// the Lotus-1-2-3 1900 phantom-leap-day bug: serial 60 stands for
// 1900-02-29, a date time.Time cannot represent, so it reads back as
// 1900-03-01 (the same date as serial 61), and serials from 61 onward are
// shifted back one day to compensate.
func Time(serial float64, date1904 bool) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, fmt.Errorf("numfmt: Time: invalid serial %v", serial)
	}
	if serial < 0 {
		return time.Time{}, fmt.Errorf("numfmt: Time: negative serial %v not supported", serial)
	}

	fracSec, dayRollover := serialToFracSec(serial)
	intPart := int(serial) + dayRollover

	if date1904 {
		if serial > maxSerial1904 {
			return time.Time{}, fmt.Errorf("numfmt: Time: serial %v exceeds maximum supported value %d", serial, maxSerial1904)
		}
		base := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
		return base.Add(time.Duration(intPart)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
	}

	if serial > maxSerial1900 {
		return time.Time{}, fmt.Errorf("numfmt: Time: serial %v exceeds maximum supported value %d", serial, maxSerial1900)
	}
	base := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	switch {
	case intPart == 0:
		return time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(fracSec) * time.Second), nil
	case intPart >= 61:
		return base.Add(time.Duration(intPart-1)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
	default:
		return base.Add(time.Duration(intPart)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
	}
}

// serialToFracSec converts the fractional-day part of an Excel serial to a
// whole-second count within the day (0–86399) plus a day-rollover flag,
// using the same round-half-up-at-the-second algorithm as the teacher's
// xlsb.serialToFracSec (and excelize's timeFromExcelTime), so Time produces
// identical results to the teacher's ConvertDate/ConvertDateEx.
func serialToFracSec(serial float64) (fracSec int64, dayRollover int) {
	const roundEpsilon = 1e-9
	fracDay := (serial - math.Trunc(serial)) + roundEpsilon
	const nanosInADay = float64(24 * 60 * 60 * 1e9)
	durNanos := time.Duration(fracDay * nanosInADay)
	ns := int(durNanos % time.Second)
	secs := int64(durNanos / time.Second)
	if ns > 500_000_000 {
		secs++
	}
	if secs < 0 {
		secs = 0
	}
	rollover := int(secs / 86400)
	secs = secs % 86400
	return secs, rollover
}

// Serial converts t to an Excel date serial number under the given date
// system. It is the write-direction inverse of Time — new in this
// repository, since the teacher is read-only — derived by inverting Time's
// documented algorithm: for the 1900 system, days are counted from
// 1899-12-31, and since real calendar dates from 1900-03-01 onward already
// collapse serials 60 and 61 onto the same date (Time(60) == Time(61) ==
// 1900-03-01, the fictitious 1900-02-29 folded away), Serial reinstates the
// phantom day by incrementing any date on or after 1900-03-01 so it
// round-trips to the serial Excel itself would have written (61, not 60).
func Serial(t time.Time, date1904 bool) float64 {
	var base time.Time
	if date1904 {
		base = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	} else {
		base = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	}

	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	days := int(midnight.Sub(base).Hours() / 24)
	if !date1904 && days >= 60 {
		days++ // reintroduce the phantom 1900-02-29
	}

	secsIntoDay := t.Hour()*3600 + t.Minute()*60 + t.Second()
	fracDay := float64(secsIntoDay) / 86400
	if ns := t.Nanosecond(); ns != 0 {
		fracDay += float64(ns) / 1e9 / 86400
	}
	return float64(days) + fracDay
}
