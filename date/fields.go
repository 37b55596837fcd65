// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package date implements the ISO 8601 field records
// (date, wall-clock time, and their combination)
// that every calendar-aware value is built on, along
// with their conversion to and from epoch nanoseconds.
//
// The records in this package are always normalized:
// each field is within its natural range. Values are
// produced either by regulation (applying an Overflow
// policy to arbitrary input) or by balancing (carrying
// out-of-range values into larger units).
package date

import (
	"github.com/SnellerInc/tempo/fastdate"
	"github.com/SnellerInc/tempo/ints"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

// Overflow determines how out-of-range fields are
// handled during construction.
type Overflow uint8

const (
	// Constrain clamps fields to their valid range.
	Constrain Overflow = iota
	// Reject returns an error for out-of-range fields.
	Reject
)

func (o Overflow) String() string {
	if o == Reject {
		return "reject"
	}
	return "constrain"
}

// ParseOverflow parses "constrain" or "reject".
func ParseOverflow(s string) (Overflow, bool) {
	switch s {
	case "constrain":
		return Constrain, true
	case "reject":
		return Reject, true
	}
	return Constrain, false
}

// Date is a proleptic Gregorian calendar date.
type Date struct {
	Year, Month, Day int
}

// Time is a wall-clock time of day.
type Time struct {
	Hour, Minute, Second                 int
	Millisecond, Microsecond, Nanosecond int
}

// DateTime is a Date combined with a Time.
type DateTime struct {
	Date
	Time
}

// Midnight is 00:00:00.
var Midnight = Time{}

// Noon is 12:00:00.
var Noon = Time{Hour: 12}

// Combine returns d at time t.
func Combine(d Date, t Time) DateTime {
	return DateTime{Date: d, Time: t}
}

// RegulateDate returns the date y-m-d. Under the Constrain
// policy a month beyond 12 or a day beyond the end of
// the month is clamped; under Reject it is an error.
// Months and days below 1 are always an error.
func RegulateDate(y, m, d int, ov Overflow) (Date, error) {
	if m < 1 || d < 1 {
		return Date{}, terr.Rangef("invalid date %d-%d-%d", y, m, d)
	}
	if ov == Reject {
		if m > 12 || d > fastdate.DaysInMonth(y, m) {
			return Date{}, terr.Rangef("invalid date %d-%d-%d", y, m, d)
		}
		return Date{y, m, d}, nil
	}
	m = ints.Min(m, 12)
	d = ints.Min(d, fastdate.DaysInMonth(y, m))
	return Date{y, m, d}, nil
}

// ValidDate returns whether y-m-d is a real date.
func ValidDate(y, m, d int) bool {
	return m >= 1 && m <= 12 && d >= 1 && d <= fastdate.DaysInMonth(y, m)
}

// RegulateTime returns the time h:mi:s.ms.us.ns
// after applying the overflow policy ov.
func RegulateTime(h, mi, s, ms, us, ns int, ov Overflow) (Time, error) {
	t := Time{h, mi, s, ms, us, ns}
	if ov == Reject {
		if !t.Valid() {
			return Time{}, terr.Rangef("invalid time %d:%d:%d.%03d%03d%03d", h, mi, s, ms, us, ns)
		}
		return t, nil
	}
	return Time{
		Hour:        ints.Clamp(h, 0, 23),
		Minute:      ints.Clamp(mi, 0, 59),
		Second:      ints.Clamp(s, 0, 59),
		Millisecond: ints.Clamp(ms, 0, 999),
		Microsecond: ints.Clamp(us, 0, 999),
		Nanosecond:  ints.Clamp(ns, 0, 999),
	}, nil
}

// Valid returns whether every field of t is in range.
func (t Time) Valid() bool {
	return ints.InRange(t.Hour, 0, 23) && ints.InRange(t.Minute, 0, 59) &&
		ints.InRange(t.Second, 0, 59) && ints.InRange(t.Millisecond, 0, 999) &&
		ints.InRange(t.Microsecond, 0, 999) && ints.InRange(t.Nanosecond, 0, 999)
}

// BalanceYearMonth carries months outside [1, 12]
// into the year.
func BalanceYearMonth(y, m int) (int, int) {
	y, m = ints.Norm(y, m-1, 12)
	return y, m + 1
}

// Balance returns the date d days after the first
// of month m in year y, less one; that is, d is
// treated as a (possibly out-of-range) day of month.
func Balance(y, m int, d int64) Date {
	y, m = BalanceYearMonth(y, m)
	return FromEpochDays(fastdate.DaysFromCivil(y, m, 1) + d - 1)
}

// EpochDays returns the number of days from 1970-01-01 to d.
func (d Date) EpochDays() int64 {
	return fastdate.DaysFromCivil(d.Year, d.Month, d.Day)
}

// FromEpochDays returns the date n days after 1970-01-01.
func FromEpochDays(n int64) Date {
	y, m, d := fastdate.CivilFromDays(n)
	return Date{y, m, d}
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int64) Date {
	if n == 0 {
		return d
	}
	return FromEpochDays(d.EpochDays() + n)
}

// DayOfWeek returns 1 (Monday) through 7 (Sunday).
func (d Date) DayOfWeek() int {
	return fastdate.DayOfWeek(d.EpochDays())
}

// DayOfYear returns the 1-based ordinal day.
func (d Date) DayOfYear() int {
	return fastdate.DayOfYear(d.Year, d.Month, d.Day)
}

// WeekOfYear returns the ISO week number and
// week-numbering year of d.
func (d Date) WeekOfYear() (week, year int) {
	return fastdate.WeekOfYear(d.Year, d.Month, d.Day)
}

// DaysInMonth returns the length of d's month.
func (d Date) DaysInMonth() int {
	return fastdate.DaysInMonth(d.Year, d.Month)
}

// InLeapYear returns whether d's year has 366 days.
func (d Date) InLeapYear() bool {
	return fastdate.IsLeapYear(d.Year)
}

// Nanos returns the number of nanoseconds since midnight.
func (t Time) Nanos() int64 {
	return int64(t.Hour)*timemath.NanosPerHour +
		int64(t.Minute)*timemath.NanosPerMinute +
		int64(t.Second)*timemath.NanosPerSecond +
		int64(t.Millisecond)*timemath.NanosPerMillisecond +
		int64(t.Microsecond)*timemath.NanosPerMicrosecond +
		int64(t.Nanosecond)
}

// SubsecondNanos returns the fractional second in nanoseconds.
func (t Time) SubsecondNanos() int {
	return t.Millisecond*1e6 + t.Microsecond*1e3 + t.Nanosecond
}

// TimeFromNanos returns the time n nanoseconds after
// midnight along with the number of whole days that
// n overflows into, which may be negative.
func TimeFromNanos(n int64) (int64, Time) {
	days, n := ints.DivMod(n, timemath.NanosPerDay)
	var t Time
	t.Hour = int(n / timemath.NanosPerHour)
	n %= timemath.NanosPerHour
	t.Minute = int(n / timemath.NanosPerMinute)
	n %= timemath.NanosPerMinute
	t.Second = int(n / timemath.NanosPerSecond)
	n %= timemath.NanosPerSecond
	t.Millisecond = int(n / timemath.NanosPerMillisecond)
	n %= timemath.NanosPerMillisecond
	t.Microsecond = int(n / timemath.NanosPerMicrosecond)
	t.Nanosecond = int(n % timemath.NanosPerMicrosecond)
	return days, t
}

// AddTime returns t advanced by the (possibly negative)
// duration d, along with the number of days the result
// overflowed into.
func (t Time) AddTime(d timemath.DayTimeNano) (int64, Time) {
	sum := d.AddNanos(t.Nanos())
	_, tm := TimeFromNanos(sum.Nanos)
	return sum.Days, tm
}

// CompareDate returns -1, 0, or +1.
func CompareDate(a, b Date) int {
	switch {
	case a.Year != b.Year:
		return cmpInt(a.Year, b.Year)
	case a.Month != b.Month:
		return cmpInt(a.Month, b.Month)
	}
	return cmpInt(a.Day, b.Day)
}

// CompareTime returns -1, 0, or +1.
func CompareTime(a, b Time) int {
	return cmpInt(a.Nanos(), b.Nanos())
}

// CompareDateTime returns -1, 0, or +1.
func CompareDateTime(a, b DateTime) int {
	if c := CompareDate(a.Date, b.Date); c != 0 {
		return c
	}
	return CompareTime(a.Time, b.Time)
}

func cmpInt[T int | int64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
