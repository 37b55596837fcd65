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

// Package fastdate implements the proleptic Gregorian
// calendar arithmetic underlying the ISO 8601 calendar:
// conversion between (year, month, day) triples and
// day counts relative to 1970-01-01, leap-year rules,
// and ISO week numbering.
//
// All functions are pure arithmetic; none of them
// consult tables of historical data.
package fastdate

import "github.com/SnellerInc/tempo/ints"

// DateTime composition and decomposition is based on the following article:
//
//   https://howardhinnant.github.io/date_algorithms.html

const daysPer400YearCycle = 146097

const unixDaysToYear0Delta = 719468

// daysBefore[m] is the number of days in a common
// year before month m (1-based) begins.
var daysBefore = [13]int{
	0,
	0,   // January
	31,  // February
	59,  // March
	90,  // April
	120, // May
	151, // June
	181, // July
	212, // August
	243, // September
	273, // October
	304, // November
	334, // December
}

var monthdays = [13]int{
	0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31,
}

// IsLeapYear returns whether y has 366 days.
func IsLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// DaysInMonth returns the number of days in month
// m (1-12) of year y.
func DaysInMonth(y, m int) int {
	d := monthdays[m]
	if m == 2 && IsLeapYear(y) {
		d++
	}
	return d
}

// DaysInYear returns 365 or 366.
func DaysInYear(y int) int {
	if IsLeapYear(y) {
		return 366
	}
	return 365
}

// DaysFromCivil returns the number of days from
// 1970-01-01 to the given proleptic Gregorian date.
// m must be in [1, 12]; d may be any value and is
// treated as an offset from the first of the month.
func DaysFromCivil(y, m, d int) int64 {
	yy := int64(y)
	if m <= 2 {
		yy--
	}
	era := ints.FloorDiv(yy, 400)
	yoe := yy - era*400 // [0..399]
	mp := int64(m+9) % 12
	doy := (153*mp+2)/5 + int64(d) - 1     // [0..365]
	doe := yoe*365 + yoe/4 - yoe/100 + doy // [0..146096]
	return era*daysPer400YearCycle + doe - unixDaysToYear0Delta
}

// CivilFromDays is the inverse of DaysFromCivil.
func CivilFromDays(days int64) (y, m, d int) {
	days += unixDaysToYear0Delta
	era := ints.FloorDiv(days, daysPer400YearCycle)
	doe := days - era*daysPer400YearCycle                  // [0..146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365 // [0..399]
	doy := doe - (365*yoe + yoe/4 - yoe/100)               // [0..365]
	mp := (5*doy + 2) / 153                                // [0..11], March-based
	d = int(doy-(153*mp+2)/5) + 1
	if mp < 10 {
		m = int(mp) + 3
	} else {
		m = int(mp) - 9
	}
	yy := yoe + era*400
	if m <= 2 {
		yy++
	}
	return int(yy), m, d
}

// DayOfWeek returns the ISO day of the week for
// a day count: 1 is Monday and 7 is Sunday.
func DayOfWeek(days int64) int {
	// 1970-01-01 was a Thursday
	dow := (days + 3) % 7
	if dow < 0 {
		dow += 7
	}
	return int(dow) + 1
}

// DayOfYear returns the 1-based ordinal day of
// month m, day d within year y.
func DayOfYear(y, m, d int) int {
	doy := daysBefore[m] + d
	if m > 2 && IsLeapYear(y) {
		doy++
	}
	return doy
}

// WeekOfYear returns the ISO 8601 week number of
// the given date and the week-numbering year that
// week belongs to. Week 1 is the week containing
// the first Thursday of the year, so the first and
// last few days of a calendar year may belong to
// the neighbouring week-numbering year.
func WeekOfYear(y, m, d int) (week, year int) {
	doy := DayOfYear(y, m, d)
	dow := DayOfWeek(DaysFromCivil(y, m, d))
	// ordinal of the Thursday in the same week
	thursday := doy - dow + 4
	switch {
	case thursday < 1:
		y--
		thursday += DaysInYear(y)
	case thursday > DaysInYear(y):
		thursday -= DaysInYear(y)
		y++
	}
	return (thursday-1)/7 + 1, y
}

// WeeksInYear returns the number of ISO weeks
// (52 or 53) in week-numbering year y.
func WeeksInYear(y int) int {
	w, _ := WeekOfYear(y, 12, 28)
	return w
}
