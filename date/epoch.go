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

package date

import (
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

var (
	// MinDate and MaxDate bound the dates whose
	// noon lies within one day of the instant range.
	MinDate = Date{-271821, 4, 19}
	MaxDate = Date{275760, 9, 13}

	minDateDays = MinDate.EpochDays()
	maxDateDays = MaxDate.EpochDays()
)

// EpochNanoseconds returns the number of nanoseconds from
// the epoch to dt interpreted as a UTC wall-clock time.
func (dt DateTime) EpochNanoseconds() timemath.DayTimeNano {
	return timemath.DayTimeNano{Days: dt.Date.EpochDays(), Nanos: dt.Time.Nanos()}
}

// FromEpochNanoseconds is the inverse of DateTime.EpochNanoseconds.
func FromEpochNanoseconds(ns timemath.DayTimeNano) DateTime {
	_, t := TimeFromNanos(ns.Nanos)
	return DateTime{Date: FromEpochDays(ns.Days), Time: t}
}

// Add returns dt advanced by the exact duration d.
func (dt DateTime) Add(d timemath.DayTimeNano) DateTime {
	return FromEpochNanoseconds(dt.EpochNanoseconds().Add(d))
}

// DateInRange returns whether d is within [MinDate, MaxDate].
func DateInRange(d Date) bool {
	days := d.EpochDays()
	return days >= minDateDays && days <= maxDateDays
}

// CheckDate returns an error if d lies outside [MinDate, MaxDate].
func CheckDate(d Date) error {
	if !DateInRange(d) {
		return terr.Rangef("date %s outside of the supported range", d)
	}
	return nil
}

// DateTimeInRange returns whether dt lies strictly
// within one day of the instant range.
func DateTimeInRange(dt DateTime) bool {
	ns := dt.EpochNanoseconds()
	lim := timemath.MaxEpochDays + 1
	if ns.Days >= lim || ns.Days < -lim {
		return false
	}
	return ns.Days != -lim || ns.Nanos > 0
}

// CheckDateTime returns an error if dt is outside
// the supported range.
func CheckDateTime(dt DateTime) error {
	if !DateTimeInRange(dt) {
		return terr.Rangef("date-time %s outside of the supported range", dt)
	}
	return nil
}

// CheckYearMonth returns an error if the month
// y-m lies outside the supported range.
func CheckYearMonth(y, m int) error {
	lo := y > MinDate.Year || y == MinDate.Year && m >= MinDate.Month
	hi := y < MaxDate.Year || y == MaxDate.Year && m <= MaxDate.Month
	if !lo || !hi {
		return terr.Rangef("year-month %d-%02d outside of the supported range", y, m)
	}
	return nil
}
