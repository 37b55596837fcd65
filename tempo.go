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

// Package tempo implements calendar-aware dates,
// times, instants and durations in the manner of
// the ECMAScript Temporal proposal.
//
// Every value type is immutable and carries its ISO 8601
// fields (or its exact instant) together with the
// calendar and time zone engines it is interpreted in.
// Operations that "modify" a value return a new one.
//
// Errors are classified with errors.Is against
// terr.ErrRange, terr.ErrType and terr.ErrParse.
package tempo

import (
	"github.com/SnellerInc/tempo/calendar"
	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/iso8601"
	"github.com/SnellerInc/tempo/relative"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
	"github.com/SnellerInc/tempo/timezone"
)

// Duration is a signed amount of time in
// calendar and clock units.
type Duration = duration.Duration

// Unit is a unit of time.
type Unit = duration.Unit

// RoundingMode selects how rounding resolves values
// between two multiples of an increment.
type RoundingMode = timemath.RoundingMode

// RelativeTo is a reference point for duration
// arithmetic involving years, months, weeks, or
// (in a time zone) days. It is implemented by
// PlainDate, PlainDateTime and ZonedDateTime.
type RelativeTo interface {
	marker() relative.Marker
}

func orISO(cal calendar.Calendar) calendar.Calendar {
	if cal == nil {
		return calendar.ISO
	}
	return cal
}

// lookupCalendar returns the calendar named by a
// parsed string, or ISO if there was none.
func lookupCalendar(id string) (calendar.Calendar, error) {
	if id == "" {
		return calendar.ISO, nil
	}
	return calendar.Get(id)
}

// dateDays returns the calendar portion of d with
// its time units balanced into whole days, as
// applied to a date.
func dateDays(d Duration) duration.DateDuration {
	days, _ := d.TimeNanos().TruncDays()
	return duration.DateDuration{
		Years:  d.Years,
		Months: d.Months,
		Weeks:  d.Weeks,
		Days:   d.Days + days,
	}
}

// fieldsOf returns the calendar fields of d.
func fieldsOf(cal calendar.Calendar, d date.Date) calendar.Fields {
	return calendar.Fields{
		Year:      calendar.Int(cal.Year(d)),
		MonthCode: cal.MonthCode(d),
		Day:       calendar.Int(cal.Day(d)),
	}
}

var errNoFields = terr.Typef("no fields to change")

// mergeFields overlays the fields present in f
// onto base. A month without a month code replaces
// the month code, and a year replaces an era and
// era year (and vice versa).
func mergeFields(base, f calendar.Fields) (calendar.Fields, error) {
	if f == (calendar.Fields{}) {
		return base, errNoFields
	}
	if f.Month != nil || f.MonthCode != "" {
		base.Month, base.MonthCode = f.Month, f.MonthCode
	}
	if f.Year != nil {
		base.Year, base.Era, base.EraYear = f.Year, "", nil
	}
	if f.Era != "" || f.EraYear != nil {
		base.Year, base.Era, base.EraYear = nil, f.Era, f.EraYear
	}
	if f.Day != nil {
		base.Day = f.Day
	}
	return base, nil
}

// TimeFields is a bag of time-of-day fields.
// A nil pointer means the field is absent.
type TimeFields struct {
	Hour, Minute, Second                 *int
	Millisecond, Microsecond, Nanosecond *int
}

func (tf *TimeFields) empty() bool {
	return *tf == TimeFields{}
}

// apply returns t with the fields present in tf
// replaced, regulated according to ov.
func (tf *TimeFields) apply(t date.Time, ov date.Overflow) (date.Time, error) {
	pick := func(p *int, v int) int {
		if p != nil {
			return *p
		}
		return v
	}
	return date.RegulateTime(
		pick(tf.Hour, t.Hour), pick(tf.Minute, t.Minute), pick(tf.Second, t.Second),
		pick(tf.Millisecond, t.Millisecond), pick(tf.Microsecond, t.Microsecond),
		pick(tf.Nanosecond, t.Nanosecond), ov)
}

// calendarAnnotation appends the calendar annotation
// for cal to b as selected by show.
func calendarAnnotation(b []byte, cal calendar.Calendar, show CalendarDisplay) []byte {
	id := cal.ID()
	switch show {
	case CalendarNever:
		return b
	case CalendarAuto:
		if id == calendar.ISO.ID() {
			return b
		}
	case CalendarCritical:
		return append(append(append(b, "[!u-ca="...), id...), ']')
	}
	return append(append(append(b, "[u-ca="...), id...), ']')
}

// parseWith parses s as kind k and resolves
// its calendar annotation.
func parseWith(s string, k iso8601.Kind) (iso8601.Result, calendar.Calendar, error) {
	r, err := iso8601.Parse(s, k)
	if err != nil {
		return r, nil, err
	}
	cal, err := lookupCalendar(r.Calendar)
	return r, cal, err
}

// startOfDay returns the first instant of d in tz.
func startOfDay(tz timezone.TimeZone, d date.Date) (timemath.DayTimeNano, error) {
	dt := date.Combine(d, date.Midnight)
	possible, err := timezone.PossibleInstants(tz, dt)
	if err != nil {
		return timemath.DayTimeNano{}, err
	}
	if len(possible) > 0 {
		return possible[0], nil
	}
	// midnight is skipped: the day starts at the
	// transition that ends the gap
	at := dt.EpochNanoseconds().Sub(timemath.FromDays(1))
	for i := 0; i < 4; i++ {
		next, ok := tz.Transition(at, timezone.Next)
		if !ok {
			break
		}
		if date.CompareDate(timezone.DateTimeFor(tz, next).Date, d) >= 0 {
			return next, nil
		}
		at = next
	}
	return timemath.DayTimeNano{}, terr.Rangef("cannot find the start of %s in time zone %s", d, tz.ID())
}
