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

package tempo

import (
	"github.com/SnellerInc/tempo/calendar"
	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/iso8601"
	"github.com/SnellerInc/tempo/relative"
	"github.com/SnellerInc/tempo/timezone"
)

// PlainDate is a calendar date without
// a time or a time zone.
type PlainDate struct {
	iso date.Date
	cal calendar.Calendar
}

// NewPlainDate returns the date with the given
// ISO fields in cal (nil means ISO 8601).
// Out-of-range fields are rejected.
func NewPlainDate(year, month, day int, cal calendar.Calendar) (PlainDate, error) {
	d, err := date.RegulateDate(year, month, day, date.Reject)
	if err != nil {
		return PlainDate{}, err
	}
	return plainDate(d, cal)
}

func plainDate(d date.Date, cal calendar.Calendar) (PlainDate, error) {
	if err := date.CheckDate(d); err != nil {
		return PlainDate{}, err
	}
	return PlainDate{iso: d, cal: orISO(cal)}, nil
}

// PlainDateFromFields returns the date described
// by calendar fields in cal.
func PlainDateFromFields(f calendar.Fields, cal calendar.Calendar, ov date.Overflow) (PlainDate, error) {
	cal = orISO(cal)
	d, err := cal.DateFromFields(f, ov)
	if err != nil {
		return PlainDate{}, err
	}
	return plainDate(d, cal)
}

// ParsePlainDate parses an ISO 8601 date, or the
// date portion of a date-time string.
func ParsePlainDate(s string) (PlainDate, error) {
	r, cal, err := parseWith(s, iso8601.KindDateTime)
	if err != nil {
		return PlainDate{}, err
	}
	return plainDate(r.Date, cal)
}

// ISO returns the ISO 8601 fields of d.
func (d PlainDate) ISO() date.Date { return d.iso }

// Calendar returns the calendar of d.
func (d PlainDate) Calendar() calendar.Calendar { return orISO(d.cal) }

func (d PlainDate) Year() int               { return d.Calendar().Year(d.iso) }
func (d PlainDate) Month() int              { return d.Calendar().Month(d.iso) }
func (d PlainDate) MonthCode() string       { return d.Calendar().MonthCode(d.iso) }
func (d PlainDate) Day() int                { return d.Calendar().Day(d.iso) }
func (d PlainDate) Era() (string, bool)     { return d.Calendar().Era(d.iso) }
func (d PlainDate) EraYear() (int, bool)    { return d.Calendar().EraYear(d.iso) }
func (d PlainDate) DayOfWeek() int          { return d.Calendar().DayOfWeek(d.iso) }
func (d PlainDate) DayOfYear() int          { return d.Calendar().DayOfYear(d.iso) }
func (d PlainDate) WeekOfYear() (int, bool) { return d.Calendar().WeekOfYear(d.iso) }
func (d PlainDate) YearOfWeek() (int, bool) { return d.Calendar().YearOfWeek(d.iso) }
func (d PlainDate) DaysInWeek() int         { return d.Calendar().DaysInWeek(d.iso) }
func (d PlainDate) DaysInMonth() int        { return d.Calendar().DaysInMonth(d.iso) }
func (d PlainDate) DaysInYear() int         { return d.Calendar().DaysInYear(d.iso) }
func (d PlainDate) MonthsInYear() int       { return d.Calendar().MonthsInYear(d.iso) }
func (d PlainDate) InLeapYear() bool        { return d.Calendar().InLeapYear(d.iso) }

func (d PlainDate) midnight() date.DateTime { return date.Combine(d.iso, date.Midnight) }

func (d PlainDate) marker() relative.Marker {
	return relative.Plain(d.Calendar(), d.midnight())
}

// With returns d with the fields present in f replaced.
func (d PlainDate) With(f calendar.Fields, ov date.Overflow) (PlainDate, error) {
	cal := d.Calendar()
	merged, err := mergeFields(fieldsOf(cal, d.iso), f)
	if err != nil {
		return PlainDate{}, err
	}
	return PlainDateFromFields(merged, cal, ov)
}

// WithCalendar returns the same ISO date in cal.
func (d PlainDate) WithCalendar(cal calendar.Calendar) PlainDate {
	return PlainDate{iso: d.iso, cal: orISO(cal)}
}

// Add returns d advanced by dur. Time units are
// balanced into whole days; any remainder is ignored.
func (d PlainDate) Add(dur Duration, ov date.Overflow) (PlainDate, error) {
	cal := d.Calendar()
	nd, err := cal.DateAdd(d.iso, dateDays(dur), ov)
	if err != nil {
		return PlainDate{}, err
	}
	return plainDate(nd, cal)
}

// Subtract returns d moved back by dur.
func (d PlainDate) Subtract(dur Duration, ov date.Overflow) (PlainDate, error) {
	return d.Add(dur.Negated(), ov)
}

// Until returns the duration from d to other.
func (d PlainDate) Until(other PlainDate, opts DiffOptions) (Duration, error) {
	return d.diff(other, opts, false)
}

// Since returns the duration from other to d.
func (d PlainDate) Since(other PlainDate, opts DiffOptions) (Duration, error) {
	return d.diff(other, opts, true)
}

func (d PlainDate) diff(other PlainDate, opts DiffOptions, since bool) (Duration, error) {
	if err := calendar.CheckSame(d.Calendar(), other.Calendar()); err != nil {
		return Duration{}, err
	}
	r, err := opts.normalize(dateUnits, since)
	if err != nil {
		return Duration{}, err
	}
	in, err := relative.DiffDateTimeRounded(d.Calendar(), d.midnight(), other.midnight(), r)
	if err != nil {
		return Duration{}, err
	}
	return finish(in, r.Largest, since)
}

// ComparePlainDate orders a and b by their ISO
// fields, ignoring the calendar.
func ComparePlainDate(a, b PlainDate) int {
	return date.CompareDate(a.iso, b.iso)
}

// Equals returns whether d and other are the
// same date in the same calendar.
func (d PlainDate) Equals(other PlainDate) bool {
	return d.iso == other.iso && calendar.Equal(d.Calendar(), other.Calendar())
}

// ToPlainDateTime combines d with t, or with
// midnight if t is nil.
func (d PlainDate) ToPlainDateTime(t *PlainTime) (PlainDateTime, error) {
	tm := date.Midnight
	if t != nil {
		tm = t.t
	}
	return plainDateTime(date.Combine(d.iso, tm), d.Calendar())
}

// ToZonedDateTime returns d at t (or at the start of
// the day if t is nil) in tz.
func (d PlainDate) ToZonedDateTime(tz timezone.TimeZone, t *PlainTime) (ZonedDateTime, error) {
	if t == nil {
		ns, err := startOfDay(tz, d.iso)
		if err != nil {
			return ZonedDateTime{}, err
		}
		return NewZonedDateTime(ns, tz, d.Calendar())
	}
	ns, err := timezone.InstantFor(tz, date.Combine(d.iso, t.t), timezone.Compatible)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return NewZonedDateTime(ns, tz, d.Calendar())
}

// ToPlainYearMonth returns the month of d.
func (d PlainDate) ToPlainYearMonth() (PlainYearMonth, error) {
	cal := d.Calendar()
	return PlainYearMonthFromFields(calendar.Fields{
		Year:      calendar.Int(cal.Year(d.iso)),
		MonthCode: cal.MonthCode(d.iso),
	}, cal, date.Constrain)
}

// ToPlainMonthDay returns the month and day of d.
func (d PlainDate) ToPlainMonthDay() (PlainMonthDay, error) {
	cal := d.Calendar()
	return PlainMonthDayFromFields(calendar.Fields{
		MonthCode: cal.MonthCode(d.iso),
		Day:       calendar.Int(cal.Day(d.iso)),
	}, cal, date.Constrain)
}

func (d PlainDate) String() string {
	s, _ := d.Format(FormatOptions{})
	return s
}

// Format returns d as YYYY-MM-DD with a calendar
// annotation selected by opts.Calendar.
func (d PlainDate) Format(opts FormatOptions) (string, error) {
	b := date.AppendDate(nil, d.iso)
	return string(calendarAnnotation(b, d.Calendar(), opts.Calendar)), nil
}

// MarshalText implements encoding.TextMarshaler.
func (d PlainDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *PlainDate) UnmarshalText(b []byte) error {
	v, err := ParsePlainDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
