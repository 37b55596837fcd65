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
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/iso8601"
	"github.com/SnellerInc/tempo/relative"
	"github.com/SnellerInc/tempo/terr"
)

// PlainYearMonth is a month of a year in a calendar.
// Its ISO fields hold the first day of the month.
type PlainYearMonth struct {
	iso date.Date
	cal calendar.Calendar
}

func plainYearMonth(d date.Date, cal calendar.Calendar) (PlainYearMonth, error) {
	if err := date.CheckYearMonth(d.Year, d.Month); err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonth{iso: d, cal: orISO(cal)}, nil
}

// NewPlainYearMonth returns the ISO month year-month
// in cal (nil means ISO 8601).
func NewPlainYearMonth(year, month int, cal calendar.Calendar) (PlainYearMonth, error) {
	d, err := date.RegulateDate(year, month, 1, date.Reject)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return plainYearMonth(d, cal)
}

// PlainYearMonthFromFields returns the month
// described by calendar fields in cal.
func PlainYearMonthFromFields(f calendar.Fields, cal calendar.Calendar, ov date.Overflow) (PlainYearMonth, error) {
	cal = orISO(cal)
	d, err := cal.YearMonthFromFields(f, ov)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return plainYearMonth(d, cal)
}

// ParsePlainYearMonth parses YYYY-MM, or the
// month of a date or date-time string.
func ParsePlainYearMonth(s string) (PlainYearMonth, error) {
	r, cal, err := parseWith(s, iso8601.KindYearMonth)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonthFromFields(calendar.Fields{
		Year:      calendar.Int(cal.Year(r.Date)),
		MonthCode: cal.MonthCode(r.Date),
	}, cal, date.Constrain)
}

// ISO returns the ISO date of the first day of ym.
func (ym PlainYearMonth) ISO() date.Date { return ym.iso }

// Calendar returns the calendar of ym.
func (ym PlainYearMonth) Calendar() calendar.Calendar { return orISO(ym.cal) }

func (ym PlainYearMonth) Year() int            { return ym.Calendar().Year(ym.iso) }
func (ym PlainYearMonth) Month() int           { return ym.Calendar().Month(ym.iso) }
func (ym PlainYearMonth) MonthCode() string    { return ym.Calendar().MonthCode(ym.iso) }
func (ym PlainYearMonth) Era() (string, bool)  { return ym.Calendar().Era(ym.iso) }
func (ym PlainYearMonth) EraYear() (int, bool) { return ym.Calendar().EraYear(ym.iso) }
func (ym PlainYearMonth) DaysInMonth() int     { return ym.Calendar().DaysInMonth(ym.iso) }
func (ym PlainYearMonth) DaysInYear() int      { return ym.Calendar().DaysInYear(ym.iso) }
func (ym PlainYearMonth) MonthsInYear() int    { return ym.Calendar().MonthsInYear(ym.iso) }
func (ym PlainYearMonth) InLeapYear() bool     { return ym.Calendar().InLeapYear(ym.iso) }

func (ym PlainYearMonth) fields() calendar.Fields {
	cal := ym.Calendar()
	return calendar.Fields{Year: calendar.Int(cal.Year(ym.iso)), MonthCode: cal.MonthCode(ym.iso)}
}

// With returns ym with the fields present in f replaced.
func (ym PlainYearMonth) With(f calendar.Fields, ov date.Overflow) (PlainYearMonth, error) {
	f.Day = nil
	merged, err := mergeFields(ym.fields(), f)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonthFromFields(merged, ym.Calendar(), ov)
}

// Add returns ym advanced by the years and months
// of d. Durations with smaller units are rejected,
// since their effect depends on the day of the month.
func (ym PlainYearMonth) Add(d Duration, ov date.Overflow) (PlainYearMonth, error) {
	if d.Weeks != 0 || d.Days != 0 || !d.TimeNanos().IsZero() {
		return PlainYearMonth{}, terr.Rangef("only years and months can be added to a year-month")
	}
	cal := ym.Calendar()
	nd, err := cal.DateAdd(ym.iso, duration.DateDuration{Years: d.Years, Months: d.Months}, ov)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonthFromFields(calendar.Fields{
		Year:      calendar.Int(cal.Year(nd)),
		MonthCode: cal.MonthCode(nd),
	}, cal, ov)
}

// Subtract returns ym moved back by d.
func (ym PlainYearMonth) Subtract(d Duration, ov date.Overflow) (PlainYearMonth, error) {
	return ym.Add(d.Negated(), ov)
}

// Until returns the duration in years and
// months from ym to other.
func (ym PlainYearMonth) Until(other PlainYearMonth, opts DiffOptions) (Duration, error) {
	return ym.diff(other, opts, false)
}

// Since returns the duration in years and
// months from other to ym.
func (ym PlainYearMonth) Since(other PlainYearMonth, opts DiffOptions) (Duration, error) {
	return ym.diff(other, opts, true)
}

func (ym PlainYearMonth) diff(other PlainYearMonth, opts DiffOptions, since bool) (Duration, error) {
	if err := calendar.CheckSame(ym.Calendar(), other.Calendar()); err != nil {
		return Duration{}, err
	}
	r, err := opts.normalize(yearMonthUnits, since)
	if err != nil {
		return Duration{}, err
	}
	a := date.Combine(ym.iso, date.Midnight)
	b := date.Combine(other.iso, date.Midnight)
	in, err := relative.DiffDateTimeRounded(ym.Calendar(), a, b, r)
	if err != nil {
		return Duration{}, err
	}
	return finish(in, r.Largest, since)
}

// ToPlainDate returns day of ym, constrained
// to the length of the month.
func (ym PlainYearMonth) ToPlainDate(day int) (PlainDate, error) {
	f := ym.fields()
	f.Day = &day
	return PlainDateFromFields(f, ym.Calendar(), date.Constrain)
}

// ComparePlainYearMonth orders a and b by their
// ISO fields, ignoring the calendar.
func ComparePlainYearMonth(a, b PlainYearMonth) int {
	return date.CompareDate(a.iso, b.iso)
}

// Equals returns whether ym and other are the
// same month in the same calendar.
func (ym PlainYearMonth) Equals(other PlainYearMonth) bool {
	return ym.iso == other.iso && calendar.Equal(ym.Calendar(), other.Calendar())
}

func (ym PlainYearMonth) String() string {
	s, _ := ym.Format(FormatOptions{})
	return s
}

// Format returns ym as YYYY-MM. For calendars other
// than ISO 8601, or when the calendar annotation is
// forced, the full reference date is written.
func (ym PlainYearMonth) Format(opts FormatOptions) (string, error) {
	cal := ym.Calendar()
	if calendar.Equal(cal, calendar.ISO) && (opts.Calendar == CalendarAuto || opts.Calendar == CalendarNever) {
		return string(date.AppendYearMonth(nil, ym.iso)), nil
	}
	b := date.AppendDate(nil, ym.iso)
	return string(calendarAnnotation(b, cal, opts.Calendar)), nil
}
