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
)

// PlainMonthDay is a day of a month, without a year.
// Its ISO fields hold a date in a reference year.
type PlainMonthDay struct {
	iso date.Date
	cal calendar.Calendar
}

// NewPlainMonthDay returns month-day in the ISO
// reference year, in cal (nil means ISO 8601).
func NewPlainMonthDay(month, day int, cal calendar.Calendar) (PlainMonthDay, error) {
	md, err := PlainMonthDayFromFields(calendar.Fields{
		MonthCode: calendar.MonthCode(month),
		Day:       &day,
	}, calendar.ISO, date.Reject)
	if err != nil {
		return PlainMonthDay{}, err
	}
	md.cal = orISO(cal)
	return md, nil
}

// PlainMonthDayFromFields returns the month-day
// described by calendar fields in cal.
func PlainMonthDayFromFields(f calendar.Fields, cal calendar.Calendar, ov date.Overflow) (PlainMonthDay, error) {
	cal = orISO(cal)
	d, err := cal.MonthDayFromFields(f, ov)
	if err != nil {
		return PlainMonthDay{}, err
	}
	return PlainMonthDay{iso: d, cal: cal}, nil
}

// ParsePlainMonthDay parses --MM-DD or MM-DD,
// or the month and day of a date string.
func ParsePlainMonthDay(s string) (PlainMonthDay, error) {
	r, cal, err := parseWith(s, iso8601.KindMonthDay)
	if err != nil {
		return PlainMonthDay{}, err
	}
	return PlainMonthDayFromFields(calendar.Fields{
		MonthCode: cal.MonthCode(r.Date),
		Day:       calendar.Int(cal.Day(r.Date)),
	}, cal, date.Constrain)
}

// ISO returns the ISO date of md in its reference year.
func (md PlainMonthDay) ISO() date.Date { return md.iso }

// Calendar returns the calendar of md.
func (md PlainMonthDay) Calendar() calendar.Calendar { return orISO(md.cal) }

func (md PlainMonthDay) MonthCode() string { return md.Calendar().MonthCode(md.iso) }
func (md PlainMonthDay) Day() int          { return md.Calendar().Day(md.iso) }

func (md PlainMonthDay) fields() calendar.Fields {
	return calendar.Fields{MonthCode: md.MonthCode(), Day: calendar.Int(md.Day())}
}

// With returns md with the fields present in f replaced.
func (md PlainMonthDay) With(f calendar.Fields, ov date.Overflow) (PlainMonthDay, error) {
	merged, err := mergeFields(md.fields(), f)
	if err != nil {
		return PlainMonthDay{}, err
	}
	return PlainMonthDayFromFields(merged, md.Calendar(), ov)
}

// ToPlainDate returns md in year, constraining
// February 29 in common years.
func (md PlainMonthDay) ToPlainDate(year int) (PlainDate, error) {
	f := md.fields()
	f.Year = &year
	return PlainDateFromFields(f, md.Calendar(), date.Constrain)
}

// Equals returns whether md and other are the
// same month-day in the same calendar.
func (md PlainMonthDay) Equals(other PlainMonthDay) bool {
	return md.iso == other.iso && calendar.Equal(md.Calendar(), other.Calendar())
}

func (md PlainMonthDay) String() string {
	s, _ := md.Format(FormatOptions{})
	return s
}

// Format returns md as MM-DD. For calendars other
// than ISO 8601, or when the calendar annotation is
// forced, the full reference date is written.
func (md PlainMonthDay) Format(opts FormatOptions) (string, error) {
	cal := md.Calendar()
	if calendar.Equal(cal, calendar.ISO) && (opts.Calendar == CalendarAuto || opts.Calendar == CalendarNever) {
		return string(date.AppendMonthDay(nil, md.iso)), nil
	}
	b := date.AppendDate(nil, md.iso)
	return string(calendarAnnotation(b, cal, opts.Calendar)), nil
}
