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

package calendar

import (
	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/terr"
)

// isoReferenceYear is the leap year used to
// hold month-day values.
const isoReferenceYear = 1972

type isoCalendar struct{}

func (isoCalendar) ID() string { return "iso8601" }

func missing(what string) error {
	return terr.Typef("missing required field %s", what)
}

func (isoCalendar) DateFromFields(f Fields, ov date.Overflow) (date.Date, error) {
	m, ok, err := resolveMonth(&f)
	if err != nil {
		return date.Date{}, err
	}
	switch {
	case f.Year == nil:
		return date.Date{}, missing("year")
	case !ok:
		return date.Date{}, missing("month or monthCode")
	case f.Day == nil:
		return date.Date{}, missing("day")
	}
	d, err := date.RegulateDate(*f.Year, m, *f.Day, ov)
	if err != nil {
		return date.Date{}, err
	}
	return d, date.CheckDate(d)
}

func (isoCalendar) YearMonthFromFields(f Fields, ov date.Overflow) (date.Date, error) {
	m, ok, err := resolveMonth(&f)
	if err != nil {
		return date.Date{}, err
	}
	switch {
	case f.Year == nil:
		return date.Date{}, missing("year")
	case !ok:
		return date.Date{}, missing("month or monthCode")
	}
	return yearMonth(*f.Year, m, ov)
}

func yearMonth(y, m int, ov date.Overflow) (date.Date, error) {
	d, err := date.RegulateDate(y, m, 1, ov)
	if err != nil {
		return date.Date{}, err
	}
	return d, date.CheckYearMonth(d.Year, d.Month)
}

func (isoCalendar) MonthDayFromFields(f Fields, ov date.Overflow) (date.Date, error) {
	m, ok, err := resolveMonth(&f)
	if err != nil {
		return date.Date{}, err
	}
	switch {
	case !ok:
		return date.Date{}, missing("month or monthCode")
	case f.Day == nil:
		return date.Date{}, missing("day")
	case f.MonthCode == "" && f.Year == nil:
		return date.Date{}, missing("year (or monthCode)")
	}
	return monthDay(f.Year, m, *f.Day, ov)
}

// monthDay regulates m-d against year y, if
// present, and moves the result into the
// reference year.
func monthDay(y *int, m, d int, ov date.Overflow) (date.Date, error) {
	ry := isoReferenceYear
	if y != nil {
		ry = *y
	}
	r, err := date.RegulateDate(ry, m, d, ov)
	if err != nil {
		return date.Date{}, err
	}
	return date.Date{Year: isoReferenceYear, Month: r.Month, Day: r.Day}, nil
}

func (isoCalendar) Year(d date.Date) int          { return d.Year }
func (isoCalendar) Month(d date.Date) int         { return d.Month }
func (isoCalendar) MonthCode(d date.Date) string  { return MonthCode(d.Month) }
func (isoCalendar) Day(d date.Date) int           { return d.Day }
func (isoCalendar) Era(date.Date) (string, bool)  { return "", false }
func (isoCalendar) EraYear(date.Date) (int, bool) { return 0, false }
func (isoCalendar) DayOfWeek(d date.Date) int     { return d.DayOfWeek() }
func (isoCalendar) DayOfYear(d date.Date) int     { return d.DayOfYear() }
func (isoCalendar) DaysInWeek(date.Date) int      { return 7 }
func (isoCalendar) DaysInMonth(d date.Date) int   { return d.DaysInMonth() }
func (isoCalendar) MonthsInYear(date.Date) int    { return 12 }
func (isoCalendar) InLeapYear(d date.Date) bool   { return d.InLeapYear() }

func (isoCalendar) WeekOfYear(d date.Date) (int, bool) {
	w, _ := d.WeekOfYear()
	return w, true
}

func (isoCalendar) YearOfWeek(d date.Date) (int, bool) {
	_, y := d.WeekOfYear()
	return y, true
}

func (isoCalendar) DaysInYear(d date.Date) int {
	if d.InLeapYear() {
		return 366
	}
	return 365
}

func (isoCalendar) DateAdd(d date.Date, dd duration.DateDuration, ov date.Overflow) (date.Date, error) {
	return AddDate(d, dd, ov)
}

func (isoCalendar) DateUntil(a, b date.Date, largest duration.Unit) (duration.DateDuration, error) {
	return DiffDate(a, b, largest), nil
}

// maxYearDelta bounds the years and months that can
// be added without overflowing intermediate results;
// anything larger is out of range regardless.
const maxYearDelta = 1 << 40

// AddDate adds dd to d using ISO 8601 arithmetic.
// Years and months are added first, and the day of
// month is regulated with ov; weeks and days are
// then added as exact day counts.
func AddDate(d date.Date, dd duration.DateDuration, ov date.Overflow) (date.Date, error) {
	if dd.Years > maxYearDelta || dd.Years < -maxYearDelta || dd.Months > maxYearDelta || dd.Months < -maxYearDelta {
		return date.Date{}, terr.Rangef("date %s plus %d years %d months out of range", d, dd.Years, dd.Months)
	}
	y, m := date.BalanceYearMonth(d.Year+int(dd.Years), d.Month+int(dd.Months))
	r, err := date.RegulateDate(y, m, d.Day, ov)
	if err != nil {
		return date.Date{}, err
	}
	if err := date.CheckYearMonth(y, m); err != nil {
		return date.Date{}, err
	}
	days := dd.Weeks*7 + dd.Days
	if days != 0 {
		if days > maxYearDelta || days < -maxYearDelta {
			return date.Date{}, terr.Rangef("date %s plus %d days out of range", d, days)
		}
		r = r.AddDays(days)
	}
	return r, date.CheckDate(r)
}

// surpasses returns whether the unregulated date
// y-m-d lies beyond target in the direction sign.
func surpasses(sign, y, m, d int, target date.Date) bool {
	c := date.CompareDate(date.Date{Year: y, Month: m, Day: d}, target)
	return sign*c > 0
}

// DiffDate returns b-a in ISO 8601 arithmetic,
// balanced up to largest. Whole years and months
// are counted without passing b, then the remaining
// days are counted exactly, so that
// AddDate(a, DiffDate(a, b, u), Constrain) == b.
func DiffDate(a, b date.Date, largest duration.Unit) duration.DateDuration {
	sign := -date.CompareDate(a, b)
	if sign == 0 {
		return duration.DateDuration{}
	}
	var out duration.DateDuration
	switch largest {
	case duration.Year, duration.Month:
		years := 0
		if largest == duration.Year {
			years = b.Year - a.Year
			if years != 0 && surpasses(sign, a.Year+years, a.Month, a.Day, b) {
				years -= sign
			}
		}
		months := (b.Year-(a.Year+years))*12 + b.Month - a.Month
		if months != 0 {
			y, m := date.BalanceYearMonth(a.Year+years, a.Month+months)
			if surpasses(sign, y, m, a.Day, b) {
				months -= sign
			}
		}
		y, m := date.BalanceYearMonth(a.Year+years, a.Month+months)
		mid, _ := date.RegulateDate(y, m, a.Day, date.Constrain)
		out.Years = int64(years)
		out.Months = int64(months)
		out.Days = b.EpochDays() - mid.EpochDays()
	case duration.Week:
		days := b.EpochDays() - a.EpochDays()
		out.Weeks = days / 7
		out.Days = days % 7
	default:
		out.Days = b.EpochDays() - a.EpochDays()
	}
	return out
}
