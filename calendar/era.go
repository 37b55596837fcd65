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
	"github.com/SnellerInc/tempo/terr"
)

// era describes one era of a Gregorian-derived
// calendar. Forward eras count up from startYear
// (a calendar year) and begin on the ISO date start;
// a backward era counts down from startYear and
// covers everything before the next era.
type era struct {
	name      string
	start     date.Date
	startYear int
	backward  bool
}

// eraCalendar is a calendar with ISO months and days
// whose years are numbered by eras, and whose
// calendar year is the ISO year plus offset.
type eraCalendar struct {
	isoCalendar
	id     string
	offset int
	// eras, newest first; the last entry
	// covers every remaining date
	eras []era
}

var (
	gregory = &eraCalendar{
		id: "gregory",
		eras: []era{
			{name: "ce", start: date.Date{Year: 1, Month: 1, Day: 1}, startYear: 1},
			{name: "bce", startYear: 1, backward: true},
		},
	}
	buddhist = &eraCalendar{
		id:     "buddhist",
		offset: 543,
		eras: []era{
			{name: "be", start: date.MinDate, startYear: 1},
		},
	}
	roc = &eraCalendar{
		id:     "roc",
		offset: -1911,
		eras: []era{
			{name: "roc", start: date.Date{Year: 1912, Month: 1, Day: 1}, startYear: 1},
			{name: "broc", startYear: 1, backward: true},
		},
	}
	japanese = &eraCalendar{
		id: "japanese",
		eras: []era{
			{name: "reiwa", start: date.Date{Year: 2019, Month: 5, Day: 1}, startYear: 2019},
			{name: "heisei", start: date.Date{Year: 1989, Month: 1, Day: 8}, startYear: 1989},
			{name: "showa", start: date.Date{Year: 1926, Month: 12, Day: 25}, startYear: 1926},
			{name: "taisho", start: date.Date{Year: 1912, Month: 7, Day: 30}, startYear: 1912},
			{name: "meiji", start: date.Date{Year: 1868, Month: 9, Day: 8}, startYear: 1868},
			{name: "ce", start: date.Date{Year: 1, Month: 1, Day: 1}, startYear: 1},
			{name: "bce", startYear: 1, backward: true},
		},
	}
)

func (c *eraCalendar) ID() string { return c.id }

func (c *eraCalendar) eraOf(d date.Date) *era {
	for i := range c.eras {
		e := &c.eras[i]
		if e.backward || date.CompareDate(d, e.start) >= 0 {
			return e
		}
	}
	return &c.eras[len(c.eras)-1]
}

func (c *eraCalendar) Year(d date.Date) int { return d.Year + c.offset }

func (c *eraCalendar) Era(d date.Date) (string, bool) {
	return c.eraOf(d).name, true
}

func (c *eraCalendar) EraYear(d date.Date) (int, bool) {
	e := c.eraOf(d)
	y := c.Year(d)
	if e.backward {
		return e.startYear - y, true
	}
	return y - e.startYear + 1, true
}

func (c *eraCalendar) WeekOfYear(date.Date) (int, bool) { return 0, false }
func (c *eraCalendar) YearOfWeek(date.Date) (int, bool) { return 0, false }

func (c *eraCalendar) lookupEra(name string) *era {
	for i := range c.eras {
		if c.eras[i].name == name {
			return &c.eras[i]
		}
	}
	return nil
}

// isoYear resolves the calendar year in f, which may
// be given as a year, an era and era year, or both,
// and returns the corresponding ISO year.
func (c *eraCalendar) isoYear(f *Fields) (int, error) {
	if (f.Era == "") != (f.EraYear == nil) {
		return 0, terr.Typef("era and eraYear must be given together")
	}
	if f.Era == "" {
		if f.Year == nil {
			return 0, missing("year (or era and eraYear)")
		}
		return *f.Year - c.offset, nil
	}
	e := c.lookupEra(f.Era)
	if e == nil {
		return 0, terr.Rangef("calendar %s has no era %q", c.id, f.Era)
	}
	y := e.startYear + *f.EraYear - 1
	if e.backward {
		y = e.startYear - *f.EraYear
	}
	if f.Year != nil && *f.Year != y {
		return 0, terr.Rangef("year %d does not match %s %d", *f.Year, f.Era, *f.EraYear)
	}
	return y - c.offset, nil
}

func (c *eraCalendar) DateFromFields(f Fields, ov date.Overflow) (date.Date, error) {
	y, err := c.isoYear(&f)
	if err != nil {
		return date.Date{}, err
	}
	f.Era, f.EraYear, f.Year = "", nil, &y
	return c.isoCalendar.DateFromFields(f, ov)
}

func (c *eraCalendar) YearMonthFromFields(f Fields, ov date.Overflow) (date.Date, error) {
	y, err := c.isoYear(&f)
	if err != nil {
		return date.Date{}, err
	}
	f.Era, f.EraYear, f.Year = "", nil, &y
	return c.isoCalendar.YearMonthFromFields(f, ov)
}

func (c *eraCalendar) MonthDayFromFields(f Fields, ov date.Overflow) (date.Date, error) {
	if f.Year != nil || f.Era != "" || f.EraYear != nil {
		y, err := c.isoYear(&f)
		if err != nil {
			return date.Date{}, err
		}
		f.Year = &y
	}
	f.Era, f.EraYear = "", nil
	return c.isoCalendar.MonthDayFromFields(f, ov)
}
