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

// Package calendar implements calendar engines: the
// rules that derive calendar-specific fields from ISO
// dates and that perform date arithmetic.
//
// Every engine operates on date.Date values (ISO
// 8601 fields); calendar-specific fields such as the
// era or month code are always derived, never stored.
package calendar

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"

	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/internal/registry"
	"github.com/SnellerInc/tempo/terr"
)

// Fields is a bag of calendar fields used to construct
// dates. A nil pointer means the field is absent.
type Fields struct {
	Era       string
	EraYear   *int
	Year      *int
	Month     *int
	MonthCode string
	Day       *int
}

// Int returns a pointer to n, for populating Fields.
func Int(n int) *int { return &n }

// Calendar is the set of operations a calendar engine
// provides. Implementations must be stateless and safe
// for concurrent use.
type Calendar interface {
	// ID returns the canonical identifier.
	ID() string

	// DateFromFields returns the ISO date for f.
	DateFromFields(f Fields, ov date.Overflow) (date.Date, error)
	// YearMonthFromFields returns the ISO date of
	// the first day of the month described by f.
	YearMonthFromFields(f Fields, ov date.Overflow) (date.Date, error)
	// MonthDayFromFields returns an ISO date in a
	// reference year carrying the month and day in f.
	MonthDayFromFields(f Fields, ov date.Overflow) (date.Date, error)

	Year(d date.Date) int
	Month(d date.Date) int
	MonthCode(d date.Date) string
	Day(d date.Date) int
	// Era and EraYear return false for
	// calendars without eras.
	Era(d date.Date) (string, bool)
	EraYear(d date.Date) (int, bool)

	DayOfWeek(d date.Date) int
	DayOfYear(d date.Date) int
	// WeekOfYear and YearOfWeek return false for
	// calendars without a week numbering scheme.
	WeekOfYear(d date.Date) (int, bool)
	YearOfWeek(d date.Date) (int, bool)
	DaysInWeek(d date.Date) int
	DaysInMonth(d date.Date) int
	DaysInYear(d date.Date) int
	MonthsInYear(d date.Date) int
	InLeapYear(d date.Date) bool

	// DateAdd adds the calendar portion dd to d:
	// years and months first, with the day regulated
	// according to ov, then weeks and days.
	DateAdd(d date.Date, dd duration.DateDuration, ov date.Overflow) (date.Date, error)
	// DateUntil returns the difference b-a balanced
	// up to largest, which is a unit of a day or more.
	DateUntil(a, b date.Date, largest duration.Unit) (duration.DateDuration, error)
}

// ISO is the ISO 8601 calendar.
var ISO Calendar = isoCalendar{}

var cache = registry.New[Calendar]()

var builtins = map[string]Calendar{
	"iso8601":  ISO,
	"gregory":  gregory,
	"buddhist": buddhist,
	"roc":      roc,
	"japanese": japanese,
}

func fold(id string) string {
	return cases.Fold().String(id)
}

// Get returns the calendar with the given identifier.
// Identifiers are matched case-insensitively.
func Get(id string) (Calendar, error) {
	key := fold(id)
	return cache.Load(key, func(key string) (Calendar, error) {
		if c, ok := builtins[key]; ok {
			return c, nil
		}
		return nil, terr.Rangef("unknown calendar %q", id)
	})
}

// Register makes c available through Get under its
// identifier, replacing any existing registration.
// Built-in calendars cannot be replaced.
func Register(c Calendar) error {
	key := fold(c.ID())
	if _, ok := builtins[key]; ok {
		return terr.Rangef("cannot replace built-in calendar %q", c.ID())
	}
	cache.Replace(key, c)
	return nil
}

// IDs returns the sorted identifiers of every
// built-in and registered calendar.
func IDs() []string {
	set := make(map[string]struct{}, len(builtins))
	for k := range builtins {
		set[k] = struct{}{}
	}
	for _, k := range cache.Keys() {
		set[k] = struct{}{}
	}
	ids := maps.Keys(set)
	slices.Sort(ids)
	return ids
}

// Equal returns whether a and b are the same calendar.
func Equal(a, b Calendar) bool {
	return a == b || a.ID() == b.ID()
}

// CheckSame returns a range error if a and b
// are different calendars.
func CheckSame(a, b Calendar) error {
	if !Equal(a, b) {
		return terr.Rangef("calendars %s and %s differ", a.ID(), b.ID())
	}
	return nil
}

// MonthCode returns the month code for month m ("M01").
func MonthCode(m int) string {
	return fmt.Sprintf("M%02d", m)
}

// ParseMonthCode parses a month code of the form "M01"
// through "M12". Leap-month codes ("M05L") are rejected.
func ParseMonthCode(s string) (int, error) {
	if len(s) != 3 || s[0] != 'M' || s[1] < '0' || s[1] > '9' || s[2] < '0' || s[2] > '9' {
		return 0, terr.Rangef("invalid month code %q", s)
	}
	m := int(s[1]-'0')*10 + int(s[2]-'0')
	if m < 1 || m > 12 {
		return 0, terr.Rangef("invalid month code %q", s)
	}
	return m, nil
}

// resolveMonth returns the month in f, reconciling
// Month and MonthCode when both are present.
func resolveMonth(f *Fields) (int, bool, error) {
	if f.MonthCode == "" {
		if f.Month == nil {
			return 0, false, nil
		}
		return *f.Month, true, nil
	}
	m, err := ParseMonthCode(f.MonthCode)
	if err != nil {
		return 0, false, err
	}
	if f.Month != nil && *f.Month != m {
		return 0, false, terr.Rangef("month %d does not match month code %s", *f.Month, f.MonthCode)
	}
	return m, true, nil
}
