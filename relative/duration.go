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

package relative

import (
	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

var errNoReference = terr.Rangef("a reference point is required for years, months, and weeks")

// zonedLargest is the largest unit the time portion
// of a zoned result is balanced into; days in a
// time zone are never inferred from hours.
func zonedLargest(largest duration.Unit) duration.Unit {
	if largest.IsDate() {
		return duration.Hour
	}
	return largest
}

// end returns the instant and wall-clock time
// reached by adding d to m.
func (m *Marker) end(d duration.Duration) (Marker, error) {
	if m.Zone != nil {
		return m.Move(d.Internal(), date.Constrain)
	}
	return m.Move(d.Internal24(), date.Constrain)
}

// RoundDuration rounds d according to r. If m is nil,
// d must not contain calendar units and days are
// treated as 24 hours.
func RoundDuration(d duration.Duration, r Rounding, m *Marker) (duration.Duration, error) {
	if m == nil {
		if d.HasCalendarUnits() || r.Largest.IsCalendar() || r.Smallest.IsCalendar() {
			return duration.Duration{}, errNoReference
		}
		t, err := duration.RoundTime(d.Internal24().Time, r.Increment, r.Smallest, r.Mode)
		if err != nil {
			return duration.Duration{}, err
		}
		return duration.FromInternal(duration.Internal{Time: t}, r.Largest)
	}
	end, err := m.end(d)
	if err != nil {
		return duration.Duration{}, err
	}
	if m.Zone != nil {
		in, err := DiffZonedRounded(m.Calendar, m.Zone, m.EpochNs, end.EpochNs, r)
		if err != nil {
			return duration.Duration{}, err
		}
		return duration.FromInternal(in, zonedLargest(r.Largest))
	}
	in, err := DiffDateTimeRounded(m.Calendar, m.DateTime, end.DateTime, r)
	if err != nil {
		return duration.Duration{}, err
	}
	return duration.FromInternal(in, r.Largest)
}

// TotalDuration returns d as a fractional number
// of unit. If m is nil, d must not contain calendar
// units and days are treated as 24 hours.
func TotalDuration(d duration.Duration, unit duration.Unit, m *Marker) (float64, error) {
	if m == nil {
		if d.HasCalendarUnits() || unit.IsCalendar() {
			return 0, errNoReference
		}
		return duration.TotalTime(d.Internal24().Time, unit), nil
	}
	end, err := m.end(d)
	if err != nil {
		return 0, err
	}
	if m.Zone != nil {
		return DiffZonedTotal(m.Calendar, m.Zone, m.EpochNs, end.EpochNs, unit)
	}
	return DiffDateTimeTotal(m.Calendar, m.DateTime, end.DateTime, unit)
}

// CompareDurations returns -1, 0, or +1 as a is
// shorter than, equal to, or longer than b when
// both are applied at m.
func CompareDurations(a, b duration.Duration, m *Marker) (int, error) {
	if a == b {
		return 0, nil
	}
	calendarUnits := a.HasCalendarUnits() || b.HasCalendarUnits()
	if m != nil && m.Zone != nil && (calendarUnits || a.Days != 0 || b.Days != 0) {
		ea, err := m.end(a)
		if err != nil {
			return 0, err
		}
		eb, err := m.end(b)
		if err != nil {
			return 0, err
		}
		return ea.EpochNs.Cmp(eb.EpochNs), nil
	}
	if calendarUnits && m == nil {
		return 0, errNoReference
	}
	ta, err := m.exactTime(a)
	if err != nil {
		return 0, err
	}
	tb, err := m.exactTime(b)
	if err != nil {
		return 0, err
	}
	return ta.Cmp(tb), nil
}

// exactTime returns the length of d with its
// calendar units converted to days at m, and
// days treated as 24 hours.
func (m *Marker) exactTime(d duration.Duration) (timemath.DayTimeNano, error) {
	days := d.Days
	if d.HasCalendarUnits() {
		ymw := duration.DateDuration{Years: d.Years, Months: d.Months, Weeks: d.Weeks}
		later, err := m.Calendar.DateAdd(m.DateTime.Date, ymw, date.Constrain)
		if err != nil {
			return timemath.DayTimeNano{}, err
		}
		days += later.EpochDays() - m.DateTime.Date.EpochDays()
	}
	return d.TimeNanos().Add(timemath.FromDays(days)), nil
}

// AddDurations returns a+b. If m is nil, neither
// duration may contain calendar units. Otherwise a
// and then b are added to m, and the result is the
// difference from m balanced up to the largest unit
// of either input.
func AddDurations(a, b duration.Duration, m *Marker) (duration.Duration, error) {
	if m == nil {
		return duration.Add(a, b)
	}
	largest := duration.Larger(a.LargestUnit(), b.LargestUnit())
	if m.Zone != nil && !largest.IsDate() {
		sum := a.TimeNanos().Add(b.TimeNanos())
		return duration.FromInternal(duration.Internal{Time: sum}, largest)
	}
	m1, err := m.Move(a.Internal(), date.Constrain)
	if err != nil {
		return duration.Duration{}, err
	}
	m2, err := m1.Move(b.Internal(), date.Constrain)
	if err != nil {
		return duration.Duration{}, err
	}
	if m.Zone != nil {
		in, err := DiffZoned(m.Calendar, m.Zone, m.EpochNs, m2.EpochNs, largest)
		if err != nil {
			return duration.Duration{}, err
		}
		return duration.FromInternal(in, duration.Hour)
	}
	in, err := DiffDateTime(m.Calendar, m.DateTime, m2.DateTime, largest)
	if err != nil {
		return duration.Duration{}, err
	}
	return duration.FromInternal(in, largest)
}
