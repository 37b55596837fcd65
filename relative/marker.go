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

// Package relative implements duration arithmetic
// relative to a reference point, which is needed
// whenever a duration contains units without a fixed
// length: years, months, and weeks everywhere, and
// days in a time zone with offset transitions.
//
// A Marker is either a plain date-time in a calendar
// or an instant in a calendar and time zone; every
// operation in this package treats both the same way.
package relative

import (
	"github.com/SnellerInc/tempo/calendar"
	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
	"github.com/SnellerInc/tempo/timezone"
)

// Marker is a reference point for duration arithmetic.
type Marker struct {
	Calendar calendar.Calendar
	// Zone is nil for a plain marker.
	Zone timezone.TimeZone
	// DateTime is the wall-clock time of the marker.
	DateTime date.DateTime
	// EpochNs is the instant of a zoned marker. For
	// a plain marker it is DateTime read as UTC.
	EpochNs timemath.DayTimeNano
}

// Plain returns a marker for the wall-clock time dt.
func Plain(cal calendar.Calendar, dt date.DateTime) Marker {
	return Marker{Calendar: cal, DateTime: dt, EpochNs: dt.EpochNanoseconds()}
}

// Zoned returns a marker for the instant ns in tz.
func Zoned(cal calendar.Calendar, tz timezone.TimeZone, ns timemath.DayTimeNano) Marker {
	return Marker{Calendar: cal, Zone: tz, DateTime: timezone.DateTimeFor(tz, ns), EpochNs: ns}
}

// IsZoned returns whether m has a time zone.
func (m Marker) IsZoned() bool { return m.Zone != nil }

// Move returns the marker d after m. Days are
// calendar days in a zoned marker, so across an
// offset transition a day may not be 24 hours.
func (m Marker) Move(d duration.Internal, ov date.Overflow) (Marker, error) {
	if m.Zone != nil {
		ns, err := AddZoned(m.Calendar, m.Zone, m.EpochNs, d, ov)
		if err != nil {
			return Marker{}, err
		}
		return Zoned(m.Calendar, m.Zone, ns), nil
	}
	dt, err := AddDateTime(m.Calendar, m.DateTime, d, ov)
	if err != nil {
		return Marker{}, err
	}
	return Plain(m.Calendar, dt), nil
}

// EpochNanoseconds returns the instant of m.
func (m Marker) EpochNanoseconds() timemath.DayTimeNano { return m.EpochNs }

// at returns the instant of the marker dd after m,
// with the wall-clock time of m kept fixed.
func (m Marker) at(dd duration.DateDuration) (timemath.DayTimeNano, error) {
	d, err := m.Calendar.DateAdd(m.DateTime.Date, dd, date.Constrain)
	if err != nil {
		return timemath.DayTimeNano{}, err
	}
	dt := date.Combine(d, m.DateTime.Time)
	if m.Zone == nil {
		return dt.EpochNanoseconds(), nil
	}
	return timezone.InstantFor(m.Zone, dt, timezone.Compatible)
}

// Until returns the difference from m to end, which
// must share its calendar and time zone, rounded
// according to r.
func (m Marker) Until(end Marker, r Rounding) (duration.Internal, error) {
	if err := calendar.CheckSame(m.Calendar, end.Calendar); err != nil {
		return duration.Internal{}, err
	}
	if m.Zone != nil {
		if end.Zone == nil || !timezone.Equal(m.Zone, end.Zone) {
			return duration.Internal{}, terr.Rangef("markers have different time zones")
		}
		return DiffZonedRounded(m.Calendar, m.Zone, m.EpochNs, end.EpochNs, r)
	}
	return DiffDateTimeRounded(m.Calendar, m.DateTime, end.DateTime, r)
}

// AddDateTime adds d to the wall-clock time dt:
// the time portion first, then the calendar portion
// together with any days the time overflowed into.
func AddDateTime(cal calendar.Calendar, dt date.DateTime, d duration.Internal, ov date.Overflow) (date.DateTime, error) {
	days, t := dt.Time.AddTime(d.Time)
	dd := d.Date
	dd.Days += days
	nd, err := cal.DateAdd(dt.Date, dd, ov)
	if err != nil {
		return date.DateTime{}, err
	}
	res := date.Combine(nd, t)
	return res, date.CheckDateTime(res)
}

// AddZoned adds d to the instant ns in tz. The
// calendar portion is added to the wall-clock date,
// and the time portion is then added as exact time.
func AddZoned(cal calendar.Calendar, tz timezone.TimeZone, ns timemath.DayTimeNano, d duration.Internal, ov date.Overflow) (timemath.DayTimeNano, error) {
	if !d.Date.IsZero() {
		dt := timezone.DateTimeFor(tz, ns)
		nd, err := cal.DateAdd(dt.Date, d.Date, ov)
		if err != nil {
			return timemath.DayTimeNano{}, err
		}
		ns, err = timezone.InstantFor(tz, date.Combine(nd, dt.Time), timezone.Compatible)
		if err != nil {
			return timemath.DayTimeNano{}, err
		}
	}
	res := ns.Add(d.Time)
	return res, timemath.CheckEpoch(res)
}
