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
	"github.com/SnellerInc/tempo/calendar"
	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
	"github.com/SnellerInc/tempo/timezone"
)

// Rounding holds normalized rounding options.
type Rounding struct {
	Largest   duration.Unit
	Smallest  duration.Unit
	Increment int64
	Mode      timemath.RoundingMode
}

// exact returns whether r leaves a difference unchanged.
func (r *Rounding) exact() bool {
	return r.Smallest == duration.Nanosecond && r.Increment == 1
}

// DiffDateTime returns b-a for wall-clock times,
// with the calendar portion balanced up to largest.
// If largest is a time unit, days are folded
// into the time portion as 24 hours.
func DiffDateTime(cal calendar.Calendar, a, b date.DateTime, largest duration.Unit) (duration.Internal, error) {
	if date.CompareDateTime(a, b) == 0 {
		return duration.Internal{}, nil
	}
	td := timemath.FromNanos(b.Time.Nanos() - a.Time.Nanos())
	timeSign := td.Sign()
	adjusted := b.Date
	// borrow a day when the time runs against the date
	if timeSign != 0 && timeSign == date.CompareDate(a.Date, b.Date) {
		adjusted = b.Date.AddDays(int64(timeSign))
		td = td.Add(timemath.FromDays(int64(-timeSign)))
	}
	dl := duration.Larger(largest, duration.Day)
	dd, err := cal.DateUntil(a.Date, adjusted, dl)
	if err != nil {
		return duration.Internal{}, err
	}
	if largest != dl {
		td = td.Add(timemath.FromDays(dd.Days))
		dd.Days = 0
	}
	return duration.Internal{Date: dd, Time: td}, nil
}

// DiffZoned returns ns2-ns1 in tz. If largest is a
// date unit, the result counts whole calendar days
// of wall-clock time and then the exact remainder;
// otherwise it is purely exact time.
func DiffZoned(cal calendar.Calendar, tz timezone.TimeZone, ns1, ns2 timemath.DayTimeNano, largest duration.Unit) (duration.Internal, error) {
	if !largest.IsDate() {
		return duration.Internal{Time: ns2.Sub(ns1)}, nil
	}
	sign := ns2.Cmp(ns1)
	if sign == 0 {
		return duration.Internal{}, nil
	}
	start := timezone.DateTimeFor(tz, ns1)
	end := timezone.DateTimeFor(tz, ns2)
	correction := 0
	if wall := timemath.FromNanos(end.Time.Nanos() - start.Time.Nanos()); wall.Sign() == -sign {
		correction++
	}
	maxCorrection := 1
	if sign > 0 {
		maxCorrection = 2
	}
	var mid date.Date
	var td timemath.DayTimeNano
	ok := false
	for ; correction <= maxCorrection && !ok; correction++ {
		mid = end.Date.AddDays(int64(-correction * sign))
		ns, err := timezone.InstantFor(tz, date.Combine(mid, start.Time), timezone.Compatible)
		if err != nil {
			return duration.Internal{}, err
		}
		td = ns2.Sub(ns)
		ok = td.Sign() != -sign
	}
	if !ok {
		return duration.Internal{}, terr.Rangef("cannot compute difference in time zone %s", tz.ID())
	}
	dd, err := cal.DateUntil(start.Date, mid, duration.Larger(largest, duration.Day))
	if err != nil {
		return duration.Internal{}, err
	}
	return duration.Internal{Date: dd, Time: td}, nil
}

// DiffDateTimeRounded is DiffDateTime followed by
// rounding relative to a.
func DiffDateTimeRounded(cal calendar.Calendar, a, b date.DateTime, r Rounding) (duration.Internal, error) {
	if date.CompareDateTime(a, b) == 0 {
		return duration.Internal{}, nil
	}
	d, err := DiffDateTime(cal, a, b, r.Largest)
	if err != nil || r.exact() {
		return d, err
	}
	return Round(d, b.EpochNanoseconds(), Plain(cal, a), r)
}

// DiffZonedRounded is DiffZoned followed by
// rounding relative to ns1.
func DiffZonedRounded(cal calendar.Calendar, tz timezone.TimeZone, ns1, ns2 timemath.DayTimeNano, r Rounding) (duration.Internal, error) {
	if !r.Largest.IsDate() {
		t, err := duration.RoundTime(ns2.Sub(ns1), r.Increment, r.Smallest, r.Mode)
		return duration.Internal{Time: t}, err
	}
	d, err := DiffZoned(cal, tz, ns1, ns2, r.Largest)
	if err != nil || r.exact() {
		return d, err
	}
	return Round(d, ns2, Zoned(cal, tz, ns1), r)
}

// DiffDateTimeTotal returns b-a as a
// fractional number of unit.
func DiffDateTimeTotal(cal calendar.Calendar, a, b date.DateTime, unit duration.Unit) (float64, error) {
	if date.CompareDateTime(a, b) == 0 {
		return 0, nil
	}
	d, err := DiffDateTime(cal, a, b, unit)
	if err != nil {
		return 0, err
	}
	return Total(d, b.EpochNanoseconds(), Plain(cal, a), unit)
}

// DiffZonedTotal returns ns2-ns1 in tz as a
// fractional number of unit.
func DiffZonedTotal(cal calendar.Calendar, tz timezone.TimeZone, ns1, ns2 timemath.DayTimeNano, unit duration.Unit) (float64, error) {
	if unit.IsTime() {
		return duration.TotalTime(ns2.Sub(ns1), unit), nil
	}
	d, err := DiffZoned(cal, tz, ns1, ns2, unit)
	if err != nil {
		return 0, err
	}
	return Total(d, ns2, Zoned(cal, tz, ns1), unit)
}
