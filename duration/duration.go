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

// Package duration implements the Duration record,
// a signed quantity of years, months, weeks, days and
// time units, together with unit arithmetic, balancing,
// exact rounding of time quantities, and the ISO 8601
// duration string format.
//
// Calendar units (years, months, weeks) have no fixed
// length, so operations that must convert them into
// nanoseconds are performed relative to a reference
// point by package relative.
package duration

import (
	"math/big"

	"github.com/SnellerInc/tempo/ints"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

// A Duration represents a signed amount of time in
// calendar and clock units. All non-zero fields of
// a valid Duration share the same sign.
type Duration struct {
	Years, Months, Weeks, Days              int64
	Hours, Minutes, Seconds                 int64
	Milliseconds, Microseconds, Nanoseconds int64
}

const maxCalendarField = 1<<32 - 1

// maxDays is the largest day count whose length
// does not exceed 2**53 seconds.
const maxDays = (1 << 53) / (timemath.NanosPerDay / timemath.NanosPerSecond)

// New returns a validated Duration.
func New(years, months, weeks, days, hours, minutes, seconds, ms, us, ns int64) (Duration, error) {
	d := Duration{years, months, weeks, days, hours, minutes, seconds, ms, us, ns}
	if err := d.Validate(); err != nil {
		return Duration{}, err
	}
	return d, nil
}

func (d *Duration) fields() [10]int64 {
	return [10]int64{
		d.Years, d.Months, d.Weeks, d.Days,
		d.Hours, d.Minutes, d.Seconds,
		d.Milliseconds, d.Microseconds, d.Nanoseconds,
	}
}

// Validate returns an error if the fields of d have
// mixed signs or exceed the representable range.
func (d Duration) Validate() error {
	sign := 0
	for _, v := range d.fields() {
		s := ints.Sign(v)
		if s == 0 {
			continue
		}
		if sign != 0 && s != sign {
			return terr.Rangef("mixed-sign duration %s", d.debug())
		}
		sign = s
	}
	if ints.Abs(d.Years) > maxCalendarField || ints.Abs(d.Months) > maxCalendarField || ints.Abs(d.Weeks) > maxCalendarField {
		return terr.Rangef("duration %s: calendar units out of range", d.debug())
	}
	if d.Days > maxDays || d.Days < -maxDays {
		return terr.Rangef("duration %s: days out of range", d.debug())
	}
	return timemath.CheckTime(d.Internal24().Time)
}

// Sign returns -1, 0, or +1.
func (d Duration) Sign() int {
	for _, v := range d.fields() {
		if v != 0 {
			return ints.Sign(v)
		}
	}
	return 0
}

// IsZero returns whether every field of d is zero.
func (d Duration) IsZero() bool {
	return d == Duration{}
}

// Negated returns -d.
func (d Duration) Negated() Duration {
	return Duration{
		-d.Years, -d.Months, -d.Weeks, -d.Days,
		-d.Hours, -d.Minutes, -d.Seconds,
		-d.Milliseconds, -d.Microseconds, -d.Nanoseconds,
	}
}

// Abs returns d with every field made non-negative.
func (d Duration) Abs() Duration {
	if d.Sign() < 0 {
		return d.Negated()
	}
	return d
}

// LargestUnit returns the largest unit with a non-zero
// field, or Nanosecond for the zero duration.
func (d Duration) LargestUnit() Unit {
	f := d.fields()
	for i, v := range f {
		if v != 0 {
			return Year - Unit(i)
		}
	}
	return Nanosecond
}

// HasCalendarUnits returns whether any of the
// years, months, or weeks fields is non-zero.
func (d Duration) HasCalendarUnits() bool {
	return d.Years != 0 || d.Months != 0 || d.Weeks != 0
}

// TimeNanos returns the hours through nanoseconds
// fields of d as an exact nanosecond count.
func (d Duration) TimeNanos() timemath.DayTimeNano {
	t := timemath.FromUnits(d.Hours, timemath.NanosPerHour)
	t = t.Add(timemath.FromUnits(d.Minutes, timemath.NanosPerMinute))
	t = t.Add(timemath.FromUnits(d.Seconds, timemath.NanosPerSecond))
	t = t.Add(timemath.FromUnits(d.Milliseconds, timemath.NanosPerMillisecond))
	t = t.Add(timemath.FromUnits(d.Microseconds, timemath.NanosPerMicrosecond))
	return t.Add(timemath.FromNanos(d.Nanoseconds))
}

// DateDuration holds the calendar portion of
// an Internal duration.
type DateDuration struct {
	Years, Months, Weeks, Days int64
}

// IsZero returns whether every field is zero.
func (dd DateDuration) IsZero() bool {
	return dd == DateDuration{}
}

// Sign returns -1, 0, or +1.
func (dd DateDuration) Sign() int {
	for _, v := range [...]int64{dd.Years, dd.Months, dd.Weeks, dd.Days} {
		if v != 0 {
			return ints.Sign(v)
		}
	}
	return 0
}

// Internal is the form on which arithmetic is
// performed: a calendar portion and an exact time
// portion of the same sign.
type Internal struct {
	Date DateDuration
	Time timemath.DayTimeNano
}

// Sign returns -1, 0, or +1.
func (in Internal) Sign() int {
	if s := in.Date.Sign(); s != 0 {
		return s
	}
	return in.Time.Sign()
}

// Internal returns d split into its calendar units
// (including days) and exact time units.
func (d Duration) Internal() Internal {
	return Internal{
		Date: DateDuration{d.Years, d.Months, d.Weeks, d.Days},
		Time: d.TimeNanos(),
	}
}

// Internal24 is like Internal, but treats days as
// exactly 24 hours and folds them into the time portion.
func (d Duration) Internal24() Internal {
	return Internal{
		Date: DateDuration{Years: d.Years, Months: d.Months, Weeks: d.Weeks},
		Time: d.TimeNanos().Add(timemath.FromDays(d.Days)),
	}
}

// FromInternal returns the Duration for in with the
// time portion balanced into units no larger than
// largest. If largest is a date unit, whole days of
// the time portion are added to the days field.
func FromInternal(in Internal, largest Unit) (Duration, error) {
	if err := timemath.CheckTime(in.Time); err != nil {
		return Duration{}, err
	}
	sign := int64(in.Time.Sign())
	rest := in.Time.Abs().Big()
	d := Duration{
		Years:  in.Date.Years,
		Months: in.Date.Months,
		Weeks:  in.Date.Weeks,
		Days:   in.Date.Days,
	}
	top := largest
	if top == Auto || top > Day {
		top = Day
	}
	fields := [...]*int64{
		Nanosecond:  &d.Nanoseconds,
		Microsecond: &d.Microseconds,
		Millisecond: &d.Milliseconds,
		Second:      &d.Seconds,
		Minute:      &d.Minutes,
		Hour:        &d.Hours,
	}
	q := new(big.Int)
	for u := top; u >= Nanosecond; u-- {
		q.QuoRem(rest, big.NewInt(u.Nanos()), rest)
		if !q.IsInt64() {
			return Duration{}, terr.Rangef("duration too large to express in %s", u.Plural())
		}
		v := q.Int64() * sign
		if u == Day {
			d.Days += v
		} else {
			*fields[u] = v
		}
	}
	return d, d.Validate()
}

// Add returns a+b. Both durations must be free of
// calendar units, since those have no fixed length;
// days are treated as 24 hours.
func Add(a, b Duration) (Duration, error) {
	if a.HasCalendarUnits() || b.HasCalendarUnits() {
		return Duration{}, terr.Rangef("adding durations with years, months, or weeks requires a reference point")
	}
	sum := a.Internal24().Time.Add(b.Internal24().Time)
	largest := Larger(a.LargestUnit(), b.LargestUnit())
	return FromInternal(Internal{Time: sum}, largest)
}

func (d Duration) debug() string {
	return string(d.appendISO(nil, -1))
}
