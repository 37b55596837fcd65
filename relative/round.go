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
	"math/big"

	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/ints"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
	"github.com/SnellerInc/tempo/timezone"
)

// nudge is the result of rounding the smallest unit
// of a duration: the rounded duration, the instant
// it ends at, and whether rounding carried into the
// next larger unit.
type nudge struct {
	d        duration.Internal
	total    *big.Rat
	epochNs  timemath.DayTimeNano
	expanded bool
}

func signOf(d duration.Internal) int64 {
	if d.Sign() < 0 {
		return -1
	}
	return 1
}

// truncMultiple rounds n towards zero to
// a multiple of increment.
func truncMultiple(n, increment int64) int64 {
	return n / increment * increment
}

// Round rounds d, the difference from m to the
// instant dest, so that its smallest unit is a
// multiple of r.Increment r.Smallest, and then
// carries into larger units up to r.Largest.
func Round(d duration.Internal, dest timemath.DayTimeNano, m Marker, r Rounding) (duration.Internal, error) {
	sign := signOf(d)
	var n nudge
	var err error
	switch {
	case r.Smallest.IsCalendar() || m.Zone != nil && r.Smallest == duration.Day:
		n, err = nudgeToCalendarUnit(sign, d, dest, m, r.Increment, r.Smallest, r.Mode)
	case m.Zone != nil:
		n, err = nudgeToZonedTime(sign, d, m, r.Increment, r.Smallest, r.Mode)
	default:
		n, err = nudgeToDayOrTime(d, dest, r.Largest, r.Increment, r.Smallest, r.Mode)
	}
	if err != nil {
		return duration.Internal{}, err
	}
	out := n.d
	if n.expanded && r.Smallest != duration.Week {
		out, err = bubble(sign, out, n.epochNs, m, r.Largest, duration.Larger(r.Smallest, duration.Day))
	}
	return out, err
}

// Total returns d, the difference from m to the
// instant dest, as a fractional number of unit.
func Total(d duration.Internal, dest timemath.DayTimeNano, m Marker, unit duration.Unit) (float64, error) {
	if unit.IsCalendar() || m.Zone != nil && unit == duration.Day {
		n, err := nudgeToCalendarUnit(signOf(d), d, dest, m, 1, unit, timemath.Trunc)
		if err != nil {
			return 0, err
		}
		f, _ := n.total.Float64()
		return f, nil
	}
	return duration.TotalTime(d.Time.Add(timemath.FromDays(d.Date.Days)), unit), nil
}

// nudgeToCalendarUnit rounds d to a multiple of
// increment units by locating dest between the two
// candidate endpoints, measured in exact time from m.
func nudgeToCalendarUnit(sign int64, d duration.Internal, dest timemath.DayTimeNano, m Marker, increment int64, unit duration.Unit, mode timemath.RoundingMode) (nudge, error) {
	var r1 int64
	var start, end duration.DateDuration
	dd := d.Date
	switch unit {
	case duration.Year:
		r1 = truncMultiple(dd.Years, increment)
		start = duration.DateDuration{Years: r1}
		end = duration.DateDuration{Years: r1 + increment*sign}
	case duration.Month:
		r1 = truncMultiple(dd.Months, increment)
		start = duration.DateDuration{Years: dd.Years, Months: r1}
		end = duration.DateDuration{Years: dd.Years, Months: r1 + increment*sign}
	case duration.Week:
		ym := duration.DateDuration{Years: dd.Years, Months: dd.Months}
		ws, err := m.Calendar.DateAdd(m.DateTime.Date, ym, date.Constrain)
		if err != nil {
			return nudge{}, err
		}
		u, err := m.Calendar.DateUntil(ws, ws.AddDays(dd.Days), duration.Week)
		if err != nil {
			return nudge{}, err
		}
		r1 = truncMultiple(dd.Weeks+u.Weeks, increment)
		start = duration.DateDuration{Years: dd.Years, Months: dd.Months, Weeks: r1}
		end = duration.DateDuration{Years: dd.Years, Months: dd.Months, Weeks: r1 + increment*sign}
	case duration.Day:
		r1 = truncMultiple(dd.Days, increment)
		start = duration.DateDuration{Years: dd.Years, Months: dd.Months, Weeks: dd.Weeks, Days: r1}
		end = duration.DateDuration{Years: dd.Years, Months: dd.Months, Weeks: dd.Weeks, Days: r1 + increment*sign}
	default:
		return nudge{}, terr.Rangef("cannot round to %s relative to a calendar", unit)
	}
	startNs, err := m.at(start)
	if err != nil {
		return nudge{}, err
	}
	endNs, err := m.at(end)
	if err != nil {
		return nudge{}, err
	}
	if startNs == endNs {
		return nudge{}, terr.Rangef("rounding interval is empty")
	}
	num := dest.Sub(startNs).Big()
	den := endNs.Sub(startNs).Big()

	total := new(big.Rat).SetFrac(num, den)
	total.Mul(total, new(big.Rat).SetInt64(increment*sign))
	total.Add(total, new(big.Rat).SetInt64(r1))

	an := new(big.Int).Abs(num)
	ad := new(big.Int).Abs(den)
	var expand bool
	switch {
	case an.Sign() == 0:
		expand = false
	case an.Cmp(ad) >= 0:
		expand = true
	default:
		half := new(big.Int).Lsh(an, 1).Cmp(ad)
		odd := ints.Abs(r1)/increment%2 == 1
		expand = mode.Away(sign < 0, half, odd)
	}
	if expand {
		return nudge{d: duration.Internal{Date: end}, total: total, epochNs: endNs, expanded: true}, nil
	}
	return nudge{d: duration.Internal{Date: start}, total: total, epochNs: startNs}, nil
}

// nudgeToZonedTime rounds the time portion of d, which
// is relative to the wall-clock day reached by adding
// the calendar portion to m. Rounding may reach the
// end of that day, whose length depends on the zone.
func nudgeToZonedTime(sign int64, d duration.Internal, m Marker, increment int64, unit duration.Unit, mode timemath.RoundingMode) (nudge, error) {
	start, err := m.Calendar.DateAdd(m.DateTime.Date, d.Date, date.Constrain)
	if err != nil {
		return nudge{}, err
	}
	startNs, err := timezone.InstantFor(m.Zone, date.Combine(start, m.DateTime.Time), timezone.Compatible)
	if err != nil {
		return nudge{}, err
	}
	endNs, err := timezone.InstantFor(m.Zone, date.Combine(start.AddDays(sign), m.DateTime.Time), timezone.Compatible)
	if err != nil {
		return nudge{}, err
	}
	span := endNs.Sub(startNs)
	if int64(span.Sign()) != sign {
		return nudge{}, terr.Rangef("time zone %s has a non-positive day length", m.Zone.ID())
	}
	rounded, err := duration.RoundTime(d.Time, increment, unit, mode)
	if err != nil {
		return nudge{}, err
	}
	dd := d.Date
	beyond := rounded.Sub(span)
	if int64(beyond.Sign()) != -sign {
		dd.Days += sign
		rounded, err = duration.RoundTime(beyond, increment, unit, mode)
		if err != nil {
			return nudge{}, err
		}
		return nudge{d: duration.Internal{Date: dd, Time: rounded}, epochNs: endNs.Add(rounded), expanded: true}, nil
	}
	return nudge{d: duration.Internal{Date: dd, Time: rounded}, epochNs: startNs.Add(rounded)}, nil
}

// nudgeToDayOrTime rounds d with days treated as
// exactly 24 hours.
func nudgeToDayOrTime(d duration.Internal, dest timemath.DayTimeNano, largest duration.Unit, increment int64, unit duration.Unit, mode timemath.RoundingMode) (nudge, error) {
	td := d.Time.Add(timemath.FromDays(d.Date.Days))
	rounded, err := duration.RoundTime(td, increment, unit, mode)
	if err != nil {
		return nudge{}, err
	}
	whole, _ := td.TruncDays()
	roundedWhole, _ := rounded.TruncDays()
	expanded := ints.Sign(roundedWhole-whole) == td.Sign()
	dd := d.Date
	dd.Days = 0
	rest := rounded
	if largest.IsDate() {
		dd.Days = roundedWhole
		rest = rounded.Sub(timemath.FromDays(roundedWhole))
	}
	return nudge{
		d:        duration.Internal{Date: dd, Time: rest},
		epochNs:  dest.Add(rounded.Sub(td)),
		expanded: expanded,
	}, nil
}

// bubble carries a rounded duration ending at ns
// into successively larger units, from just above
// smallest up to largest, for as long as ns reaches
// the boundary of the larger unit.
func bubble(sign int64, d duration.Internal, ns timemath.DayTimeNano, m Marker, largest, smallest duration.Unit) (duration.Internal, error) {
	if smallest == largest {
		return d, nil
	}
	for u := smallest + 1; u <= largest; u++ {
		if u == duration.Week && largest != duration.Week {
			continue
		}
		dd := d.Date
		var end duration.DateDuration
		switch u {
		case duration.Year:
			end = duration.DateDuration{Years: dd.Years + sign}
		case duration.Month:
			end = duration.DateDuration{Years: dd.Years, Months: dd.Months + sign}
		case duration.Week:
			end = duration.DateDuration{Years: dd.Years, Months: dd.Months, Weeks: dd.Weeks + sign}
		default:
			continue
		}
		endNs, err := m.at(end)
		if err != nil {
			return duration.Internal{}, err
		}
		if int64(ns.Sub(endNs).Sign()) == -sign {
			break
		}
		d = duration.Internal{Date: end}
	}
	return d, nil
}
