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
	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/relative"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
	"github.com/SnellerInc/tempo/timezone"
)

// DiffOptions controls the result of Until and Since.
// The zero value selects the defaults of the value
// type: no rounding, and the natural largest unit.
type DiffOptions struct {
	Largest   Unit
	Smallest  Unit
	Increment int64
	Mode      RoundingMode
}

// RoundOptions controls Round. Smallest is required
// for every value type except Duration, for which at
// least one of Smallest and Largest is required.
type RoundOptions struct {
	Smallest  Unit
	Increment int64
	Mode      RoundingMode

	// Largest and RelativeTo apply only
	// to rounding durations.
	Largest    Unit
	RelativeTo RelativeTo
}

// ZonedOptions controls how a wall-clock time and
// an optional offset are resolved to an instant.
type ZonedOptions struct {
	Overflow       date.Overflow
	Disambiguation timezone.Disambiguation
	// Offset defaults to reject when parsing
	// and prefer when changing fields.
	Offset timezone.OffsetOption
}

// unitRange describes the units a value type allows
// in difference options and its default units.
type unitRange struct {
	min, max        Unit
	defaultLargest  Unit
	defaultSmallest Unit
}

var (
	dateUnits      = unitRange{duration.Day, duration.Year, duration.Day, duration.Day}
	timeUnits      = unitRange{duration.Nanosecond, duration.Hour, duration.Hour, duration.Nanosecond}
	dateTimeUnits  = unitRange{duration.Nanosecond, duration.Year, duration.Day, duration.Nanosecond}
	zonedUnits     = unitRange{duration.Nanosecond, duration.Year, duration.Hour, duration.Nanosecond}
	instantUnits   = unitRange{duration.Nanosecond, duration.Hour, duration.Second, duration.Nanosecond}
	yearMonthUnits = unitRange{duration.Month, duration.Year, duration.Year, duration.Month}
)

func (r *unitRange) check(u Unit, what string) error {
	if u < r.min || u > r.max {
		return terr.Rangef("%s %s is not allowed here", what, u)
	}
	return nil
}

// checkIncrement validates an increment of unit u
// in a difference or duration rounding.
func checkIncrement(increment int64, u Unit) error {
	max, _ := duration.MaxIncrement(u)
	return duration.CheckIncrement(increment, max, false)
}

// normalize validates opts against r and fills
// in defaults. since selects the mirrored rounding
// mode used by Since.
func (o DiffOptions) normalize(r unitRange, since bool) (relative.Rounding, error) {
	smallest := o.Smallest
	if smallest == duration.Auto {
		smallest = r.defaultSmallest
	}
	if err := r.check(smallest, "smallest unit"); err != nil {
		return relative.Rounding{}, err
	}
	largest := o.Largest
	if largest == duration.Auto {
		largest = duration.Larger(r.defaultLargest, smallest)
	}
	if err := r.check(largest, "largest unit"); err != nil {
		return relative.Rounding{}, err
	}
	if smallest > largest {
		return relative.Rounding{}, terr.Rangef("smallest unit %s is larger than largest unit %s", smallest, largest)
	}
	inc := o.Increment
	if inc == 0 {
		inc = 1
	}
	if err := checkIncrement(inc, smallest); err != nil {
		return relative.Rounding{}, err
	}
	if inc > 1 && smallest.IsDate() && largest != smallest {
		return relative.Rounding{}, terr.Rangef("rounding increment %d requires largest unit %s", inc, smallest)
	}
	mode := o.Mode.Or(timemath.Trunc)
	if since {
		mode = mode.Negate()
	}
	return relative.Rounding{Largest: largest, Smallest: smallest, Increment: inc, Mode: mode}, nil
}

// roundTo is a normalized rounding of a single value
// (rather than a difference) to a unit.
type roundTo struct {
	unit      Unit
	increment int64
	mode      RoundingMode
}

// nanos returns the rounding step in nanoseconds.
func (r *roundTo) nanos() int64 { return r.increment * r.unit.Nanos() }

// normalize validates o for rounding a value whose
// units run from Nanosecond up to max. An increment
// must divide the next larger unit, or the whole
// day for an instant.
func (o RoundOptions) normalize(max Unit, instant bool) (roundTo, error) {
	if o.Smallest == duration.Auto {
		return roundTo{}, terr.Rangef("smallest unit is required")
	}
	if o.Smallest > max {
		return roundTo{}, terr.Rangef("smallest unit %s is not allowed here", o.Smallest)
	}
	inc := o.Increment
	if inc == 0 {
		inc = 1
	}
	var err error
	switch {
	case instant:
		err = duration.CheckIncrement(inc, timemath.NanosPerDay/o.Smallest.Nanos(), true)
	case o.Smallest == duration.Day:
		err = duration.CheckIncrement(inc, 1, true)
	default:
		err = checkIncrement(inc, o.Smallest)
	}
	if err != nil {
		return roundTo{}, err
	}
	return roundTo{unit: o.Smallest, increment: inc, mode: o.Mode.Or(timemath.HalfExpand)}, nil
}

// normalizeDuration validates o for rounding d.
func (o RoundOptions) normalizeDuration(d Duration) (relative.Rounding, error) {
	if o.Smallest == duration.Auto && o.Largest == duration.Auto {
		return relative.Rounding{}, terr.Rangef("at least one of smallest and largest unit is required")
	}
	smallest := o.Smallest
	if smallest == duration.Auto {
		smallest = duration.Nanosecond
	}
	largest := o.Largest
	if largest == duration.Auto {
		largest = duration.Larger(d.LargestUnit(), smallest)
	}
	if smallest > largest {
		return relative.Rounding{}, terr.Rangef("smallest unit %s is larger than largest unit %s", smallest, largest)
	}
	inc := o.Increment
	if inc == 0 {
		inc = 1
	}
	if err := checkIncrement(inc, smallest); err != nil {
		return relative.Rounding{}, err
	}
	if inc > 1 && smallest.IsDate() && largest != smallest {
		return relative.Rounding{}, terr.Rangef("rounding increment %d requires largest unit %s", inc, smallest)
	}
	return relative.Rounding{Largest: largest, Smallest: smallest, Increment: inc, Mode: o.Mode.Or(timemath.HalfExpand)}, nil
}

// finish converts a difference into a Duration
// balanced up to largest, negated for Since.
func finish(in duration.Internal, largest Unit, since bool) (Duration, error) {
	d, err := duration.FromInternal(in, largest)
	if err != nil {
		return Duration{}, err
	}
	if since {
		d = d.Negated()
	}
	return d, nil
}
