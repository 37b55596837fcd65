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

package duration

import (
	"fmt"

	"github.com/SnellerInc/tempo/timemath"
)

// Unit is a unit of time. Units are ordered so that
// a larger Unit value is a larger unit of time.
type Unit uint8

const (
	// Auto is the unset unit; operations substitute
	// their own default for it.
	Auto Unit = iota
	Nanosecond
	Microsecond
	Millisecond
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var unitNames = [...]string{
	Auto:        "auto",
	Nanosecond:  "nanosecond",
	Microsecond: "microsecond",
	Millisecond: "millisecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Week:        "week",
	Month:       "month",
	Year:        "year",
}

var unitNanos = [...]int64{
	Nanosecond:  1,
	Microsecond: timemath.NanosPerMicrosecond,
	Millisecond: timemath.NanosPerMillisecond,
	Second:      timemath.NanosPerSecond,
	Minute:      timemath.NanosPerMinute,
	Hour:        timemath.NanosPerHour,
	Day:         timemath.NanosPerDay,
	Week:        7 * timemath.NanosPerDay,
}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("Unit(%d)", u)
}

// Plural returns the plural name of u ("years").
func (u Unit) Plural() string {
	if u == Auto {
		return "auto"
	}
	return u.String() + "s"
}

// ParseUnit accepts singular or plural unit
// names as well as "auto".
func ParseUnit(s string) (Unit, bool) {
	for i, name := range unitNames {
		if s == name || (i != int(Auto) && s == name+"s") {
			return Unit(i), true
		}
	}
	return Auto, false
}

// Nanos returns the fixed length of u in nanoseconds.
// Only units up to Week have a fixed length; weeks
// and days are treated as 7 and 1 24-hour days.
func (u Unit) Nanos() int64 {
	if u == Auto || u > Week {
		panic("duration: " + u.String() + " has no fixed length")
	}
	return unitNanos[u]
}

// IsCalendar returns whether u is one of the units
// (weeks, months, years) whose length depends on a
// reference date.
func (u Unit) IsCalendar() bool {
	return u >= Week
}

// IsDate returns whether u is Day or larger.
func (u Unit) IsDate() bool {
	return u >= Day
}

// IsTime returns whether u is Hour or smaller.
func (u Unit) IsTime() bool {
	return u != Auto && u <= Hour
}

// Larger returns the larger of a and b.
func Larger(a, b Unit) Unit {
	if a > b {
		return a
	}
	return b
}

// MaxIncrement returns the exclusive upper bound of
// a rounding increment for u: the number of u in the
// next larger unit. The second result is false for
// units that have no upper bound.
func MaxIncrement(u Unit) (int64, bool) {
	switch u {
	case Hour:
		return 24, true
	case Minute, Second:
		return 60, true
	case Millisecond, Microsecond, Nanosecond:
		return 1000, true
	}
	return 0, false
}
