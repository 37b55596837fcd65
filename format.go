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
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

// CalendarDisplay selects when a calendar
// annotation is written.
type CalendarDisplay uint8

const (
	// CalendarAuto writes the annotation
	// for calendars other than ISO 8601.
	CalendarAuto CalendarDisplay = iota
	CalendarAlways
	CalendarNever
	CalendarCritical
)

// ZoneDisplay selects how the time zone
// annotation of a ZonedDateTime is written.
type ZoneDisplay uint8

const (
	ZoneAuto ZoneDisplay = iota
	ZoneNever
	ZoneCritical
)

// OffsetDisplay selects whether the UTC offset
// of a ZonedDateTime is written.
type OffsetDisplay uint8

const (
	OffsetAuto OffsetDisplay = iota
	OffsetNever
)

// FormatOptions controls the string form of a value.
// The zero value writes as many fractional second
// digits as necessary and the default annotations.
type FormatOptions struct {
	// Digits is the number of fractional second
	// digits from 1 to 9, or 0 for as many as
	// necessary.
	Digits int
	// Smallest overrides Digits when set:
	// Minute omits seconds, Second writes no
	// fraction, and Millisecond, Microsecond and
	// Nanosecond write 3, 6 and 9 digits.
	Smallest Unit
	// Mode rounds the value to the written
	// precision. It defaults to Trunc.
	Mode RoundingMode

	Calendar CalendarDisplay
	Zone     ZoneDisplay
	Offset   OffsetDisplay
}

// precision returns the written precision and the
// rounding step in nanoseconds it implies.
func (o *FormatOptions) precision() (date.Precision, int64, error) {
	switch o.Smallest {
	case duration.Auto:
	case duration.Minute:
		return date.Minute, timemath.NanosPerMinute, nil
	case duration.Second:
		return 0, timemath.NanosPerSecond, nil
	case duration.Millisecond:
		return 3, timemath.NanosPerMillisecond, nil
	case duration.Microsecond:
		return 6, timemath.NanosPerMicrosecond, nil
	case duration.Nanosecond:
		return 9, 1, nil
	default:
		return 0, 0, terr.Rangef("smallest unit %s is not allowed when formatting", o.Smallest)
	}
	if o.Digits == 0 {
		return date.Auto, 1, nil
	}
	if o.Digits < 1 || o.Digits > 9 {
		return 0, 0, terr.Rangef("fractional second digits %d out of range", o.Digits)
	}
	step := int64(1)
	for i := o.Digits; i < 9; i++ {
		step *= 10
	}
	return date.Precision(o.Digits), step, nil
}

func (o *FormatOptions) mode() RoundingMode {
	return o.Mode.Or(timemath.Trunc)
}

// roundDateTime rounds the time of dt to a multiple
// of step nanoseconds, carrying into the date.
func roundDateTime(dt date.DateTime, step int64, mode RoundingMode) date.DateTime {
	if step == 1 {
		return dt
	}
	ns := timemath.RoundInt(dt.Time.Nanos(), step, mode)
	days, t := date.TimeFromNanos(ns)
	return date.Combine(dt.Date.AddDays(days), t)
}

// formatDateTime writes dt rounded according to o.
func (o *FormatOptions) formatDateTime(b []byte, dt date.DateTime) ([]byte, error) {
	p, step, err := o.precision()
	if err != nil {
		return nil, err
	}
	dt = roundDateTime(dt, step, o.mode())
	if err := date.CheckDateTime(dt); err != nil {
		return nil, err
	}
	return date.AppendDateTime(b, dt, p), nil
}
