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
	"math/big"

	"github.com/SnellerInc/tempo/calendar"
	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/iso8601"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
	"github.com/SnellerInc/tempo/timezone"
)

// Instant is an exact point in time, independent
// of any time zone or calendar.
type Instant struct {
	ns timemath.DayTimeNano
}

// NewInstant returns the instant ns nanoseconds
// after the Unix epoch.
func NewInstant(ns timemath.DayTimeNano) (Instant, error) {
	if err := timemath.CheckEpoch(ns); err != nil {
		return Instant{}, err
	}
	return Instant{ns: ns}, nil
}

// InstantFromBig returns the instant n nanoseconds
// after the Unix epoch.
func InstantFromBig(n *big.Int) (Instant, error) {
	ns, ok := timemath.FromBig(n)
	if !ok {
		return Instant{}, terr.Rangef("epoch nanoseconds %s out of range", n)
	}
	return NewInstant(ns)
}

// ParseInstant parses a date-time with a UTC
// offset or the Z designator.
func ParseInstant(s string) (Instant, error) {
	r, err := iso8601.Parse(s, iso8601.KindInstant)
	if err != nil {
		return Instant{}, err
	}
	dt := r.DateTime()
	if err := date.CheckDateTime(dt); err != nil {
		return Instant{}, err
	}
	return NewInstant(dt.EpochNanoseconds().AddNanos(-r.Offset))
}

// EpochNanoseconds returns the instant as
// nanoseconds since the Unix epoch.
func (i Instant) EpochNanoseconds() timemath.DayTimeNano { return i.ns }

// Big returns EpochNanoseconds as a big.Int.
func (i Instant) Big() *big.Int { return i.ns.Big() }

// Add returns i advanced by d, which must not
// contain days or calendar units.
func (i Instant) Add(d Duration) (Instant, error) {
	if d.HasCalendarUnits() || d.Days != 0 {
		return Instant{}, terr.Rangef("cannot add days or calendar units to an instant")
	}
	return NewInstant(i.ns.Add(d.TimeNanos()))
}

// Subtract returns i moved back by d.
func (i Instant) Subtract(d Duration) (Instant, error) {
	return i.Add(d.Negated())
}

// Until returns the duration from i to other.
func (i Instant) Until(other Instant, opts DiffOptions) (Duration, error) {
	return i.diff(other, opts, false)
}

// Since returns the duration from other to i.
func (i Instant) Since(other Instant, opts DiffOptions) (Duration, error) {
	return i.diff(other, opts, true)
}

func (i Instant) diff(other Instant, opts DiffOptions, since bool) (Duration, error) {
	r, err := opts.normalize(instantUnits, since)
	if err != nil {
		return Duration{}, err
	}
	t, err := duration.RoundTime(other.ns.Sub(i.ns), r.Increment, r.Smallest, r.Mode)
	if err != nil {
		return Duration{}, err
	}
	return finish(duration.Internal{Time: t}, r.Largest, since)
}

// Round rounds i to a multiple of opts.Increment
// opts.Smallest units since the epoch. The increment
// must divide a day evenly.
func (i Instant) Round(opts RoundOptions) (Instant, error) {
	r, err := opts.normalize(duration.Hour, true)
	if err != nil {
		return Instant{}, err
	}
	ns, ok := i.ns.RoundTo(timemath.FromNanos(r.nanos()), r.mode)
	if !ok {
		return Instant{}, terr.Rangef("rounded instant out of range")
	}
	return NewInstant(ns)
}

// ToZonedDateTime returns i in tz and cal.
func (i Instant) ToZonedDateTime(tz timezone.TimeZone, cal calendar.Calendar) (ZonedDateTime, error) {
	return NewZonedDateTime(i.ns, tz, cal)
}

// CompareInstant returns -1, 0, or +1.
func CompareInstant(a, b Instant) int { return a.ns.Cmp(b.ns) }

// Equals returns whether i and other are the same instant.
func (i Instant) Equals(other Instant) bool { return i.ns == other.ns }

func (i Instant) String() string {
	s, _ := i.Format(FormatOptions{}, nil)
	return s
}

// Format returns i as a UTC date-time ending in Z,
// or as a wall-clock time in tz with its offset if
// tz is not nil.
func (i Instant) Format(opts FormatOptions, tz timezone.TimeZone) (string, error) {
	p, step, err := opts.precision()
	if err != nil {
		return "", err
	}
	ns, ok := i.ns.RoundTo(timemath.FromNanos(step), opts.mode())
	if !ok || !timemath.InEpochRange(ns) {
		return "", terr.Rangef("rounded instant out of range")
	}
	if tz == nil {
		b := date.AppendDateTime(nil, date.FromEpochNanoseconds(ns), p)
		return string(append(b, 'Z')), nil
	}
	b := date.AppendDateTime(nil, timezone.DateTimeFor(tz, ns), p)
	return string(append(b, iso8601.FormatOffsetMinutes(tz.OffsetNanosecondsFor(ns))...)), nil
}

// MarshalText implements encoding.TextMarshaler.
func (i Instant) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Instant) UnmarshalText(b []byte) error {
	v, err := ParseInstant(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
