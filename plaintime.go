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
	"github.com/SnellerInc/tempo/iso8601"
	"github.com/SnellerInc/tempo/timemath"
)

// PlainTime is a wall-clock time of day.
type PlainTime struct {
	t date.Time
}

// NewPlainTime returns the time with the given
// fields. Out-of-range fields are rejected.
func NewPlainTime(hour, minute, second, ms, us, ns int) (PlainTime, error) {
	t, err := date.RegulateTime(hour, minute, second, ms, us, ns, date.Reject)
	return PlainTime{t: t}, err
}

// PlainTimeFromFields returns midnight with the
// fields present in tf set.
func PlainTimeFromFields(tf TimeFields, ov date.Overflow) (PlainTime, error) {
	t, err := tf.apply(date.Midnight, ov)
	return PlainTime{t: t}, err
}

// ParsePlainTime parses an ISO 8601 time, or the
// time portion of a date-time string.
func ParsePlainTime(s string) (PlainTime, error) {
	r, err := iso8601.Parse(s, iso8601.KindTime)
	if err != nil {
		return PlainTime{}, err
	}
	if r.Calendar != "" {
		if _, err := lookupCalendar(r.Calendar); err != nil {
			return PlainTime{}, err
		}
	}
	return PlainTime{t: r.Time}, nil
}

// ISO returns the fields of t.
func (t PlainTime) ISO() date.Time { return t.t }

func (t PlainTime) Hour() int        { return t.t.Hour }
func (t PlainTime) Minute() int      { return t.t.Minute }
func (t PlainTime) Second() int      { return t.t.Second }
func (t PlainTime) Millisecond() int { return t.t.Millisecond }
func (t PlainTime) Microsecond() int { return t.t.Microsecond }
func (t PlainTime) Nanosecond() int  { return t.t.Nanosecond }

// With returns t with the fields present in tf replaced.
func (t PlainTime) With(tf TimeFields, ov date.Overflow) (PlainTime, error) {
	if tf.empty() {
		return PlainTime{}, errNoFields
	}
	nt, err := tf.apply(t.t, ov)
	return PlainTime{t: nt}, err
}

// Add returns t advanced by the time units of d,
// wrapping around midnight. Date units are ignored.
func (t PlainTime) Add(d Duration) PlainTime {
	_, nt := t.t.AddTime(d.TimeNanos())
	return PlainTime{t: nt}
}

// Subtract returns t moved back by the time units of d.
func (t PlainTime) Subtract(d Duration) PlainTime {
	return t.Add(d.Negated())
}

// Until returns the duration from t to other,
// which lies within the same day.
func (t PlainTime) Until(other PlainTime, opts DiffOptions) (Duration, error) {
	return t.diff(other, opts, false)
}

// Since returns the duration from other to t.
func (t PlainTime) Since(other PlainTime, opts DiffOptions) (Duration, error) {
	return t.diff(other, opts, true)
}

func (t PlainTime) diff(other PlainTime, opts DiffOptions, since bool) (Duration, error) {
	r, err := opts.normalize(timeUnits, since)
	if err != nil {
		return Duration{}, err
	}
	delta := timemath.FromNanos(other.t.Nanos() - t.t.Nanos())
	rounded, err := duration.RoundTime(delta, r.Increment, r.Smallest, r.Mode)
	if err != nil {
		return Duration{}, err
	}
	return finish(duration.Internal{Time: rounded}, r.Largest, since)
}

// Round rounds t to a multiple of opts.Increment
// opts.Smallest units, wrapping around midnight.
func (t PlainTime) Round(opts RoundOptions) (PlainTime, error) {
	r, err := opts.normalize(duration.Hour, false)
	if err != nil {
		return PlainTime{}, err
	}
	_, nt := date.TimeFromNanos(timemath.RoundInt(t.t.Nanos(), r.nanos(), r.mode))
	return PlainTime{t: nt}, nil
}

// ComparePlainTime returns -1, 0, or +1.
func ComparePlainTime(a, b PlainTime) int {
	return date.CompareTime(a.t, b.t)
}

// Equals returns whether t and other are the same time.
func (t PlainTime) Equals(other PlainTime) bool { return t.t == other.t }

func (t PlainTime) String() string {
	return t.t.String()
}

// Format returns t as HH:MM:SS.fff rounded
// to the precision selected by opts.
func (t PlainTime) Format(opts FormatOptions) (string, error) {
	p, step, err := opts.precision()
	if err != nil {
		return "", err
	}
	_, nt := date.TimeFromNanos(timemath.RoundInt(t.t.Nanos(), step, opts.mode()))
	return string(date.AppendTime(nil, nt, p)), nil
}

// MarshalText implements encoding.TextMarshaler.
func (t PlainTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *PlainTime) UnmarshalText(b []byte) error {
	v, err := ParsePlainTime(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
