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
	"github.com/SnellerInc/tempo/calendar"
	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/iso8601"
	"github.com/SnellerInc/tempo/relative"
	"github.com/SnellerInc/tempo/timezone"
)

// PlainDateTime is a calendar date and wall-clock
// time without a time zone.
type PlainDateTime struct {
	dt  date.DateTime
	cal calendar.Calendar
}

func plainDateTime(dt date.DateTime, cal calendar.Calendar) (PlainDateTime, error) {
	if err := date.CheckDateTime(dt); err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{dt: dt, cal: orISO(cal)}, nil
}

// NewPlainDateTime returns the date-time with the
// given ISO fields in cal (nil means ISO 8601).
// Out-of-range fields are rejected.
func NewPlainDateTime(d date.Date, t date.Time, cal calendar.Calendar) (PlainDateTime, error) {
	nd, err := date.RegulateDate(d.Year, d.Month, d.Day, date.Reject)
	if err != nil {
		return PlainDateTime{}, err
	}
	nt, err := date.RegulateTime(t.Hour, t.Minute, t.Second, t.Millisecond, t.Microsecond, t.Nanosecond, date.Reject)
	if err != nil {
		return PlainDateTime{}, err
	}
	return plainDateTime(date.Combine(nd, nt), cal)
}

// PlainDateTimeFromFields returns the date-time
// described by calendar and time fields in cal.
func PlainDateTimeFromFields(f calendar.Fields, tf TimeFields, cal calendar.Calendar, ov date.Overflow) (PlainDateTime, error) {
	cal = orISO(cal)
	d, err := cal.DateFromFields(f, ov)
	if err != nil {
		return PlainDateTime{}, err
	}
	t, err := tf.apply(date.Midnight, ov)
	if err != nil {
		return PlainDateTime{}, err
	}
	return plainDateTime(date.Combine(d, t), cal)
}

// ParsePlainDateTime parses an ISO 8601 date-time.
// A date alone means midnight.
func ParsePlainDateTime(s string) (PlainDateTime, error) {
	r, cal, err := parseWith(s, iso8601.KindDateTime)
	if err != nil {
		return PlainDateTime{}, err
	}
	return plainDateTime(r.DateTime(), cal)
}

// ISO returns the ISO 8601 fields of dt.
func (dt PlainDateTime) ISO() date.DateTime { return dt.dt }

// Calendar returns the calendar of dt.
func (dt PlainDateTime) Calendar() calendar.Calendar { return orISO(dt.cal) }

// PlainDate returns the date of dt.
func (dt PlainDateTime) PlainDate() PlainDate {
	return PlainDate{iso: dt.dt.Date, cal: dt.Calendar()}
}

// PlainTime returns the time of dt.
func (dt PlainDateTime) PlainTime() PlainTime { return PlainTime{t: dt.dt.Time} }

func (dt PlainDateTime) Year() int         { return dt.PlainDate().Year() }
func (dt PlainDateTime) Month() int        { return dt.PlainDate().Month() }
func (dt PlainDateTime) MonthCode() string { return dt.PlainDate().MonthCode() }
func (dt PlainDateTime) Day() int          { return dt.PlainDate().Day() }
func (dt PlainDateTime) Hour() int         { return dt.dt.Hour }
func (dt PlainDateTime) Minute() int       { return dt.dt.Minute }
func (dt PlainDateTime) Second() int       { return dt.dt.Second }

// The date is the reference point; the time is dropped.
func (dt PlainDateTime) marker() relative.Marker { return dt.PlainDate().marker() }

// With returns dt with the fields present in f and tf replaced.
func (dt PlainDateTime) With(f calendar.Fields, tf TimeFields, ov date.Overflow) (PlainDateTime, error) {
	if f == (calendar.Fields{}) && tf.empty() {
		return PlainDateTime{}, errNoFields
	}
	cal := dt.Calendar()
	d := dt.dt.Date
	if f != (calendar.Fields{}) {
		merged, err := mergeFields(fieldsOf(cal, d), f)
		if err != nil {
			return PlainDateTime{}, err
		}
		if d, err = cal.DateFromFields(merged, ov); err != nil {
			return PlainDateTime{}, err
		}
	}
	t, err := tf.apply(dt.dt.Time, ov)
	if err != nil {
		return PlainDateTime{}, err
	}
	return plainDateTime(date.Combine(d, t), cal)
}

// WithPlainTime returns dt with its time replaced
// by t, or by midnight if t is nil.
func (dt PlainDateTime) WithPlainTime(t *PlainTime) (PlainDateTime, error) {
	return dt.PlainDate().ToPlainDateTime(t)
}

// WithCalendar returns the same ISO date-time in cal.
func (dt PlainDateTime) WithCalendar(cal calendar.Calendar) PlainDateTime {
	return PlainDateTime{dt: dt.dt, cal: orISO(cal)}
}

// Add returns dt advanced by d. The time units are
// added first, and any overflow carried into the days
// added together with the calendar units.
func (dt PlainDateTime) Add(d Duration, ov date.Overflow) (PlainDateTime, error) {
	res, err := relative.AddDateTime(dt.Calendar(), dt.dt, d.Internal(), ov)
	if err != nil {
		return PlainDateTime{}, err
	}
	return plainDateTime(res, dt.Calendar())
}

// Subtract returns dt moved back by d.
func (dt PlainDateTime) Subtract(d Duration, ov date.Overflow) (PlainDateTime, error) {
	return dt.Add(d.Negated(), ov)
}

// Until returns the duration from dt to other.
func (dt PlainDateTime) Until(other PlainDateTime, opts DiffOptions) (Duration, error) {
	return dt.diff(other, opts, false)
}

// Since returns the duration from other to dt.
func (dt PlainDateTime) Since(other PlainDateTime, opts DiffOptions) (Duration, error) {
	return dt.diff(other, opts, true)
}

func (dt PlainDateTime) diff(other PlainDateTime, opts DiffOptions, since bool) (Duration, error) {
	if err := calendar.CheckSame(dt.Calendar(), other.Calendar()); err != nil {
		return Duration{}, err
	}
	r, err := opts.normalize(dateTimeUnits, since)
	if err != nil {
		return Duration{}, err
	}
	in, err := relative.DiffDateTimeRounded(dt.Calendar(), dt.dt, other.dt, r)
	if err != nil {
		return Duration{}, err
	}
	return finish(in, r.Largest, since)
}

// Round rounds the time of dt to a multiple of
// opts.Increment opts.Smallest units, which may
// be at most a day.
func (dt PlainDateTime) Round(opts RoundOptions) (PlainDateTime, error) {
	r, err := opts.normalize(duration.Day, false)
	if err != nil {
		return PlainDateTime{}, err
	}
	return plainDateTime(roundDateTime(dt.dt, r.nanos(), r.mode), dt.Calendar())
}

// ToZonedDateTime resolves dt in tz.
func (dt PlainDateTime) ToZonedDateTime(tz timezone.TimeZone, dis timezone.Disambiguation) (ZonedDateTime, error) {
	ns, err := timezone.InstantFor(tz, dt.dt, dis)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return NewZonedDateTime(ns, tz, dt.Calendar())
}

// ComparePlainDateTime orders a and b by their
// ISO fields, ignoring the calendar.
func ComparePlainDateTime(a, b PlainDateTime) int {
	return date.CompareDateTime(a.dt, b.dt)
}

// Equals returns whether dt and other are the same
// date-time in the same calendar.
func (dt PlainDateTime) Equals(other PlainDateTime) bool {
	return dt.dt == other.dt && calendar.Equal(dt.Calendar(), other.Calendar())
}

func (dt PlainDateTime) String() string {
	s, _ := dt.Format(FormatOptions{})
	return s
}

// Format returns dt as YYYY-MM-DDTHH:MM:SS.fff
// rounded to the precision selected by opts.
func (dt PlainDateTime) Format(opts FormatOptions) (string, error) {
	b, err := opts.formatDateTime(nil, dt.dt)
	if err != nil {
		return "", err
	}
	return string(calendarAnnotation(b, dt.Calendar(), opts.Calendar)), nil
}

// MarshalText implements encoding.TextMarshaler.
func (dt PlainDateTime) MarshalText() ([]byte, error) {
	return []byte(dt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (dt *PlainDateTime) UnmarshalText(b []byte) error {
	v, err := ParsePlainDateTime(string(b))
	if err != nil {
		return err
	}
	*dt = v
	return nil
}
