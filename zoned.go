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
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
	"github.com/SnellerInc/tempo/timezone"
)

// ZonedDateTime is an exact instant interpreted
// in a time zone and a calendar.
type ZonedDateTime struct {
	ns  timemath.DayTimeNano
	tz  timezone.TimeZone
	cal calendar.Calendar
}

// NewZonedDateTime returns the instant ns in tz
// and cal (nil means ISO 8601).
func NewZonedDateTime(ns timemath.DayTimeNano, tz timezone.TimeZone, cal calendar.Calendar) (ZonedDateTime, error) {
	if tz == nil {
		return ZonedDateTime{}, terr.Typef("a time zone is required")
	}
	if err := timemath.CheckEpoch(ns); err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{ns: ns, tz: tz, cal: orISO(cal)}, nil
}

// ZonedDateTimeFromFields resolves the wall-clock time
// described by calendar and time fields in tz.
func ZonedDateTimeFromFields(f calendar.Fields, tf TimeFields, tz timezone.TimeZone, cal calendar.Calendar, opts ZonedOptions) (ZonedDateTime, error) {
	dt, err := PlainDateTimeFromFields(f, tf, cal, opts.Overflow)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return dt.ToZonedDateTime(tz, opts.Disambiguation)
}

// ParseZonedDateTime parses an RFC 9557 string with
// a time zone annotation. An offset in the string is
// reconciled with the zone according to opts.Offset,
// which defaults to reject. A date without a time
// means the start of that day.
func ParseZonedDateTime(s string, opts ZonedOptions) (ZonedDateTime, error) {
	r, cal, err := parseWith(s, iso8601.KindZoned)
	if err != nil {
		return ZonedDateTime{}, err
	}
	tz, err := timezone.Get(r.Zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	var ns timemath.DayTimeNano
	if !r.HasTime {
		ns, err = startOfDay(tz, r.Date)
	} else {
		ns, err = timezone.Resolve(tz, r.DateTime(), timezone.HintFrom(&r), opts.Disambiguation, opts.Offset.Or(timezone.OffsetReject))
	}
	if err != nil {
		return ZonedDateTime{}, err
	}
	return NewZonedDateTime(ns, tz, cal)
}

// EpochNanoseconds returns the instant of z.
func (z ZonedDateTime) EpochNanoseconds() timemath.DayTimeNano { return z.ns }

// TimeZone returns the time zone of z.
func (z ZonedDateTime) TimeZone() timezone.TimeZone { return z.tz }

// Calendar returns the calendar of z.
func (z ZonedDateTime) Calendar() calendar.Calendar { return orISO(z.cal) }

// OffsetNanoseconds returns the UTC offset of z.
func (z ZonedDateTime) OffsetNanoseconds() int64 { return z.tz.OffsetNanosecondsFor(z.ns) }

// Offset returns the UTC offset of z as ±HH:MM[:SS[.fff]].
func (z ZonedDateTime) Offset() string { return iso8601.FormatOffset(z.OffsetNanoseconds()) }

func (z ZonedDateTime) wall() date.DateTime { return timezone.DateTimeFor(z.tz, z.ns) }

// PlainDateTime returns the wall-clock date and time of z.
func (z ZonedDateTime) PlainDateTime() PlainDateTime {
	return PlainDateTime{dt: z.wall(), cal: z.Calendar()}
}

// PlainDate returns the wall-clock date of z.
func (z ZonedDateTime) PlainDate() PlainDate { return z.PlainDateTime().PlainDate() }

// PlainTime returns the wall-clock time of z.
func (z ZonedDateTime) PlainTime() PlainTime { return PlainTime{t: z.wall().Time} }

// Instant returns the instant of z.
func (z ZonedDateTime) Instant() Instant { return Instant{ns: z.ns} }

func (z ZonedDateTime) Year() int         { return z.PlainDate().Year() }
func (z ZonedDateTime) Month() int        { return z.PlainDate().Month() }
func (z ZonedDateTime) MonthCode() string { return z.PlainDate().MonthCode() }
func (z ZonedDateTime) Day() int          { return z.PlainDate().Day() }
func (z ZonedDateTime) Hour() int         { return z.wall().Hour }
func (z ZonedDateTime) Minute() int       { return z.wall().Minute }
func (z ZonedDateTime) Second() int       { return z.wall().Second }

func (z ZonedDateTime) marker() relative.Marker {
	return relative.Zoned(z.Calendar(), z.tz, z.ns)
}

func (z ZonedDateTime) with(ns timemath.DayTimeNano) (ZonedDateTime, error) {
	return NewZonedDateTime(ns, z.tz, z.Calendar())
}

// StartOfDay returns the first instant of
// the wall-clock date of z.
func (z ZonedDateTime) StartOfDay() (ZonedDateTime, error) {
	ns, err := startOfDay(z.tz, z.wall().Date)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.with(ns)
}

// dayBounds returns the first instants of the
// wall-clock date of z and of the following day.
func (z ZonedDateTime) dayBounds() (start, end timemath.DayTimeNano, err error) {
	d := z.wall().Date
	if start, err = startOfDay(z.tz, d); err != nil {
		return
	}
	end, err = startOfDay(z.tz, d.AddDays(1))
	return
}

// HoursInDay returns the length in hours of the
// wall-clock date of z, which is not 24 on days
// with an offset transition.
func (z ZonedDateTime) HoursInDay() (float64, error) {
	start, end, err := z.dayBounds()
	if err != nil {
		return 0, err
	}
	return end.Sub(start).In(timemath.NanosPerHour), nil
}

// Transition returns the next or previous offset
// transition of the time zone of z. The result is
// false if there is none.
func (z ZonedDateTime) Transition(dir timezone.Direction) (ZonedDateTime, bool) {
	ns, ok := z.tz.Transition(z.ns, dir)
	if !ok {
		return ZonedDateTime{}, false
	}
	res, err := z.with(ns)
	return res, err == nil
}

// With returns z with the fields present in f and tf
// replaced. The current offset is kept if it is still
// valid, unless opts.Offset says otherwise.
func (z ZonedDateTime) With(f calendar.Fields, tf TimeFields, opts ZonedOptions) (ZonedDateTime, error) {
	dt, err := z.PlainDateTime().With(f, tf, opts.Overflow)
	if err != nil {
		return ZonedDateTime{}, err
	}
	hint := timezone.OffsetHint{Kind: timezone.Numeric, Nanos: z.OffsetNanoseconds()}
	ns, err := timezone.Resolve(z.tz, dt.dt, hint, opts.Disambiguation, opts.Offset.Or(timezone.OffsetPrefer))
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.with(ns)
}

// WithPlainTime returns z with its wall-clock time
// replaced by t, or the start of the day if t is nil.
func (z ZonedDateTime) WithPlainTime(t *PlainTime) (ZonedDateTime, error) {
	if t == nil {
		return z.StartOfDay()
	}
	ns, err := timezone.InstantFor(z.tz, date.Combine(z.wall().Date, t.t), timezone.Compatible)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.with(ns)
}

// WithTimeZone returns the same instant in tz.
func (z ZonedDateTime) WithTimeZone(tz timezone.TimeZone) (ZonedDateTime, error) {
	return NewZonedDateTime(z.ns, tz, z.Calendar())
}

// WithCalendar returns the same instant in cal.
func (z ZonedDateTime) WithCalendar(cal calendar.Calendar) ZonedDateTime {
	return ZonedDateTime{ns: z.ns, tz: z.tz, cal: orISO(cal)}
}

// Add returns z advanced by d. The calendar units
// and days move the wall-clock date, and the time
// units are then added as exact time.
func (z ZonedDateTime) Add(d Duration, ov date.Overflow) (ZonedDateTime, error) {
	ns, err := relative.AddZoned(z.Calendar(), z.tz, z.ns, d.Internal(), ov)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.with(ns)
}

// Subtract returns z moved back by d.
func (z ZonedDateTime) Subtract(d Duration, ov date.Overflow) (ZonedDateTime, error) {
	return z.Add(d.Negated(), ov)
}

// Until returns the duration from z to other.
func (z ZonedDateTime) Until(other ZonedDateTime, opts DiffOptions) (Duration, error) {
	return z.diff(other, opts, false)
}

// Since returns the duration from other to z.
func (z ZonedDateTime) Since(other ZonedDateTime, opts DiffOptions) (Duration, error) {
	return z.diff(other, opts, true)
}

func (z ZonedDateTime) diff(other ZonedDateTime, opts DiffOptions, since bool) (Duration, error) {
	if err := calendar.CheckSame(z.Calendar(), other.Calendar()); err != nil {
		return Duration{}, err
	}
	r, err := opts.normalize(zonedUnits, since)
	if err != nil {
		return Duration{}, err
	}
	balance := r.Largest
	if r.Largest.IsDate() {
		if !timezone.Equal(z.tz, other.tz) {
			return Duration{}, terr.Rangef("cannot count days between time zones %s and %s", z.tz.ID(), other.tz.ID())
		}
		balance = duration.Hour
	}
	in, err := relative.DiffZonedRounded(z.Calendar(), z.tz, z.ns, other.ns, r)
	if err != nil {
		return Duration{}, err
	}
	return finish(in, balance, since)
}

// Round rounds the wall-clock time of z to a multiple
// of opts.Increment opts.Smallest units. Rounding to a
// day uses the actual length of the day.
func (z ZonedDateTime) Round(opts RoundOptions) (ZonedDateTime, error) {
	r, err := opts.normalize(duration.Day, false)
	if err != nil {
		return ZonedDateTime{}, err
	}
	if r.unit == duration.Day {
		start, end, err := z.dayBounds()
		if err != nil {
			return ZonedDateTime{}, err
		}
		n, ok := z.ns.Sub(start).RoundTo(end.Sub(start), r.mode)
		if !ok {
			return ZonedDateTime{}, terr.Rangef("rounded instant out of range")
		}
		return z.with(start.Add(n))
	}
	dt := roundDateTime(z.wall(), r.nanos(), r.mode)
	hint := timezone.OffsetHint{Kind: timezone.Numeric, Nanos: z.OffsetNanoseconds()}
	ns, err := timezone.Resolve(z.tz, dt, hint, timezone.Compatible, timezone.OffsetPrefer)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return z.with(ns)
}

// CompareZonedDateTime orders a and b by instant.
func CompareZonedDateTime(a, b ZonedDateTime) int {
	return a.ns.Cmp(b.ns)
}

// Equals returns whether z and other are the same
// instant in the same time zone and calendar.
func (z ZonedDateTime) Equals(other ZonedDateTime) bool {
	return z.ns == other.ns && timezone.Equal(z.tz, other.tz) &&
		calendar.Equal(z.Calendar(), other.Calendar())
}

func (z ZonedDateTime) String() string {
	s, _ := z.Format(FormatOptions{})
	return s
}

// Format returns z as a date-time with its offset
// rounded to the minute, its time zone annotation,
// and a calendar annotation, each as selected by opts.
func (z ZonedDateTime) Format(opts FormatOptions) (string, error) {
	p, step, err := opts.precision()
	if err != nil {
		return "", err
	}
	ns, ok := z.ns.RoundTo(timemath.FromNanos(step), opts.mode())
	if !ok || !timemath.InEpochRange(ns) {
		return "", terr.Rangef("rounded instant out of range")
	}
	b := date.AppendDateTime(nil, timezone.DateTimeFor(z.tz, ns), p)
	if opts.Offset != OffsetNever {
		b = append(b, iso8601.FormatOffsetMinutes(z.tz.OffsetNanosecondsFor(ns))...)
	}
	switch opts.Zone {
	case ZoneAuto:
		b = append(append(append(b, '['), z.tz.ID()...), ']')
	case ZoneCritical:
		b = append(append(append(b, "[!"...), z.tz.ID()...), ']')
	}
	return string(calendarAnnotation(b, z.Calendar(), opts.Calendar)), nil
}

// MarshalText implements encoding.TextMarshaler.
func (z ZonedDateTime) MarshalText() ([]byte, error) {
	s, err := z.Format(FormatOptions{})
	return []byte(s), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *ZonedDateTime) UnmarshalText(b []byte) error {
	v, err := ParseZonedDateTime(string(b), ZonedOptions{})
	if err != nil {
		return err
	}
	*z = v
	return nil
}
