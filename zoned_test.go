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
	"errors"
	"testing"

	"github.com/SnellerInc/tempo/calendar"
	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
	"github.com/SnellerInc/tempo/timezone"
)

func mustZoned(t *testing.T, s string) ZonedDateTime {
	t.Helper()
	z, err := ParseZonedDateTime(s, ZonedOptions{})
	if err != nil {
		t.Fatalf("%s: %v", s, err)
	}
	return z
}

func TestZonedGapAndOverlap(t *testing.T) {
	z := mustZoned(t, "2024-03-10T02:30[America/New_York]")
	if got := z.String(); got != "2024-03-10T03:30:00-04:00[America/New_York]" {
		t.Errorf("gap: got %s", got)
	}
	_, err := ParseZonedDateTime("2024-03-10T02:30[America/New_York]", ZonedOptions{Disambiguation: timezone.Reject})
	if !errors.Is(err, terr.ErrRange) {
		t.Errorf("gap with reject: %v", err)
	}

	const overlap = "2024-11-03T01:30[America/New_York]"
	earlier, err := ParseZonedDateTime(overlap, ZonedOptions{Disambiguation: timezone.Earlier})
	if err != nil {
		t.Fatal(err)
	}
	later, err := ParseZonedDateTime(overlap, ZonedOptions{Disambiguation: timezone.Later})
	if err != nil {
		t.Fatal(err)
	}
	if earlier.Offset() != "-04:00" || later.Offset() != "-05:00" {
		t.Errorf("offsets %s %s", earlier.Offset(), later.Offset())
	}
	if d := later.EpochNanoseconds().Sub(earlier.EpochNanoseconds()); d != timemath.FromNanos(timemath.NanosPerHour) {
		t.Errorf("overlap instants %s apart", d)
	}
	if z := mustZoned(t, "2024-11-03T01:30-05:00[America/New_York]"); !z.Equals(later) {
		t.Errorf("explicit offset picked %s", z)
	}
}

func TestZonedOffsetOption(t *testing.T) {
	const s = "2024-03-10T12:00+01:00[America/New_York]"
	if _, err := ParseZonedDateTime(s, ZonedOptions{}); !errors.Is(err, terr.ErrRange) {
		t.Errorf("default reject: %v", err)
	}
	run := func(s string, opt timezone.OffsetOption, want string) {
		t.Helper()
		z, err := ParseZonedDateTime(s, ZonedOptions{Offset: opt})
		if err != nil {
			t.Fatalf("%s %s: %v", s, opt, err)
		}
		if got := z.String(); got != want {
			t.Errorf("%s %s: got %s, want %s", s, opt, got, want)
		}
	}
	run(s, timezone.OffsetUse, "2024-03-10T07:00:00-04:00[America/New_York]")
	run(s, timezone.OffsetIgnore, "2024-03-10T12:00:00-04:00[America/New_York]")
	run(s, timezone.OffsetPrefer, "2024-03-10T12:00:00-04:00[America/New_York]")

	// Z always names an exact instant
	const utc = "2020-01-01T00:00Z[America/New_York]"
	for _, opt := range []timezone.OffsetOption{
		timezone.OffsetUnset, timezone.OffsetUse, timezone.OffsetIgnore,
		timezone.OffsetPrefer, timezone.OffsetReject,
	} {
		run(utc, opt, "2019-12-31T19:00:00-05:00[America/New_York]")
	}

	// an offset without seconds matches a zone offset
	// that rounds to the same minute
	z := mustZoned(t, "1880-01-01T12:00-04:56[America/New_York]")
	if z.OffsetNanoseconds() != -(4*timemath.NanosPerHour + 56*timemath.NanosPerMinute + 2*timemath.NanosPerSecond) {
		t.Errorf("LMT offset %s", z.Offset())
	}
	if got := z.String(); got != "1880-01-01T12:00:00-04:56[America/New_York]" {
		t.Errorf("got %s", got)
	}
}

func TestZonedDayLength(t *testing.T) {
	run := func(s string, want float64) {
		t.Helper()
		got, err := mustZoned(t, s).HoursInDay()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s: got %v hours, want %v", s, got, want)
		}
	}
	run("2024-03-10T12:00[America/New_York]", 23)
	run("2024-11-03T12:00[America/New_York]", 25)
	run("2024-06-01T12:00[America/New_York]", 24)
	run("2024-03-10T12:00[+05:30]", 24)

	start, err := mustZoned(t, "2024-03-10T12:00[America/New_York]").StartOfDay()
	if err != nil || start.String() != "2024-03-10T00:00:00-05:00[America/New_York]" {
		t.Errorf("start of day %s %v", start, err)
	}
	// a date alone means the start of that day
	if z := mustZoned(t, "2024-03-10[America/New_York]"); !z.Equals(start) {
		t.Errorf("got %s", z)
	}
}

func TestZonedRound(t *testing.T) {
	run := func(s string, opts RoundOptions, want string) {
		t.Helper()
		got, err := mustZoned(t, s).Round(opts)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if got.String() != want {
			t.Errorf("%s: got %s, want %s", s, got, want)
		}
	}
	day := RoundOptions{Smallest: duration.Day}
	// the day is 23 hours long, so its midpoint is 12:30
	run("2024-03-10T12:00[America/New_York]", day, "2024-03-10T00:00:00-05:00[America/New_York]")
	run("2024-03-10T12:31[America/New_York]", day, "2024-03-11T00:00:00-04:00[America/New_York]")
	hour := RoundOptions{Smallest: duration.Hour}
	run("2024-11-03T01:20-05:00[America/New_York]", hour, "2024-11-03T01:00:00-05:00[America/New_York]")
	run("2024-11-03T01:40-05:00[America/New_York]", hour, "2024-11-03T02:00:00-05:00[America/New_York]")
	run("2024-11-03T01:20-04:00[America/New_York]", hour, "2024-11-03T01:00:00-04:00[America/New_York]")
	run("2024-01-01T10:07[UTC]", RoundOptions{Smallest: duration.Minute, Increment: 15, Mode: timemath.Floor}, "2024-01-01T10:00:00+00:00[UTC]")

	z := mustZoned(t, "2024-01-01T10:07[UTC]")
	for _, opts := range []RoundOptions{{}, {Smallest: duration.Hour, Increment: 5}, {Smallest: duration.Week}} {
		if _, err := z.Round(opts); !errors.Is(err, terr.ErrRange) {
			t.Errorf("%+v: %v", opts, err)
		}
	}
}

func TestZonedArithmetic(t *testing.T) {
	z := mustZoned(t, "2024-03-09T12:00[America/New_York]")
	run := func(d string, want string) {
		t.Helper()
		got, err := z.Add(mustDuration(t, d), date.Constrain)
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != want {
			t.Errorf("+%s: got %s, want %s", d, got, want)
		}
	}
	run("P1D", "2024-03-10T12:00:00-04:00[America/New_York]")
	run("PT24H", "2024-03-10T13:00:00-04:00[America/New_York]")
	run("P1DT1H", "2024-03-10T13:00:00-04:00[America/New_York]")
	run("-P1M", "2024-02-09T12:00:00-05:00[America/New_York]")

	next := mustZoned(t, "2024-03-10T12:00[America/New_York]")
	diff := func(opts DiffOptions, want string) {
		t.Helper()
		got, err := z.Until(next, opts)
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != want {
			t.Errorf("until %+v: got %s, want %s", opts, got, want)
		}
		back, err := next.Since(z, opts)
		if err != nil || back != got {
			t.Errorf("since %+v: got %s %v, want %s", opts, back, err, want)
		}
	}
	diff(DiffOptions{}, "PT23H")
	diff(DiffOptions{Largest: duration.Day}, "P1D")
	diff(DiffOptions{Largest: duration.Minute}, "PT1380M")

	other, err := next.WithTimeZone(mustZone(t, "Europe/Paris"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Until(other, DiffOptions{Largest: duration.Day}); !errors.Is(err, terr.ErrRange) {
		t.Errorf("days across zones: %v", err)
	}
	if got, err := z.Until(other, DiffOptions{}); err != nil || got.String() != "PT23H" {
		t.Errorf("hours across zones: %s %v", got, err)
	}
}

func mustZone(t *testing.T, id string) timezone.TimeZone {
	t.Helper()
	tz, err := timezone.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	return tz
}

func TestZonedWith(t *testing.T) {
	later := mustZoned(t, "2024-11-03T01:30-05:00[America/New_York]")
	got, err := later.With(calendar.Fields{}, TimeFields{Minute: calendar.Int(45)}, ZonedOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "2024-11-03T01:45:00-05:00[America/New_York]" {
		t.Errorf("offset not kept: %s", got)
	}
	got, err = later.With(calendar.Fields{Day: calendar.Int(4)}, TimeFields{}, ZonedOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "2024-11-04T01:30:00-05:00[America/New_York]" {
		t.Errorf("got %s", got)
	}
	_, err = later.With(calendar.Fields{Day: calendar.Int(4)}, TimeFields{}, ZonedOptions{Offset: timezone.OffsetReject})
	if err != nil {
		t.Errorf("offset still valid: %v", err)
	}
	_, err = later.With(calendar.Fields{Month: calendar.Int(7)}, TimeFields{}, ZonedOptions{Offset: timezone.OffsetReject})
	if !errors.Is(err, terr.ErrRange) {
		t.Errorf("offset invalid in July: %v", err)
	}

	noon, _ := NewPlainTime(12, 0, 0, 0, 0, 0)
	got, err = later.WithPlainTime(&noon)
	if err != nil || got.String() != "2024-11-03T12:00:00-05:00[America/New_York]" {
		t.Errorf("with time %s %v", got, err)
	}
	jp := later.WithCalendar(mustCalendar(t, "japanese"))
	if jp.String() != "2024-11-03T01:30:00-05:00[America/New_York][u-ca=japanese]" {
		t.Errorf("got %s", jp)
	}
	if jp.Equals(later) || CompareZonedDateTime(jp, later) != 0 {
		t.Error("calendar should affect Equals only")
	}
}

func TestZonedTransition(t *testing.T) {
	z := mustZoned(t, "2024-01-01T00:00[America/New_York]")
	next, ok := z.Transition(timezone.Next)
	if !ok || next.String() != "2024-03-10T03:00:00-04:00[America/New_York]" {
		t.Errorf("next %s", next)
	}
	prev, ok := z.Transition(timezone.Previous)
	if !ok || prev.String() != "2023-11-05T01:00:00-05:00[America/New_York]" {
		t.Errorf("previous %s", prev)
	}
	if _, ok := mustZoned(t, "2024-01-01T00:00[+01:00]").Transition(timezone.Next); ok {
		t.Error("fixed offset has no transitions")
	}
}

func TestZonedFormat(t *testing.T) {
	z := mustZoned(t, "2024-03-10T03:30:15.123456789[America/New_York]")
	run := func(opts FormatOptions, want string) {
		t.Helper()
		got, err := z.Format(opts)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%+v: got %s, want %s", opts, got, want)
		}
	}
	run(FormatOptions{}, "2024-03-10T03:30:15.123456789-04:00[America/New_York]")
	run(FormatOptions{Digits: 3}, "2024-03-10T03:30:15.123-04:00[America/New_York]")
	run(FormatOptions{Smallest: duration.Minute}, "2024-03-10T03:30-04:00[America/New_York]")
	run(FormatOptions{Smallest: duration.Second, Mode: timemath.Ceil}, "2024-03-10T03:30:16-04:00[America/New_York]")
	run(FormatOptions{Zone: ZoneNever, Offset: OffsetNever}, "2024-03-10T03:30:15.123456789")
	run(FormatOptions{Zone: ZoneCritical, Calendar: CalendarAlways, Digits: 1}, "2024-03-10T03:30:15.1-04:00[!America/New_York][u-ca=iso8601]")
	if _, err := z.Format(FormatOptions{Digits: 10}); !errors.Is(err, terr.ErrRange) {
		t.Errorf("digits: %v", err)
	}
	b, err := z.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var back ZonedDateTime
	if err := back.UnmarshalText(b); err != nil || !back.Equals(z) {
		t.Errorf("text round trip %s %v", back, err)
	}
}

func BenchmarkZonedAdd(b *testing.B) {
	z, err := ParseZonedDateTime("2024-03-09T12:00[America/New_York]", ZonedOptions{})
	if err != nil {
		b.Fatal(err)
	}
	d, err := ParseDuration("P1M1DT1H")
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := z.Add(d, date.Constrain); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkZonedUntil(b *testing.B) {
	z, err := ParseZonedDateTime("2024-03-09T12:00[America/New_York]", ZonedOptions{})
	if err != nil {
		b.Fatal(err)
	}
	other, err := ParseZonedDateTime("2025-11-03T01:30-05:00[America/New_York]", ZonedOptions{})
	if err != nil {
		b.Fatal(err)
	}
	opts := DiffOptions{Largest: duration.Year, Smallest: duration.Minute, Mode: timemath.HalfExpand}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := z.Until(other, opts); err != nil {
			b.Fatal(err)
		}
	}
}
