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
	"math/big"
	"testing"

	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

func mustInstant(t *testing.T, s string) Instant {
	t.Helper()
	i, err := ParseInstant(s)
	if err != nil {
		t.Fatalf("%s: %v", s, err)
	}
	return i
}

func TestInstantParse(t *testing.T) {
	run := func(in, want string) {
		t.Helper()
		if got := mustInstant(t, in).String(); got != want {
			t.Errorf("%s: got %s, want %s", in, got, want)
		}
	}
	run("2024-03-10T02:30-05:00", "2024-03-10T07:30:00Z")
	run("2024-03-10T07:30:00.5Z", "2024-03-10T07:30:00.5Z")
	run("2024-03-10T07:30:00.5z[America/New_York]", "2024-03-10T07:30:00.5Z")
	run("20240310T073000+0130", "2024-03-10T06:00:00Z")
	run("1969-12-31T23:59:59.999999999Z", "1969-12-31T23:59:59.999999999Z")

	for _, in := range []string{"2024-03-10T07:30", "2024-03-10", "2024-03-10T07:30[UTC]"} {
		if _, err := ParseInstant(in); !errors.Is(err, terr.ErrParse) {
			t.Errorf("%s: %v", in, err)
		}
	}
	if _, err := ParseInstant("+275760-09-13T00:00:00.000000001Z"); !errors.Is(err, terr.ErrRange) {
		t.Errorf("past the last instant: %v", err)
	}
	if _, err := ParseInstant("+275760-09-13T00:00Z"); err != nil {
		t.Errorf("last instant: %v", err)
	}
}

func TestInstantLimits(t *testing.T) {
	last := timemath.New(timemath.MaxEpochDays, 0)
	if _, err := NewInstant(last); err != nil {
		t.Fatal(err)
	}
	if _, err := NewInstant(last.AddNanos(1)); !errors.Is(err, terr.ErrRange) {
		t.Errorf("got %v", err)
	}
	first, err := NewInstant(last.Neg())
	if err != nil {
		t.Fatal(err)
	}
	if got := first.String(); got != "-271821-04-20T00:00:00Z" {
		t.Errorf("first instant %s", got)
	}
	if _, err := first.Subtract(mustDuration(t, "PT0.000000001S")); !errors.Is(err, terr.ErrRange) {
		t.Errorf("before the first instant: %v", err)
	}

	n := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	i, err := InstantFromBig(n)
	if err != nil {
		t.Fatal(err)
	}
	if i.String() != "2001-09-09T01:46:40Z" || i.Big().Cmp(n) != 0 {
		t.Errorf("got %s", i)
	}
	if _, err := InstantFromBig(new(big.Int).Lsh(n, 40)); !errors.Is(err, terr.ErrRange) {
		t.Errorf("huge: %v", err)
	}
}

func TestInstantArithmetic(t *testing.T) {
	a := mustInstant(t, "2024-03-10T07:30Z")
	b := mustInstant(t, "2024-03-10T09:00Z")
	run := func(opts DiffOptions, want string) {
		t.Helper()
		got, err := a.Until(b, opts)
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != want {
			t.Errorf("%+v: got %s, want %s", opts, got, want)
		}
		back, err := b.Since(a, opts)
		if err != nil {
			t.Fatal(err)
		}
		if back != got {
			t.Errorf("%+v: since %s, until %s", opts, back, got)
		}
	}
	run(DiffOptions{}, "PT5400S")
	run(DiffOptions{Largest: duration.Hour}, "PT1H30M")
	run(DiffOptions{Smallest: duration.Hour}, "PT1H")
	run(DiffOptions{Smallest: duration.Hour, Mode: timemath.HalfEven}, "PT2H")
	if _, err := a.Until(b, DiffOptions{Largest: duration.Day}); !errors.Is(err, terr.ErrRange) {
		t.Errorf("day: %v", err)
	}

	got, err := a.Add(mustDuration(t, "PT1H30M"))
	if err != nil || !got.Equals(b) {
		t.Errorf("add: %s %v", got, err)
	}
	for _, d := range []string{"P1D", "P1M", "P1W"} {
		if _, err := a.Add(mustDuration(t, d)); !errors.Is(err, terr.ErrRange) {
			t.Errorf("%s: %v", d, err)
		}
	}
	if CompareInstant(a, b) != -1 || CompareInstant(b, a) != 1 || CompareInstant(a, a) != 0 {
		t.Error("compare")
	}
}

func TestInstantRound(t *testing.T) {
	i := mustInstant(t, "2024-03-10T07:30:00Z")
	run := func(opts RoundOptions, want string) {
		t.Helper()
		got, err := i.Round(opts)
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != want {
			t.Errorf("%+v: got %s, want %s", opts, got, want)
		}
	}
	run(RoundOptions{Smallest: duration.Hour}, "2024-03-10T08:00:00Z")
	run(RoundOptions{Smallest: duration.Hour, Mode: timemath.HalfTrunc}, "2024-03-10T07:00:00Z")
	run(RoundOptions{Smallest: duration.Hour, Increment: 24}, "2024-03-10T00:00:00Z")
	run(RoundOptions{Smallest: duration.Minute, Increment: 1440, Mode: timemath.Ceil}, "2024-03-11T00:00:00Z")
	for _, opts := range []RoundOptions{
		{Smallest: duration.Hour, Increment: 7},
		{Smallest: duration.Hour, Increment: 48},
		{Smallest: duration.Day},
		{},
	} {
		if _, err := i.Round(opts); !errors.Is(err, terr.ErrRange) {
			t.Errorf("%+v: %v", opts, err)
		}
	}
}

func TestInstantFormat(t *testing.T) {
	i := mustInstant(t, "2024-03-10T07:30:00.123456Z")
	ny := mustZone(t, "America/New_York")
	run := func(opts FormatOptions, want string) {
		t.Helper()
		got, err := i.Format(opts, ny)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%+v: got %s, want %s", opts, got, want)
		}
	}
	run(FormatOptions{}, "2024-03-10T03:30:00.123456-04:00")
	run(FormatOptions{Smallest: duration.Second}, "2024-03-10T03:30:00-04:00")
	run(FormatOptions{Smallest: duration.Nanosecond}, "2024-03-10T03:30:00.123456000-04:00")
	run(FormatOptions{Digits: 4, Mode: timemath.HalfExpand}, "2024-03-10T03:30:00.1235-04:00")

	z, err := i.ToZonedDateTime(ny, nil)
	if err != nil || z.String() != "2024-03-10T03:30:00.123456-04:00[America/New_York]" {
		t.Errorf("zoned %s %v", z, err)
	}
	if !z.Instant().Equals(i) {
		t.Error("instant round trip")
	}

	b, err := i.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var back Instant
	if err := back.UnmarshalText(b); err != nil || !back.Equals(i) {
		t.Errorf("text round trip %s %v", back, err)
	}
}
