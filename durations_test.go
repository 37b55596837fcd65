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

	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

func TestRoundDuration(t *testing.T) {
	ny := mustZoned(t, "2024-03-10T00:00[America/New_York]")
	run := func(d string, opts RoundOptions, want string) {
		t.Helper()
		got, err := RoundDuration(mustDuration(t, d), opts)
		if err != nil {
			t.Fatalf("%s: %v", d, err)
		}
		if got.String() != want {
			t.Errorf("%s %+v: got %s, want %s", d, opts, got, want)
		}
	}
	run("PT130M", RoundOptions{Largest: duration.Hour}, "PT2H10M")
	run("PT1H30M", RoundOptions{Smallest: duration.Hour}, "PT2H")
	run("PT1H30M", RoundOptions{Smallest: duration.Hour, Mode: timemath.HalfEven}, "PT2H")
	run("PT2H30M", RoundOptions{Smallest: duration.Hour, Mode: timemath.HalfEven}, "PT2H")
	run("-PT1H30M", RoundOptions{Smallest: duration.Hour, Mode: timemath.Floor}, "-PT2H")
	run("PT36H", RoundOptions{Largest: duration.Day}, "P1DT12H")
	run("P1M15D", RoundOptions{Smallest: duration.Month, RelativeTo: mustDate(t, 2020, 1, 1)}, "P2M")
	run("P1M15D", RoundOptions{Smallest: duration.Month, RelativeTo: mustDate(t, 2020, 2, 1)}, "P1M")
	run("PT24H", RoundOptions{Largest: duration.Day, RelativeTo: ny}, "P1DT1H")
	run("P2D", RoundOptions{Largest: duration.Hour, RelativeTo: ny}, "PT47H")

	for _, c := range []struct {
		d    string
		opts RoundOptions
	}{
		{"PT1H", RoundOptions{}},
		{"P1M", RoundOptions{Smallest: duration.Day}},
		{"PT1H", RoundOptions{Largest: duration.Week}},
		{"PT1H", RoundOptions{Smallest: duration.Hour, Largest: duration.Minute}},
		{"PT1H", RoundOptions{Smallest: duration.Minute, Increment: 7}},
	} {
		if _, err := RoundDuration(mustDuration(t, c.d), c.opts); !errors.Is(err, terr.ErrRange) {
			t.Errorf("%s %+v: %v", c.d, c.opts, err)
		}
	}
}

func TestTotalDuration(t *testing.T) {
	ny := mustZoned(t, "2024-03-10T00:00[America/New_York]")
	run := func(d string, unit Unit, rel RelativeTo, want float64) {
		t.Helper()
		got, err := TotalDuration(mustDuration(t, d), unit, rel)
		if err != nil {
			t.Fatalf("%s: %v", d, err)
		}
		if got != want {
			t.Errorf("%s in %s: got %v, want %v", d, unit, got, want)
		}
	}
	run("PT1H30M", duration.Minute, nil, 90)
	run("PT1H30M", duration.Hour, nil, 1.5)
	run("P1D", duration.Hour, nil, 24)
	run("P1D", duration.Hour, ny, 23)
	run("P1M", duration.Day, mustDate(t, 2024, 2, 1), 29)
	run("P1M", duration.Day, mustDate(t, 2023, 2, 1), 28)
	run("P45D", duration.Month, mustDate(t, 2024, 1, 1), 1+14.0/29)

	if _, err := TotalDuration(mustDuration(t, "PT1H"), duration.Auto, nil); !errors.Is(err, terr.ErrRange) {
		t.Errorf("no unit: %v", err)
	}
	if _, err := TotalDuration(mustDuration(t, "P1M"), duration.Day, nil); !errors.Is(err, terr.ErrRange) {
		t.Errorf("no reference: %v", err)
	}
}

func TestCompareDurations(t *testing.T) {
	ny := mustZoned(t, "2024-03-10T00:00[America/New_York]")
	run := func(a, b string, rel RelativeTo, want int) {
		t.Helper()
		got, err := CompareDurations(mustDuration(t, a), mustDuration(t, b), rel)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s vs %s: got %d, want %d", a, b, got, want)
		}
	}
	run("PT1H", "PT60M", nil, 0)
	run("PT1H", "PT59M59.999999999S", nil, 1)
	run("-PT1H", "PT1S", nil, -1)
	run("P1D", "PT24H", nil, 0)
	run("P1D", "PT24H", ny, -1)
	run("P1M", "P30D", mustDate(t, 2024, 2, 1), -1)
	run("P1M", "P30D", mustDate(t, 2024, 1, 1), 1)
	run("P1W", "P7D", mustDate(t, 2024, 1, 1), 0)
	if _, err := CompareDurations(mustDuration(t, "P1M"), mustDuration(t, "P30D"), nil); !errors.Is(err, terr.ErrRange) {
		t.Errorf("no reference: %v", err)
	}
}

func TestAddDurations(t *testing.T) {
	run := func(a, b string, rel RelativeTo, sub bool, want string) {
		t.Helper()
		var got Duration
		var err error
		if sub {
			got, err = SubtractDurations(mustDuration(t, a), mustDuration(t, b), rel)
		} else {
			got, err = AddDurations(mustDuration(t, a), mustDuration(t, b), rel)
		}
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != want {
			t.Errorf("%s, %s: got %s, want %s", a, b, got, want)
		}
	}
	run("PT50M", "PT20M", nil, false, "PT70M")
	run("PT1H", "PT30M", nil, true, "PT30M")
	run("PT1H", "PT90M", nil, true, "-PT30M")
	run("P1D", "PT1H", nil, false, "P1DT1H")
	run("P1M", "P1D", mustDate(t, 2020, 1, 31), false, "P1M1D")
	run("P1M", "P1D", mustDate(t, 2020, 1, 31), true, "P28D")
	if _, err := AddDurations(mustDuration(t, "P1M"), mustDuration(t, "P1D"), nil); !errors.Is(err, terr.ErrRange) {
		t.Errorf("no reference: %v", err)
	}
}

func TestFormatDuration(t *testing.T) {
	run := func(d string, opts FormatOptions, want string) {
		t.Helper()
		got, err := FormatDuration(mustDuration(t, d), opts)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s %+v: got %s, want %s", d, opts, got, want)
		}
	}
	run("PT1.9876S", FormatOptions{Digits: 3}, "PT1.987S")
	run("PT1.9876S", FormatOptions{Digits: 3, Mode: timemath.HalfExpand}, "PT1.988S")
	run("PT59.9999S", FormatOptions{Smallest: duration.Second, Mode: timemath.HalfExpand}, "PT60S")
	run("PT1M59.9999S", FormatOptions{Smallest: duration.Second, Mode: timemath.HalfExpand}, "PT2M0S")
	run("P1DT1.5S", FormatOptions{}, "P1DT1.5S")
	run("-PT0.5S", FormatOptions{Smallest: duration.Second, Mode: timemath.Floor}, "-PT1S")
	run("PT0S", FormatOptions{Digits: 2}, "PT0.00S")
	if _, err := FormatDuration(mustDuration(t, "PT1S"), FormatOptions{Smallest: duration.Minute}); !errors.Is(err, terr.ErrRange) {
		t.Errorf("minute: %v", err)
	}
}
