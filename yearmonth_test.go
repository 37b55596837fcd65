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
)

func mustYearMonth(t *testing.T, s string) PlainYearMonth {
	t.Helper()
	ym, err := ParsePlainYearMonth(s)
	if err != nil {
		t.Fatalf("%s: %v", s, err)
	}
	return ym
}

func TestPlainYearMonth(t *testing.T) {
	feb := mustYearMonth(t, "2024-02")
	if feb.DaysInMonth() != 29 || !feb.InLeapYear() || feb.String() != "2024-02" {
		t.Errorf("got %s with %d days", feb, feb.DaysInMonth())
	}
	if ym := mustYearMonth(t, "2024-02-15T12:00"); !ym.Equals(feb) {
		t.Errorf("from date-time: %s", ym)
	}
	add := func(d string, want string) {
		t.Helper()
		got, err := feb.Add(mustDuration(t, d), date.Constrain)
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != want {
			t.Errorf("+%s: got %s, want %s", d, got, want)
		}
	}
	add("P1M", "2024-03")
	add("P11M", "2025-01")
	add("-P1Y2M", "2022-12")
	for _, d := range []string{"P1D", "P1W", "PT1H", "P1MT1S"} {
		if _, err := feb.Add(mustDuration(t, d), date.Constrain); !errors.Is(err, terr.ErrRange) {
			t.Errorf("%s: %v", d, err)
		}
	}

	may := mustYearMonth(t, "2025-05")
	diff := func(opts DiffOptions, want string) {
		t.Helper()
		got, err := feb.Until(may, opts)
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != want {
			t.Errorf("%+v: got %s, want %s", opts, got, want)
		}
	}
	diff(DiffOptions{}, "P1Y3M")
	diff(DiffOptions{Largest: duration.Month}, "P15M")
	diff(DiffOptions{Smallest: duration.Year}, "P1Y")
	if got, err := may.Since(feb, DiffOptions{}); err != nil || got.String() != "P1Y3M" {
		t.Errorf("since %s %v", got, err)
	}
	if _, err := feb.Until(may, DiffOptions{Smallest: duration.Day}); !errors.Is(err, terr.ErrRange) {
		t.Errorf("days: %v", err)
	}

	last, err := feb.ToPlainDate(31)
	if err != nil || last.String() != "2024-02-29" {
		t.Errorf("to date %s %v", last, err)
	}
	if ComparePlainYearMonth(feb, may) != -1 {
		t.Error("compare")
	}
	if _, err := NewPlainYearMonth(2024, 13, nil); !errors.Is(err, terr.ErrRange) {
		t.Errorf("month 13: %v", err)
	}
	if _, err := NewPlainYearMonth(275760, 10, nil); !errors.Is(err, terr.ErrRange) {
		t.Errorf("out of range: %v", err)
	}
}

func TestPlainYearMonthCalendar(t *testing.T) {
	jp := mustCalendar(t, "japanese")
	ym, err := PlainYearMonthFromFields(calendar.Fields{
		Era:     "reiwa",
		EraYear: calendar.Int(1),
		Month:   calendar.Int(5),
	}, jp, date.Reject)
	if err != nil {
		t.Fatal(err)
	}
	if ym.String() != "2019-05-01[u-ca=japanese]" {
		t.Errorf("got %s", ym)
	}
	prev, err := ym.Subtract(mustDuration(t, "P1M"), date.Constrain)
	if err != nil {
		t.Fatal(err)
	}
	era, _ := prev.Era()
	year, _ := prev.EraYear()
	if era != "heisei" || year != 31 {
		t.Errorf("got %s %d", era, year)
	}
	if back := mustYearMonth(t, ym.String()); !back.Equals(ym) {
		t.Errorf("round trip %s", back)
	}
}

func TestPlainMonthDay(t *testing.T) {
	leap, err := ParsePlainMonthDay("--02-29")
	if err != nil {
		t.Fatal(err)
	}
	if leap.String() != "02-29" || leap.MonthCode() != "M02" || leap.Day() != 29 {
		t.Errorf("got %s", leap)
	}
	run := func(year int, want string) {
		t.Helper()
		d, err := leap.ToPlainDate(year)
		if err != nil {
			t.Fatal(err)
		}
		if d.String() != want {
			t.Errorf("%d: got %s, want %s", year, d, want)
		}
	}
	run(2023, "2023-02-28")
	run(2024, "2024-02-29")

	md, err := NewPlainMonthDay(2, 29, nil)
	if err != nil || !md.Equals(leap) {
		t.Errorf("new %s %v", md, err)
	}
	if _, err := NewPlainMonthDay(2, 30, nil); !errors.Is(err, terr.ErrRange) {
		t.Errorf("february 30: %v", err)
	}
	for _, s := range []string{"02-29", "0229", "2023-02-28"} {
		if _, err := ParsePlainMonthDay(s); err != nil {
			t.Errorf("%s: %v", s, err)
		}
	}
	got, err := leap.With(calendar.Fields{Month: calendar.Int(4), Day: calendar.Int(31)}, date.Constrain)
	if err != nil || got.String() != "04-30" {
		t.Errorf("with %s %v", got, err)
	}
	if _, err := leap.With(calendar.Fields{Month: calendar.Int(4), Day: calendar.Int(31)}, date.Reject); !errors.Is(err, terr.ErrRange) {
		t.Errorf("reject: %v", err)
	}
	s, err := leap.Format(FormatOptions{Calendar: CalendarAlways})
	if err != nil || s != "1972-02-29[u-ca=iso8601]" {
		t.Errorf("format %s %v", s, err)
	}
}
