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
)

func mustDate(t *testing.T, y, m, d int) PlainDate {
	t.Helper()
	pd, err := NewPlainDate(y, m, d, nil)
	if err != nil {
		t.Fatal(err)
	}
	return pd
}

func mustDuration(t *testing.T, s string) Duration {
	t.Helper()
	d, err := ParseDuration(s)
	if err != nil {
		t.Fatalf("%s: %v", s, err)
	}
	return d
}

func TestPlainDateMonthEnd(t *testing.T) {
	jan31 := mustDate(t, 2021, 1, 31)
	got, err := jan31.Add(mustDuration(t, "P1M"), date.Constrain)
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "2021-02-28" {
		t.Errorf("got %s", got)
	}
	_, err = jan31.Add(mustDuration(t, "P1M"), date.Reject)
	if !errors.Is(err, terr.ErrRange) {
		t.Errorf("reject: %v", err)
	}
	// time units are balanced into whole days
	got, err = jan31.Add(mustDuration(t, "PT47H"), date.Constrain)
	if err != nil || got.String() != "2021-02-01" {
		t.Errorf("PT47H: %s %v", got, err)
	}
	got, err = jan31.Subtract(mustDuration(t, "P1Y1D"), date.Constrain)
	if err != nil || got.String() != "2020-01-30" {
		t.Errorf("subtract: %s %v", got, err)
	}
}

func TestPlainDateFields(t *testing.T) {
	d := mustDate(t, 2021, 1, 4)
	if w, ok := d.WeekOfYear(); !ok || w != 1 {
		t.Errorf("week %d", w)
	}
	if y, ok := d.YearOfWeek(); !ok || y != 2021 {
		t.Errorf("year of week %d", y)
	}
	d = mustDate(t, 2021, 1, 3)
	if w, _ := d.WeekOfYear(); w != 53 {
		t.Errorf("week %d", w)
	}
	if d.DayOfWeek() != 7 || d.DayOfYear() != 3 || d.DaysInYear() != 365 || d.InLeapYear() {
		t.Errorf("fields of %s", d)
	}
	if d.MonthCode() != "M01" || d.DaysInMonth() != 31 || d.MonthsInYear() != 12 || d.DaysInWeek() != 7 {
		t.Errorf("fields of %s", d)
	}
	if _, err := NewPlainDate(2021, 2, 29, nil); !errors.Is(err, terr.ErrRange) {
		t.Errorf("Feb 29 2021: %v", err)
	}
	if _, err := NewPlainDate(275760, 9, 14, nil); !errors.Is(err, terr.ErrRange) {
		t.Errorf("beyond the limit: %v", err)
	}
}

func TestPlainDateParse(t *testing.T) {
	run := func(in, want string) {
		t.Helper()
		d, err := ParsePlainDate(in)
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if got := d.String(); got != want {
			t.Errorf("%s: got %s, want %s", in, got, want)
		}
	}
	run("2024-03-10", "2024-03-10")
	run("20240310", "2024-03-10")
	run("2024-03-10T12:00", "2024-03-10")
	run("+275760-09-13", "+275760-09-13")
	run("-271821-04-19", "-271821-04-19")
	run("2019-05-01[u-ca=japanese]", "2019-05-01[u-ca=japanese]")
	run("2024-03-10[u-ca=iso8601]", "2024-03-10")

	bad := []struct {
		in  string
		err error
	}{
		{"2024-03-10T00:00Z", terr.ErrParse},
		{"2024-02-30", terr.ErrParse},
		{"+275760-09-14", terr.ErrRange},
		{"2024-03-10[u-ca=hebrew]", terr.ErrRange},
	}
	for i := range bad {
		if _, err := ParsePlainDate(bad[i].in); !errors.Is(err, bad[i].err) {
			t.Errorf("%s: got %v, want %v", bad[i].in, err, bad[i].err)
		}
	}
}

func TestPlainDateCalendars(t *testing.T) {
	d, err := ParsePlainDate("2019-05-01[u-ca=japanese]")
	if err != nil {
		t.Fatal(err)
	}
	era, _ := d.Era()
	eraYear, _ := d.EraYear()
	if era != "reiwa" || eraYear != 1 {
		t.Errorf("got %s %d", era, eraYear)
	}
	prev, err := d.Subtract(mustDuration(t, "P1D"), date.Constrain)
	if err != nil {
		t.Fatal(err)
	}
	era, _ = prev.Era()
	eraYear, _ = prev.EraYear()
	if era != "heisei" || eraYear != 31 {
		t.Errorf("got %s %d", era, eraYear)
	}
	s, _ := d.Format(FormatOptions{Calendar: CalendarNever})
	if s != "2019-05-01" {
		t.Errorf("got %s", s)
	}
	s, _ = d.WithCalendar(nil).Format(FormatOptions{Calendar: CalendarCritical})
	if s != "2019-05-01[!u-ca=iso8601]" {
		t.Errorf("got %s", s)
	}
	_, err = d.Until(d.WithCalendar(nil), DiffOptions{})
	if !errors.Is(err, terr.ErrRange) {
		t.Errorf("mixed calendars: %v", err)
	}
	bd, err := PlainDateFromFields(calendar.Fields{Year: calendar.Int(2567), Month: calendar.Int(1), Day: calendar.Int(1)}, mustCalendar(t, "buddhist"), date.Reject)
	if err != nil {
		t.Fatal(err)
	}
	if bd.ISO() != (date.Date{Year: 2024, Month: 1, Day: 1}) {
		t.Errorf("got %v", bd.ISO())
	}
}

func mustCalendar(t *testing.T, id string) calendar.Calendar {
	t.Helper()
	c, err := calendar.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestPlainDateWith(t *testing.T) {
	d := mustDate(t, 2024, 1, 31)
	run := func(f calendar.Fields, ov date.Overflow, want string) {
		t.Helper()
		got, err := d.With(f, ov)
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != want {
			t.Errorf("got %s, want %s", got, want)
		}
	}
	run(calendar.Fields{Month: calendar.Int(2)}, date.Constrain, "2024-02-29")
	run(calendar.Fields{MonthCode: "M04", Day: calendar.Int(15)}, date.Constrain, "2024-04-15")
	run(calendar.Fields{Year: calendar.Int(2023)}, date.Constrain, "2023-01-31")
	if _, err := d.With(calendar.Fields{Month: calendar.Int(2)}, date.Reject); !errors.Is(err, terr.ErrRange) {
		t.Errorf("reject: %v", err)
	}
	if _, err := d.With(calendar.Fields{}, date.Constrain); !errors.Is(err, terr.ErrType) {
		t.Errorf("no fields: %v", err)
	}
	if _, err := d.With(calendar.Fields{Month: calendar.Int(3), MonthCode: "M04"}, date.Constrain); !errors.Is(err, terr.ErrRange) {
		t.Errorf("conflicting month: %v", err)
	}
}

func TestPlainDateUntil(t *testing.T) {
	run := func(a, b PlainDate, opts DiffOptions, want string) {
		t.Helper()
		got, err := a.Until(b, opts)
		if err != nil {
			t.Fatalf("%s..%s: %v", a, b, err)
		}
		if got.String() != want {
			t.Errorf("%s..%s: got %s, want %s", a, b, got, want)
		}
	}
	jan31 := mustDate(t, 2020, 1, 31)
	mar1 := mustDate(t, 2020, 3, 1)
	run(jan31, mar1, DiffOptions{}, "P30D")
	run(jan31, mar1, DiffOptions{Largest: duration.Month}, "P1M1D")
	run(jan31, mar1, DiffOptions{Largest: duration.Week}, "P4W2D")
	run(mar1, jan31, DiffOptions{Largest: duration.Month}, "-P1M1D")
	run(mustDate(t, 2020, 1, 1), mustDate(t, 2020, 2, 16), DiffOptions{Smallest: duration.Month, Mode: timemath.HalfExpand}, "P2M")
	run(mustDate(t, 2020, 1, 1), mustDate(t, 2020, 2, 16), DiffOptions{Smallest: duration.Month}, "P1M")
	run(mustDate(t, 2020, 1, 1), mustDate(t, 2020, 1, 20), DiffOptions{Increment: 7, Mode: timemath.Ceil}, "P21D")

	got, err := mar1.Since(jan31, DiffOptions{Largest: duration.Month})
	if err != nil || got.String() != "P1M1D" {
		t.Errorf("since: %s %v", got, err)
	}

	bad := []DiffOptions{
		{Smallest: duration.Year, Largest: duration.Month},
		{Smallest: duration.Hour},
		{Largest: duration.Minute},
		{Smallest: duration.Day, Largest: duration.Month, Increment: 2},
		{Increment: -1},
	}
	for i := range bad {
		if _, err := jan31.Until(mar1, bad[i]); !errors.Is(err, terr.ErrRange) {
			t.Errorf("options %+v: %v", bad[i], err)
		}
	}
}

func TestPlainDateConversions(t *testing.T) {
	d := mustDate(t, 2024, 2, 29)
	ym, err := d.ToPlainYearMonth()
	if err != nil || ym.String() != "2024-02" {
		t.Errorf("year-month %s %v", ym, err)
	}
	md, err := d.ToPlainMonthDay()
	if err != nil || md.String() != "02-29" {
		t.Errorf("month-day %s %v", md, err)
	}
	noon, err := NewPlainTime(12, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	dt, err := d.ToPlainDateTime(&noon)
	if err != nil || dt.String() != "2024-02-29T12:00:00" {
		t.Errorf("date-time %s %v", dt, err)
	}
	if !d.Equals(dt.PlainDate()) || ComparePlainDate(d, mustDate(t, 2024, 3, 1)) != -1 {
		t.Error("comparison")
	}
	b, err := d.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var back PlainDate
	if err := back.UnmarshalText(b); err != nil || !back.Equals(d) {
		t.Errorf("text round trip %s %v", back, err)
	}
}
