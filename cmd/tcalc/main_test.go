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

package main

import (
	"testing"

	"github.com/SnellerInc/tempo"
)

func TestGuess(t *testing.T) {
	for _, td := range []struct {
		in, kind string
	}{
		{"P1D", "duration"},
		{"-PT1H", "duration"},
		{"--02-29", "monthday"},
		{"T12:00", "time"},
		{"12:00", "time"},
		{"2024-03-10T12:00[America/New_York]", "zoned"},
		{"2024-03-10[America/New_York]", "zoned"},
		{"2024-03-10T12:00Z", "instant"},
		{"2024-03-10T12:00-05:00", "instant"},
		{"2024-03-10T12:00", "datetime"},
		{"2024-03-10", "date"},
		{"2024-03", "yearmonth"},
	} {
		t.Run(td.in, func(t *testing.T) {
			if got := guess(td.in); got != td.kind {
				t.Fatalf("got %q, expected %q", got, td.kind)
			}
		})
	}
}

func TestUntil(t *testing.T) {
	dashl, dashs, dashm, dashi = "", "", "", 0
	run := func(kind, a, b string, since bool, want string) {
		t.Helper()
		d, err := until(mustValue(kind, a), mustValue(kind, b), since)
		if err != nil {
			t.Fatal(err)
		}
		if d.String() != want {
			t.Errorf("%s %s: got %s, want %s", a, b, d, want)
		}
	}
	run("date", "2024-01-31", "2024-03-01", false, "P30D")
	run("date", "2024-03-01", "2024-01-31", true, "P30D")
	run("time", "12:00", "13:30", false, "PT1H30M")
	run("instant", "2024-03-10T07:30Z", "2024-03-10T09:00Z", false, "PT5400S")

	dashl = "month"
	defer func() { dashl = "" }()
	run("date", "2024-01-31", "2024-03-01", false, "P1M1D")
}

func TestAddAndRound(t *testing.T) {
	dasho, dashs, dashm, dashi = "constrain", "", "", 0
	d, err := tempo.ParseDuration("P1M")
	if err != nil {
		t.Fatal(err)
	}
	got, err := add(mustValue("date", "2024-01-31"), d, false, nil)
	if err != nil || got.String() != "2024-02-29" {
		t.Errorf("add: %s %v", got, err)
	}
	got, err = add(mustValue("date", "2024-03-31"), d, true, nil)
	if err != nil || got.String() != "2024-02-29" {
		t.Errorf("subtract: %s %v", got, err)
	}
	if _, err := add(mustValue("monthday", "--02-29"), d, false, nil); err == nil {
		t.Error("added to a month-day")
	}

	dashs = "hour"
	defer func() { dashs = "" }()
	got, err = round(mustValue("time", "12:34:56"), nil)
	if err != nil || got.String() != "13:00:00" {
		t.Errorf("round: %s %v", got, err)
	}
	got, err = round(mustValue("duration", "PT1H29M"), nil)
	if err != nil || got.String() != "PT1H" {
		t.Errorf("round duration: %s %v", got, err)
	}
}
